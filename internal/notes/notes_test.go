// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notes2docs/pkg/types"
)

func writeNote(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead(t *testing.T) {
	t.Run("plain markdown", func(t *testing.T) {
		path := writeNote(t, "# Sync\n- item\n")
		note, err := Read(path)
		require.NoError(t, err)

		assert.Equal(t, path, note.Path)
		assert.Equal(t, "# Sync\n- item\n", note.Body)
		assert.Equal(t, types.NoteMeta{}, note.Meta)
		assert.Len(t, note.Hash, 64)
	})

	t.Run("front matter", func(t *testing.T) {
		path := writeNote(t, "---\ntitle: Weekly sync\nshare_with: lead@example.com\nrole: commenter\npublic: false\n---\n# Agenda\n")
		note, err := Read(path)
		require.NoError(t, err)

		assert.Equal(t, "Weekly sync", note.Meta.Title)
		assert.Equal(t, "lead@example.com", note.Meta.ShareWith)
		assert.Equal(t, types.RoleCommenter, note.Meta.Role)
		require.NotNil(t, note.Meta.Public)
		assert.False(t, *note.Meta.Public)
		assert.Equal(t, "# Agenda", strings.TrimSpace(note.Body))
		assert.NotContains(t, note.Body, "title:")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "absent.md"))
		require.Error(t, err)

		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Contains(t, err.Error(), "absent.md")
	})

	t.Run("invalid role", func(t *testing.T) {
		path := writeNote(t, "---\nrole: owner\n---\nbody\n")
		_, err := Read(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "owner")
	})
}

func TestParseHashCoversFrontMatter(t *testing.T) {
	a, err := Parse([]byte("---\ntitle: A\n---\nbody\n"))
	require.NoError(t, err)
	b, err := Parse([]byte("---\ntitle: B\n---\nbody\n"))
	require.NoError(t, err)

	assert.Equal(t, strings.TrimSpace(a.Body), strings.TrimSpace(b.Body))
	assert.NotEqual(t, a.Hash, b.Hash)
}
