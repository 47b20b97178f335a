// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealBytesRoundTrip(t *testing.T) {
	plain := []byte(`{"type":"service_account","client_email":"bot@example.iam.gserviceaccount.com"}`)

	sealed, err := SealBytes(plain)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "client_email")
	assert.Equal(t, 1, bytes.Count(sealed, []byte("\n")))

	got, err := OpenBytes(sealed)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestSealBytesFreshKeyEachTime(t *testing.T) {
	a, err := SealBytes([]byte("same"))
	require.NoError(t, err)
	b, err := SealBytes([]byte("same"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSealBytesEmpty(t *testing.T) {
	_, err := SealBytes(nil)
	assert.Error(t, err)
}

func TestOpenBytesErrors(t *testing.T) {
	good, err := SealBytes([]byte("secret"))
	require.NoError(t, err)
	other, err := SealBytes([]byte("other"))
	require.NoError(t, err)

	keyA, tokA, _ := bytes.Cut(good, []byte("\n"))
	_, tokB, _ := bytes.Cut(other, []byte("\n"))

	tests := []struct {
		name  string
		input []byte
	}{
		{"no separator", []byte("just-a-key")},
		{"bad key encoding", append([]byte("not base64!\n"), tokA...)},
		{"wrong key", append(append(append([]byte{}, keyA...), '\n'), tokB...)},
		{"truncated token", good[:len(good)-10]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenBytes(tt.input)
			assert.ErrorIs(t, err, ErrBadSeal)
		})
	}
}

func TestSealAndUnsealFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auth.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"k":"v"}`), 0o600))

	sealedPath, err := Seal(path)
	require.NoError(t, err)
	assert.Equal(t, path+SealedSuffix, sealedPath)

	opened, err := Open(sealedPath)
	require.NoError(t, err)
	assert.Equal(t, `{"k":"v"}`, string(opened))

	require.NoError(t, os.Remove(path))
	out, err := Unseal(sealedPath)
	require.NoError(t, err)
	assert.Equal(t, path, out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, `{"k":"v"}`, string(data))
}

func TestUnsealRequiresSuffix(t *testing.T) {
	_, err := Unseal(filepath.Join(t.TempDir(), "auth.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), SealedSuffix)
}

func TestSealMissingFile(t *testing.T) {
	_, err := Seal(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
