// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notes reads markdown note files. A note may begin with YAML front
// matter that overrides the document title and sharing settings:
//
//	---
//	title: Weekly sync
//	share_with: lead@example.com
//	role: commenter
//	---
package notes

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/frontmatter"

	"github.com/pdiddy/notes2docs/pkg/types"
)

// NotFoundError reports a note path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("note %s not found", e.Path)
}

// Read loads the note at path and splits off its front matter.
func Read(path string) (types.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.Note{}, &NotFoundError{Path: path}
		}
		return types.Note{}, fmt.Errorf("reading note %s: %w", path, err)
	}

	note, err := Parse(data)
	if err != nil {
		return types.Note{}, fmt.Errorf("note %s: %w", path, err)
	}
	note.Path = path
	return note, nil
}

// Parse splits raw note bytes into front matter and body. Notes without
// front matter are returned unchanged as the body.
func Parse(data []byte) (types.Note, error) {
	var meta types.NoteMeta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return types.Note{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Role != "" && !meta.Role.Valid() {
		return types.Note{}, fmt.Errorf("front matter role %q: use writer, commenter, or reader", meta.Role)
	}

	sum := sha256.Sum256(data)
	return types.Note{
		Meta: meta,
		Body: string(body),
		Hash: hex.EncodeToString(sum[:]),
	}, nil
}
