// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// NoteMeta is the optional YAML front matter at the top of a note file.
type NoteMeta struct {
	// Title overrides the configured document title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// ShareWith is an email address to share the document with.
	ShareWith string `json:"share_with,omitempty" yaml:"share_with,omitempty"`

	// Role is granted to ShareWith.
	Role ShareRole `json:"role,omitempty" yaml:"role,omitempty"`

	// Public overrides ShareConfig.Public when set.
	Public *bool `json:"public,omitempty" yaml:"public,omitempty"`
}

// Note is a markdown file split into front matter and body.
type Note struct {
	Path string
	Meta NoteMeta
	Body string

	// Hash is the hex SHA-256 of the whole file, front matter included.
	Hash string
}

// Publication records one document created from a note.
type Publication struct {
	ID          int64     `json:"id" yaml:"id"`
	SourcePath  string    `json:"source_path" yaml:"source_path"`
	ContentHash string    `json:"content_hash" yaml:"content_hash"`
	DocumentID  string    `json:"document_id" yaml:"document_id"`
	URL         string    `json:"url" yaml:"url"`
	Title       string    `json:"title" yaml:"title"`
	SharedWith  string    `json:"shared_with,omitempty" yaml:"shared_with,omitempty"`
	Requests    int       `json:"requests" yaml:"requests"`
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`
}
