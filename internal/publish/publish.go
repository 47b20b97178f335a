// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish runs the note-to-document pipeline: read the note, warn
// about markdown that will not be translated, compile it into edit requests,
// validate the batch, create the remote document, apply the batch, share the
// document, and record the publication.
package publish

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/tliron/commonlog"

	"github.com/pdiddy/notes2docs/internal/compile"
	"github.com/pdiddy/notes2docs/internal/gdocs"
	"github.com/pdiddy/notes2docs/internal/lint"
	"github.com/pdiddy/notes2docs/internal/notes"
	"github.com/pdiddy/notes2docs/pkg/types"
)

// DefaultTitle is used when neither the caller, the note, nor the config
// names the document.
const DefaultTitle = "Meeting Notes"

var log = commonlog.GetLogger("notes2docs.publish")

// DocumentService is the remote side of the pipeline. *gdocs.Client
// implements it.
type DocumentService interface {
	CreateDocument(ctx context.Context, title string) (gdocs.Document, error)
	BatchUpdate(ctx context.Context, documentID string, requests []types.Request) (gdocs.BatchUpdateResponse, error)
	Share(ctx context.Context, documentID string, perm gdocs.Permission) (string, error)
}

// History remembers what has been published. *history.Store implements it.
type History interface {
	Find(ctx context.Context, sourcePath, hash string) (types.Publication, bool, error)
	Record(ctx context.Context, p types.Publication) (types.Publication, error)
}

// Options are per-run settings. Empty fields fall back to the note's front
// matter, then to the Publisher's config.
type Options struct {
	Path  string
	Title string
	Email string
	Role  types.ShareRole

	// Private skips sharing entirely.
	Private bool
	// Force publishes even when the note is unchanged since its last publication.
	Force bool
	// DryRun compiles and validates but makes no remote calls.
	DryRun bool
	// Strict rejects malformed checkbox lines instead of compiling them as paragraphs.
	Strict bool
}

// Result describes one pipeline run.
type Result struct {
	Publication types.Publication
	Requests    []types.Request
	Findings    []lint.Finding

	// Skipped is true when an identical note was already published;
	// Publication then holds the earlier record.
	Skipped bool
	// Shared is false when no permission was granted.
	Shared bool
}

// Publisher runs the pipeline. Docs may be nil for dry runs; History may be
// nil to disable change detection and recording.
type Publisher struct {
	Docs    DocumentService
	History History
	Config  types.PublishConfig
	Out     io.Writer
}

// Publish runs the pipeline for opts.Path.
func (p *Publisher) Publish(ctx context.Context, opts Options) (Result, error) {
	note, err := notes.Read(opts.Path)
	if err != nil {
		return Result{}, err
	}
	sourcePath := opts.Path
	if abs, err := filepath.Abs(opts.Path); err == nil {
		sourcePath = abs
	}

	var result Result
	result.Findings = lint.Check([]byte(note.Body))
	for _, f := range result.Findings {
		fmt.Fprintf(p.out(), "warning: %s: %s\n", opts.Path, f)
	}

	if opts.Strict {
		result.Requests, err = compile.CompileStrict(note.Body)
		if err != nil {
			return result, fmt.Errorf("compiling %s: %w", opts.Path, err)
		}
	} else {
		result.Requests = compile.Compile(note.Body)
	}
	if err := compile.Validate(result.Requests); err != nil {
		return result, fmt.Errorf("compiled batch for %s is inconsistent: %w", opts.Path, err)
	}
	log.Debugf("%s: %d requests", opts.Path, len(result.Requests))

	title := p.title(opts, note.Meta)
	share := p.share(opts, note.Meta)

	if opts.DryRun {
		fmt.Fprintf(p.out(), "dry run: %s -> %q (%d requests)\n", opts.Path, title, len(result.Requests))
		return result, nil
	}
	if p.Docs == nil {
		return result, fmt.Errorf("no document service configured")
	}

	if p.History != nil && !opts.Force {
		prev, found, err := p.History.Find(ctx, sourcePath, note.Hash)
		if err != nil {
			return result, err
		}
		if found {
			fmt.Fprintf(p.out(), "skipped: %s (unchanged since %s, %s)\n",
				opts.Path, prev.PublishedAt.Format("2006-01-02 15:04"), prev.URL)
			result.Publication = prev
			result.Skipped = true
			return result, nil
		}
	}

	doc, err := p.Docs.CreateDocument(ctx, title)
	if err != nil {
		return result, err
	}

	if _, err := p.Docs.BatchUpdate(ctx, doc.DocumentID, result.Requests); err != nil {
		return result, fmt.Errorf("document %s created but not filled: %w", doc.DocumentID, err)
	}

	pub := types.Publication{
		SourcePath:  sourcePath,
		ContentHash: note.Hash,
		DocumentID:  doc.DocumentID,
		URL:         doc.URL(),
		Title:       title,
		Requests:    len(result.Requests),
	}

	if perm, ok := gdocs.PermissionFor(share); ok && !opts.Private {
		if _, err := p.Docs.Share(ctx, doc.DocumentID, perm); err != nil {
			return result, fmt.Errorf("document %s created but not shared: %w", doc.DocumentID, err)
		}
		result.Shared = true
		pub.SharedWith = describe(perm)
		log.Infof("shared %s with %s", doc.DocumentID, pub.SharedWith)
	}

	if p.History != nil {
		pub, err = p.History.Record(ctx, pub)
		if err != nil {
			return result, err
		}
	}
	result.Publication = pub

	fmt.Fprintf(p.out(), "published: %s -> %s\n", opts.Path, pub.URL)
	return result, nil
}

func (p *Publisher) out() io.Writer {
	if p.Out == nil {
		return io.Discard
	}
	return p.Out
}

func (p *Publisher) title(opts Options, meta types.NoteMeta) string {
	for _, t := range []string{opts.Title, meta.Title, p.Config.Title} {
		if t != "" {
			return t
		}
	}
	return DefaultTitle
}

// share merges run options, front matter, and config, in that order.
func (p *Publisher) share(opts Options, meta types.NoteMeta) types.ShareConfig {
	s := p.Config.Share
	if meta.ShareWith != "" {
		s.Email = meta.ShareWith
	}
	if opts.Email != "" {
		s.Email = opts.Email
	}
	if meta.Role != "" {
		s.Role = meta.Role
	}
	if opts.Role != "" {
		s.Role = opts.Role
	}
	if meta.Public != nil {
		s.Public = *meta.Public
	}
	return s
}

func describe(perm gdocs.Permission) string {
	if perm.EmailAddress != "" {
		return fmt.Sprintf("%s (%s)", perm.EmailAddress, perm.Role)
	}
	return fmt.Sprintf("%s (%s)", perm.Type, perm.Role)
}
