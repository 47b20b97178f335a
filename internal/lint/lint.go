// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lint reports markdown constructs the compiler does not translate.
// Those constructs still reach the document, but as literal text, so a note
// author usually wants to know about them before publishing.
package lint

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Kind names the unsupported construct.
type Kind string

const (
	KindFencedCode  Kind = "fenced-code"
	KindLink        Kind = "link"
	KindImage       Kind = "image"
	KindEmphasis    Kind = "emphasis"
	KindCodeSpan    Kind = "code-span"
	KindOrderedList Kind = "ordered-list"
	KindBlockquote  Kind = "blockquote"
	KindDeepHeading Kind = "deep-heading"
	KindHTML        Kind = "html"
)

// maxHeadingLevel is the deepest heading the compiler styles.
const maxHeadingLevel = 4

// Finding is one unsupported construct. Line is 1-based; 0 means the
// position could not be determined.
type Finding struct {
	Line    int    `json:"line" yaml:"line"`
	Kind    Kind   `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("line %d: %s: %s", f.Line, f.Kind, f.Message)
}

// Check parses src and returns findings in source order.
func Check(src []byte) []Finding {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var findings []Finding
	add := func(n ast.Node, kind Kind, msg string) {
		findings = append(findings, Finding{Line: lineOf(src, n), Kind: kind, Message: msg})
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			add(n, KindFencedCode, "code fence is inserted as plain paragraphs")
			return ast.WalkSkipChildren, nil
		case *ast.Link, *ast.AutoLink:
			add(n, KindLink, "link markup is inserted literally")
			return ast.WalkSkipChildren, nil
		case *ast.Image:
			add(n, KindImage, "image is inserted as its markdown source")
			return ast.WalkSkipChildren, nil
		case *ast.Emphasis:
			add(n, KindEmphasis, "emphasis markers are inserted literally")
		case *ast.CodeSpan:
			add(n, KindCodeSpan, "backticks are inserted literally")
			return ast.WalkSkipChildren, nil
		case *ast.List:
			if node.IsOrdered() {
				add(n, KindOrderedList, "ordered list is inserted as plain paragraphs")
			}
		case *ast.Blockquote:
			add(n, KindBlockquote, "quote marker is inserted literally")
		case *ast.Heading:
			if node.Level > maxHeadingLevel {
				add(n, KindDeepHeading, fmt.Sprintf("heading level %d is inserted as plain text", node.Level))
			}
		case *ast.HTMLBlock, *ast.RawHTML:
			add(n, KindHTML, "HTML is inserted literally")
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Line < findings[j].Line
	})
	return findings
}

// lineOf maps a node to the 1-based source line it starts on.
func lineOf(src []byte, n ast.Node) int {
	for cur := n; cur != nil && cur.Kind() != ast.KindDocument; cur = cur.Parent() {
		off, ok := offsetOf(cur)
		if !ok {
			continue
		}
		line := bytes.Count(src[:off], []byte("\n")) + 1
		// Fenced code lines exclude the opening fence.
		if _, fenced := cur.(*ast.FencedCodeBlock); fenced && line > 1 {
			line--
		}
		return line
	}
	return 0
}

// offsetOf returns the first source offset covered by n or its descendants.
func offsetOf(n ast.Node) (int, bool) {
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			return lines.At(0).Start, true
		}
	}
	if t, ok := n.(*ast.Text); ok {
		return t.Segment.Start, true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off, ok := offsetOf(c); ok {
			return off, true
		}
	}
	return 0, false
}
