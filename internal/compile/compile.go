// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compile turns markdown notes into an ordered batch of document edit
// requests. The batch is written against a single cursor that starts at
// offset 1 and only moves forward, so every request can be applied in order
// without adjusting for earlier inserts.
//
// Only a line-oriented subset of markdown is understood: four heading levels,
// unchecked checkboxes with @name: mentions, unordered list items, and plain
// paragraphs. Anything else is inserted as paragraph text.
package compile

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/pdiddy/notes2docs/pkg/types"
)

const (
	// startOffset is the first writable offset; offset 0 is the implicit
	// document start.
	startOffset = 1

	// checkboxMarker identifies a checkbox line; checkboxPrefixLen is how
	// much of the line is dropped before the item text.
	checkboxMarker    = "- [ ]"
	checkboxPrefixLen = 6

	// indentStep is the paragraph indent per nesting level, in points.
	indentStep = 12

	bodyFontSize = 10
)

var (
	unorderedMarker = regexp.MustCompile(`^\s*[*-]\s+`)
	mentionPattern  = regexp.MustCompile(`@([\p{L}\p{N}_]+):`)

	bodyColor    = types.RGBColor{Red: 0.5}
	mentionColor = types.RGBColor{Blue: 1}

	// bulletTiers maps a clamped tier index to a preset. Only two tiers exist.
	bulletTiers = []types.BulletPreset{
		types.BulletDiscCircleSquare,
		types.BulletArrowDiamondDisc,
	}
)

// MalformedLineError reports a line that matched a marker but cannot be
// compiled under it. Only CompileStrict returns it.
type MalformedLineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Compile converts markdown into edit requests. It never fails: a checkbox
// line too short to carry item text is compiled as a body paragraph.
// Empty input yields an empty, non-nil slice.
func Compile(markdown string) []types.Request {
	c := newCompiler(false)
	// Non-strict emitters never return an error.
	_ = c.run(markdown)
	return c.requests
}

// CompileStrict is Compile but reports malformed checkbox lines as a
// *MalformedLineError instead of falling back to a paragraph.
func CompileStrict(markdown string) ([]types.Request, error) {
	c := newCompiler(true)
	if err := c.run(markdown); err != nil {
		return nil, err
	}
	return c.requests, nil
}

type compiler struct {
	cursor   int
	requests []types.Request
	strict   bool
	lineNo   int
}

func newCompiler(strict bool) *compiler {
	return &compiler{
		cursor:   startOffset,
		requests: []types.Request{},
		strict:   strict,
	}
}

func (c *compiler) run(markdown string) error {
	if markdown == "" {
		return nil
	}
	for i, line := range strings.Split(markdown, "\n") {
		c.lineNo = i + 1
		line = strings.TrimSuffix(line, "\r")
		r := classify(line)
		if err := r.emit(c, line); err != nil {
			return err
		}
	}
	return nil
}

// insert appends an insert request for text plus a line terminator, advances
// the cursor past it, and returns the range the text now occupies. Styling
// for the line must be appended after calling insert.
func (c *compiler) insert(text string) types.Range {
	c.requests = append(c.requests, types.Request{
		InsertText: &types.InsertTextRequest{
			Location: types.Location{Index: c.cursor},
			Text:     text + "\n",
		},
	})
	n := textLen(text)
	c.cursor += n + 1
	return types.Range{StartIndex: c.cursor - n - 1, EndIndex: c.cursor}
}

func (c *compiler) add(r types.Request) {
	c.requests = append(c.requests, r)
}

// rule is one entry of the line dispatch table.
type rule struct {
	name  string
	match func(line string) bool
	emit  func(c *compiler, line string) error
}

// rules is ordered by priority; the first match wins. Heading prefixes are
// checked shortest first, which is safe because "## x" does not start
// with "# ".
var rules = []rule{
	headingRule(1, types.StyleHeading1),
	headingRule(2, types.StyleHeading2),
	headingRule(3, types.StyleHeading3),
	headingRule(4, types.StyleHeading4),
	{
		name:  "checkbox",
		match: func(line string) bool { return strings.HasPrefix(line, checkboxMarker) },
		emit:  emitCheckbox,
	},
	{
		name:  "unordered",
		match: unorderedMarker.MatchString,
		emit:  emitUnordered,
	},
	{
		name:  "paragraph",
		match: func(line string) bool { return line != "" },
		emit:  emitParagraph,
	},
	{
		name:  "blank",
		match: func(line string) bool { return line == "" },
		emit:  func(*compiler, string) error { return nil },
	},
}

// classify returns the rule that handles line.
func classify(line string) rule {
	for _, r := range rules {
		if r.match(line) {
			return r
		}
	}
	// Unreachable: paragraph and blank cover every string.
	return rules[len(rules)-1]
}

// RuleName returns the name of the rule that would handle line. It is used
// by diagnostics and tests.
func RuleName(line string) string {
	return classify(line).name
}

func headingRule(level int, style types.NamedStyle) rule {
	prefix := strings.Repeat("#", level) + " "
	return rule{
		name:  fmt.Sprintf("heading%d", level),
		match: func(line string) bool { return strings.HasPrefix(line, prefix) },
		emit: func(c *compiler, line string) error {
			rng := c.insert(line[len(prefix):])
			c.add(types.Request{UpdateParagraphStyle: &types.UpdateParagraphStyleRequest{
				Range:          rng,
				ParagraphStyle: types.ParagraphStyle{NamedStyleType: style},
				Fields:         "namedStyleType",
			}})
			return nil
		},
	}
}

func emitCheckbox(c *compiler, line string) error {
	text, ok := dropRunes(line, checkboxPrefixLen)
	if !ok {
		if c.strict {
			return &MalformedLineError{Line: c.lineNo, Text: line, Reason: "checkbox without item text"}
		}
		return emitParagraph(c, line)
	}

	rng := c.insert(text)
	c.add(types.Request{CreateParagraphBullets: &types.CreateParagraphBulletsRequest{
		Range:        rng,
		BulletPreset: types.BulletCheckbox,
	}})

	for _, m := range mentionPattern.FindAllStringIndex(text, -1) {
		c.add(types.Request{UpdateTextStyle: &types.UpdateTextStyleRequest{
			Range: types.Range{
				StartIndex: rng.StartIndex + textLen(text[:m[0]]),
				EndIndex:   rng.StartIndex + textLen(text[:m[1]]),
			},
			TextStyle: types.TextStyle{
				Bold:            true,
				ForegroundColor: types.Foreground(mentionColor),
			},
			Fields: "bold,foregroundColor",
		}})
	}
	return nil
}

func emitUnordered(c *compiler, line string) error {
	depth := IndentDepth(line)
	text := strings.TrimSpace(unorderedMarker.ReplaceAllString(line, ""))

	rng := c.insert(text)
	c.add(types.Request{CreateParagraphBullets: &types.CreateParagraphBulletsRequest{
		Range:        rng,
		BulletPreset: BulletPreset(depth),
	}})

	if depth > 0 {
		c.add(types.Request{UpdateParagraphStyle: &types.UpdateParagraphStyleRequest{
			Range: rng,
			ParagraphStyle: types.ParagraphStyle{
				IndentFirstLine: types.Points(float64(depth * indentStep)),
				IndentStart:     types.Points(float64((depth - 1) * indentStep)),
			},
			Fields: "indentFirstLine,indentStart",
		}})
	}
	return nil
}

func emitParagraph(c *compiler, line string) error {
	rng := c.insert(line)
	c.add(types.Request{UpdateTextStyle: &types.UpdateTextStyleRequest{
		Range: rng,
		TextStyle: types.TextStyle{
			FontSize:        types.Points(bodyFontSize),
			ForegroundColor: types.Foreground(bodyColor),
		},
		Fields: "fontSize,foregroundColor",
	}})
	return nil
}

// IndentDepth is the nesting level of a list line: leading whitespace
// characters divided by two.
func IndentDepth(line string) int {
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	return utf8.RuneCountInString(line[:len(line)-len(rest)]) / 2
}

// BulletPreset picks the glyph preset for a list item at depth. Depths 0 and
// 1 share the first tier; everything deeper uses the second.
func BulletPreset(depth int) types.BulletPreset {
	tier := depth / 2
	if tier < 0 {
		tier = 0
	}
	if tier > len(bulletTiers)-1 {
		tier = len(bulletTiers) - 1
	}
	return bulletTiers[tier]
}

// dropRunes removes the first n characters of s. It reports false when s
// is shorter than n characters.
func dropRunes(s string, n int) (string, bool) {
	for i := 0; i < n; i++ {
		if s == "" {
			return "", false
		}
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	return s, true
}

// textLen measures s in UTF-16 code units, the unit document offsets use.
func textLen(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
