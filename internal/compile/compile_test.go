// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compile

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notes2docs/pkg/types"
)

// --- helpers ---

func insertAt(index int, text string) types.Request {
	return types.Request{InsertText: &types.InsertTextRequest{
		Location: types.Location{Index: index},
		Text:     text,
	}}
}

func heading(start, end int, style types.NamedStyle) types.Request {
	return types.Request{UpdateParagraphStyle: &types.UpdateParagraphStyleRequest{
		Range:          types.Range{StartIndex: start, EndIndex: end},
		ParagraphStyle: types.ParagraphStyle{NamedStyleType: style},
		Fields:         "namedStyleType",
	}}
}

func bullets(start, end int, preset types.BulletPreset) types.Request {
	return types.Request{CreateParagraphBullets: &types.CreateParagraphBulletsRequest{
		Range:        types.Range{StartIndex: start, EndIndex: end},
		BulletPreset: preset,
	}}
}

func indent(start, end int, first, rest float64) types.Request {
	return types.Request{UpdateParagraphStyle: &types.UpdateParagraphStyleRequest{
		Range: types.Range{StartIndex: start, EndIndex: end},
		ParagraphStyle: types.ParagraphStyle{
			IndentFirstLine: types.Points(first),
			IndentStart:     types.Points(rest),
		},
		Fields: "indentFirstLine,indentStart",
	}}
}

func mention(start, end int) types.Request {
	return types.Request{UpdateTextStyle: &types.UpdateTextStyleRequest{
		Range: types.Range{StartIndex: start, EndIndex: end},
		TextStyle: types.TextStyle{
			Bold:            true,
			ForegroundColor: types.Foreground(types.RGBColor{Blue: 1}),
		},
		Fields: "bold,foregroundColor",
	}}
}

func body(start, end int) types.Request {
	return types.Request{UpdateTextStyle: &types.UpdateTextStyleRequest{
		Range: types.Range{StartIndex: start, EndIndex: end},
		TextStyle: types.TextStyle{
			FontSize:        types.Points(10),
			ForegroundColor: types.Foreground(types.RGBColor{Red: 0.5}),
		},
		Fields: "fontSize,foregroundColor",
	}}
}

func countKind(reqs []types.Request, kind types.RequestKind) int {
	n := 0
	for _, r := range reqs {
		if r.Kind() == kind {
			n++
		}
	}
	return n
}

// --- Compile ---

func TestCompile(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []types.Request
	}{
		{
			name:  "empty input",
			input: "",
			want:  []types.Request{},
		},
		{
			name:  "single blank line",
			input: "\n",
			want:  []types.Request{},
		},
		{
			name:  "heading 1",
			input: "# Title",
			want: []types.Request{
				insertAt(1, "Title\n"),
				heading(1, 7, types.StyleHeading1),
			},
		},
		{
			name:  "all heading levels advance the cursor",
			input: "# A\n## Bb\n### Ccc\n#### Dddd",
			want: []types.Request{
				insertAt(1, "A\n"),
				heading(1, 3, types.StyleHeading1),
				insertAt(3, "Bb\n"),
				heading(3, 6, types.StyleHeading2),
				insertAt(6, "Ccc\n"),
				heading(6, 10, types.StyleHeading3),
				insertAt(10, "Dddd\n"),
				heading(10, 15, types.StyleHeading4),
			},
		},
		{
			name:  "checkbox with mention",
			input: "- [ ] call @alice: about budget",
			want: []types.Request{
				insertAt(1, "call @alice: about budget\n"),
				bullets(1, 27, types.BulletCheckbox),
				mention(6, 13),
			},
		},
		{
			name:  "checkbox with two mentions",
			input: "- [ ] @bob: ping @carol: re deck",
			want: []types.Request{
				insertAt(1, "@bob: ping @carol: re deck\n"),
				bullets(1, 28, types.BulletCheckbox),
				mention(1, 6),
				mention(12, 19),
			},
		},
		{
			name:  "checkbox mention without colon is not styled",
			input: "- [ ] ask @dave",
			want: []types.Request{
				insertAt(1, "ask @dave\n"),
				bullets(1, 11, types.BulletCheckbox),
			},
		},
		{
			name:  "checkbox prefix counts characters not bytes",
			input: "- [ ]étude @bob: x",
			want: []types.Request{
				insertAt(1, "tude @bob: x\n"),
				bullets(1, 14, types.BulletCheckbox),
				mention(6, 11),
			},
		},
		{
			name:  "checkbox mention with non-ascii name",
			input: "- [ ] ping @josé: about it",
			want: []types.Request{
				insertAt(1, "ping @josé: about it\n"),
				bullets(1, 22, types.BulletCheckbox),
				mention(6, 12),
			},
		},
		{
			name:  "top-level bullet has no indent",
			input: "* first",
			want: []types.Request{
				insertAt(1, "first\n"),
				bullets(1, 7, types.BulletDiscCircleSquare),
			},
		},
		{
			name:  "depth one bullet keeps first tier and indents",
			input: "  - item",
			want: []types.Request{
				insertAt(1, "item\n"),
				bullets(1, 6, types.BulletDiscCircleSquare),
				indent(1, 6, 12, 0),
			},
		},
		{
			name:  "depth two bullet uses second tier",
			input: "    - note",
			want: []types.Request{
				insertAt(1, "note\n"),
				bullets(1, 6, types.BulletArrowDiamondDisc),
				indent(1, 6, 24, 12),
			},
		},
		{
			name:  "bullet text is trimmed",
			input: "-   spaced out   ",
			want: []types.Request{
				insertAt(1, "spaced out\n"),
				bullets(1, 12, types.BulletDiscCircleSquare),
			},
		},
		{
			name:  "paragraph",
			input: "Plain text",
			want: []types.Request{
				insertAt(1, "Plain text\n"),
				body(1, 12),
			},
		},
		{
			name:  "blank lines are skipped without moving the cursor",
			input: "one\n\n\ntwo",
			want: []types.Request{
				insertAt(1, "one\n"),
				body(1, 5),
				insertAt(5, "two\n"),
				body(5, 9),
			},
		},
		{
			name:  "crlf line endings",
			input: "# T\r\nbody\r\n",
			want: []types.Request{
				insertAt(1, "T\n"),
				heading(1, 3, types.StyleHeading1),
				insertAt(3, "body\n"),
				body(3, 8),
			},
		},
		{
			name:  "short checkbox falls back to paragraph",
			input: "- [ ]",
			want: []types.Request{
				insertAt(1, "- [ ]\n"),
				body(1, 7),
			},
		},
		{
			name:  "offsets count utf-16 units",
			input: "# café 😀\nok",
			want: []types.Request{
				insertAt(1, "café 😀\n"),
				heading(1, 9, types.StyleHeading1),
				insertAt(9, "ok\n"),
				body(9, 12),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compile(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Compile(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestRuleName(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"# a", "heading1"},
		{"## a", "heading2"},
		{"### a", "heading3"},
		{"#### a", "heading4"},
		{"##### a", "paragraph"},
		{"#a", "paragraph"},
		{"- [ ] todo", "checkbox"},
		{"- [x] done", "unordered"},
		{"- item", "unordered"},
		{"* item", "unordered"},
		{"\t- item", "unordered"},
		{"-item", "paragraph"},
		{"---", "paragraph"},
		{"   ", "paragraph"},
		{"", "blank"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, RuleName(tt.line))
		})
	}
}

func TestIndentDepth(t *testing.T) {
	assert.Equal(t, 0, IndentDepth("- a"))
	assert.Equal(t, 0, IndentDepth(" - a"))
	assert.Equal(t, 1, IndentDepth("  - a"))
	assert.Equal(t, 2, IndentDepth("    - a"))
	assert.Equal(t, 3, IndentDepth("      - a"))
	assert.Equal(t, 1, IndentDepth("\t\t- a"))
}

func TestBulletPreset(t *testing.T) {
	assert.Equal(t, types.BulletDiscCircleSquare, BulletPreset(0))
	assert.Equal(t, types.BulletDiscCircleSquare, BulletPreset(1))
	assert.Equal(t, types.BulletArrowDiamondDisc, BulletPreset(2))
	assert.Equal(t, types.BulletArrowDiamondDisc, BulletPreset(3))
	assert.Equal(t, types.BulletArrowDiamondDisc, BulletPreset(10))
	assert.Equal(t, types.BulletDiscCircleSquare, BulletPreset(-1))
}

func TestCompileStrict(t *testing.T) {
	t.Run("well-formed input matches Compile", func(t *testing.T) {
		input := "# T\n- [ ] a @x: b\n  - c\nd"
		got, err := CompileStrict(input)
		require.NoError(t, err)
		assert.Equal(t, Compile(input), got)
	})

	t.Run("multibyte sixth character is not malformed", func(t *testing.T) {
		got, err := CompileStrict("- [ ]é")
		require.NoError(t, err)
		assert.Equal(t, Compile("- [ ]é"), got)
		assert.Equal(t, "\n", got[0].InsertText.Text)
	})

	t.Run("short checkbox is rejected", func(t *testing.T) {
		_, err := CompileStrict("# T\n\n- [ ]\nmore")
		require.Error(t, err)

		var mle *MalformedLineError
		require.ErrorAs(t, err, &mle)
		assert.Equal(t, 3, mle.Line)
		assert.Equal(t, "- [ ]", mle.Text)
		assert.Contains(t, err.Error(), "line 3")
	})
}

const sampleNotes = `# Weekly sync

## Decisions
Ship the beta on Friday.

### Action items
- [ ] @alice: draft release notes
- [ ] review budget with @bob: and @carol:
- [ ]

#### Notes
- Infra
  - Upgrade runners
    - Pin toolchain
      * Rebuild cache
* Marketing

Thanks all.
`

func TestCompileProperties(t *testing.T) {
	reqs := Compile(sampleNotes)

	t.Run("inserts reconstruct the stripped text", func(t *testing.T) {
		text, err := Replay(reqs)
		require.NoError(t, err)
		want := strings.Join([]string{
			"Weekly sync",
			"Decisions",
			"Ship the beta on Friday.",
			"Action items",
			"@alice: draft release notes",
			"review budget with @bob: and @carol:",
			"- [ ]",
			"Notes",
			"Infra",
			"Upgrade runners",
			"Pin toolchain",
			"Rebuild cache",
			"Marketing",
			"Thanks all.",
		}, "\n") + "\n"
		assert.Equal(t, want, text)
	})

	t.Run("cursor starts at 1 and advances by text length plus one", func(t *testing.T) {
		cursor := 1
		for _, r := range reqs {
			if r.InsertText == nil {
				continue
			}
			require.Equal(t, cursor, r.InsertText.Location.Index)
			cursor += textLen(r.InsertText.Text)
		}
	})

	t.Run("ranges are non-empty and inside their insert", func(t *testing.T) {
		var last types.Range
		for _, r := range reqs {
			if r.InsertText != nil {
				last = types.Range{
					StartIndex: r.InsertText.Location.Index,
					EndIndex:   r.InsertText.Location.Index + textLen(r.InsertText.Text),
				}
				continue
			}
			rng, ok := r.Span()
			require.True(t, ok)
			assert.Greater(t, rng.EndIndex, rng.StartIndex)
			assert.True(t, last.Contains(rng), "range %+v outside %+v", rng, last)
		}
	})

	t.Run("mentions are styled once each", func(t *testing.T) {
		bold := 0
		for _, r := range reqs {
			if r.UpdateTextStyle != nil && r.UpdateTextStyle.TextStyle.Bold {
				bold++
			}
		}
		assert.Equal(t, 3, bold)
	})

	t.Run("one paragraph style per heading", func(t *testing.T) {
		named := 0
		for _, r := range reqs {
			if r.UpdateParagraphStyle != nil && r.UpdateParagraphStyle.ParagraphStyle.NamedStyleType != "" {
				named++
			}
		}
		assert.Equal(t, 4, named)
		assert.Equal(t, 14, countKind(reqs, types.KindInsertText))
	})

	t.Run("idempotent", func(t *testing.T) {
		assert.Equal(t, reqs, Compile(sampleNotes))
	})
}

func TestCompileMentionSpanText(t *testing.T) {
	line := "- [ ] call @alice: about budget"
	reqs := Compile(line)
	require.Len(t, reqs, 3)

	text := reqs[0].InsertText.Text
	start := reqs[0].InsertText.Location.Index
	rng := reqs[2].UpdateTextStyle.Range
	assert.Equal(t, "@alice:", text[rng.StartIndex-start:rng.EndIndex-start])
}

func TestCompileInsertsValidUTF8(t *testing.T) {
	for _, line := range []string{"- [ ]étude", "- [ ]😀 x", "- [ ]é", "- [ ] @zoë: hi"} {
		for _, r := range Compile(line) {
			if r.InsertText != nil {
				assert.True(t, utf8.ValidString(r.InsertText.Text), "Compile(%q) inserted %q", line, r.InsertText.Text)
			}
		}
	}
}

func TestCompileWireFormat(t *testing.T) {
	reqs := Compile("  - item")
	data, err := json.Marshal(types.BatchUpdate{Requests: reqs})
	require.NoError(t, err)

	want := `{"requests":[` +
		`{"insertText":{"location":{"index":1},"text":"item\n"}},` +
		`{"createParagraphBullets":{"range":{"startIndex":1,"endIndex":6},"bulletPreset":"BULLET_DISC_CIRCLE_SQUARE"}},` +
		`{"updateParagraphStyle":{"range":{"startIndex":1,"endIndex":6},"paragraphStyle":{"indentFirstLine":{"magnitude":12,"unit":"PT"},"indentStart":{"magnitude":0,"unit":"PT"}},"fields":"indentFirstLine,indentStart"}}` +
		`]}`
	assert.JSONEq(t, want, string(data))
}
