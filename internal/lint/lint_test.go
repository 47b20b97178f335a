// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckSupportedMarkdown(t *testing.T) {
	src := "# A\n\n## B\n\n- b\n  - c\n\n- [ ] @alice: ship it\n\nplain text\n"
	assert.Empty(t, Check([]byte(src)))
}

func TestCheckEmpty(t *testing.T) {
	assert.Empty(t, Check(nil))
}

func TestCheckFindings(t *testing.T) {
	src := "# Title\n" + // 1
		"\n" +
		"Some *emphasis* here\n" + // 3
		"\n" +
		"```go\n" + // 5
		"x := 1\n" +
		"```\n" +
		"\n" +
		"See [docs](http://example.com).\n" + // 9
		"\n" +
		"1. first\n" + // 11
		"\n" +
		"> quote\n" + // 13
		"\n" +
		"##### deep\n" + // 15
		"\n" +
		"- [ ] @alice: fine\n"

	got := Check([]byte(src))

	type lineKind struct {
		Line int
		Kind Kind
	}
	var pairs []lineKind
	for _, f := range got {
		pairs = append(pairs, lineKind{f.Line, f.Kind})
	}

	assert.Equal(t, []lineKind{
		{3, KindEmphasis},
		{5, KindFencedCode},
		{9, KindLink},
		{11, KindOrderedList},
		{13, KindBlockquote},
		{15, KindDeepHeading},
	}, pairs)
}

func TestCheckCodeSpanAndImage(t *testing.T) {
	got := Check([]byte("run `make`\n\n![logo](logo.png)\n"))
	if assert.Len(t, got, 2) {
		assert.Equal(t, Finding{Line: 1, Kind: KindCodeSpan, Message: "backticks are inserted literally"}, got[0])
		assert.Equal(t, 3, got[1].Line)
		assert.Equal(t, KindImage, got[1].Kind)
	}
}

func TestFindingString(t *testing.T) {
	f := Finding{Line: 4, Kind: KindLink, Message: "dropped"}
	assert.Equal(t, "line 4: link: dropped", f.String())
}
