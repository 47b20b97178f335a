// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compile

import (
	"fmt"
	"strings"

	"github.com/pdiddy/notes2docs/pkg/types"
)

// Replay applies requests in order to an empty virtual document and returns
// its text. It checks the invariants the compiler guarantees:
//
//   - each insert lands exactly at the current end of the document;
//   - each styling or bullet range is non-empty and lies inside the text
//     written by the most recent insert.
//
// Replay is used to validate a batch before it is submitted and to preview
// what the remote document will contain.
func Replay(requests []types.Request) (string, error) {
	var (
		b      strings.Builder
		cursor = startOffset
		last   types.Range
		seen   bool
	)

	for i, r := range requests {
		switch r.Kind() {
		case types.KindInsertText:
			ins := r.InsertText
			if ins.Location.Index != cursor {
				return "", fmt.Errorf("request %d: insert at %d, document ends at %d", i, ins.Location.Index, cursor)
			}
			n := textLen(ins.Text)
			if n == 0 {
				return "", fmt.Errorf("request %d: empty insert", i)
			}
			b.WriteString(ins.Text)
			last = types.Range{StartIndex: cursor, EndIndex: cursor + n}
			cursor += n
			seen = true

		case types.KindUpdateParagraphStyle, types.KindUpdateTextStyle, types.KindCreateParagraphBullets:
			rng, _ := r.Span()
			if !seen {
				return "", fmt.Errorf("request %d: %s before any insert", i, r.Kind())
			}
			if rng.Len() <= 0 {
				return "", fmt.Errorf("request %d: %s has empty range [%d, %d)", i, r.Kind(), rng.StartIndex, rng.EndIndex)
			}
			if !last.Contains(rng) {
				return "", fmt.Errorf("request %d: %s range [%d, %d) outside inserted text [%d, %d)",
					i, r.Kind(), rng.StartIndex, rng.EndIndex, last.StartIndex, last.EndIndex)
			}

		default:
			return "", fmt.Errorf("request %d: no operation set", i)
		}
	}

	return b.String(), nil
}

// Validate runs Replay and discards the text.
func Validate(requests []types.Request) error {
	_, err := Replay(requests)
	return err
}
