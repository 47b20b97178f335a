// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data shapes shared between the compiler, the
// document service client, and the CLI. Request mirrors the batch-update
// wire format of the remote document service so a []Request can be encoded
// directly as the "requests" array.
package types

// RequestKind tags which variant a Request carries.
type RequestKind string

const (
	KindInsertText             RequestKind = "insertText"
	KindUpdateParagraphStyle   RequestKind = "updateParagraphStyle"
	KindUpdateTextStyle        RequestKind = "updateTextStyle"
	KindCreateParagraphBullets RequestKind = "createParagraphBullets"
)

// NamedStyle is a paragraph style name understood by the document service.
type NamedStyle string

const (
	StyleNormal   NamedStyle = "NORMAL_TEXT"
	StyleHeading1 NamedStyle = "HEADING_1"
	StyleHeading2 NamedStyle = "HEADING_2"
	StyleHeading3 NamedStyle = "HEADING_3"
	StyleHeading4 NamedStyle = "HEADING_4"
)

// BulletPreset selects the glyph set for a bulleted paragraph.
type BulletPreset string

const (
	BulletCheckbox         BulletPreset = "BULLET_CHECKBOX"
	BulletDiscCircleSquare BulletPreset = "BULLET_DISC_CIRCLE_SQUARE"
	BulletArrowDiamondDisc BulletPreset = "BULLET_ARROW_DIAMOND_DISC"
)

// UnitPT is the only dimension unit the compiler emits.
const UnitPT = "PT"

// Request is one edit operation. Exactly one of the pointer fields is set.
type Request struct {
	InsertText             *InsertTextRequest             `json:"insertText,omitempty" yaml:"insertText,omitempty"`
	UpdateParagraphStyle   *UpdateParagraphStyleRequest   `json:"updateParagraphStyle,omitempty" yaml:"updateParagraphStyle,omitempty"`
	UpdateTextStyle        *UpdateTextStyleRequest        `json:"updateTextStyle,omitempty" yaml:"updateTextStyle,omitempty"`
	CreateParagraphBullets *CreateParagraphBulletsRequest `json:"createParagraphBullets,omitempty" yaml:"createParagraphBullets,omitempty"`
}

// Kind returns the variant tag, or "" for a zero Request.
func (r Request) Kind() RequestKind {
	switch {
	case r.InsertText != nil:
		return KindInsertText
	case r.UpdateParagraphStyle != nil:
		return KindUpdateParagraphStyle
	case r.UpdateTextStyle != nil:
		return KindUpdateTextStyle
	case r.CreateParagraphBullets != nil:
		return KindCreateParagraphBullets
	}
	return ""
}

// Span returns the range a styling or bullet request applies to. The second
// return value is false for inserts and zero requests.
func (r Request) Span() (Range, bool) {
	switch {
	case r.UpdateParagraphStyle != nil:
		return r.UpdateParagraphStyle.Range, true
	case r.UpdateTextStyle != nil:
		return r.UpdateTextStyle.Range, true
	case r.CreateParagraphBullets != nil:
		return r.CreateParagraphBullets.Range, true
	}
	return Range{}, false
}

// Location is a single offset into the document body.
type Location struct {
	Index int `json:"index" yaml:"index"`
}

// Range is the half-open interval [StartIndex, EndIndex).
type Range struct {
	StartIndex int `json:"startIndex" yaml:"startIndex"`
	EndIndex   int `json:"endIndex" yaml:"endIndex"`
}

// Len returns the number of offsets the range covers.
func (r Range) Len() int { return r.EndIndex - r.StartIndex }

// Contains reports whether o lies entirely inside r.
func (r Range) Contains(o Range) bool {
	return o.StartIndex >= r.StartIndex && o.EndIndex <= r.EndIndex
}

type InsertTextRequest struct {
	Location Location `json:"location" yaml:"location"`
	Text     string   `json:"text" yaml:"text"`
}

type UpdateParagraphStyleRequest struct {
	Range          Range          `json:"range" yaml:"range"`
	ParagraphStyle ParagraphStyle `json:"paragraphStyle" yaml:"paragraphStyle"`
	Fields         string         `json:"fields" yaml:"fields"`
}

type UpdateTextStyleRequest struct {
	Range     Range     `json:"range" yaml:"range"`
	TextStyle TextStyle `json:"textStyle" yaml:"textStyle"`
	Fields    string    `json:"fields" yaml:"fields"`
}

type CreateParagraphBulletsRequest struct {
	Range        Range        `json:"range" yaml:"range"`
	BulletPreset BulletPreset `json:"bulletPreset" yaml:"bulletPreset"`
}

// ParagraphStyle carries the paragraph-level properties the compiler sets.
// Unset members are omitted from the wire body; Fields on the enclosing
// request names which ones apply.
type ParagraphStyle struct {
	NamedStyleType  NamedStyle `json:"namedStyleType,omitempty" yaml:"namedStyleType,omitempty"`
	IndentFirstLine *Dimension `json:"indentFirstLine,omitempty" yaml:"indentFirstLine,omitempty"`
	IndentStart     *Dimension `json:"indentStart,omitempty" yaml:"indentStart,omitempty"`
}

// TextStyle carries character-level properties.
type TextStyle struct {
	Bold            bool           `json:"bold,omitempty" yaml:"bold,omitempty"`
	FontSize        *Dimension     `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	ForegroundColor *OptionalColor `json:"foregroundColor,omitempty" yaml:"foregroundColor,omitempty"`
}

// Dimension is a magnitude in a unit. Magnitude is never omitted: a zero
// indent is meaningful.
type Dimension struct {
	Magnitude float64 `json:"magnitude" yaml:"magnitude"`
	Unit      string  `json:"unit" yaml:"unit"`
}

// Points returns a Dimension in PT.
func Points(v float64) *Dimension {
	return &Dimension{Magnitude: v, Unit: UnitPT}
}

type OptionalColor struct {
	Color *Color `json:"color,omitempty" yaml:"color,omitempty"`
}

type Color struct {
	RGBColor *RGBColor `json:"rgbColor,omitempty" yaml:"rgbColor,omitempty"`
}

// RGBColor components are in [0, 1]. Omitted components are zero.
type RGBColor struct {
	Red   float64 `json:"red,omitempty" yaml:"red,omitempty"`
	Green float64 `json:"green,omitempty" yaml:"green,omitempty"`
	Blue  float64 `json:"blue,omitempty" yaml:"blue,omitempty"`
}

// Foreground wraps an RGB color for use as TextStyle.ForegroundColor.
func Foreground(c RGBColor) *OptionalColor {
	return &OptionalColor{Color: &Color{RGBColor: &c}}
}

// BatchUpdate is the request body submitted to the batch-update endpoint.
type BatchUpdate struct {
	Requests []Request `json:"requests" yaml:"requests"`
}
