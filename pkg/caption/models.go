// Package caption places multi-line text on images: it resolves loosely typed
// colors and positions, reads placement hints from file names, lays the text
// out line by line and rasterizes the resulting stroke plan.
package caption

import (
	"image"
	"image/color"
)

// ── Colors ──

// RGB is a resolved, fully opaque color.
type RGB struct {
	R, G, B uint8
}

// RGBA returns the color with alpha 255.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// ColorSpec is a color as the caller wrote it. Implemented by ColorText and
// ColorTriple.
type ColorSpec interface {
	colorSpec()
}

// ColorText is a palette name, "#rrggbb" or "r,g,b".
type ColorText string

// ColorTriple is an already split r,g,b triple, each expected in [0,255].
type ColorTriple [3]int

func (ColorText) colorSpec()   {}
func (ColorTriple) colorSpec() {}

// ── Positions ──

// Position is a placement request. Implemented by PositionText,
// PositionPair and PositionPoint.
type Position interface {
	position()
}

// PositionText is a symbolic tag ("bottom-right") or a comma pair
// ("100,vcenter").
type PositionText string

// PositionPair holds the two coordinate tokens decoded from a file name.
type PositionPair struct {
	X, Y Token
}

// PositionPoint is an anchor that needs no resolution.
type PositionPoint image.Point

func (PositionText) position()  {}
func (PositionPair) position()  {}
func (PositionPoint) position() {}

// TokenKind tells how a coordinate token was understood.
type TokenKind int

const (
	TokenInt TokenKind = iota
	TokenCenter
	TokenVCenter
	TokenRaw // kept verbatim; the resolver rejects it
)

// Token is one coordinate of a PositionPair.
type Token struct {
	Kind TokenKind
	N    int
	Raw  string
}

// ── Parameters ──

// Params are the caller's placement settings. A nil Position means "not
// supplied"; a nil or empty OutlineColor disables the outline pass.
type Params struct {
	Font         string
	FontSize     int
	Color        ColorSpec
	Position     Position
	OutlineColor ColorSpec
	OutlineWidth int
}

// Hint is what an image's file name says about placement. Nil fields mean
// the name carried no such information.
type Hint struct {
	Position *PositionPair
	FontSize *int
}

// ── Layout ──

// StrokeKind orders the passes of a plan.
type StrokeKind int

const (
	StrokeOutline StrokeKind = iota
	StrokeBold
	StrokePrimary
)

// Stroke is one glyph-run draw. At is the top-left of the line's ascent box.
type Stroke struct {
	Kind  StrokeKind
	Line  int
	Text  string
	At    image.Point
	Color color.RGBA
}

// Line is a non-blank text line placed relative to the block anchor.
type Line struct {
	Text   string
	Width  int
	Offset image.Point
}

// Block is the measured text before it is anchored.
type Block struct {
	Lines  []string
	Widths []int
	Width  int
	Height int
	Pitch  int
}

// Size returns the block dimensions.
func (b Block) Size() image.Point {
	return image.Pt(b.Width, b.Height)
}

// Style carries the resolved colors used when emitting strokes.
type Style struct {
	Fill         RGB
	Outline      *RGB
	OutlineWidth int
}

// Plan is the ordered list of draws for one placement.
type Plan struct {
	Anchor  image.Point
	Block   Block
	Lines   []Line
	Strokes []Stroke
}

// Empty reports whether executing the plan would draw nothing.
func (p Plan) Empty() bool {
	return len(p.Strokes) == 0
}
