// layout.go — Multi-line block measurement and stroke plan emission.
package caption

import (
	"image"
	"image/color"
	"strings"
)

// LineGap is added to the font size to get the fixed line pitch.
const LineGap = 5

// BoldRadius is the offset radius of the synthetic bold pass.
const BoldRadius = 1

// Measurer reports the pixel size of a single line of text.
type Measurer interface {
	Measure(text string) (width, height int)
}

// SplitLines returns the lines of text that contain something other than
// whitespace. Blank lines take no slot in the layout.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// MeasureBlock measures text set at fontSize. Width comes from the widest
// measured line; height is pitch times the line count, whatever the glyphs
// actually need.
func MeasureBlock(text string, fontSize int, m Measurer) Block {
	b := Block{Pitch: fontSize + LineGap}
	b.Lines = SplitLines(text)
	b.Widths = make([]int, len(b.Lines))
	for i, line := range b.Lines {
		w, _ := m.Measure(line)
		b.Widths[i] = w
		b.Width = max(b.Width, w)
	}
	b.Height = b.Pitch * len(b.Lines)
	return b
}

// Plan anchors the block and emits its strokes: every outline stroke, then
// every bold stroke, then the primary draw of each line, so the true glyphs
// end up on top.
func (b Block) Plan(anchor image.Point, st Style) Plan {
	p := Plan{Anchor: anchor, Block: b}
	if len(b.Lines) == 0 {
		return p
	}

	p.Lines = make([]Line, len(b.Lines))
	for i, text := range b.Lines {
		p.Lines[i] = Line{
			Text:   text,
			Width:  b.Widths[i],
			Offset: image.Pt(anchor.X, anchor.Y+i*b.Pitch),
		}
	}

	fill := st.Fill.RGBA()

	if st.Outline != nil && st.OutlineWidth > 0 {
		outline := st.Outline.RGBA()
		for i, l := range p.Lines {
			p.Strokes = appendRing(p.Strokes, StrokeOutline, i, l, st.OutlineWidth, outline)
		}
	}

	for i, l := range p.Lines {
		p.Strokes = appendRing(p.Strokes, StrokeBold, i, l, BoldRadius, fill)
	}

	for i, l := range p.Lines {
		p.Strokes = append(p.Strokes, Stroke{
			Kind:  StrokePrimary,
			Line:  i,
			Text:  l.Text,
			At:    l.Offset,
			Color: fill,
		})
	}

	return p
}

// appendRing adds one stroke per offset in [-r,r]² except (0,0), dx outer.
func appendRing(dst []Stroke, kind StrokeKind, idx int, l Line, r int, c color.RGBA) []Stroke {
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			dst = append(dst, Stroke{
				Kind:  kind,
				Line:  idx,
				Text:  l.Text,
				At:    l.Offset.Add(image.Pt(dx, dy)),
				Color: c,
			})
		}
	}
	return dst
}

// Layout measures text, resolves pos against the image size and returns the
// full plan.
func Layout(text string, fontSize int, m Measurer, pos Position, img image.Point, st Style) Plan {
	block := MeasureBlock(text, fontSize, m)
	anchor := ResolvePosition(pos, img, block.Size())
	Logger().Debug("caption: layout",
		"lines", len(block.Lines),
		"block", block.Size(),
		"position", FormatPosition(pos),
		"anchor", anchor)
	return block.Plan(anchor, st)
}
