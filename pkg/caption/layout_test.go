package caption

import (
	"image"
	"testing"
)

// fixedMeasurer makes every rune 10px wide and 20px tall.
type fixedMeasurer struct{}

func (fixedMeasurer) Measure(text string) (int, int) {
	return 10 * len([]rune(text)), 20
}

func TestMeasureBlock_SkipsBlankLines(t *testing.T) {
	b := MeasureBlock("a\n\nb", 40, fixedMeasurer{})

	if len(b.Lines) != 2 {
		t.Fatalf("lines = %q, want 2", b.Lines)
	}
	if b.Pitch != 45 {
		t.Errorf("pitch = %d, want 45", b.Pitch)
	}
	if b.Height != 90 {
		t.Errorf("height = %d, want 90", b.Height)
	}
	if b.Width != 10 {
		t.Errorf("width = %d, want 10", b.Width)
	}
}

func TestMeasureBlock_WidestLine(t *testing.T) {
	b := MeasureBlock("abcd\r\nab\n   \n\tabcdef", 20, fixedMeasurer{})
	if len(b.Lines) != 3 {
		t.Fatalf("lines = %q", b.Lines)
	}
	if b.Width != 70 { // "\tabcdef" is 7 runes
		t.Errorf("width = %d, want 70", b.Width)
	}
	if b.Height != 75 {
		t.Errorf("height = %d, want 75", b.Height)
	}
}

func TestPlan_LineOffsets(t *testing.T) {
	b := MeasureBlock("a\n\nb", 40, fixedMeasurer{})
	p := b.Plan(image.Pt(7, 11), Style{Fill: RGB{1, 2, 3}})

	if len(p.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(p.Lines))
	}
	if p.Lines[0].Offset != image.Pt(7, 11) || p.Lines[1].Offset != image.Pt(7, 56) {
		t.Errorf("offsets = %v, %v", p.Lines[0].Offset, p.Lines[1].Offset)
	}
}

func TestPlan_SharedX(t *testing.T) {
	b := MeasureBlock("short\na much longer line", 10, fixedMeasurer{})
	p := b.Plan(image.Pt(42, 0), Style{})
	for _, l := range p.Lines {
		if l.Offset.X != 42 {
			t.Errorf("line %q at x=%d, want 42", l.Text, l.Offset.X)
		}
	}
}

func TestPlan_StrokeCounts(t *testing.T) {
	black := RGB{}
	tests := []struct {
		name  string
		style Style
		want  map[StrokeKind]int
	}{
		{"no outline", Style{}, map[StrokeKind]int{StrokeBold: 16, StrokePrimary: 2}},
		{"outline width 0", Style{Outline: &black}, map[StrokeKind]int{StrokeBold: 16, StrokePrimary: 2}},
		{"outline width 1", Style{Outline: &black, OutlineWidth: 1}, map[StrokeKind]int{StrokeOutline: 16, StrokeBold: 16, StrokePrimary: 2}},
		{"outline width 2", Style{Outline: &black, OutlineWidth: 2}, map[StrokeKind]int{StrokeOutline: 48, StrokeBold: 16, StrokePrimary: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MeasureBlock("a\nb", 40, fixedMeasurer{}).Plan(image.Pt(0, 0), tt.style)
			got := map[StrokeKind]int{}
			for _, s := range p.Strokes {
				got[s.Kind]++
			}
			for k, n := range tt.want {
				if got[k] != n {
					t.Errorf("kind %d: %d strokes, want %d", k, got[k], n)
				}
			}
			if got[StrokeOutline] > 0 && tt.want[StrokeOutline] == 0 {
				t.Errorf("unexpected outline strokes: %d", got[StrokeOutline])
			}
		})
	}
}

func TestPlan_PassOrder(t *testing.T) {
	black := RGB{}
	p := MeasureBlock("a\nb", 40, fixedMeasurer{}).Plan(image.Pt(0, 0), Style{
		Fill:         RGB{255, 255, 255},
		Outline:      &black,
		OutlineWidth: 1,
	})

	last := StrokeOutline
	for i, s := range p.Strokes {
		if s.Kind < last {
			t.Fatalf("stroke %d kind %d after kind %d", i, s.Kind, last)
		}
		last = s.Kind
	}

	final := p.Strokes[len(p.Strokes)-1]
	if final.Kind != StrokePrimary || final.At != p.Lines[1].Offset {
		t.Errorf("last stroke = %+v, want primary at %v", final, p.Lines[1].Offset)
	}
}

func TestPlan_StrokeGeometryAndColor(t *testing.T) {
	red := RGB{255, 0, 0}
	blue := RGB{0, 0, 255}
	p := MeasureBlock("x", 10, fixedMeasurer{}).Plan(image.Pt(100, 100), Style{
		Fill:         red,
		Outline:      &blue,
		OutlineWidth: 2,
	})

	for _, s := range p.Strokes {
		if s.Color.A != 255 {
			t.Errorf("stroke %+v not opaque", s)
		}
		d := s.At.Sub(image.Pt(100, 100))
		switch s.Kind {
		case StrokeOutline:
			if s.Color != blue.RGBA() {
				t.Errorf("outline color %v", s.Color)
			}
			if d == (image.Point{}) || abs(d.X) > 2 || abs(d.Y) > 2 {
				t.Errorf("outline offset %v", d)
			}
		case StrokeBold:
			if s.Color != red.RGBA() {
				t.Errorf("bold color %v", s.Color)
			}
			if d == (image.Point{}) || abs(d.X) > 1 || abs(d.Y) > 1 {
				t.Errorf("bold offset %v", d)
			}
		case StrokePrimary:
			if d != (image.Point{}) {
				t.Errorf("primary offset %v", d)
			}
		}
	}

	if first := p.Strokes[0]; first.At != image.Pt(98, 98) {
		t.Errorf("first outline stroke at %v, want (98,98)", first.At)
	}
}

func TestPlan_Empty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "  \n\t\n "} {
		p := MeasureBlock(text, 40, fixedMeasurer{}).Plan(image.Pt(10, 10), Style{})
		if !p.Empty() || len(p.Lines) != 0 {
			t.Errorf("text %q: %d strokes, %d lines; want empty plan", text, len(p.Strokes), len(p.Lines))
		}
	}
}

func TestLayout_CentersBlock(t *testing.T) {
	// Widths 40 and 20, pitch 25: block 40x50.
	p := Layout("abcd\nab", 20, fixedMeasurer{}, PositionText("center"), img800x600, Style{})
	if p.Anchor != image.Pt(380, 275) {
		t.Errorf("anchor = %v, want (380,275)", p.Anchor)
	}
	if p.Lines[1].Offset != image.Pt(380, 300) {
		t.Errorf("second line at %v, want (380,300)", p.Lines[1].Offset)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
