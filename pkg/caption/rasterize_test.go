package caption

import (
	"image"
	"image/color"
	"testing"
)

func TestDrawText_OffsetLayer(t *testing.T) {
	face, err := newTestProvider(t).Load("goregular", 20)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()

	layer := NewLayer(image.Rect(100, 100, 200, 150))
	DrawText(layer, image.Pt(0, 0), "W", face, color.RGBA{A: 255})

	inked := 0
	for y := 100; y < 125; y++ {
		for x := 100; x < 125; x++ {
			if layer.RGBAAt(x, y).A > 0 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("glyph not drawn at the layer origin")
	}
}

func TestCompositeOver_TransparentLayer(t *testing.T) {
	base := whiteImage(10, 10)
	out := CompositeOver(base, NewLayer(base.Bounds()))
	if out == base {
		t.Fatal("CompositeOver returned its input")
	}
	for i := range out.Pix {
		if out.Pix[i] != base.Pix[i] {
			t.Fatalf("byte %d changed: %d -> %d", i, base.Pix[i], out.Pix[i])
		}
	}
}

func TestSetLogger_Nil(t *testing.T) {
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
}
