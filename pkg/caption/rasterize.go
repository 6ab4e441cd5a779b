// rasterize.go - Executes a Plan onto a transparent layer and composites the
// layer over the source image.
package caption

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
)

// NewLayer returns a fully transparent layer covering bounds.
func NewLayer(bounds image.Rectangle) *image.RGBA {
	return image.NewRGBA(bounds)
}

// DrawText draws one line with its ascent box's top-left corner at at,
// relative to the layer's origin.
func DrawText(layer draw.Image, at image.Point, text string, face *Face, c color.Color) {
	origin := layer.Bounds().Min
	drawer := &font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  pt(origin.X+at.X, origin.Y+at.Y, face),
	}
	drawer.DrawString(text)
}

// Execute runs every stroke of plan in order.
func Execute(layer draw.Image, plan Plan, face *Face) {
	for _, s := range plan.Strokes {
		DrawText(layer, s.At, s.Text, face, s.Color)
	}
}

// CompositeOver returns base with layer blended on top. base is copied, not
// modified.
func CompositeOver(base, layer image.Image) *image.RGBA {
	b := base.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, base, b.Min, draw.Src)
	draw.Draw(out, b, layer, layer.Bounds().Min, draw.Over)
	return out
}
