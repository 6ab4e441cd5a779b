// captioner.go - One text placement end to end: hint, merge, colors, font,
// layout, raster, composite, save.
package caption

import (
	"fmt"
	"image"

	"github.com/xob0t/GoCaption/pkg/imageio"
)

// Captioner places text on images using fonts from its provider.
type Captioner struct {
	fonts *FontProvider
}

// NewCaptioner creates a captioner backed by fonts.
func NewCaptioner(fonts *FontProvider) *Captioner {
	return &Captioner{fonts: fonts}
}

// Fonts returns the font provider.
func (c *Captioner) Fonts() *FontProvider { return c.fonts }

// Result is a rendered image together with how it was produced.
type Result struct {
	Image  *image.RGBA
	Plan   Plan
	Params Params // after merging the file name hint
}

// Render places text on src. name is the image's file name or path; it is
// only used for its placement hint and may be empty.
func (c *Captioner) Render(src image.Image, name, text string, p Params) (*Result, error) {
	if src == nil {
		return nil, fmt.Errorf("nil source image")
	}

	params := Merge(p, HintFromPath(name))

	face, err := c.fonts.Load(params.Font, params.FontSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	st := Style{
		Fill:         ResolveColor(params.Color),
		OutlineWidth: params.OutlineWidth,
	}
	if ColorSet(params.OutlineColor) {
		oc := ResolveColor(params.OutlineColor)
		st.Outline = &oc
	}

	bounds := src.Bounds()
	plan := Layout(text, params.FontSize, face, params.Position, bounds.Size(), st)

	layer := NewLayer(bounds)
	Execute(layer, plan, face)

	return &Result{
		Image:  CompositeOver(src, layer),
		Plan:   plan,
		Params: params,
	}, nil
}

// Request describes a file-to-file placement.
type Request struct {
	ImagePath  string
	Text       string
	OutputPath string // empty: <name>_with_text<ext> next to the source
	Params     Params
}

// AddText renders req and writes the result. It returns the output path.
func (c *Captioner) AddText(req Request) (string, error) {
	src, err := imageio.Open(req.ImagePath)
	if err != nil {
		return "", err
	}

	res, err := c.Render(src, req.ImagePath, req.Text, req.Params)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", req.ImagePath, err)
	}

	out := req.OutputPath
	if out == "" {
		out = imageio.DefaultOutputPath(req.ImagePath)
	}
	if err := imageio.Save(res.Image, out); err != nil {
		return "", err
	}

	Logger().Info("caption: written", "src", req.ImagePath, "out", out,
		"position", FormatPosition(res.Params.Position), "size", res.Params.FontSize,
		"lines", len(res.Plan.Lines))
	return out, nil
}
