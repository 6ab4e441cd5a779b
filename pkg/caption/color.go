// color.go — Color resolution: palette names, #rrggbb, "r,g,b" and triples.
package caption

import (
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// PaletteOrder lists the named colors in the order they are documented.
var PaletteOrder = []string{
	"black", "white", "red", "green", "blue", "yellow", "cyan", "magenta",
	"gray", "orange", "purple", "pink", "brown", "lime", "navy", "teal",
}

// Palette maps lower-case color names to their RGB values.
var Palette = map[string]RGB{
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
	"red":     {255, 0, 0},
	"green":   {0, 255, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"gray":    {128, 128, 128},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"pink":    {255, 192, 203},
	"brown":   {165, 42, 42},
	"lime":    {0, 255, 0},
	"navy":    {0, 0, 128},
	"teal":    {0, 128, 128},
}

// ResolveColor turns a ColorSpec into RGB. It never fails: anything it
// cannot read becomes black.
func ResolveColor(spec ColorSpec) RGB {
	switch s := spec.(type) {
	case ColorText:
		if c, ok := parseColorText(string(s)); ok {
			return c
		}
	case ColorTriple:
		if c, ok := tripleToRGB(s[0], s[1], s[2]); ok {
			return c
		}
	}
	return RGB{}
}

// ColorSet reports whether spec names a color at all. Nil and empty text
// count as unset.
func ColorSet(spec ColorSpec) bool {
	switch s := spec.(type) {
	case nil:
		return false
	case ColorText:
		return s != ""
	}
	return true
}

func parseColorText(s string) (RGB, bool) {
	if c, ok := Palette[strings.ToLower(s)]; ok {
		return c, true
	}

	if strings.HasPrefix(s, "#") {
		if c, ok := parseHex(strings.TrimLeft(s, "#")); ok {
			return c, true
		}
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return RGB{}, false
		}
		var v [3]int
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return RGB{}, false
			}
			v[i] = n
		}
		return tripleToRGB(v[0], v[1], v[2])
	}

	return RGB{}, false
}

// parseHex accepts exactly six hex digits.
func parseHex(hex string) (RGB, bool) {
	if len(hex) != 6 {
		return RGB{}, false
	}
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return RGB{}, false
		}
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return RGB{}, false
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, true
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func tripleToRGB(r, g, b int) (RGB, bool) {
	for _, v := range [3]int{r, g, b} {
		if v < 0 || v > 255 {
			return RGB{}, false
		}
	}
	return RGB{uint8(r), uint8(g), uint8(b)}, true
}

// Hex renders c as "#rrggbb".
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
