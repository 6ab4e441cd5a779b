// position.go — Anchor resolution for the text block.
package caption

import (
	"image"
	"strconv"
	"strings"
)

// Margin is the distance kept from the image edges by the symbolic tags.
const Margin = 10

// DefaultAnchor is used whenever a position cannot be understood.
var DefaultAnchor = image.Pt(Margin, Margin)

// PositionTags lists the symbolic positions in documentation order.
var PositionTags = []string{
	"top-left", "top-center", "top-right",
	"center-left", "center", "center-right",
	"bottom-left", "bottom-center", "bottom-right",
	"vcenter",
}

// ResolvePosition returns the top-left corner of the text block. img and
// block are the image and block sizes. The result is not clamped; an anchor
// off the canvas simply draws off the canvas.
func ResolvePosition(spec Position, img, block image.Point) image.Point {
	switch s := spec.(type) {
	case PositionText:
		if p, ok := resolveText(string(s), img, block); ok {
			return p
		}
	case PositionPair:
		if p, ok := resolvePair(s.X, s.Y, img, block); ok {
			return p
		}
	case PositionPoint:
		return image.Point(s)
	}
	return DefaultAnchor
}

func resolveText(s string, img, block image.Point) (image.Point, bool) {
	s = strings.ToLower(s)
	if p, ok := symbolic(s, img, block); ok {
		return p, true
	}
	if !strings.Contains(s, ",") {
		return image.Point{}, false
	}

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return image.Point{}, false
	}
	x := parseXToken(strings.TrimSpace(parts[0]))
	y := parseYToken(strings.TrimSpace(parts[1]))
	return resolvePair(x, y, img, block)
}

func resolvePair(xt, yt Token, img, block image.Point) (image.Point, bool) {
	var p image.Point

	switch xt.Kind {
	case TokenCenter:
		p.X = centered(img.X, block.X)
	case TokenInt:
		p.X = xt.N
	default:
		return image.Point{}, false
	}

	switch yt.Kind {
	case TokenCenter, TokenVCenter:
		p.Y = centered(img.Y, block.Y)
	case TokenInt:
		p.Y = yt.N
	default:
		return image.Point{}, false
	}

	return p, true
}

func symbolic(tag string, img, block image.Point) (image.Point, bool) {
	left := Margin
	hcenter := centered(img.X, block.X)
	right := img.X - block.X - Margin
	top := Margin
	vcenter := centered(img.Y, block.Y)
	bottom := img.Y - block.Y - Margin

	switch tag {
	case "top-left":
		return image.Pt(left, top), true
	case "top-center":
		return image.Pt(hcenter, top), true
	case "top-right":
		return image.Pt(right, top), true
	case "center-left":
		return image.Pt(left, vcenter), true
	case "center", "vcenter":
		return image.Pt(hcenter, vcenter), true
	case "center-right":
		return image.Pt(right, vcenter), true
	case "bottom-left":
		return image.Pt(left, bottom), true
	case "bottom-center":
		return image.Pt(hcenter, bottom), true
	case "bottom-right":
		return image.Pt(right, bottom), true
	}
	return image.Point{}, false
}

// centered is floor((outer-inner)/2); it rounds toward negative infinity
// when the block is larger than the image.
func centered(outer, inner int) int {
	return floorDiv(outer-inner, 2)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ParsePosition converts a command-line value into a Position. An empty
// string means the caller did not supply one.
func ParsePosition(s string) Position {
	if s == "" {
		return nil
	}
	return PositionText(s)
}

// FormatPosition renders a Position for logs and help output.
func FormatPosition(p Position) string {
	switch v := p.(type) {
	case PositionText:
		return string(v)
	case PositionPair:
		return v.String()
	case PositionPoint:
		return strconv.Itoa(v.X) + "," + strconv.Itoa(v.Y)
	}
	return "<none>"
}
