// style.go — JSON style presets and the sample written by "gocaption init".
package caption

import (
	"encoding/json"
	"fmt"
	"os"
)

// StyleFile is the on-disk form of Params. Zero values mean "not set".
type StyleFile struct {
	Font         string `json:"font,omitempty"`
	FontSize     int    `json:"fontSize,omitempty"`
	Color        string `json:"color,omitempty"`
	Position     string `json:"position,omitempty"` // empty: use the file name hint
	OutlineColor string `json:"outlineColor,omitempty"`
	OutlineWidth int    `json:"outlineWidth,omitempty"`
}

// DefaultStyle is what a bare command line gets.
func DefaultStyle() StyleFile {
	return StyleFile{
		FontSize: 40,
		Color:    "black",
	}
}

// MergeStyles layers styles left to right; later non-zero fields win.
func MergeStyles(layers ...StyleFile) StyleFile {
	var out StyleFile
	for _, l := range layers {
		mergeStyle(&out, l)
	}
	return out
}

// Params converts the style into placement parameters.
func (s StyleFile) Params() Params {
	p := Params{
		Font:         s.Font,
		FontSize:     s.FontSize,
		Color:        ColorText(s.Color),
		Position:     ParsePosition(s.Position),
		OutlineWidth: s.OutlineWidth,
	}
	if s.OutlineColor != "" {
		p.OutlineColor = ColorText(s.OutlineColor)
	}
	return p
}

// ParseStyle decodes a style from JSON bytes.
func ParseStyle(data []byte) (StyleFile, error) {
	var s StyleFile
	if err := json.Unmarshal(data, &s); err != nil {
		return StyleFile{}, fmt.Errorf("parse style JSON: %w", err)
	}
	return s, nil
}

// LoadStyle reads a style JSON file.
func LoadStyle(path string) (StyleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StyleFile{}, fmt.Errorf("read style: %w", err)
	}
	return ParseStyle(data)
}

// ValidateStyle returns warnings for values that will silently fall back to
// defaults at render time.
func ValidateStyle(s StyleFile) []string {
	var warnings []string
	if s.Color != "" && !colorReadable(s.Color) {
		warnings = append(warnings, fmt.Sprintf("color %q is not recognised, black will be used", s.Color))
	}
	if s.OutlineColor != "" && !colorReadable(s.OutlineColor) {
		warnings = append(warnings, fmt.Sprintf("outline color %q is not recognised, black will be used", s.OutlineColor))
	}
	if s.FontSize < 0 {
		warnings = append(warnings, fmt.Sprintf("font size %d is negative", s.FontSize))
	}
	if s.OutlineWidth < 0 {
		warnings = append(warnings, fmt.Sprintf("outline width %d is negative, outline disabled", s.OutlineWidth))
	}
	return warnings
}

func colorReadable(s string) bool {
	_, ok := parseColorText(s)
	return ok
}

// ExampleStyleJSON returns a sample style.json for gocaption init.
func ExampleStyleJSON() string {
	return `{
  "font": "goregular",
  "fontSize": 48,
  "color": "white",
  "position": "bottom-center",
  "outlineColor": "black",
  "outlineWidth": 2
}
`
}
