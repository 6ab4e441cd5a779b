// catalog.go — Human-readable listings of colors, positions and fonts.
package caption

import (
	"fmt"
	"strings"
)

// FormatColors describes the accepted color formats and the palette.
func FormatColors() string {
	var s strings.Builder
	s.WriteString("Color formats:\n")
	s.WriteString("  named:   " + strings.Join(PaletteOrder, ", ") + "\n")
	s.WriteString("  hex:     #FF0000, #00FF00, #0000FF\n")
	s.WriteString("  rgb:     255,0,0\n")
	s.WriteString("\nPalette:\n")
	for _, name := range PaletteOrder {
		c := Palette[name]
		fmt.Fprintf(&s, "  %-8s %s  (%d,%d,%d)\n", name, c.Hex(), c.R, c.G, c.B)
	}
	s.WriteString("\nAnything else renders black.\n")
	return s.String()
}

// FormatPositions describes the accepted position formats.
func FormatPositions() string {
	var s strings.Builder
	s.WriteString("Position formats:\n")
	s.WriteString("  tags:    " + strings.Join(PositionTags, ", ") + "\n")
	s.WriteString("  coords:  100,200       (top-left of the text block)\n")
	s.WriteString("  mixed:   100,vcenter   (x=100, vertically centered)\n")
	s.WriteString("           center,200    (horizontally centered, y=200)\n")
	s.WriteString("  full:    center,center or vcenter\n")
	s.WriteString("\nFile names: <n>-<x>x<y>[-<size>], e.g. 3-100x200-60.jpg, 4-centerxvcenter.png\n")
	s.WriteString("A --position flag beats the file name; a file name size beats --size.\n")
	return s.String()
}

// FormatFonts lists the fonts a provider can load.
func FormatFonts(fonts []FontInfo, dir string) string {
	if len(fonts) == 0 {
		return fmt.Sprintf("No fonts found. Put .ttf or .otf files in %s\n", dir)
	}
	var s strings.Builder
	s.WriteString("Available fonts:\n")
	for _, f := range fonts {
		fmt.Fprintf(&s, "  %-14s %-18s %s\n", f.Key, f.Name, f.Source)
	}
	return s.String()
}
