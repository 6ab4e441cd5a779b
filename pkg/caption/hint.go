// hint.go — Placement hints encoded in image file names.
//
// Convention: <anything>-<x>x<y>[-<fontSize>], e.g. "3-100x200-60.jpg" or
// "7-centerxvcenter.png".
package caption

import (
	"path/filepath"
	"strconv"
	"strings"
)

// HintFromPath parses the hint carried by the base name of path, without
// its directory or extension.
func HintFromPath(path string) Hint {
	base := filepath.Base(path)
	return ParseHint(strings.TrimSuffix(base, filepath.Ext(base)))
}

// ParseHint decodes a base file name. Names that do not follow the
// convention yield an empty Hint; the font size is only reported together
// with a well-formed position token.
func ParseHint(baseName string) (h Hint) {
	defer func() {
		if recover() != nil {
			h = Hint{}
		}
	}()

	parts := strings.Split(baseName, "-")
	if len(parts) < 2 {
		return Hint{}
	}

	var size *int
	if len(parts) >= 3 {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil {
			size = &n
		}
	}

	posPart := parts[1]
	if !strings.Contains(posPart, "x") {
		return Hint{}
	}
	coords := strings.Split(posPart, "x")
	if len(coords) != 2 {
		return Hint{}
	}

	pair := PositionPair{
		X: parseXToken(strings.TrimSpace(coords[0])),
		Y: parseYToken(strings.TrimSpace(coords[1])),
	}
	return Hint{Position: &pair, FontSize: size}
}

func parseXToken(s string) Token {
	if strings.EqualFold(s, "center") {
		return Token{Kind: TokenCenter}
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Token{Kind: TokenInt, N: n}
	}
	return Token{Kind: TokenRaw, Raw: s}
}

func parseYToken(s string) Token {
	switch strings.ToLower(s) {
	case "center":
		return Token{Kind: TokenCenter}
	case "vcenter":
		return Token{Kind: TokenVCenter}
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Token{Kind: TokenInt, N: n}
	}
	return Token{Kind: TokenRaw, Raw: s}
}

// String renders the token the way it appears in a comma pair.
func (t Token) String() string {
	switch t.Kind {
	case TokenCenter:
		return "center"
	case TokenVCenter:
		return "vcenter"
	case TokenRaw:
		return t.Raw
	}
	return strconv.Itoa(t.N)
}

// String renders the pair as "x,y".
func (p PositionPair) String() string {
	return p.X.String() + "," + p.Y.String()
}
