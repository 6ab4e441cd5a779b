// paragraphs.go — Split a text file into blank-line separated paragraphs.
package batch

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var paragraphSep = regexp.MustCompile(`\n\s*\n`)

// ReadParagraphs reads path in the named encoding ("" means UTF-8) and
// returns its paragraphs. A UTF-8 or UTF-16 byte order mark is honored.
func ReadParagraphs(path, enc string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open text file: %w", err)
	}
	defer f.Close()

	dec, err := decoder(enc)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(transform.NewReader(f, dec))
	if err != nil {
		return nil, fmt.Errorf("read %s as %s: %w", path, encName(enc), err)
	}
	return SplitParagraphs(string(data)), nil
}

// SplitParagraphs splits content on blank lines. Paragraphs are trimmed but
// keep their inner line breaks; empty ones are dropped.
func SplitParagraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	var out []string
	for _, p := range paragraphSep.Split(content, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func decoder(name string) (transform.Transformer, error) {
	var enc encoding.Encoding = unicode.UTF8
	if name != "" {
		e, err := htmlindex.Get(name)
		if err != nil {
			return nil, fmt.Errorf("unknown text encoding %q: %w", name, err)
		}
		enc = e
	}
	return unicode.BOMOverride(enc.NewDecoder()), nil
}

func encName(name string) string {
	if name == "" {
		return "utf-8"
	}
	return name
}
