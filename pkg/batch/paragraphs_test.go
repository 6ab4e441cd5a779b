package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"blank line", "a\nb\n\n\nc\n  \n d \n", []string{"a\nb", "c", "d"}},
		{"crlf", "one\r\n\r\ntwo\r\nmore", []string{"one", "two\nmore"}},
		{"single", "only one\nparagraph", []string{"only one\nparagraph"}},
		{"empty", "\n\n  \n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitParagraphs(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitParagraphs(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestReadParagraphs_UTF8BOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "text.txt")
	if err := os.WriteFile(path, []byte("\ufeff第一段\n\n第二段"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadParagraphs(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"第一段", "第二段"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReadParagraphs_GBK(t *testing.T) {
	encoded, err := simplifiedchinese.GBK.NewEncoder().String("你好\n\n世界")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "gbk.txt")
	if err := os.WriteFile(path, []byte(encoded), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadParagraphs(path, "gbk")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"你好", "世界"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReadParagraphs_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadParagraphs(filepath.Join(dir, "missing.txt"), ""); err == nil {
		t.Error("missing file accepted")
	}

	path := filepath.Join(dir, "x.txt")
	os.WriteFile(path, []byte("x"), 0644)
	if _, err := ReadParagraphs(path, "no-such-encoding"); err == nil {
		t.Error("unknown encoding accepted")
	}
}
