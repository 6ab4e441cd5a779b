package caption

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.json")
	if err := os.WriteFile(path, []byte(ExampleStyleJSON()), 0644); err != nil {
		t.Fatal(err)
	}

	st, err := LoadStyle(path)
	if err != nil {
		t.Fatalf("LoadStyle: %v", err)
	}
	if st.FontSize != 48 || st.Color != "white" || st.Position != "bottom-center" {
		t.Errorf("style = %+v", st)
	}
	if w := ValidateStyle(st); len(w) != 0 {
		t.Errorf("example style has warnings: %v", w)
	}
}

func TestParseStyle_Invalid(t *testing.T) {
	if _, err := ParseStyle([]byte("{not json")); err == nil {
		t.Error("expected error")
	}
	if _, err := LoadStyle(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStyleParams(t *testing.T) {
	p := StyleFile{FontSize: 30, Color: "red"}.Params()
	if p.Position != nil {
		t.Errorf("empty position should stay unset, got %v", p.Position)
	}
	if p.OutlineColor != nil {
		t.Errorf("empty outline color should stay unset, got %v", p.OutlineColor)
	}

	p = StyleFile{Position: "center", OutlineColor: "black"}.Params()
	if p.Position != PositionText("center") || p.OutlineColor != ColorText("black") {
		t.Errorf("params = %+v", p)
	}
}

func TestValidateStyle(t *testing.T) {
	w := ValidateStyle(StyleFile{Color: "chartreuse", OutlineColor: "#12", OutlineWidth: -1})
	if len(w) != 3 {
		t.Fatalf("warnings = %v, want 3", w)
	}
	if !strings.Contains(w[0], "chartreuse") {
		t.Errorf("first warning = %q", w[0])
	}
}
