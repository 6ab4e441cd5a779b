package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"path/filepath"
	"testing"
)

func TestIsImage(t *testing.T) {
	tests := map[string]bool{
		"a.jpg":       true,
		"B.JPEG":      true,
		"c.png":       true,
		"d.webp":      true,
		"e.tiff":      true,
		"notes.txt":   false,
		"noextension": false,
	}
	for name, want := range tests {
		if got := IsImage(name); got != want {
			t.Errorf("IsImage(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	if got, want := DefaultOutputPath(filepath.Join("dir", "a.b.jpg")), filepath.Join("dir", "a.b_with_text.jpg"); got != want {
		t.Errorf("DefaultOutputPath = %q, want %q", got, want)
	}
	if got, want := BatchOutputPath("out", filepath.Join("src", "3-1x2.png")), filepath.Join("out", "3-1x2_text.jpg"); got != want {
		t.Errorf("BatchOutputPath = %q, want %q", got, want)
	}
}

func TestFlattenAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	out := FlattenAlpha(img)
	if c := out.NRGBAAt(0, 0); c != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("opaque pixel = %v", c)
	}
	c := out.NRGBAAt(1, 0)
	if c.A != 255 {
		t.Errorf("alpha = %d, want 255", c.A)
	}
	if diff(c.R, 200) > 2 || diff(c.G, 100) > 2 || diff(c.B, 50) > 2 {
		t.Errorf("translucent pixel = %v, want about (200,100,50)", c)
	}
}

func TestSaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}

	for _, name := range []string{"out.png", "out.jpg", "out.bmp"} {
		path := filepath.Join(dir, name)
		if err := Save(img, path); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
		back, err := Open(path)
		if err != nil {
			t.Fatalf("Open(%s): %v", name, err)
		}
		if back.Bounds().Size() != image.Pt(8, 6) {
			t.Errorf("%s size = %v", name, back.Bounds().Size())
		}
	}

	if err := Save(img, filepath.Join(dir, "out.xyz")); err == nil {
		t.Error("unknown extension accepted")
	}
	if _, err := Open(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file opened")
	}
}

func TestEncode(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := Encode(&buf, img, ".jpg"); err != nil {
		t.Fatal(err)
	}
	if _, err := jpeg.Decode(&buf); err != nil {
		t.Errorf("not a jpeg: %v", err)
	}

	buf.Reset()
	if err := Encode(&buf, img, ".png"); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(&buf); err != nil {
		t.Errorf("png did not decode: %v", err)
	}
}

func TestContentType(t *testing.T) {
	for ext, want := range map[string]string{".jpg": "image/jpeg", "JPEG": "image/jpeg", ".png": "image/png", ".bmp": "image/bmp", "": "image/png"} {
		if got := ContentType(ext); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", ext, got, want)
		}
	}
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
