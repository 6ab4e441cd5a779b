package batch

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"10-a.jpg",
		"2-centerxvcenter.png",
		"b.png",
		"1_text.jpg",
		"3-x_with_text.png",
		"notes.txt",
		"2-a.jpg",
	)
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := ListImages(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"b.png", "2-a.jpg", "2-centerxvcenter.png", "10-a.jpg"}
	if len(got) != len(want) {
		t.Fatalf("got %d images %q, want %q", len(got), got, want)
	}
	for i := range want {
		if filepath.Base(got[i]) != want[i] {
			t.Errorf("[%d] = %s, want %s", i, filepath.Base(got[i]), want[i])
		}
	}
}

func TestListImages_MissingFolder(t *testing.T) {
	if _, err := ListImages(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error")
	}
}

func TestSortKey(t *testing.T) {
	tests := map[string]int{
		"3-100x200-60.jpg": 3,
		"img12-5x5.png":    12,
		"007.png":          7,
		"photo.png":        0,
		"a-99.png":         0,
		"/x/y/42.jpg":      42,
	}
	for name, want := range tests {
		if got := SortKey(name); got != want {
			t.Errorf("SortKey(%q) = %d, want %d", name, got, want)
		}
	}
}
