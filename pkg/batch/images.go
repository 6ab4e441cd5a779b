// images.go — Find source images in a folder and order them for pairing.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/xob0t/GoCaption/pkg/imageio"
)

var firstNumber = regexp.MustCompile(`\d+`)

// ListImages returns the images directly inside folder that are not
// earlier outputs (names containing "_text" or "_with_text"), sorted by
// SortKey and then by name.
func ListImages(folder string) ([]string, error) {
	all, err := scanImages(folder)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, p := range all {
		if IsOutputName(filepath.Base(p)) {
			continue
		}
		files = append(files, p)
	}

	sort.SliceStable(files, func(i, j int) bool {
		ki, kj := SortKey(files[i]), SortKey(files[j])
		if ki != kj {
			return ki < kj
		}
		return filepath.Base(files[i]) < filepath.Base(files[j])
	})
	return files, nil
}

// scanImages lists every image file directly inside folder.
func scanImages(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !imageio.IsImage(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(folder, e.Name()))
	}
	return files, nil
}

// IsOutputName reports whether a file name looks like something this tool
// wrote.
func IsOutputName(name string) bool {
	return strings.Contains(name, "_text") || strings.Contains(name, "_with_text")
}

// SortKey is the first run of digits in the part of the base name before
// the first "-", or 0 when there is none.
func SortKey(path string) int {
	first := strings.SplitN(filepath.Base(path), "-", 2)[0]
	m := firstNumber.FindString(first)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
