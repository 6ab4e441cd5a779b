// Package imageio reads source images and writes captioned results.
//
// Every output goes through one pipeline: pick the format from the file
// extension, drop alpha for formats other than PNG, then encode.
package imageio

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // webp sources
)

// Extensions are the source image extensions picked up by folder scans.
var Extensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tiff", ".webp"}

// IsImage reports whether path has one of Extensions, in any case.
func IsImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Open decodes the image at path.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return img, nil
}

// Decode reads an image from r.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Save writes img to path, inferring the format from the extension.
func Save(img image.Image, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("unsupported output %q: %w", filepath.Ext(path), err)
	}
	if err := imaging.Save(prepare(img, format), path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Encode writes img to w in the format named by ext (".png", ".jpg", ...).
func Encode(w io.Writer, img image.Image, ext string) error {
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return fmt.Errorf("unsupported format %q: %w", ext, err)
	}
	if err := imaging.Encode(w, prepare(img, format), format, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

// ContentType returns the MIME type for an output extension.
func ContentType(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "tif", "tiff":
		return "image/tiff"
	default:
		return "image/png"
	}
}

func prepare(img image.Image, format imaging.Format) image.Image {
	if format == imaging.PNG {
		return img
	}
	return FlattenAlpha(img)
}

// FlattenAlpha drops the alpha channel: color channels are kept as they are
// (un-premultiplied) and every pixel becomes opaque. The result starts at
// the origin.
func FlattenAlpha(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

// DefaultOutputPath is "<name>_with_text<ext>" next to src.
func DefaultOutputPath(src string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + "_with_text" + ext
}

// BatchOutputPath is "<outDir>/<name>_text.jpg".
func BatchOutputPath(outDir, src string) string {
	base := filepath.Base(src)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, name+"_text.jpg")
}
