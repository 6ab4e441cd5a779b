// fonts.go - Font lookup with a fonts directory, system font folders and
// embedded Go fonts. Any lookup failure falls back to the configured default
// and finally to Go Regular, so a placement never fails for want of a font.
package caption

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FallbackFont is the embedded face used when nothing else loads.
const FallbackFont = "goregular"

// builtinFonts are always available without touching the file system.
var builtinFonts = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"goitalic":  goitalic.TTF,
	"gomono":    gomono.TTF,
}

// KnownFonts are commonly installed faces probed by Available, with their
// display names.
var KnownFonts = [][2]string{
	{"simkai", "KaiTi"},
	{"simsun", "SimSun"},
	{"simhei", "SimHei"},
	{"simfang", "FangSong"},
	{"msyh", "Microsoft YaHei"},
	{"arial", "Arial"},
	{"calibri", "Calibri"},
	{"times", "Times New Roman"},
	{"verdana", "Verdana"},
	{"comic", "Comic Sans MS"},
	{"impact", "Impact"},
	{"trebuc", "Trebuchet MS"},
	{"DejaVuSans", "DejaVu Sans"},
}

// FontConfig controls where fonts are looked up.
type FontConfig struct {
	Dir        string   // project fonts directory, searched first
	SystemDirs []string // searched after Dir
	Default    string   // used when a requested font cannot be loaded
	DPI        float64  // 72 makes the font size a pixel size
}

// DefaultFontConfig returns a config with a "fonts" directory next to the
// working directory and the usual system font folders for this OS.
func DefaultFontConfig() FontConfig {
	return FontConfig{
		Dir:        "fonts",
		SystemDirs: systemFontDirs(),
		Default:    FallbackFont,
		DPI:        72,
	}
}

func systemFontDirs() []string {
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		return []string{filepath.Join(windir, "Fonts")}
	case "darwin":
		home, _ := os.UserHomeDir()
		return []string{"/System/Library/Fonts", "/Library/Fonts", filepath.Join(home, "Library", "Fonts")}
	default:
		home, _ := os.UserHomeDir()
		return []string{"/usr/share/fonts", "/usr/local/share/fonts", filepath.Join(home, ".fonts"), filepath.Join(home, ".local", "share", "fonts")}
	}
}

// FontProvider resolves font names to faces. Parsed fonts are cached; faces
// are created per call because a font.Face is not safe for concurrent use.
type FontProvider struct {
	cfg FontConfig

	mu     sync.RWMutex
	parsed map[string]*opentype.Font
	extra  map[string][]byte
}

// NewFontProvider creates a provider for cfg. Zero fields take the values of
// DefaultFontConfig where that makes sense.
func NewFontProvider(cfg FontConfig) *FontProvider {
	if cfg.Default == "" {
		cfg.Default = FallbackFont
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 72
	}
	return &FontProvider{
		cfg:    cfg,
		parsed: make(map[string]*opentype.Font),
		extra:  make(map[string][]byte),
	}
}

// Config returns the provider's configuration.
func (fp *FontProvider) Config() FontConfig { return fp.cfg }

// Register makes raw TTF/OTF data available under name. It fails if the
// data does not parse.
func (fp *FontProvider) Register(name string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	fp.mu.Lock()
	fp.extra[name] = data
	fp.parsed["mem:"+name] = f
	fp.mu.Unlock()
	return nil
}

// Face is a sized font face that can measure text.
type Face struct {
	font.Face
	Name string
	Size int
}

// Measure returns the ink bounds of text in whole pixels.
func (f *Face) Measure(text string) (width, height int) {
	b, _ := font.BoundString(f.Face, text)
	return (b.Max.X - b.Min.X).Ceil(), (b.Max.Y - b.Min.Y).Ceil()
}

// Ascent is the distance from the top of a line box to its baseline.
func (f *Face) Ascent() int {
	return f.Metrics().Ascent.Round()
}

// Load returns name at size pixels. Unknown or broken fonts fall back to the
// configured default and then to Go Regular; the error is non-nil only if
// even the embedded font fails.
func (fp *FontProvider) Load(name string, size int) (*Face, error) {
	for _, candidate := range []string{name, fp.cfg.Default, FallbackFont} {
		if candidate == "" {
			continue
		}
		f, key, err := fp.lookup(candidate)
		if err != nil {
			Logger().Warn("caption: font unavailable, falling back", "font", candidate, "err", err)
			continue
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     fp.cfg.DPI,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("create font face: %w", err)
		}
		Logger().Debug("caption: font loaded", "font", candidate, "source", key, "size", size)
		return &Face{Face: face, Name: candidate, Size: size}, nil
	}
	return nil, fmt.Errorf("no usable font for %q", name)
}

// lookup finds and parses a font, consulting the cache first.
func (fp *FontProvider) lookup(name string) (*opentype.Font, string, error) {
	fp.mu.RLock()
	if f, ok := fp.parsed["mem:"+name]; ok {
		fp.mu.RUnlock()
		return f, "mem:" + name, nil
	}
	fp.mu.RUnlock()

	key, data, err := fp.find(name)
	if err != nil {
		return nil, "", err
	}

	fp.mu.RLock()
	f, ok := fp.parsed[key]
	fp.mu.RUnlock()
	if ok {
		return f, key, nil
	}

	f, err = opentype.Parse(data)
	if err != nil {
		return nil, "", fmt.Errorf("parse %s: %w", key, err)
	}
	fp.mu.Lock()
	fp.parsed[key] = f
	fp.mu.Unlock()
	return f, key, nil
}

// find locates font bytes: builtin names, then explicit .ttf/.otf paths,
// then Dir, then SystemDirs.
func (fp *FontProvider) find(name string) (string, []byte, error) {
	if data, ok := builtinFonts[strings.ToLower(name)]; ok {
		return "builtin:" + strings.ToLower(name), data, nil
	}

	if ext := strings.ToLower(filepath.Ext(name)); ext == ".ttf" || ext == ".otf" {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", nil, err
		}
		return name, data, nil
	}

	if path := fp.searchDirs(name); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", nil, err
		}
		return path, data, nil
	}

	return "", nil, fmt.Errorf("font %q not found", name)
}

func (fp *FontProvider) searchDirs(name string) string {
	if fp.cfg.Dir != "" {
		for _, ext := range []string{".ttf", ".otf"} {
			p := filepath.Join(fp.cfg.Dir, name+ext)
			if fileExists(p) {
				return p
			}
		}
	}
	for _, dir := range fp.cfg.SystemDirs {
		if p := findInTree(dir, name); p != "" {
			return p
		}
	}
	return ""
}

// findInTree walks dir looking for name.ttf or name.otf, ignoring case.
func findInTree(dir, name string) string {
	if dir == "" {
		return ""
	}
	var found string
	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		base := d.Name()
		ext := strings.ToLower(filepath.Ext(base))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}
		if strings.EqualFold(strings.TrimSuffix(base, filepath.Ext(base)), name) {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}

// FontInfo describes one font that Load can find.
type FontInfo struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

// Available lists builtin fonts, registered fonts, everything in the fonts
// directory and the KnownFonts present in the system folders.
func (fp *FontProvider) Available() []FontInfo {
	var out []FontInfo

	builtin := make([]string, 0, len(builtinFonts))
	for k := range builtinFonts {
		builtin = append(builtin, k)
	}
	sort.Strings(builtin)
	for _, k := range builtin {
		out = append(out, FontInfo{Key: k, Name: k, Source: "builtin"})
	}

	fp.mu.RLock()
	registered := make([]string, 0, len(fp.extra))
	for k := range fp.extra {
		registered = append(registered, k)
	}
	fp.mu.RUnlock()
	sort.Strings(registered)
	for _, k := range registered {
		out = append(out, FontInfo{Key: k, Name: k, Source: "registered"})
	}

	if fp.cfg.Dir != "" {
		entries, _ := os.ReadDir(fp.cfg.Dir)
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if e.IsDir() || (ext != ".ttf" && ext != ".otf") {
				continue
			}
			stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
			out = append(out, FontInfo{Key: stem, Name: stem, Source: filepath.Join(fp.cfg.Dir, e.Name())})
		}
	}

	for _, kf := range KnownFonts {
		for _, dir := range fp.cfg.SystemDirs {
			if p := findInTree(dir, kf[0]); p != "" {
				out = append(out, FontInfo{Key: kf[0], Name: kf[1], Source: p})
				break
			}
		}
	}

	return out
}

// pt converts a stroke position to a baseline dot for face.
func pt(x, y int, f *Face) fixed.Point26_6 {
	return fixed.P(x, y+f.Ascent())
}
