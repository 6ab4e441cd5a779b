// Package server exposes captioning over HTTP.
package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xob0t/GoCaption/pkg/caption"
	"github.com/xob0t/GoCaption/pkg/imageio"
)

// ── Asset Manager ──

type asset struct {
	Name string
	Data []byte
	Mime string
}

type assetManager struct {
	mu     sync.RWMutex
	assets map[string]*asset
}

func newAssetManager() *assetManager {
	return &assetManager{assets: make(map[string]*asset)}
}

func (am *assetManager) add(name string, data []byte, mimeType string) string {
	id := randomID()
	am.mu.Lock()
	am.assets[id] = &asset{Name: name, Data: data, Mime: mimeType}
	am.mu.Unlock()
	return id
}

func (am *assetManager) get(id string) (*asset, bool) {
	am.mu.RLock()
	a, ok := am.assets[id]
	am.mu.RUnlock()
	return a, ok
}

func (am *assetManager) listAll() []map[string]interface{} {
	am.mu.RLock()
	defer am.mu.RUnlock()
	result := make([]map[string]interface{}, 0, len(am.assets))
	for id, a := range am.assets {
		result = append(result, map[string]interface{}{
			"id":   id,
			"name": a.Name,
			"mime": a.Mime,
			"size": len(a.Data),
		})
	}
	return result
}

func (am *assetManager) remove(id string) {
	am.mu.Lock()
	delete(am.assets, id)
	am.mu.Unlock()
}

func randomID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// ── Server ──

type srv struct {
	captioner *caption.Captioner
	assets    *assetManager
	tmpDir    string
}

// NewHandler returns the API routes. Uploaded fonts are written below
// tmpDir when a caption request refers to them.
func NewHandler(c *caption.Captioner, tmpDir string) http.Handler {
	s := &srv{
		captioner: c,
		assets:    newAssetManager(),
		tmpDir:    tmpDir,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/caption", s.handleCaption)
	mux.HandleFunc("POST /api/upload/font", s.handleUploadFont)
	mux.HandleFunc("GET /api/assets/{id}", s.handleGetAsset)
	mux.HandleFunc("DELETE /api/assets/{id}", s.handleDeleteAsset)
	mux.HandleFunc("GET /api/assets", s.handleListAssets)
	mux.HandleFunc("GET /api/fonts", s.handleFonts)
	mux.HandleFunc("GET /api/colors", s.handleColors)
	mux.HandleFunc("GET /api/positions", s.handlePositions)
	return mux
}

// RunServe serves the API on addr until ctx is cancelled.
func RunServe(ctx context.Context, c *caption.Captioner, addr string) error {
	tmpDir, err := os.MkdirTemp("", "gocaption-serve-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	hs := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(c, tmpDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		hs.Shutdown(shutdownCtx)
	}()

	caption.Logger().Info("server: listening", "url", "http://localhost"+addr)
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ── Caption (core) ──

// captionForm reads the style fields of a caption request. Empty fields are
// left unset so the file name hint can apply.
func captionForm(r *http.Request) (caption.StyleFile, error) {
	st := caption.StyleFile{
		Font:         r.FormValue("font"),
		Color:        r.FormValue("color"),
		Position:     r.FormValue("position"),
		OutlineColor: r.FormValue("outlineColor"),
	}
	for field, dst := range map[string]*int{"size": &st.FontSize, "outlineWidth": &st.OutlineWidth} {
		v := r.FormValue(field)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return st, fmt.Errorf("%s: %w", field, err)
		}
		*dst = n
	}
	return caption.MergeStyles(caption.DefaultStyle(), st), nil
}

func (s *srv) handleCaption(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "no image", http.StatusBadRequest)
		return
	}
	defer file.Close()

	src, err := imageio.Decode(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st, err := captionForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	st.Font = s.resolveAssetPath(st.Font)

	res, err := s.captioner.Render(src, header.Filename, r.FormValue("text"), st.Params())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ext := r.FormValue("format")
	if ext == "" {
		ext = filepath.Ext(header.Filename)
	}
	if ext == "" {
		ext = ".png"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	w.Header().Set("Content-Type", imageio.ContentType(ext))
	w.Header().Set("X-Caption-Anchor", fmt.Sprintf("%d,%d", res.Plan.Anchor.X, res.Plan.Anchor.Y))
	if err := imageio.Encode(w, res.Image, ext); err != nil {
		caption.Logger().Warn("server: encode failed", "err", err)
		return
	}
	caption.Logger().Info("server: captioned", "name", header.Filename,
		"position", caption.FormatPosition(res.Params.Position), "lines", len(res.Plan.Lines))
}

// ── Upload ──

func (s *srv) handleUploadFont(w http.ResponseWriter, r *http.Request) {
	r.ParseMultipartForm(10 << 20)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "no file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, _ := io.ReadAll(file)
	id := s.assets.add(header.Filename, data, "font/ttf")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"id":   id,
		"name": header.Filename,
		"url":  "/api/assets/" + id,
	})
}

// ── Asset serving ──

func (s *srv) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	a, ok := s.assets.get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", a.Mime)
	w.Write(a.Data)
}

func (s *srv) handleListAssets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.assets.listAll())
}

func (s *srv) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	_, ok := s.assets.get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.assets.remove(id)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "deleted", "id": id})
}

// ── Catalog ──

func (s *srv) handleFonts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.captioner.Fonts().Available())
}

func (s *srv) handleColors(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Name string `json:"name"`
		Hex  string `json:"hex"`
	}
	out := make([]entry, 0, len(caption.PaletteOrder))
	for _, name := range caption.PaletteOrder {
		out = append(out, entry{Name: name, Hex: caption.Palette[name].Hex()})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *srv) handlePositions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(caption.PositionTags)
}

// ── Helpers ──

// resolveAssetPath turns an uploaded font id into a file the font provider
// can load. Anything else is returned unchanged.
func (s *srv) resolveAssetPath(path string) string {
	if path == "" {
		return ""
	}
	a, ok := s.assets.get(path)
	if !ok {
		return path
	}
	ext := strings.ToLower(filepath.Ext(a.Name))
	if ext != ".ttf" && ext != ".otf" {
		ext = ".ttf"
	}
	tmpPath := filepath.Join(s.tmpDir, path+"_"+sanitizeFilename(strings.TrimSuffix(a.Name, filepath.Ext(a.Name)))+ext)
	os.WriteFile(tmpPath, a.Data, 0644)
	return tmpPath
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, " ", "_")
	return name
}
