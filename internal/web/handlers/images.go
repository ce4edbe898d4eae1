package handlers

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/photo-selector/internal/catalog"
	"github.com/kozaktomas/photo-selector/internal/constants"
	"github.com/kozaktomas/photo-selector/internal/fingerprint"
)

// ImagesHandler serves catalog images from a directory, optionally downscaled.
type ImagesHandler struct {
	root http.FileSystem
}

// NewImagesHandler serves files below dir.
func NewImagesHandler(dir string) *ImagesHandler {
	return &ImagesHandler{root: http.Dir(dir)}
}

// Serve handles GET /images/*. The optional size query parameter fits the
// image within that many pixels and returns a JPEG.
func (h *ImagesHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + chi.URLParam(r, "*"))
	if !catalog.IsImage(name) {
		respondError(w, http.StatusNotFound, "image not found")
		return
	}

	f, err := h.root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			respondError(w, http.StatusNotFound, "image not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to open image")
		return
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil || stat.IsDir() {
		respondError(w, http.StatusNotFound, "image not found")
		return
	}

	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=86400")

	sizeParam := r.URL.Query().Get("size")
	if sizeParam == "" {
		http.ServeContent(w, r, stat.Name(), stat.ModTime(), f)
		return
	}

	size, err := strconv.Atoi(sizeParam)
	if err != nil || size <= 0 || size > constants.MaxImageSize {
		respondError(w, http.StatusBadRequest, "invalid size")
		return
	}
	data, err := io.ReadAll(f)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read image")
		return
	}
	resized, err := fingerprint.ResizeImage(data, size)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "failed to resize image")
		return
	}
	contentName := stat.Name()
	if !bytes.Equal(resized, data) {
		contentName = strings.TrimSuffix(contentName, path.Ext(contentName)) + ".jpg"
	}
	http.ServeContent(w, r, contentName, time.Time{}, bytes.NewReader(resized))
}
