package handlers

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/photo-selector/internal/export"
)

var exportContentTypes = map[string]string{
	"json":    "application/json",
	"text":    "text/plain; charset=utf-8",
	"parquet": "application/vnd.apache.parquet",
}

// Export handles GET /export/{format} and serves the file as a download.
func (h *GalleryHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	ext, ok := export.Formats[format]
	if !ok {
		respondError(w, http.StatusBadRequest, "unsupported export format")
		return
	}

	h.mu.Lock()
	cat := h.ctrl.Catalog()
	selections := h.ctrl.Selections()
	h.mu.Unlock()
	now := h.now()

	var buf bytes.Buffer
	if err := export.Render(&buf, format, h.meta, cat, selections, now); err != nil {
		h.logger.Error("export failed", "format", format, "err", err)
		respondError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", exportContentTypes[format])
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(h.meta.EventName, now, ext)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
