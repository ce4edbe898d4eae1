package handlers

import (
	"context"
	"errors"
	"net/http"
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/photo-selector/internal/export"
	"github.com/kozaktomas/photo-selector/internal/gallery"
	"github.com/kozaktomas/photo-selector/internal/selection"
	"golang.org/x/time/rate"
)

// GalleryHandler exposes the controller commands over HTTP. Commands are
// serialized so the controller keeps a single writer.
type GalleryHandler struct {
	mu      sync.Mutex
	ctrl    *gallery.Controller
	meta    export.Meta
	events  *Broadcaster
	flushes *rate.Limiter
	logger  *log.Logger
	now     func() time.Time
}

// NewGalleryHandler creates a gallery handler. flushesPerMinute caps the
// opportunistic flush endpoint; zero or less disables the cap.
func NewGalleryHandler(ctrl *gallery.Controller, meta export.Meta, events *Broadcaster, flushesPerMinute int, logger *log.Logger) *GalleryHandler {
	limit := rate.Inf
	if flushesPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(flushesPerMinute))
	}
	return &GalleryHandler{
		ctrl:    ctrl,
		meta:    meta,
		events:  events,
		flushes: rate.NewLimiter(limit, 1),
		logger:  logger,
		now:     time.Now,
	}
}

// PhotoResponse is one catalog entry as shown in the grid.
type PhotoResponse struct {
	Index      int                  `json:"index"`
	Number     int                  `json:"number"`
	Path       string               `json:"path"`
	URL        string               `json:"url"`
	Visible    bool                 `json:"visible"`
	Record     selection.Record     `json:"record"`
	Categories []selection.Category `json:"categories"`
}

// PhotosResponse lists the catalog under a filter.
type PhotosResponse struct {
	Filter  selection.Filter `json:"filter"`
	Visible int              `json:"visible"`
	Photos  []PhotoResponse  `json:"photos"`
}

// StatsResponse carries the counts and limit status.
type StatsResponse struct {
	TotalPhotos  int                      `json:"total_photos"`
	Stats        selection.Stats          `json:"stats"`
	Limits       map[string]int           `json:"limits"`
	Exceeded     []selection.LimitWarning `json:"exceeded"`
	FilterCounts map[selection.Filter]int `json:"filter_counts"`
}

// CommandResponse is returned by every state-changing endpoint.
type CommandResponse struct {
	Outcome gallery.Outcome  `json:"outcome,omitempty"`
	State   gallery.State    `json:"state"`
	Stats   selection.Stats  `json:"stats"`
	Notices []gallery.Notice `json:"notices,omitempty"`
}

type filterRequest struct {
	Filter string `json:"filter"`
}

type resolutionRequest struct {
	Resolution string `json:"resolution"`
}

type toggleRequest struct {
	Category string `json:"category"`
}

type navigateRequest struct {
	Direction  string `json:"direction"`
	Resolution string `json:"resolution"`
}

type clearRequest struct {
	Confirm bool `json:"confirm"`
}

// Photos handles GET /photos.
func (h *GalleryHandler) Photos(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	filter := h.ctrl.Filter()
	if q := r.URL.Query().Get("filter"); q != "" {
		f, err := selection.ParseFilter(q)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter = f
	}

	selections := h.ctrl.Selections()
	resp := PhotosResponse{Filter: filter}
	for _, p := range h.ctrl.Catalog().Photos() {
		rec := selections.Get(p.Index)
		visible := selection.IsVisible(p.Index, filter, selections)
		if visible {
			resp.Visible++
		}
		resp.Photos = append(resp.Photos, PhotoResponse{
			Index:      p.Index,
			Number:     p.Number(),
			Path:       p.Path,
			URL:        "/images/" + path.Base(p.Path),
			Visible:    visible,
			Record:     rec,
			Categories: rec.Categories(),
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

// Stats handles GET /stats.
func (h *GalleryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	respondJSON(w, http.StatusOK, h.statsLocked())
}

func (h *GalleryHandler) statsLocked() StatsResponse {
	stats := h.ctrl.Stats()
	size := h.ctrl.Catalog().Size()
	counts := make(map[selection.Filter]int, len(selection.Filters))
	for _, f := range selection.Filters {
		counts[f] = f.Count(stats, size)
	}
	exceeded := h.ctrl.Exceeded()
	if exceeded == nil {
		exceeded = []selection.LimitWarning{}
	}
	return StatsResponse{
		TotalPhotos:  size,
		Stats:        stats,
		Limits:       h.ctrl.Limits().Names(),
		Exceeded:     exceeded,
		FilterCounts: counts,
	}
}

// State handles GET /state.
func (h *GalleryHandler) State(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	respondJSON(w, http.StatusOK, h.ctrl.State())
}

// SetFilter handles PUT /filter.
func (h *GalleryHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	f, err := selection.ParseFilter(req.Filter)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.ctrl.SetFilter(f)
	h.respondCommand(w, "", nil)
}

// Open handles POST /photos/{index}/open.
func (h *GalleryHandler) Open(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid photo index")
		return
	}
	res, ok := parseResolution(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	result, err := h.ctrl.Open(r.Context(), index, res)
	if err != nil {
		h.respondCommandError(w, err)
		return
	}
	h.respondResult(w, result)
}

// Toggle handles POST /draft/toggle.
func (h *GalleryHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	cat, err := selection.ParseCategory(req.Category)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	notices, err := h.ctrl.ToggleCategory(cat)
	if err != nil {
		h.respondCommandError(w, err)
		return
	}
	h.publishNotices(notices)
	respondJSON(w, http.StatusOK, CommandResponse{
		State:   h.ctrl.State(),
		Stats:   h.ctrl.Stats(),
		Notices: notices,
	})
}

// Save handles POST /draft/save. With ?close=true the detail view is
// closed after a successful save.
func (h *GalleryHandler) Save(w http.ResponseWriter, r *http.Request) {
	closeAfter, _ := strconv.ParseBool(r.URL.Query().Get("close"))

	h.mu.Lock()
	defer h.mu.Unlock()
	notices, err := h.ctrl.SaveDraft(r.Context())
	if err != nil {
		h.respondCommandError(w, err)
		return
	}
	outcome := gallery.OutcomeProceeded
	if closeAfter {
		result, err := h.ctrl.Close(r.Context(), gallery.ResolveDiscard)
		if err != nil {
			h.respondCommandError(w, err)
			return
		}
		outcome = result.Outcome
	}
	h.respondCommand(w, outcome, notices)
}

// Navigate handles POST /navigate.
func (h *GalleryHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	dir, err := selection.ParseDirection(req.Direction)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := gallery.ParseResolution(req.Resolution)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	result, err := h.ctrl.Navigate(r.Context(), dir, res)
	if err != nil {
		h.respondCommandError(w, err)
		return
	}
	h.respondResult(w, result)
}

// Close handles POST /close.
func (h *GalleryHandler) Close(w http.ResponseWriter, r *http.Request) {
	res, ok := parseResolution(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	result, err := h.ctrl.Close(r.Context(), res)
	if err != nil {
		h.respondCommandError(w, err)
		return
	}
	h.respondResult(w, result)
}

// Clear handles DELETE /selections. The body must carry {"confirm": true}.
func (h *GalleryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	var req clearRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	result := h.ctrl.ClearAll(r.Context(), req.Confirm)
	if result.Outcome == gallery.OutcomeProceeded {
		h.logger.Warn("all selections cleared", "remote", sanitizeForLog(r.RemoteAddr))
	}
	h.respondResult(w, result)
}

// Flush handles POST /flush, sent by the page when it is hidden or unloaded.
func (h *GalleryHandler) Flush(w http.ResponseWriter, r *http.Request) {
	if !h.flushes.Allow() {
		respondError(w, http.StatusTooManyRequests, "flush rate limit exceeded")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ctrl.Flush(r.Context()); err != nil {
		h.logger.Warn("flush failed", "err", err)
		n := gallery.PersistNotice(err)
		h.publishNotices([]gallery.Notice{n})
		respondJSON(w, http.StatusOK, map[string]any{"flushed": false, "notices": []gallery.Notice{n}})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"flushed": true})
}

// Persist writes the committed selections outside the request cycle.
// It is used on shutdown and is not rate-limited.
func (h *GalleryHandler) Persist(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ctrl.Flush(ctx)
}

// Events handles GET /events, streaming stats and notices as SSE.
func (h *GalleryHandler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	id, ch := h.events.Subscribe()
	defer h.events.Unsubscribe(id)

	h.mu.Lock()
	initial := h.statsLocked()
	h.mu.Unlock()
	sendSSEEvent(w, flusher, "stats", initial)

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			sendSSEEvent(w, flusher, event.Type, event)
		}
	}
}

func parseResolution(w http.ResponseWriter, r *http.Request) (gallery.Resolution, bool) {
	var req resolutionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return "", false
	}
	res, err := gallery.ParseResolution(req.Resolution)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return res, true
}

// respondResult writes a gated command result. A pending decision is a 409
// so clients can prompt and retry with a resolution.
func (h *GalleryHandler) respondResult(w http.ResponseWriter, result gallery.Result) {
	if result.Outcome == gallery.OutcomeNeedsDecision {
		respondJSON(w, http.StatusConflict, CommandResponse{
			Outcome: result.Outcome,
			State:   h.ctrl.State(),
			Stats:   h.ctrl.Stats(),
		})
		return
	}
	h.respondCommand(w, result.Outcome, result.Notices)
}

func (h *GalleryHandler) respondCommand(w http.ResponseWriter, outcome gallery.Outcome, notices []gallery.Notice) {
	h.publishNotices(notices)
	h.events.Publish("stats", h.statsLocked())
	respondJSON(w, http.StatusOK, CommandResponse{
		Outcome: outcome,
		State:   h.ctrl.State(),
		Stats:   h.ctrl.Stats(),
		Notices: notices,
	})
}

func (h *GalleryHandler) respondCommandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gallery.ErrIndexOutOfRange):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, gallery.ErrNoPhotoOpen):
		respondError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("gallery command failed", "err", err)
		respondError(w, http.StatusInternalServerError, "command failed")
	}
}

func (h *GalleryHandler) publishNotices(notices []gallery.Notice) {
	for _, n := range notices {
		h.events.Publish("notice", n)
	}
}
