package handlers

import (
	"net/http"

	"github.com/kozaktomas/photo-selector/internal/config"
)

// ConfigHandler handles configuration endpoints
type ConfigHandler struct {
	config *config.Config
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{
		config: cfg,
	}
}

// ConfigResponse describes the event and the storage in use.
type ConfigResponse struct {
	EventName      string         `json:"event_name"`
	Contact        string         `json:"contact"`
	Instructions   string         `json:"instructions"`
	TotalPhotos    int            `json:"total_photos"`
	Limits         map[string]int `json:"limits"`
	StorageBackend string         `json:"storage_backend"`
}

// Get returns the event configuration
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	ev := h.config.Event
	limits := ev.Limits
	if limits == nil {
		limits = map[string]int{}
	}
	respondJSON(w, http.StatusOK, ConfigResponse{
		EventName:      ev.Name,
		Contact:        ev.Contact,
		Instructions:   ev.Instructions,
		TotalPhotos:    ev.TotalPhotos,
		Limits:         limits,
		StorageBackend: h.config.Storage.Backend,
	})
}
