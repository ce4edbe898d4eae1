package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/photo-selector/internal/config"
)

func TestNewConfigHandler(t *testing.T) {
	cfg := &config.Config{}

	handler := NewConfigHandler(cfg)

	if handler == nil {
		t.Fatal("expected non-nil handler")
		return
	}

	if handler.config != cfg {
		t.Error("expected handler to hold reference to config")
	}
}

func TestConfigHandler_Get(t *testing.T) {
	cfg := &config.Config{
		Event: config.EventConfig{
			Name:        "XV Años - Alexa Esmeralda",
			Contact:     "4779203776",
			TotalPhotos: 86,
			Limits:      map[string]int{"print": 80, "enlargement": 1},
		},
		Storage: config.StorageConfig{Backend: "sqlite"},
	}
	handler := NewConfigHandler(cfg)

	recorder := httptest.NewRecorder()
	handler.Get(recorder, httptest.NewRequest("GET", "/api/v1/config", nil))

	assertStatusCode(t, recorder, http.StatusOK)
	assertContentType(t, recorder, "application/json")

	var resp ConfigResponse
	parseJSONResponse(t, recorder, &resp)
	if resp.EventName != cfg.Event.Name || resp.TotalPhotos != 86 || resp.StorageBackend != "sqlite" {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.Limits["print"] != 80 || resp.Limits["enlargement"] != 1 {
		t.Errorf("limits = %v", resp.Limits)
	}
}

func TestConfigHandler_Get_NilLimits(t *testing.T) {
	handler := NewConfigHandler(&config.Config{})
	recorder := httptest.NewRecorder()
	handler.Get(recorder, httptest.NewRequest("GET", "/api/v1/config", nil))

	var resp map[string]any
	parseJSONResponse(t, recorder, &resp)
	if _, ok := resp["limits"].(map[string]any); !ok {
		t.Errorf("limits should be an object, got %v", resp["limits"])
	}
}
