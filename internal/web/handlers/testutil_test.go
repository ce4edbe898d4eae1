package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/photo-selector/internal/catalog"
	"github.com/kozaktomas/photo-selector/internal/database/mock"
	"github.com/kozaktomas/photo-selector/internal/export"
	"github.com/kozaktomas/photo-selector/internal/gallery"
	"github.com/kozaktomas/photo-selector/internal/logging"
	"github.com/kozaktomas/photo-selector/internal/selection"
)

const testStorageKey = "selections"

var testNow = time.Date(2026, 10, 18, 17, 5, 9, 0, time.UTC)

// testGallery bundles a handler with the fakes behind it
type testGallery struct {
	handler *GalleryHandler
	ctrl    *gallery.Controller
	kv      *mock.MockKVStore
	events  *Broadcaster
}

// newTestGallery creates a handler over a fresh catalog of size photos
func newTestGallery(t *testing.T, size int, limits selection.Limits) *testGallery {
	t.Helper()
	cat, err := catalog.New(size, "images/foto%04d.webp")
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	kv := mock.NewMockKVStore()
	ctrl := gallery.New(cat, selection.NewStore(kv, testStorageKey, size, nil), limits, nil)
	ctrl.Load(context.Background())
	events := NewBroadcaster()
	meta := export.Meta{EventName: "XV Años - Alexa Esmeralda", Contact: "4779203776", Location: time.UTC}
	h := NewGalleryHandler(ctrl, meta, events, 0, logging.Discard())
	h.now = func() time.Time { return testNow }
	return &testGallery{handler: h, ctrl: ctrl, kv: kv, events: events}
}

// jsonRequest creates a request with a JSON body
func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertContentType checks if the response has the expected content type
func assertContentType(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	ct := recorder.Header().Get("Content-Type")
	if ct != expected {
		t.Errorf("expected Content-Type '%s', got '%s'", expected, ct)
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}
