package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		data       any
		wantBody   string
	}{
		{"ok with map", http.StatusOK, map[string]string{"status": "ok"}, "{\"status\":\"ok\"}\n"},
		{"created empty map", http.StatusCreated, map[string]string{}, "{}\n"},
		{"conflict nil body", http.StatusConflict, nil, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondJSON(recorder, tc.statusCode, tc.data)

			assertStatusCode(t, recorder, tc.statusCode)
			assertContentType(t, recorder, "application/json")
			if got := recorder.Header().Get("Cache-Control"); got != "no-store" {
				t.Errorf("expected Cache-Control no-store, got %q", got)
			}
			if recorder.Body.String() != tc.wantBody {
				t.Errorf("expected body %q, got %q", tc.wantBody, recorder.Body.String())
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondError(recorder, http.StatusBadRequest, "something went wrong")

	assertStatusCode(t, recorder, http.StatusBadRequest)
	assertJSONError(t, recorder, "something went wrong")
}

func TestDecodeBody(t *testing.T) {
	var req toggleRequest
	if err := decodeBody(httptest.NewRequest("POST", "/", strings.NewReader(`{"category":"print"}`)), &req); err != nil {
		t.Fatalf("decodeBody: %v", err)
	}
	if req.Category != "print" {
		t.Errorf("category = %q", req.Category)
	}

	empty := resolutionRequest{Resolution: "keep"}
	if err := decodeBody(httptest.NewRequest("POST", "/", nil), &empty); err != nil {
		t.Fatalf("empty body should not fail: %v", err)
	}
	if empty.Resolution != "keep" {
		t.Error("empty body should leave the target untouched")
	}

	if err := decodeBody(httptest.NewRequest("POST", "/", strings.NewReader(`{bad`)), &req); err == nil {
		t.Error("expected error for malformed body")
	}

	oversized := `{"category":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	if err := decodeBody(httptest.NewRequest("POST", "/", strings.NewReader(oversized)), &req); err == nil {
		t.Error("expected error for oversized body")
	}
}

func TestSanitizeForLog(t *testing.T) {
	if got := sanitizeForLog("a\r\nb\nc"); got != "abc" {
		t.Errorf("sanitizeForLog = %q", got)
	}
}

func TestHealthCheck(t *testing.T) {
	for _, method := range []string{"GET", "HEAD"} {
		t.Run(method, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			HealthCheck(recorder, httptest.NewRequest(method, "/api/v1/health", nil))

			assertStatusCode(t, recorder, http.StatusOK)
			var result map[string]string
			if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if result["status"] != "ok" {
				t.Errorf("expected status 'ok', got '%s'", result["status"])
			}
		})
	}
}
