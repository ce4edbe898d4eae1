package export

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/kozaktomas/photo-selector/internal/catalog"
	"github.com/kozaktomas/photo-selector/internal/config"
	"github.com/kozaktomas/photo-selector/internal/selection"
	"github.com/parquet-go/parquet-go"
)

var testNow = time.Date(2026, 10, 18, 17, 5, 9, 120_000_000, time.UTC)

func testCatalog(t *testing.T, size int) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(size, "images/foto%04d.webp")
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return cat
}

func testMeta() Meta {
	return Meta{
		EventName:    "XV Años - Alexa Esmeralda",
		Contact:      "4779203776",
		Instructions: "Send this file by WhatsApp",
		Location:     time.UTC,
	}
}

func TestBuildReportThreePhotos(t *testing.T) {
	cat := testCatalog(t, 3)
	m := selection.Map{0: {Print: true}, 2: {Discard: true}}
	r := BuildReport(testMeta(), cat, m, testNow)

	if r.TotalPhotos != 3 {
		t.Errorf("total = %d", r.TotalPhotos)
	}
	if r.ExportDate != "2026-10-18T17:05:09.120Z" {
		t.Errorf("export date = %q", r.ExportDate)
	}
	want := []Entry{
		{PhotoNumber: 1, Path: "images/foto0001.webp", Print: true},
		{PhotoNumber: 3, Path: "images/foto0003.webp", Discard: true},
	}
	if !reflect.DeepEqual(r.Selections, want) {
		t.Errorf("selections = %+v", r.Selections)
	}
	if r.Stats != (selection.Stats{Print: 1, Discard: 1, Unclassified: 1}) {
		t.Errorf("stats = %+v", r.Stats)
	}

	printOnly := BuildReport(testMeta(), cat, selection.Map{0: {Print: true}}, testNow)
	if len(printOnly.Selections) != 1 || printOnly.Selections[0].PhotoNumber != 1 {
		t.Errorf("selections = %+v", printOnly.Selections)
	}
}

func TestWriteJSONFields(t *testing.T) {
	cat := testCatalog(t, 3)
	var buf bytes.Buffer
	if err := WriteJSON(&buf, BuildReport(testMeta(), cat, selection.Map{}, testNow)); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"instructions", "contact", "export_date", "event_name", "total_photos", "stats", "selections"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing field %q", key)
		}
	}
	if sel, ok := doc["selections"].([]any); !ok || len(sel) != 0 {
		t.Errorf("selections should be an empty array, got %v", doc["selections"])
	}
	stats := doc["stats"].(map[string]any)
	if stats["unclassified"] != float64(3) {
		t.Errorf("stats = %v", stats)
	}
	if !strings.Contains(buf.String(), "XV Años") {
		t.Error("event name should not be escaped")
	}
}

func TestSummary(t *testing.T) {
	cat := testCatalog(t, 6)
	m := selection.Map{
		0: {Print: true, Social: true},
		2: {Print: true},
		4: {Enlargement: true},
	}
	got := Summary(testMeta(), cat, m, testNow)
	want := "PHOTO SELECTION - XV AÑOS - ALEXA ESMERALDA\n" +
		"=======================================\n\n" +
		"OVERVIEW:\n" +
		"   Total photos: 6\n" +
		"   Enlargement: 1\n" +
		"   Print: 2\n" +
		"   Social media: 1\n" +
		"   Discarded: 0\n" +
		"   Unclassified: 3\n\n" +
		"ENLARGEMENT:\n" +
		"   Photos: 5\n" +
		"   Total: 1\n\n" +
		"PRINT:\n" +
		"   Photos: 1, 3\n" +
		"   Total: 2\n\n" +
		"SOCIAL MEDIA:\n" +
		"   Photos: 1\n" +
		"   Total: 1\n\n" +
		"\nGenerated: 18/10/2026, 17:05:09\n"
	if got != want {
		t.Errorf("summary mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
	if strings.Contains(got, "DISCARDED:") {
		t.Error("empty categories must be omitted")
	}
}

func TestSummaryUsesEventTimeZone(t *testing.T) {
	meta, err := MetaFromEvent(config.EventConfig{Name: "Party", TimeZone: "America/Mexico_City"})
	if err != nil {
		t.Fatalf("MetaFromEvent: %v", err)
	}
	got := Summary(meta, testCatalog(t, 1), selection.Map{}, testNow)
	if !strings.HasSuffix(got, "Generated: 18/10/2026, 11:05:09\n") {
		t.Errorf("unexpected footer in %q", got)
	}
}

func TestMetaFromEventBadZone(t *testing.T) {
	if _, err := MetaFromEvent(config.EventConfig{TimeZone: "Mars/Olympus"}); err == nil {
		t.Error("expected error")
	}
}

func TestWriteParquet(t *testing.T) {
	entries := Entries(testCatalog(t, 4), selection.Map{1: {Print: true, Social: true}, 3: {Discard: true}})
	var buf bytes.Buffer
	if err := WriteParquet(&buf, entries); err != nil {
		t.Fatalf("WriteParquet: %v", err)
	}
	rows, err := parquet.Read[Entry](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reading parquet: %v", err)
	}
	if !reflect.DeepEqual(rows, entries) {
		t.Errorf("rows = %+v, want %+v", rows, entries)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"XV Años - Alexa Esmeralda", "xv-anos-alexa-esmeralda"},
		{"  Žluťoučký kůň!  ", "zlutoucky-kun"},
		{"2026 Party", "2026-party"},
		{"", "event"},
		{"---", "event"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.expected {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	got := FileName("XV Años - Alexa Esmeralda", testNow, Formats["text"])
	if got != "selection-xv-anos-alexa-esmeralda-2026-10-18.txt" {
		t.Errorf("FileName = %q", got)
	}
}
