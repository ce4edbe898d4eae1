// Package export renders the selection map for sharing: a JSON report,
// a plain-text summary and a parquet table.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/kozaktomas/photo-selector/internal/catalog"
	"github.com/kozaktomas/photo-selector/internal/config"
	"github.com/kozaktomas/photo-selector/internal/selection"
)

// isoMillis matches the timestamp layout browsers produce for Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z"

// Meta carries the event details printed on every export.
type Meta struct {
	EventName    string
	Contact      string
	Instructions string
	Location     *time.Location
}

// MetaFromEvent resolves the event time zone.
func MetaFromEvent(e config.EventConfig) (Meta, error) {
	loc := time.UTC
	if e.TimeZone != "" {
		var err error
		loc, err = time.LoadLocation(e.TimeZone)
		if err != nil {
			return Meta{}, fmt.Errorf("loading time zone %q: %w", e.TimeZone, err)
		}
	}
	return Meta{
		EventName:    e.Name,
		Contact:      e.Contact,
		Instructions: e.Instructions,
		Location:     loc,
	}, nil
}

// Entry is one classified photo.
type Entry struct {
	PhotoNumber int    `json:"photo_number" parquet:"photo_number"`
	Path        string `json:"path" parquet:"path"`
	Enlargement bool   `json:"enlargement" parquet:"enlargement"`
	Print       bool   `json:"print" parquet:"print"`
	Social      bool   `json:"social" parquet:"social"`
	Discard     bool   `json:"discard" parquet:"discard"`
}

// Report is the structured export document.
type Report struct {
	Instructions string          `json:"instructions"`
	Contact      string          `json:"contact"`
	ExportDate   string          `json:"export_date"`
	EventName    string          `json:"event_name"`
	TotalPhotos  int             `json:"total_photos"`
	Stats        selection.Stats `json:"stats"`
	Selections   []Entry         `json:"selections"`
}

// Entries lists the non-empty records in catalog order.
func Entries(cat *catalog.Catalog, m selection.Map) []Entry {
	entries := make([]Entry, 0, len(m))
	for _, index := range m.Indices() {
		r := m.Get(index)
		if r.IsEmpty() || !cat.Contains(index) {
			continue
		}
		entries = append(entries, Entry{
			PhotoNumber: index + 1,
			Path:        cat.Path(index),
			Enlargement: r.Enlargement,
			Print:       r.Print,
			Social:      r.Social,
			Discard:     r.Discard,
		})
	}
	return entries
}

// BuildReport assembles the report at time now.
func BuildReport(meta Meta, cat *catalog.Catalog, m selection.Map, now time.Time) Report {
	return Report{
		Instructions: meta.Instructions,
		Contact:      meta.Contact,
		ExportDate:   now.UTC().Format(isoMillis),
		EventName:    meta.EventName,
		TotalPhotos:  cat.Size(),
		Stats:        selection.ComputeStats(m, cat.Size()),
		Selections:   Entries(cat, m),
	}
}

// WriteJSON writes the report indented by two spaces.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("writing JSON report: %w", err)
	}
	return nil
}
