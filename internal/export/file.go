package export

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/renameio"
	"github.com/kozaktomas/photo-selector/internal/catalog"
	"github.com/kozaktomas/photo-selector/internal/selection"
)

// Render writes the selections in the named format to w.
func Render(w io.Writer, format string, meta Meta, cat *catalog.Catalog, m selection.Map, now time.Time) error {
	switch format {
	case "json":
		return WriteJSON(w, BuildReport(meta, cat, m, now))
	case "text":
		_, err := io.WriteString(w, Summary(meta, cat, m, now))
		return err
	case "parquet":
		return WriteParquet(w, Entries(cat, m))
	}
	return fmt.Errorf("unsupported export format %q", format)
}

// WriteFile renders the export into dir under its download name and
// returns the path. The file is replaced atomically.
func WriteFile(dir, format string, meta Meta, cat *catalog.Catalog, m selection.Map, now time.Time) (string, error) {
	ext, ok := Formats[format]
	if !ok {
		return "", fmt.Errorf("unsupported export format %q", format)
	}
	var buf bytes.Buffer
	if err := Render(&buf, format, meta, cat, m, now); err != nil {
		return "", fmt.Errorf("rendering %s export: %w", format, err)
	}
	path := filepath.Join(dir, FileName(meta.EventName, now, ext))
	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
