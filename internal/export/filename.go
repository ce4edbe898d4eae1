package export

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Formats lists the supported export formats with their file extensions.
var Formats = map[string]string{
	"json":    "json",
	"text":    "txt",
	"parquet": "parquet",
}

// RemoveDiacritics strips combining marks ("Años" -> "Anos").
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// Slug turns an event name into a lowercase ASCII file-name fragment.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(RemoveDiacritics(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "event"
	}
	return b.String()
}

// FileName returns the download name, e.g. "selection-xv-anos-2026-10-18.json".
func FileName(eventName string, now time.Time, ext string) string {
	return "selection-" + Slug(eventName) + "-" + now.UTC().Format(time.DateOnly) + "." + ext
}
