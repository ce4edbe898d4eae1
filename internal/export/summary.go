package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kozaktomas/photo-selector/internal/catalog"
	"github.com/kozaktomas/photo-selector/internal/selection"
)

const summaryTimeLayout = "02/01/2006, 15:04:05"

// Summary renders the plain-text report meant for pasting into a chat.
// Only categories with at least one photo get a section.
func Summary(meta Meta, cat *catalog.Catalog, m selection.Map, now time.Time) string {
	stats := selection.ComputeStats(m, cat.Size())

	var b strings.Builder
	fmt.Fprintf(&b, "PHOTO SELECTION - %s\n", strings.ToUpper(meta.EventName))
	b.WriteString(strings.Repeat("=", 39) + "\n\n")

	b.WriteString("OVERVIEW:\n")
	fmt.Fprintf(&b, "   Total photos: %d\n", cat.Size())
	for _, c := range selection.Categories {
		fmt.Fprintf(&b, "   %s: %d\n", c.Label(), stats.Count(c))
	}
	fmt.Fprintf(&b, "   Unclassified: %d\n\n", stats.Unclassified)

	for _, c := range selection.Categories {
		numbers := photoNumbers(cat, m, c)
		if len(numbers) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", strings.ToUpper(c.Label()))
		fmt.Fprintf(&b, "   Photos: %s\n", strings.Join(numbers, ", "))
		fmt.Fprintf(&b, "   Total: %d\n\n", len(numbers))
	}

	loc := meta.Location
	if loc == nil {
		loc = time.UTC
	}
	fmt.Fprintf(&b, "\nGenerated: %s\n", now.In(loc).Format(summaryTimeLayout))
	return b.String()
}

func photoNumbers(cat *catalog.Catalog, m selection.Map, c selection.Category) []string {
	var out []string
	for i := range cat.Size() {
		if m.Get(i).Has(c) {
			out = append(out, strconv.Itoa(i+1))
		}
	}
	return out
}
