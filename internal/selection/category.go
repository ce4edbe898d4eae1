// Package selection holds the per-photo category model and the pure queries
// derived from it: stats, filters and navigation.
package selection

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category name cannot be parsed.
var ErrUnknownCategory = errors.New("unknown category")

// Category is one of the fixed classification buckets.
type Category int

const (
	Enlargement Category = iota
	Print
	Social
	Discard
)

// Categories lists every category in display order.
var Categories = [...]Category{Enlargement, Print, Social, Discard}

var categoryNames = [...]string{
	Enlargement: "enlargement",
	Print:       "print",
	Social:      "social",
	Discard:     "discard",
}

var categoryLabels = [...]string{
	Enlargement: "Enlargement",
	Print:       "Print",
	Social:      "Social media",
	Discard:     "Discarded",
}

// categoryAliases maps accepted spellings to categories. The Spanish names
// are what the first version of the gallery wrote into storage.
var categoryAliases = map[string]Category{
	"enlargement":    Enlargement,
	"print":          Print,
	"social":         Social,
	"discard":        Discard,
	"ampliacion":     Enlargement,
	"impresion":      Print,
	"redes_sociales": Social,
	"redes-sociales": Social,
	"descartada":     Discard,
}

// ParseCategory parses a canonical or legacy category name.
func ParseCategory(s string) (Category, error) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

func (c Category) valid() bool {
	return c >= Enlargement && c <= Discard
}

// String returns the canonical name used in storage and exports.
func (c Category) String() string {
	if !c.valid() {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Label returns the human-readable name.
func (c Category) Label() string {
	if !c.valid() {
		return c.String()
	}
	return categoryLabels[c]
}

// Exclusive reports whether selecting c clears every other category.
func (c Category) Exclusive() bool {
	return c == Discard
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
