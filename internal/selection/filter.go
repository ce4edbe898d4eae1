package selection

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFilter is returned when a filter name cannot be parsed.
var ErrUnknownFilter = errors.New("unknown filter")

// Filter selects which photos are visible in the grid.
type Filter string

const (
	FilterAll          Filter = "all"
	FilterEnlargement  Filter = "enlargement"
	FilterPrint        Filter = "print"
	FilterSocial       Filter = "social"
	FilterDiscard      Filter = "discard"
	FilterUnclassified Filter = "unclassified"
)

// Filters lists every filter in display order.
var Filters = [...]Filter{FilterAll, FilterEnlargement, FilterPrint, FilterSocial, FilterDiscard, FilterUnclassified}

var filterAliases = map[string]Filter{
	"":               FilterAll,
	"todas":          FilterAll,
	"sin-clasificar": FilterUnclassified,
	"sin_clasificar": FilterUnclassified,
}

// ParseFilter parses a filter name. Category names and their legacy
// spellings select that category; an empty string means all.
func ParseFilter(s string) (Filter, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if f, ok := filterAliases[name]; ok {
		return f, nil
	}
	for _, f := range Filters {
		if string(f) == name {
			return f, nil
		}
	}
	if c, err := ParseCategory(name); err == nil {
		return CategoryFilter(c), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// CategoryFilter returns the filter showing photos in category c.
func CategoryFilter(c Category) Filter {
	return Filter(c.String())
}

// Category returns the category a filter selects on, if it is a category filter.
func (f Filter) Category() (Category, bool) {
	switch f {
	case FilterAll, FilterUnclassified:
		return 0, false
	}
	c, err := ParseCategory(string(f))
	if err != nil {
		return 0, false
	}
	return c, true
}

// Label returns the human-readable name.
func (f Filter) Label() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterUnclassified:
		return "Unclassified"
	}
	if c, ok := f.Category(); ok {
		return c.Label()
	}
	return string(f)
}

// Count returns how many photos the filter shows, given the current stats.
func (f Filter) Count(s Stats, catalogSize int) int {
	switch f {
	case FilterAll:
		return catalogSize
	case FilterUnclassified:
		return s.Unclassified
	}
	if c, ok := f.Category(); ok {
		return s.Count(c)
	}
	return 0
}

// IsVisible reports whether the photo at index passes filter f.
func IsVisible(index int, f Filter, m Map) bool {
	r := m.Get(index)
	switch f {
	case FilterAll:
		return true
	case FilterUnclassified:
		return r.IsEmpty()
	}
	if c, ok := f.Category(); ok {
		return r.Has(c)
	}
	return false
}

// VisibleIndices returns the ascending indices in [0, catalogSize) that pass f.
func VisibleIndices(f Filter, m Map, catalogSize int) []int {
	out := make([]int, 0, catalogSize)
	for i := range catalogSize {
		if IsVisible(i, f, m) {
			out = append(out, i)
		}
	}
	return out
}
