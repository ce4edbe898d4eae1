package selection

import "fmt"

// Limits holds advisory caps per category. Categories without an entry are unlimited.
type Limits map[Category]int

// ParseLimits converts a name-keyed limit table, accepting legacy names.
func ParseLimits(raw map[string]int) (Limits, error) {
	out := make(Limits, len(raw))
	for name, limit := range raw {
		c, err := ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("limits: %w", err)
		}
		if limit < 0 {
			return nil, fmt.Errorf("limits: %s must not be negative, got %d", c, limit)
		}
		out[c] = limit
	}
	return out, nil
}

// Limit returns the cap for c, if any.
func (l Limits) Limit(c Category) (int, bool) {
	limit, ok := l[c]
	return limit, ok
}

// LimitWarning reports a category whose count is over its cap.
type LimitWarning struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
	Limit    int      `json:"limit"`
}

func (w LimitWarning) String() string {
	return fmt.Sprintf("%s: %d selected, limit is %d", w.Category.Label(), w.Count, w.Limit)
}

// Exceeded returns one warning per limited category whose count in s is
// above its cap, in display order.
func (l Limits) Exceeded(s Stats) []LimitWarning {
	var out []LimitWarning
	for _, c := range Categories {
		limit, ok := l[c]
		if !ok {
			continue
		}
		if n := s.Count(c); n > limit {
			out = append(out, LimitWarning{Category: c, Count: n, Limit: limit})
		}
	}
	return out
}

// Names returns the limits keyed by canonical category name.
func (l Limits) Names() map[string]int {
	out := make(map[string]int, len(l))
	for c, limit := range l {
		out[c.String()] = limit
	}
	return out
}
