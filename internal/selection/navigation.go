package selection

import (
	"fmt"
	"strings"
)

// Direction is a step through the catalog.
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

// ParseDirection accepts next/prev and their long forms.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "next", "right", "+1", "1":
		return Next, nil
	case "prev", "previous", "left", "-1":
		return Previous, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) String() string {
	if d < 0 {
		return "prev"
	}
	return "next"
}

// FindAdjacentVisible scans from start (exclusive) in direction dir and
// returns the first index visible under f. It does not wrap around.
func FindAdjacentVisible(start int, dir Direction, f Filter, m Map, catalogSize int) (int, bool) {
	if dir >= 0 {
		for i := max(start+1, 0); i < catalogSize; i++ {
			if IsVisible(i, f, m) {
				return i, true
			}
		}
		return 0, false
	}
	for i := min(start-1, catalogSize-1); i >= 0; i-- {
		if IsVisible(i, f, m) {
			return i, true
		}
	}
	return 0, false
}
