package selection

// Stats counts photos per category. A photo in several categories counts
// once in each. Unclassified counts catalog photos with no stored record.
type Stats struct {
	Enlargement  int `json:"enlargement"`
	Print        int `json:"print"`
	Social       int `json:"social"`
	Discard      int `json:"discard"`
	Unclassified int `json:"unclassified"`
}

// ComputeStats derives the counts for a catalog of catalogSize photos.
func ComputeStats(m Map, catalogSize int) Stats {
	var s Stats
	classified := 0
	for _, r := range m {
		if r.IsEmpty() {
			continue
		}
		classified++
		if r.Enlargement {
			s.Enlargement++
		}
		if r.Print {
			s.Print++
		}
		if r.Social {
			s.Social++
		}
		if r.Discard {
			s.Discard++
		}
	}
	s.Unclassified = max(catalogSize-classified, 0)
	return s
}

// Count returns the count for one category.
func (s Stats) Count(c Category) int {
	switch c {
	case Enlargement:
		return s.Enlargement
	case Print:
		return s.Print
	case Social:
		return s.Social
	case Discard:
		return s.Discard
	}
	return 0
}
