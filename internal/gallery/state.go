package gallery

import "github.com/kozaktomas/photo-selector/internal/selection"

// State is a read-only snapshot of the session for presentation layers.
type State struct {
	Open        bool              `json:"open"`
	Cursor      int               `json:"cursor"`
	PhotoNumber int               `json:"photo_number,omitempty"`
	Path        string            `json:"path,omitempty"`
	Filter      selection.Filter  `json:"filter"`
	Draft       *selection.Record `json:"draft,omitempty"`
	Stored      *selection.Record `json:"stored,omitempty"`
	Dirty       bool              `json:"dirty"`
	HasPrev     bool              `json:"has_prev"`
	HasNext     bool              `json:"has_next"`
}

// State returns the current snapshot.
func (c *Controller) State() State {
	s := State{Cursor: c.cursor, Filter: c.filter}
	if c.cursor == closed {
		return s
	}
	draft := c.draft
	stored := c.selections.Get(c.cursor)
	s.Open = true
	s.PhotoNumber = c.cursor + 1
	s.Path = c.catalog.Path(c.cursor)
	s.Draft = &draft
	s.Stored = &stored
	s.Dirty = draft != stored
	_, s.HasPrev = c.Adjacent(selection.Previous)
	_, s.HasNext = c.Adjacent(selection.Next)
	return s
}
