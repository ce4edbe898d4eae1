package selection

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Record is the set of categories assigned to one photo.
// The zero value means unclassified.
type Record struct {
	Enlargement bool
	Print       bool
	Social      bool
	Discard     bool
}

// RecordOf builds a record with the given categories turned on,
// applying them in order through Toggle semantics.
func RecordOf(categories ...Category) Record {
	var r Record
	for _, c := range categories {
		if !r.Has(c) {
			r = r.Toggle(c)
		}
	}
	return r
}

// Has reports whether category c is set.
func (r Record) Has(c Category) bool {
	switch c {
	case Enlargement:
		return r.Enlargement
	case Print:
		return r.Print
	case Social:
		return r.Social
	case Discard:
		return r.Discard
	}
	return false
}

// with returns a copy with c set to v, without enforcing exclusivity.
func (r Record) with(c Category, v bool) Record {
	switch c {
	case Enlargement:
		r.Enlargement = v
	case Print:
		r.Print = v
	case Social:
		r.Social = v
	case Discard:
		r.Discard = v
	}
	return r
}

// Toggle flips c. Turning discard on clears every other category;
// turning any other category on clears discard.
func (r Record) Toggle(c Category) Record {
	if r.Has(c) {
		return r.with(c, false)
	}
	if c.Exclusive() {
		return Record{}.with(c, true)
	}
	r.Discard = false
	return r.with(c, true)
}

// IsEmpty reports whether no category is set.
func (r Record) IsEmpty() bool {
	return r == Record{}
}

// Categories returns the set categories in display order.
func (r Record) Categories() []Category {
	var out []Category
	for _, c := range Categories {
		if r.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Normalize resolves a record that violates exclusivity by keeping discard.
func (r Record) Normalize() Record {
	if r.Discard && (r.Enlargement || r.Print || r.Social) {
		return Record{Discard: true}
	}
	return r
}

// MarshalJSON writes only the categories that are set.
func (r Record) MarshalJSON() ([]byte, error) {
	flags := make(map[string]bool, 4)
	for _, c := range r.Categories() {
		flags[c.String()] = true
	}
	return json.Marshal(flags)
}

// UnmarshalJSON accepts an object of category flags. Unknown keys are
// ignored and null is the empty record. Flag values follow the stored
// page data: anything but false, null, 0 and "" sets the category.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	var out Record
	for key, value := range raw {
		c, err := ParseCategory(key)
		if err != nil {
			continue
		}
		if truthy(value) {
			out = out.with(c, true)
		}
	}
	*r = out
	return nil
}

func truthy(value json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(value, &v); err != nil {
		return false
	}
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}

// Map holds the stored records keyed by zero-based photo index.
// It never contains an empty record.
type Map map[int]Record

// Get returns the record for index, or the empty record.
func (m Map) Get(index int) Record {
	return m[index]
}

// Set stores r at index. Empty records are deleted instead of stored.
func (m Map) Set(index int, r Record) {
	r = r.Normalize()
	if r.IsEmpty() {
		delete(m, index)
		return
	}
	m[index] = r
}

// Clone returns an independent copy.
func (m Map) Clone() Map {
	if m == nil {
		return Map{}
	}
	return maps.Clone(m)
}

// Indices returns the stored indices in ascending order.
func (m Map) Indices() []int {
	return slices.Sorted(maps.Keys(m))
}

// Encode serializes the map in the persisted layout:
// {"<index>": {"<category>": true, ...}, ...}.
func Encode(m Map) ([]byte, error) {
	doc := make(map[string]Record, len(m))
	for index, r := range m {
		if r.IsEmpty() {
			continue
		}
		doc[strconv.Itoa(index)] = r
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode selections: %w", err)
	}
	return data, nil
}

// Decode parses the persisted layout. Entries whose key is not an index in
// [0, size) are dropped, as are empty records and records that are not
// objects; records violating exclusivity are normalized. A document that is
// not an object is an error.
func Decode(data []byte, size int) (Map, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode selections: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("decode selections: expected object, got %s", data)
	}
	m := make(Map, len(doc))
	for key, value := range doc {
		index, err := strconv.Atoi(key)
		if err != nil || index < 0 || index >= size {
			continue
		}
		var r Record
		if err := json.Unmarshal(value, &r); err != nil {
			continue
		}
		m.Set(index, r)
	}
	return m, nil
}
