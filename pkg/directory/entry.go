// Package directory holds the emulated tree: entries keyed by canonical DN,
// each entry a case-insensitive attribute map. A Store is built once from a
// caller-supplied seed and owned by the connection that mutates it.
package directory

import (
	"sort"
	"strings"
)

// Attributes is the plain attribute map used for seeding entries and for
// carrying search results: attribute name → ordered value list.
type Attributes map[string][]string

// Directory is a caller-supplied seed tree: DN string → attribute map.
type Directory map[string]Attributes

type attribute struct {
	name   string // first-seen casing, kept for presentation
	values []string
}

// Entry is the attribute data stored at one DN. Attribute names are
// case-insensitive. Each attribute holds an ordered value list with no
// duplicates; an attribute whose last value is removed disappears entirely,
// so no attribute ever exists with an empty list.
type Entry struct {
	attrs map[string]*attribute
}

// NewEntry returns an empty entry.
func NewEntry() *Entry {
	return &Entry{attrs: make(map[string]*attribute)}
}

// EntryFromAttributes builds an entry from a plain attribute map,
// de-duplicating values and dropping attributes with no values.
func EntryFromAttributes(attrs Attributes) *Entry {
	e := NewEntry()
	for name, values := range attrs {
		e.Add(name, values...)
	}
	return e
}

func (e *Entry) lookup(name string) (*attribute, bool) {
	a, ok := e.attrs[strings.ToLower(name)]
	return a, ok
}

// Has reports whether the attribute exists.
func (e *Entry) Has(name string) bool {
	_, ok := e.lookup(name)
	return ok
}

// Values returns a copy of the attribute's value list, nil when absent.
func (e *Entry) Values(name string) []string {
	a, ok := e.lookup(name)
	if !ok {
		return nil
	}
	out := make([]string, len(a.values))
	copy(out, a.values)
	return out
}

// Add appends the given values to the attribute, creating it if absent and
// skipping values already present.
func (e *Entry) Add(name string, values ...string) {
	key := strings.ToLower(name)
	a, ok := e.attrs[key]
	if !ok {
		a = &attribute{name: name}
	}
	for _, v := range values {
		if !contains(a.values, v) {
			a.values = append(a.values, v)
		}
	}
	if len(a.values) == 0 {
		return
	}
	e.attrs[key] = a
}

// Replace overwrites the attribute's value list. An empty list removes the
// attribute.
func (e *Entry) Replace(name string, values ...string) {
	key := strings.ToLower(name)
	if len(values) == 0 {
		delete(e.attrs, key)
		return
	}
	a := &attribute{name: name}
	if old, ok := e.attrs[key]; ok {
		a.name = old.name
	}
	for _, v := range values {
		if !contains(a.values, v) {
			a.values = append(a.values, v)
		}
	}
	e.attrs[key] = a
}

// Remove deletes the attribute outright. Removing an absent attribute is a
// no-op.
func (e *Entry) Remove(name string) {
	delete(e.attrs, strings.ToLower(name))
}

// RemoveValues removes the listed values from the attribute; values not
// present are skipped. The attribute is deleted once its list is empty.
func (e *Entry) RemoveValues(name string, values ...string) {
	key := strings.ToLower(name)
	a, ok := e.attrs[key]
	if !ok {
		return
	}
	kept := a.values[:0]
	for _, v := range a.values {
		if !contains(values, v) {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		delete(e.attrs, key)
		return
	}
	a.values = kept
}

// Names returns the attribute names in their stored casing, sorted.
func (e *Entry) Names() []string {
	names := make([]string, 0, len(e.attrs))
	for _, a := range e.attrs {
		names = append(names, a.name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of attributes.
func (e *Entry) Len() int { return len(e.attrs) }

// AttributeMap returns a detached plain-map copy of the entry.
func (e *Entry) AttributeMap() Attributes {
	out := make(Attributes, len(e.attrs))
	for _, a := range e.attrs {
		values := make([]string, len(a.values))
		copy(values, a.values)
		out[a.name] = values
	}
	return out
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	c := NewEntry()
	for key, a := range e.attrs {
		values := make([]string, len(a.values))
		copy(values, a.values)
		c.attrs[key] = &attribute{name: a.name, values: values}
	}
	return c
}

func contains(values []string, v string) bool {
	for _, have := range values {
		if have == v {
			return true
		}
	}
	return false
}
