package directory

import (
	"fmt"
	"sort"

	"github.com/jinzhu/copier"

	"github.com/hbog/mockldap/pkg/dn"
)

type record struct {
	dn    string // display form, as last written
	entry *Entry
}

// Store is the emulated tree: canonical (lower-cased) DN → entry. DNs are
// case-insensitively unique. The store is built from a deep copy of the
// seed, so mutating it never touches caller-owned data and vice versa.
type Store struct {
	records map[string]*record
}

// New builds a store from a seed tree. Every seed DN must parse; two seed
// DNs that differ only in case are rejected.
func New(seed Directory) (*Store, error) {
	var clone Directory
	if err := copier.CopyWithOption(&clone, seed, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("directory: copying seed: %w", err)
	}

	s := &Store{records: make(map[string]*record, len(clone))}
	for rawDN, attrs := range clone {
		parsed, err := dn.Parse(rawDN)
		if err != nil {
			return nil, fmt.Errorf("directory: seed entry %q: %w", rawDN, err)
		}
		key := parsed.Canonical()
		if _, dup := s.records[key]; dup {
			return nil, fmt.Errorf("directory: seed entries collide on %q", key)
		}
		s.records[key] = &record{dn: rawDN, entry: EntryFromAttributes(attrs)}
	}
	return s, nil
}

// Get returns the live entry stored under the canonical DN.
func (s *Store) Get(key string) (*Entry, bool) {
	r, ok := s.records[key]
	if !ok {
		return nil, false
	}
	return r.entry, true
}

// DisplayDN returns the presentation form of the DN stored under the
// canonical key, falling back to the key itself when absent.
func (s *Store) DisplayDN(key string) string {
	if r, ok := s.records[key]; ok {
		return r.dn
	}
	return key
}

// Contains reports whether an entry exists under the canonical DN.
func (s *Store) Contains(key string) bool {
	_, ok := s.records[key]
	return ok
}

// Put stores the entry under the canonical key, recording the display DN.
// An existing entry under the same key is replaced; callers that must not
// overwrite check Contains first.
func (s *Store) Put(key, displayDN string, e *Entry) {
	s.records[key] = &record{dn: displayDN, entry: e}
}

// Remove drops the entry stored under the canonical DN and reports whether
// one existed.
func (s *Store) Remove(key string) bool {
	_, ok := s.records[key]
	delete(s.records, key)
	return ok
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.records) }

// Keys returns all canonical DNs in sorted order, which gives iteration a
// stable, reproducible sequence.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
