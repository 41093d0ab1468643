package faprune

import (
	"sort"
	"strings"
)

// PossiblyAll is the reserved icon name meaning "every icon may be used".
// A set containing it disables pruning entirely.
const PossiblyAll = "POSSIBLY_ALL"

// UsedIconSet holds the icon names referenced by an application.
// Names are case-sensitive. The zero value is not usable; use NewUsedIconSet.
// A UsedIconSet is not safe for concurrent mutation.
type UsedIconSet struct {
	names map[string]struct{}
}

// NewUsedIconSet creates a set containing the given names
func NewUsedIconSet(names ...string) *UsedIconSet {
	s := &UsedIconSet{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// normalizeIconName strips whitespace and an optional "fa-" prefix
func normalizeIconName(name string) string {
	name = strings.TrimSpace(name)
	if name == PossiblyAll {
		return name
	}
	return strings.TrimPrefix(name, "fa-")
}

// Add records an icon as used. Empty names are ignored.
func (s *UsedIconSet) Add(name string) {
	name = normalizeIconName(name)
	if name == "" {
		return
	}
	s.names[name] = struct{}{}
}

// Has reports whether name is in the set. name is normalized like in Add,
// so "fa-car" and "car" are the same icon. A nil set contains nothing.
func (s *UsedIconSet) Has(name string) bool {
	return s.hasExact(normalizeIconName(name))
}

// hasExact looks up an already normalized name
func (s *UsedIconSet) hasExact(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.names[name]
	return ok
}

// AllPossible reports whether the set carries the PossiblyAll sentinel
func (s *UsedIconSet) AllPossible() bool {
	return s.hasExact(PossiblyAll)
}

// Len returns the number of names, sentinel included
func (s *UsedIconSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns the set contents sorted alphabetically
func (s *UsedIconSet) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge adds every name of other to s
func (s *UsedIconSet) Merge(other *UsedIconSet) {
	if other == nil {
		return
	}
	for name := range other.names {
		s.names[name] = struct{}{}
	}
}
