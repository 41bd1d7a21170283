package fsentry

import "sort"

// NameSet is an immutable set of base names.
// The zero value is an empty set.
type NameSet struct {
	names map[string]struct{}
}

// DefaultReservedNames returns the names ignored unconditionally when the
// configuration does not provide its own list.
func DefaultReservedNames() []string {
	return []string{".git"}
}

// NewNameSet builds a set from names. Empty names are dropped.
func NewNameSet(names ...string) NameSet {
	set := NameSet{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		if name == "" {
			continue
		}
		set.names[name] = struct{}{}
	}
	return set
}

// Contains reports whether name is in the set.
func (s NameSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Names returns the members sorted alphabetically.
func (s NameSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for name := range s.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
