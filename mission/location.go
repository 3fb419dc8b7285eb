package mission

import (
	"slices"
	"strings"
)

// Location identifies a place the drone can be, e.g. "Base" or "A".
type Location string

// DefaultBase is the location missions start from and must return to.
const DefaultBase Location = "Base"

// LocationSet is an immutable sorted set of locations. The zero value is the
// empty set. With never mutates the receiver, so sets can be shared freely
// between states.
type LocationSet struct {
	items []Location
}

func NewLocationSet(locations ...Location) LocationSet {
	var set LocationSet
	for _, loc := range locations {
		set = set.With(loc)
	}
	return set
}

// With returns a set containing the receiver's locations plus loc.
func (s LocationSet) With(loc Location) LocationSet {
	i, found := slices.BinarySearch(s.items, loc)
	if found {
		return s
	}
	items := make([]Location, 0, len(s.items)+1)
	items = append(items, s.items[:i]...)
	items = append(items, loc)
	items = append(items, s.items[i:]...)
	return LocationSet{items: items}
}

func (s LocationSet) Contains(loc Location) bool {
	_, found := slices.BinarySearch(s.items, loc)
	return found
}

// ContainsAll reports whether other is a subset of s.
func (s LocationSet) ContainsAll(other LocationSet) bool {
	for _, loc := range other.items {
		if !s.Contains(loc) {
			return false
		}
	}
	return true
}

func (s LocationSet) Len() int {
	return len(s.items)
}

// Slice returns the locations in sorted order. The result is a copy.
func (s LocationSet) Slice() []Location {
	return slices.Clone(s.items)
}

// String joins the sorted locations with ", ", e.g. "A, B".
func (s LocationSet) String() string {
	parts := make([]string, len(s.items))
	for i, loc := range s.items {
		parts[i] = string(loc)
	}
	return strings.Join(parts, ", ")
}

// Equal reports whether both sets hold the same locations.
func (s LocationSet) Equal(other LocationSet) bool {
	return slices.Equal(s.items, other.items)
}
