// Package setutil provides set utilities for ID collections.
package setutil

import "slices"

// UintSet is a set of uint values.
type UintSet struct {
	items map[uint]struct{}
}

func NewUintSet(ids ...uint) *UintSet {
	s := &UintSet{items: make(map[uint]struct{}, len(ids))}
	s.AddAll(ids)
	return s
}

func (s *UintSet) Add(id uint) {
	s.items[id] = struct{}{}
}

func (s *UintSet) AddAll(ids []uint) {
	for _, id := range ids {
		s.items[id] = struct{}{}
	}
}

func (s *UintSet) Remove(id uint) {
	delete(s.items, id)
}

func (s *UintSet) Has(id uint) bool {
	_, ok := s.items[id]
	return ok
}

func (s *UintSet) Len() int {
	return len(s.items)
}

// Equal reports whether both sets hold exactly the same ids.
func (s *UintSet) Equal(other *UintSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for id := range s.items {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Difference returns the ids in s that are not in other, ascending.
func (s *UintSet) Difference(other *UintSet) []uint {
	out := make([]uint, 0)
	for id := range s.items {
		if !other.Has(id) {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Sorted returns all ids in ascending order.
func (s *UintSet) Sorted() []uint {
	out := make([]uint, 0, len(s.items))
	for id := range s.items {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
