package depgraph

import (
	"slices"

	"golang.org/x/exp/maps"
)

// Item is the unique identifier of a producible or raw material.
type Item string

// ItemSet is an unordered set of items. Use Sorted to iterate in a reproducible order.
type ItemSet map[Item]struct{}

// NewItemSet creates a set holding the given items.
func NewItemSet(items ...Item) ItemSet {
	s := make(ItemSet, len(items))
	s.Add(items...)
	return s
}

// Add inserts the items into the set.
func (s ItemSet) Add(items ...Item) {
	for _, item := range items {
		s[item] = struct{}{}
	}
}

// Remove deletes the item from the set if present.
func (s ItemSet) Remove(item Item) {
	delete(s, item)
}

// Has returns true if the item is in the set.
func (s ItemSet) Has(item Item) bool {
	_, ok := s[item]
	return ok
}

// Len returns the number of items in the set.
func (s ItemSet) Len() int {
	return len(s)
}

// ContainsAll returns true if every one of the items is in the set. It is vacuously true for no items.
func (s ItemSet) ContainsAll(items []Item) bool {
	for _, item := range items {
		if !s.Has(item) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (s ItemSet) Clone() ItemSet {
	result := make(ItemSet, len(s))
	for item := range s {
		result[item] = struct{}{}
	}
	return result
}

// Equals returns true if both sets hold exactly the same items.
func (s ItemSet) Equals(other ItemSet) bool {
	if len(s) != len(other) {
		return false
	}
	for item := range s {
		if !other.Has(item) {
			return false
		}
	}
	return true
}

// Sorted returns the items in lexicographic order.
func (s ItemSet) Sorted() []Item {
	items := maps.Keys(s)
	slices.Sort(items)
	return items
}

// Strings returns the items in lexicographic order as plain strings.
func (s ItemSet) Strings() []string {
	sorted := s.Sorted()
	result := make([]string, len(sorted))
	for i, item := range sorted {
		result[i] = string(item)
	}
	return result
}
