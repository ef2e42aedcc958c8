// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"maps"
	"slices"
)

// Set is an immutable set of category names. Methods that change
// membership return a new Set and leave the receiver untouched, so a
// State can be copied by value without aliasing. The zero value is the
// empty set.
type Set struct {
	members map[string]struct{}
}

// NewSet returns a set holding names.
func NewSet(names ...string) Set {
	if len(names) == 0 {
		return Set{}
	}
	members := make(map[string]struct{}, len(names))
	for _, name := range names {
		members[name] = struct{}{}
	}
	return Set{members: members}
}

// Has reports whether name is in the set.
func (set Set) Has(name string) bool {
	_, exists := set.members[name]
	return exists
}

// Len returns the number of members.
func (set Set) Len() int {
	return len(set.members)
}

// Members returns the members sorted lexically.
func (set Set) Members() []string {
	return slices.Sorted(maps.Keys(set.members))
}

// Equal reports whether both sets hold the same members.
func (set Set) Equal(other Set) bool {
	if set.Len() != other.Len() {
		return false
	}
	for name := range set.members {
		if !other.Has(name) {
			return false
		}
	}
	return true
}

// With returns the set plus names. The receiver is returned as is when
// every name is already present.
func (set Set) With(names ...string) Set {
	var added map[string]struct{}
	for _, name := range names {
		if set.Has(name) {
			continue
		}
		if added == nil {
			added = maps.Clone(set.members)
			if added == nil {
				added = make(map[string]struct{}, len(names))
			}
		}
		added[name] = struct{}{}
	}
	if added == nil {
		return set
	}
	return Set{members: added}
}

// Without returns the set minus name.
func (set Set) Without(name string) Set {
	if !set.Has(name) {
		return set
	}
	remaining := maps.Clone(set.members)
	delete(remaining, name)
	return Set{members: remaining}
}

// Toggle returns the set with name's membership flipped.
func (set Set) Toggle(name string) Set {
	if set.Has(name) {
		return set.Without(name)
	}
	return set.With(name)
}

// Keep returns the members for which keep reports true.
func (set Set) Keep(keep func(name string) bool) Set {
	var remaining map[string]struct{}
	for name := range set.members {
		if keep(name) {
			continue
		}
		if remaining == nil {
			remaining = maps.Clone(set.members)
		}
		delete(remaining, name)
	}
	if remaining == nil {
		return set
	}
	return Set{members: remaining}
}
