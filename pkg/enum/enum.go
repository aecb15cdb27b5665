// Package enum provides closed tag tables for string-encoded enumerations.
//
// Every family registered here has a mandatory Unknown variant. Resolving a
// tag that is not in the table yields Unknown, never an error, so that values
// introduced upstream after this code was written degrade instead of failing.
package enum

import (
	"fmt"
	"slices"
)

// Variant binds a value of a family to its wire tag and a human readable name.
type Variant[T ~int] struct {
	Value T
	Tag   string
	Name  string
}

// Table is an immutable mapping between the wire tags of one family and its values.
type Table[T ~int] struct {
	family  string
	unknown Variant[T]
	byTag   map[string]T
	byValue map[T]Variant[T]
}

// NewTable builds a table for family. It panics on duplicate tags or values,
// which can only be a programming error in the static variant list.
func NewTable[T ~int](family string, unknown Variant[T], variants ...Variant[T]) *Table[T] {
	t := &Table[T]{
		family:  family,
		unknown: unknown,
		byTag:   make(map[string]T, len(variants)),
		byValue: make(map[T]Variant[T], len(variants)+1),
	}
	t.byValue[unknown.Value] = unknown

	for _, v := range variants {
		if _, dup := t.byTag[v.Tag]; dup {
			panic(fmt.Sprintf("enum %s: duplicate tag %q", family, v.Tag))
		}
		if _, dup := t.byValue[v.Value]; dup {
			panic(fmt.Sprintf("enum %s: duplicate value %d", family, v.Value))
		}
		t.byTag[v.Tag] = v.Value
		t.byValue[v.Value] = v
	}
	return t
}

// Family returns the name the table was registered with.
func (t *Table[T]) Family() string { return t.family }

// Unknown returns the fallback value of the family.
func (t *Table[T]) Unknown() T { return t.unknown.Value }

// Parse resolves tag with a case-sensitive exact match. Empty or unmatched
// tags resolve to Unknown.
func (t *Table[T]) Parse(tag string) T {
	v, _ := t.Lookup(tag)
	return v
}

// Lookup is like Parse but also reports whether tag was recognized.
func (t *Table[T]) Lookup(tag string) (T, bool) {
	if v, ok := t.byTag[tag]; ok {
		return v, true
	}
	return t.unknown.Value, false
}

// Tag returns the wire tag of v, or the Unknown tag for values outside the table.
func (t *Table[T]) Tag(v T) string {
	if vv, ok := t.byValue[v]; ok {
		return vv.Tag
	}
	return t.unknown.Tag
}

// Name returns the descriptive name of v.
func (t *Table[T]) Name(v T) string {
	if vv, ok := t.byValue[v]; ok {
		return vv.Name
	}
	return t.unknown.Name
}

// Values returns every known value in ascending order, excluding Unknown.
func (t *Table[T]) Values() []T {
	out := make([]T, 0, len(t.byTag))
	for v := range t.byValue {
		if v != t.unknown.Value {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}
