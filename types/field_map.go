// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

import (
	"github.com/benbjohnson/immutable"
)

var emptyMap = immutable.NewSortedMap(nil)

var EmptyFieldMap = FieldMap{emptyMap}

// FieldMap contains immutable mappings from field names to types, sorted by name.
//
// Payloads are copied between nodes during unification; an immutable map lets copies
// share structure without observing each other's updates.
type FieldMap struct {
	m *immutable.SortedMap
}

// Create a FieldMap from a set of fields.
func NewFieldMap(fields map[string]TypeRef) FieldMap {
	b := NewFieldMapBuilder()
	for name, t := range fields {
		b.Set(name, t)
	}
	return b.Build()
}

// Create a FieldMap with a single entry.
func SingletonFieldMap(name string, t TypeRef) FieldMap {
	return FieldMap{emptyMap.Set(name, t)}
}

// Get the number of entries in the map.
func (m FieldMap) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Len()
}

// Get the type of a field.
func (m FieldMap) Get(name string) (TypeRef, bool) {
	if m.m == nil {
		return nil, false
	}
	t, ok := m.m.Get(name)
	if !ok {
		return nil, false
	}
	return t.(TypeRef), true
}

// Iterate over entries in the map, sorted by name.
// If f returns false, iteration will be stopped.
func (m FieldMap) Range(f func(string, TypeRef) bool) {
	if m.m == nil {
		return
	}
	iter := m.m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), v.(TypeRef)) {
			return
		}
	}
}

// Get the sorted field names in the map.
func (m FieldMap) Names() []string {
	names := make([]string, 0, m.Len())
	m.Range(func(name string, _ TypeRef) bool {
		names = append(names, name)
		return true
	})
	return names
}

// Convert the map to a builder for modification, without mutating the existing map.
func (m FieldMap) Builder() FieldMapBuilder {
	b := NewFieldMapBuilder()
	m.Range(func(name string, t TypeRef) bool {
		b.Set(name, t)
		return true
	})
	return b
}

// FieldMapBuilder enables in-place updates of a map before finalization.
type FieldMapBuilder struct {
	b *immutable.SortedMapBuilder
}

func NewFieldMapBuilder() FieldMapBuilder {
	return FieldMapBuilder{immutable.NewSortedMapBuilder(emptyMap)}
}

// Get the number of entries in the builder.
func (b FieldMapBuilder) Len() int { return b.b.Len() }

// Get the type of a field in the builder.
func (b FieldMapBuilder) Get(name string) (TypeRef, bool) {
	t, ok := b.b.Get(name)
	if !ok {
		return nil, false
	}
	return t.(TypeRef), true
}

// Set the type for the given field in the builder.
func (b FieldMapBuilder) Set(name string, t TypeRef) FieldMapBuilder {
	b.b.Set(name, t)
	return b
}

// Finalize the builder into an immutable map.
func (b FieldMapBuilder) Build() FieldMap { return FieldMap{b.b.Map()} }
