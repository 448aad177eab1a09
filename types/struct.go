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
	"github.com/wdamron/mono/unify"
)

// Field of a declared struct
type Field struct {
	Name string
	Type *unify.Node[Type, Concrete]
}

// KnownStruct is a declared struct, identified by its name.
type KnownStruct struct {
	Name   string
	Fields []Field
}

// Field returns the declared field with the given name.
func (s *KnownStruct) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// StructType is either a declared struct or a partial record shape inferred from the
// fields used on a value.
type StructType struct {
	known  *KnownStruct
	fields FieldMap
}

// A declared struct type.
func KnownStructType(s *KnownStruct) StructType { return StructType{known: s} }

// A struct type known only to contain the given fields. The fields are a lower bound
// on the shape of the struct.
func FieldsStructType(fields FieldMap) StructType { return StructType{fields: fields} }

func (s StructType) IsKnown() bool { return s.known != nil }

// Known returns the declared struct, or nil for partial struct types.
func (s StructType) Known() *KnownStruct { return s.known }

// Fields returns the required fields of a partial struct type.
func (s StructType) Fields() FieldMap { return s.fields }

func (s StructType) Merge(other StructType) (StructType, error) {
	switch {
	case s.known != nil && other.known != nil:
		if s.known.Name != other.known.Name {
			return StructType{}, &Error{Kind: StructNameMismatch, Left: s.known.Name, Right: other.known.Name}
		}
		return s, nil

	case s.known != nil:
		return s, requireFields(s.known, other.fields)

	case other.known != nil:
		return other, requireFields(other.known, s.fields)
	}

	b := s.fields.Builder()
	var err error
	other.fields.Range(func(name string, t TypeRef) bool {
		existing, ok := b.Get(name)
		if !ok {
			b.Set(name, t)
			return true
		}
		err = unify.Unify(existing, t)
		return err == nil
	})
	if err != nil {
		return StructType{}, err
	}
	return FieldsStructType(b.Build()), nil
}

func requireFields(s *KnownStruct, required FieldMap) error {
	var err error
	required.Range(func(name string, t TypeRef) bool {
		f, ok := s.Field(name)
		if !ok {
			err = &Error{Kind: MissingField, Left: s.Name, Field: name}
			return false
		}
		err = unify.Unify(f.Type, t)
		return err == nil
	})
	return err
}

func (s StructType) Concrete() (*ConcreteStruct, error) {
	var c concretizer
	return c.structType(s)
}

// Create a new struct type-variable with no constraints.
func NewStructVar() StructTypeRef { return unify.NewUnknown[StructType, *ConcreteStruct]() }

func NewStructType(s StructType) StructTypeRef {
	return unify.NewResolved[StructType, *ConcreteStruct](s)
}

// Create a declared struct type.
func NewStruct(s *KnownStruct) StructTypeRef { return NewStructType(KnownStructType(s)) }

// Create a struct type known only to contain the given fields.
func WithFields(fields map[string]TypeRef) StructTypeRef {
	return NewStructType(FieldsStructType(NewFieldMap(fields)))
}
