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

// Type-variables for each kind of payload. Type-variables are shared by pointer;
// unification refines them in place.
type (
	TypeRef       = *unify.Node[Type, Concrete]
	IntTypeRef    = *unify.Node[IntType, Int]
	StructTypeRef = *unify.Node[StructType, *ConcreteStruct]
)

// Kind of a type constructor
type Kind uint8

const (
	// Any type; unifies with every other type
	KindAny Kind = iota
	KindBool
	KindRef
	KindInt
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindBool:
		return "bool"
	case KindRef:
		return "ref"
	case KindInt:
		return "int"
	case KindStruct:
		return "struct"
	default:
		return "Kind(?)"
	}
}

// Type is a type constructor. Ref, Int and Struct hold the type-variable for the
// corresponding kind.
type Type struct {
	Kind   Kind
	Ref    *unify.Node[Type, Concrete]
	Int    *unify.Node[IntType, Int]
	Struct *unify.Node[StructType, *ConcreteStruct]
}

func AnyType() Type                   { return Type{Kind: KindAny} }
func BoolType() Type                  { return Type{Kind: KindBool} }
func RefType(elem TypeRef) Type       { return Type{Kind: KindRef, Ref: elem} }
func IntKind(t IntTypeRef) Type       { return Type{Kind: KindInt, Int: t} }
func StructKind(t StructTypeRef) Type { return Type{Kind: KindStruct, Struct: t} }

func (t Type) Merge(other Type) (Type, error) {
	switch {
	case t.Kind == KindAny:
		return other, nil
	case other.Kind == KindAny:
		return t, nil
	case t.Kind != other.Kind:
		return Type{}, &Error{Kind: IncompatibleKinds, Left: payloadString(t), Right: payloadString(other)}
	}
	var err error
	switch t.Kind {
	case KindRef:
		err = unify.Unify(t.Ref, other.Ref)
	case KindInt:
		err = unify.Unify(t.Int, other.Int)
	case KindStruct:
		err = unify.Unify(t.Struct, other.Struct)
	}
	if err != nil {
		return Type{}, err
	}
	return t, nil
}

func (t Type) Concrete() (Concrete, error) {
	var c concretizer
	return c.payload(t)
}

// Create a new type-variable with no constraints.
func NewVar() TypeRef { return unify.NewUnknown[Type, Concrete]() }

func NewType(t Type) TypeRef { return unify.NewResolved[Type, Concrete](t) }

func Any() TypeRef                   { return NewType(AnyType()) }
func Bool() TypeRef                  { return NewType(BoolType()) }
func Ref(elem TypeRef) TypeRef       { return NewType(RefType(elem)) }
func IntOf(t IntTypeRef) TypeRef     { return NewType(IntKind(t)) }
func Struct(t StructTypeRef) TypeRef { return NewType(StructKind(t)) }
