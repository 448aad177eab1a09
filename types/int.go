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
	"strconv"

	"github.com/wdamron/mono/unify"
)

type Signedness uint8

const (
	Signed Signedness = iota
	Unsigned
)

// Width of an integer, in bits
type Width uint8

const (
	W8  Width = 8
	W16 Width = 16
	W32 Width = 32
)

// Bytes returns the storage size of the width.
func (w Width) Bytes() int { return int(w) / 8 }

// Int is a concrete integer type.
type Int struct {
	Signedness Signedness
	Width      Width
}

// Integers with no constraint on signedness or width resolve to DefaultInt.
var DefaultInt = Int{Signed, W32}

func (i Int) String() string {
	prefix := "i"
	if i.Signedness == Unsigned {
		prefix = "u"
	}
	return prefix + strconv.Itoa(int(i.Width))
}

// IntType is either an integer of unknown signedness and width, or a fixed integer type.
type IntType struct {
	fixed bool
	int   Int
}

// An integer type whose signedness and width have not been determined.
func UnknownIntType() IntType { return IntType{} }

// A fixed integer type.
func FixedIntType(s Signedness, w Width) IntType {
	return IntType{fixed: true, int: Int{s, w}}
}

func (t IntType) IsFixed() bool { return t.fixed }

// Fixed returns the integer type, if it has been determined.
func (t IntType) Fixed() (Int, bool) { return t.int, t.fixed }

func (t IntType) String() string {
	if !t.fixed {
		return "int"
	}
	return t.int.String()
}

// Merge requires exact equality of fixed integer types; an unknown integer type yields
// the other side.
func (t IntType) Merge(other IntType) (IntType, error) {
	switch {
	case !t.fixed:
		return other, nil
	case !other.fixed:
		return t, nil
	case t.int != other.int:
		return IntType{}, &Error{Kind: IntMismatch, Left: t.String(), Right: other.String()}
	}
	return t, nil
}

// Concrete resolves unknown integer types to DefaultInt.
func (t IntType) Concrete() (Int, error) {
	if !t.fixed {
		return DefaultInt, nil
	}
	return t.int, nil
}

// Create a new integer type-variable with no constraints.
func NewIntVar() IntTypeRef { return unify.NewUnknown[IntType, Int]() }

func NewIntType(t IntType) IntTypeRef { return unify.NewResolved[IntType, Int](t) }

// Create an integer type with unknown signedness and width.
func UnknownInt() IntTypeRef { return NewIntType(UnknownIntType()) }

func FixedInt(s Signedness, w Width) IntTypeRef { return NewIntType(FixedIntType(s, w)) }
