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

// ErrorKind classifies type errors found while merging payloads.
type ErrorKind uint8

const (
	// Two different type constructors were required to be equal
	IncompatibleKinds ErrorKind = iota
	// Fixed integer types disagree in signedness or width
	IntMismatch
	// Two different declared structs were required to be equal
	StructNameMismatch
	// A required field does not exist on a declared struct
	MissingField
)

func (k ErrorKind) String() string {
	switch k {
	case IncompatibleKinds:
		return "IncompatibleKinds"
	case IntMismatch:
		return "IntMismatch"
	case StructNameMismatch:
		return "StructNameMismatch"
	case MissingField:
		return "MissingField"
	default:
		return "ErrorKind(?)"
	}
}

// Sentinels for use with errors.Is
var (
	ErrIncompatibleKinds  = &Error{Kind: IncompatibleKinds}
	ErrIntMismatch        = &Error{Kind: IntMismatch}
	ErrStructNameMismatch = &Error{Kind: StructNameMismatch}
	ErrMissingField       = &Error{Kind: MissingField}
)

// Error describes a program type error. Left and Right are the printed forms of the
// conflicting types; Field names the missing field for MissingField errors.
type Error struct {
	Kind        ErrorKind
	Left, Right string
	Field       string
}

func (e *Error) Error() string {
	switch e.Kind {
	case MissingField:
		return "Struct " + e.Left + " has no field " + e.Field
	case StructNameMismatch:
		return "Failed to unify struct " + e.Left + " with struct " + e.Right
	default:
		return "Failed to unify " + e.Left + " with " + e.Right
	}
}

// Is matches the sentinel error for the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Left == "" && t.Right == "" && t.Field == ""
}
