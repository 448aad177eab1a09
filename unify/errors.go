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

package unify

import (
	"errors"
)

var (
	// Resolved nodes with equal payloads have differing numbers of child nodes.
	ErrArityMismatch = errors.New("Cannot unify type constructors with differing arity")
	// A chain of aliased nodes loops back on itself.
	ErrAliasCycle = errors.New("Alias chain contains a cycle")
	// An unknown node would be resolved to a type containing itself.
	ErrInfiniteType = errors.New("Cannot construct an infinite type")
	// Matches every *UnresolvedError.
	ErrUnresolved = errors.New("Type could not be inferred")
)

// UnresolvedError is returned when a node with no constraints is resolved.
type UnresolvedError struct {
	// Optional description of the unresolved type
	What string
}

func (e *UnresolvedError) Error() string {
	if e.What == "" {
		return ErrUnresolved.Error()
	}
	return ErrUnresolved.Error() + ": " + e.What
}

func (e *UnresolvedError) Is(target error) bool { return target == ErrUnresolved }

// MismatchError is returned when the payloads of two resolved nodes cannot be merged.
type MismatchError struct {
	Err error
}

func (e *MismatchError) Error() string { return e.Err.Error() }

func (e *MismatchError) Unwrap() error { return e.Err }

// IsInternal reports whether err indicates a malformed node graph rather than a type error.
func IsInternal(err error) bool {
	return errors.Is(err, ErrArityMismatch) || errors.Is(err, ErrAliasCycle)
}

func wrapMismatch(err error) error {
	if IsInternal(err) {
		return err
	}
	var mismatch *MismatchError
	if errors.As(err, &mismatch) {
		return err
	}
	return &MismatchError{Err: err}
}
