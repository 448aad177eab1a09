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

// Occurs reports whether the type-variable v appears within t. Declared structs are not
// searched, since their fields may legitimately refer back to the struct.
func (t Type) Occurs(v any) bool {
	o := occursCheck{v: v}
	return o.payload(t)
}

// Occurs reports whether the type-variable v appears within the fields of s.
func (s StructType) Occurs(v any) bool {
	o := occursCheck{v: v}
	return o.structType(s)
}

type occursCheck struct {
	v    any
	seen map[any]bool
}

func (o *occursCheck) visit(n any) bool {
	if o.seen == nil {
		o.seen = make(map[any]bool)
	}
	if o.seen[n] {
		return false
	}
	o.seen[n] = true
	return true
}

func (o *occursCheck) ref(t TypeRef) bool {
	n, err := unify.Terminal(t)
	if err != nil {
		return false
	}
	if any(n) == o.v {
		return true
	}
	return n.IsResolved() && o.visit(n) && o.payload(n.Payload())
}

func (o *occursCheck) payload(t Type) bool {
	switch t.Kind {
	case KindRef:
		return o.ref(t.Ref)
	case KindStruct:
		n, err := unify.Terminal(t.Struct)
		if err != nil {
			return false
		}
		if any(n) == o.v {
			return true
		}
		return n.IsResolved() && o.visit(n) && o.structType(n.Payload())
	}
	return false
}

func (o *occursCheck) structType(s StructType) bool {
	if s.known != nil {
		return false
	}
	found := false
	s.fields.Range(func(_ string, t TypeRef) bool {
		found = o.ref(t)
		return !found
	})
	return found
}
