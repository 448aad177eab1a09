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

// Unify requires a and b to have equal types, merging the knowledge held by both
// nodes or returning the first failure.
//
// Both terminal nodes are rewritten in place to the unified shape, so every holder
// of either node observes the result. Nodes modified before a failure are not
// restored.
func Unify[T Payload[T, C], C any](a, b *Node[T, C]) error {
	if a == b {
		return nil
	}
	a, err := Terminal(a)
	if err != nil {
		return err
	}
	b, err = Terminal(b)
	if err != nil {
		return err
	}
	if a == b {
		return nil
	}

	switch {
	case a.state == Unknown && b.state == Unknown:
		f := NewUnknown[T, C]()
		a.setAlias(f)
		b.setAlias(f)
		return nil

	case a.state == Unknown:
		if occurs(a, b) {
			return ErrInfiniteType
		}
		a.setResolved(b.payload, cloneArgs(b.args))
		return nil

	case b.state == Unknown:
		if occurs(b, a) {
			return ErrInfiniteType
		}
		b.setResolved(a.payload, cloneArgs(a.args))
		return nil
	}

	merged, err := a.payload.Merge(b.payload)
	if err != nil {
		return wrapMismatch(err)
	}
	if len(a.args) != len(b.args) {
		return ErrArityMismatch
	}
	args := cloneArgs(a.args)
	for i := range args {
		if err := Unify(args[i], b.args[i]); err != nil {
			return err
		}
	}
	a.setResolved(merged, args)
	b.setResolved(merged, cloneArgs(args))
	return nil
}

// occurs reports whether the unknown node v is reachable from the resolved node n,
// through its arguments or the nodes held by its payload.
func occurs[T Payload[T, C], C any](v, n *Node[T, C]) bool {
	if o, ok := any(n.payload).(Occurrer); ok && o.Occurs(v) {
		return true
	}
	for _, arg := range n.args {
		t, err := Terminal(arg)
		if err != nil {
			continue
		}
		if t == v || (t.state == Resolved && occurs(v, t)) {
			return true
		}
	}
	return false
}

func cloneArgs[T Payload[T, C], C any](args []*Node[T, C]) []*Node[T, C] {
	if len(args) == 0 {
		return nil
	}
	return append(make([]*Node[T, C], 0, len(args)), args...)
}
