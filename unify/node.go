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

// Payload is implemented by the type constructors stored in resolved nodes.
//
// Merge combines two payloads which are required to be equal, unifying any nodes
// the payloads refer to. Concrete produces the fully-resolved form of the payload.
type Payload[T any, C any] interface {
	Merge(other T) (T, error)
	Concrete() (C, error)
}

// Occurrer is implemented by payloads which hold nodes outside of their arguments.
//
// Occurs reports whether the unknown node v can be reached from the payload. Unify
// will not resolve v to a payload in which it occurs.
type Occurrer interface {
	Occurs(v any) bool
}

// State of a node
type State uint8

const (
	// No constraint has been applied to the node
	Unknown State = iota
	// The node has been identified with another node
	Alias
	// The node is a type constructor applied to zero or more child nodes
	Resolved
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "Unknown"
	case Alias:
		return "Alias"
	case Resolved:
		return "Resolved"
	default:
		return "State(?)"
	}
}

// Node is a mutable cell holding the current knowledge about a type position.
//
// Nodes are shared by pointer; every holder observes refinements made by Unify.
// A node graph cannot be used concurrently.
type Node[T Payload[T, C], C any] struct {
	state   State
	link    *Node[T, C]
	payload T
	args    []*Node[T, C]
}

// Create a new node with no constraints.
func NewUnknown[T Payload[T, C], C any]() *Node[T, C] {
	return &Node[T, C]{}
}

// Create a new node resolved to payload applied to args.
func NewResolved[T Payload[T, C], C any](payload T, args ...*Node[T, C]) *Node[T, C] {
	return &Node[T, C]{state: Resolved, payload: payload, args: args}
}

// State returns the state of the node itself, without following aliases.
func (n *Node[T, C]) State() State { return n.state }

// Link returns the aliased node, if the node is an alias.
func (n *Node[T, C]) Link() *Node[T, C] { return n.link }

// Payload returns the payload of a resolved node.
func (n *Node[T, C]) Payload() T { return n.payload }

// Args returns the child nodes of a resolved node.
func (n *Node[T, C]) Args() []*Node[T, C] { return n.args }

func (n *Node[T, C]) IsUnknown() bool  { return n.state == Unknown }
func (n *Node[T, C]) IsAlias() bool    { return n.state == Alias }
func (n *Node[T, C]) IsResolved() bool { return n.state == Resolved }

func (n *Node[T, C]) setAlias(to *Node[T, C]) {
	var zero T
	n.state, n.link, n.payload, n.args = Alias, to, zero, nil
}

func (n *Node[T, C]) setResolved(payload T, args []*Node[T, C]) {
	n.state, n.link, n.payload, n.args = Resolved, nil, payload, args
}

// Terminal follows a chain of aliases to the nearest unknown or resolved node.
func Terminal[T Payload[T, C], C any](n *Node[T, C]) (*Node[T, C], error) {
	// Brent's algorithm; a cycle can only come from a bug in graph construction.
	slow, power, steps := n, 1, 0
	for n.state == Alias {
		n = n.link
		if n == slow {
			return nil, ErrAliasCycle
		}
		steps++
		if steps == power {
			slow, power, steps = n, power*2, 0
		}
	}
	return n, nil
}

// Same reports whether a and b have been unified into the same terminal node.
func Same[T Payload[T, C], C any](a, b *Node[T, C]) bool {
	ta, err := Terminal(a)
	if err != nil {
		return false
	}
	tb, err := Terminal(b)
	if err != nil {
		return false
	}
	return ta == tb
}

// Concrete resolves n to its concrete form. Unknown nodes cannot be resolved.
//
// The arguments of a resolved node are not visited; the payload is responsible for
// resolving any nodes it refers to.
func Concrete[T Payload[T, C], C any](n *Node[T, C]) (C, error) {
	var zero C
	t, err := Terminal(n)
	if err != nil {
		return zero, err
	}
	if t.state == Unknown {
		return zero, &UnresolvedError{}
	}
	return t.payload.Concrete()
}
