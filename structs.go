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

package mono

import (
	"github.com/wdamron/mono/internal/graph"
	"github.com/wdamron/mono/types"
	"github.com/wdamron/mono/unify"
)

// RecursiveStructs returns the names of declared structs which contain themselves by value,
// directly or through other structs, in declaration order. Such structs have no finite
// size. Containment through a reference is allowed, and fields whose types are not yet
// known are ignored.
func (c *Checker) RecursiveStructs() []string {
	index := make(map[string]int, len(c.order))
	for i, name := range c.order {
		index[name] = i
	}
	g := graph.New(len(c.order))
	for i, name := range c.order {
		for _, f := range c.structs[name].Fields {
			if s := containedStruct(f.Type); s != nil {
				if j, ok := index[s.Name]; ok {
					g.AddEdge(i, j)
				}
			}
		}
	}

	recursive := make([]bool, len(c.order))
	for _, component := range g.SCC() {
		if g.Cyclic(component) {
			for _, v := range component {
				recursive[v] = true
			}
		}
	}
	var names []string
	for i, name := range c.order {
		if recursive[i] {
			names = append(names, name)
		}
	}
	return names
}

// containedStruct returns the declared struct stored inline in a value of type t, if known.
func containedStruct(t types.TypeRef) *types.KnownStruct {
	n, err := unify.Terminal(t)
	if err != nil || !n.IsResolved() || n.Payload().Kind != types.KindStruct {
		return nil
	}
	s, err := unify.Terminal(n.Payload().Struct)
	if err != nil || !s.IsResolved() {
		return nil
	}
	return s.Payload().Known()
}
