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
	"strings"
	"sync"

	"github.com/wdamron/mono/unify"
)

// Types nested deeper than maxPrintDepth are elided; an unchecked graph may be infinite.
const maxPrintDepth = 64

var printerPool = sync.Pool{
	New: func() interface{} {
		return &typePrinter{varNames: make(map[interface{}]string, 16)}
	},
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	for k := range p.varNames {
		delete(p.varNames, k)
	}
	p.depth = 0
	p.sb.Reset()
	printerPool.Put(p)
}

type typePrinter struct {
	varNames map[interface{}]string
	depth    int
	sb       strings.Builder
}

var _unboundNames [128]string

func init() {
	for i := range _unboundNames {
		_unboundNames[i] = "'_" + strconv.Itoa(i)
	}
}

func getUnboundVarName(i int) string {
	if i < len(_unboundNames) {
		return _unboundNames[i]
	}
	return "'_" + strconv.Itoa(i)
}

// Unbound type-variables are named in order of appearance.
func (p *typePrinter) varName(v interface{}) string {
	if name, ok := p.varNames[v]; ok {
		return name
	}
	name := getUnboundVarName(len(p.varNames))
	p.varNames[v] = name
	return name
}

// TypeString returns a string representation of a type-variable.
func TypeString(t TypeRef) string {
	p := newTypePrinter()
	p.typeRef(t)
	s := p.sb.String()
	p.Release()
	return s
}

// IntTypeString returns a string representation of an integer type-variable.
func IntTypeString(t IntTypeRef) string {
	p := newTypePrinter()
	p.intRef(t)
	s := p.sb.String()
	p.Release()
	return s
}

// StructTypeString returns a string representation of a struct type-variable.
func StructTypeString(t StructTypeRef) string {
	p := newTypePrinter()
	p.structRef(t)
	s := p.sb.String()
	p.Release()
	return s
}

func payloadString(t Type) string {
	p := newTypePrinter()
	p.payload(t)
	s := p.sb.String()
	p.Release()
	return s
}

func (p *typePrinter) typeRef(t TypeRef) {
	n, err := unify.Terminal(t)
	switch {
	case err != nil:
		p.sb.WriteString("<CYCLE>")
	case n.IsUnknown():
		p.sb.WriteString(p.varName(n))
	default:
		p.payload(n.Payload())
	}
}

func (p *typePrinter) payload(t Type) {
	if p.depth >= maxPrintDepth {
		p.sb.WriteString("...")
		return
	}
	p.depth++
	defer func() { p.depth-- }()

	switch t.Kind {
	case KindAny:
		p.sb.WriteByte('_')
	case KindBool:
		p.sb.WriteString("bool")
	case KindRef:
		p.sb.WriteByte('&')
		p.typeRef(t.Ref)
	case KindInt:
		p.intRef(t.Int)
	case KindStruct:
		p.structRef(t.Struct)
	}
}

func (p *typePrinter) intRef(t IntTypeRef) {
	n, err := unify.Terminal(t)
	switch {
	case err != nil:
		p.sb.WriteString("<CYCLE>")
	case n.IsUnknown():
		p.sb.WriteString("int")
	default:
		p.sb.WriteString(n.Payload().String())
	}
}

func (p *typePrinter) structRef(t StructTypeRef) {
	n, err := unify.Terminal(t)
	switch {
	case err != nil:
		p.sb.WriteString("<CYCLE>")
	case n.IsUnknown():
		p.sb.WriteString(p.varName(n))
	case n.Payload().IsKnown():
		p.sb.WriteString(n.Payload().Known().Name)
	default:
		p.sb.WriteByte('{')
		i := 0
		n.Payload().Fields().Range(func(name string, ft TypeRef) bool {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(name)
			p.sb.WriteString(": ")
			p.typeRef(ft)
			i++
			return true
		})
		p.sb.WriteByte('}')
	}
}
