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
	"strings"

	"github.com/wdamron/mono/unify"
)

// Concrete is a fully-resolved type. Elem is set for references, Int for integers,
// and Struct for structs.
type Concrete struct {
	Kind   Kind
	Elem   *Concrete
	Int    Int
	Struct *ConcreteStruct
}

// ConcreteStruct is a resolved declared struct. A struct which refers to itself through
// a reference resolves to a cyclic graph sharing the same *ConcreteStruct.
type ConcreteStruct struct {
	Name   string
	Fields []ConcreteField
}

type ConcreteField struct {
	Name string
	Type Concrete
}

func (c Concrete) String() string {
	var sb strings.Builder
	for c.Kind == KindRef && c.Elem != nil {
		sb.WriteByte('&')
		c = *c.Elem
	}
	switch c.Kind {
	case KindBool:
		sb.WriteString("bool")
	case KindInt:
		sb.WriteString(c.Int.String())
	case KindStruct:
		if c.Struct != nil {
			sb.WriteString(c.Struct.Name)
		}
	}
	return sb.String()
}

// Field returns the resolved field with the given name.
func (s *ConcreteStruct) Field(name string) (ConcreteField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return ConcreteField{}, false
}

// Resolve a type-variable to a concrete type.
func Resolve(t TypeRef) (Concrete, error) { return unify.Concrete(t) }

// concretizer resolves nested type-variables, reusing structs which are already being
// resolved so that recursive structs terminate.
type concretizer struct {
	structs map[string]*ConcreteStruct
}

func (c *concretizer) ref(t TypeRef) (Concrete, error) {
	n, err := unify.Terminal(t)
	if err != nil {
		return Concrete{}, err
	}
	if !n.IsResolved() {
		return Concrete{}, &unify.UnresolvedError{}
	}
	return c.payload(n.Payload())
}

func (c *concretizer) payload(t Type) (Concrete, error) {
	switch t.Kind {
	case KindBool:
		return Concrete{Kind: KindBool}, nil

	case KindRef:
		elem, err := c.ref(t.Ref)
		if err != nil {
			return Concrete{}, err
		}
		return Concrete{Kind: KindRef, Elem: &elem}, nil

	case KindInt:
		i, err := unify.Concrete(t.Int)
		if err != nil {
			return Concrete{}, err
		}
		return Concrete{Kind: KindInt, Int: i}, nil

	case KindStruct:
		n, err := unify.Terminal(t.Struct)
		if err != nil {
			return Concrete{}, err
		}
		if !n.IsResolved() {
			return Concrete{}, &unify.UnresolvedError{What: "struct"}
		}
		s, err := c.structType(n.Payload())
		if err != nil {
			return Concrete{}, err
		}
		return Concrete{Kind: KindStruct, Struct: s}, nil
	}
	return Concrete{}, &unify.UnresolvedError{}
}

func (c *concretizer) structType(s StructType) (*ConcreteStruct, error) {
	if s.known == nil {
		return nil, &unify.UnresolvedError{What: "struct with fields {" + strings.Join(s.fields.Names(), ", ") + "}"}
	}
	if cs, ok := c.structs[s.known.Name]; ok {
		return cs, nil
	}
	if c.structs == nil {
		c.structs = make(map[string]*ConcreteStruct)
	}
	cs := &ConcreteStruct{Name: s.known.Name, Fields: make([]ConcreteField, 0, len(s.known.Fields))}
	c.structs[s.known.Name] = cs
	for _, f := range s.known.Fields {
		ft, err := c.ref(f.Type)
		if err != nil {
			return nil, err
		}
		cs.Fields = append(cs.Fields, ConcreteField{Name: f.Name, Type: ft})
	}
	return cs, nil
}
