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

// Package script loads constraint scripts: YAML documents declaring structs and named
// type slots, a sequence of constraints requiring pairs of types to be equal, and the
// slots whose concrete types should be reported.
//
//	structs:
//	  - name: Point
//	    fields:
//	      - {name: x, type: i32}
//	      - {name: y, type: i32}
//	slots:
//	  p: "{x: int}"
//	constraints:
//	  - {left: $p, right: Point}
//	resolve: [p]
package script

import (
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wdamron/mono"
	"github.com/wdamron/mono/types"
	"github.com/wdamron/mono/unify"
)

type Document struct {
	Structs     []StructDecl      `yaml:"structs"`
	Slots       map[string]string `yaml:"slots"`
	Constraints []Constraint      `yaml:"constraints"`
	Resolve     []string          `yaml:"resolve"`
}

type StructDecl struct {
	Name   string      `yaml:"name"`
	Fields []FieldDecl `yaml:"fields"`
}

type FieldDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Constraint requires the types of Left and Right to be equal.
type Constraint struct {
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

type Script struct {
	Name string
	Doc  Document
}

// Load decodes a script. Unknown keys are rejected.
func Load(name string, r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	s := &Script{Name: name}
	if err := dec.Decode(&s.Doc); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "%s", name)
	}
	return s, nil
}

// LoadFile decodes the script at path.
func LoadFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return Load(path, f)
}

// Result of running a script
type Result struct {
	// Resolved slots, in the order requested by the script
	Resolved []Resolution
	// The first failed constraint, if any. Slots are not resolved after a failure.
	Failure *Failure
}

type Resolution struct {
	Slot string
	// Printed form of the inferred type, which may contain type-variables
	Type     string
	Concrete types.Concrete
	// Set when the slot could not be resolved
	Err error
}

type Failure struct {
	// Index of the constraint within the script, or -1 if the failure was in the
	// declared type of Slot
	Index       int
	Slot        string
	Left, Right string
	Err         error
}

// Run applies the script to c. Malformed scripts and internal errors are returned as
// errors; type errors in the constraints are reported in the result.
func (s *Script) Run(c *mono.Checker) (*Result, error) {
	doc := &s.Doc

	for _, decl := range doc.Structs {
		if _, err := c.DeclareStruct(decl.Name); err != nil {
			return nil, errors.Wrap(err, s.Name)
		}
	}
	for _, decl := range doc.Structs {
		fields := make([]types.Field, len(decl.Fields))
		for i, f := range decl.Fields {
			t, err := ParseType(c, f.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: struct %s field %s", s.Name, decl.Name, f.Name)
			}
			fields[i] = types.Field{Name: f.Name, Type: t}
		}
		if err := c.DefineStruct(decl.Name, fields...); err != nil {
			return nil, errors.Wrap(err, s.Name)
		}
	}
	if recursive := c.RecursiveStructs(); len(recursive) > 0 {
		return nil, errors.Errorf("%s: struct %s contains itself", s.Name, recursive[0])
	}

	names := make([]string, 0, len(doc.Slots))
	for name := range doc.Slots {
		names = append(names, name)
	}
	sort.Strings(names)
	result := &Result{}
	for _, name := range names {
		t, err := ParseType(c, doc.Slots[name])
		if err != nil {
			return nil, errors.Wrapf(err, "%s: slot %s", s.Name, name)
		}
		slot := c.Slot(name)
		leftString, rightString := types.TypeString(slot), types.TypeString(t)
		if err := c.Unify(slot, t); err != nil {
			if unify.IsInternal(err) {
				return nil, errors.Wrapf(err, "%s: slot %s", s.Name, name)
			}
			result.Failure = &Failure{Index: -1, Slot: name, Left: leftString, Right: rightString, Err: err}
			return result, nil
		}
	}

	for i, con := range doc.Constraints {
		left, err := ParseType(c, con.Left)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: constraint %d", s.Name, i)
		}
		right, err := ParseType(c, con.Right)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: constraint %d", s.Name, i)
		}
		leftString, rightString := types.TypeString(left), types.TypeString(right)
		if err := c.Unify(left, right); err != nil {
			if unify.IsInternal(err) {
				return nil, errors.Wrapf(err, "%s: constraint %d", s.Name, i)
			}
			result.Failure = &Failure{Index: i, Left: leftString, Right: rightString, Err: err}
			return result, nil
		}
	}

	for _, name := range doc.Resolve {
		r := Resolution{Slot: name, Type: types.TypeString(c.Slot(name))}
		r.Concrete, r.Err = c.Resolve(c.Slot(name))
		if r.Err != nil && unify.IsInternal(r.Err) {
			return nil, errors.Wrapf(r.Err, "%s: slot %s", s.Name, name)
		}
		result.Resolved = append(result.Resolved, r)
	}
	return result, nil
}
