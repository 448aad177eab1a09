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
	"context"
	"log/slog"
	"sort"

	"github.com/pkg/errors"

	"github.com/wdamron/mono/types"
	"github.com/wdamron/mono/unify"
)

// Checker is a reusable context for applying type constraints within one compilation
// unit. It holds declared structs and named type slots, and records the first failed
// constraint.
//
// A checker cannot be used concurrently. Separate checkers never share type-variables.
type Checker struct {
	structs map[string]*types.KnownStruct
	order   []string
	slots   map[string]types.TypeRef

	constraints int
	err         error
	invalid     [2]types.TypeRef

	log *slog.Logger
}

// Create a new checker. Constraints are logged at debug level to the default logger.
func NewChecker() *Checker {
	return &Checker{
		structs: make(map[string]*types.KnownStruct),
		slots:   make(map[string]types.TypeRef),
		log:     slog.Default(),
	}
}

// Set the logger used for tracing constraints.
func (c *Checker) SetLogger(log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	c.log = log
}

// Reset the state of the checker, removing all structs, slots and errors.
func (c *Checker) Reset() {
	for k := range c.structs {
		delete(c.structs, k)
	}
	for k := range c.slots {
		delete(c.slots, k)
	}
	c.order, c.constraints, c.err, c.invalid = c.order[:0], 0, nil, [2]types.TypeRef{}
}

// Get the error which caused the first failed constraint.
func (c *Checker) Err() error { return c.err }

// Get the pair of types which caused the first failed constraint.
func (c *Checker) Invalid() (types.TypeRef, types.TypeRef) { return c.invalid[0], c.invalid[1] }

// Get the number of constraints applied.
func (c *Checker) Constraints() int { return c.constraints }

// Declare a struct. Struct names must be unique within a checker.
func (c *Checker) DeclareStruct(name string, fields ...types.Field) (*types.KnownStruct, error) {
	if _, ok := c.structs[name]; ok {
		return nil, errors.Errorf("struct %s is already declared", name)
	}
	if err := checkFields(name, fields); err != nil {
		return nil, err
	}
	s := &types.KnownStruct{Name: name, Fields: fields}
	c.structs[name] = s
	c.order = append(c.order, name)
	c.log.Debug("declare struct", "name", name, "fields", len(fields))
	return s, nil
}

// Set the fields of a declared struct. Structs may be declared before their fields are
// defined, so that field types can refer to structs declared later.
func (c *Checker) DefineStruct(name string, fields ...types.Field) error {
	s, ok := c.structs[name]
	if !ok {
		return errors.Errorf("struct %s is not declared", name)
	}
	if err := checkFields(name, fields); err != nil {
		return err
	}
	s.Fields = fields
	c.log.Debug("define struct", "name", name, "fields", len(fields))
	return nil
}

func checkFields(name string, fields []types.Field) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			return errors.Errorf("struct %s declares field %s more than once", name, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// Get a declared struct.
func (c *Checker) Struct(name string) (*types.KnownStruct, bool) {
	s, ok := c.structs[name]
	return s, ok
}

// Get the declared structs, in declaration order.
func (c *Checker) Structs() []*types.KnownStruct {
	structs := make([]*types.KnownStruct, len(c.order))
	for i, name := range c.order {
		structs[i] = c.structs[name]
	}
	return structs
}

// Get the named slot, creating a new type-variable for it on first use.
func (c *Checker) Slot(name string) types.TypeRef {
	if t, ok := c.slots[name]; ok {
		return t
	}
	t := types.NewVar()
	c.slots[name] = t
	return t
}

// Get the names of all slots, sorted.
func (c *Checker) Slots() []string {
	names := make([]string, 0, len(c.slots))
	for name := range c.slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unify requires a and b to have equal types. The first failure is recorded.
func (c *Checker) Unify(a, b types.TypeRef) error {
	c.constraints++
	if c.log.Enabled(context.Background(), slog.LevelDebug) {
		c.log.Debug("unify", "left", types.TypeString(a), "right", types.TypeString(b))
	}
	err := unify.Unify(a, b)
	if err == nil {
		return nil
	}
	if unify.IsInternal(err) {
		c.log.Error("invalid type graph", "err", err)
	}
	if c.err == nil {
		c.err, c.invalid = err, [2]types.TypeRef{a, b}
	}
	return err
}

// Resolve a type to its concrete form.
func (c *Checker) Resolve(t types.TypeRef) (types.Concrete, error) {
	return types.Resolve(t)
}

// Resolve a named slot to its concrete form.
func (c *Checker) ResolveSlot(name string) (types.Concrete, error) {
	t, ok := c.slots[name]
	if !ok {
		return types.Concrete{}, errors.Errorf("slot %s is not defined", name)
	}
	concrete, err := types.Resolve(t)
	if err != nil {
		return types.Concrete{}, errors.Wrapf(err, "slot %s", name)
	}
	return concrete, nil
}
