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

// Package layout computes the memory layout and IR value classes of concrete types,
// as needed when lowering to QBE.
package layout

import (
	"errors"
	"strconv"

	"github.com/wdamron/mono/types"
)

var (
	// A struct contains itself other than through a reference.
	ErrRecursiveStruct = errors.New("Struct has infinite size")
	// Aggregates are copied by the backend, not loaded or stored in a single instruction.
	ErrAggregate = errors.New("Struct values cannot be loaded or stored directly")
)

type Options struct {
	// Size and alignment of references, in bytes
	PointerSize int
}

var DefaultOptions = Options{PointerSize: 8}

// StructLayout describes the placement of the fields of a struct in memory.
type StructLayout struct {
	Name   string
	Size   int
	Align  int
	Fields []FieldLayout
}

type FieldLayout struct {
	Name   string
	Offset int
	Size   int
	Align  int
}

// Layout computes and caches struct layouts. A Layout cannot be used concurrently.
type Layout struct {
	opts    Options
	structs map[*types.ConcreteStruct]*StructLayout
	pending map[*types.ConcreteStruct]bool
}

func New(opts Options) *Layout {
	if opts.PointerSize <= 0 {
		opts.PointerSize = DefaultOptions.PointerSize
	}
	return &Layout{
		opts:    opts,
		structs: make(map[*types.ConcreteStruct]*StructLayout),
		pending: make(map[*types.ConcreteStruct]bool),
	}
}

func (l *Layout) PointerSize() int { return l.opts.PointerSize }

// Size returns the size of a value of type c, in bytes.
func (l *Layout) Size(c types.Concrete) (int, error) {
	size, _, err := l.sizeAlign(c)
	return size, err
}

// Align returns the alignment of a value of type c, in bytes.
func (l *Layout) Align(c types.Concrete) (int, error) {
	_, align, err := l.sizeAlign(c)
	return align, err
}

func (l *Layout) sizeAlign(c types.Concrete) (int, int, error) {
	switch c.Kind {
	case types.KindBool:
		return 1, 1, nil
	case types.KindInt:
		n := c.Int.Width.Bytes()
		return n, n, nil
	case types.KindRef:
		return l.opts.PointerSize, l.opts.PointerSize, nil
	case types.KindStruct:
		sl, err := l.Struct(c.Struct)
		if err != nil {
			return 0, 0, err
		}
		return sl.Size, sl.Align, nil
	}
	return 0, 0, errors.New("Cannot lay out type of kind " + c.Kind.String())
}

// Struct lays out the fields of s in declaration order, each at its natural alignment.
// The size of the struct is rounded up to its alignment.
func (l *Layout) Struct(s *types.ConcreteStruct) (*StructLayout, error) {
	if sl, ok := l.structs[s]; ok {
		return sl, nil
	}
	if l.pending[s] {
		return nil, ErrRecursiveStruct
	}
	l.pending[s] = true
	defer delete(l.pending, s)

	sl := &StructLayout{Name: s.Name, Align: 1, Fields: make([]FieldLayout, 0, len(s.Fields))}
	offset := 0
	for _, f := range s.Fields {
		size, align, err := l.sizeAlign(f.Type)
		if err != nil {
			return nil, err
		}
		offset = alignTo(offset, align)
		sl.Fields = append(sl.Fields, FieldLayout{Name: f.Name, Offset: offset, Size: size, Align: align})
		offset += size
		if align > sl.Align {
			sl.Align = align
		}
	}
	sl.Size = alignTo(offset, sl.Align)
	l.structs[s] = sl
	return sl, nil
}

func alignTo(n, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}

// Class returns the QBE type of a value of type c held in a temporary: `w` for booleans
// and integers, `l` for references, and `:Name` for structs.
func (l *Layout) Class(c types.Concrete) string {
	switch c.Kind {
	case types.KindRef:
		if l.opts.PointerSize == 4 {
			return "w"
		}
		return "l"
	case types.KindStruct:
		return ":" + c.Struct.Name
	default:
		return "w"
	}
}

// StoreOp returns the QBE instruction which stores a value of type c to memory.
func (l *Layout) StoreOp(c types.Concrete) (string, error) {
	switch c.Kind {
	case types.KindBool:
		return "storeb", nil
	case types.KindInt:
		return "store" + memSuffix(c.Int.Width.Bytes()), nil
	case types.KindRef:
		return "store" + memSuffix(l.opts.PointerSize), nil
	}
	return "", ErrAggregate
}

// LoadOp returns the QBE instruction which loads a value of type c from memory,
// extending narrow integers according to their signedness.
func (l *Layout) LoadOp(c types.Concrete) (string, error) {
	switch c.Kind {
	case types.KindBool:
		return "loadub", nil
	case types.KindInt:
		sign := "s"
		if c.Int.Signedness == types.Unsigned {
			sign = "u"
		}
		return "load" + sign + memSuffix(c.Int.Width.Bytes()), nil
	case types.KindRef:
		if l.opts.PointerSize == 4 {
			return "loaduw", nil
		}
		return "loadl", nil
	}
	return "", ErrAggregate
}

// AllocOp returns the QBE stack allocation instruction for a value of type c.
func (l *Layout) AllocOp(c types.Concrete) (string, error) {
	size, align, err := l.sizeAlign(c)
	if err != nil {
		return "", err
	}
	switch {
	case align <= 4:
		align = 4
	case align <= 8:
		align = 8
	default:
		align = 16
	}
	return "alloc" + strconv.Itoa(align) + " " + strconv.Itoa(size), nil
}

func memSuffix(bytes int) string {
	switch bytes {
	case 1:
		return "b"
	case 2:
		return "h"
	case 4:
		return "w"
	default:
		return "l"
	}
}
