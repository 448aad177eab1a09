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

package script

import (
	"fmt"
	"strconv"

	"github.com/wdamron/mono"
	"github.com/wdamron/mono/types"
)

// SyntaxError describes an invalid type expression.
type SyntaxError struct {
	Src string
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return "invalid type " + strconv.Quote(e.Src) + " at offset " + strconv.Itoa(e.Pos) + ": " + e.Msg
}

// ParseType parses a type expression, resolving struct names and slots through c.
//
//	_            new type-variable
//	any          type which unifies with every type
//	bool
//	int          integer of unknown signedness and width
//	i8 ... u32   fixed integer
//	&T           reference
//	Name         declared struct
//	{x: T, ...}  struct known to contain the listed fields
//	$name        named slot
func ParseType(c *mono.Checker, src string) (types.TypeRef, error) {
	p := &parser{src: src, c: c}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

type parser struct {
	src string
	pos int
	c   *mono.Checker
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Src: p.src, Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) eat(b byte) error {
	if p.peek() != b {
		if p.pos >= len(p.src) {
			return p.errorf("expected %q, found end of input", string(b))
		}
		return p.errorf("expected %q, found %q", string(b), string(p.src[p.pos]))
	}
	p.pos++
	return nil
}

func isIdentByte(b byte, first bool) bool {
	switch {
	case b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z'):
		return true
	case b >= '0' && b <= '9':
		return !first
	}
	return false
}

func (p *parser) ident() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos], p.pos == start) {
		p.pos++
	}
	if p.pos == start {
		if p.pos >= len(p.src) {
			return "", p.errorf("expected identifier, found end of input")
		}
		return "", p.errorf("expected identifier, found %q", string(p.src[p.pos]))
	}
	return p.src[start:p.pos], nil
}

var intTypes = map[string]types.Int{
	"i8":  {Signedness: types.Signed, Width: types.W8},
	"i16": {Signedness: types.Signed, Width: types.W16},
	"i32": {Signedness: types.Signed, Width: types.W32},
	"u8":  {Signedness: types.Unsigned, Width: types.W8},
	"u16": {Signedness: types.Unsigned, Width: types.W16},
	"u32": {Signedness: types.Unsigned, Width: types.W32},
}

func (p *parser) parseType() (types.TypeRef, error) {
	switch p.peek() {
	case '&':
		p.pos++
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return types.Ref(elem), nil

	case '$':
		p.pos++
		name, err := p.ident()
		if err != nil {
			return nil, err
		}
		return p.c.Slot(name), nil

	case '{':
		p.pos++
		return p.parseFields()
	}

	start := p.pos
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	switch name {
	case "_":
		return types.NewVar(), nil
	case "any":
		return types.Any(), nil
	case "bool":
		return types.Bool(), nil
	case "int":
		return types.IntOf(types.UnknownInt()), nil
	}
	if i, ok := intTypes[name]; ok {
		return types.IntOf(types.FixedInt(i.Signedness, i.Width)), nil
	}
	s, ok := p.c.Struct(name)
	if !ok {
		p.pos = start
		return nil, p.errorf("unknown struct %s", name)
	}
	return types.Struct(types.NewStruct(s)), nil
}

func (p *parser) parseFields() (types.TypeRef, error) {
	b := types.NewFieldMapBuilder()
	if p.peek() != '}' {
		for {
			p.skipSpace()
			start := p.pos
			name, err := p.ident()
			if err != nil {
				return nil, err
			}
			if _, dup := b.Get(name); dup {
				p.pos = start
				return nil, p.errorf("duplicate field %s", name)
			}
			if err := p.eat(':'); err != nil {
				return nil, err
			}
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			b.Set(name, t)
			if p.peek() != ',' {
				break
			}
			p.pos++
		}
	}
	if err := p.eat('}'); err != nil {
		return nil, err
	}
	return types.Struct(types.NewStructType(types.FieldsStructType(b.Build()))), nil
}
