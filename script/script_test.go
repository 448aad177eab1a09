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

package script_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/mono"
	"github.com/wdamron/mono/script"
	"github.com/wdamron/mono/types"
	"github.com/wdamron/mono/unify"
)

func TestParseType(t *testing.T) {
	c := mono.NewChecker()
	_, err := c.DeclareStruct("Point", types.Field{Name: "x", Type: types.Bool()})
	require.NoError(t, err)

	tests := []struct {
		src  string
		want string
	}{
		{"bool", "bool"},
		{" & & u16 ", "&&u16"},
		{"int", "int"},
		{"i8", "i8"},
		{"u32", "u32"},
		{"any", "_"},
		{"_", "'_0"},
		{"Point", "Point"},
		{"{}", "{}"},
		{"{ y: bool, x: &Point }", "{x: &Point, y: bool}"},
		{"$p", "'_0"},
	}
	for _, test := range tests {
		ty, err := script.ParseType(c, test.src)
		require.NoError(t, err, test.src)
		assert.Equal(t, test.want, types.TypeString(ty), test.src)
	}

	// slots are shared between expressions
	a, err := script.ParseType(c, "$p")
	require.NoError(t, err)
	assert.Same(t, c.Slot("p"), a)
}

func TestParseTypeErrors(t *testing.T) {
	c := mono.NewChecker()
	tests := []struct {
		src string
		pos int
		msg string
	}{
		{"", 0, "expected identifier, found end of input"},
		{"Vector", 0, "unknown struct Vector"},
		{"{x: bool", 8, `expected "}", found end of input`},
		{"{x bool}", 3, `expected ":", found "b"`},
		{"{x: bool, x: bool}", 10, "duplicate field x"},
		{"bool bool", 5, `unexpected "bool"`},
		{"&?", 1, `expected identifier, found "?"`},
	}
	for _, test := range tests {
		_, err := script.ParseType(c, test.src)
		var syntax *script.SyntaxError
		require.ErrorAs(t, err, &syntax, test.src)
		assert.Equal(t, test.pos, syntax.Pos, test.src)
		assert.Equal(t, test.msg, syntax.Msg, test.src)
	}
}

const points = `
structs:
  - name: Point
    fields:
      - {name: x, type: i32}
      - {name: y, type: i32}
  - name: Segment
    fields:
      - {name: from, type: "&Point"}
      - {name: to, type: "&Point"}
slots:
  p: "{x: int}"
  s: "_"
constraints:
  - {left: $p, right: "{y: _}"}
  - {left: $s, right: "{from: &$p}"}
  - {left: $s, right: Segment}
resolve: [p, s, unused]
`

func TestRun(t *testing.T) {
	s, err := script.Load("points.yaml", strings.NewReader(points))
	require.NoError(t, err)

	c := mono.NewChecker()
	result, err := s.Run(c)
	require.NoError(t, err)
	require.Nil(t, result.Failure)
	require.Len(t, result.Resolved, 3)

	p := result.Resolved[0]
	require.NoError(t, p.Err)
	assert.Equal(t, "Point", p.Type)
	assert.Equal(t, "Point", p.Concrete.String())

	assert.Equal(t, "Segment", result.Resolved[1].Type)
	require.NoError(t, result.Resolved[1].Err)

	unused := result.Resolved[2]
	assert.Equal(t, "'_0", unused.Type)
	require.ErrorIs(t, unused.Err, unify.ErrUnresolved)
}

func TestRunFailure(t *testing.T) {
	s, err := script.Load("bad.yaml", strings.NewReader(`
slots: {flag: bool}
constraints:
  - {left: $n, right: u8}
  - {left: $flag, right: $n}
  - {left: $n, right: bool}
resolve: [n]
`))
	require.NoError(t, err)

	result, err := s.Run(mono.NewChecker())
	require.NoError(t, err)
	require.NotNil(t, result.Failure)
	assert.Equal(t, 1, result.Failure.Index)
	assert.Equal(t, "bool", result.Failure.Left)
	assert.Equal(t, "u8", result.Failure.Right)
	require.ErrorIs(t, result.Failure.Err, types.ErrIncompatibleKinds)
	assert.Empty(t, result.Resolved)
}

func TestRunInfiniteType(t *testing.T) {
	s, err := script.Load("cycle.yaml", strings.NewReader(`
constraints:
  - {left: $p, right: "&$p"}
resolve: [p]
`))
	require.NoError(t, err)

	result, err := s.Run(mono.NewChecker())
	require.NoError(t, err)
	require.NotNil(t, result.Failure)
	assert.Equal(t, 0, result.Failure.Index)
	assert.Equal(t, "'_0", result.Failure.Left)
	assert.Equal(t, "&'_0", result.Failure.Right)
	require.ErrorIs(t, result.Failure.Err, unify.ErrInfiniteType)
}

func TestRunSlotFailure(t *testing.T) {
	s, err := script.Load("slots.yaml", strings.NewReader(`
slots:
  a: "&$b"
  b: "&$a"
constraints:
  - {left: $a, right: bool}
resolve: [a]
`))
	require.NoError(t, err)

	result, err := s.Run(mono.NewChecker())
	require.NoError(t, err)
	require.NotNil(t, result.Failure)
	assert.Equal(t, -1, result.Failure.Index)
	assert.Equal(t, "b", result.Failure.Slot)
	assert.Equal(t, "'_0", result.Failure.Left)
	assert.Equal(t, "&&'_0", result.Failure.Right)
	require.ErrorIs(t, result.Failure.Err, unify.ErrInfiniteType)
	assert.Empty(t, result.Resolved)
}

func TestLoadErrors(t *testing.T) {
	_, err := script.Load("typo.yaml", strings.NewReader("constraint: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typo.yaml")

	s, err := script.Load("empty.yaml", strings.NewReader(""))
	require.NoError(t, err)
	result, err := s.Run(mono.NewChecker())
	require.NoError(t, err)
	assert.Nil(t, result.Failure)

	s, err = script.Load("dup.yaml", strings.NewReader("structs: [{name: A}, {name: A}]\n"))
	require.NoError(t, err)
	_, err = s.Run(mono.NewChecker())
	assert.EqualError(t, err, "dup.yaml: struct A is already declared")

	s, err = script.Load("rec.yaml", strings.NewReader("structs: [{name: A, fields: [{name: a, type: A}]}]\n"))
	require.NoError(t, err)
	_, err = s.Run(mono.NewChecker())
	assert.EqualError(t, err, "rec.yaml: struct A contains itself")

	s, err = script.Load("syntax.yaml", strings.NewReader("constraints: [{left: bool, right: '&'}]\n"))
	require.NoError(t, err)
	_, err = s.Run(mono.NewChecker())
	assert.EqualError(t, err, `syntax.yaml: constraint 0: invalid type "&" at offset 1: expected identifier, found end of input`)
}
