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

package unify_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/wdamron/mono/unify"
)

// con is a payload naming a type constructor; constructors merge when their names match.
type con string

func (c con) Merge(other con) (con, error) {
	if c != other {
		return "", errors.New("Failed to unify " + string(c) + " with " + string(other))
	}
	return c, nil
}

func (c con) Concrete() (string, error) { return string(c), nil }

type node = Node[con, string]

func unknown() *node { return NewUnknown[con, string]() }

func known(name string, args ...*node) *node { return NewResolved[con, string](con(name), args...) }

func TestUnifyIdentity(t *testing.T) {
	a := known("int")
	require.NoError(t, Unify(a, a))
	assert.True(t, a.IsResolved())
	assert.Equal(t, con("int"), a.Payload())

	u := unknown()
	require.NoError(t, Unify(u, u))
	assert.True(t, u.IsUnknown())
}

func TestUnifyUnknowns(t *testing.T) {
	a, b := unknown(), unknown()
	require.NoError(t, Unify(a, b))

	require.True(t, a.IsAlias())
	require.True(t, b.IsAlias())
	assert.Same(t, a.Link(), b.Link())
	assert.True(t, a.Link().IsUnknown())
	assert.True(t, Same(a, b))

	_, err := Concrete(a)
	require.ErrorIs(t, err, ErrUnresolved)
	var unresolved *UnresolvedError
	require.ErrorAs(t, err, &unresolved)

	// refining the shared variable is visible through both aliases
	require.NoError(t, Unify(b, known("bool")))
	ca, err := Concrete(a)
	require.NoError(t, err)
	assert.Equal(t, "bool", ca)
}

func TestUnifyUnknownAbsorption(t *testing.T) {
	child := unknown()
	for _, flip := range []bool{false, true} {
		u, r := unknown(), known("ref", child)
		var err error
		if flip {
			err = Unify(r, u)
		} else {
			err = Unify(u, r)
		}
		require.NoError(t, err)

		require.True(t, u.IsResolved())
		assert.Equal(t, con("ref"), u.Payload())
		require.Len(t, u.Args(), 1)
		assert.Same(t, child, u.Args()[0])
		assert.Same(t, child, r.Args()[0])
		assert.False(t, Same(u, r), "absorption copies the resolved state rather than aliasing")
	}
}

func TestUnifyResolvedChildren(t *testing.T) {
	x, y := unknown(), known("int")
	a, b := known("ref", x), known("ref", y)
	require.NoError(t, Unify(a, b))

	cx, err := Concrete(x)
	require.NoError(t, err)
	assert.Equal(t, "int", cx)

	// the unified arguments are shared with the original children
	require.Len(t, a.Args(), 1)
	require.Len(t, b.Args(), 1)
	assert.True(t, Same(a.Args()[0], x))
	assert.True(t, Same(b.Args()[0], x))
}

func TestUnifyInfiniteType(t *testing.T) {
	x := unknown()
	require.ErrorIs(t, Unify(x, known("ref", x)), ErrInfiniteType)
	assert.True(t, x.IsUnknown())

	// through an alias and a nested constructor, from either side
	y := unknown()
	require.NoError(t, Unify(x, y))
	err := Unify(known("ref", known("pair", known("int"), y)), x)
	require.ErrorIs(t, err, ErrInfiniteType)
	assert.False(t, IsInternal(err))
	assert.True(t, y.IsAlias())

	require.NoError(t, Unify(x, known("ref", unknown())))
}

func TestUnifySymmetry(t *testing.T) {
	build := func() (*node, *node, *node) {
		x := unknown()
		return x, known("pair", x, unknown()), known("pair", known("int"), known("bool"))
	}

	x1, a1, b1 := build()
	require.NoError(t, Unify(a1, b1))
	x2, a2, b2 := build()
	require.NoError(t, Unify(b2, a2))

	for _, pair := range [][2]*node{{x1, x2}, {a1.Args()[1], a2.Args()[1]}, {b1.Args()[0], b2.Args()[0]}} {
		c1, err := Concrete(pair[0])
		require.NoError(t, err)
		c2, err := Concrete(pair[1])
		require.NoError(t, err)
		assert.Equal(t, c1, c2)
	}
}

func TestUnifyAliasChase(t *testing.T) {
	a, b := unknown(), unknown()
	require.NoError(t, Unify(a, b))
	c, d := unknown(), unknown()
	require.NoError(t, Unify(c, d))

	// a -> f1, c -> f2; joining them leaves the first-hop aliases in place
	require.NoError(t, Unify(a, c))
	assert.True(t, a.IsAlias())
	assert.True(t, a.Link().IsAlias())
	assert.True(t, Same(b, d))

	require.NoError(t, Unify(d, known("int")))
	for _, n := range []*node{a, b, c, d} {
		cn, err := Concrete(n)
		require.NoError(t, err)
		assert.Equal(t, "int", cn)
	}
}

func TestUnifyMismatch(t *testing.T) {
	err := Unify(known("int"), known("bool"))
	require.Error(t, err)
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.False(t, IsInternal(err))
	assert.Equal(t, "Failed to unify int with bool", err.Error())

	// nested failures are reported once, not re-wrapped per level
	err = Unify(known("ref", known("int")), known("ref", known("bool")))
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "Failed to unify int with bool", mismatch.Err.Error())
}

func TestUnifyArityMismatch(t *testing.T) {
	err := Unify(known("pair", unknown()), known("pair", unknown(), unknown()))
	require.ErrorIs(t, err, ErrArityMismatch)
	assert.True(t, IsInternal(err))
}

func TestAliasCycle(t *testing.T) {
	a, b := unknown(), unknown()
	require.NoError(t, Unify(a, b))
	// corrupt the graph: point the shared variable back at a
	f := a.Link()
	require.NoError(t, Unify(f, known("int")))
	*f = *a

	_, err := Terminal(a)
	require.ErrorIs(t, err, ErrAliasCycle)
	_, err = Concrete(b)
	require.ErrorIs(t, err, ErrAliasCycle)
	assert.True(t, IsInternal(Unify(a, known("int"))))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Unknown", Unknown.String())
	assert.Equal(t, "Alias", Alias.String())
	assert.Equal(t, "Resolved", Resolved.String())
}

func BenchmarkUnifyChain(b *testing.B) {
	for n := 0; n < b.N; n++ {
		nodes := make([]*node, 64)
		for i := range nodes {
			nodes[i] = unknown()
		}
		for i := 1; i < len(nodes); i++ {
			if err := Unify(nodes[i-1], nodes[i]); err != nil {
				b.Fatal(err)
			}
		}
		if err := Unify(nodes[0], known("int")); err != nil {
			b.Fatal(err)
		}
	}
}
