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

package types_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/wdamron/mono/construct"

	"github.com/wdamron/mono/types"
	"github.com/wdamron/mono/unify"
)

func point() *types.KnownStruct {
	return Struct("Point", Field("x", TI32()), Field("y", TI32()))
}

func resolveString(t *testing.T, ty types.TypeRef) string {
	t.Helper()
	c, err := types.Resolve(ty)
	require.NoError(t, err)
	return c.String()
}

func TestUnifyIdempotent(t *testing.T) {
	for _, ty := range []types.TypeRef{TBool(), TRef(TU16()), TStruct(point()), TFields(Field("x", TVar()))} {
		before := types.TypeString(ty)
		require.NoError(t, unify.Unify(ty, ty))
		assert.Equal(t, before, types.TypeString(ty))
	}
}

func TestUnifyPropagation(t *testing.T) {
	a, b := TRef(TVar()), TRef(TU16())
	require.NoError(t, unify.Unify(a, b))
	assert.Equal(t, "&u16", resolveString(t, a))
	assert.Equal(t, resolveString(t, a), resolveString(t, b))

	// any is absorbed by the other operand
	top, bl := TAny(), TBool()
	require.NoError(t, unify.Unify(top, bl))
	assert.Equal(t, "bool", resolveString(t, top))
}

func TestUnknownAbsorption(t *testing.T) {
	elem := TVar()
	v, r := TVar(), TRef(elem)
	require.NoError(t, unify.Unify(v, r))
	assert.Equal(t, "&'_0", types.TypeString(v))

	// v shares the pointee with r
	require.NoError(t, unify.Unify(elem, TBool()))
	assert.Equal(t, "&bool", resolveString(t, v))
}

func TestIntMismatch(t *testing.T) {
	err := unify.Unify(TI8(), TU8())
	require.ErrorIs(t, err, types.ErrIntMismatch)
	assert.NotErrorIs(t, err, types.ErrIncompatibleKinds)
	assert.Equal(t, "Failed to unify i8 with u8", err.Error())
	var mismatch *unify.MismatchError
	require.ErrorAs(t, err, &mismatch)

	a, b := TI8(), TI8()
	require.NoError(t, unify.Unify(a, b))
	c, err := types.Resolve(a)
	require.NoError(t, err)
	assert.Equal(t, types.Concrete{Kind: types.KindInt, Int: types.Int{Signedness: types.Signed, Width: types.W8}}, c)
}

func TestIntDefault(t *testing.T) {
	assert.Equal(t, "i32", resolveString(t, TIntAny()))

	// an integer variable is unresolved, unlike an integer of unknown width
	_, err := types.Resolve(TIntVar())
	require.ErrorIs(t, err, unify.ErrUnresolved)

	a, b := TIntAny(), TU8()
	require.NoError(t, unify.Unify(a, b))
	assert.Equal(t, "u8", resolveString(t, a))
}

func TestIncompatibleKinds(t *testing.T) {
	err := unify.Unify(TBool(), TI32())
	require.ErrorIs(t, err, types.ErrIncompatibleKinds)
	assert.Equal(t, "Failed to unify bool with i32", err.Error())

	err = unify.Unify(TRef(TBool()), TRef(TStruct(point())))
	require.ErrorIs(t, err, types.ErrIncompatibleKinds)
	assert.Equal(t, "Failed to unify bool with Point", err.Error())
}

func TestStructRowInference(t *testing.T) {
	x := TIntVar()
	a := TFields(Field("x", x))
	b := TFields(Field("y", TI32()))
	require.NoError(t, unify.Unify(a, b))
	assert.Equal(t, "{x: int, y: i32}", types.TypeString(a))
	assert.Equal(t, types.TypeString(a), types.TypeString(b))

	require.NoError(t, unify.Unify(a, TStruct(point())))
	assert.Equal(t, "Point", types.TypeString(a))
	assert.Equal(t, "Point", types.TypeString(b))

	c, err := types.Resolve(x)
	require.NoError(t, err)
	assert.Equal(t, types.Int{Signedness: types.Signed, Width: types.W32}, c.Int, spew.Sdump(c))
}

func TestStructRowInferenceUsesDeclaredField(t *testing.T) {
	x := TIntVar()
	rgb := Struct("Rgb", Field("r", TU8()), Field("g", TU8()), Field("b", TU8()))
	require.NoError(t, unify.Unify(TStruct(rgb), TFields(Field("g", x))))
	assert.Equal(t, "u8", resolveString(t, x))
}

func TestStructFieldsConflict(t *testing.T) {
	a := TFields(Field("x", TBool()))
	b := TFields(Field("x", TI32()), Field("y", TBool()))
	err := unify.Unify(a, b)
	require.ErrorIs(t, err, types.ErrIncompatibleKinds)
}

func TestStructNameMismatch(t *testing.T) {
	vector := Struct("Vector", Field("x", TI32()), Field("y", TI32()))
	err := unify.Unify(TStruct(point()), TStruct(vector))
	require.ErrorIs(t, err, types.ErrStructNameMismatch)
	assert.Equal(t, "Failed to unify struct Point with struct Vector", err.Error())

	require.NoError(t, unify.Unify(TStruct(point()), TStruct(point())))
}

func TestMissingField(t *testing.T) {
	err := unify.Unify(TFields(Field("z", TVar())), TStruct(point()))
	require.ErrorIs(t, err, types.ErrMissingField)
	assert.Equal(t, "Struct Point has no field z", err.Error())

	var te *types.Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, types.MissingField, te.Kind)
	assert.Equal(t, "z", te.Field)
}

func TestInfiniteType(t *testing.T) {
	p := TVar()
	require.ErrorIs(t, unify.Unify(p, TRef(p)), unify.ErrInfiniteType)
	require.ErrorIs(t, unify.Unify(TRef(TRef(p)), p), unify.ErrInfiniteType)
	assert.Equal(t, "'_0", types.TypeString(p))

	// a row struct which would contain itself
	s := TStructVar()
	err := unify.Unify(s, TFields(Field("next", TRef(s))))
	require.ErrorIs(t, err, unify.ErrInfiniteType)
	assert.False(t, unify.IsInternal(err))

	// two self-referential shapes cannot be built, so unifying them terminates
	q, r := TVar(), TVar()
	require.Error(t, unify.Unify(q, TRef(q)))
	require.Error(t, unify.Unify(r, TRef(r)))
	require.NoError(t, unify.Unify(q, r))
	_, err = types.Resolve(q)
	require.ErrorIs(t, err, unify.ErrUnresolved)

	// declared structs may refer to themselves through their fields
	box := Struct("Box", Field("v", TVar()))
	require.NoError(t, unify.Unify(box.Fields[0].Type, TRef(TStruct(box))))
	c, err := types.Resolve(box.Fields[0].Type)
	require.NoError(t, err)
	assert.Equal(t, "&Box", c.String())
	assert.Same(t, c.Elem.Struct, c.Elem.Struct.Fields[0].Type.Elem.Struct)
}

func TestTypeVariableStrings(t *testing.T) {
	assert.Equal(t, "int", types.IntTypeString(types.NewIntVar()))
	assert.Equal(t, "u16", types.IntTypeString(types.FixedInt(types.Unsigned, types.W16)))

	assert.Equal(t, "'_0", types.StructTypeString(types.NewStructVar()))
	assert.Equal(t, "Point", types.StructTypeString(types.NewStruct(point())))
	assert.Equal(t, "{}", types.StructTypeString(types.NewStructType(types.FieldsStructType(types.EmptyFieldMap))))
	assert.Equal(t, "{x: bool}", types.StructTypeString(types.WithFields(map[string]types.TypeRef{"x": types.Bool()})))
}

func TestUnresolved(t *testing.T) {
	a, b, c := TVar(), TVar(), TVar()
	require.NoError(t, unify.Unify(a, b))
	require.NoError(t, unify.Unify(b, c))
	for _, ty := range []types.TypeRef{a, b, c, TAny(), TStructVar(), TRef(TVar())} {
		_, err := types.Resolve(ty)
		require.ErrorIs(t, err, unify.ErrUnresolved, types.TypeString(ty))
	}

	_, err := types.Resolve(TFields(Field("y", TBool()), Field("x", TBool())))
	require.ErrorIs(t, err, unify.ErrUnresolved)
	assert.Equal(t, "Type could not be inferred: struct with fields {x, y}", err.Error())
}

func TestRecursiveStruct(t *testing.T) {
	list := Struct("List", Field("value", TI16()), Field("next", nil))
	list.Fields[1].Type = TRef(TStruct(list))

	c, err := types.Resolve(TStruct(list))
	require.NoError(t, err)
	require.Equal(t, types.KindStruct, c.Kind)
	next, ok := c.Struct.Field("next")
	require.True(t, ok)
	require.Equal(t, types.KindRef, next.Type.Kind)
	assert.Same(t, c.Struct, next.Type.Elem.Struct)
	assert.Equal(t, "&List", next.Type.String())
}

func TestTypeString(t *testing.T) {
	v := TVar()
	tests := []struct {
		t    types.TypeRef
		want string
	}{
		{TBool(), "bool"},
		{TAny(), "_"},
		{TRef(TRef(TU32())), "&&u32"},
		{TIntVar(), "int"},
		{TIntAny(), "int"},
		{TStruct(point()), "Point"},
		{TFields(Field("y", v), Field("x", TRef(v))), "{x: &'_0, y: '_0}"},
		{TStructVar(), "'_0"},
	}
	for _, test := range tests {
		if s := types.TypeString(test.t); s != test.want {
			t.Fatalf("type: %s, expected %s", s, test.want)
		}
	}
}
