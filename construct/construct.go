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

package construct

import (
	"github.com/wdamron/mono/types"
)

// Types

// Create a new type-variable with no constraints: `_`
func TVar() types.TypeRef {
	return types.NewVar()
}

// Type which unifies with every other type: `_`
func TAny() types.TypeRef {
	return types.Any()
}

// Boolean type: `bool`
func TBool() types.TypeRef {
	return types.Bool()
}

// Reference type: `&T`
func TRef(elem types.TypeRef) types.TypeRef {
	return types.Ref(elem)
}

// Fixed integer type: `i32`, `u8`, etc
func TInt(s types.Signedness, w types.Width) types.TypeRef {
	return types.IntOf(types.FixedInt(s, w))
}

// Integer type of unknown signedness and width: `int`
func TIntAny() types.TypeRef {
	return types.IntOf(types.UnknownInt())
}

// Integer type-variable: `int`
func TIntVar() types.TypeRef {
	return types.IntOf(types.NewIntVar())
}

func TI8() types.TypeRef  { return TInt(types.Signed, types.W8) }
func TI16() types.TypeRef { return TInt(types.Signed, types.W16) }
func TI32() types.TypeRef { return TInt(types.Signed, types.W32) }
func TU8() types.TypeRef  { return TInt(types.Unsigned, types.W8) }
func TU16() types.TypeRef { return TInt(types.Unsigned, types.W16) }
func TU32() types.TypeRef { return TInt(types.Unsigned, types.W32) }

// Declared struct type: `Point`
func TStruct(s *types.KnownStruct) types.TypeRef {
	return types.Struct(types.NewStruct(s))
}

// Struct type known only by some of its fields: `{x: i32, y: _}`
func TFields(fields ...types.Field) types.TypeRef {
	b := types.NewFieldMapBuilder()
	for _, f := range fields {
		b.Set(f.Name, f.Type)
	}
	return types.Struct(types.NewStructType(types.FieldsStructType(b.Build())))
}

// Struct type-variable: `'_0`
func TStructVar() types.TypeRef {
	return types.Struct(types.NewStructVar())
}

// Declarations

// Declared struct: `struct Point { x: i32, y: i32 }`
func Struct(name string, fields ...types.Field) *types.KnownStruct {
	return &types.KnownStruct{Name: name, Fields: fields}
}

// Named field with type
func Field(name string, t types.TypeRef) types.Field {
	return types.Field{Name: name, Type: t}
}
