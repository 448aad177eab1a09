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

// mono provides type inference for a small monomorphic language with sized integers,
// references and structs.
//
// Types are graphs of shared, mutable type-variables (package unify) which are refined
// in place by unification until each resolves to a concrete type. Struct types may be
// declared by name or inferred from the fields used on a value; field constraints are
// checked against the declared struct once it is known.
//
//
// Packages:
//
//   * unify: generic unification over nodes holding any payload which can merge itself
//   * types: the payloads of the type-system (bool, integers, references, structs)
//   * construct: helpers for building types
//   * layout: sizes, offsets and QBE classes of concrete types
//   * script: constraint scripts for exercising the checker
//
//
// Links:
//
// Hindley-Milner type system: https://en.wikipedia.org/wiki/Hindley–Milner_type_system
//
// Unification: https://en.wikipedia.org/wiki/Unification_(computer_science)
//
// QBE intermediate language: https://c9x.me/compile/doc/il.html
package mono
