// Copyright komastudios.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package ast

import "github.com/komastudios/hlsl2glsl/pkg/loc"

// Symbol is a symbol-table entry: what an Ident node's Target field points
// to once binding has resolved it. Spec §3: "Symbol = Variable(...) |
// Function(...) | BuiltIn(...) | TypeDef(...)".
type Symbol interface {
	SymbolName() string
	Pos() loc.Position
	isSymbol()
}

// Semantic is an HLSL semantic annotation (": POSITION", ": TEXCOORD0", ...)
// attached to a parameter or return value. It is carried on the symbol, not
// folded into the Type (spec §4.4).
type Semantic struct {
	Name  string // full spelling, e.g. "POSITION", "TEXCOORD0"
	Index int    // trailing digits of Name: 0 for "POSITION" and "TEXCOORD0", 1 for "COLOR1"
}

// HasSemantic reports whether s names a semantic at all.
func (s Semantic) HasSemantic() bool { return s.Name != "" }

func (s Semantic) String() string {
	if s.Name == "" {
		return ""
	}

	return s.Name
}

// Variable is a local, parameter, or global (including uniform) declaration.
type Variable struct {
	Name     string
	Type     Type
	Init     Node // nil if uninitialized
	Loc      loc.Position
	Semantic Semantic
	// ParamQualifier further narrows Type.Qualifier for function
	// parameters specifically (in/out/inout); for non-parameters this is
	// QualNone and Type.Qualifier carries uniform/const/etc.
	ParamQualifier Qualifier
	// Mutable is set by PropagateMutableUniforms for uniform-qualified
	// variables written to (directly or transitively) from the entry
	// function; codegen must lift such uniforms to a local copy.
	Mutable bool
	// RegisterSpec is the optional ": register(...)" specifier.
	RegisterSpec string
}

func (v *Variable) SymbolName() string  { return v.Name }
func (v *Variable) Pos() loc.Position   { return v.Loc }
func (*Variable) isSymbol()             {}

// Signature is a function's parameter-type list, the key functions are
// overloaded on (spec §3: "Functions are stored by (name + parameter-type
// list)").
type Signature struct {
	Params []Type
}

// Equal reports whether two signatures have identical parameter types.
func (s Signature) Equal(o Signature) bool {
	if len(s.Params) != len(o.Params) {
		return false
	}

	for i := range s.Params {
		if s.Params[i] != o.Params[i] {
			return false
		}
	}

	return true
}

// Function is a user-defined function declaration.
type Function struct {
	Name       string
	ReturnType Type
	ReturnSem  Semantic
	Params     []*Variable
	Body       *Aggregate // nil for a forward declaration
	Loc        loc.Position
	// IsEntry is set on the function named by Translate's entry argument.
	IsEntry bool
}

func (f *Function) SymbolName() string { return f.Name }
func (f *Function) Pos() loc.Position  { return f.Loc }
func (*Function) isSymbol()            {}

// Signature returns the parameter-type-list key used for overload
// resolution.
func (f *Function) Signature() Signature {
	sig := Signature{Params: make([]Type, len(f.Params))}
	for i, p := range f.Params {
		sig.Params[i] = p.Type
	}

	return sig
}

// BuiltIn is an intrinsic or reserved identifier seeded once per process
// (spec §4.3). A built-in name may have several signatures (overloads).
type BuiltIn struct {
	Name       string
	Signatures []Signature
	ReturnType func(args []Type) Type
}

func (b *BuiltIn) SymbolName() string { return b.Name }
func (b *BuiltIn) Pos() loc.Position  { return loc.NoFile(0) }
func (*BuiltIn) isSymbol()            {}

// HasArity reports whether any signature of b accepts n arguments.
func (b *BuiltIn) HasArity(n int) bool {
	for _, sig := range b.Signatures {
		if len(sig.Params) == n {
			return true
		}
	}

	return false
}

// TypeDef is a user struct declaration registered in the symbol table.
type TypeDef struct {
	Name string
	Def  *StructDef
	Loc  loc.Position
}

func (t *TypeDef) SymbolName() string { return t.Name }
func (t *TypeDef) Pos() loc.Position  { return t.Loc }
func (*TypeDef) isSymbol()            {}

var (
	_ Symbol = (*Variable)(nil)
	_ Symbol = (*Function)(nil)
	_ Symbol = (*BuiltIn)(nil)
	_ Symbol = (*TypeDef)(nil)
)
