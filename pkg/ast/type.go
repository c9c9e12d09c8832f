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

// Package ast defines the typed intermediate tree (IT) produced by the
// front end: the closed set of node variants, the type tuple they carry, and
// the symbol-table entry kinds a name can resolve to.
//
// The original hierarchy used virtual dispatch over a class tree; here the
// tree is a closed sum of concrete node types behind the Node interface,
// walked by explicit visitor structs (see visit.go) rather than overridden
// methods.
package ast

import "fmt"

// Basic identifies the scalar/opaque kind underlying a Type.
type Basic int

// The basic kinds a Type can carry. Struct types additionally populate
// Type.Struct; every sampler kind is opaque (Rows=Cols=1).
const (
	Void Basic = iota
	Bool
	Int
	UInt
	Float
	Sampler1D
	Sampler2D
	Sampler3D
	SamplerCube
	Sampler2DShadow
	SamplerRect
	Struct
)

func (b Basic) String() string {
	switch b {
	case Void:
		return "void"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case UInt:
		return "uint"
	case Float:
		return "float"
	case Sampler1D:
		return "sampler1D"
	case Sampler2D:
		return "sampler2D"
	case Sampler3D:
		return "sampler3D"
	case SamplerCube:
		return "samplerCube"
	case Sampler2DShadow:
		return "sampler2DShadow"
	case SamplerRect:
		return "samplerRect"
	case Struct:
		return "struct"
	default:
		return fmt.Sprintf("Basic(%d)", int(b))
	}
}

// IsSampler reports whether b names one of the opaque sampler kinds that
// PropagateSamplerTypes is responsible for disambiguating.
func (b Basic) IsSampler() bool {
	switch b {
	case Sampler1D, Sampler2D, Sampler3D, SamplerCube, Sampler2DShadow, SamplerRect:
		return true
	default:
		return false
	}
}

// Qualifier is a storage/parameter qualifier.
type Qualifier int

// Recognized qualifiers (spec §3).
const (
	QualNone Qualifier = iota
	QualConst
	QualIn
	QualOut
	QualInOut
	QualUniform
	QualAttribute
	QualVarying
)

func (q Qualifier) String() string {
	switch q {
	case QualConst:
		return "const"
	case QualIn:
		return "in"
	case QualOut:
		return "out"
	case QualInOut:
		return "inout"
	case QualUniform:
		return "uniform"
	case QualAttribute:
		return "attribute"
	case QualVarying:
		return "varying"
	default:
		return ""
	}
}

// Precision is a GLSL ES precision qualifier, or PrecisionNone on targets
// that don't carry one (desktop GLSL, spec §4.6).
type Precision int

// Recognized precisions.
const (
	PrecisionNone Precision = iota
	PrecisionLow
	PrecisionMedium
	PrecisionHigh
)

func (p Precision) String() string {
	switch p {
	case PrecisionLow:
		return "lowp"
	case PrecisionMedium:
		return "mediump"
	case PrecisionHigh:
		return "highp"
	default:
		return ""
	}
}

// StructDef is the declaration a Type's Struct field refers back to. It is
// not owned by the Type: many Types (every field of the struct, every
// variable declared with it) share one StructDef.
type StructDef struct {
	Name   string
	Fields []Field
}

// Field is one member of a struct declaration, in declaration order.
type Field struct {
	Name string
	Type Type
}

// Type is the tuple described by spec §3: basic kind, matrix/vector shape,
// array size, an (unowned) struct back-reference, a storage qualifier and a
// precision.
type Type struct {
	Basic     Basic
	Rows      int // 1..4; scalar = vector = matrix with Rows=Cols=1 or N=1
	Cols      int // 1..4; 1 for scalars/vectors
	ArraySize int // 0 = not an array, N>0 = array of N
	Struct    *StructDef
	Qualifier Qualifier
	Precision Precision
	// Polymorphic marks a sampler declared with the bare "sampler" keyword,
	// whose concrete kind (Basic defaults to Sampler2D until resolved) is
	// still pending PropagateSamplerTypes (spec §4.5).
	Polymorphic bool
}

// Scalar constructs the 1x1, non-array, unqualified Type for a basic kind.
func Scalar(b Basic) Type {
	return Type{Basic: b, Rows: 1, Cols: 1}
}

// Vector constructs an N-component vector Type of a basic kind.
func Vector(b Basic, n int) Type {
	return Type{Basic: b, Rows: n, Cols: 1}
}

// Matrix constructs an RxC matrix Type of a basic kind (conventionally
// Float).
func Matrix(b Basic, rows, cols int) Type {
	return Type{Basic: b, Rows: rows, Cols: cols}
}

// IsScalar reports whether t has shape 1x1.
func (t Type) IsScalar() bool {
	return t.Rows == 1 && t.Cols == 1
}

// IsVector reports whether t has shape Nx1 for N > 1.
func (t Type) IsVector() bool {
	return t.Cols == 1 && t.Rows > 1
}

// IsMatrix reports whether t has shape RxC for R > 1 and C > 1.
func (t Type) IsMatrix() bool {
	return t.Rows > 1 && t.Cols > 1
}

// IsArray reports whether t is an array type.
func (t Type) IsArray() bool {
	return t.ArraySize > 0
}

// WithQualifier returns a copy of t with its qualifier replaced.
func (t Type) WithQualifier(q Qualifier) Type {
	t.Qualifier = q
	return t
}

// WithPrecision returns a copy of t with its precision replaced.
func (t Type) WithPrecision(p Precision) Type {
	t.Precision = p
	return t
}

// AssignableFrom implements the promotion lattice of spec §3: scalar <->
// vector-1, bool -> int -> float widening, and matrices must match shape
// exactly. Arrays must match element-wise (no implicit (de)arraying).
func (dst Type) AssignableFrom(src Type) bool {
	if dst.ArraySize != src.ArraySize {
		return false
	}

	if dst.IsMatrix() || src.IsMatrix() {
		return dst.Rows == src.Rows && dst.Cols == src.Cols && basicRank(dst.Basic) >= basicRank(src.Basic)
	}

	if dst.Basic == Struct || src.Basic == Struct {
		return dst.Basic == Struct && src.Basic == Struct && dst.Struct == src.Struct
	}

	if dst.Basic.IsSampler() || src.Basic.IsSampler() {
		return dst.Basic == src.Basic
	}

	dstWidth, srcWidth := effectiveWidth(dst), effectiveWidth(src)
	if dstWidth != srcWidth && dstWidth != 1 && srcWidth != 1 {
		return false
	}

	return basicRank(dst.Basic) >= basicRank(src.Basic)
}

// effectiveWidth returns the vector width, treating scalars and 1-vectors
// the same (spec: "scalar <-> vector-1").
func effectiveWidth(t Type) int {
	if t.Cols != 1 {
		return -1 // matrices handled separately
	}

	return t.Rows
}

// basicRank orders the bool -> int -> float widening lattice; equal rank
// means identical basic kind is required.
func basicRank(b Basic) int {
	switch b {
	case Bool:
		return 0
	case Int, UInt:
		return 1
	case Float:
		return 2
	default:
		return -1
	}
}

func (t Type) String() string {
	name := t.Basic.String()
	if t.Basic == Struct && t.Struct != nil {
		name = t.Struct.Name
	} else if t.IsMatrix() {
		name = fmt.Sprintf("%s%dx%d", name, t.Rows, t.Cols)
	} else if t.IsVector() {
		name = fmt.Sprintf("%s%d", name, t.Rows)
	}

	if t.IsArray() {
		name = fmt.Sprintf("%s[%d]", name, t.ArraySize)
	}

	return name
}
