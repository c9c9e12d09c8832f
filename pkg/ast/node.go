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

// Node is the closed sum every IT tree member belongs to. Each concrete type
// below implements it; traversals switch on the dynamic type rather than
// calling virtual methods (see visit.go).
type Node interface {
	Pos() loc.Position
	isNode()
}

// base carries the location every node has; embedding it gives Pos() for
// free and documents that every node variant satisfies the same contract.
type base struct {
	Loc loc.Position
}

// Pos implements Node.
func (b base) Pos() loc.Position { return b.Loc }
func (base) isNode()             {}

// Ident references a declared name: a variable, a function (pre-overload-
// resolution), or a built-in. It is the spec's "Symbol(id, type, loc)" node;
// named Ident here to avoid colliding with the symbol-table entry type
// (Symbol, in symbol.go) that it resolves to.
type Ident struct {
	base
	Name string
	Type Type
	// Target is filled in once the identifier is bound to a symbol-table
	// entry; nil until then.
	Target Symbol
}

// Constant is a literal value of a known type.
type Constant struct {
	base
	Type  Type
	Value ConstValue
}

// ConstValue is the value carried by a Constant node.
type ConstValue struct {
	Bool  bool
	Int   int64
	Float float64
}

// UnaryOp enumerates the unary operators the parser recognizes.
type UnaryOp int

// Unary operators.
const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryPreInc
	UnaryPreDec
	UnaryPostInc
	UnaryPostDec
)

// Unary is a single-operand expression.
type Unary struct {
	base
	Op      UnaryOp
	Operand Node
	Type    Type
}

// BinaryOp enumerates the binary operators the parser recognizes.
type BinaryOp int

// Binary operators.
const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinLt
	BinLe
	BinGt
	BinGe
	BinEq
	BinNe
	BinAnd
	BinOr
	BinAssign
	BinIndex   // a[b]
	BinComma   // a, b
)

// Binary is a two-operand expression.
type Binary struct {
	base
	Op       BinaryOp
	LHS, RHS Node
	Type     Type
}

// Selection is a conditional expression or an if/else statement; Then/Else
// are nil for a bare "if" with no else branch.
type Selection struct {
	base
	Cond       Node
	Then, Else Node
	Type       Type // Void for an if-statement, the common type for ?:
}

// LoopKind enumerates the loop forms the language supports.
type LoopKind int

// Loop kinds.
const (
	LoopFor LoopKind = iota
	LoopWhile
	LoopDoWhile
)

// Loop is a for/while/do-while construct. Init and Post are nil outside a
// for-loop.
type Loop struct {
	base
	Kind       LoopKind
	Init, Post Node
	Cond, Body Node
}

// BranchKind enumerates non-local control transfers.
type BranchKind int

// Branch kinds.
const (
	BranchReturn BranchKind = iota
	BranchBreak
	BranchContinue
	BranchDiscard
	BranchKill
)

// Branch is a return/break/continue/discard/kill statement. Expr is nil
// except for "return <expr>".
type Branch struct {
	base
	Kind BranchKind
	Expr Node
}

// AggregateOp enumerates the operators an Aggregate node can carry.
type AggregateOp int

// Aggregate operators.
const (
	AggSequence AggregateOp = iota
	AggFunction
	AggFunctionCall
	AggParameters
	AggConstructor
	AggCommaList
	AggMember // struct field access or vector swizzle; Name is ".field"/".xyzw"
)

// Aggregate is a variable-arity node: a statement sequence, a function
// definition (Children holds Parameters then the body), a call, a parameter
// list, a constructor invocation, or a bare comma list.
type Aggregate struct {
	base
	Op       AggregateOp
	Children []Node
	Name     string // function/constructor name (a Parameters list carries its function's name, a struct's field Sequence "struct:<name>"); "" for a plain statement Sequence
	Type     Type
}

var (
	_ Node = (*Ident)(nil)
	_ Node = (*Constant)(nil)
	_ Node = (*Unary)(nil)
	_ Node = (*Binary)(nil)
	_ Node = (*Selection)(nil)
	_ Node = (*Loop)(nil)
	_ Node = (*Branch)(nil)
	_ Node = (*Aggregate)(nil)
)

// NewIdent constructs an Ident node at the given location.
func NewIdent(p loc.Position, name string, t Type) *Ident {
	return &Ident{base{p}, name, t, nil}
}

// NewConstant constructs a Constant node at the given location.
func NewConstant(p loc.Position, t Type, v ConstValue) *Constant {
	return &Constant{base{p}, t, v}
}

// NewUnary constructs a Unary node at the given location.
func NewUnary(p loc.Position, op UnaryOp, operand Node, t Type) *Unary {
	return &Unary{base{p}, op, operand, t}
}

// NewBinary constructs a Binary node at the given location.
func NewBinary(p loc.Position, op BinaryOp, lhs, rhs Node, t Type) *Binary {
	return &Binary{base{p}, op, lhs, rhs, t}
}

// NewSelection constructs a Selection node at the given location.
func NewSelection(p loc.Position, cond, then, els Node, t Type) *Selection {
	return &Selection{base{p}, cond, then, els, t}
}

// NewLoop constructs a Loop node at the given location.
func NewLoop(p loc.Position, kind LoopKind, init, post, cond, body Node) *Loop {
	return &Loop{base{p}, kind, init, post, cond, body}
}

// NewBranch constructs a Branch node at the given location.
func NewBranch(p loc.Position, kind BranchKind, expr Node) *Branch {
	return &Branch{base{p}, kind, expr}
}

// NewAggregate constructs an Aggregate node at the given location.
func NewAggregate(p loc.Position, op AggregateOp, name string, children []Node, t Type) *Aggregate {
	return &Aggregate{base{p}, op, children, name, t}
}
