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
package frontend

import (
	"strconv"

	"github.com/komastudios/hlsl2glsl/pkg/ast"
	"github.com/komastudios/hlsl2glsl/pkg/loc"
)

// parseExpr parses a full (possibly comma-separated) expression.
func (p *Parser) parseExpr() ast.Node {
	e := p.parseAssignExpr()

	for p.at(",") {
		pos := p.tok.Pos
		p.advance()

		rhs := p.parseAssignExpr()
		e = ast.NewBinary(pos, ast.BinComma, e, rhs, typeOf(rhs))
	}

	return e
}

func (p *Parser) parseAssignExpr() ast.Node {
	lhs := p.parseConditional()

	if p.at("=") || p.at("+=") || p.at("-=") || p.at("*=") || p.at("/=") {
		pos := p.tok.Pos
		op := p.tok.Text
		p.advance()

		rhs := p.parseAssignExpr()

		if op != "=" {
			rhs = ast.NewBinary(pos, compoundOp(op), lhs, rhs, typeOf(lhs))
		}

		p.checkAssignable(pos, lhs)
		p.checkAssignCompat(pos, typeOf(lhs), typeOf(rhs))

		return ast.NewBinary(pos, ast.BinAssign, lhs, rhs, typeOf(lhs))
	}

	return lhs
}

func compoundOp(op string) ast.BinaryOp {
	switch op {
	case "+=":
		return ast.BinAdd
	case "-=":
		return ast.BinSub
	case "*=":
		return ast.BinMul
	default:
		return ast.BinDiv
	}
}

// checkAssignable flags assignment to an "in" parameter as a semantic error.
// Writes to a uniform are accepted here: PropagateMutableUniforms
// (pkg/transform) later marks the underlying Variable.Mutable so codegen can
// lift it to a local copy, which is what legitimizes such a write for output.
func (p *Parser) checkAssignable(pos loc.Position, lhs ast.Node) {
	id, ok := lhs.(*ast.Ident)
	if !ok {
		return
	}

	v, ok := id.Target.(*ast.Variable)
	if !ok {
		return
	}

	if v.Type.Qualifier != ast.QualUniform && v.ParamQualifier == ast.QualIn {
		p.diags.Errorf(pos, id.Name, Semantic, "l-value required (cannot modify 'in' parameter)")
	}
}

func (p *Parser) checkAssignCompat(pos loc.Position, dst, src ast.Type) {
	if dst.Basic == ast.Void || src.Basic == ast.Void {
		return
	}

	if !dst.AssignableFrom(src) {
		p.diags.Errorf(pos, "=", Semantic, "cannot convert from '%s' to '%s'", src.String(), dst.String())
	}
}

func (p *Parser) parseConditional() ast.Node {
	cond := p.parseLogicalOr()

	if p.at("?") {
		pos := p.tok.Pos
		p.advance()
		then := p.parseAssignExpr()
		p.expect(":")

		els := p.parseConditional()

		return ast.NewSelection(pos, cond, then, els, typeOf(then))
	}

	return cond
}

type binLevel struct {
	ops []string
	bin map[string]ast.BinaryOp
}

var precedence = []binLevel{
	{[]string{"||"}, map[string]ast.BinaryOp{"||": ast.BinOr}},
	{[]string{"&&"}, map[string]ast.BinaryOp{"&&": ast.BinAnd}},
	{[]string{"==", "!="}, map[string]ast.BinaryOp{"==": ast.BinEq, "!=": ast.BinNe}},
	{[]string{"<", "<=", ">", ">="}, map[string]ast.BinaryOp{"<": ast.BinLt, "<=": ast.BinLe, ">": ast.BinGt, ">=": ast.BinGe}},
	{[]string{"+", "-"}, map[string]ast.BinaryOp{"+": ast.BinAdd, "-": ast.BinSub}},
	{[]string{"*", "/", "%"}, map[string]ast.BinaryOp{"*": ast.BinMul, "/": ast.BinDiv, "%": ast.BinMod}},
}

func (p *Parser) parseLogicalOr() ast.Node  { return p.parseBinaryLevel(0) }
func (p *Parser) parseBinaryLevel(level int) ast.Node {
	if level >= len(precedence) {
		return p.parseUnary()
	}

	lhs := p.parseBinaryLevel(level + 1)
	lvl := precedence[level]

	for containsStr(lvl.ops, p.tok.Text) {
		pos := p.tok.Pos
		op := lvl.bin[p.tok.Text]
		p.advance()

		rhs := p.parseBinaryLevel(level + 1)
		resultType := p.binaryResultType(pos, op, typeOf(lhs), typeOf(rhs))
		lhs = ast.NewBinary(pos, op, lhs, rhs, resultType)
	}

	return lhs
}

func containsStr(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}

	return false
}

func (p *Parser) binaryResultType(pos loc.Position, op ast.BinaryOp, lhs, rhs ast.Type) ast.Type {
	switch op {
	case ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe, ast.BinEq, ast.BinNe, ast.BinAnd, ast.BinOr:
		if lhs.IsVector() {
			return ast.Vector(ast.Bool, lhs.Rows)
		}

		return ast.Scalar(ast.Bool)
	}

	if lhs.IsMatrix() || rhs.IsMatrix() {
		if !lhs.AssignableFrom(rhs) && !rhs.AssignableFrom(lhs) {
			p.diags.Errorf(pos, "", Semantic, "cannot multiply types '%s' and '%s'", lhs.String(), rhs.String())
		}

		return lhs
	}

	if lhs.Rows >= rhs.Rows {
		return lhs
	}

	return rhs
}

func (p *Parser) parseUnary() ast.Node {
	pos := p.tok.Pos

	switch p.tok.Text {
	case "-":
		p.advance()
		operand := p.parseUnary()

		return ast.NewUnary(pos, ast.UnaryNeg, operand, typeOf(operand))
	case "!":
		p.advance()
		operand := p.parseUnary()

		return ast.NewUnary(pos, ast.UnaryNot, operand, ast.Scalar(ast.Bool))
	case "++":
		p.advance()
		operand := p.parseUnary()

		return ast.NewUnary(pos, ast.UnaryPreInc, operand, typeOf(operand))
	case "--":
		p.advance()
		operand := p.parseUnary()

		return ast.NewUnary(pos, ast.UnaryPreDec, operand, typeOf(operand))
	case "(":
		if t, ok := p.tryParseCast(); ok {
			operand := p.parseUnary()

			return p.applyCast(pos, t, operand)
		}
	}

	return p.parsePostfix()
}

// tryParseCast looks ahead past "(<type>)" to see whether a cast follows;
// the current token is the '(' itself, so this needs two tokens of
// lookahead: the candidate type keyword, then the closing ')'. If the
// parenthesized content is not a type spelling this is a plain grouping
// expression instead, and no token is consumed.
func (p *Parser) tryParseCast() (ast.Type, bool) {
	typeTok := p.peekAt(0)
	closeTok := p.peekAt(1)

	if typeTok.Kind != TokKeyword || closeTok.Text != ")" {
		return ast.Type{}, false
	}

	t, ok := scalarOrMatrixType(typeTok.Text)
	if !ok {
		return ast.Type{}, false
	}

	p.advance() // consume '('
	p.advance() // consume the type keyword
	p.advance() // consume ')'

	return t, true
}

// applyCast builds the cast expression node. A matrix-to-smaller-matrix
// cast like "(float3x3)m4" is represented as a Constructor Aggregate so
// codegen can lower it to the per-target helper or intrinsic (spec §4.6).
func (p *Parser) applyCast(pos loc.Position, target ast.Type, operand ast.Node) ast.Node {
	return ast.NewAggregate(pos, ast.AggConstructor, target.String(), []ast.Node{operand}, target)
}

func (p *Parser) parsePostfix() ast.Node {
	e := p.parsePrimary()

	for {
		switch {
		case p.at("."):
			p.advance()

			field := p.tok.Text
			pos := p.tok.Pos
			p.advance()
			e = p.applyMember(pos, e, field)
		case p.at("["):
			pos := p.tok.Pos
			p.advance()

			idx := p.parseExpr()
			p.expect("]")
			e = ast.NewBinary(pos, ast.BinIndex, e, idx, elementType(typeOf(e)))
		case p.at("++"):
			pos := p.tok.Pos
			p.advance()
			e = ast.NewUnary(pos, ast.UnaryPostInc, e, typeOf(e))
		case p.at("--"):
			pos := p.tok.Pos
			p.advance()
			e = ast.NewUnary(pos, ast.UnaryPostDec, e, typeOf(e))
		default:
			return e
		}
	}
}

func elementType(t ast.Type) ast.Type {
	if t.IsArray() {
		t.ArraySize = 0
		return t
	}

	if t.IsMatrix() {
		return ast.Vector(t.Basic, t.Cols)
	}

	if t.IsVector() {
		return ast.Scalar(t.Basic)
	}

	return t
}

// applyMember resolves "expr.field": either a swizzle (1-4 letters drawn
// from xyzw/rgba) on a vector, or a struct field access.
func (p *Parser) applyMember(pos loc.Position, e ast.Node, field string) ast.Node {
	base := typeOf(e)

	if base.Basic == ast.Struct && base.Struct != nil {
		for _, f := range base.Struct.Fields {
			if f.Name == field {
				return ast.NewAggregate(pos, ast.AggMember, "."+field, []ast.Node{e}, f.Type)
			}
		}

		p.diags.Errorf(pos, field, Semantic, "no member named '%s' on struct '%s'", field, base.Struct.Name)

		return e
	}

	if base.IsVector() || base.IsScalar() {
		if t, ok := swizzleType(base, field); ok {
			return ast.NewAggregate(pos, ast.AggMember, "."+field, []ast.Node{e}, t)
		}
	}

	p.diags.Errorf(pos, field, Semantic, "invalid swizzle '%s'", field)

	return e
}

func swizzleType(base ast.Type, field string) (ast.Type, bool) {
	if len(field) == 0 || len(field) > 4 {
		return ast.Type{}, false
	}

	const xyzw = "xyzw"
	const rgba = "rgba"

	for _, c := range field {
		if !containsRune(xyzw, c) && !containsRune(rgba, c) {
			return ast.Type{}, false
		}
	}

	if len(field) == 1 {
		return ast.Scalar(base.Basic), true
	}

	return ast.Vector(base.Basic, len(field)), true
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}

	return false
}

func (p *Parser) parsePrimary() ast.Node {
	pos := p.tok.Pos

	switch p.tok.Kind {
	case TokIntLiteral:
		v, _ := strconv.ParseInt(p.tok.Text, 10, 64)
		p.advance()

		return ast.NewConstant(pos, ast.Scalar(ast.Int), ast.ConstValue{Int: v})
	case TokFloatLiteral:
		v, _ := strconv.ParseFloat(trimFloatSuffix(p.tok.Text), 64)
		p.advance()

		return ast.NewConstant(pos, ast.Scalar(ast.Float), ast.ConstValue{Float: v})
	}

	switch p.tok.Text {
	case "true":
		p.advance()
		return ast.NewConstant(pos, ast.Scalar(ast.Bool), ast.ConstValue{Bool: true})
	case "false":
		p.advance()
		return ast.NewConstant(pos, ast.Scalar(ast.Bool), ast.ConstValue{Bool: false})
	case "(":
		p.advance()
		e := p.parseExpr()
		p.expect(")")

		return e
	}

	if t, ok := scalarOrMatrixType(p.tok.Text); ok {
		name := p.tok.Text
		p.advance()

		if p.at("(") {
			return p.parseCallArgs(pos, name, t)
		}

		return ast.NewIdent(pos, name, t)
	}

	name, _ := p.checkIdentifier()
	p.advance()

	if p.at("(") {
		return p.parseCall(pos, name)
	}

	return p.resolveIdent(pos, name)
}

func trimFloatSuffix(s string) string {
	if len(s) > 0 && (s[len(s)-1] == 'f' || s[len(s)-1] == 'F') {
		return s[:len(s)-1]
	}

	return s
}

func (p *Parser) resolveIdent(pos loc.Position, name string) ast.Node {
	sym := p.table.Find(name)
	if sym == nil {
		p.diags.Errorf(pos, name, Semantic, "undeclared identifier")

		id := ast.NewIdent(pos, name, ast.Scalar(ast.Void))

		return id
	}

	v, ok := sym.(*ast.Variable)
	if !ok {
		p.diags.Errorf(pos, name, Semantic, "'%s' is not a variable", name)

		return ast.NewIdent(pos, name, ast.Scalar(ast.Void))
	}

	id := ast.NewIdent(pos, name, v.Type)
	id.Target = v

	return id
}

// parseCall parses "name(args...)" where name is a user function, built-in
// or intrinsic, resolving the overload by argument types (spec §3, §4.4).
func (p *Parser) parseCall(pos loc.Position, name string) ast.Node {
	p.advance() // '('

	var args []ast.Node
	for !p.at(")") && p.tok.Kind != TokEOF {
		args = append(args, p.parseAssignExpr())

		if p.at(",") {
			p.advance()
		}
	}

	p.expect(")")

	argTypes := make([]ast.Type, len(args))
	for i, a := range args {
		argTypes[i] = typeOf(a)
	}

	resultType := ast.Scalar(ast.Void)
	target := p.table.Find(name)

	if sym, _, ok := p.table.FindFunction(name, argTypes); ok {
		switch s := sym.(type) {
		case *ast.Function:
			resultType = s.ReturnType
		case *ast.BuiltIn:
			if s.ReturnType != nil {
				resultType = s.ReturnType(argTypes)
			} else if len(argTypes) > 0 {
				resultType = argTypes[len(argTypes)-1]
			}
		}
	} else if target == nil {
		p.diags.Errorf(pos, name, Semantic, "undeclared identifier")
	} else {
		p.diags.Errorf(pos, name, Semantic, "no matching overload for '%s'", name)
	}

	node := ast.NewAggregate(pos, ast.AggFunctionCall, name, args, resultType)

	return node
}

// parseCallArgs parses a constructor invocation of a built-in type, e.g.
// "float3x3(m)" (truncation) or "float4(b.x, b.y, b.z, b.w)" (componentwise,
// spec §4.4).
func (p *Parser) parseCallArgs(pos loc.Position, name string, t ast.Type) ast.Node {
	p.advance() // '('

	var args []ast.Node
	for !p.at(")") && p.tok.Kind != TokEOF {
		args = append(args, p.parseAssignExpr())

		if p.at(",") {
			p.advance()
		}
	}

	p.expect(")")

	return ast.NewAggregate(pos, ast.AggConstructor, name, args, t)
}

func typeOf(n ast.Node) ast.Type {
	switch t := n.(type) {
	case *ast.Ident:
		return t.Type
	case *ast.Constant:
		return t.Type
	case *ast.Unary:
		return t.Type
	case *ast.Binary:
		return t.Type
	case *ast.Selection:
		return t.Type
	case *ast.Aggregate:
		return t.Type
	default:
		return ast.Scalar(ast.Void)
	}
}
