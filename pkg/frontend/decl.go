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
	"github.com/komastudios/hlsl2glsl/pkg/ast"
)

// parseVarOrFuncDecl parses either a global/local variable declaration
// ("float4x4 matrix_mvp, matrix_normal;") or a function declaration/
// definition ("float4 main(...) { ... }"), disambiguating by whether an
// identifier is followed by "(". defaultQualifier is the qualifier applied
// to bare (unqualified) top-level variables — HLSL globals are implicitly
// uniform unless marked "static" (spec §3, §4.6).
func (p *Parser) parseVarOrFuncDecl(defaultQualifier ast.Qualifier) ast.Node {
	qualifier, isStatic := p.parseLeadingQualifiers(defaultQualifier)
	baseType, typeOK := p.parseType()

	if !typeOK {
		// The base type never resolved, so whatever follows (its name, an
		// argument list mistaken for one) cannot be parsed as this
		// declaration; diagnose the one syntax error at the offending token
		// and resynchronize rather than press on (spec §8 scenario 5).
		p.errorf(Syntax, "syntax error syntax error")
		p.recoverToStatementEnd()

		return nil
	}

	name, nameOK := p.checkIdentifier()
	namePos := p.tok
	p.advance()

	if !nameOK {
		// checkIdentifier already recorded the Reserved+Syntax pair; do not
		// also interpret a following "(...)" as this name's parameter list
		// (spec §8 scenario 6).
		p.recoverToStatementEnd()

		return nil
	}

	if p.at("(") {
		return p.parseFunctionDecl(baseType, name, namePos)
	}

	return p.parseVariableDecls(baseType, name, namePos, qualifier, isStatic)
}

// parseLeadingQualifiers consumes "static", "const", "uniform", "attribute"
// and "varying" keywords appearing before the base type, returning the
// effective qualifier. "static" overrides the default-uniform rule for
// shader-global declarations.
func (p *Parser) parseLeadingQualifiers(defaultQualifier ast.Qualifier) (ast.Qualifier, bool) {
	qualifier := defaultQualifier
	isStatic := false

	for {
		switch p.tok.Text {
		case "static":
			isStatic = true
			qualifier = ast.QualNone
			p.advance()
		case "const":
			qualifier = ast.QualConst
			p.advance()
		case "uniform":
			qualifier = ast.QualUniform
			p.advance()
		case "attribute":
			qualifier = ast.QualAttribute
			p.advance()
		case "varying":
			qualifier = ast.QualVarying
			p.advance()
		default:
			return qualifier, isStatic
		}
	}
}

// parseVariableDecls parses the comma-separated declarator list sharing
// baseType/qualifier that follows the first declarator's name, e.g.
// "matrix_mvp, matrix_normal;" once "float4x4 matrix_mvp" has been read.
func (p *Parser) parseVariableDecls(baseType ast.Type, firstName string, firstPos Token, qualifier ast.Qualifier, _ bool) ast.Node {
	var decls []ast.Node

	declareOne := func(name string, pos Token) {
		t := baseType.WithQualifier(qualifier)

		if p.at("[") {
			t = p.parseArraySuffix(t)
		}

		var registerSpec string
		if p.at(":") {
			// Top-level globals may carry ": register(...)" instead of a
			// semantic; both share the colon-suffix grammar slot.
			p.advance()

			if p.tok.Text == "register" {
				registerSpec = p.parseRegisterSpec()
			} else {
				p.diags.Errorf(pos.Pos, pos.Text, Semantic, "semantic annotation on non-parameter")
				p.advance()
			}
		}

		var init ast.Node
		if p.at("=") {
			p.advance()
			init = p.parseAssignExpr()
		}

		v := &ast.Variable{Name: name, Type: t, Init: init, Loc: pos.Pos, RegisterSpec: registerSpec}
		if err := p.table.Insert(v); err != nil {
			p.diags.Errorf(pos.Pos, name, Semantic, "%s", err.Error())
		}

		id := ast.NewIdent(pos.Pos, name, t)
		id.Target = v
		decls = append(decls, id)
	}

	declareOne(firstName, firstPos)

	for p.at(",") {
		p.advance()

		pos := p.tok
		name, _ := p.checkIdentifier()
		p.advance()
		declareOne(name, pos)
	}

	p.expect(";")

	return &ast.Aggregate{Op: ast.AggSequence, Children: decls}
}

func (p *Parser) parseArraySuffix(t ast.Type) ast.Type {
	p.advance() // '['

	n := 0
	if p.tok.Kind == TokIntLiteral {
		for _, c := range p.tok.Text {
			n = n*10 + int(c-'0')
		}

		p.advance()
	}

	p.expect("]")
	t.ArraySize = n

	return t
}

func (p *Parser) parseRegisterSpec() string {
	start := p.tok.Pos
	p.advance() // 'register'
	p.expect("(")

	spec := ""
	for !p.at(")") && p.tok.Kind != TokEOF {
		spec += p.tok.Text
		p.advance()
	}

	p.expect(")")
	_ = start

	return spec
}

// parseFunctionDecl parses the parameter list and, if present, the body of
// a function declaration/definition. A bare ": SEMANTIC" after the
// parameter list annotates the return value itself, which codegen/link
// treats identically to an "out" parameter's semantic (SPEC_FULL §8
// expansion).
func (p *Parser) parseFunctionDecl(returnType ast.Type, name string, pos Token) ast.Node {
	p.advance() // '('

	var params []*ast.Variable

	p.table.Push()

	for !p.at(")") && p.tok.Kind != TokEOF {
		params = append(params, p.parseParam())

		if p.at(",") {
			p.advance()
		}
	}

	p.expect(")")

	returnSem := p.parseSemantic()

	fn := &ast.Function{Name: name, ReturnType: returnType, ReturnSem: returnSem, Params: params, Loc: pos.Pos}

	if p.at("{") {
		fn.Body = p.parseBlock()
	} else {
		p.expect(";")
	}

	p.table.Pop()

	if err := p.table.Insert(fn); err != nil {
		p.diags.Errorf(pos.Pos, name, Semantic, "%s", err.Error())
	}

	bodyChildren := []ast.Node{&ast.Aggregate{Op: ast.AggParameters, Name: name}}
	if fn.Body != nil {
		bodyChildren = append(bodyChildren, fn.Body)
	}

	return &ast.Aggregate{Op: ast.AggFunction, Name: name, Children: bodyChildren, Type: returnType}
}

func (p *Parser) parseParam() *ast.Variable {
	qualifier := ast.QualIn

	switch p.tok.Text {
	case "in":
		p.advance()
	case "out":
		qualifier = ast.QualOut
		p.advance()
	case "inout":
		qualifier = ast.QualInOut
		p.advance()
	case "uniform":
		qualifier = ast.QualUniform
		p.advance()
	}

	t, _ := p.parseType()
	name, _ := p.checkIdentifier()
	pos := p.tok.Pos
	p.advance()

	if p.at("[") {
		t = p.parseArraySuffix(t)
	}

	sem := p.parseSemantic()

	v := &ast.Variable{Name: name, Type: t, Loc: pos, Semantic: sem, ParamQualifier: qualifier}
	if err := p.table.Insert(v); err != nil {
		p.diags.Errorf(pos, name, Semantic, "%s", err.Error())
	}

	return v
}
