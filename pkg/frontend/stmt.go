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

import "github.com/komastudios/hlsl2glsl/pkg/ast"

func (p *Parser) parseBlock() *ast.Aggregate {
	p.expect("{")
	p.table.Push()

	var stmts []ast.Node
	for !p.at("}") && p.tok.Kind != TokEOF {
		stmts = append(stmts, p.parseStatement())
	}

	p.table.Pop()
	p.expect("}")

	return &ast.Aggregate{Op: ast.AggSequence, Children: stmts, Type: ast.Scalar(ast.Void)}
}

func (p *Parser) parseStatement() ast.Node {
	switch p.tok.Text {
	case "{":
		return p.parseBlock()
	case "if":
		return p.parseIf()
	case "for":
		return p.parseFor()
	case "while":
		return p.parseWhile()
	case "do":
		return p.parseDoWhile()
	case "return":
		return p.parseBranch(ast.BranchReturn, true)
	case "break":
		return p.parseBranch(ast.BranchBreak, false)
	case "continue":
		return p.parseBranch(ast.BranchContinue, false)
	case "discard":
		return p.parseBranch(ast.BranchDiscard, false)
	}

	if p.isTypeStart() {
		return p.parseVarOrFuncDecl(ast.QualNone)
	}

	return p.parseExprStatement()
}

// isTypeStart reports whether the current token can begin a local
// declaration (a type keyword, or a struct name already in scope).
func (p *Parser) isTypeStart() bool {
	if p.tok.Kind == TokKeyword {
		if _, ok := scalarOrMatrixType(p.tok.Text); ok {
			return true
		}
	}

	if p.tok.Kind == TokIdent {
		if sym := p.table.Find(p.tok.Text); sym != nil {
			_, ok := sym.(*ast.TypeDef)
			return ok
		}
	}

	return false
}

func (p *Parser) parseIf() ast.Node {
	pos := p.tok.Pos
	p.advance() // 'if'
	p.expect("(")
	cond := p.parseExpr()
	p.expect(")")
	then := p.parseStatement()

	var els ast.Node
	if p.at("else") {
		p.advance()
		els = p.parseStatement()
	}

	return ast.NewSelection(pos, cond, then, els, ast.Scalar(ast.Void))
}

func (p *Parser) parseFor() ast.Node {
	pos := p.tok.Pos
	p.advance() // 'for'
	p.expect("(")
	p.table.Push()

	var initN ast.Node
	if !p.at(";") {
		initN = p.parseForInit()
	} else {
		p.advance()
	}

	var cond ast.Node
	if !p.at(";") {
		cond = p.parseExpr()
	}

	p.expect(";")

	var post ast.Node
	if !p.at(")") {
		post = p.parseExpr()
	}

	p.expect(")")
	body := p.parseStatement()
	p.table.Pop()

	return ast.NewLoop(pos, ast.LoopFor, initN, post, cond, body)
}

// parseForInit parses either a local declaration or an expression statement
// as a for-loop initializer, both of which consume the trailing ';'.
func (p *Parser) parseForInit() ast.Node {
	if p.isTypeStart() {
		return p.parseVarOrFuncDecl(ast.QualNone)
	}

	return p.parseExprStatement()
}

func (p *Parser) parseWhile() ast.Node {
	pos := p.tok.Pos
	p.advance()
	p.expect("(")
	cond := p.parseExpr()
	p.expect(")")
	body := p.parseStatement()

	return ast.NewLoop(pos, ast.LoopWhile, nil, nil, cond, body)
}

func (p *Parser) parseDoWhile() ast.Node {
	pos := p.tok.Pos
	p.advance() // 'do'
	body := p.parseStatement()
	p.expect("while")
	p.expect("(")
	cond := p.parseExpr()
	p.expect(")")
	p.expect(";")

	return ast.NewLoop(pos, ast.LoopDoWhile, nil, nil, cond, body)
}

func (p *Parser) parseBranch(kind ast.BranchKind, hasExpr bool) ast.Node {
	pos := p.tok.Pos
	p.advance()

	var expr ast.Node
	if hasExpr && !p.at(";") {
		expr = p.parseExpr()
	}

	p.expect(";")

	return ast.NewBranch(pos, kind, expr)
}

func (p *Parser) parseExprStatement() ast.Node {
	if p.at(";") {
		p.advance()
		return &ast.Aggregate{Op: ast.AggSequence}
	}

	e := p.parseExpr()
	p.expect(";")

	return e
}
