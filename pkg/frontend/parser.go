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

// Package frontend implements the lexer, parser and parse context described
// in spec §4.4: it tokenizes HLSL-style source (honoring `#line`), builds
// the typed intermediate tree directly as it parses, and records diagnostics
// without aborting at the first error so that later diagnostics on the same
// input can surface too.
package frontend

import (
	"fmt"

	"github.com/komastudios/hlsl2glsl/pkg/ast"
	"github.com/komastudios/hlsl2glsl/pkg/symtab"
)

// Unit is the parsed result of one shader source: every top-level
// declaration in source order, plus the symbol table extended with every
// name the source declared.
type Unit struct {
	Declarations []ast.Node
	Table        *symtab.Table
	Structs      []*ast.StructDef
}

// Parser drives one parse. A Parser is not reentrant and not safe for
// concurrent use; each compile session constructs its own, matching the
// "current parse context" spec §9 calls out as something to pass explicitly
// rather than stash behind a thread-local.
type Parser struct {
	lx      *lexer
	tok     Token
	ahead   []Token
	table   *symtab.Table
	diags   *Log
	errs    int
	structs []*ast.StructDef
}

// NewParser constructs a parser over source, extending builtin with a fresh
// per-compile scope (spec §4.2: CopyFrom).
func NewParser(filename, source string, builtin *symtab.Table, diags *Log) *Parser {
	p := &Parser{
		lx:    newLexer(filename, source, diags),
		table: symtab.CopyFrom(builtin),
		diags: diags,
	}
	p.advance()

	return p
}

func (p *Parser) advance() {
	if len(p.ahead) > 0 {
		p.tok = p.ahead[0]
		p.ahead = p.ahead[1:]

		return
	}

	p.tok = p.lx.Next()
}

// peekNext returns the token one past the current one, buffering it.
func (p *Parser) peekNext() Token {
	return p.peekAt(0)
}

// peekAt returns the token n places past the current one (n=0 is the very
// next token), buffering as many tokens as needed.
func (p *Parser) peekAt(n int) Token {
	for len(p.ahead) <= n {
		p.ahead = append(p.ahead, p.lx.Next())
	}

	return p.ahead[n]
}

func (p *Parser) errorf(kind Kind, format string, args ...any) {
	p.errs++
	p.diags.Errorf(p.tok.Pos, p.tok.Text, kind, format, args...)
}

// expect consumes the current token if it matches text, else records a
// syntax error and leaves the cursor in place so the caller can attempt
// recovery.
func (p *Parser) expect(text string) bool {
	if p.tok.Text == text {
		p.advance()
		return true
	}

	p.errorf(Syntax, "syntax error syntax error")

	return false
}

func (p *Parser) at(text string) bool {
	return p.tok.Text == text
}

// checkIdentifier validates that the current token, expected to be an
// identifier, is not a reserved word (spec §4.4), returning false when it
// is. It never advances the cursor itself; every call site follows up with
// its own p.advance() to consume the name token, reserved or not. Callers
// that can cheaply resynchronize on a reserved name (rather than pressing on
// and risking the following tokens being misparsed as part of the same
// declaration) should do so when ok is false.
func (p *Parser) checkIdentifier() (name string, ok bool) {
	name = p.tok.Text

	if p.tok.Kind == TokIdent && IsReserved(name) {
		p.errorf(Reserved, "Reserved word.")
		p.errorf(Syntax, "syntax error syntax error")

		return name, false
	}

	return name, true
}

// recoverToStatementEnd discards tokens after a syntax error until the next
// ";" (consumed) or "}"/EOF (left for the caller), so a malformed
// declaration produces exactly the diagnostics already recorded for it
// instead of having its leftover tokens misparsed as a fresh construct
// (spec §8 scenarios 5-6: "undeclared identifier" followed by exactly one
// "syntax error syntax error", nothing further).
func (p *Parser) recoverToStatementEnd() {
	for p.tok.Kind != TokEOF && !p.at("}") {
		if p.at(";") {
			p.advance()
			return
		}

		p.advance()
	}
}

// ParseUnit parses an entire shader source into a Unit. Errors are
// accumulated into diags; the caller decides success/failure from whether
// any were recorded (spec §4.4: "failure unless zero diagnostics").
func (p *Parser) ParseUnit() *Unit {
	var decls []ast.Node

	for p.tok.Kind != TokEOF {
		start := p.tok
		d := p.parseTopLevelDecl()

		if d != nil {
			decls = append(decls, d)
		} else if p.tok == start {
			// No progress was made; force advancement to avoid looping
			// forever on unrecoverable input.
			p.advance()
		}
	}

	return &Unit{Declarations: decls, Table: p.table, Structs: p.structs}
}

func (p *Parser) parseTopLevelDecl() ast.Node {
	if p.at("struct") {
		return p.parseStructDecl()
	}

	return p.parseVarOrFuncDecl(ast.QualUniform)
}

func (p *Parser) parseStructDecl() ast.Node {
	pos := p.tok.Pos
	p.advance() // 'struct'

	name, _ := p.checkIdentifier()
	p.advance()

	def := &ast.StructDef{Name: name}

	if !p.expect("{") {
		return nil
	}

	for !p.at("}") && p.tok.Kind != TokEOF {
		ft, _ := p.parseType()
		fname, _ := p.checkIdentifier()
		p.advance()
		def.Fields = append(def.Fields, ast.Field{Name: fname, Type: ft})
		p.expect(";")
	}

	p.expect("}")
	p.expect(";")

	p.structs = append(p.structs, def)

	if err := p.table.Insert(&ast.TypeDef{Name: name, Def: def, Loc: pos}); err != nil {
		p.diags.Errorf(pos, name, Semantic, "%s", err.Error())
	}

	return &ast.Aggregate{Op: ast.AggSequence, Name: "struct:" + name}
}

// parseType parses a base type spelling (keyword or a previously declared
// struct name) with no qualifier/array suffix; qualifiers and array sizes
// are layered on by the declaration-level callers. ok is false when text did
// not name a known type, in which case a single "undeclared identifier"
// diagnostic has already been recorded and the caller should treat whatever
// follows as unparseable rather than attempt to continue the declaration
// (spec §8 scenario 5).
func (p *Parser) parseType() (t ast.Type, ok bool) {
	text := p.tok.Text
	pos := p.tok.Pos

	if t, ok := scalarOrMatrixType(text); ok {
		p.advance()
		return t, true
	}

	if sym := p.table.Find(text); sym != nil {
		if td, ok := sym.(*ast.TypeDef); ok {
			p.advance()
			return ast.Type{Basic: ast.Struct, Rows: 1, Cols: 1, Struct: td.Def}, true
		}
	}

	p.diags.Errorf(pos, text, Semantic, "undeclared identifier")
	p.advance()

	return ast.Scalar(ast.Void), false
}

func scalarOrMatrixType(text string) (ast.Type, bool) {
	switch text {
	case "void":
		return ast.Scalar(ast.Void), true
	case "bool":
		return ast.Scalar(ast.Bool), true
	case "int":
		return ast.Scalar(ast.Int), true
	case "uint":
		return ast.Scalar(ast.UInt), true
	case "float":
		return ast.Scalar(ast.Float), true
	case "sampler1D":
		return ast.Scalar(ast.Sampler1D), true
	case "sampler2D":
		return ast.Scalar(ast.Sampler2D), true
	case "sampler3D":
		return ast.Scalar(ast.Sampler3D), true
	case "samplerCube":
		return ast.Scalar(ast.SamplerCube), true
	case "sampler2DShadow":
		return ast.Scalar(ast.Sampler2DShadow), true
	case "samplerRect":
		return ast.Scalar(ast.SamplerRect), true
	case "sampler":
		// HLSL's polymorphic sampler keyword: texture kind is inferred
		// later by PropagateSamplerTypes (spec §4.5); default to 2D here
		// and let the transform pass refine or flag a conflict.
		t := ast.Scalar(ast.Sampler2D)
		t.Polymorphic = true

		return t, true
	}

	for n := 1; n <= 4; n++ {
		if text == "float"+itoa(n) {
			return ast.Vector(ast.Float, n), true
		}

		if text == "int"+itoa(n) {
			return ast.Vector(ast.Int, n), true
		}

		if text == "bool"+itoa(n) {
			return ast.Vector(ast.Bool, n), true
		}

		for m := 1; m <= 4; m++ {
			if text == fmt.Sprintf("float%dx%d", n, m) {
				return ast.Matrix(ast.Float, n, m), true
			}
		}
	}

	return ast.Type{}, false
}

// parseSemantic parses an optional ": NAME" suffix, returning the zero
// Semantic if none is present.
func (p *Parser) parseSemantic() ast.Semantic {
	if !p.at(":") {
		return ast.Semantic{}
	}

	p.advance()

	name := p.tok.Text
	p.advance()

	return splitSemanticIndex(name)
}

// splitSemanticIndex splits a trailing decimal suffix off a semantic name,
// e.g. "TEXCOORD0" -> ("TEXCOORD0", 0), "COLOR1" -> ("COLOR1", 1). The full
// spelling (including the digit) is retained as Name since GLSL global
// naming uses the whole semantic spelling (spec §4.7); Index exists for
// components (COLORn, TEXCOORDn) that the linker binds positionally.
func splitSemanticIndex(name string) ast.Semantic {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}

	idx := 0
	if i < len(name) {
		for _, c := range name[i:] {
			idx = idx*10 + int(c-'0')
		}
	}

	return ast.Semantic{Name: name, Index: idx}
}
