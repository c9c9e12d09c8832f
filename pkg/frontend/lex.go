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
	"strings"
	"unicode"

	"github.com/komastudios/hlsl2glsl/pkg/loc"
)

// TokenKind classifies a lexical token.
type TokenKind int

// Token kinds.
const (
	TokEOF TokenKind = iota
	TokIdent
	TokIntLiteral
	TokFloatLiteral
	TokPunct
	TokKeyword
)

// Token is one lexed unit, with the source position of its first character.
type Token struct {
	Kind TokenKind
	Text string
	Pos  loc.Position
}

// typeKeywords are identifiers the lexer classifies as TokKeyword because
// they name a built-in scalar/matrix/sampler type or a storage qualifier,
// rather than a user identifier (spec §3, §4.4).
var typeKeywords = buildTypeKeywords()

func buildTypeKeywords() map[string]bool {
	kw := map[string]bool{
		"void": true, "bool": true, "int": true, "uint": true, "float": true,
		"struct": true, "const": true, "in": true, "out": true, "inout": true,
		"uniform": true, "attribute": true, "varying": true, "static": true,
		"return": true, "if": true, "else": true, "for": true, "while": true,
		"do": true, "break": true, "continue": true, "discard": true,
		"true": true, "false": true,
		"sampler1D": true, "sampler2D": true, "sampler3D": true,
		"samplerCube": true, "sampler2DShadow": true, "samplerRect": true,
		"sampler": true,
	}

	for n := 1; n <= 4; n++ {
		kw["float"+itoa(n)] = true
		kw["int"+itoa(n)] = true
		kw["bool"+itoa(n)] = true

		for m := 1; m <= 4; m++ {
			kw["float"+itoa(n)+"x"+itoa(m)] = true
		}
	}

	return kw
}

func itoa(n int) string { return strconv.Itoa(n) }

// reservedWords are spelled like identifiers but are never valid HLSL
// identifiers — some because the language actively uses them (handled via
// typeKeywords/control-flow above) and some, per spec §4.4, "reserved but
// unused" (e.g. "asm"): using the latter as an identifier is a Reserved
// diagnostic, distinct from an ordinary syntax error.
// Note "register" is intentionally absent: it is used productively in
// ": register(...)" specifiers (spec §3, Uniform record) rather than
// reserved-but-unused.
var reservedWords = map[string]bool{
	"asm": true, "class": true, "union": true, "template": true,
	"this": true, "packed": true, "typedef": true, "namespace": true,
	"using": true, "goto": true, "unsigned": true, "sizeof": true,
	"volatile": true,
}

// IsReserved reports whether name is a reserved-but-unused word (spec §4.4).
func IsReserved(name string) bool {
	return reservedWords[name]
}

// lexer tokenizes HLSL-like source text, tracking the running (file, line)
// location across `#line` directives (spec §4.4).
type lexer struct {
	runes []rune
	pos   int
	file  *string
	line  int
	diags *Log
}

func newLexer(filename string, source string, diags *Log) *lexer {
	var file *string
	if filename != "" {
		f := filename
		file = &f
	}

	return &lexer{runes: []rune(source), line: 1, file: file, diags: diags}
}

func (lx *lexer) position() loc.Position {
	return loc.Position{File: lx.file, Line: lx.line}
}

func (lx *lexer) peek() rune {
	if lx.pos >= len(lx.runes) {
		return 0
	}

	return lx.runes[lx.pos]
}

func (lx *lexer) peekAt(offset int) rune {
	if lx.pos+offset >= len(lx.runes) {
		return 0
	}

	return lx.runes[lx.pos+offset]
}

func (lx *lexer) advance() rune {
	r := lx.peek()
	lx.pos++

	if r == '\n' {
		lx.line++
	}

	return r
}

// skipTrivia consumes whitespace, line/block comments, and `#line`
// directives, which reset the running location rather than producing a
// token (spec §4.4).
func (lx *lexer) skipTrivia() {
	for lx.pos < len(lx.runes) {
		switch {
		case lx.peek() == ' ' || lx.peek() == '\t' || lx.peek() == '\r' || lx.peek() == '\n':
			lx.advance()
		case lx.peek() == '/' && lx.peekAt(1) == '/':
			for lx.pos < len(lx.runes) && lx.peek() != '\n' {
				lx.advance()
			}
		case lx.peek() == '/' && lx.peekAt(1) == '*':
			lx.advance()
			lx.advance()

			for lx.pos < len(lx.runes) && !(lx.peek() == '*' && lx.peekAt(1) == '/') {
				lx.advance()
			}

			if lx.pos < len(lx.runes) {
				lx.advance()
				lx.advance()
			}
		case lx.peek() == '#':
			lx.scanDirective()
		default:
			return
		}
	}
}

// scanDirective handles "#line N" and "#line N \"file\"". Any other
// directive is skipped to end-of-line without effect, matching the
// preprocessor's narrow mandate here (spec only requires #line).
func (lx *lexer) scanDirective() {
	start := lx.pos
	for lx.pos < len(lx.runes) && lx.peek() != '\n' {
		lx.advance()
	}

	text := strings.TrimSpace(string(lx.runes[start:lx.pos]))
	text = strings.TrimPrefix(text, "#")
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "line") {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(text, "line"))
	if len(fields) == 0 {
		return
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return
	}

	lx.line = n

	if len(fields) >= 2 {
		name := strings.Trim(fields[1], `"`)
		lx.file = &name
	}
}

// Next returns the next token, or a TokEOF token when exhausted.
func (lx *lexer) Next() Token {
	lx.skipTrivia()

	pos := lx.position()

	if lx.pos >= len(lx.runes) {
		return Token{Kind: TokEOF, Pos: pos}
	}

	r := lx.peek()

	switch {
	case unicode.IsLetter(r) || r == '_':
		return lx.scanIdentifier(pos)
	case unicode.IsDigit(r):
		return lx.scanNumber(pos)
	default:
		return lx.scanPunct(pos)
	}
}

func (lx *lexer) scanIdentifier(pos loc.Position) Token {
	start := lx.pos
	for lx.pos < len(lx.runes) && (unicode.IsLetter(lx.peek()) || unicode.IsDigit(lx.peek()) || lx.peek() == '_') {
		lx.advance()
	}

	text := string(lx.runes[start:lx.pos])
	if typeKeywords[text] {
		return Token{Kind: TokKeyword, Text: text, Pos: pos}
	}

	return Token{Kind: TokIdent, Text: text, Pos: pos}
}

func (lx *lexer) scanNumber(pos loc.Position) Token {
	start := lx.pos
	isFloat := false

	for lx.pos < len(lx.runes) && unicode.IsDigit(lx.peek()) {
		lx.advance()
	}

	if lx.peek() == '.' && unicode.IsDigit(lx.peekAt(1)) {
		isFloat = true

		lx.advance()

		for lx.pos < len(lx.runes) && unicode.IsDigit(lx.peek()) {
			lx.advance()
		}
	}

	if lx.peek() == 'f' || lx.peek() == 'F' {
		isFloat = true

		lx.advance()
	}

	text := string(lx.runes[start:lx.pos])
	if isFloat {
		return Token{Kind: TokFloatLiteral, Text: text, Pos: pos}
	}

	return Token{Kind: TokIntLiteral, Text: text, Pos: pos}
}

// twoCharPuncts lists multi-character operators; longest-match-first order
// matters since scanPunct tries these before falling back to one rune.
var twoCharPuncts = []string{"<=", ">=", "==", "!=", "&&", "||", "++", "--", "+=", "-=", "*=", "/=", "::"}

func (lx *lexer) scanPunct(pos loc.Position) Token {
	for _, p := range twoCharPuncts {
		if lx.peek() == rune(p[0]) && lx.peekAt(1) == rune(p[1]) {
			lx.advance()
			lx.advance()

			return Token{Kind: TokPunct, Text: p, Pos: pos}
		}
	}

	r := lx.advance()

	return Token{Kind: TokPunct, Text: string(r), Pos: pos}
}
