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

// parsedSig pairs one overload's parameter types with its declared return
// type, before it is folded into the ast.BuiltIn's signature list and
// return-type resolver.
type parsedSig struct {
	params []ast.Type
	ret    ast.Type
}

// ParseSignatures parses built-in declaration text of the form
// "returnType name(paramType, paramType, ...);" into BuiltIn symbols, one
// per distinct name, every overload recorded in declaration order. It runs
// the same tokenizer and type grammar as the main parser, just over a
// narrower grammar (no qualifiers, bodies or semantics: built-in signatures
// are forward declarations only). Installed into pkg/builtins via
// builtins.SetParser (spec §4.3).
func ParseSignatures(stage int, text string) ([]*ast.BuiltIn, []error) {
	_ = stage // both stages currently share one seed text; see zz_signatures.go

	diags := &Log{}
	lx := newLexer("<builtins>", text, diags)

	byName := map[string][]parsedSig{}
	var order []string

	for {
		tok := lx.Next()
		if tok.Kind == TokEOF {
			break
		}

		retType, ok := scalarOrMatrixType(tok.Text)
		if !ok {
			continue
		}

		nameTok := lx.Next()
		name := nameTok.Text

		open := lx.Next()
		if open.Text != "(" {
			continue
		}

		var params []ast.Type

		tok = lx.Next()
		for tok.Text != ")" && tok.Kind != TokEOF {
			if pt, ok := scalarOrMatrixType(tok.Text); ok {
				params = append(params, pt)
			}

			tok = lx.Next()

			if tok.Text == "," {
				tok = lx.Next()
			}
		}

		// consume the trailing ';' if present
		if lx.peek() == ';' {
			lx.advance()
		}

		if _, seen := byName[name]; !seen {
			order = append(order, name)
		}

		byName[name] = append(byName[name], parsedSig{params: params, ret: retType})
	}

	result := make([]*ast.BuiltIn, 0, len(order))

	for _, name := range order {
		sigs := byName[name]
		b := &ast.BuiltIn{Name: name}

		for _, s := range sigs {
			b.Signatures = append(b.Signatures, ast.Signature{Params: s.params})
		}

		b.ReturnType = makeReturnTypeFunc(sigs)
		result = append(result, b)
	}

	if diags.Count() > 0 {
		errs := make([]error, diags.Count())
		for i, d := range diags.Entries() {
			errs[i] = signatureError{d}
		}

		return result, errs
	}

	return result, nil
}

type signatureError struct{ d Diagnostic }

func (e signatureError) Error() string { return e.d.String() }

// makeReturnTypeFunc builds the closure an ast.BuiltIn uses to resolve its
// return type given a concrete argument list: an exact parameter-type match
// wins; failing that, the return type of the first overload whose arity
// matches is used (overloads of one arity can differ in return type, as
// mul's do, so this picks by declaration order), and the first overload's
// return type is the final fallback.
func makeReturnTypeFunc(sigs []parsedSig) func(args []ast.Type) ast.Type {
	sigs = append([]parsedSig(nil), sigs...)

	return func(args []ast.Type) ast.Type {
		for _, s := range sigs {
			if sameTypes(s.params, args) {
				return s.ret
			}
		}

		for _, s := range sigs {
			if len(s.params) == len(args) {
				return s.ret
			}
		}

		if len(sigs) > 0 {
			return sigs[0].ret
		}

		return ast.Scalar(ast.Void)
	}
}

func sameTypes(a, b []ast.Type) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
