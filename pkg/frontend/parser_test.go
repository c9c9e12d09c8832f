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
	"testing"

	"github.com/komastudios/hlsl2glsl/pkg/ast"
	"github.com/komastudios/hlsl2glsl/pkg/symtab"
)

func parseSource(t *testing.T, src string) (*Unit, *Log) {
	t.Helper()

	builtin := symtab.NewBuiltinTable()
	mulFn := &ast.BuiltIn{
		Name:       "mul",
		Signatures: []ast.Signature{{Params: []ast.Type{ast.Matrix(ast.Float, 4, 4), ast.Vector(ast.Float, 4)}}},
		ReturnType: func(args []ast.Type) ast.Type { return ast.Vector(ast.Float, 4) },
	}

	if err := builtin.InsertBuiltin(mulFn); err != nil {
		t.Fatal(err)
	}

	diags := &Log{}
	p := NewParser("shader.hlsl", src, builtin, diags)
	unit := p.ParseUnit()

	return unit, diags
}

func TestParseSimpleVertexShader(t *testing.T) {
	src := `
float4x4 matrix_mvp;

struct VertexOutput {
	float4 position;
	float3 normal;
};

VertexOutput main(float4 position : POSITION, float3 normal : NORMAL) {
	VertexOutput o;
	o.position = mul(matrix_mvp, position);
	o.normal = normal;
	return o;
}
`

	unit, diags := parseSource(t, src)

	if got := diags.Count(); got != 0 {
		t.Fatalf("unexpected diagnostics: %s", diags.String())
	}

	if len(unit.Structs) != 1 || unit.Structs[0].Name != "VertexOutput" {
		t.Fatalf("expected VertexOutput struct, got %v", unit.Structs)
	}

	if unit.Table.Find("matrix_mvp") == nil {
		t.Fatal("expected matrix_mvp in global scope")
	}

	if unit.Table.Find("main") != nil {
		t.Fatal("function entries are keyed by signature, not by plain Find")
	}

	if _, _, ok := unit.Table.FindFunction("main", []ast.Type{
		ast.Vector(ast.Float, 4), ast.Vector(ast.Float, 3),
	}); !ok {
		t.Fatal("expected to resolve main by signature")
	}
}

func TestParseUndeclaredIdentifierDiagnostic(t *testing.T) {
	src := `
float4 main() : COLOR {
	return missingValue;
}
`

	_, diags := parseSource(t, src)

	if diags.Count() == 0 {
		t.Fatal("expected an undeclared-identifier diagnostic")
	}

	found := false
	for _, d := range diags.Entries() {
		if d.Kind == Semantic && d.Lexeme == "missingValue" {
			found = true
		}
	}

	if !found {
		t.Fatalf("expected diagnostic referencing missingValue, got %v", diags.Entries())
	}
}

func TestParseReservedWordDiagnostics(t *testing.T) {
	src := `
void main() {
	int asm;
}
`

	_, diags := parseSource(t, src)

	if diags.Count() != 2 {
		t.Fatalf("expected exactly a Reserved diagnostic followed by a Syntax diagnostic, got %v", diags.Entries())
	}

	if diags.Entries()[0].Kind != Reserved {
		t.Fatalf("expected first diagnostic to be Reserved, got %v", diags.Entries()[0].Kind)
	}
}

func TestParseUndeclaredTypeStopsAfterTwoDiagnostics(t *testing.T) {
	src := "#line 1 \"undefined-type-in.hlsl\"\n\nbloat4 b(1.f, 2.f, 3.f, 4.f);\n"

	diags := &Log{}
	p := NewParser("shader.hlsl", src, symtab.NewBuiltinTable(), diags)
	p.ParseUnit()

	want := "undefined-type-in.hlsl(3): ERROR: 'bloat4' : undeclared identifier \n" +
		"undefined-type-in.hlsl(3): ERROR: 'b' : syntax error syntax error \n"

	if got := diags.String(); got != want {
		t.Fatalf("info log mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestParseReservedWordStopsAfterTwoDiagnostics(t *testing.T) {
	src := "float4 asm(1.f, 2.f, 3.f, 4.f);\n"

	diags := &Log{}
	p := NewParser("undefined-type-in.hlsl", src, symtab.NewBuiltinTable(), diags)
	p.ParseUnit()

	want := "undefined-type-in.hlsl(1): ERROR: 'asm' : Reserved word. \n" +
		"undefined-type-in.hlsl(1): ERROR: 'asm' : syntax error syntax error \n"

	if got := diags.String(); got != want {
		t.Fatalf("info log mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestParseForLoopAndSwizzle(t *testing.T) {
	src := `
float4 main(float4 color : COLOR0) : COLOR0 {
	float4 total;
	for (int i = 0; i < 4; i++) {
		total.rgb += color.rgb * 0.5;
	}
	return total;
}
`

	_, diags := parseSource(t, src)

	if diags.Count() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diags.String())
	}
}

func TestParseCastExpression(t *testing.T) {
	src := `
float3x3 toMat3(float4x4 m) {
	return (float3x3)m;
}
`

	_, diags := parseSource(t, src)

	if diags.Count() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diags.String())
	}
}

func TestLineDirectiveTracksFile(t *testing.T) {
	src := "#line 42 \"injected.hlsl\"\nfloat4 bogus;\nfloat4 bogus;\n"

	_, diags := parseSource(t, src)

	if diags.Count() == 0 {
		t.Fatal("expected a duplicate-declaration diagnostic")
	}

	pos := diags.Entries()[0].Pos
	if pos.File == nil || *pos.File != "injected.hlsl" {
		t.Fatalf("expected #line directive to set the file, got %v", pos)
	}

	// The directive sets line 42 for its own line; the duplicate is the
	// second "bogus" declaration, one line further down.
	if pos.Line != 44 {
		t.Fatalf("expected line 44, got %d", pos.Line)
	}
}
