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
package link

import (
	"strings"
	"testing"

	"github.com/komastudios/hlsl2glsl/pkg/ast"
	"github.com/komastudios/hlsl2glsl/pkg/codegen"
)

func vec4() ast.Type { return ast.Vector(ast.Float, 4) }

func vertexEntry() *ast.Function {
	pos := &ast.Variable{Name: "pos", Type: vec4(), ParamQualifier: ast.QualIn, Semantic: ast.Semantic{Name: "POSITION"}}
	color := &ast.Variable{Name: "color", Type: vec4(), ParamQualifier: ast.QualOut, Semantic: ast.Semantic{Name: "COLOR"}}

	return &ast.Function{
		Name:       "vert_main",
		ReturnType: vec4(),
		ReturnSem:  ast.Semantic{Name: "POSITION"},
		Params:     []*ast.Variable{pos, color},
		Body:       &ast.Aggregate{Op: ast.AggSequence},
		IsEntry:    true,
	}
}

func TestLinkVertexEntryBindsAttributesAndPosition(t *testing.T) {
	fn := vertexEntry()
	rec := codegen.FunctionRecord{Fn: fn, BodyText: "  return pos;\n", IsEntry: true}

	opts := Options{Target: codegen.GLSLES100, Stage: codegen.StageVertex, Prefix: codegen.DefaultPrefixTable(), Entry: "vert_main"}

	res, err := Link([]codegen.FunctionRecord{rec}, nil, nil, nil, opts)
	if err != nil {
		t.Fatalf("Link returned error: %v", err)
	}

	shader := res.Shader

	if !strings.Contains(shader, "vec4 xlat_main(in vec4 pos, out vec4 color)") {
		t.Fatalf("expected renamed entry signature, got:\n%s", shader)
	}

	if !strings.Contains(shader, "xlt_retval = xlat_main(xlat_attrib_POSITION, xlt_color)") {
		t.Fatalf("expected call reading the POSITION attribute and writing through a temp, got:\n%s", shader)
	}

	if !strings.Contains(shader, "gl_Position = xlt_retval;") {
		t.Fatalf("expected the POSITION-semantic return value bound to gl_Position, got:\n%s", shader)
	}

	if !strings.Contains(shader, "xlv_COLOR = xlt_color;") {
		t.Fatalf("expected the COLOR out-param bound to its varying global, got:\n%s", shader)
	}
}

func TestLinkMutableUniformLiftedToLocalCopy(t *testing.T) {
	fn := vertexEntry()
	rec := codegen.FunctionRecord{Fn: fn, BodyText: "  return pos;\n", IsEntry: true}

	mvp := &ast.Variable{Name: "matrix_mvp", Type: ast.Matrix(ast.Float, 4, 4).WithQualifier(ast.QualUniform), Mutable: true}
	tint := &ast.Variable{Name: "tint", Type: vec4().WithQualifier(ast.QualUniform)}

	opts := Options{Target: codegen.GLSL120, Stage: codegen.StageVertex, Prefix: codegen.DefaultPrefixTable(), Entry: "vert_main"}

	res, err := Link([]codegen.FunctionRecord{rec}, nil, nil, []*ast.Variable{mvp, tint}, opts)
	if err != nil {
		t.Fatalf("Link returned error: %v", err)
	}

	shader := res.Shader

	if !strings.Contains(shader, "uniform mat4 xlt_matrix_mvp;") {
		t.Fatalf("expected the real interface uniform under its temp-prefixed name, got:\n%s", shader)
	}

	if !strings.Contains(shader, "mat4 matrix_mvp;") {
		t.Fatalf("expected a plain writable global shadowing the mutable uniform, got:\n%s", shader)
	}

	if !strings.Contains(shader, "uniform vec4 tint;") {
		t.Fatalf("expected the non-mutable uniform declared directly, got:\n%s", shader)
	}

	if !strings.Contains(shader, "matrix_mvp = xlt_matrix_mvp;") {
		t.Fatalf("expected main() to seed the writable global from the interface uniform, got:\n%s", shader)
	}

	if len(res.Uniforms) != 2 || res.Uniforms[0].Name != "matrix_mvp" {
		t.Fatalf("expected reflection rows to use the original uniform names, got: %v", res.Uniforms)
	}
}

func fragmentColorEntry() *ast.Function {
	color := &ast.Variable{Name: "outColor", Type: vec4(), ParamQualifier: ast.QualOut, Semantic: ast.Semantic{Name: "COLOR", Index: 0}}

	return &ast.Function{
		Name:       "frag_main",
		ReturnType: ast.Scalar(ast.Void),
		Params:     []*ast.Variable{color},
		Body:       &ast.Aggregate{Op: ast.AggSequence},
		IsEntry:    true,
	}
}

func TestLinkFragmentColorOutputLegacyVsModern(t *testing.T) {
	fn := fragmentColorEntry()
	rec := codegen.FunctionRecord{Fn: fn, BodyText: "  outColor = vec4(1.0);\n", IsEntry: true}

	legacyOpts := Options{Target: codegen.GLSLES100, Stage: codegen.StageFragment, Prefix: codegen.DefaultPrefixTable(), Entry: "frag_main"}

	legacy, err := Link([]codegen.FunctionRecord{rec}, nil, nil, nil, legacyOpts)
	if err != nil {
		t.Fatalf("Link returned error: %v", err)
	}

	if !strings.Contains(legacy.Shader, "gl_FragData[0] = xlt_outColor;") {
		t.Fatalf("expected legacy output bound through gl_FragData, got:\n%s", legacy.Shader)
	}

	modernOpts := Options{Target: codegen.GLSLES300, Stage: codegen.StageFragment, Prefix: codegen.DefaultPrefixTable(), Entry: "frag_main"}

	modern, err := Link([]codegen.FunctionRecord{rec}, nil, nil, nil, modernOpts)
	if err != nil {
		t.Fatalf("Link returned error: %v", err)
	}

	if !strings.Contains(modern.Shader, "out vec4 xlv_FragColor0;") {
		t.Fatalf("expected a declared out global on a modern target, got:\n%s", modern.Shader)
	}

	if !strings.Contains(modern.Shader, "xlv_FragColor0 = xlt_outColor;") {
		t.Fatalf("expected the out param bound to the declared out global, got:\n%s", modern.Shader)
	}
}

func TestLinkEntryNotFound(t *testing.T) {
	_, err := Link(nil, nil, nil, nil, Options{Entry: "missing"})
	if err == nil {
		t.Fatal("expected an error when the entry function is absent")
	}
}
