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
package codegen

import (
	"strings"
	"testing"

	"github.com/komastudios/hlsl2glsl/pkg/ast"
	"github.com/komastudios/hlsl2glsl/pkg/frontend"
	"github.com/komastudios/hlsl2glsl/pkg/loc"
)

func mat4x4() ast.Type  { return ast.Matrix(ast.Float, 4, 4) }
func vec4Type() ast.Type { return ast.Vector(ast.Float, 4) }

func TestGenMulLowersToInfixMultiply(t *testing.T) {
	m := &ast.Variable{Name: "matrix_mvp", Type: mat4x4().WithQualifier(ast.QualUniform)}
	v := &ast.Variable{Name: "vertex", Type: vec4Type(), ParamQualifier: ast.QualIn}

	mID := ast.NewIdent(loc.NoFile(1), "matrix_mvp", m.Type)
	mID.Target = m
	vID := ast.NewIdent(loc.NoFile(1), "vertex", v.Type)
	vID.Target = v

	call := ast.NewAggregate(loc.NoFile(1), ast.AggFunctionCall, "mul", []ast.Node{mID, vID}, vec4Type())
	ret := ast.NewBranch(loc.NoFile(1), ast.BranchReturn, call)
	body := &ast.Aggregate{Op: ast.AggSequence, Children: []ast.Node{ret}}

	fn := &ast.Function{Name: "main", ReturnType: vec4Type(), Body: body, IsEntry: true}

	g := NewGenerator(GLSLES100, StageVertex, DefaultPrefixTable(), &frontend.Log{})
	recs := g.Generate([]*ast.Function{fn})

	if !strings.Contains(recs[0].BodyText, "(matrix_mvp * vertex)") {
		t.Fatalf("expected infix multiply in body, got: %s", recs[0].BodyText)
	}
}

func TestGenTex2DLoweringByTarget(t *testing.T) {
	samp := &ast.Variable{Name: "tex", Type: ast.Scalar(ast.Sampler2D).WithQualifier(ast.QualUniform)}
	uv := &ast.Variable{Name: "uv", Type: ast.Vector(ast.Float, 2)}

	sID := ast.NewIdent(loc.NoFile(1), "tex", samp.Type)
	sID.Target = samp
	uvID := ast.NewIdent(loc.NoFile(1), "uv", uv.Type)
	uvID.Target = uv

	call := ast.NewAggregate(loc.NoFile(1), ast.AggFunctionCall, "tex2D", []ast.Node{sID, uvID}, vec4Type())
	ret := ast.NewBranch(loc.NoFile(1), ast.BranchReturn, call)
	body := &ast.Aggregate{Op: ast.AggSequence, Children: []ast.Node{ret}}
	fn := &ast.Function{Name: "main", ReturnType: vec4Type(), Body: body, IsEntry: true}

	legacy := NewGenerator(GLSLES100, StageFragment, DefaultPrefixTable(), &frontend.Log{})
	legacyRecs := legacy.Generate([]*ast.Function{fn})

	if !strings.Contains(legacyRecs[0].BodyText, "texture2D(tex, uv)") {
		t.Fatalf("expected legacy texture2D call, got: %s", legacyRecs[0].BodyText)
	}

	modern := NewGenerator(GLSLES300, StageFragment, DefaultPrefixTable(), &frontend.Log{})
	modernRecs := modern.Generate([]*ast.Function{fn})

	if !strings.Contains(modernRecs[0].BodyText, "texture(tex, uv)") {
		t.Fatalf("expected modern texture call, got: %s", modernRecs[0].BodyText)
	}
}

func matrixCastFunction() *ast.Function {
	m := &ast.Variable{Name: "matrix_normal", Type: mat4x4().WithQualifier(ast.QualUniform)}
	mID := ast.NewIdent(loc.NoFile(1), "matrix_normal", m.Type)
	mID.Target = m

	mat3Type := ast.Matrix(ast.Float, 3, 3)
	cast := ast.NewAggregate(loc.NoFile(1), ast.AggConstructor, mat3Type.String(), []ast.Node{mID}, mat3Type)
	ret := ast.NewBranch(loc.NoFile(1), ast.BranchReturn, cast)
	body := &ast.Aggregate{Op: ast.AggSequence, Children: []ast.Node{ret}}

	return &ast.Function{Name: "main", ReturnType: mat3Type, Body: body, IsEntry: true}
}

func TestGenMatrixTruncationUsesHelperOnLegacyTarget(t *testing.T) {
	fn := matrixCastFunction()

	g := NewGenerator(GLSLES100, StageVertex, DefaultPrefixTable(), &frontend.Log{})
	recs := g.Generate([]*ast.Function{fn})

	if !strings.Contains(recs[0].BodyText, "xll_constructMat3_mf4x4(matrix_normal)") {
		t.Fatalf("expected helper call in body, got: %s", recs[0].BodyText)
	}

	if len(recs[0].SupportHelpers) != 1 || recs[0].SupportHelpers[0] != "constructMat3_mf4x4" {
		t.Fatalf("expected constructMat3_mf4x4 recorded as a support helper, got: %v", recs[0].SupportHelpers)
	}
}

func TestGenMatrixTruncationUsesNativeConstructorOnModernTarget(t *testing.T) {
	fn := matrixCastFunction()

	g := NewGenerator(GLSLES300, StageVertex, DefaultPrefixTable(), &frontend.Log{})
	recs := g.Generate([]*ast.Function{fn})

	if !strings.Contains(recs[0].BodyText, "mat3(matrix_normal)") {
		t.Fatalf("expected native mat3() constructor, got: %s", recs[0].BodyText)
	}

	if len(recs[0].SupportHelpers) != 0 {
		t.Fatalf("expected no support helpers on a modern target, got: %v", recs[0].SupportHelpers)
	}
}

func TestGenShadow2DRequiresExtensionOnGLSLES100Only(t *testing.T) {
	samp := &ast.Variable{Name: "shadowMap", Type: ast.Scalar(ast.Sampler2DShadow).WithQualifier(ast.QualUniform)}
	sID := ast.NewIdent(loc.NoFile(1), "shadowMap", samp.Type)
	sID.Target = samp

	uv := &ast.Variable{Name: "uv", Type: ast.Vector(ast.Float, 3)}
	uvID := ast.NewIdent(loc.NoFile(1), "uv", uv.Type)
	uvID.Target = uv

	call := ast.NewAggregate(loc.NoFile(1), ast.AggFunctionCall, "shadow2D", []ast.Node{sID, uvID}, vec4Type())
	ret := ast.NewBranch(loc.NoFile(1), ast.BranchReturn, call)
	body := &ast.Aggregate{Op: ast.AggSequence, Children: []ast.Node{ret}}
	fn := &ast.Function{Name: "main", ReturnType: vec4Type(), Body: body, IsEntry: true}

	es100 := NewGenerator(GLSLES100, StageFragment, DefaultPrefixTable(), &frontend.Log{})
	es100Recs := es100.Generate([]*ast.Function{fn})

	if !es100Recs[0].NeedsShadowExtension {
		t.Fatal("expected GLSL ES 1.00 to require the shadow-samplers extension")
	}

	if !strings.Contains(es100Recs[0].BodyText, "xll_shadow2D(shadowMap, uv)") {
		t.Fatalf("expected helper-wrapped shadow call, got: %s", es100Recs[0].BodyText)
	}

	es300 := NewGenerator(GLSLES300, StageFragment, DefaultPrefixTable(), &frontend.Log{})
	es300Recs := es300.Generate([]*ast.Function{fn})

	if es300Recs[0].NeedsShadowExtension {
		t.Fatal("expected GLSL ES 3.00 not to require the shadow-samplers extension")
	}

	if !strings.Contains(es300Recs[0].BodyText, "texture(shadowMap, uv)") {
		t.Fatalf("expected texture() call on GLSL ES 3.00, got: %s", es300Recs[0].BodyText)
	}
}
