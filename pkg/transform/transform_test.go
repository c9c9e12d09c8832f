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
package transform

import (
	"testing"

	"github.com/komastudios/hlsl2glsl/pkg/ast"
	"github.com/komastudios/hlsl2glsl/pkg/frontend"
	"github.com/komastudios/hlsl2glsl/pkg/loc"
)

func polySampler() ast.Type {
	t := ast.Scalar(ast.Sampler2D)
	t.Polymorphic = true

	return t
}

func TestPropagateSamplerTypesResolvesFromIntrinsic(t *testing.T) {
	s := &ast.Variable{Name: "tex", Type: polySampler().WithQualifier(ast.QualUniform)}
	uv := &ast.Variable{Name: "uv", Type: ast.Vector(ast.Float, 3)}

	sampID := ast.NewIdent(loc.NoFile(1), "tex", s.Type)
	sampID.Target = s
	uvID := ast.NewIdent(loc.NoFile(1), "uv", uv.Type)
	uvID.Target = uv

	call := ast.NewAggregate(loc.NoFile(1), ast.AggFunctionCall, "tex3D", []ast.Node{sampID, uvID}, ast.Vector(ast.Float, 4))
	body := ast.NewAggregate(loc.NoFile(1), ast.AggSequence, "", []ast.Node{call}, ast.Scalar(ast.Void))

	fn := &ast.Function{Name: "main", ReturnType: ast.Vector(ast.Float, 4), Body: body}

	diags := &frontend.Log{}
	PropagateSamplerTypes([]*ast.Function{fn}, diags)

	if diags.Count() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diags.String())
	}

	if s.Type.Basic != ast.Sampler3D {
		t.Fatalf("expected tex to resolve to sampler3D, got %s", s.Type.Basic)
	}

	if s.Type.Polymorphic {
		t.Fatal("expected Polymorphic to be cleared once resolved")
	}
}

func TestPropagateSamplerTypesConflictDiagnostic(t *testing.T) {
	s := &ast.Variable{Name: "tex", Loc: loc.NoFile(5), Type: polySampler().WithQualifier(ast.QualUniform)}

	id1 := ast.NewIdent(loc.NoFile(5), "tex", s.Type)
	id1.Target = s
	id2 := ast.NewIdent(loc.NoFile(6), "tex", s.Type)
	id2.Target = s

	uv2 := ast.NewConstant(loc.NoFile(5), ast.Vector(ast.Float, 2), ast.ConstValue{})
	uv3 := ast.NewConstant(loc.NoFile(6), ast.Vector(ast.Float, 3), ast.ConstValue{})

	call2D := ast.NewAggregate(loc.NoFile(5), ast.AggFunctionCall, "tex2D", []ast.Node{id1, uv2}, ast.Vector(ast.Float, 4))
	call3D := ast.NewAggregate(loc.NoFile(6), ast.AggFunctionCall, "tex3D", []ast.Node{id2, uv3}, ast.Vector(ast.Float, 4))

	body := ast.NewAggregate(loc.NoFile(5), ast.AggSequence, "", []ast.Node{call2D, call3D}, ast.Scalar(ast.Void))
	fn := &ast.Function{Name: "main", Body: body}

	diags := &frontend.Log{}
	PropagateSamplerTypes([]*ast.Function{fn}, diags)

	if diags.Count() != 1 {
		t.Fatalf("expected exactly one conflict diagnostic, got %v", diags.Entries())
	}
}

func TestPropagateSamplerTypesDefaultsUnconstrained(t *testing.T) {
	s := &ast.Variable{Name: "tex", Type: polySampler().WithQualifier(ast.QualUniform)}
	id := ast.NewIdent(loc.NoFile(1), "tex", s.Type)
	id.Target = s

	body := ast.NewAggregate(loc.NoFile(1), ast.AggSequence, "", []ast.Node{id}, ast.Scalar(ast.Void))
	fn := &ast.Function{Name: "main", Body: body}

	diags := &frontend.Log{}
	PropagateSamplerTypes([]*ast.Function{fn}, diags)

	if diags.Count() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diags.String())
	}

	if s.Type.Basic != ast.Sampler2D || s.Type.Polymorphic {
		t.Fatalf("expected unconstrained sampler to default to resolved sampler2D, got %+v", s.Type)
	}
}

func TestPropagateMutableUniformsDirectAssign(t *testing.T) {
	u := &ast.Variable{Name: "brightness", Type: ast.Scalar(ast.Float).WithQualifier(ast.QualUniform)}
	id := ast.NewIdent(loc.NoFile(1), "brightness", u.Type)
	id.Target = u

	one := ast.NewConstant(loc.NoFile(1), ast.Scalar(ast.Float), ast.ConstValue{Float: 1})
	assign := ast.NewBinary(loc.NoFile(1), ast.BinAssign, id, one, u.Type)

	body := ast.NewAggregate(loc.NoFile(1), ast.AggSequence, "", []ast.Node{assign}, ast.Scalar(ast.Void))
	fn := &ast.Function{Name: "main", Body: body}

	PropagateMutableUniforms([]*ast.Function{fn})

	if !u.Mutable {
		t.Fatal("expected directly assigned uniform to be marked mutable")
	}
}

func TestPropagateMutableUniformsThroughOutParam(t *testing.T) {
	u := &ast.Variable{Name: "accum", Type: ast.Scalar(ast.Float).WithQualifier(ast.QualUniform)}
	uID := ast.NewIdent(loc.NoFile(1), "accum", u.Type)
	uID.Target = u

	param := &ast.Variable{Name: "o", Type: ast.Scalar(ast.Float), ParamQualifier: ast.QualOut}
	paramID := ast.NewIdent(loc.NoFile(2), "o", param.Type)

	one := ast.NewConstant(loc.NoFile(2), ast.Scalar(ast.Float), ast.ConstValue{Float: 1})
	innerAssign := ast.NewBinary(loc.NoFile(2), ast.BinAssign, paramID, one, param.Type)
	helperBody := ast.NewAggregate(loc.NoFile(2), ast.AggSequence, "", []ast.Node{innerAssign}, ast.Scalar(ast.Void))
	helper := &ast.Function{Name: "bump", Params: []*ast.Variable{param}, Body: helperBody}

	call := ast.NewAggregate(loc.NoFile(1), ast.AggFunctionCall, "bump", []ast.Node{uID}, ast.Scalar(ast.Void))
	mainBody := ast.NewAggregate(loc.NoFile(1), ast.AggSequence, "", []ast.Node{call}, ast.Scalar(ast.Void))
	mainFn := &ast.Function{Name: "main", Body: mainBody}

	PropagateMutableUniforms([]*ast.Function{mainFn, helper})

	if !u.Mutable {
		t.Fatal("expected uniform passed to an out-parameter to be marked mutable")
	}
}
