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
package symtab

import (
	"testing"

	"github.com/komastudios/hlsl2glsl/pkg/ast"
	"github.com/komastudios/hlsl2glsl/pkg/loc"
)

func TestBuiltinLevelSharedAcrossCopies(t *testing.T) {
	builtin := NewBuiltinTable()

	mul := &ast.BuiltIn{
		Name:       "mul",
		Signatures: []ast.Signature{{Params: []ast.Type{ast.Matrix(ast.Float, 4, 4), ast.Vector(ast.Float, 4)}}},
	}
	if err := builtin.InsertBuiltin(mul); err != nil {
		t.Fatalf("seed builtin: %v", err)
	}

	a := CopyFrom(builtin)
	b := CopyFrom(builtin)

	if sym := a.Find("mul"); sym == nil {
		t.Fatal("table a cannot see shared builtin")
	}
	if sym := b.Find("mul"); sym == nil {
		t.Fatal("table b cannot see shared builtin")
	}

	// Per-compile mutation on a must not leak into b.
	v := &ast.Variable{Name: "vertex", Type: ast.Vector(ast.Float, 4)}
	if err := a.Insert(v); err != nil {
		t.Fatalf("insert into a: %v", err)
	}
	if sym := b.Find("vertex"); sym != nil {
		t.Fatal("mutation on a leaked into b")
	}
}

func TestInsertRejectsDuplicateAtCurrentLevel(t *testing.T) {
	builtin := NewBuiltinTable()
	table := CopyFrom(builtin)

	v1 := &ast.Variable{Name: "x", Type: ast.Scalar(ast.Float), Loc: loc.NoFile(1)}
	v2 := &ast.Variable{Name: "x", Type: ast.Scalar(ast.Int), Loc: loc.NoFile(2)}

	if err := table.Insert(v1); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := table.Insert(v2); err == nil {
		t.Fatal("expected duplicate insert to fail")
	}
}

func TestShadowingAllowedAtNestedScope(t *testing.T) {
	builtin := NewBuiltinTable()
	table := CopyFrom(builtin)

	outer := &ast.Variable{Name: "x", Type: ast.Scalar(ast.Float)}
	if err := table.Insert(outer); err != nil {
		t.Fatalf("insert outer: %v", err)
	}

	table.Push()
	inner := &ast.Variable{Name: "x", Type: ast.Scalar(ast.Int)}
	if err := table.Insert(inner); err != nil {
		t.Fatalf("shadowing at nested scope should succeed: %v", err)
	}

	if found := table.Find("x"); found != ast.Symbol(inner) {
		t.Fatal("expected inner shadow to be found first")
	}

	table.Pop()
	if found := table.Find("x"); found != ast.Symbol(outer) {
		t.Fatal("expected outer binding after pop")
	}
}

func TestOverloadResolutionBySignature(t *testing.T) {
	builtin := NewBuiltinTable()
	table := CopyFrom(builtin)

	f1 := &ast.Function{Name: "f", Params: []*ast.Variable{{Type: ast.Scalar(ast.Float)}}, ReturnType: ast.Scalar(ast.Float)}
	f2 := &ast.Function{Name: "f", Params: []*ast.Variable{{Type: ast.Scalar(ast.Int)}}, ReturnType: ast.Scalar(ast.Int)}

	if err := table.Insert(f1); err != nil {
		t.Fatalf("insert f1: %v", err)
	}
	if err := table.Insert(f2); err != nil {
		t.Fatalf("insert f2 (distinct signature): %v", err)
	}

	sym, _, ok := table.FindFunction("f", []ast.Type{ast.Scalar(ast.Int)})
	if !ok {
		t.Fatal("expected to resolve f(int)")
	}
	if sym.(*ast.Function) != f2 {
		t.Fatal("resolved to wrong overload")
	}
}

func TestGlobalVariablesExcludesFunctionLocals(t *testing.T) {
	builtin := NewBuiltinTable()
	table := CopyFrom(builtin)

	tint := &ast.Variable{Name: "tint", Type: ast.Vector(ast.Float, 4).WithQualifier(ast.QualUniform)}
	if err := table.Insert(tint); err != nil {
		t.Fatalf("insert tint: %v", err)
	}

	table.Push()
	local := &ast.Variable{Name: "scratch", Type: ast.Scalar(ast.Float)}
	if err := table.Insert(local); err != nil {
		t.Fatalf("insert local: %v", err)
	}
	table.Pop()

	globals := table.GlobalVariables()
	if len(globals) != 1 || globals[0] != tint {
		t.Fatalf("expected exactly [tint], got: %v", globals)
	}
}

func TestPopBuiltinLevelPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()

	NewBuiltinTable().Pop()
}
