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
package hlslglsl

import (
	"strings"
	"testing"
)

const simpleVertexSource = `
float4x4 matrix_mvp;

float4 main(float4 position : POSITION) : POSITION {
	return mul(matrix_mvp, position);
}
`

func TestParseTranslateVertexEndToEnd(t *testing.T) {
	if !Initialize() {
		t.Fatal("Initialize failed")
	}
	defer Shutdown()

	h := ConstructCompiler(Vertex)
	defer DestructCompiler(h)

	if !Parse(h, simpleVertexSource, GLSLES100, 0) {
		t.Fatalf("Parse failed: %s", GetInfoLog(h))
	}

	if !Translate(h, "main", GLSLES100, 0) {
		t.Fatalf("Translate failed: %s", GetInfoLog(h))
	}

	shader := GetShader(h)

	if !strings.Contains(shader, "uniform highp mat4 matrix_mvp;") {
		t.Fatalf("expected the non-mutable uniform declared directly, got:\n%s", shader)
	}

	if !strings.Contains(shader, "gl_Position =") {
		t.Fatalf("expected the POSITION return value bound to gl_Position, got:\n%s", shader)
	}

	if GetUniformCount(h) != 1 {
		t.Fatalf("expected exactly one reflected uniform, got %d", GetUniformCount(h))
	}

	infos := GetUniformInfo(h)
	if len(infos) != 1 || infos[0].Name != "matrix_mvp" {
		t.Fatalf("expected matrix_mvp in reflection, got %v", infos)
	}
}

func TestTranslateBeforeParseFails(t *testing.T) {
	if !Initialize() {
		t.Fatal("Initialize failed")
	}
	defer Shutdown()

	h := ConstructCompiler(Vertex)
	defer DestructCompiler(h)

	if Translate(h, "main", GLSLES100, 0) {
		t.Fatal("expected Translate to fail before a successful Parse")
	}

	if !strings.Contains(GetInfoLog(h), "Shader does not have valid object code.") {
		t.Fatalf("expected the contract-violation message, got: %s", GetInfoLog(h))
	}
}

func TestParseNullSourceSucceedsEmpty(t *testing.T) {
	if !Initialize() {
		t.Fatal("Initialize failed")
	}
	defer Shutdown()

	h := ConstructCompiler(Vertex)
	defer DestructCompiler(h)

	if !Parse(h, "", GLSLES100, 0) {
		t.Fatal("expected an empty source to succeed")
	}

	if GetShader(h) != "" {
		t.Fatalf("expected empty shader output, got: %q", GetShader(h))
	}
}

func TestParseSyntaxErrorFails(t *testing.T) {
	if !Initialize() {
		t.Fatal("Initialize failed")
	}
	defer Shutdown()

	h := ConstructCompiler(Fragment)
	defer DestructCompiler(h)

	if Parse(h, "float4 main( : COLOR { return missingValue; }", GLSLES100, 0) {
		t.Fatal("expected malformed source to fail Parse")
	}

	if GetInfoLog(h) == "" {
		t.Fatal("expected a non-empty info log on failure")
	}
}

func TestSetUserAttributeNamesRejectsCollision(t *testing.T) {
	if !Initialize() {
		t.Fatal("Initialize failed")
	}
	defer Shutdown()

	h := ConstructCompiler(Vertex)
	defer DestructCompiler(h)

	if !SetUserAttributeNames(h, map[AttribSemantic]string{"POSITION": "a_pos"}) {
		t.Fatal("expected the first call to succeed")
	}

	if SetUserAttributeNames(h, map[AttribSemantic]string{"POSITION": "a_shared", "TEXCOORD0": "a_shared"}) {
		t.Fatal("expected a same-call name collision to fail")
	}
}

func TestUnknownHandleFailsGracefully(t *testing.T) {
	if Translate(Handle(999999), "main", GLSLES100, 0) {
		t.Fatal("expected Translate on an unknown handle to fail")
	}

	if GetShader(Handle(999999)) != "" {
		t.Fatal("expected GetShader on an unknown handle to return empty")
	}
}
