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

// Command support regenerates pkg/support's per-target helper-snippet
// tables (pkg/support/zz_tables_*.go) from the declarative snippet list
// below, the same way internal/gen/signatures regenerates pkg/builtins'
// seeded intrinsic table — small Go data driving a bavard-stamped template
// rather than hand-maintained generated files.
package main

import (
	"fmt"
	"os"

	"github.com/consensys/bavard"
)

const copyrightHolder = "komastudios"

type helperSnippet struct {
	ID   string
	Body string
}

type tableSpec struct {
	VarName string
	Target  string
	Comment string
	Helpers []helperSnippet
}

var matrixTruncationHelpers = []helperSnippet{
	{"constructMat3_mf4x4", "mat3 <prefix>_constructMat3_mf4x4(mat4 m) { return mat3(vec3(m[0]), vec3(m[1]), vec3(m[2])); }"},
	{"constructMat2_mf4x4", "mat2 <prefix>_constructMat2_mf4x4(mat4 m) { return mat2(vec2(m[0]), vec2(m[1])); }"},
	{"constructMat2_mf3x3", "mat2 <prefix>_constructMat2_mf3x3(mat3 m) { return mat2(vec2(m[0]), vec2(m[1])); }"},
}

var shadowHelpers = []helperSnippet{
	{"shadow2D", "vec4 <prefix>_shadow2D(sampler2DShadow s, vec3 uv) { return vec4(shadow2DEXT(s, uv)); }"},
	{"shadow2Dproj", "vec4 <prefix>_shadow2Dproj(sampler2DShadow s, vec4 uv) { return vec4(shadow2DProjEXT(s, uv)); }"},
}

var specs = []tableSpec{
	{
		VarName: "esHundredHelpers",
		Target:  "GLSL ES 1.00",
		Comment: "This dialect lacks both shadow sampling and direct-from-larger-matrix constructors, so it carries the full helper set (spec §4.6, §8 scenario 3).",
		Helpers: append(append([]helperSnippet{}, matrixTruncationHelpers...), shadowHelpers...),
	},
	{
		VarName: "glsl110Helpers",
		Target:  "desktop GLSL 1.10",
		Comment: "Desktop GLSL has always had a native shadow2D/shadow2DProj builtin, so only the matrix-truncation helpers are needed here (spec §4.6).",
		Helpers: matrixTruncationHelpers,
	},
	{
		VarName: "glsl120Helpers",
		Target:  "desktop GLSL 1.20",
		Comment: "Identical to 1.10's (spec §4.6) since neither version gained a direct larger-to-smaller matrix constructor.",
		Helpers: matrixTruncationHelpers,
	},
	{
		VarName: "glsl140Helpers",
		Target:  "GLSL 1.40",
		Comment: "GLSL 1.40 has both a native shadow2D/shadow2DProj builtin and direct matrix-truncation constructors (mat3(m4)), so codegen never needs a support helper under this target (spec §4.6, §8 scenario 2 analogue).",
	},
	{
		VarName: "glslES300Helpers",
		Target:  "GLSL ES 3.00",
		Comment: "Lowers shadow sampling through the unified texture()/textureProj() builtins and supports mat3(m4)-style truncation directly, so no support helper is ever needed (spec §4.6, §8 scenarios 2 and 4).",
	},
}

var targetFiles = map[string]string{
	"esHundredHelpers": "../../../pkg/support/zz_tables_glsl_es_100.go",
	"glsl110Helpers":    "../../../pkg/support/zz_tables_glsl_110.go",
	"glsl120Helpers":    "../../../pkg/support/zz_tables_glsl_120.go",
	"glsl140Helpers":    "../../../pkg/support/zz_tables_glsl_140.go",
	"glslES300Helpers":  "../../../pkg/support/zz_tables_glsl_es_300.go",
}

//go:generate go run main.go
func main() {
	bgen := bavard.NewBatchGenerator(copyrightHolder, 2026, "internal/gen/support")

	for _, spec := range specs {
		file, ok := targetFiles[spec.VarName]
		if !ok {
			panic(fmt.Sprintf("no output file registered for %s", spec.VarName))
		}

		err := bgen.Generate(spec, "support", "templates",
			bavard.Entry{
				File:      file,
				Templates: []string{"table.go.tmpl"},
			},
		)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
