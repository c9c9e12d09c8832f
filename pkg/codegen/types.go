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
	"fmt"

	"github.com/komastudios/hlsl2glsl/pkg/ast"
)

// GLSLTypeName renders t's GLSL spelling for target; pkg/link uses it to
// render uniform/struct/function declarations outside the per-expression
// codegen walk.
func GLSLTypeName(t ast.Type, target Target) string {
	return glslTypeName(t, target)
}

// glslTypeName renders t's GLSL spelling for target. Legacy (pre-3.00/1.30)
// GLSL has no "uint" keyword, so an unsigned value is emitted as a plain
// int; this only affects declaration text, never arithmetic, since the
// front end already folds uint into the same widening lattice as int.
func glslTypeName(t ast.Type, target Target) string {
	if t.Basic == ast.Struct && t.Struct != nil {
		return t.Struct.Name
	}

	name := basicGLSLName(t.Basic, target)

	switch {
	case t.IsMatrix():
		if t.Rows == t.Cols {
			return fmt.Sprintf("mat%d", t.Rows)
		}

		return fmt.Sprintf("mat%dx%d", t.Cols, t.Rows)
	case t.IsVector():
		return vectorGLSLName(t.Basic, t.Rows)
	default:
		return name
	}
}

func basicGLSLName(b ast.Basic, target Target) string {
	switch b {
	case ast.Void:
		return "void"
	case ast.Bool:
		return "bool"
	case ast.Int:
		return "int"
	case ast.UInt:
		if target == GLSLES300 || target == GLSL140 {
			return "uint"
		}

		return "int"
	case ast.Float:
		return "float"
	case ast.Sampler1D:
		return "sampler1D"
	case ast.Sampler2D:
		return "sampler2D"
	case ast.Sampler3D:
		return "sampler3D"
	case ast.SamplerCube:
		return "samplerCube"
	case ast.Sampler2DShadow:
		return "sampler2DShadow"
	case ast.SamplerRect:
		return "sampler2DRect"
	default:
		return "float"
	}
}

func vectorGLSLName(b ast.Basic, n int) string {
	switch b {
	case ast.Bool:
		return fmt.Sprintf("bvec%d", n)
	case ast.Int:
		return fmt.Sprintf("ivec%d", n)
	case ast.UInt:
		return fmt.Sprintf("uvec%d", n)
	default:
		return fmt.Sprintf("vec%d", n)
	}
}

// mangleType renders a compact, name-safe spelling of t used to build a
// deduplicated support-helper identifier (spec §4.6: "<prefix>_<name>_
// <mangled-signature>"). It intentionally ignores qualifier/precision,
// since only the shape of the helper's parameter drives which wrapper body
// is needed.
func mangleType(t ast.Type) string {
	kind := "f"

	switch t.Basic {
	case ast.Bool:
		kind = "b"
	case ast.Int, ast.UInt:
		kind = "i"
	}

	switch {
	case t.IsMatrix():
		return fmt.Sprintf("m%s%dx%d", kind, t.Rows, t.Cols)
	case t.IsVector():
		return fmt.Sprintf("v%s%d", kind, t.Rows)
	default:
		return kind
	}
}
