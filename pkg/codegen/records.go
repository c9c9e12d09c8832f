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

import "github.com/komastudios/hlsl2glsl/pkg/ast"

// FunctionRecord is codegen's per-function output (spec §3: "GLSL function
// record"). Fn retains the original *ast.Function rather than duplicating
// its name/return-type/parameter fields, since the linker needs the real
// Variable list (qualifiers, semantics) to rewrite the entry function's
// signature — codegen only adds what it alone can compute.
type FunctionRecord struct {
	Fn       *ast.Function
	BodyText string
	// CalledFunctions names every user function this one calls, in
	// first-call order, for the linker's reachability sweep (struct/helper
	// emission is restricted to what the entry function can reach).
	CalledFunctions []string
	// SupportHelpers names every support-library helper id this function's
	// body lowered an intrinsic through, in first-use order.
	SupportHelpers []string
	// Structs names every struct type this function's signature or body
	// references, for the linker's "emit only if reachable" rule.
	Structs []string
	// NeedsShadowExtension is set when this function lowered a shadow
	// sampling intrinsic against a target requiring the GL_EXT_shadow_
	// samplers extension preamble.
	NeedsShadowExtension bool
	IsEntry              bool
}

// StructRecord describes one user struct declaration surviving to link time
// (spec §3).
type StructRecord struct {
	Name   string
	Fields []ast.Field
}

// UniformRecord is one row of the reflection table returned by
// GetUniformInfo (spec §3, §6).
type UniformRecord struct {
	Name         string
	Semantic     string
	TypeCode     int
	ArraySize    int
	RegisterSpec string
}

// NewUniformRecord builds the reflection row for a uniform-qualified
// variable surviving the transform passes.
func NewUniformRecord(v *ast.Variable) UniformRecord {
	return UniformRecord{
		Name:         v.Name,
		Semantic:     v.Semantic.String(),
		TypeCode:     int(v.Type.Basic),
		ArraySize:    v.Type.ArraySize,
		RegisterSpec: v.RegisterSpec,
	}
}
