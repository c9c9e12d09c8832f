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

// intrinsicLowering renders one call-site of an HLSL intrinsic into its
// GLSL-target-appropriate expression text (spec §4.6). Most of the seeded
// built-in surface (pkg/builtins) is spelled identically in GLSL — dot,
// normalize, abs, min, max, pow, and so on — and falls through to the
// generic call-rendering path in codegen.go. This table holds only the
// intrinsics whose GLSL spelling differs by name or by target version.
type intrinsicLowering func(g *Generator, call *ast.Aggregate) string

// intrinsicLowerers is filled in init: its entries reach genCall, which
// reads the table, so a static initializer would be an initialization cycle.
var intrinsicLowerers map[string]intrinsicLowering

func init() {
	intrinsicLowerers = map[string]intrinsicLowering{
		"mul":          lowerMul,
		"rsqrt":        renameTo("inversesqrt"),
		"frac":         renameTo("fract"),
		"saturate":     lowerSaturate,
		"lerp":         renameTo("mix"),
		"tex1D":        lowerSampling("texture1D", "texture", false),
		"tex2D":        lowerSampling("texture2D", "texture", false),
		"tex2Dproj":    lowerSampling("texture2DProj", "textureProj", false),
		"tex3D":        lowerSampling("texture3D", "texture", false),
		"texCUBE":      lowerSampling("textureCube", "texture", false),
		"shadow2D":     lowerShadow("shadow2D", false),
		"shadow2Dproj": lowerShadow("shadow2Dproj", true),
	}
}

// lowerMul renders HLSL's mul(A,B) as GLSL's "*" operator (spec §4.6): GLSL
// matrix/vector multiplication already matches HLSL's row/column semantics
// closely enough that no helper is needed, only infix rewriting.
func lowerMul(g *Generator, call *ast.Aggregate) string {
	return fmt.Sprintf("(%s * %s)", g.genExpr(call.Children[0]), g.genExpr(call.Children[1]))
}

// renameTo builds a lowering that simply swaps the callee name, used for
// intrinsics GLSL spells identically apart from the identifier itself.
func renameTo(glslName string) intrinsicLowering {
	return func(g *Generator, call *ast.Aggregate) string {
		return fmt.Sprintf("%s(%s)", glslName, g.genArgs(call.Children))
	}
}

// lowerSaturate renders HLSL's saturate(x), which GLSL has no single
// built-in for, as clamp(x, 0.0, 1.0).
func lowerSaturate(g *Generator, call *ast.Aggregate) string {
	return fmt.Sprintf("clamp(%s, 0.0, 1.0)", g.genExpr(call.Children[0]))
}

// lowerSampling builds a lowering for a plain (non-shadow) texture-sampling
// intrinsic: legacy targets use the type-suffixed GLSL 1.x function family,
// modern targets (GLSL ES 3.00, GLSL 1.40+) use the unified texture()/
// textureProj() builtins (spec §4.6).
func lowerSampling(legacyName, modernName string, proj bool) intrinsicLowering {
	_ = proj

	return func(g *Generator, call *ast.Aggregate) string {
		name := legacyName
		if g.target.HasModernSamplingBuiltins() {
			name = modernName
		}

		return fmt.Sprintf("%s(%s)", name, g.genArgs(call.Children))
	}
}

// lowerShadow renders shadow2D/shadow2Dproj. GLSL ES 1.00 lacks shadow
// sampling entirely and needs the GL_EXT_shadow_samplers extension plus a
// wrapper helper around shadow2DEXT/shadow2DProjEXT; every other target has
// a native builtin (desktop GLSL 1.10/1.20's shadow2D/shadow2DProj, or the
// unified texture/textureProj of GLSL 1.40 and GLSL ES 3.00) (spec §4.6,
// end-to-end scenarios 3-4).
func lowerShadow(name string, proj bool) intrinsicLowering {
	return func(g *Generator, call *ast.Aggregate) string {
		args := g.genArgs(call.Children)

		if g.target.HasNativeShadowSampling() {
			if g.target.HasModernSamplingBuiltins() {
				if proj {
					return fmt.Sprintf("textureProj(%s)", args)
				}

				return fmt.Sprintf("texture(%s)", args)
			}

			if proj {
				return fmt.Sprintf("shadow2DProj(%s)", args)
			}

			return fmt.Sprintf("%s(%s)", name, args)
		}

		g.requireShadowExtension()
		helperName := g.useHelper(name)

		return fmt.Sprintf("%s(%s)", helperName, args)
	}
}
