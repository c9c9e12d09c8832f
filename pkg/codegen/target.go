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

// Package codegen walks a transformed function list (pkg/transform's output)
// and renders GLSL text per function, collecting the structs, uniforms and
// support helpers the linker needs to assemble the final shader.
package codegen

// Target identifies one of the five GLSL dialects the translator emits.
type Target int

// Recognized target versions (spec §6).
const (
	GLSLES100 Target = iota
	GLSL110
	GLSL120
	GLSL140
	GLSLES300
)

func (t Target) String() string {
	switch t {
	case GLSLES100:
		return "GLSL ES 1.00"
	case GLSL110:
		return "GLSL 1.10"
	case GLSL120:
		return "GLSL 1.20"
	case GLSL140:
		return "GLSL 1.40"
	case GLSLES300:
		return "GLSL ES 3.00"
	default:
		return "unknown target"
	}
}

// IsES reports whether t is one of the OpenGL ES dialects, which carry
// precision qualifiers and lack desktop-only matrix constructor sugar.
func (t Target) IsES() bool {
	return t == GLSLES100 || t == GLSLES300
}

// HasPrecisionQualifiers reports whether declared numeric variables must
// carry highp/mediump/lowp under t (spec §4.6, §8).
func (t Target) HasPrecisionQualifiers() bool {
	return t == GLSLES100 || t == GLSLES300
}

// HasNativeMatrixTruncation reports whether t's GLSL supports constructing a
// smaller matrix directly from a larger one (e.g. mat3(m4)) without a helper
// (spec §4.6: GLSL ES 3.00, GLSL 1.40+).
func (t Target) HasNativeMatrixTruncation() bool {
	return t == GLSLES300 || t == GLSL140
}

// HasModernSamplingBuiltins reports whether t uses the unified texture()/
// textureProj() sampling functions (GLSL 1.30+/ES 3.00) rather than the
// legacy texture2D()/texture2DProj()/textureCube() family.
func (t Target) HasModernSamplingBuiltins() bool {
	return t == GLSLES300 || t == GLSL140
}

// HasNativeShadowSampling reports whether shadow2D/shadow2Dproj lower
// directly to a target builtin (desktop GLSL, and GLSL ES 3.00 via
// texture/textureProj) rather than needing the GL_EXT_shadow_samplers
// wrapper that GLSL ES 1.00 requires.
func (t Target) HasNativeShadowSampling() bool {
	return t != GLSLES100
}

// UsesInOutQualifiers reports whether attribute/varying storage is spelled
// in/out (GLSL ES 3.00, desktop 1.40+) rather than attribute/varying (GLSL
// ES 1.00, desktop <= 1.20) — spec §4.7.
func (t Target) UsesInOutQualifiers() bool {
	return t == GLSLES300 || t == GLSL140
}

// Stage is the shader stage a compiler session targets.
type Stage int

// Recognized stages (spec §6).
const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	if s == StageFragment {
		return "fragment"
	}

	return "vertex"
}

// PrefixTable is the configurable family of identifier prefixes applied to
// every synthesized name, so translated output never collides with
// identifiers the input source declared (spec §6).
type PrefixTable struct {
	Helper  string // default "xll"
	EntryFn string // default "xlat_"
	Varying string // default "xlv_"
	Temp    string // default "xlt_"
	Attrib  string // default "xlat_attrib_"
}

// DefaultPrefixTable is the canonical xll/xlat_/xlv_/xlt_/xlat_attrib_
// family spec §8's end-to-end scenarios are written against.
func DefaultPrefixTable() PrefixTable {
	return PrefixTable{Helper: "xll", EntryFn: "xlat_", Varying: "xlv_", Temp: "xlt_", Attrib: "xlat_attrib_"}
}

// EmptyPrefixTable is the alternate minimal-prefix (l_/at_/v_/t_/at_attrib_)
// configuration the original test oracles also exercise (spec §9 Open Questions, SPEC_FULL
// §8 supplemental scenarios).
func EmptyPrefixTable() PrefixTable {
	return PrefixTable{Helper: "l_", EntryFn: "at_", Varying: "v_", Temp: "t_", Attrib: "at_attrib_"}
}
