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

// Package hlslglsl is the public entry point: a handle-based API mirroring
// the teacher's pattern of tracking session state behind an opaque integer
// key rather than handing callers a pointer, so a future C ABI wrapper has
// something stable to pass across the boundary (spec §6).
package hlslglsl

import (
	"github.com/komastudios/hlsl2glsl/pkg/codegen"
)

// Handle identifies one compiler session. The zero Handle is never issued
// by ConstructCompiler/ConstructCompilerUserPrefix, so it doubles as an
// explicit "no handle" sentinel for callers that want one.
type Handle uint32

// Stage identifies which pipeline a session compiles for. Its numeric
// values line up with both codegen.Stage and builtins.Stage, so converting
// between the three is a plain cast rather than a lookup table.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	if s == Fragment {
		return "fragment"
	}

	return "vertex"
}

// Target re-exports codegen's GLSL dialect enum; callers never need to
// import pkg/codegen directly.
type Target = codegen.Target

// Recognized target versions (spec §6).
const (
	GLSLES100 = codegen.GLSLES100
	GLSL110   = codegen.GLSL110
	GLSL120   = codegen.GLSL120
	GLSL140   = codegen.GLSL140
	GLSLES300 = codegen.GLSLES300
)

// PrefixTable re-exports codegen's configurable identifier-prefix family
// (spec §6: "user prefix table").
type PrefixTable = codegen.PrefixTable

// DefaultPrefixTable returns the stock xll/xlat_/xlv_/xlt_/xlat_attrib_
// prefixes.
func DefaultPrefixTable() PrefixTable { return codegen.DefaultPrefixTable() }

// EmptyPrefixTable returns the minimal l_/at_/v_/t_/at_attrib_ prefixes.
func EmptyPrefixTable() PrefixTable { return codegen.EmptyPrefixTable() }

// AttribSemantic names a vertex-input semantic (e.g. "POSITION",
// "TEXCOORD0") for SetUserAttributeNames.
type AttribSemantic string

// Options is the translation options bitset (spec §6). Unknown bits are
// ignored by Parse/Translate.
type Options uint32

// TranslateOpIntermediate requests the intermediate-tree dump be appended
// to the session's info log.
const TranslateOpIntermediate Options = 1 << 0

func (o Options) has(bit Options) bool { return o&bit != 0 }

// UniformInfo is one row of GetUniformInfo's reflection table (spec §3,
// §6).
type UniformInfo struct {
	Name         string
	Semantic     string
	TypeCode     int
	ArraySize    int
	RegisterSpec string
}
