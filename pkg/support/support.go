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

// Package support holds the per-target-version table of GLSL helper
// snippets the linker splices in for support helpers codegen referenced
// (spec §4.8). Keys are support-helper ids (e.g. "constructMat3_mf4x4",
// "shadow2D"); the same id can resolve to a different snippet, or to no
// snippet at all, depending on the target version, which is the one
// legitimate source of textual difference between two compiles of the same
// shader (spec §8).
package support

import (
	"strings"

	"github.com/komastudios/hlsl2glsl/pkg/codegen"
)

// Template is one helper's GLSL source, with "<prefix>" standing in for the
// compile's configured helper prefix (spec §6: "xll" by default).
type Template string

// Render substitutes prefix for every "<prefix>" placeholder in t.
func (t Template) Render(prefix string) string {
	return strings.ReplaceAll(string(t), "<prefix>", prefix)
}

// Lookup returns the snippet for helper id under target, and whether one
// exists at all — a target whose GLSL dialect can express the operation
// natively (e.g. mat3(m4) on GLSL ES 3.00) has no entry, by construction.
func Lookup(target codegen.Target, id string) (Template, bool) {
	table, ok := tables[target]
	if !ok {
		return "", false
	}

	tmpl, ok := table[id]

	return tmpl, ok
}
