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

import "github.com/komastudios/hlsl2glsl/pkg/builtins"

// Initialize builds the shared built-in tables if they are not already
// built (spec §6). Idempotent; safe to call from multiple goroutines.
func Initialize() bool {
	return builtins.Init()
}

// Shutdown releases the shared built-in tables. Compiling on a handle
// constructed before Shutdown, without an intervening Initialize, is
// undefined (spec §5).
func Shutdown() {
	builtins.Shutdown()
}

// ConstructCompiler creates a per-stage session with the default prefix
// table.
func ConstructCompiler(stage Stage) Handle {
	return newSession(stage, DefaultPrefixTable())
}

// ConstructCompilerUserPrefix creates a per-stage session with a caller-
// supplied prefix table.
func ConstructCompilerUserPrefix(stage Stage, prefix PrefixTable) Handle {
	return newSession(stage, prefix)
}

// DestructCompiler releases the session behind h. Destructing an unknown
// or already-destructed handle is a no-op.
func DestructCompiler(h Handle) {
	sessions.Delete(h)
}

// Parse runs parse + transform + codegen against source on h. It must
// succeed before Translate can be called on the same handle.
func Parse(h Handle, source string, target Target, opts Options) bool {
	s, ok := lookup(h)
	if !ok {
		return false
	}

	return s.parse(source, target, opts)
}

// Translate runs the linker, binding entry's parameters and return value to
// the stage's attribute/varying/fragment-output globals. Requires a prior
// successful Parse on h.
func Translate(h Handle, entry string, target Target, opts Options) bool {
	s, ok := lookup(h)
	if !ok {
		return false
	}

	return s.translate(entry, target, opts)
}

// GetShader returns the most recent successful Translate's GLSL text, or
// the empty string if none has succeeded yet.
func GetShader(h Handle) string {
	s, ok := lookup(h)
	if !ok {
		return ""
	}

	return s.getShader()
}

// GetInfoLog returns the diagnostics recorded by the most recent Parse or
// Translate call on h.
func GetInfoLog(h Handle) string {
	s, ok := lookup(h)
	if !ok {
		return ""
	}

	return s.infoLog()
}

// GetUniformCount returns the number of rows GetUniformInfo would return.
func GetUniformCount(h Handle) int {
	s, ok := lookup(h)
	if !ok {
		return 0
	}

	return s.uniformCount()
}

// GetUniformInfo returns the reflection row for every uniform surviving to
// the most recent successful Translate.
func GetUniformInfo(h Handle) []UniformInfo {
	s, ok := lookup(h)
	if !ok {
		return nil
	}

	return s.uniformInfoList()
}

// SetUserAttributeNames overrides the vertex-attribute global name bound to
// each semantic in names, replacing whatever a previous call installed.
// Fails, leaving the previous set untouched, on a same-call name collision.
func SetUserAttributeNames(h Handle, names map[AttribSemantic]string) bool {
	s, ok := lookup(h)
	if !ok {
		return false
	}

	return s.setUserAttributeNames(names)
}
