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
package support

import "github.com/komastudios/hlsl2glsl/pkg/codegen"

// tables assembles the generated per-target maps (zz_tables_*.go) into the
// lookup Lookup reads from. It is hand-written rather than generated since
// it is pure wiring, not data.
var tables = map[codegen.Target]map[string]Template{
	codegen.GLSLES100: esHundredHelpers,
	codegen.GLSL110:   glsl110Helpers,
	codegen.GLSL120:   glsl120Helpers,
	codegen.GLSL140:   glsl140Helpers,
	codegen.GLSLES300: glslES300Helpers,
}
