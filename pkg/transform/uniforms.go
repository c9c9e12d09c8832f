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
package transform

import "github.com/komastudios/hlsl2glsl/pkg/ast"

// PropagateMutableUniforms marks every uniform-qualified variable that is
// ever written to — directly assigned, incremented, or passed into an
// "out"/"inout" parameter — so codegen can lift it to a local copy at the
// top of the entry function rather than emitting an illegal write to a
// GLSL uniform (spec §4.6). Like PropagateSamplerTypes, this is a
// fixed-point pass that repeats until a pass marks nothing new. Only writes
// that name the uniform itself are detected; a callee's parameter that
// receives a uniform is not marked and its uses are not followed further.
func PropagateMutableUniforms(fns []*ast.Function) {
	funcsByName := map[string][]*ast.Function{}
	for _, fn := range fns {
		funcsByName[fn.Name] = append(funcsByName[fn.Name], fn)
	}

	changed := true
	for changed {
		changed = false

		for _, fn := range fns {
			ast.Walk(fn.Body, func(n ast.Node) bool {
				switch node := n.(type) {
				case *ast.Unary:
					switch node.Op {
					case ast.UnaryPreInc, ast.UnaryPreDec, ast.UnaryPostInc, ast.UnaryPostDec:
						if markWritten(node.Operand) {
							changed = true
						}
					}
				case *ast.Binary:
					if node.Op == ast.BinAssign {
						if markWritten(node.LHS) {
							changed = true
						}
					}
				case *ast.Aggregate:
					if node.Op == ast.AggFunctionCall {
						for _, callee := range funcsByName[node.Name] {
							if len(callee.Params) != len(node.Children) {
								continue
							}

							for i, arg := range node.Children {
								p := callee.Params[i]
								if (p.ParamQualifier == ast.QualOut || p.ParamQualifier == ast.QualInOut) && markWritten(arg) {
									changed = true
								}
							}
						}
					}
				}

				return true
			})
		}
	}
}

// markWritten marks the uniform Variable behind n as mutable, if n names
// one directly, returning whether this call is what first marked it (so
// the caller can drive its changed/fixed-point flag).
func markWritten(n ast.Node) bool {
	v := identVar(n)
	if v == nil {
		return false
	}

	if v.Type.Qualifier != ast.QualUniform || v.Mutable {
		return false
	}

	v.Mutable = true

	return true
}
