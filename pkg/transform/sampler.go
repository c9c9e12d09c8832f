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

// Package transform implements the whole-tree AST rewrite passes that run
// between parsing and codegen: PropagateSamplerTypes resolves HLSL's
// polymorphic "sampler" declarations to a concrete GLSL sampler kind, and
// PropagateMutableUniforms marks uniforms that are written to so codegen can
// lift them to a local copy (spec §4.5/§4.6). Both passes follow the same
// fixed-point shape: seed a workset, repeatedly tighten it from the uses
// found by walking every function body, and stop when a pass over the
// whole program makes no further change.
package transform

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/komastudios/hlsl2glsl/pkg/ast"
	"github.com/komastudios/hlsl2glsl/pkg/frontend"
)

// samplerKindBit maps a sampler Basic to a stable bit position in the
// per-variable candidate-kind bitset (spec §4.5).
var samplerKindBit = map[ast.Basic]uint{
	ast.Sampler1D:       0,
	ast.Sampler2D:       1,
	ast.Sampler3D:       2,
	ast.SamplerCube:     3,
	ast.Sampler2DShadow: 4,
	ast.SamplerRect:     5,
}

var bitSamplerKind = invertSamplerBits()

func invertSamplerBits() map[uint]ast.Basic {
	m := make(map[uint]ast.Basic, len(samplerKindBit))
	for k, v := range samplerKindBit {
		m[v] = k
	}

	return m
}

const samplerKindCount = 6

// intrinsicSamplerArg names the texture-sampling intrinsics whose first
// argument must be a sampler of a specific kind (spec §4.5).
var intrinsicSamplerArg = map[string]ast.Basic{
	"tex1D":        ast.Sampler1D,
	"tex2D":        ast.Sampler2D,
	"tex2Dproj":    ast.Sampler2D,
	"tex3D":        ast.Sampler3D,
	"texCUBE":      ast.SamplerCube,
	"shadow2D":     ast.Sampler2DShadow,
	"shadow2Dproj": ast.Sampler2DShadow,
}

func fullSamplerSet() *bitset.BitSet {
	b := bitset.New(samplerKindCount)
	for i := uint(0); i < samplerKindCount; i++ {
		b.Set(i)
	}

	return b
}

func singletonSet(k ast.Basic) *bitset.BitSet {
	return bitset.New(samplerKindCount).Set(samplerKindBit[k])
}

// isPolySampler reports whether v was declared with the bare "sampler"
// keyword and so still needs its concrete kind resolved.
func isPolySampler(v *ast.Variable) bool {
	return v.Type.Polymorphic && v.Type.Basic.IsSampler()
}

// identVar unwraps n to the *ast.Variable it directly names, if any —
// used to find the variable behind a call argument or an assignment side.
func identVar(n ast.Node) *ast.Variable {
	id, ok := n.(*ast.Ident)
	if !ok {
		return nil
	}

	v, ok := id.Target.(*ast.Variable)
	if !ok {
		return nil
	}

	return v
}

// PropagateSamplerTypes resolves every polymorphic sampler variable
// reachable from fns to a concrete kind. It mutates the underlying
// *ast.Variable.Type in place (every Ident bound to that Variable observes
// the resolved type immediately, since they share the pointer) and records
// a diagnostic for variables whose uses conflict, and defaults any variable
// left wholly unconstrained to Sampler2D (spec §4.5).
func PropagateSamplerTypes(fns []*ast.Function, diags *frontend.Log) {
	candidates := map[*ast.Variable]*bitset.BitSet{}

	registerVar := func(v *ast.Variable) {
		if isPolySampler(v) {
			if _, ok := candidates[v]; !ok {
				candidates[v] = fullSamplerSet()
			}
		}
	}

	for _, fn := range fns {
		for _, p := range fn.Params {
			registerVar(p)
		}

		ast.Walk(fn.Body, func(n ast.Node) bool {
			if v := identVar(n); v != nil {
				registerVar(v)
			}

			return true
		})
	}

	if len(candidates) == 0 {
		return
	}

	// aliasPairs links two variables whenever one's value can flow into the
	// other: plain assignment, or passing a sampler global through a
	// function-call argument into the matching parameter.
	type aliasPair struct{ a, b *ast.Variable }

	var aliases []aliasPair

	addAlias := func(a, b *ast.Variable) {
		if a == nil || b == nil || a == b {
			return
		}

		if _, ok := candidates[a]; !ok {
			return
		}

		if _, ok := candidates[b]; !ok {
			return
		}

		aliases = append(aliases, aliasPair{a, b})
	}

	funcsByName := map[string][]*ast.Function{}
	for _, fn := range fns {
		funcsByName[fn.Name] = append(funcsByName[fn.Name], fn)
	}

	for _, fn := range fns {
		ast.Walk(fn.Body, func(n ast.Node) bool {
			switch node := n.(type) {
			case *ast.Binary:
				if node.Op == ast.BinAssign {
					addAlias(identVar(node.LHS), identVar(node.RHS))
				}
			case *ast.Aggregate:
				if node.Op != ast.AggFunctionCall {
					return true
				}

				if _, isIntrinsic := intrinsicSamplerArg[node.Name]; isIntrinsic {
					return true
				}

				for _, callee := range funcsByName[node.Name] {
					if len(callee.Params) != len(node.Children) {
						continue
					}

					for i, arg := range node.Children {
						addAlias(callee.Params[i], identVar(arg))
					}
				}
			}

			return true
		})
	}

	// Direct constraints from texture-sampling intrinsic call sites.
	for _, fn := range fns {
		ast.Walk(fn.Body, func(n ast.Node) bool {
			agg, ok := n.(*ast.Aggregate)
			if !ok || agg.Op != ast.AggFunctionCall || len(agg.Children) == 0 {
				return true
			}

			expect, ok := intrinsicSamplerArg[agg.Name]
			if !ok {
				return true
			}

			if v := identVar(agg.Children[0]); v != nil {
				if b, tracked := candidates[v]; tracked {
					b.InPlaceIntersection(singletonSet(expect))
				}
			}

			return true
		})
	}

	// Fixed-point alias propagation: an edge tightens both endpoints to
	// their intersection until nothing changes anymore, mirroring the
	// whole-tree rewrite passes' "changed := true; for changed {...}" shape.
	changed := true
	for changed {
		changed = false

		for _, e := range aliases {
			ba, bb := candidates[e.a], candidates[e.b]
			merged := ba.Clone()
			merged.InPlaceIntersection(bb)

			if merged.Count() != ba.Count() {
				candidates[e.a] = merged.Clone()
				changed = true
			}

			if merged.Count() != bb.Count() {
				candidates[e.b] = merged.Clone()
				changed = true
			}
		}
	}

	for _, v := range sortedVars(candidates) {
		b := candidates[v]

		switch b.Count() {
		case 0:
			diags.Errorf(v.Loc, v.Name, frontend.Semantic, "conflicting sampler usage for '%s'", v.Name)
			v.Type.Basic = ast.Sampler2D
			v.Type.Polymorphic = false
		case 1:
			kind, _ := b.NextSet(0)
			v.Type.Basic = bitSamplerKind[kind]
			v.Type.Polymorphic = false
		default:
			// Never constrained to a single kind: default to Sampler2D
			// (spec §4.5).
			v.Type.Basic = ast.Sampler2D
			v.Type.Polymorphic = false
		}
	}
}

// sortedVars returns the keys of m in a deterministic order (by source
// position, then name) so diagnostics don't depend on map iteration order.
func sortedVars(m map[*ast.Variable]*bitset.BitSet) []*ast.Variable {
	vars := make([]*ast.Variable, 0, len(m))
	for v := range m {
		vars = append(vars, v)
	}

	sort.Slice(vars, func(i, j int) bool {
		if vars[i].Loc.Line != vars[j].Loc.Line {
			return vars[i].Loc.Line < vars[j].Loc.Line
		}

		return vars[i].Name < vars[j].Name
	})

	return vars
}
