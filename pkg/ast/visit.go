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
package ast

// Walk traverses the IT rooted at n in depth-first, pre-order fashion. If
// visit returns false for a node, that node's children are skipped (but
// traversal continues with subsequent siblings). Both AST transform passes
// (pkg/transform) walk function bodies through it, and codegen (pkg/codegen)
// uses it to collect each function's calls and struct references; codegen's
// text emitters recurse over the node variants themselves.
func Walk(n Node, visit func(Node) bool) {
	if n == nil || !visit(n) {
		return
	}

	switch t := n.(type) {
	case *Ident, *Constant:
		// leaves
	case *Unary:
		Walk(t.Operand, visit)
	case *Binary:
		Walk(t.LHS, visit)
		Walk(t.RHS, visit)
	case *Selection:
		Walk(t.Cond, visit)
		Walk(t.Then, visit)
		Walk(t.Else, visit)
	case *Loop:
		Walk(t.Init, visit)
		Walk(t.Cond, visit)
		Walk(t.Post, visit)
		Walk(t.Body, visit)
	case *Branch:
		Walk(t.Expr, visit)
	case *Aggregate:
		for _, c := range t.Children {
			Walk(c, visit)
		}
	}
}

// Functions collects every Aggregate{Op: AggFunction} node reachable from
// root's children (root is conventionally the top-level Sequence produced by
// the parser for a whole shader).
func Functions(root Node) []*Aggregate {
	var fns []*Aggregate

	Walk(root, func(n Node) bool {
		if agg, ok := n.(*Aggregate); ok && agg.Op == AggFunction {
			fns = append(fns, agg)
		}

		return true
	})

	return fns
}

// CallsOf collects every FunctionCall Aggregate reachable from root whose
// callee name is in names (or all calls, if names is empty).
func CallsOf(root Node, names map[string]bool) []*Aggregate {
	var calls []*Aggregate

	Walk(root, func(n Node) bool {
		if agg, ok := n.(*Aggregate); ok && agg.Op == AggFunctionCall {
			if len(names) == 0 || names[agg.Name] {
				calls = append(calls, agg)
			}
		}

		return true
	})

	return calls
}
