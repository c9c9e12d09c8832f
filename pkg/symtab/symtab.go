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

// Package symtab implements the scoped symbol table (spec §4.2): a stack of
// scopes, each mapping an identifier (plus, for functions, a parameter-type
// list) to a symbol-table entry, with a shared built-in bottom scope that
// every per-compile table extends rather than copies wholesale.
package symtab

import (
	"fmt"
	"strings"

	"github.com/komastudios/hlsl2glsl/pkg/ast"
)

// bindingKey distinguishes an overloaded function's signature from a plain
// variable/type/built-in binding sharing the same name, mirroring the
// teacher's (name, arity-class) binding-identifier idiom. sig is a
// serialized parameter-type list rather than ast.Signature itself: a
// Signature holds a slice, which is not comparable and so cannot be part of
// a map key.
type bindingKey struct {
	name string
	sig  string
	fn   bool
}

// signatureKey renders a Signature's parameter types into a comparable
// string key. Type.String() distinguishes basic kind, vector/matrix
// shape, array size and struct identity (by name) — everything overload
// resolution needs to tell two parameter lists apart.
func signatureKey(sig ast.Signature) string {
	var b strings.Builder

	for i, t := range sig.Params {
		if i > 0 {
			b.WriteByte(',')
		}

		b.WriteString(t.String())
	}

	return b.String()
}

// scope is one level of the table: a flat map from binding key to symbol,
// plus the insertion order (determinism for diagnostics and dumps).
type scope struct {
	builtin bool
	order   []bindingKey
	entries map[bindingKey]ast.Symbol
}

func newScope(builtin bool) *scope {
	return &scope{builtin: builtin, entries: make(map[bindingKey]ast.Symbol)}
}

// Table is a stack of scopes. The scope at index 0 is always the shared
// built-in level (copy-on-write by reference: a fresh Table layers new
// scopes on top of a shared builtin scope rather than duplicating its
// entries, spec §4.2).
type Table struct {
	scopes []*scope
}

// NewBuiltinTable constructs the process-wide shared table that
// pkg/builtins seeds once. It starts with exactly one (builtin) scope.
func NewBuiltinTable() *Table {
	return &Table{scopes: []*scope{newScope(true)}}
}

// CopyFrom derives a fresh per-compile table that shares builtin's bottom
// scope by reference and adds one empty global scope on top, ready for
// Push/Insert during a parse. builtin itself is never mutated afterwards by
// the returned table (Insert always targets the table's own top scopes).
func CopyFrom(builtin *Table) *Table {
	scopes := make([]*scope, len(builtin.scopes), len(builtin.scopes)+4)
	copy(scopes, builtin.scopes)

	t := &Table{scopes: scopes}
	t.Push()

	return t
}

// InsertBuiltin adds sym directly to the shared built-in scope (index 0).
// Only the built-ins seeder (pkg/builtins) calls this, during process init;
// per-compile code always uses Insert, which targets the top scope.
func (t *Table) InsertBuiltin(sym ast.Symbol) error {
	base := t.scopes[0]
	key := keyFor(sym)

	if _, exists := base.entries[key]; exists {
		return fmt.Errorf("built-in %q already seeded", sym.SymbolName())
	}

	base.entries[key] = sym
	base.order = append(base.order, key)

	return nil
}

// Push opens a new, empty scope.
func (t *Table) Push() {
	t.scopes = append(t.scopes, newScope(false))
}

// Pop closes the most recently opened scope. Popping the shared built-in
// scope (or an empty table) is an internal-error condition (spec §7, kind
// Internal).
func (t *Table) Pop() {
	if len(t.scopes) <= 1 {
		panic("symtab: Pop would remove the shared built-in level")
	}

	t.scopes = t.scopes[:len(t.scopes)-1]
}

// AtGlobalLevel reports whether exactly one non-builtin scope is open, i.e.
// declarations here are shader-global (spec §4.2: "at_global_level").
func (t *Table) AtGlobalLevel() bool {
	return len(t.scopes) == 2
}

// AtSharedBuiltinLevel reports whether the table has not yet opened any
// scope beyond the shared built-in one.
func (t *Table) AtSharedBuiltinLevel() bool {
	return len(t.scopes) == 1
}

// Depth reports the number of open scopes, including the built-in level.
func (t *Table) Depth() int {
	return len(t.scopes)
}

func keyFor(sym ast.Symbol) bindingKey {
	switch s := sym.(type) {
	case *ast.Function:
		return bindingKey{name: s.Name, sig: signatureKey(s.Signature()), fn: true}
	case *ast.BuiltIn:
		// Built-ins may carry several signatures under one name; they are
		// inserted once per BuiltIn value, keyed on the name alone, and
		// HasArity/best-fit resolution happens at lookup time.
		return bindingKey{name: s.Name}
	default:
		return bindingKey{name: sym.SymbolName()}
	}
}

// Insert adds sym to the current (top) scope. It fails (returns an error)
// when a non-function name already exists at the current level, or a
// function signature collides at the current level — spec §4.2. Built-in
// symbols are never shadowed at the built-in level, but that invariant is
// enforced by never calling Insert against scope 0 after seeding.
func (t *Table) Insert(sym ast.Symbol) error {
	top := t.scopes[len(t.scopes)-1]
	key := keyFor(sym)

	if _, exists := top.entries[key]; exists {
		return fmt.Errorf("symbol %q already declared in this scope", sym.SymbolName())
	}

	top.entries[key] = sym
	top.order = append(top.order, key)

	return nil
}

// Find searches the scope stack top-down for a plain (non-function) symbol
// named name.
func (t *Table) Find(name string) ast.Symbol {
	key := bindingKey{name: name}
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].entries[key]; ok {
			return sym
		}
	}

	return nil
}

// FindFunction searches for a function or built-in named name whose
// signature accepts the given argument types, preferring the innermost
// scope. Built-ins are matched by arity (spec: "select the best fit
// signature"); user functions require an exact parameter-type match.
func (t *Table) FindFunction(name string, args []ast.Type) (ast.Symbol, ast.Signature, bool) {
	want := ast.Signature{Params: args}
	wantKey := bindingKey{name: name, sig: signatureKey(want), fn: true}

	for i := len(t.scopes) - 1; i >= 0; i-- {
		if fn, ok := t.scopes[i].entries[wantKey]; ok {
			return fn, want, true
		}
	}
	// Fall through to a plain lookup for built-ins, which are keyed on
	// name alone and validated by arity rather than exact signature.
	if sym := t.Find(name); sym != nil {
		if b, ok := sym.(*ast.BuiltIn); ok && b.HasArity(len(args)) {
			return b, ast.Signature{Params: args}, true
		}
	}

	return nil, ast.Signature{}, false
}

// Names returns every name declared across every open scope, innermost
// first, for diagnostics and debug dumps. It never mutates the table.
func (t *Table) Names() []string {
	var names []string

	for i := len(t.scopes) - 1; i >= 0; i-- {
		for _, k := range t.scopes[i].order {
			names = append(names, k.name)
		}
	}

	return names
}

// GlobalVariables returns every variable declared at shader-global scope
// (index 1, just above the shared built-in level), in declaration order —
// the set codegen/link draws uniforms from, since every global the parser
// sees survives exactly one non-builtin, non-function-body scope.
func (t *Table) GlobalVariables() []*ast.Variable {
	if len(t.scopes) < 2 {
		return nil
	}

	var vars []*ast.Variable

	global := t.scopes[1]
	for _, k := range global.order {
		if v, ok := global.entries[k].(*ast.Variable); ok {
			vars = append(vars, v)
		}
	}

	return vars
}

// Functions returns every user-defined function declared across every
// non-builtin scope, in declaration order. Transform passes and codegen
// walk this list rather than the parsed declaration tree directly, since
// *ast.Function (not the parser's placeholder AggFunction node) is where
// Params, Body and ReturnType actually live.
func (t *Table) Functions() []*ast.Function {
	var fns []*ast.Function

	for i := 1; i < len(t.scopes); i++ {
		for _, k := range t.scopes[i].order {
			if fn, ok := t.scopes[i].entries[k].(*ast.Function); ok && fn.Body != nil {
				fns = append(fns, fn)
			}
		}
	}

	return fns
}
