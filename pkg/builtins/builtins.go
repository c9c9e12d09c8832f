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

// Package builtins seeds the shared, process-wide built-in symbol-table
// level for each compiler stage (spec §4.3). Seeding happens once per
// process and is idempotent; the resulting tables are read-only afterwards
// and may be shared freely across concurrently running compile sessions
// (spec §5).
package builtins

import (
	"fmt"
	"sync"

	"github.com/komastudios/hlsl2glsl/pkg/ast"
	"github.com/komastudios/hlsl2glsl/pkg/loc"
	"github.com/komastudios/hlsl2glsl/pkg/symtab"
)

// Stage identifies which compiler pipeline a shader text is destined for.
type Stage int

// The two stages the ABI supports (spec §6).
const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	if s == Vertex {
		return "vertex"
	}

	return "fragment"
}

var (
	mu       sync.Mutex
	tables   = map[Stage]*symtab.Table{}
	arena    = loc.NewArena() // the process-wide "built-in region" (spec §4.1)
	arenaHot bool
)

// Signatures looks up the synthetic declaration text for a stage, used by
// Init. internal/gen/signatures does not read it: the generator writes
// zz_signatures.go from its own signature list.
func Signatures(stage Stage) string {
	if stage == Vertex {
		return vertexSignatures
	}

	return fragmentSignatures
}

// parseFunc is satisfied by frontend.ParseSignatures; injected via SetParser
// to avoid builtins depending on frontend at compile time ([pkg/frontend]
// depends on nothing in this package, so the indirection exists purely to
// avoid the two packages needing to know about each other's internals, not
// to break an actual import cycle).
type parseFunc func(stage int, text string) ([]*ast.BuiltIn, []error)

var parser parseFunc

// SetParser installs the signature parser. Called once from an init()
// function in pkg/frontend's companion wiring in pkg/hlslglsl before the
// first Init call.
func SetParser(p func(stage int, text string) ([]*ast.BuiltIn, []error)) {
	mu.Lock()
	defer mu.Unlock()

	parser = p
}

// Init builds the shared built-in tables if they have not been built
// already. It returns false only if the parser has not been installed or a
// seed signature failed to parse — an internal-error condition, since the
// seed text is fixed at build time (spec §4.3: "seeding is idempotent and
// must tolerate repeated init calls").
func Init() bool {
	mu.Lock()
	defer mu.Unlock()

	if len(tables) == 2 {
		return true // already seeded; idempotent
	}

	if parser == nil {
		return false
	}

	if !arenaHot {
		arena.Push()
		arenaHot = true
	}

	for _, stage := range []Stage{Vertex, Fragment} {
		table := symtab.NewBuiltinTable()

		builtinSyms, errs := parser(int(stage), Signatures(stage))
		if len(errs) > 0 {
			return false
		}

		for _, b := range builtinSyms {
			if err := table.InsertBuiltin(b); err != nil {
				return false
			}
		}

		tables[stage] = table
	}

	return true
}

// Shutdown releases the shared built-in tables and the built-in region.
// Behavior of subsequent compiles after Shutdown, without a following Init,
// is undefined (spec §5).
func Shutdown() {
	mu.Lock()
	defer mu.Unlock()

	tables = map[Stage]*symtab.Table{}

	if arenaHot {
		arena.PopAll()
		arenaHot = false
	}
}

// TableFor returns the shared built-in table for stage. It panics if Init
// has not successfully run, since any caller reaching this point without a
// successful Init indicates a contract violation in the embedding API, not a
// recoverable compile error.
func TableFor(stage Stage) *symtab.Table {
	mu.Lock()
	defer mu.Unlock()

	t, ok := tables[stage]
	if !ok {
		panic(fmt.Sprintf("builtins: TableFor(%s) called before a successful Init", stage))
	}

	return t
}

// Ready reports whether Init has completed successfully.
func Ready() bool {
	mu.Lock()
	defer mu.Unlock()

	return len(tables) == 2
}
