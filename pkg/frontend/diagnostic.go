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
package frontend

import (
	"fmt"
	"strings"

	"github.com/komastudios/hlsl2glsl/pkg/loc"
)

// Kind classifies a Diagnostic along the taxonomy of spec §7.
type Kind int

// Diagnostic kinds.
const (
	Lexical Kind = iota
	Reserved
	Syntax
	Semantic
	Link
	Internal
)

// Diagnostic is one recorded error. Its String() rendering is bit-exact with
// the external contract (spec §4.4):
//
//	<file>(<line>): ERROR: '<lexeme>' : <message>
//
// with a trailing space before the newline, and the file portion reduced to
// "(<line>)" when Pos carries no file name.
type Diagnostic struct {
	Pos     loc.Position
	Lexeme  string
	Message string
	Kind    Kind
	// raw, when set, renders Message verbatim with no location/ERROR
	// wrapping — used by SynthesizeFailure's fallback message, which the
	// contract defines as a bare string rather than a located diagnostic,
	// and by the informational entries AddRaw appends.
	raw bool
}

func (d Diagnostic) String() string {
	if d.raw {
		return d.Message + "\n"
	}

	return fmt.Sprintf("%s: ERROR: '%s' : %s \n", d.Pos.String(), d.Lexeme, d.Message)
}

// Log is an ordered collection of diagnostics accumulated across parse,
// transform, codegen and link — the session's info log (spec §7:
// "accumulated into the session's info log").
type Log struct {
	entries []Diagnostic
}

// Add appends a diagnostic.
func (l *Log) Add(d Diagnostic) {
	l.entries = append(l.entries, d)
}

// Errorf is a convenience wrapper constructing and adding a Diagnostic.
func (l *Log) Errorf(pos loc.Position, lexeme string, kind Kind, format string, args ...any) {
	l.Add(Diagnostic{Pos: pos, Lexeme: lexeme, Message: fmt.Sprintf(format, args...), Kind: kind})
}

// Empty reports whether no diagnostics have been recorded.
func (l *Log) Empty() bool {
	return len(l.entries) == 0
}

// Count returns the number of recorded diagnostics.
func (l *Log) Count() int {
	return len(l.entries)
}

// Entries returns the recorded diagnostics in recording order.
func (l *Log) Entries() []Diagnostic {
	return l.entries
}

// String renders the full info log. If asked to report a failure but
// nothing was recorded, the caller (Parse/Translate) synthesizes the
// "<N> compilation errors." fallback via SynthesizeFailure — String itself
// only ever renders what was actually recorded.
func (l *Log) String() string {
	var b strings.Builder
	for _, d := range l.entries {
		b.WriteString(d.String())
	}

	return b.String()
}

// AddRaw appends a diagnostic whose String() renders message verbatim, with
// no location/ERROR wrapping — used for informational entries appended to
// the info log that are not compile errors (the TranslateOpIntermediate IT
// dump).
func (l *Log) AddRaw(message string) {
	l.entries = append(l.entries, Diagnostic{Message: message, raw: true})
}

// SynthesizeFailure appends the fallback diagnostic spec §4.4 mandates when
// a caller observed failure but the log is empty: "<N> compilation errors.
// No code generated." N is the tracked error count at the point of failure,
// which by definition is 0 here since nothing was recorded; the original
// contract nonetheless requires a non-empty log on any failure, so this
// covers the case where the error count itself was the only signal.
func (l *Log) SynthesizeFailure(trackedErrorCount int) {
	if !l.Empty() {
		return
	}

	l.entries = append(l.entries, Diagnostic{
		Message: fmt.Sprintf("%d compilation errors.  No code generated.", trackedErrorCount),
		Kind:    Internal,
		raw:     true,
	})
}
