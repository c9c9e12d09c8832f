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

// Package loc provides source-location tracking and the pool-arena
// allocator shared by every stage of a compile session.
package loc

import "fmt"

// Position identifies a single point in a source file.  File is nil when the
// running location has no associated name, in which case only Line is
// significant (spec: "null file means unknown file, use line number only").
type Position struct {
	File *string
	Line int
}

// NoFile constructs a position with no file name.
func NoFile(line int) Position {
	return Position{nil, line}
}

// In constructs a position within the named file.
func In(file string, line int) Position {
	return Position{&file, line}
}

// HasFile reports whether this position carries a file name.
func (p Position) HasFile() bool {
	return p.File != nil
}

// String renders "(line)" or "file(line)", matching the prefix used by the
// diagnostic format (frontend.Diagnostic.String appends the rest).
func (p Position) String() string {
	if p.File == nil {
		return fmt.Sprintf("(%d)", p.Line)
	}

	return fmt.Sprintf("%s(%d)", *p.File, p.Line)
}

// Before reports whether p sorts strictly before q within the same file.
// Positions from different files are treated as incomparable and this always
// returns false, since the monotonicity invariant (spec §3) is scoped to a
// single running file.
func (p Position) Before(q Position) bool {
	if !sameFile(p, q) {
		return false
	}

	return p.Line < q.Line
}

// AtOrAfter reports whether p sorts at-or-after q, used to check the
// "location of child nodes is >= the parent's opening location" invariant.
func (p Position) AtOrAfter(q Position) bool {
	if !sameFile(p, q) {
		return true
	}

	return p.Line >= q.Line
}

func sameFile(p, q Position) bool {
	switch {
	case p.File == nil && q.File == nil:
		return true
	case p.File == nil || q.File == nil:
		return false
	default:
		return *p.File == *q.File
	}
}
