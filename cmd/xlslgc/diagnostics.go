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
package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// printInfoLog writes infoLog to w, highlighting ERROR lines in red when w
// is an interactive terminal. Piped/redirected output (CI logs, golden
// files) gets the plain diagnostic text untouched.
func printInfoLog(w *os.File, infoLog string) {
	if infoLog == "" {
		return
	}

	if !term.IsTerminal(int(w.Fd())) {
		fmt.Fprint(w, infoLog)
		return
	}

	for _, line := range strings.SplitAfter(infoLog, "\n") {
		if line == "" {
			continue
		}

		if strings.Contains(line, "ERROR:") {
			fmt.Fprintf(w, "\x1b[31m%s\x1b[0m", line)
		} else {
			fmt.Fprint(w, line)
		}
	}
}
