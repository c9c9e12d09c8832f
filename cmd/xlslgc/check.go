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

	json "github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	"github.com/komastudios/hlsl2glsl/pkg/hlslglsl"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] FILE",
	Short: "Parse a shader source file and report diagnostics, without generating GLSL.",
	Long: `Parses FILE through the same pipeline Parse uses (parse, transform, codegen)
and reports the resulting diagnostics, without linking an entry point. Intended
for go:generate or CI golden-file checks.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		runCheck(cmd, args[0])
	},
}

func init() {
	checkCmd.Flags().String("stage", "vertex", "shader stage: vertex|fragment")
	checkCmd.Flags().String("target", "glsl-120", "GLSL target version to codegen against")
}

type checkOutput struct {
	OK      bool   `json:"ok"`
	InfoLog string `json:"infoLog"`
}

func runCheck(cmd *cobra.Command, file string) {
	source, err := os.ReadFile(file)
	if err != nil {
		fatalf("%v", err)
	}

	stage, err := parseStage(getFlagString(cmd, "stage"))
	if err != nil {
		fatalf("%v", err)
	}

	target, err := parseTarget(getFlagString(cmd, "target"))
	if err != nil {
		fatalf("%v", err)
	}

	if !hlslglsl.Initialize() {
		fatalf("failed to initialize built-in tables")
	}
	defer hlslglsl.Shutdown()

	h := hlslglsl.ConstructCompiler(stage)
	defer hlslglsl.DestructCompiler(h)

	logVerbose("checking %s as %s stage, %s target", file, stage, target)

	ok := hlslglsl.Parse(h, string(source), target, 0)
	infoLog := hlslglsl.GetInfoLog(h)

	if getFlagBool(cmd, "json") {
		enc, err := json.MarshalIndent(checkOutput{OK: ok, InfoLog: infoLog}, "", "  ")
		if err != nil {
			fatalf("%v", err)
		}

		fmt.Println(string(enc))
	} else if infoLog != "" {
		printInfoLog(os.Stderr, infoLog)
	}

	if !ok {
		os.Exit(1)
	}
}
