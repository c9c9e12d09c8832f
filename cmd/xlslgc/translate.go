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

var translateCmd = &cobra.Command{
	Use:   "translate [flags] FILE",
	Short: "Translate an HLSL-style shader source file into GLSL.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		runTranslate(cmd, args[0])
	},
}

func init() {
	translateCmd.Flags().String("stage", "vertex", "shader stage: vertex|fragment")
	translateCmd.Flags().String("target", "glsl-120", "GLSL target version")
	translateCmd.Flags().String("entry", "main", "entry function name")
	translateCmd.Flags().String("prefix-file", "", "JSON file overriding the default identifier prefix table")
	translateCmd.Flags().StringArray("attrib", nil, "override a vertex attribute global name, as SEMANTIC=name")
	translateCmd.Flags().StringP("output", "o", "", "write GLSL output here instead of stdout")
	translateCmd.Flags().Bool("intermediate", false, "append the intermediate-tree dump to the info log")
}

type translateOutput struct {
	Shader   string                `json:"shader"`
	Uniforms []hlslglsl.UniformInfo `json:"uniforms"`
	InfoLog  string                `json:"infoLog,omitempty"`
}

func runTranslate(cmd *cobra.Command, file string) {
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

	prefix := hlslglsl.DefaultPrefixTable()
	if path := getFlagString(cmd, "prefix-file"); path != "" {
		prefix, err = loadPrefixTable(path)
		if err != nil {
			fatalf("%v", err)
		}
	}

	attribs, err := parseAttribFlags(getFlagStringArray(cmd, "attrib"))
	if err != nil {
		fatalf("%v", err)
	}

	var opts hlslglsl.Options
	if getFlagBool(cmd, "intermediate") {
		opts |= hlslglsl.TranslateOpIntermediate
	}

	if !hlslglsl.Initialize() {
		fatalf("failed to initialize built-in tables")
	}
	defer hlslglsl.Shutdown()

	h := hlslglsl.ConstructCompilerUserPrefix(stage, prefix)
	defer hlslglsl.DestructCompiler(h)

	logVerbose("translating %s as %s stage, %s target", file, stage, target)

	if attribs != nil && !hlslglsl.SetUserAttributeNames(h, attribs) {
		fatalf("conflicting --attrib names")
	}

	entry := getFlagString(cmd, "entry")
	ok := hlslglsl.Parse(h, string(source), target, opts) &&
		hlslglsl.Translate(h, entry, target, opts)

	infoLog := hlslglsl.GetInfoLog(h)

	if !ok {
		printInfoLog(os.Stderr, infoLog)
		os.Exit(1)
	}

	shader := hlslglsl.GetShader(h)

	if getFlagBool(cmd, "json") {
		out := translateOutput{Shader: shader, Uniforms: hlslglsl.GetUniformInfo(h), InfoLog: infoLog}

		enc, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			fatalf("%v", err)
		}

		fmt.Println(string(enc))

		return
	}

	if out := getFlagString(cmd, "output"); out != "" {
		if err := os.WriteFile(out, []byte(shader), 0o644); err != nil {
			fatalf("%v", err)
		}

		return
	}

	fmt.Print(shader)
}
