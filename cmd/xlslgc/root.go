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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/komastudios/hlsl2glsl/pkg/hlslglsl"
)

// rootCmd is the base command for the translator driver.
var rootCmd = &cobra.Command{
	Use:   "xlslgc",
	Short: "Translates HLSL-style shader source into GLSL.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		hlslglsl.SetVerbose(getFlagBool(cmd, "verbose"))
	},
}

// Execute runs the root command; main.main exits nonzero on failure.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Bool("json", false, "emit machine-readable JSON output")

	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(checkCmd)
}

func getFlagBool(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

func getFlagString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

func getFlagStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// logVerbose is a convenience wrapper so subcommands can trace progress the
// same way the teacher's commands do, gated behind --verbose via
// hlslglsl.SetVerbose in PersistentPreRun.
func logVerbose(format string, args ...any) {
	log.Debugf(format, args...)
}
