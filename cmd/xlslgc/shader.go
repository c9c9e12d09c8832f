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

	json "github.com/segmentio/encoding/json"

	"github.com/komastudios/hlsl2glsl/pkg/hlslglsl"
)

func parseStage(s string) (hlslglsl.Stage, error) {
	switch strings.ToLower(s) {
	case "vertex":
		return hlslglsl.Vertex, nil
	case "fragment":
		return hlslglsl.Fragment, nil
	default:
		return 0, fmt.Errorf("unknown stage %q (want vertex|fragment)", s)
	}
}

func parseTarget(s string) (hlslglsl.Target, error) {
	switch strings.ToLower(s) {
	case "glsl-es-100":
		return hlslglsl.GLSLES100, nil
	case "glsl-110":
		return hlslglsl.GLSL110, nil
	case "glsl-120":
		return hlslglsl.GLSL120, nil
	case "glsl-140":
		return hlslglsl.GLSL140, nil
	case "glsl-es-300":
		return hlslglsl.GLSLES300, nil
	default:
		return 0, fmt.Errorf("unknown target %q (want glsl-es-100|glsl-110|glsl-120|glsl-140|glsl-es-300)", s)
	}
}

// parseAttribFlags turns repeated "SEMANTIC=name" --attrib flags into the
// map SetUserAttributeNames expects.
func parseAttribFlags(raw []string) (map[hlslglsl.AttribSemantic]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	out := make(map[hlslglsl.AttribSemantic]string, len(raw))

	for _, kv := range raw {
		semantic, name, ok := strings.Cut(kv, "=")
		if !ok || semantic == "" || name == "" {
			return nil, fmt.Errorf("malformed --attrib %q, want SEMANTIC=name", kv)
		}

		out[hlslglsl.AttribSemantic(semantic)] = name
	}

	return out, nil
}

// prefixFile is the on-disk shape of --prefix-file.
type prefixFile struct {
	Helper  string `json:"helper"`
	EntryFn string `json:"entryFn"`
	Varying string `json:"varying"`
	Temp    string `json:"temp"`
	Attrib  string `json:"attrib"`
}

func loadPrefixTable(path string) (hlslglsl.PrefixTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return hlslglsl.PrefixTable{}, err
	}

	var pf prefixFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return hlslglsl.PrefixTable{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	return hlslglsl.PrefixTable{
		Helper:  pf.Helper,
		EntryFn: pf.EntryFn,
		Varying: pf.Varying,
		Temp:    pf.Temp,
		Attrib:  pf.Attrib,
	}, nil
}
