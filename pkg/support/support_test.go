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
package support

import (
	"strings"
	"testing"

	"github.com/komastudios/hlsl2glsl/pkg/codegen"
)

func TestLookupFindsLegacyMatrixHelper(t *testing.T) {
	tmpl, ok := Lookup(codegen.GLSLES100, "constructMat3_mf4x4")
	if !ok {
		t.Fatal("expected constructMat3_mf4x4 to exist for GLSL ES 1.00")
	}

	rendered := tmpl.Render("xll")
	if !strings.Contains(rendered, "xll_constructMat3_mf4x4") {
		t.Fatalf("expected prefix substitution, got: %s", rendered)
	}
}

func TestLookupEmptyOnModernTargets(t *testing.T) {
	if _, ok := Lookup(codegen.GLSLES300, "constructMat3_mf4x4"); ok {
		t.Fatal("expected no helper needed on GLSL ES 3.00")
	}

	if _, ok := Lookup(codegen.GLSL140, "shadow2D"); ok {
		t.Fatal("expected no shadow helper needed on GLSL 1.40")
	}
}

func TestLookupUnknownTarget(t *testing.T) {
	if _, ok := Lookup(codegen.Target(99), "anything"); ok {
		t.Fatal("expected unknown target to report no snippet")
	}
}
