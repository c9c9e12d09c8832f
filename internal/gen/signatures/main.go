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

// Command signatures regenerates pkg/builtins/zz_signatures.go, the seeded
// intrinsic declaration list, from the declarative signature list below —
// the same bavard-stamped-template approach internal/gen/support uses for
// pkg/support's per-target helper tables.
package main

import (
	"fmt"
	"os"

	"github.com/consensys/bavard"
)

const copyrightHolder = "komastudios"

// commonSignatures is the forward-declaration text for every intrinsic
// shared by both shader stages today (spec §4.3). Grouped the way the
// original shading language's own standard-library header groups them:
// linear algebra, per-component math, and texture sampling.
var commonSignatures = []string{
	"float mul(float, float);",
	"float2 mul(float2x2, float2);",
	"float3 mul(float3x3, float3);",
	"float4 mul(float4x4, float4);",

	"float dot(float, float);",
	"float2 dot(float2, float2);",
	"float3 dot(float3, float3);",
	"float4 dot(float4, float4);",
	"float3 cross(float3, float3);",

	"float normalize(float);",
	"float2 normalize(float2);",
	"float3 normalize(float3);",
	"float4 normalize(float4);",

	"float length(float);",
	"float length(float2);",
	"float length(float3);",
	"float length(float4);",
	"float distance(float3, float3);",
	"float reflect(float3, float3);",

	"float pow(float, float);",
	"float2 pow(float2, float2);",
	"float3 pow(float3, float3);",
	"float4 pow(float4, float4);",
	"float sqrt(float);",
	"float rsqrt(float);",

	"float abs(float);",
	"float2 abs(float2);",
	"float3 abs(float3);",
	"float4 abs(float4);",
	"float floor(float);",
	"float ceil(float);",
	"float frac(float);",
	"float sign(float);",

	"float sin(float);",
	"float cos(float);",
	"float tan(float);",
	"float exp(float);",
	"float exp2(float);",
	"float log(float);",
	"float log2(float);",

	"float min(float, float);",
	"float2 min(float2, float2);",
	"float3 min(float3, float3);",
	"float4 min(float4, float4);",
	"float max(float, float);",
	"float2 max(float2, float2);",
	"float3 max(float3, float3);",
	"float4 max(float4, float4);",
	"float clamp(float, float, float);",
	"float3 clamp(float3, float3, float3);",

	"float lerp(float, float, float);",
	"float3 lerp(float3, float3, float3);",
	"float4 lerp(float4, float4, float4);",
	"float saturate(float);",
	"float3 saturate(float3);",
	"float4 saturate(float4);",

	"float4 tex1D(sampler1D, float);",
	"float4 tex2D(sampler2D, float2);",
	"float4 tex2Dproj(sampler2D, float3);",
	"float4 tex3D(sampler3D, float3);",
	"float4 texCUBE(samplerCube, float3);",
	"float4 shadow2D(sampler2DShadow, float3);",
	"float4 shadow2Dproj(sampler2DShadow, float4);",
}

type signatureSet struct {
	Signatures []string
}

//go:generate go run main.go
func main() {
	bgen := bavard.NewBatchGenerator(copyrightHolder, 2026, "internal/gen/signatures")

	err := bgen.Generate(signatureSet{Signatures: commonSignatures}, "builtins", "templates",
		bavard.Entry{
			File:      "../../../pkg/builtins/zz_signatures.go",
			Templates: []string{"signatures.go.tmpl"},
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
