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

// Package link combines codegen's per-function output into the final GLSL
// text: extension preamble, support helpers, uniforms, structs, user
// functions, entry-point renaming and a synthesized main() that binds
// semantic-tagged parameters to the stage's attribute/varying/fragment-
// output globals (spec §4.7).
package link

import (
	"fmt"
	"strings"

	"github.com/komastudios/hlsl2glsl/pkg/ast"
	"github.com/komastudios/hlsl2glsl/pkg/codegen"
	"github.com/komastudios/hlsl2glsl/pkg/support"
)

// Options configures one link pass (spec §6).
type Options struct {
	Target codegen.Target
	Stage  codegen.Stage
	Prefix codegen.PrefixTable
	Entry  string
	// AttributeNames overrides "<prefix.Attrib><SEMANTIC>" vertex-input
	// global names, keyed by semantic name (spec §4.7 item 7,
	// SetUserAttributeNames). Collision validation happens in the caller
	// (pkg/hlslglsl), not here; Link trusts whatever map it is given.
	AttributeNames map[string]string
}

// Result is the linker's output: the final shader text plus the uniform
// reflection table.
type Result struct {
	Shader   string
	Uniforms []codegen.UniformRecord
}

// Link assembles funcs (codegen's per-function records, in declaration
// order), structs (every struct codegen encountered, in first-reference
// order) and uniforms (every uniform-qualified variable surviving the
// transform passes) into final GLSL text.
func Link(funcs []codegen.FunctionRecord, structs []codegen.StructRecord, helperOrder []string, uniforms []*ast.Variable, opts Options) (Result, error) {
	byName := map[string]codegen.FunctionRecord{}
	for _, f := range funcs {
		byName[f.Fn.Name] = f
	}

	entry, ok := byName[opts.Entry]
	if !ok {
		return Result{}, fmt.Errorf("entry function %q not found", opts.Entry)
	}

	reachable := reachableFrom(entry, byName)

	needsShadowExt := false
	neededHelpers := map[string]bool{}
	neededStructs := map[string]bool{}

	for name := range reachable {
		rec := byName[name]

		if rec.NeedsShadowExtension {
			needsShadowExt = true
		}

		for _, h := range rec.SupportHelpers {
			neededHelpers[h] = true
		}

		for _, s := range rec.Structs {
			neededStructs[s] = true
		}
	}

	var b strings.Builder

	if needsShadowExt {
		b.WriteString("#extension GL_EXT_shadow_samplers : require\n")
	}

	for _, id := range helperOrder {
		if !neededHelpers[id] {
			continue
		}

		tmpl, ok := support.Lookup(opts.Target, id)
		if !ok {
			continue
		}

		b.WriteString(tmpl.Render(opts.Prefix.Helper))
		b.WriteString("\n")
	}

	var mutableUniforms []string

	for _, u := range uniforms {
		writeUniformDecl(&b, u, opts)

		if u.Mutable {
			mutableUniforms = append(mutableUniforms, u.Name)
		}
	}

	for _, rec := range structs {
		if !neededStructs[rec.Name] {
			continue
		}

		writeStructDecl(&b, rec, opts)
	}

	for _, fo := range modernFragOutputs(entry.Fn, opts) {
		fmt.Fprintf(&b, "out %s %s;\n", glslType(fo.typ, opts), fo.name)
	}

	for _, rec := range funcs {
		if rec.Fn.Name == entry.Fn.Name || !reachable[rec.Fn.Name] {
			continue
		}

		writeFunctionDecl(&b, rec, rec.Fn.Name, opts)
	}

	entryGLSLName := opts.Prefix.EntryFn + "main"
	writeFunctionDecl(&b, entry, entryGLSLName, opts)

	writeMain(&b, entry, entryGLSLName, opts, mutableUniforms)

	return Result{Shader: b.String(), Uniforms: uniformRecords(uniforms)}, nil
}

func uniformRecords(uniforms []*ast.Variable) []codegen.UniformRecord {
	recs := make([]codegen.UniformRecord, 0, len(uniforms))
	for _, u := range uniforms {
		recs = append(recs, codegen.NewUniformRecord(u))
	}

	return recs
}

// reachableFrom computes the set of user function names reachable from
// entry, including entry itself, following codegen's recorded call lists
// (spec §4.6: "struct/helper emission restricted to what's reachable").
func reachableFrom(entry codegen.FunctionRecord, byName map[string]codegen.FunctionRecord) map[string]bool {
	seen := map[string]bool{entry.Fn.Name: true}
	work := []string{entry.Fn.Name}

	for len(work) > 0 {
		name := work[len(work)-1]
		work = work[:len(work)-1]

		rec, ok := byName[name]
		if !ok {
			continue
		}

		for _, callee := range rec.CalledFunctions {
			if !seen[callee] {
				seen[callee] = true
				work = append(work, callee)
			}
		}
	}

	return seen
}

func precisionPrefix(t ast.Type, opts Options) string {
	if !opts.Target.HasPrecisionQualifiers() {
		return ""
	}

	if t.Basic.IsSampler() {
		return "lowp "
	}

	p := t.Precision
	if p == ast.PrecisionNone {
		p = ast.PrecisionHigh
	}

	return p.String() + " "
}

func glslType(t ast.Type, opts Options) string {
	return codegen.GLSLTypeName(t, opts.Target)
}

// writeUniformDecl emits the GLSL declaration(s) for one surviving uniform.
// A uniform the transform passes never marked mutable is declared directly;
// a mutable one cannot be written to as a GLSL uniform, so it is declared
// twice: once under a temp-prefixed name as the actual (read-only)
// interface uniform, and once as a plain writable global under its
// original name, initialized from the interface uniform at the top of
// main() (spec §4.5/§4.6: "lifted to a local copy").
func writeUniformDecl(b *strings.Builder, v *ast.Variable, opts Options) {
	typeText := glslType(v.Type, opts)
	prec := precisionPrefix(v.Type, opts)

	if !v.Mutable {
		fmt.Fprintf(b, "uniform %s%s %s;\n", prec, typeText, v.Name)
		return
	}

	fmt.Fprintf(b, "uniform %s%s %s%s;\n", prec, typeText, opts.Prefix.Temp, v.Name)
	fmt.Fprintf(b, "%s%s %s;\n", prec, typeText, v.Name)
}

func writeStructDecl(b *strings.Builder, rec codegen.StructRecord, opts Options) {
	fmt.Fprintf(b, "struct %s {\n", rec.Name)

	for _, f := range rec.Fields {
		fmt.Fprintf(b, "  %s %s;\n", glslType(f.Type, opts), f.Name)
	}

	b.WriteString("};\n")
}

func writeFunctionDecl(b *strings.Builder, rec codegen.FunctionRecord, glslName string, opts Options) {
	fmt.Fprintf(b, "#line %d\n", rec.Fn.Loc.Line)

	params := make([]string, len(rec.Fn.Params))
	for i, p := range rec.Fn.Params {
		params[i] = fmt.Sprintf("%s %s %s", paramQualifierText(p.ParamQualifier), glslType(p.Type, opts), p.Name)
	}

	fmt.Fprintf(b, "%s %s(%s) {\n", glslType(rec.Fn.ReturnType, opts), glslName, strings.Join(params, ", "))
	b.WriteString(rec.BodyText)
	b.WriteString("}\n")
}

func paramQualifierText(q ast.Qualifier) string {
	switch q {
	case ast.QualOut:
		return "out"
	case ast.QualInOut:
		return "inout"
	default:
		return "in"
	}
}

// entryOutput describes one value the synthesized main() must route out of
// the entry call: either a declared "out"/"inout" parameter, or the entry's
// own semantic-tagged return value (spec §8 supplemental: a return-position
// semantic is handled identically to an out parameter's).
type entryOutput struct {
	name     string
	semantic ast.Semantic
}

// writeMain emits the synthesized main(), seeding mutableUniforms in
// declaration order (the order Link built it in, mirroring pkg/transform's
// sortedVars discipline) so repeated runs over the same source produce
// byte-identical output.
func writeMain(b *strings.Builder, entry codegen.FunctionRecord, entryGLSLName string, opts Options, mutableUniforms []string) {
	fn := entry.Fn
	prefix := opts.Prefix

	b.WriteString("void main() {\n")

	for _, name := range mutableUniforms {
		fmt.Fprintf(b, "  %s = %s%s;\n", name, prefix.Temp, name)
	}

	var outs []entryOutput
	var callArgs []string

	for _, p := range fn.Params {
		switch p.ParamQualifier {
		case ast.QualOut, ast.QualInOut:
			temp := prefix.Temp + p.Name
			fmt.Fprintf(b, "  %s %s;\n", glslType(p.Type, opts), temp)

			if p.ParamQualifier == ast.QualInOut {
				fmt.Fprintf(b, "  %s = %s;\n", temp, inputBindingName(p, opts))
			}

			callArgs = append(callArgs, temp)
			outs = append(outs, entryOutput{name: temp, semantic: p.Semantic})
		default:
			callArgs = append(callArgs, inputBindingName(p, opts))
		}
	}

	hasRetval := fn.ReturnType.Basic != ast.Void
	retvalName := prefix.Temp + "retval"

	if hasRetval {
		fmt.Fprintf(b, "  %s %s = %s(%s);\n", glslType(fn.ReturnType, opts), retvalName, entryGLSLName, strings.Join(callArgs, ", "))

		if fn.ReturnSem.HasSemantic() {
			outs = append(outs, entryOutput{name: retvalName, semantic: fn.ReturnSem})
		}
	} else {
		fmt.Fprintf(b, "  %s(%s);\n", entryGLSLName, strings.Join(callArgs, ", "))
	}

	for _, out := range outs {
		fmt.Fprintf(b, "  %s = %s;\n", outputBindingName(out.semantic, opts), out.name)
	}

	b.WriteString("}\n")
}

// inputBindingName names the stage global an "in"/"inout" entry parameter
// reads from: an attribute (vertex) or varying (fragment) global, honoring
// any SetUserAttributeNames override for vertex attributes (spec §4.7 item
// 6-7).
func inputBindingName(p *ast.Variable, opts Options) string {
	if opts.Stage == codegen.StageVertex {
		if name, ok := opts.AttributeNames[p.Semantic.Name]; ok && name != "" {
			return name
		}

		return opts.Prefix.Attrib + p.Semantic.Name
	}

	return opts.Prefix.Varying + p.Semantic.Name
}

// outputBindingName names the destination an entry output binds to: a
// built-in GLSL output (gl_Position, gl_FragData[n], gl_FragDepth) for the
// semantics the pipeline recognizes specially, otherwise a plain varying
// global (vertex) (spec §4.7 item 6).
func outputBindingName(sem ast.Semantic, opts Options) string {
	if opts.Stage == codegen.StageVertex {
		if sem.Name == "POSITION" {
			return "gl_Position"
		}

		return opts.Prefix.Varying + sem.Name
	}

	switch {
	case sem.Name == "DEPTH":
		return "gl_FragDepth"
	case strings.HasPrefix(sem.Name, "COLOR"):
		if opts.Target.UsesInOutQualifiers() {
			return fragOutputGlobalName(sem.Index, opts)
		}

		return fmt.Sprintf("gl_FragData[%d]", sem.Index)
	default:
		return opts.Prefix.Varying + sem.Name
	}
}

// fragOutputGlobalName names the declared "out" global a modern-target
// fragment COLORn output binds to, since GLSL ES 3.00/GLSL 1.40 fragment
// shaders declare their own output variables rather than writing
// gl_FragData (spec §4.7 item 6).
func fragOutputGlobalName(index int, opts Options) string {
	return fmt.Sprintf("%sFragColor%d", opts.Prefix.Varying, index)
}

type fragOutput struct {
	name string
	typ  ast.Type
}

// modernFragOutputs lists the "out" globals a modern-target fragment entry
// needs declared ahead of main(), one per distinct COLORn semantic on an
// out/inout parameter or the return value.
func modernFragOutputs(fn *ast.Function, opts Options) []fragOutput {
	if opts.Stage != codegen.StageFragment || !opts.Target.UsesInOutQualifiers() {
		return nil
	}

	var outs []fragOutput
	seen := map[int]bool{}

	addColor := func(sem ast.Semantic, typ ast.Type) {
		if !strings.HasPrefix(sem.Name, "COLOR") || seen[sem.Index] {
			return
		}

		seen[sem.Index] = true
		outs = append(outs, fragOutput{name: fragOutputGlobalName(sem.Index, opts), typ: typ})
	}

	for _, p := range fn.Params {
		if p.ParamQualifier == ast.QualOut || p.ParamQualifier == ast.QualInOut {
			addColor(p.Semantic, p.Type)
		}
	}

	if fn.ReturnSem.HasSemantic() {
		addColor(fn.ReturnSem, fn.ReturnType)
	}

	return outs
}
