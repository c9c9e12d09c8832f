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
package hlslglsl

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/komastudios/hlsl2glsl/pkg/ast"
	"github.com/komastudios/hlsl2glsl/pkg/builtins"
	"github.com/komastudios/hlsl2glsl/pkg/codegen"
	"github.com/komastudios/hlsl2glsl/pkg/frontend"
	"github.com/komastudios/hlsl2glsl/pkg/link"
	"github.com/komastudios/hlsl2glsl/pkg/loc"
	"github.com/komastudios/hlsl2glsl/pkg/transform"
)

func init() {
	builtins.SetParser(frontend.ParseSignatures)
}

// SetVerbose raises the package logger to debug level, tracing parse start,
// the parsed function count and the link step. It never affects GetShader/GetInfoLog's return
// values — purely ambient observability.
func SetVerbose(v bool) {
	if v {
		log.SetLevel(log.DebugLevel)
		return
	}

	log.SetLevel(log.InfoLevel)
}

// session holds one compiler handle's accumulated state. codegenOK is
// tracked separately from whatever the most recent Translate produced, so
// Translate fails after a failed Parse even when an earlier Translate left
// a shader behind; Translate before any Parse and Translate after a failed
// one give the same result (spec §7, kind Contract: "Shader does not have
// valid object code.").
type session struct {
	mu sync.Mutex

	stage  codegen.Stage
	prefix codegen.PrefixTable

	attributeNames map[string]string

	diags *frontend.Log

	fns      []*ast.Function
	uniforms []*ast.Variable
	records  []codegen.FunctionRecord
	structs  []codegen.StructRecord
	helpers  []string

	codegenOK bool

	shader      string
	uniformInfo []UniformInfo
}

var (
	sessions   sync.Map // Handle -> *session
	nextHandle uint32
)

func newSession(stage Stage, prefix PrefixTable) Handle {
	h := Handle(atomic.AddUint32(&nextHandle, 1))
	sessions.Store(h, &session{stage: codegen.Stage(stage), prefix: prefix})

	return h
}

func lookup(h Handle) (*session, bool) {
	v, ok := sessions.Load(h)
	if !ok {
		return nil, false
	}

	return v.(*session), true
}

// parse runs parse + transform + codegen (spec §6: Parse). A nil/empty
// source is treated as success with empty output, per the Contract error
// kind's null-source rule.
func (s *session) parse(source string, target codegen.Target, opts Options) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	diags := &frontend.Log{}
	s.diags = diags
	s.codegenOK = false

	if !builtins.Ready() {
		diags.Add(frontend.Diagnostic{Kind: frontend.Internal, Message: "PrefixInternalError: built-in tables not initialized; call Initialize first"})
		return false
	}

	if source == "" {
		s.codegenOK = true
		s.fns = nil
		s.uniforms = nil
		s.records = nil
		s.structs = nil
		s.helpers = nil

		return true
	}

	log.Debugf("hlslglsl: parsing %s stage, %d bytes", s.stage, len(source))

	builtinTable := builtins.TableFor(builtins.Stage(s.stage))

	p := frontend.NewParser("", source, builtinTable, diags)
	unit := p.ParseUnit()

	if !diags.Empty() {
		diags.SynthesizeFailure(diags.Count())
		return false
	}

	fns := unit.Table.Functions()
	log.Debugf("hlslglsl: parsed %d functions", len(fns))

	transform.PropagateMutableUniforms(fns)
	transform.PropagateSamplerTypes(fns, diags)

	if !diags.Empty() {
		diags.SynthesizeFailure(diags.Count())
		return false
	}

	gen := codegen.NewGenerator(target, s.stage, s.prefix, diags)
	records := gen.Generate(fns)

	if !diags.Empty() {
		diags.SynthesizeFailure(diags.Count())
		return false
	}

	if opts.has(TranslateOpIntermediate) {
		dumpIntermediate(diags, fns)
	}

	s.fns = fns
	s.uniforms = unit.Table.GlobalVariables()
	s.records = records
	s.structs = gen.StructRecords()
	s.helpers = gen.HelperOrder()
	s.codegenOK = true

	return true
}

// translate runs the linker against the entry named by entry (spec §6:
// Translate). Requires a prior successful parse on the same session.
func (s *session) translate(entry string, target codegen.Target, opts Options) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.codegenOK {
		diags := &frontend.Log{}
		diags.AddRaw("Shader does not have valid object code.")
		s.diags = diags

		return false
	}

	diags := &frontend.Log{}
	s.diags = diags

	log.Debugf("hlslglsl: linking entry %q against %s", entry, target)

	linkOpts := link.Options{
		Target:         target,
		Stage:          s.stage,
		Prefix:         s.prefix,
		Entry:          entry,
		AttributeNames: s.attributeNames,
	}

	res, err := link.Link(s.records, s.structs, s.helpers, s.uniforms, linkOpts)
	if err != nil {
		diags.Errorf(loc.NoFile(0), entry, frontend.Link, "%v", err)
		diags.SynthesizeFailure(diags.Count())

		return false
	}

	if opts.has(TranslateOpIntermediate) {
		dumpIntermediate(diags, s.fns)
	}

	uniformInfo := make([]UniformInfo, len(res.Uniforms))
	for i, u := range res.Uniforms {
		uniformInfo[i] = UniformInfo{
			Name:         u.Name,
			Semantic:     u.Semantic,
			TypeCode:     u.TypeCode,
			ArraySize:    u.ArraySize,
			RegisterSpec: u.RegisterSpec,
		}
	}

	s.shader = res.Shader
	s.uniformInfo = uniformInfo

	return true
}

func (s *session) infoLog() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.diags == nil {
		return ""
	}

	return s.diags.String()
}

func (s *session) getShader() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.shader
}

func (s *session) uniformCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.uniformInfo)
}

func (s *session) uniformInfoList() []UniformInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]UniformInfo(nil), s.uniformInfo...)
}

// setUserAttributeNames installs names wholesale, replacing whatever the
// previous call installed. It fails, leaving the previous set untouched,
// when two semantics in names collide on the same caller-provided name
// (spec §7, kind Link-time: "user attribute-name collision").
func (s *session) setUserAttributeNames(names map[AttribSemantic]string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	seenNames := map[string]bool{}
	next := make(map[string]string, len(names))

	for sem, name := range names {
		if name == "" {
			continue
		}

		if seenNames[name] {
			return false
		}

		seenNames[name] = true
		next[string(sem)] = name
	}

	s.attributeNames = next

	return true
}

func dumpIntermediate(diags *frontend.Log, fns []*ast.Function) {
	var b strings.Builder

	b.WriteString("-- intermediate tree --\n")

	for _, fn := range fns {
		fmt.Fprintf(&b, "func %s(%d params) -> %s\n", fn.Name, len(fn.Params), fn.ReturnType.String())
	}

	diags.AddRaw(b.String())
}
