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
package codegen

import (
	"fmt"
	"strings"

	"github.com/komastudios/hlsl2glsl/pkg/ast"
	"github.com/komastudios/hlsl2glsl/pkg/frontend"
)

// Generator holds the per-session codegen state: the target/stage/prefix a
// compile was requested against, and everything accumulated while walking
// function bodies (spec §4.6). One Generator renders every function of one
// Parse/Translate pair; it is never reused across sessions.
type Generator struct {
	target Target
	stage  Stage
	prefix PrefixTable
	diags  *frontend.Log

	helperOrder []string
	helperSeen  map[string]bool
	needsShadow bool

	structOrder []string
	structSeen  map[string]*ast.StructDef

	funcStructs    []string
	funcStructSeen map[string]bool

	indent int
}

// NewGenerator constructs a Generator for one compile session.
func NewGenerator(target Target, stage Stage, prefix PrefixTable, diags *frontend.Log) *Generator {
	return &Generator{
		target:     target,
		stage:      stage,
		prefix:     prefix,
		diags:      diags,
		helperSeen: map[string]bool{},
		structSeen: map[string]*ast.StructDef{},
	}
}

// Generate renders a FunctionRecord for every function in fns, in order.
func (g *Generator) Generate(fns []*ast.Function) []FunctionRecord {
	records := make([]FunctionRecord, 0, len(fns))

	for _, fn := range fns {
		records = append(records, g.genFunction(fn))
	}

	return records
}

// HelperOrder returns every support-helper id used across the whole
// session, in first-use order, for the linker's deterministic emission
// pass (spec §4.7 item 2).
func (g *Generator) HelperOrder() []string {
	return append([]string(nil), g.helperOrder...)
}

// StructRecords returns every user struct this Generator encountered while
// rendering function bodies/signatures, in first-reference order — the
// linker emits only those of these that the entry function can reach, never
// the full declared set (spec §4.6).
func (g *Generator) StructRecords() []StructRecord {
	recs := make([]StructRecord, 0, len(g.structOrder))

	for _, name := range g.structOrder {
		def := g.structSeen[name]
		recs = append(recs, StructRecord{Name: def.Name, Fields: def.Fields})
	}

	return recs
}

func (g *Generator) genFunction(fn *ast.Function) FunctionRecord {
	rec := FunctionRecord{Fn: fn, IsEntry: fn.IsEntry}

	before := len(g.helperOrder)
	beforeShadow := g.needsShadow
	sessionHelperSeen := g.helperSeen
	g.helperSeen = map[string]bool{}
	g.needsShadow = false

	g.funcStructs = nil
	g.funcStructSeen = map[string]bool{}

	g.noteStructType(fn.ReturnType)
	for _, p := range fn.Params {
		g.noteStructType(p.Type)
	}

	var calls []string
	seenCalls := map[string]bool{}

	if fn.Body != nil {
		var b strings.Builder
		g.indent = 1

		for _, stmt := range fn.Body.Children {
			ast.Walk(stmt, func(n ast.Node) bool {
				if agg, ok := n.(*ast.Aggregate); ok && agg.Op == ast.AggFunctionCall {
					if _, isIntrinsic := intrinsicLowerers[agg.Name]; !isIntrinsic && !seenCalls[agg.Name] {
						seenCalls[agg.Name] = true
						calls = append(calls, agg.Name)
					}
				}

				g.noteStructType(exprType(n))

				return true
			})

			b.WriteString(g.genStatement(stmt))
		}

		rec.BodyText = b.String()
	}

	rec.CalledFunctions = calls
	rec.SupportHelpers = append([]string(nil), g.helperOrder[before:]...)
	rec.Structs = append([]string(nil), g.funcStructs...)
	rec.NeedsShadowExtension = g.needsShadow
	g.needsShadow = g.needsShadow || beforeShadow

	// Fold this function's helpers back into the session-wide first-use order.
	order := g.helperOrder[:before]
	for _, id := range rec.SupportHelpers {
		if !sessionHelperSeen[id] {
			sessionHelperSeen[id] = true
			order = append(order, id)
		}
	}

	g.helperOrder = order
	g.helperSeen = sessionHelperSeen

	return rec
}

// noteStructType records t's struct (if any) in first-reference order for
// the session's StructRecords output, and separately in the current
// function's own Structs list (genFunction resets funcStructs/funcStructSeen
// per call) so the linker's reachability sweep can tell which functions
// reference which structs, independent of which function happened to
// reference a given struct first.
func (g *Generator) noteStructType(t ast.Type) {
	if t.Basic != ast.Struct || t.Struct == nil {
		return
	}

	name := t.Struct.Name

	if _, ok := g.structSeen[name]; !ok {
		g.structSeen[name] = t.Struct
		g.structOrder = append(g.structOrder, name)
	}

	if !g.funcStructSeen[name] {
		g.funcStructSeen[name] = true
		g.funcStructs = append(g.funcStructs, name)
	}
}

// useHelper marks helper id as referenced, returning its fully prefixed
// name. Helpers are recorded in first-use order across the whole session so
// the linker can emit them deterministically (spec §4.7 item 2).
func (g *Generator) useHelper(id string) string {
	if !g.helperSeen[id] {
		g.helperSeen[id] = true
		g.helperOrder = append(g.helperOrder, id)
	}

	return g.prefix.Helper + "_" + id
}

func (g *Generator) requireShadowExtension() {
	g.needsShadow = true
}

func (g *Generator) pad() string {
	return strings.Repeat("  ", g.indent)
}

func (g *Generator) genStatement(n ast.Node) string {
	switch t := n.(type) {
	case *ast.Aggregate:
		return g.genAggregateStatement(t)
	case *ast.Selection:
		return g.genIfStatement(t)
	case *ast.Loop:
		return g.genLoop(t)
	case *ast.Branch:
		return g.genBranch(t)
	default:
		return g.pad() + g.genExpr(n) + ";\n"
	}
}

func (g *Generator) genAggregateStatement(agg *ast.Aggregate) string {
	switch agg.Op {
	case ast.AggSequence:
		if len(agg.Children) == 0 {
			return ""
		}
		// A bare AggSequence with Ident children is a local declaration
		// list (decl.go's declareOne); render one declaration per child.
		if _, ok := agg.Children[0].(*ast.Ident); ok {
			var b strings.Builder

			for _, c := range agg.Children {
				id, ok := c.(*ast.Ident)
				if !ok {
					continue
				}

				b.WriteString(g.genLocalDecl(id))
			}

			return b.String()
		}

		var b strings.Builder

		b.WriteString(g.pad() + "{\n")
		g.indent++

		for _, c := range agg.Children {
			b.WriteString(g.genStatement(c))
		}

		g.indent--
		b.WriteString(g.pad() + "}\n")

		return b.String()
	default:
		return g.pad() + g.genExpr(agg) + ";\n"
	}
}

// genLocalDecl renders one declarator from a local-variable declaration
// statement. decl.go's parser binds id.Target to the *ast.Variable carrying
// the type and optional initializer, since the Ident alone (unlike an
// ordinary reference) needs both to render a declaration.
func (g *Generator) genLocalDecl(id *ast.Ident) string {
	v, _ := id.Target.(*ast.Variable)
	typeText := glslTypeName(id.Type, g.target)

	if v == nil {
		return fmt.Sprintf("%s%s %s;\n", g.pad(), typeText, id.Name)
	}

	if v.Init == nil {
		return fmt.Sprintf("%s%s %s;\n", g.pad(), typeText, id.Name)
	}

	return fmt.Sprintf("%s%s %s = %s;\n", g.pad(), typeText, id.Name, g.genExpr(v.Init))
}

func (g *Generator) genIfStatement(sel *ast.Selection) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%sif (%s) {\n", g.pad(), g.genExpr(sel.Cond)))
	g.indent++
	b.WriteString(g.genStatement(sel.Then))
	g.indent--
	b.WriteString(g.pad() + "}\n")

	if sel.Else != nil {
		b.WriteString(g.pad() + "else {\n")
		g.indent++
		b.WriteString(g.genStatement(sel.Else))
		g.indent--
		b.WriteString(g.pad() + "}\n")
	}

	return b.String()
}

func (g *Generator) genLoop(l *ast.Loop) string {
	var b strings.Builder

	switch l.Kind {
	case ast.LoopWhile:
		b.WriteString(fmt.Sprintf("%swhile (%s) {\n", g.pad(), g.genExpr(l.Cond)))
		g.indent++
		b.WriteString(g.genStatement(l.Body))
		g.indent--
		b.WriteString(g.pad() + "}\n")
	case ast.LoopDoWhile:
		b.WriteString(g.pad() + "do {\n")
		g.indent++
		b.WriteString(g.genStatement(l.Body))
		g.indent--
		b.WriteString(fmt.Sprintf("%s} while (%s);\n", g.pad(), g.genExpr(l.Cond)))
	default:
		init, cond, post := "", "", ""

		if l.Init != nil {
			init = strings.TrimRight(g.genExprOrDeclFragment(l.Init), "; \n")
		}

		if l.Cond != nil {
			cond = g.genExpr(l.Cond)
		}

		if l.Post != nil {
			post = g.genExpr(l.Post)
		}

		b.WriteString(fmt.Sprintf("%sfor (%s; %s; %s) {\n", g.pad(), init, cond, post))
		g.indent++
		b.WriteString(g.genStatement(l.Body))
		g.indent--
		b.WriteString(g.pad() + "}\n")
	}

	return b.String()
}

// genExprOrDeclFragment renders a for-loop initializer, which the parser
// produces either as a declaration AggSequence or as a plain expression.
func (g *Generator) genExprOrDeclFragment(n ast.Node) string {
	if agg, ok := n.(*ast.Aggregate); ok && agg.Op == ast.AggSequence {
		if len(agg.Children) > 0 {
			if id, ok := agg.Children[0].(*ast.Ident); ok {
				v, _ := id.Target.(*ast.Variable)
				typeText := glslTypeName(id.Type, g.target)

				if v != nil && v.Init != nil {
					return fmt.Sprintf("%s %s = %s", typeText, id.Name, g.genExpr(v.Init))
				}

				return fmt.Sprintf("%s %s", typeText, id.Name)
			}
		}

		return ""
	}

	return g.genExpr(n)
}

func (g *Generator) genBranch(br *ast.Branch) string {
	switch br.Kind {
	case ast.BranchReturn:
		if br.Expr != nil {
			return fmt.Sprintf("%sreturn %s;\n", g.pad(), g.genExpr(br.Expr))
		}

		return g.pad() + "return;\n"
	case ast.BranchBreak:
		return g.pad() + "break;\n"
	case ast.BranchContinue:
		return g.pad() + "continue;\n"
	default: // BranchDiscard, BranchKill
		return g.pad() + "discard;\n"
	}
}

func (g *Generator) genExpr(n ast.Node) string {
	switch t := n.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.Constant:
		return g.genConstant(t)
	case *ast.Unary:
		return g.genUnary(t)
	case *ast.Binary:
		return g.genBinary(t)
	case *ast.Selection:
		return fmt.Sprintf("(%s ? %s : %s)", g.genExpr(t.Cond), g.genExpr(t.Then), g.genExpr(t.Else))
	case *ast.Aggregate:
		return g.genAggregateExpr(t)
	default:
		return ""
	}
}

func (g *Generator) genConstant(c *ast.Constant) string {
	switch c.Type.Basic {
	case ast.Bool:
		if c.Value.Bool {
			return "true"
		}

		return "false"
	case ast.Int, ast.UInt:
		return fmt.Sprintf("%d", c.Value.Int)
	default:
		return formatFloat(c.Value.Float)
	}
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)

	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

func (g *Generator) genUnary(u *ast.Unary) string {
	operand := g.genExpr(u.Operand)

	switch u.Op {
	case ast.UnaryNeg:
		return "(-" + operand + ")"
	case ast.UnaryNot:
		return "(!" + operand + ")"
	case ast.UnaryPreInc:
		return "(++" + operand + ")"
	case ast.UnaryPreDec:
		return "(--" + operand + ")"
	case ast.UnaryPostInc:
		return "(" + operand + "++)"
	default:
		return "(" + operand + "--)"
	}
}

var binaryOpText = map[ast.BinaryOp]string{
	ast.BinAdd: "+", ast.BinSub: "-", ast.BinMul: "*", ast.BinDiv: "/", ast.BinMod: "%",
	ast.BinLt: "<", ast.BinLe: "<=", ast.BinGt: ">", ast.BinGe: ">=",
	ast.BinEq: "==", ast.BinNe: "!=", ast.BinAnd: "&&", ast.BinOr: "||",
	ast.BinAssign: "=",
}

func (g *Generator) genBinary(b *ast.Binary) string {
	switch b.Op {
	case ast.BinIndex:
		return fmt.Sprintf("%s[%s]", g.genExpr(b.LHS), g.genExpr(b.RHS))
	case ast.BinComma:
		return fmt.Sprintf("%s, %s", g.genExpr(b.LHS), g.genExpr(b.RHS))
	case ast.BinMul:
		return g.genMul(b)
	}

	op, ok := binaryOpText[b.Op]
	if !ok {
		op = "?"
	}

	if b.Op == ast.BinAssign {
		return fmt.Sprintf("%s = %s", g.genExpr(b.LHS), g.genExpr(b.RHS))
	}

	return fmt.Sprintf("(%s %s %s)", g.genExpr(b.LHS), op, g.genExpr(b.RHS))
}

// genMul renders "*". HLSL's mul(A,B) intrinsic already becomes a plain "*"
// at parse-to-call-site (see genCall's intrinsic lowering); this path
// handles the source-level "*" operator itself, which GLSL spells
// identically for vector/matrix combinations.
func (g *Generator) genMul(b *ast.Binary) string {
	return fmt.Sprintf("(%s * %s)", g.genExpr(b.LHS), g.genExpr(b.RHS))
}

func (g *Generator) genAggregateExpr(agg *ast.Aggregate) string {
	switch agg.Op {
	case ast.AggFunctionCall:
		return g.genCall(agg)
	case ast.AggConstructor:
		return g.genConstructor(agg)
	case ast.AggMember:
		return g.genExpr(agg.Children[0]) + agg.Name
	case ast.AggCommaList:
		return g.genArgs(agg.Children)
	default:
		return ""
	}
}

func (g *Generator) genArgs(args []ast.Node) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = g.genExpr(a)
	}

	return strings.Join(parts, ", ")
}

func (g *Generator) genCall(agg *ast.Aggregate) string {
	if lower, ok := intrinsicLowerers[agg.Name]; ok {
		return lower(g, agg)
	}

	return fmt.Sprintf("%s(%s)", agg.Name, g.genArgs(agg.Children))
}

// genConstructor renders a built-in-type constructor call or a matrix cast
// (spec §4.4, §4.6). A single-argument constructor whose target is a
// smaller square matrix than its argument is the "(float3x3)m4" truncation
// cast; everything else is an ordinary componentwise GLSL constructor.
func (g *Generator) genConstructor(agg *ast.Aggregate) string {
	if len(agg.Children) == 1 {
		argType := exprType(agg.Children[0])

		if agg.Type.IsMatrix() && argType.IsMatrix() && argType.Rows > agg.Type.Rows {
			return g.genMatrixTruncation(agg.Type, argType, agg.Children[0])
		}
	}

	return fmt.Sprintf("%s(%s)", glslTypeName(agg.Type, g.target), g.genArgs(agg.Children))
}

// genMatrixTruncation lowers a matrix-truncation cast, using the target's
// native mat3(m4)-style constructor where available and a dedicated helper
// elsewhere (spec §4.6).
func (g *Generator) genMatrixTruncation(dst, src ast.Type, operand ast.Node) string {
	arg := g.genExpr(operand)

	if g.target.HasNativeMatrixTruncation() {
		return fmt.Sprintf("%s(%s)", glslTypeName(dst, g.target), arg)
	}

	helperID := fmt.Sprintf("constructMat%d_%s", dst.Rows, mangleType(src))
	name := g.useHelper(helperID)

	return fmt.Sprintf("%s(%s)", name, arg)
}

// exprType recovers the type carried by n. Every IT node variant the parser
// produces already carries a fully resolved Type (spec invariant, §3); this
// mirrors frontend.typeOf for the subset codegen needs to inspect.
func exprType(n ast.Node) ast.Type {
	switch t := n.(type) {
	case *ast.Ident:
		return t.Type
	case *ast.Constant:
		return t.Type
	case *ast.Unary:
		return t.Type
	case *ast.Binary:
		return t.Type
	case *ast.Selection:
		return t.Type
	case *ast.Aggregate:
		return t.Type
	default:
		return ast.Scalar(ast.Void)
	}
}
