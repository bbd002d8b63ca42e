package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolc/cgen/internal/asm"
	"github.com/coolc/cgen/internal/ast"
	"github.com/coolc/cgen/internal/codegen/target/vmtarget"
)

// buildTestProgram returns a small hierarchy (Object <- A <- B <- C, and
// Main <- Object) exercising ancestor-chain case routing, a divide whose
// trampoline must be wired, and a self-dispatch call.
func buildTestProgram() *ast.Program {
	classes := ast.NewClassMap()
	for _, cls := range []string{"Object", "A", "B", "C", "Main"} {
		classes.Declare(cls)
	}

	parents := ast.ParentMap{
		"A":    "Object",
		"B":    "A",
		"C":    "B",
		"Main": "Object",
	}

	impls := ast.NewImplMap()
	impls.Append(ast.MethodKey{Class: "Main", Method: "helper"}, &ast.Method{
		Formals: nil,
		Body:    ast.Divide{Left: ast.IntLiteral{Value: 10}, Right: ast.IntLiteral{Value: 0}},
	})
	impls.Append(ast.MethodKey{Class: "Main", Method: "main"}, &ast.Method{
		Formals: nil,
		Body: ast.Let{
			Bindings: []*ast.LetBinding{
				{Name: "x", Type: "C", Init: ast.New{Type: "C"}},
			},
			Body: ast.Block{Body: []ast.Expr{
				ast.SelfDispatch{Method: "helper", Args: nil},
				ast.Case{
					Subject: ast.Identifier{Name: "x"},
					Branches: []*ast.CaseBranch{
						{Var: "a", Type: "A", Body: ast.IntLiteral{Value: 1}},
					},
				},
			}},
		},
	})

	return &ast.Program{
		Classes:         classes,
		Implementations: impls,
		Parents:         parents,
		DirectMethods:   ast.DirectMethods{},
	}
}

func generate(t *testing.T) *asm.Buffer {
	t.Helper()
	prog := buildTestProgram()
	PrimeBuiltins(prog)
	ctx := NewContext(prog, vmtarget.New())
	buf, err := ctx.Generate()
	require.NoError(t, err)
	return buf
}

func TestGenerate_IsDeterministicAcrossRuns(t *testing.T) {
	first := asm.Render(generate(t), true, true)
	second := asm.Render(generate(t), true, true)
	assert.Equal(t, first, second)
}

func TestGenerate_ProducesNoDuplicateLabels(t *testing.T) {
	buf := generate(t)
	assert.Empty(t, buf.DuplicateLabels())
}

func TestGenerate_CaseRoutesDoublyRemovedSubclassToListedAncestor(t *testing.T) {
	prog := buildTestProgram()
	PrimeBuiltins(prog)
	ctx := NewContext(prog, vmtarget.New())
	buf, err := ctx.Generate()
	require.NoError(t, err)

	var target string
	for _, instr := range buf.Instrs() {
		if lbl, ok := instr.(asm.Label); ok && len(lbl.Name) > len("case_exp_for_A_") && lbl.Name[:len("case_exp_for_A_")] == "case_exp_for_A_" {
			target = lbl.Name
		}
	}
	require.NotEmpty(t, target, "expected a case_exp_for_A_* branch label")

	tags := ctx.Tags.All()
	routedTags := map[int]bool{}
	instrs := buf.Instrs()
	for i, instr := range instrs {
		if li, ok := instr.(asm.Li); ok && i+1 < len(instrs) {
			if beq, ok := instrs[i+1].(asm.Beq); ok && beq.Label == target {
				routedTags[li.Imm] = true
			}
		}
	}

	assert.True(t, routedTags[tags["A"]], "A itself must route to its own branch")
	assert.True(t, routedTags[tags["B"]], "B (direct child of A) must route via ancestor chain")
	assert.True(t, routedTags[tags["C"]], "C (grandchild of A) must route via ancestor chain, not fall through")
}

func TestGenerate_DivideEmitsItsOwnTrampoline(t *testing.T) {
	buf := generate(t)
	var found bool
	for _, instr := range buf.Instrs() {
		if lbl, ok := instr.(asm.Label); ok && lbl.Name != "" && len(lbl.Name) >= len("divide_by_zero_") && lbl.Name[:len("divide_by_zero_")] == "divide_by_zero_" {
			found = true
		}
	}
	assert.True(t, found, "expected a divide_by_zero_<line> trampoline label")
}

func TestPrimeBuiltins_IsIdempotent(t *testing.T) {
	prog := buildTestProgram()
	PrimeBuiltins(prog)
	PrimeBuiltins(prog)
	PrimeBuiltins(prog)

	for _, cls := range []string{"Int", "Bool", "String"} {
		attrs := prog.Classes.Attributes(cls)
		require.Len(t, attrs, 1, "class %s must carry exactly one hidden val attribute", cls)
		assert.Equal(t, "val", attrs[0].Name)
	}
}

func TestGenerate_TagsAreStableReservedPlusMonotonicUser(t *testing.T) {
	prog := buildTestProgram()
	PrimeBuiltins(prog)
	ctx := NewContext(prog, vmtarget.New())
	_, err := ctx.Generate()
	require.NoError(t, err)

	tags := ctx.Tags.All()
	assert.Equal(t, 0, tags["Object"])
	assert.Equal(t, 5, tags["Main"])

	seen := map[int]bool{}
	for _, tag := range tags {
		assert.False(t, seen[tag], "duplicate tag %d", tag)
		seen[tag] = true
	}
}

func TestGenerate_VTableOrderMatchesClassDeclarationOrder(t *testing.T) {
	buf := generate(t)
	var order []string
	for _, instr := range buf.Instrs() {
		if lbl, ok := instr.(asm.Label); ok && len(lbl.Name) > len("..vtable") &&
			lbl.Name[len(lbl.Name)-len("..vtable"):] == "..vtable" {
			order = append(order, lbl.Name[:len(lbl.Name)-len("..vtable")])
		}
	}
	require.GreaterOrEqual(t, len(order), 5)
	assert.Equal(t, []string{"Object", "A", "B", "C", "Main"}, order[:5])
}
