// Package codegen is the target-agnostic core: the Object/VTable Layout
// Engine and the Expression Code Generator (spec §4.5, §4.6), threaded
// through one Context per generation run. Everything that differs between
// VM-asm and x86-asm is delegated to a target.Target (codegen/target).
package codegen

import (
	"fmt"
	"sort"

	"github.com/coolc/cgen/internal/ast"
	"github.com/coolc/cgen/internal/asm"
	"github.com/coolc/cgen/internal/classindex"
	"github.com/coolc/cgen/internal/codegen/target"
	"github.com/coolc/cgen/internal/runtime"
	"github.com/coolc/cgen/internal/symtab"
)

// Context owns every piece of mutable state a generation run touches
// (spec §5: "no shared mutable state beyond" this list). It is built once
// per target and never shared across goroutines.
type Context struct {
	Program *ast.Program
	Target  target.Target

	Tags    *classindex.Tags
	Strings *classindex.Interner
	Methods *classindex.MethodIndex
	Syms    *symtab.SymTab
	Buf     *asm.Buffer

	currentClass      string
	branchCounter     int
	temporaryIndex    int
	temporariesNeeded int

	dispatchVoidLines      map[int]bool
	caseVoidLines          map[int]bool
	caseWithoutBranchLines map[int]bool
	divideByZeroLines      map[int]bool
}

// PrimeBuiltins attaches the hidden val attributes Int, Bool, and String
// carry (spec §2) to prog's class map. It is idempotent — safe to call
// more than once on the same Program — but still not safe to call
// concurrently: callers that generate more than one target from the same
// *ast.Program must call this exactly once, before fanning out per-target
// Contexts. NewContext itself does not do this priming, since running it
// from concurrent per-target goroutines would race on the underlying
// ClassMap.
func PrimeBuiltins(prog *ast.Program) {
	primeHiddenAttribute(prog, "Int", "val", "Unboxed_Int")
	primeHiddenAttribute(prog, "Bool", "val", "Unboxed_Int")
	primeHiddenAttribute(prog, "String", "val", "Unboxed_String")
}

func primeHiddenAttribute(prog *ast.Program, class, name, typ string) {
	for _, attr := range prog.Classes.Attributes(class) {
		if attr.Name == name {
			return
		}
	}
	prog.Classes.AppendAttribute(class, &ast.Attribute{Name: name, Type: typ})
}

// NewContext returns a Context ready to run Generate for tgt. prog must
// already have had PrimeBuiltins called on it.
func NewContext(prog *ast.Program, tgt target.Target) *Context {
	return &Context{
		Program:                prog,
		Target:                 tgt,
		Tags:                   classindex.NewTags(),
		Strings:                classindex.NewInterner(),
		Methods:                classindex.NewMethodIndex(),
		Syms:                   symtab.New(),
		Buf:                    asm.NewBuffer(),
		dispatchVoidLines:      make(map[int]bool),
		caseVoidLines:          make(map[int]bool),
		caseWithoutBranchLines: make(map[int]bool),
		divideByZeroLines:      make(map[int]bool),
	}
}

// Generate runs the full emission pipeline described in spec §2's control
// flow, returning the completed instruction buffer.
func (c *Context) Generate() (*asm.Buffer, error) {
	c.emitVTables()
	c.emitConstructors()
	c.emitMethods()

	dispatchVoidLines := sortedLines(c.dispatchVoidLines)
	caseVoidLines := sortedLines(c.caseVoidLines)
	caseWithoutBranchLines := sortedLines(c.caseWithoutBranchLines)
	divideByZeroLines := sortedLines(c.divideByZeroLines)

	dispatchVoidMsgs := internLines(c.Strings, dispatchVoidLines, runtime.DispatchVoidMessage)
	caseVoidMsgs := internLines(c.Strings, caseVoidLines, runtime.CaseVoidMessage)
	caseWithoutBranchMsgs := internLines(c.Strings, caseWithoutBranchLines, runtime.CaseWithoutBranchMessage)
	divideByZeroMsgs := internLines(c.Strings, divideByZeroLines, runtime.DivideByZeroMessage)

	c.Buf.Comment("STRING CONSTANTS", true)
	for _, entry := range c.Strings.Sorted() {
		c.Buf.Emit(asm.Label{Name: entry.Label})
		c.Buf.Emit(asm.ConstantString{Value: entry.Value})
	}
	c.Buf.Emit(asm.Label{Name: "the.empty.string"})
	c.Buf.Emit(asm.ConstantString{Value: ""})

	c.Buf.Comment("ERROR TRAMPOLINES", true)
	for _, line := range dispatchVoidLines {
		runtime.EmitDispatchVoid(c.Buf, line, dispatchVoidMsgs[line])
	}
	for _, line := range caseVoidLines {
		runtime.EmitCaseVoid(c.Buf, line, caseVoidMsgs[line])
	}
	for _, line := range caseWithoutBranchLines {
		runtime.EmitCaseWithoutBranch(c.Buf, line, caseWithoutBranchMsgs[line])
	}
	for _, line := range divideByZeroLines {
		runtime.EmitDivideByZero(c.Buf, line, divideByZeroMsgs[line])
	}

	c.Buf.Comment("COMPARISON HANDLERS", true)
	runtime.EmitComparisonHandler(c.Buf, c.Target, runtime.Lt)
	runtime.EmitComparisonHandler(c.Buf, c.Target, runtime.Le)
	runtime.EmitComparisonHandler(c.Buf, c.Target, runtime.Eq)

	if dups := c.Buf.DuplicateLabels(); len(dups) > 0 {
		return nil, fmt.Errorf("codegen: duplicate labels emitted: %v", dups)
	}

	c.emitStart()
	return c.Buf, nil
}

func sortedLines(set map[int]bool) []int {
	lines := make([]int, 0, len(set))
	for line := range set {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}

// internLines interns format(line) for every line, returning a line->label map.
func internLines(in *classindex.Interner, lines []int, format func(int) string) map[int]string {
	labels := make(map[int]string, len(lines))
	for _, line := range lines {
		labels[line] = in.Insert(format(line))
	}
	return labels
}

func (c *Context) nextBranchLabel() string {
	c.branchCounter++
	return fmt.Sprintf("branch_%d", c.branchCounter)
}

func (c *Context) emitStart() {
	c.Buf.Comment("PROGRAM STARTS HERE", true)
	c.Buf.Emit(asm.Label{Name: "start"})
	c.Buf.Emit(asm.CallLabel{Label: "Main..new"})
	c.Buf.Comment("Push receiver (in accumulator, from Main..new) on stack.", false)
	c.Buf.Emit(asm.Push{Reg: asm.Acc})
	c.Buf.Emit(asm.CallLabel{Label: "Main.main"})
	c.Buf.Emit(asm.Syscall{Name: "exit"})
}
