package codegen

import (
	"fmt"

	"github.com/coolc/cgen/internal/ast"
	"github.com/coolc/cgen/internal/asm"
	"github.com/coolc/cgen/internal/layout"
	"github.com/coolc/cgen/internal/symtab"
)

// genCase is the Case generator (spec §4.6.2): direct tag tests per listed
// branch, then ancestor-chain routing for every unlisted class, then a
// fallback to the no-matching-branch trampoline, then the branch bodies.
//
// Subtype routing walks the full ancestor chain to its closest listed
// ancestor (a deliberate widening of spec.md's single-level parent
// projection — see DESIGN.md), so a class two or more hops below a listed
// branch still routes correctly instead of falling through to
// case-without-branch.
func (c *Context) genCase(e ast.Case) {
	line := e.Line()
	c.caseVoidLines[line] = true

	c.Gen(e.Subject)
	c.Buf.Emit(asm.Bz{Reg: asm.Acc, Label: fmt.Sprintf("case_void_%d", line)})

	c.Buf.Emit(asm.St{Dest: asm.FP, Src: asm.Acc, Offset: 0})
	c.Buf.Emit(asm.Ld{Dest: asm.Acc, Src: asm.Acc, Offset: layout.TypeTagIndex})

	branchLabels := make(map[string]string, len(e.Branches))
	for _, branch := range e.Branches {
		label := "case_exp_for_" + branch.Type + "_" + c.nextBranchLabel()
		branchLabels[branch.Type] = label

		tag := c.Tags.Get(branch.Type)
		c.Buf.Emit(asm.Li{Dest: asm.Temp, Imm: tag})
		c.Buf.Emit(asm.Beq{Left: asm.Acc, Right: asm.Temp, Label: label})
	}

	for _, class := range c.Program.Classes.Classes() {
		if _, listed := branchLabels[class]; listed {
			continue
		}
		if ancestorLabel, ok := c.nearestRoutedAncestor(class, branchLabels); ok {
			tag := c.Tags.Get(class)
			c.Buf.Emit(asm.Li{Dest: asm.Temp, Imm: tag})
			c.Buf.Emit(asm.Beq{Left: asm.Acc, Right: asm.Temp, Label: ancestorLabel})
		}
	}

	c.Buf.Comment("no listed or routed branch matched", false)
	c.Buf.Emit(asm.Jmp{Label: fmt.Sprintf("case_without_branch_%d", line)})
	c.caseWithoutBranchLines[line] = true

	endLabel := "case_exp_end_" + c.nextBranchLabel()
	for _, branch := range e.Branches {
		c.Buf.Emit(asm.Label{Name: branchLabels[branch.Type]})

		c.Syms.PushScope()
		c.Syms.Insert(branch.Var, symtab.Offset(asm.FP, 0))
		c.Gen(branch.Body)
		c.Syms.PopScope()

		c.Buf.Emit(asm.Jmp{Label: endLabel})
	}

	c.Buf.Emit(asm.Label{Name: endLabel})
}

// nearestRoutedAncestor walks class's parent chain looking for the first
// ancestor with a listed branch label, returning it if found.
func (c *Context) nearestRoutedAncestor(class string, branchLabels map[string]string) (string, bool) {
	parent, ok := c.Program.Parents[class]
	for ok {
		if label, listed := branchLabels[parent]; listed {
			return label, true
		}
		parent, ok = c.Program.Parents[parent]
	}
	return "", false
}
