package asm

import (
	"fmt"
	"strings"
)

// prefix is the four-tab indent spec §6 mandates for every non-label,
// non-comment line.
const prefix = "\t\t\t\t"

// Render serializes the buffer to VM-asm/x86-asm text (the two targets are
// line-for-line isomorphic except for the calling-convention instructions
// the target itself chose to emit — Render has no target-specific logic).
// includeComments/includeDebug gate the `c`/`d` driver flags (spec §6).
func Render(b *Buffer, includeComments, includeDebug bool) string {
	var out strings.Builder
	for _, instr := range b.instrs {
		switch v := instr.(type) {
		case Comment:
			if !includeComments {
				continue
			}
			out.WriteString(renderComment(v))
		case Debug:
			if !includeDebug {
				continue
			}
			out.WriteString(fmt.Sprintf("debug %s\n", v.Reg))
			continue
		case Label:
			out.WriteString(v.Name + ":\n")
			continue
		default:
			out.WriteString(prefix)
			out.WriteString(renderLine(instr))
			out.WriteString("\n")
			continue
		}
		out.WriteString("\n")
	}
	return out.String()
}

func renderComment(c Comment) string {
	if c.NotTabbed {
		return ";;\t" + c.Text
	}
	return prefix + ";;\t" + c.Text
}

func renderLine(instr Instr) string {
	switch v := instr.(type) {
	case Li:
		return fmt.Sprintf("li %s <- %d", v.Dest, v.Imm)
	case Mov:
		return fmt.Sprintf("mov %s <- %s", v.Dest, v.Src)
	case Add:
		return fmt.Sprintf("add %s <- %s %s", v.Right, v.Right, v.Left)
	case Sub:
		return fmt.Sprintf("sub %s <- %s %s", v.Right, v.Right, v.Left)
	case Mul:
		return fmt.Sprintf("mul %s <- %s %s", v.Right, v.Right, v.Left)
	case Div:
		return fmt.Sprintf("div %s <- %s %s", v.Right, v.Right, v.Left)
	case Ld:
		return fmt.Sprintf("ld %s <- %s[%d]", v.Dest, v.Src, v.Offset)
	case St:
		return fmt.Sprintf("st %s[%d] <- %s", v.Dest, v.Offset, v.Src)
	case La:
		return fmt.Sprintf("la %s <- %s", v.Dest, v.Label)
	case Jmp:
		return fmt.Sprintf("jmp %s", v.Label)
	case Bz:
		return fmt.Sprintf("bz %s %s", v.Reg, v.Label)
	case Bnz:
		return fmt.Sprintf("bnz %s %s", v.Reg, v.Label)
	case Beq:
		return fmt.Sprintf("beq %s %s %s", v.Left, v.Right, v.Label)
	case Blt:
		return fmt.Sprintf("blt %s %s %s", v.Left, v.Right, v.Label)
	case Ble:
		return fmt.Sprintf("ble %s %s %s", v.Left, v.Right, v.Label)
	case CallLabel:
		return fmt.Sprintf("call %s", v.Label)
	case CallReg:
		return fmt.Sprintf("call %s", v.Reg)
	case Return:
		return "return"
	case Push:
		return fmt.Sprintf("push %s", v.Reg)
	case Pop:
		return fmt.Sprintf("pop %s", v.Reg)
	case Alloc:
		return fmt.Sprintf("alloc %s %s", v.Dest, v.Src)
	case ConstantString:
		// Emitted verbatim, not Go-escaped: spec §4.2 requires escape
		// sequences in a string constant to reach the assembler unchanged.
		return fmt.Sprintf("constant \"%s\"", v.Value)
	case ConstantLabel:
		return fmt.Sprintf("constant %s", v.Label)
	case Syscall:
		return fmt.Sprintf("syscall %s", v.Name)
	default:
		panic(fmt.Sprintf("asm: unhandled instruction in renderLine: %#v", instr))
	}
}
