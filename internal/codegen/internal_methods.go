package codegen

import (
	"github.com/coolc/cgen/internal/ast"
	"github.com/coolc/cgen/internal/asm"
	"github.com/coolc/cgen/internal/layout"
)

// genInternal emits one built-in method body (spec §4.7 "Built-in method
// bodies"), named "Class.method". These stay in internal/codegen rather
// than internal/runtime because they need the expression generator, the
// symbol environment, and the string interner — all Context-held state the
// standalone runtime fragments (comparison handlers, error trampolines)
// never touch.
func (c *Context) genInternal(body string) {
	switch body {
	case "Object.abort":
		label := c.Strings.Insert(`abort\n`)
		c.Buf.Emit(asm.La{Dest: asm.Acc, Label: label})
		c.Buf.Emit(asm.Syscall{Name: "IO.out_string"})
		c.Buf.Emit(asm.Syscall{Name: "exit"})

	case "Object.type_name":
		c.Gen(ast.New{Type: "String"})
		c.Buf.Emit(asm.Ld{Dest: asm.Temp, Src: asm.Self, Offset: layout.VTableIndex})
		c.Buf.Comment("load object name", false)
		c.Buf.Emit(asm.Ld{Dest: asm.Temp, Src: asm.Temp, Offset: layout.VTableClassNameIndex})
		c.Buf.Emit(asm.St{Dest: asm.Acc, Src: asm.Temp, Offset: layout.AttributesStartIndex})

	case "Object.copy":
		loopStart := "object_copy_loop_start_" + c.nextBranchLabel()
		loopEnd := "object_copy_loop_end_" + c.nextBranchLabel()

		c.Buf.Emit(asm.Ld{Dest: asm.Temp, Src: asm.Self, Offset: layout.ObjectSizeIndex})
		c.Buf.Emit(asm.Alloc{Dest: asm.Acc, Src: asm.Temp})
		c.Buf.Comment("Push pointer to allocated memory onto stack.", false)
		c.Buf.Emit(asm.Push{Reg: asm.Acc})

		c.Buf.Emit(asm.Label{Name: loopStart})
		c.Buf.Emit(asm.Bz{Reg: asm.Temp, Label: loopEnd})
		c.Buf.Emit(asm.Ld{Dest: asm.Temp2, Src: asm.Self, Offset: 0})
		c.Buf.Emit(asm.St{Dest: asm.Acc, Src: asm.Temp2, Offset: 0})

		c.Buf.Emit(asm.Li{Dest: asm.Temp2, Imm: 1})
		c.Buf.Emit(asm.Add{Left: asm.Temp2, Right: asm.Self})
		c.Buf.Emit(asm.Add{Left: asm.Temp2, Right: asm.Acc})

		c.Buf.Emit(asm.Li{Dest: asm.Temp2, Imm: 1})
		c.Buf.Emit(asm.Sub{Left: asm.Temp2, Right: asm.Temp})
		c.Buf.Emit(asm.Jmp{Label: loopStart})

		c.Buf.Emit(asm.Label{Name: loopEnd})
		c.Buf.Emit(asm.Pop{Reg: asm.Acc})

	case "IO.out_int":
		c.genIdentifier("x")
		c.Buf.Comment("Load unboxed int.", false)
		c.Buf.Emit(asm.Ld{Dest: asm.Acc, Src: asm.Acc, Offset: layout.AttributesStartIndex})
		c.Buf.Emit(asm.Syscall{Name: body})
		c.Buf.Emit(asm.Mov{Dest: asm.Acc, Src: asm.Self})

	case "IO.in_int":
		c.Gen(ast.New{Type: "Int"})
		c.Buf.Emit(asm.Mov{Dest: asm.Temp, Src: asm.Acc})
		c.Buf.Emit(asm.Syscall{Name: body})
		c.Buf.Emit(asm.St{Dest: asm.Temp, Src: asm.Acc, Offset: layout.AttributesStartIndex})
		c.Buf.Emit(asm.Mov{Dest: asm.Acc, Src: asm.Temp})

	case "IO.out_string":
		c.genIdentifier("x")
		c.Buf.Comment("Load unboxed string", false)
		c.Buf.Emit(asm.Ld{Dest: asm.Acc, Src: asm.Acc, Offset: layout.AttributesStartIndex})
		c.Buf.Emit(asm.Syscall{Name: body})
		c.Buf.Comment("IO.out_string returns self.", false)
		c.Buf.Emit(asm.Mov{Dest: asm.Acc, Src: asm.Self})

	case "IO.in_string":
		c.Gen(ast.New{Type: "String"})
		c.Buf.Emit(asm.Mov{Dest: asm.Temp, Src: asm.Acc})
		c.Buf.Emit(asm.Syscall{Name: body})
		c.Buf.Emit(asm.St{Dest: asm.Temp, Src: asm.Acc, Offset: layout.AttributesStartIndex})
		c.Buf.Emit(asm.Mov{Dest: asm.Acc, Src: asm.Temp})

	case "String.length":
		c.Gen(ast.New{Type: "Int"})
		c.Buf.Emit(asm.Mov{Dest: asm.Temp, Src: asm.Acc})
		c.Buf.Emit(asm.Ld{Dest: asm.Acc, Src: asm.Self, Offset: layout.AttributesStartIndex})
		c.Buf.Emit(asm.Syscall{Name: body})
		c.Buf.Emit(asm.St{Dest: asm.Temp, Src: asm.Acc, Offset: layout.AttributesStartIndex})
		c.Buf.Emit(asm.Mov{Dest: asm.Acc, Src: asm.Temp})

	case "String.concat":
		c.Gen(ast.New{Type: "String"})
		c.Buf.Emit(asm.Mov{Dest: asm.Temp2, Src: asm.Acc})

		c.genIdentifier("s")
		c.Buf.Emit(asm.Ld{Dest: asm.Temp, Src: asm.Acc, Offset: layout.AttributesStartIndex})
		c.Buf.Emit(asm.Ld{Dest: asm.Acc, Src: asm.Self, Offset: layout.AttributesStartIndex})

		c.Buf.Emit(asm.Syscall{Name: body})
		c.Buf.Emit(asm.St{Dest: asm.Temp2, Src: asm.Acc, Offset: layout.AttributesStartIndex})
		c.Buf.Emit(asm.Mov{Dest: asm.Acc, Src: asm.Temp2})

	case "String.substr":
		c.Gen(ast.New{Type: "String"})
		c.Buf.Emit(asm.Mov{Dest: asm.Temp2, Src: asm.Acc})

		c.genIdentifier("l")
		c.Buf.Emit(asm.Mov{Dest: asm.Temp, Src: asm.Acc})
		c.Buf.Emit(asm.Ld{Dest: asm.Temp, Src: asm.Temp, Offset: layout.AttributesStartIndex})

		c.genIdentifier("i")
		c.Buf.Emit(asm.Ld{Dest: asm.Acc, Src: asm.Acc, Offset: layout.AttributesStartIndex})

		c.Buf.Emit(asm.Ld{Dest: asm.Self, Src: asm.Self, Offset: layout.AttributesStartIndex})
		c.Buf.Emit(asm.Syscall{Name: body})

		validLabel := "substr_valid_" + c.nextBranchLabel()
		c.Buf.Emit(asm.Bnz{Reg: asm.Acc, Label: validLabel})

		badLabel := c.Strings.Insert(`ERROR: substr out of range\n`)
		c.Buf.Emit(asm.La{Dest: asm.Acc, Label: badLabel})
		c.Buf.Emit(asm.Syscall{Name: "IO.out_string"})
		c.Buf.Emit(asm.Syscall{Name: "exit"})

		c.Buf.Emit(asm.Label{Name: validLabel})
		c.Buf.Emit(asm.St{Dest: asm.Temp2, Src: asm.Acc, Offset: layout.AttributesStartIndex})
		c.Buf.Emit(asm.Mov{Dest: asm.Acc, Src: asm.Temp2})
	}
}
