package codegen

import (
	"fmt"

	"github.com/coolc/cgen/internal/ast"
	"github.com/coolc/cgen/internal/asm"
	"github.com/coolc/cgen/internal/layout"
)

// genDispatch is the Dispatch generator shared by dynamic, static, and self
// dispatch (spec §4.6.1). receiver is nil for self dispatch. vtableLabelType
// is non-empty only for static dispatch, where it names the class whose
// vtable label to load directly rather than the receiver's runtime vtable.
// classForLookup names the class whose method index resolves method: the
// receiver's annotated static type for dynamic dispatch, the explicit type
// for static dispatch, or the enclosing class for self dispatch.
func (c *Context) genDispatch(line int, receiver ast.Expr, vtableLabelType, classForLookup, method string, args []ast.Expr) {
	c.Buf.Emit(asm.Push{Reg: asm.FP})
	c.Buf.Emit(asm.Push{Reg: asm.Self})

	for _, arg := range args {
		c.Gen(arg)
		c.Buf.Comment("Push argument on the stack.", false)
		c.Buf.Emit(asm.Push{Reg: asm.Acc})
	}

	if receiver != nil {
		c.Gen(receiver)
		nonVoidLabel := "non_void_" + c.nextBranchLabel()
		c.Buf.Emit(asm.Bnz{Reg: asm.Acc, Label: nonVoidLabel})
		c.dispatchVoidLines[line] = true
		c.Buf.Emit(asm.Jmp{Label: fmt.Sprintf("dispatch_void_%d", line)})
		c.Buf.Emit(asm.Label{Name: nonVoidLabel})
	} else {
		c.Buf.Comment("Move receiver to accumulator.", false)
		c.Buf.Emit(asm.Mov{Dest: asm.Acc, Src: asm.Self})
	}

	c.Buf.Comment("Push receiver on the stack.", false)
	c.Buf.Emit(asm.Push{Reg: asm.Acc})

	c.Buf.Comment("Loading vtable.", false)
	if vtableLabelType != "" {
		c.Buf.Emit(asm.La{Dest: asm.Temp, Label: vtableLabelType + "..vtable"})
	} else {
		c.Buf.Emit(asm.Ld{Dest: asm.Temp, Src: asm.Acc, Offset: layout.VTableIndex})
	}

	idx, _ := c.Methods.Lookup(classForLookup, method)
	c.Buf.Comment(fmt.Sprintf("%s.%s lives at vindex %d, loading the address.", classForLookup, method, idx), false)
	c.Buf.Emit(asm.Ld{Dest: asm.Temp, Src: asm.Temp, Offset: idx})
	c.Buf.Comment("Indirectly call the method.", false)
	c.Buf.Emit(asm.CallReg{Reg: asm.Temp})

	c.Target.CleanupDispatchAfterCall(c.Buf, len(args))

	c.Buf.Emit(asm.Pop{Reg: asm.Self})
	c.Buf.Emit(asm.Pop{Reg: asm.FP})
}
