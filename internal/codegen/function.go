package codegen

import (
	"github.com/coolc/cgen/internal/asm"
	"github.com/coolc/cgen/internal/layout"
	"github.com/coolc/cgen/internal/symtab"
)

// emitMethods emits every implementation-map entry's body (spec §4.5
// "METHODS" section): a label, a target-specific prologue, the attribute
// and formal bindings a method body can reference, the code-genned body
// itself, and a target-specific epilogue. Built-in method bodies (whose
// Method.Body is ast.Internal) go through exactly the same shape — only
// Gen's Internal case treats them differently.
func (c *Context) emitMethods() {
	c.Buf.Comment("METHODS", true)

	for _, key := range c.Program.Implementations.Entries() {
		method, _ := c.Program.Implementations.Get(key)
		c.currentClass = key.Class
		numArgs := len(method.Formals)

		c.Buf.Emit(asm.Label{Name: key.Class + "." + key.Method})

		c.temporariesNeeded = computeMaxStackDepth(method.Body)
		c.Target.FunctionPrologue(c.Buf, c.temporariesNeeded)

		c.Syms.PushScope()

		c.Buf.Comment("Setting up addresses for attributes (based off offsets from self reg)", false)
		for i, attr := range c.Program.Classes.Attributes(key.Class) {
			idx := layout.AttributesStartIndex + i
			c.Syms.Insert(attr.Name, symtab.Offset(asm.Self, idx))
		}

		c.Buf.Comment("Getting args.", false)
		for i, formal := range method.Formals {
			offset := c.Target.FormalOffset(numArgs, i+1)
			c.Syms.Insert(formal, symtab.Offset(asm.FP, offset))
		}

		c.Buf.Comment("start code-genning method body", false)
		c.Gen(method.Body)
		c.Buf.Comment("done code-genning method body", false)

		c.Target.FunctionEpilogue(c.Buf, numArgs, c.temporariesNeeded)
		c.Syms.PopScope()
		c.temporaryIndex = 0
	}
}
