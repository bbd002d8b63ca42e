package codegen

import (
	"strings"

	"github.com/coolc/cgen/internal/ast"
	"github.com/coolc/cgen/internal/asm"
	"github.com/coolc/cgen/internal/layout"
)

// emitVTables emits every class's vtable (spec §4.5, §3 "VTable layout"):
// slot 0 the class-name string, slot 1 the constructor label, slot 2+ the
// methods visible on the class in implementation-map insertion order.
func (c *Context) emitVTables() {
	c.Buf.Comment("VTABLES", true)
	entriesByClass := c.groupEntriesByClass()

	for _, cls := range c.Program.Classes.Classes() {
		c.Buf.Emit(asm.Label{Name: cls + "..vtable"})

		nameLabel := c.Strings.Insert(cls)
		c.Buf.Emit(asm.ConstantLabel{Label: nameLabel})
		c.Buf.Emit(asm.ConstantLabel{Label: cls + "..new"})
		c.Methods.Insert(cls, "new")

		for _, key := range entriesByClass[cls] {
			method, _ := c.Program.Implementations.Get(key)
			if internal, ok := method.Body.(ast.Internal); ok {
				c.Buf.Emit(asm.ConstantLabel{Label: internal.Body})
				parts := strings.SplitN(internal.Body, ".", 2)
				c.Methods.Insert(cls, parts[len(parts)-1])
			} else {
				c.Buf.Emit(asm.ConstantLabel{Label: cls + "." + key.Method})
				c.Methods.Insert(cls, key.Method)
			}
		}

		c.Methods.ResetCursor()
	}
}

// groupEntriesByClass buckets implementation-map entries by class while
// preserving each bucket's relative insertion order (spec §3's vtable
// order contract).
func (c *Context) groupEntriesByClass() map[string][]ast.MethodKey {
	groups := make(map[string][]ast.MethodKey)
	for _, key := range c.Program.Implementations.Entries() {
		groups[key.Class] = append(groups[key.Class], key)
	}
	return groups
}

// emitConstructors emits every class's Class..new (spec §4.5): allocate the
// object, stamp its header, initialize each attribute per the attribute
// initialization policy, and return it in the accumulator.
func (c *Context) emitConstructors() {
	c.Buf.Comment("CONSTRUCTORS", true)
	c.Buf.Comment("object will be in accumulator.", true)

	for _, cls := range c.Program.Classes.Classes() {
		attrs := c.Program.Classes.Attributes(cls)
		c.Buf.Emit(asm.Label{Name: cls + "..new"})
		c.Target.ConstructorPrologue(c.Buf)

		size := layout.ObjectSize(len(attrs))
		c.Buf.Comment("allocating memory for object layout", false)
		c.Buf.Emit(asm.Li{Dest: asm.Self, Imm: size})
		c.Buf.Emit(asm.Alloc{Dest: asm.Self, Src: asm.Self})

		tag := c.Tags.Insert(cls)
		c.Buf.Emit(asm.Li{Dest: asm.Temp, Imm: tag})
		c.Buf.Emit(asm.St{Dest: asm.Self, Src: asm.Temp, Offset: layout.TypeTagIndex})

		c.Buf.Emit(asm.Li{Dest: asm.Temp, Imm: size})
		c.Buf.Emit(asm.St{Dest: asm.Self, Src: asm.Temp, Offset: layout.ObjectSizeIndex})

		c.Buf.Emit(asm.La{Dest: asm.Temp, Label: cls + "..vtable"})
		c.Buf.Emit(asm.St{Dest: asm.Self, Src: asm.Temp, Offset: layout.VTableIndex})

		for i, attr := range attrs {
			idx := layout.AttributesStartIndex + i
			switch {
			case attr.Initializer != nil:
				c.Gen(attr.Initializer)
			case attr.Type == "Unboxed_Int":
				c.Buf.Emit(asm.Li{Dest: asm.Acc, Imm: 0})
			case attr.Type == "Unboxed_String":
				c.Buf.Emit(asm.La{Dest: asm.Acc, Label: "the.empty.string"})
			default:
				c.Gen(ast.New{Type: attr.Type})
			}
			c.Buf.Emit(asm.St{Dest: asm.Self, Src: asm.Acc, Offset: idx})
		}

		c.Buf.Emit(asm.Mov{Dest: asm.Acc, Src: asm.Self})
		c.Target.ConstructorEpilogue(c.Buf)
	}
}
