// Package x86target implements the frame-pointer-discipline calling
// convention (spec §1 "x86-asm"): the return address is an extra slot
// between the frame pointer and the pushed arguments, and the caller (not
// the callee) is responsible for removing argument slots after a call.
package x86target

import "github.com/coolc/cgen/internal/asm"

const (
	self = asm.Self
	temp = asm.Temp
	fp   = asm.FP
	sp   = asm.SP
)

// Target is the x86-asm calling convention.
type Target struct{}

// New returns the x86-asm target.
func New() *Target { return &Target{} }

func (*Target) Name() string { return "x86" }

func (*Target) ConstructorPrologue(buf *asm.Buffer) {
	buf.Emit(asm.Push{Reg: fp}) // stack pointer will be set to this later
	buf.Emit(asm.Mov{Dest: fp, Src: sp})
	buf.Comment("stack offset for 16 byte alignment", false)
	buf.Emit(asm.Li{Dest: temp, Imm: 1})
	buf.Emit(asm.Sub{Left: temp, Right: sp})
}

func (*Target) ConstructorEpilogue(buf *asm.Buffer) {
	buf.Comment("cleanup stuff", false)
	buf.Emit(asm.Mov{Dest: sp, Src: fp})
	buf.Emit(asm.Pop{Reg: fp})
	buf.Emit(asm.Return{})
}

func (*Target) FunctionPrologue(buf *asm.Buffer, temporariesNeeded int) {
	buf.Comment("IN X86 - RETURN ADDRESS HAD BETTER BE BEFORE THIS FRAME POINTER", false)
	buf.Emit(asm.Push{Reg: fp})
	buf.Emit(asm.Mov{Dest: fp, Src: sp})
	// sp[0] is the pushed fp and sp[1] the return address, so the receiver
	// is at sp[2].
	buf.Emit(asm.Ld{Dest: self, Src: sp, Offset: 2})

	buf.Comment("Temporaries", false)
	buf.Emit(asm.Li{Dest: temp, Imm: temporariesNeeded})
	buf.Emit(asm.Sub{Left: temp, Right: sp})
}

func (*Target) FunctionEpilogue(buf *asm.Buffer, numArgs, temporariesNeeded int) {
	buf.Comment("FUNCTION CLEANUP", false)
	buf.Emit(asm.Mov{Dest: sp, Src: fp})
	buf.Emit(asm.Pop{Reg: fp})
	buf.Emit(asm.Return{})
}

func (*Target) FormalOffset(numArgs, index int) int {
	// +1 pushed fp, +1 return address, +1 to land on the argument itself.
	return numArgs - index + 3
}

func (*Target) CleanupDispatchAfterCall(buf *asm.Buffer, argCount int) {
	buf.Comment("x86 - clean up stack.", false)
	buf.Emit(asm.Li{Dest: temp, Imm: argCount + 1})
	buf.Emit(asm.Add{Left: temp, Right: sp})
}

func (*Target) CleanupComparisonAfterCall(buf *asm.Buffer) {
	buf.Comment("x86 - deallocate two args and self.", false)
	buf.Emit(asm.Li{Dest: temp, Imm: 3})
	buf.Emit(asm.Add{Left: temp, Right: sp})
}
