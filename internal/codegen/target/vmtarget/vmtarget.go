// Package vmtarget implements the stack-machine calling convention
// (spec §1 "VM-asm"): the callee is responsible for popping its own
// arguments, and the return address lives in a dedicated register rather
// than on the stack frame itself.
package vmtarget

import (
	"github.com/coolc/cgen/internal/asm"
)

const (
	acc   = asm.Acc
	self  = asm.Self
	temp  = asm.Temp
	ra    = asm.RA
	fp    = asm.FP
	sp    = asm.SP
)

// Target is the VM-asm calling convention.
type Target struct{}

// New returns the VM-asm target.
func New() *Target { return &Target{} }

func (*Target) Name() string { return "vm" }

func (*Target) ConstructorPrologue(buf *asm.Buffer) {
	buf.Emit(asm.Mov{Dest: fp, Src: sp})
	buf.Emit(asm.Push{Reg: ra})
}

func (*Target) ConstructorEpilogue(buf *asm.Buffer) {
	buf.Comment("cleanup stuff", false)
	buf.Emit(asm.Pop{Reg: ra})
	buf.Emit(asm.Return{})
}

func (*Target) FunctionPrologue(buf *asm.Buffer, temporariesNeeded int) {
	buf.Comment("FUNCTION START", false)
	buf.Emit(asm.Mov{Dest: fp, Src: sp})
	buf.Comment("Presumably, caller has pushed arguments, then receiver object on stack.", false)
	buf.Comment("Load receiver object into self (receiver object is on top of stack).", false)
	buf.Emit(asm.Pop{Reg: self})

	buf.Comment("Stack room for temporaries", false)
	// +1 because popping self already consumed one word of headroom.
	buf.Emit(asm.Li{Dest: temp, Imm: temporariesNeeded + 1})
	buf.Emit(asm.Sub{Left: temp, Right: sp})
	buf.Emit(asm.Push{Reg: ra})
}

func (*Target) FunctionEpilogue(buf *asm.Buffer, numArgs, temporariesNeeded int) {
	buf.Comment("FUNCTION CLEANUP", false)
	buf.Emit(asm.Pop{Reg: ra})
	buf.Emit(asm.Li{Dest: temp, Imm: numArgs + temporariesNeeded + 1})
	buf.Emit(asm.Add{Left: temp, Right: sp})
	buf.Emit(asm.Return{})
}

func (*Target) FormalOffset(numArgs, index int) int {
	// +1 for the receiver object, +1 to land on the argument itself.
	return numArgs - index + 2
}

func (*Target) CleanupDispatchAfterCall(buf *asm.Buffer, argCount int) {
	// The callee already restored sp (it adjusted sp in its own epilogue).
}

func (*Target) CleanupComparisonAfterCall(buf *asm.Buffer) {
	// Same story: the handler cleans up its own three argument slots.
}
