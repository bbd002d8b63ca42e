package runtime

import (
	"github.com/coolc/cgen/internal/asm"
	"github.com/coolc/cgen/internal/classindex"
	"github.com/coolc/cgen/internal/codegen/target"
	"github.com/coolc/cgen/internal/layout"
)

// Relation identifies which of the three shared comparison handlers to
// emit (spec §4.7).
type Relation int

const (
	Lt Relation = iota
	Le
	Eq
)

func (r Relation) label() string {
	switch r {
	case Lt:
		return "lt_handler"
	case Le:
		return "le_handler"
	default:
		return "eq_handler"
	}
}

const (
	acc   = asm.Acc
	self  = asm.Self
	temp  = asm.Temp
	temp2 = asm.Temp2
	fp    = asm.FP
)

// EmitComparisonHandler emits one of the three shared handlers as seven
// concatenated fragments (spec §4.7), in this order: prologue, bool-arm,
// int-arm, string-arm, true-arm, false-arm, epilogue; the Eq handler has an
// extra identity-arm between string-arm and true-arm. Each handler receives two boxed
// operands and a receiver and returns a boxed Bool in the accumulator.
func EmitComparisonHandler(buf *asm.Buffer, tgt target.Target, rel Relation) {
	name := rel.label()
	boolArm := "bool_arm_" + name
	intArm := "int_arm_" + name
	stringArm := "string_arm_" + name
	identityArm := "identity_arm_" + name
	trueArm := "true_arm_" + name
	falseArm := "false_arm_" + name
	end := "end_" + name

	buf.Emit(asm.Label{Name: name})
	buf.Comment(name+" prologue", false)
	// --- prologue ---
	tgt.FunctionPrologue(buf, 0)
	buf.Emit(asm.Ld{Dest: temp, Src: fp, Offset: tgt.FormalOffset(2, 1)})
	rightOperand := asm.Ld{Dest: temp2, Src: fp, Offset: tgt.FormalOffset(2, 2)}

	buf.Comment("dispatch on left operand's type tag", false)
	buf.Emit(asm.Ld{Dest: acc, Src: temp, Offset: layout.TypeTagIndex})
	emitTagBranch(buf, classindex.BoolTag, boolArm)
	emitTagBranch(buf, classindex.IntTag, intArm)
	emitTagBranch(buf, classindex.StringTag, stringArm)
	if rel == Eq {
		buf.Emit(asm.Jmp{Label: identityArm})
	} else {
		buf.Emit(asm.Jmp{Label: falseArm})
	}

	// --- bool-arm ---
	buf.Emit(asm.Label{Name: boolArm})
	buf.Comment("Bool.val is an Unboxed_Int, same comparison as int-arm", false)
	buf.Emit(asm.Jmp{Label: intArm})

	// --- int-arm ---
	buf.Emit(asm.Label{Name: intArm})
	buf.Emit(rightOperand)
	buf.Emit(asm.Ld{Dest: acc, Src: temp, Offset: layout.AttributesStartIndex})
	buf.Emit(asm.Ld{Dest: temp, Src: temp2, Offset: layout.AttributesStartIndex})
	emitRelationBranch(buf, rel, acc, temp, trueArm)
	buf.Emit(asm.Jmp{Label: falseArm})

	// --- string-arm ---
	buf.Emit(asm.Label{Name: stringArm})
	buf.Emit(rightOperand)
	buf.Emit(asm.Ld{Dest: acc, Src: temp, Offset: layout.AttributesStartIndex})
	buf.Emit(asm.Ld{Dest: temp2, Src: temp2, Offset: layout.AttributesStartIndex})
	buf.Emit(asm.Syscall{Name: "string_compare"})
	buf.Comment("string_compare leaves -1/0/1 in the accumulator", false)
	buf.Emit(asm.Mov{Dest: temp, Src: acc})
	buf.Emit(asm.Li{Dest: acc, Imm: 0})
	emitRelationBranch(buf, rel, temp, acc, trueArm)
	buf.Emit(asm.Jmp{Label: falseArm})

	if rel == Eq {
		buf.Emit(asm.Label{Name: identityArm})
		buf.Emit(rightOperand)
		buf.Comment("any other tag: pointer identity", false)
		buf.Emit(asm.Beq{Left: temp, Right: temp2, Label: trueArm})
		buf.Emit(asm.Jmp{Label: falseArm})
	}

	// --- true-arm ---
	buf.Emit(asm.Label{Name: trueArm})
	emitBoxedBool(buf, true)
	buf.Emit(asm.Jmp{Label: end})

	// --- false-arm ---
	buf.Emit(asm.Label{Name: falseArm})
	emitBoxedBool(buf, false)

	buf.Emit(asm.Label{Name: end})

	// --- epilogue ---
	buf.Comment(name+" epilogue", false)
	tgt.FunctionEpilogue(buf, 2, 0)
}

func emitTagBranch(buf *asm.Buffer, tag int, label string) {
	buf.Emit(asm.Li{Dest: temp2, Imm: tag})
	buf.Emit(asm.Beq{Left: acc, Right: temp2, Label: label})
}

// emitRelationBranch branches to trueLabel when left OP right holds, for
// the relation's operator (< , <=, =).
func emitRelationBranch(buf *asm.Buffer, rel Relation, left, right asm.Register, trueLabel string) {
	switch rel {
	case Lt:
		buf.Emit(asm.Blt{Left: left, Right: right, Label: trueLabel})
	case Le:
		buf.Emit(asm.Ble{Left: left, Right: right, Label: trueLabel})
	default:
		buf.Emit(asm.Beq{Left: left, Right: right, Label: trueLabel})
	}
}

// emitBoxedBool constructs a Bool object inline (without routing through
// the expression generator, which comparison handlers are emitted
// independently of) and leaves it in the accumulator.
func emitBoxedBool(buf *asm.Buffer, value bool) {
	size := layout.ObjectSize(1) // Bool carries one hidden attribute, val
	buf.Emit(asm.Li{Dest: acc, Imm: size})
	buf.Emit(asm.Alloc{Dest: acc, Src: acc})
	buf.Emit(asm.Li{Dest: temp, Imm: classindex.BoolTag})
	buf.Emit(asm.St{Dest: acc, Src: temp, Offset: layout.TypeTagIndex})
	buf.Emit(asm.Li{Dest: temp, Imm: size})
	buf.Emit(asm.St{Dest: acc, Src: temp, Offset: layout.ObjectSizeIndex})
	buf.Emit(asm.La{Dest: temp, Label: "Bool..vtable"})
	buf.Emit(asm.St{Dest: acc, Src: temp, Offset: layout.VTableIndex})
	boolVal := 0
	if value {
		boolVal = 1
	}
	buf.Emit(asm.Li{Dest: temp, Imm: boolVal})
	buf.Emit(asm.St{Dest: acc, Src: temp, Offset: layout.AttributesStartIndex})
}
