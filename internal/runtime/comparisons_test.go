package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolc/cgen/internal/asm"
	"github.com/coolc/cgen/internal/codegen/target/vmtarget"
	"github.com/coolc/cgen/internal/layout"
)

func TestEmitComparisonHandler_EmitsExactlyOneEntryLabelPerRelation(t *testing.T) {
	buf := asm.NewBuffer()
	tgt := vmtarget.New()

	EmitComparisonHandler(buf, tgt, Lt)
	EmitComparisonHandler(buf, tgt, Le)
	EmitComparisonHandler(buf, tgt, Eq)

	assert.Empty(t, buf.DuplicateLabels())

	var entryLabels []string
	for _, instr := range buf.Instrs() {
		if lbl, ok := instr.(asm.Label); ok {
			switch lbl.Name {
			case "lt_handler", "le_handler", "eq_handler":
				entryLabels = append(entryLabels, lbl.Name)
			}
		}
	}
	assert.ElementsMatch(t, []string{"lt_handler", "le_handler", "eq_handler"}, entryLabels)
}

func TestEmitComparisonHandler_EqHasIdentityArmOthersDoNot(t *testing.T) {
	ltBuf := asm.NewBuffer()
	EmitComparisonHandler(ltBuf, vmtarget.New(), Lt)
	assert.NotContains(t, labelNames(ltBuf), "identity_arm_lt_handler")

	eqBuf := asm.NewBuffer()
	EmitComparisonHandler(eqBuf, vmtarget.New(), Eq)
	assert.Contains(t, labelNames(eqBuf), "identity_arm_eq_handler")
}

func TestEmitComparisonHandler_BoolArmFallsThroughToIntArm(t *testing.T) {
	buf := asm.NewBuffer()
	EmitComparisonHandler(buf, vmtarget.New(), Lt)

	instrs := buf.Instrs()
	idx := -1
	for i, instr := range instrs {
		if lbl, ok := instr.(asm.Label); ok && lbl.Name == "bool_arm_lt_handler" {
			idx = i
			break
		}
	}
	require.NotEqual(t, -1, idx)
	jmp, ok := instrs[idx+1].(asm.Jmp)
	require.True(t, ok)
	assert.Equal(t, "int_arm_lt_handler", jmp.Label)
}

func TestEmitBoxedBool_AllocatesFourWordsMatchingBoolVal(t *testing.T) {
	buf := asm.NewBuffer()
	emitBoxedBool(buf, true)

	instrs := buf.Instrs()
	require.GreaterOrEqual(t, len(instrs), 2)

	sizeLi, ok := instrs[0].(asm.Li)
	require.True(t, ok)
	assert.Equal(t, layout.ObjectSize(1), sizeLi.Imm, "Bool has one hidden val attribute, so its object size is 4 words")

	sizeSt, ok := instrs[1].(asm.Alloc)
	require.True(t, ok)
	_ = sizeSt

	last := instrs[len(instrs)-1].(asm.St)
	assert.Equal(t, layout.AttributesStartIndex, last.Offset, "the boxed bool value must land inside the allocated object, at the first attribute slot")
	assert.Less(t, last.Offset, sizeLi.Imm, "value offset must be within the allocated word count")
}

func labelNames(buf *asm.Buffer) []string {
	var out []string
	for _, instr := range buf.Instrs() {
		if lbl, ok := instr.(asm.Label); ok {
			out = append(out, lbl.Name)
		}
	}
	return out
}
