package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolc/cgen/internal/asm"
)

func TestMessages_AreQualifiedByLineAndKind(t *testing.T) {
	assert.Contains(t, DispatchVoidMessage(12), "12")
	assert.Contains(t, DispatchVoidMessage(12), "dispatch on void")

	assert.Contains(t, CaseVoidMessage(7), "case on void")
	assert.Contains(t, CaseWithoutBranchMessage(7), "case without matching branch")
	assert.Contains(t, DivideByZeroMessage(7), "division by zero")
}

func TestEmitDispatchVoid_EmitsASingleJumpTargetLabel(t *testing.T) {
	buf := asm.NewBuffer()
	EmitDispatchVoid(buf, 42, "string_0")

	instrs := buf.Instrs()
	require.Len(t, instrs, 4)

	lbl, ok := instrs[0].(asm.Label)
	require.True(t, ok)
	assert.Equal(t, "dispatch_void_42", lbl.Name)

	la, ok := instrs[1].(asm.La)
	require.True(t, ok)
	assert.Equal(t, "string_0", la.Label)

	assert.Empty(t, buf.DuplicateLabels())
}

func TestEmitTrampolines_EachProducesADistinctLabel(t *testing.T) {
	buf := asm.NewBuffer()
	EmitDispatchVoid(buf, 1, "m0")
	EmitCaseVoid(buf, 1, "m1")
	EmitCaseWithoutBranch(buf, 1, "m2")
	EmitDivideByZero(buf, 1, "m3")

	assert.Empty(t, buf.DuplicateLabels())
	assert.Equal(t, 16, buf.Len())
}
