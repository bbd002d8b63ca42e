package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_LabelsAreNotIndented(t *testing.T) {
	b := NewBuffer()
	b.Emit(Label{Name: "Main..new"})
	b.Emit(Li{Dest: Acc, Imm: 5})

	out := Render(b, false, false)
	assert.Contains(t, out, "Main..new:\n")
	assert.Contains(t, out, prefix+"li acc <- 5\n")
}

func TestRender_CommentsGatedByFlag(t *testing.T) {
	b := NewBuffer()
	b.Comment("hello", false)

	require.Empty(t, Render(b, false, false))
	assert.Equal(t, prefix+";;\thello\n", Render(b, true, false))
}

func TestRender_DebugGatedByFlag(t *testing.T) {
	b := NewBuffer()
	b.Emit(Debug{Reg: SP})

	require.Empty(t, Render(b, false, false))
	assert.Equal(t, "debug sp\n", Render(b, false, true))
}

func TestRender_ArithmeticDestinationIsRightOperand(t *testing.T) {
	b := NewBuffer()
	b.Emit(Add{Left: Temp, Right: Acc})

	assert.Equal(t, prefix+"add acc <- acc temp\n", Render(b, false, false))
}

func TestRender_ConstantStringEscapeSequencesAreVerbatim(t *testing.T) {
	b := NewBuffer()
	b.Emit(ConstantString{Value: `ERROR: \n division by zero\n`})

	out := Render(b, false, false)
	assert.Equal(t, prefix+`constant "ERROR: \n division by zero\n"`+"\n", out)
}

func TestBuffer_DuplicateLabels(t *testing.T) {
	b := NewBuffer()
	b.Emit(Label{Name: "dup"})
	b.Emit(Label{Name: "unique"})
	b.Emit(Label{Name: "dup"})

	assert.ElementsMatch(t, []string{"dup"}, b.DuplicateLabels())
}
