package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coolc/cgen/internal/asm"
)

func TestSymTab_InnerScopeShadowsOuter(t *testing.T) {
	st := New()
	st.PushScope()
	st.Insert("x", Register(asm.Self))

	st.PushScope()
	st.Insert("x", Offset(asm.FP, -1))

	loc := st.Lookup("x")
	assert.True(t, loc.IsOffset())
	assert.Equal(t, asm.FP, loc.Base())
	assert.Equal(t, -1, loc.Disp())

	st.PopScope()
	loc = st.Lookup("x")
	assert.False(t, loc.IsOffset())
	assert.Equal(t, asm.Self, loc.Reg())
}

func TestSymTab_LookupPanicsOnUndefinedIdentifier(t *testing.T) {
	st := New()
	st.PushScope()
	st.Insert("x", Register(asm.Acc))

	assert.Panics(t, func() { st.Lookup("y") })
}

func TestSymTab_PopScopeOnEmptyStackPanics(t *testing.T) {
	st := New()
	assert.Panics(t, func() { st.PopScope() })
}

func TestSymTab_InsertWithNoOpenScopePanics(t *testing.T) {
	st := New()
	assert.Panics(t, func() { st.Insert("x", Register(asm.Acc)) })
}

func TestSymTab_OffsetLocationCarriesBaseAndDisp(t *testing.T) {
	loc := Offset(asm.FP, 3)
	assert.True(t, loc.IsOffset())
	assert.Equal(t, asm.FP, loc.Base())
	assert.Equal(t, 3, loc.Disp())
}
