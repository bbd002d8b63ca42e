package classindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethodIndex_ConstructorAlwaysAtSlotOne(t *testing.T) {
	idx := NewMethodIndex()
	slot := idx.Insert("Dog", "new")
	assert.Equal(t, 1, slot)

	idx.ResetCursor()
	slot = idx.Insert("Cat", "new")
	assert.Equal(t, 1, slot)
}

func TestMethodIndex_VTableSlotsAreMonotonicPerClass(t *testing.T) {
	idx := NewMethodIndex()
	newSlot := idx.Insert("Dog", "new")
	barkSlot := idx.Insert("Dog", "bark")
	fetchSlot := idx.Insert("Dog", "fetch")

	assert.Equal(t, 1, newSlot)
	assert.Equal(t, 2, barkSlot)
	assert.Equal(t, 3, fetchSlot)
}

func TestMethodIndex_LookupAfterResetReturnsOriginalSlot(t *testing.T) {
	idx := NewMethodIndex()
	idx.Insert("Dog", "new")
	idx.Insert("Dog", "bark")
	idx.ResetCursor()
	idx.Insert("Cat", "new")

	slot, ok := idx.Lookup("Dog", "bark")
	assert.True(t, ok)
	assert.Equal(t, 2, slot)

	_, ok = idx.Lookup("Dog", "meow")
	assert.False(t, ok)
}
