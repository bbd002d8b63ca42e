package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectSize_AddsFixedHeaderToAttributeCount(t *testing.T) {
	assert.Equal(t, 3, ObjectSize(0))
	assert.Equal(t, 4, ObjectSize(1))
	assert.Equal(t, 9, ObjectSize(6))
}

func TestLayout_ObjectSlotsAreDistinctAndOrdered(t *testing.T) {
	slots := []int{TypeTagIndex, ObjectSizeIndex, VTableIndex, AttributesStartIndex}
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1]+1, slots[i])
	}
}

func TestLayout_VTableSlotsAreDistinctAndOrdered(t *testing.T) {
	slots := []int{VTableClassNameIndex, VTableConstructorIndex, VTableMethodsStartIndex}
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1]+1, slots[i])
	}
}
