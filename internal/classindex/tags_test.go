package classindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTags_ReservedBuiltinsAreStableAndDistinct(t *testing.T) {
	tags := NewTags()
	assert.Equal(t, ObjectTag, tags.Get("Object"))
	assert.Equal(t, IntTag, tags.Get("Int"))
	assert.Equal(t, StringTag, tags.Get("String"))
	assert.Equal(t, BoolTag, tags.Get("Bool"))
	assert.Equal(t, IOTag, tags.Get("IO"))
	assert.Equal(t, MainTag, tags.Get("Main"))

	seen := map[int]bool{}
	for _, tag := range []int{ObjectTag, IntTag, StringTag, BoolTag, IOTag, MainTag} {
		assert.False(t, seen[tag], "duplicate reserved tag %d", tag)
		seen[tag] = true
	}
}

func TestTags_InsertIsIdempotentAndMonotonic(t *testing.T) {
	tags := NewTags()
	first := tags.Insert("Animal")
	second := tags.Insert("Animal")
	assert.Equal(t, first, second)

	other := tags.Insert("Dog")
	assert.Greater(t, other, first)
	assert.GreaterOrEqual(t, first, firstUserTag)
	assert.GreaterOrEqual(t, other, firstUserTag)
}

func TestTags_GetPanicsOnUnregisteredClass(t *testing.T) {
	tags := NewTags()
	assert.Panics(t, func() { tags.Get("Nonexistent") })
}
