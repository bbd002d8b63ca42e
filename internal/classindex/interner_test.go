package classindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterner_InsertDeduplicatesByValue(t *testing.T) {
	in := NewInterner()
	a := in.Insert("hello")
	b := in.Insert("hello")
	assert.Equal(t, a, b)

	c := in.Insert("world")
	assert.NotEqual(t, a, c)
}

func TestInterner_SortedMatchesInsertionOrder(t *testing.T) {
	in := NewInterner()
	in.Insert("first")
	in.Insert("second")
	in.Insert("first") // no-op, already interned

	entries := in.Sorted()
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Value)
	assert.Equal(t, "second", entries[1].Value)
	assert.Equal(t, "string_0", entries[0].Label)
	assert.Equal(t, "string_1", entries[1].Label)
}

func TestInterner_GetReportsMissing(t *testing.T) {
	in := NewInterner()
	_, ok := in.Get("missing")
	assert.False(t, ok)

	label := in.Insert("present")
	got, ok := in.Get("present")
	assert.True(t, ok)
	assert.Equal(t, label, got)
}
