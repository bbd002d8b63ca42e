package classindex

// methodKey identifies one vtable slot assignment.
type methodKey struct{ Class, Method string }

// MethodIndex records, for each class, the ordered sequence of method
// names forming its vtable, and answers (class, method) -> slot index
// (spec §4.3). The constructor is always at slot 1; the first real method
// is at slot 2.
type MethodIndex struct {
	cursor int
	slots  map[methodKey]int
}

// NewMethodIndex returns a method index with its cursor primed for the
// first class's constructor to land at slot 1.
func NewMethodIndex() *MethodIndex {
	return &MethodIndex{cursor: 1, slots: make(map[methodKey]int)}
}

// Insert appends method at the current cursor position for class, and
// advances the cursor.
func (m *MethodIndex) Insert(class, method string) int {
	idx := m.cursor
	m.slots[methodKey{class, method}] = idx
	m.cursor++
	return idx
}

// ResetCursor is called between classes, returning the cursor to slot 1 so
// the next class's constructor lands there too.
func (m *MethodIndex) ResetCursor() {
	m.cursor = 1
}

// Lookup returns the slot index at which (class, method) was recorded.
func (m *MethodIndex) Lookup(class, method string) (int, bool) {
	idx, ok := m.slots[methodKey{class, method}]
	return idx, ok
}
