// Package layout holds the fixed object/vtable slot layout (spec §3),
// shared by every component that reads or writes an object's header or a
// vtable's fixed slots.
package layout

// Object layout slot indices, identical across both targets (spec §3).
const (
	TypeTagIndex         = 0 // type tag (integer)
	ObjectSizeIndex      = 1 // object size in words
	VTableIndex          = 2 // pointer to class's vtable
	AttributesStartIndex = 3 // attributes in declared order start here
)

// VTable layout slot indices (spec §3).
const (
	VTableClassNameIndex  = 0 // label of class-name string constant
	VTableConstructorIndex = 1 // label of constructor (Class..new)
	VTableMethodsStartIndex = 2 // labels of methods in vtable order start here
)

// ObjectSize returns the word count spec §3's invariant fixes slot 1 to:
// 3 header words plus one per attribute.
func ObjectSize(attributeCount int) int {
	return 3 + attributeCount
}
