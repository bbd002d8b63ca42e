// Package ast is the annotated-AST data model the code generator consumes
// (spec §3, §6). Producing it — lexing, parsing, and type-checking the
// source language — is out of scope; this package only models the already
// type-checked structures and supplies one concrete reader for them.
package ast

// Attribute is an instance field of a class: (Name, Type, Initializer?).
// Order within a class's attribute list is significant: it determines the
// field's in-memory offset (spec §3).
type Attribute struct {
	Name        string
	Type        string
	Initializer Expr // nil when the attribute has no initializer
}

// ClassMap maps a class name to its ordered attribute list. Order of
// classes matters for tag assignment (§4.1) and for case subtype-routing
// iteration (§4.6.2), so insertion order is tracked explicitly rather than
// relying on Go's unordered map iteration.
type ClassMap struct {
	order   []string
	classes map[string][]*Attribute
}

// NewClassMap returns an empty class map.
func NewClassMap() *ClassMap {
	return &ClassMap{classes: make(map[string][]*Attribute)}
}

// Declare registers a class (with no attributes yet) if it isn't already
// present, preserving first-seen order.
func (m *ClassMap) Declare(class string) {
	if _, ok := m.classes[class]; !ok {
		m.order = append(m.order, class)
		m.classes[class] = nil
	}
}

// AppendAttribute appends attr to class's attribute list, declaring the
// class first if necessary. Used both by the reader and by
// codegen.PrimeBuiltins' hidden-attribute priming (spec §3: Int.val,
// Bool.val, String.val).
func (m *ClassMap) AppendAttribute(class string, attr *Attribute) {
	m.Declare(class)
	m.classes[class] = append(m.classes[class], attr)
}

// Attributes returns class's attribute list in declared order.
func (m *ClassMap) Attributes(class string) []*Attribute {
	return m.classes[class]
}

// Classes returns every declared class name in insertion order.
func (m *ClassMap) Classes() []string {
	return m.order
}

// Has reports whether class has been declared.
func (m *ClassMap) Has(class string) bool {
	_, ok := m.classes[class]
	return ok
}

// MethodKey identifies an implementation-map entry: a method as implemented
// (or overridden) on a specific class.
type MethodKey struct {
	Class  string
	Method string
}

// Method is an implementation-map entry's payload: its formal parameter
// names, in declared order, and its body expression. A body of Internal
// denotes a built-in whose body the Runtime Trampoline Emitter supplies.
type Method struct {
	Formals []string
	Body    Expr
}

// ImplMap maps (class, method) to its formals and body, preserving
// insertion order — vtable slot order for a class is exactly the order in
// which its entries appear in this map (spec §3 "VTable layout").
type ImplMap struct {
	order   []MethodKey
	entries map[MethodKey]*Method
}

// NewImplMap returns an empty implementation map.
func NewImplMap() *ImplMap {
	return &ImplMap{entries: make(map[MethodKey]*Method)}
}

// Append registers an implementation-map entry, preserving insertion order.
// Vtable construction (codegen.emitVTables) lists only the entries keyed by
// the vtable's own class; an inherited method appears in a class's vtable
// only if the map holds an entry for it under that class.
func (m *ImplMap) Append(key MethodKey, method *Method) {
	if _, ok := m.entries[key]; !ok {
		m.order = append(m.order, key)
	}
	m.entries[key] = method
}

// Entries returns every (key, method) pair in insertion order.
func (m *ImplMap) Entries() []MethodKey {
	return m.order
}

// Get looks up a single implementation-map entry.
func (m *ImplMap) Get(key MethodKey) (*Method, bool) {
	method, ok := m.entries[key]
	return method, ok
}

// ParentMap maps a class to its direct parent. Used only by case
// discrimination for subtype routing (spec §3). The class/parent relation
// is a tree rooted at Object; no cycle handling is required (spec §9).
type ParentMap map[string]string

// DirectMethods maps a class to the method names it declares directly
// (as opposed to inherits). Neither the codegen core nor the driver reads
// it; it is part of the reader's contract only because the annotated-AST
// format carries it.
type DirectMethods map[string][]string
