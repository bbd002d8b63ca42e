// Package symtab is the Symbol Environment (spec §4.4): a stack of scopes
// mapping identifiers to a location, either a named register or a
// frame-relative (base register, signed offset) pair.
package symtab

import (
	"fmt"

	"github.com/coolc/cgen/internal/asm"
)

// Location is a two-variant sum (spec §9 "Symbol location as sum"):
// either a Register or an Offset. Prefer this over string-tagging or
// polymorphic dispatch, per the design notes.
type Location struct {
	isOffset bool
	reg      asm.Register
	base     asm.Register
	offset   int
}

// Register builds a register-valued location.
func Register(reg asm.Register) Location {
	return Location{reg: reg}
}

// Offset builds a frame-relative location: base[offset].
func Offset(base asm.Register, offset int) Location {
	return Location{isOffset: true, base: base, offset: offset}
}

// IsOffset reports whether this location is frame-relative.
func (l Location) IsOffset() bool { return l.isOffset }

// Reg returns the bare register this location names. Only valid when
// IsOffset() is false.
func (l Location) Reg() asm.Register { return l.reg }

// Base and Disp return the frame-relative pieces of an offset location.
// Only valid when IsOffset() is true.
func (l Location) Base() asm.Register { return l.base }
func (l Location) Disp() int          { return l.offset }

// scope is one nesting level: attributes, formals, or one let/case binding.
type scope map[string]Location

// SymTab is the push/pop stack of scopes (spec §4.4, §5 "push/pop per
// method and per let/case scope").
type SymTab struct {
	scopes []scope
}

// New returns an empty symbol environment.
func New() *SymTab {
	return &SymTab{}
}

// PushScope opens a new, empty innermost scope.
func (s *SymTab) PushScope() {
	s.scopes = append(s.scopes, scope{})
}

// PopScope discards the innermost scope.
func (s *SymTab) PopScope() {
	if len(s.scopes) == 0 {
		panic("symtab: PopScope on empty stack")
	}
	s.scopes = s.scopes[:len(s.scopes)-1]
}

// Insert binds name to loc in the innermost scope, shadowing any outer
// binding of the same name.
func (s *SymTab) Insert(name string, loc Location) {
	if len(s.scopes) == 0 {
		panic("symtab: Insert with no open scope")
	}
	s.scopes[len(s.scopes)-1][name] = loc
}

// Lookup returns the innermost binding of name. Failure here is a
// programmer error (spec §4.4): the type checker is assumed to have
// rejected undefined names, so codegen input containing one is malformed.
func (s *SymTab) Lookup(name string) Location {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if loc, ok := s.scopes[i][name]; ok {
			return loc
		}
	}
	panic(fmt.Sprintf("symtab: undefined identifier %q", name))
}
