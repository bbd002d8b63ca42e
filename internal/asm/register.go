// Package asm is the flat assembly-instruction model shared by both code
// generation targets, plus its textual serialization (spec §6).
package asm

// Register names the reserved machine registers spec.md §6 fixes the roles
// of, but not the spellings of. A register is just a string so that an
// instruction can also carry a frame-relative base register name interchangeably.
type Register string

const (
	Acc   Register = "acc"  // accumulator: holds the value of the most recent expression
	Self  Register = "self" // current receiver
	Temp  Register = "temp"
	Temp2 Register = "temp2"
	RA    Register = "ra" // return address, VM-only in epilogue
	FP    Register = "fp"
	SP    Register = "sp"
)
