// Package runtime is the standalone half of the Runtime Trampoline
// Emitter (spec §4.7): the three comparison handlers and the four
// per-site error trampolines. These fragments are self-contained asm
// sequences that never need the expression generator, so — unlike the
// built-in method bodies (internal/codegen/internal_methods.go), which do
// need symbol-table and New access — they live here free of any
// dependency on internal/codegen.
package runtime

import (
	"fmt"

	"github.com/coolc/cgen/internal/asm"
)

// DispatchVoidMessage, CaseVoidMessage, CaseWithoutBranchMessage, and
// DivideByZeroMessage format the source-line-qualified message each
// trampoline prints, for interning into the string-constant pool ahead of
// EmitDispatchVoid/etc (spec §2: the pool is emitted before the
// trampolines that reference it).
func DispatchVoidMessage(line int) string {
	return fmt.Sprintf("ERROR: %d: Exception: dispatch on void\\n", line)
}

func CaseVoidMessage(line int) string {
	return fmt.Sprintf("ERROR: %d: Exception: case on void\\n", line)
}

func CaseWithoutBranchMessage(line int) string {
	return fmt.Sprintf("ERROR: %d: Exception: case without matching branch\\n", line)
}

func DivideByZeroMessage(line int) string {
	return fmt.Sprintf("ERROR: %d: Exception: division by zero\\n", line)
}

// EmitDispatchVoid emits the dispatch-on-void trampoline for line, once.
// msgLabel is the string-pool label already holding DispatchVoidMessage(line).
func EmitDispatchVoid(buf *asm.Buffer, line int, msgLabel string) {
	emitErrorTrampoline(buf, fmt.Sprintf("dispatch_void_%d", line), msgLabel)
}

// EmitCaseVoid emits the case-on-void trampoline for line, once.
func EmitCaseVoid(buf *asm.Buffer, line int, msgLabel string) {
	emitErrorTrampoline(buf, fmt.Sprintf("case_void_%d", line), msgLabel)
}

// EmitCaseWithoutBranch emits the no-matching-branch trampoline for line, once.
func EmitCaseWithoutBranch(buf *asm.Buffer, line int, msgLabel string) {
	emitErrorTrampoline(buf, fmt.Sprintf("case_without_branch_%d", line), msgLabel)
}

// EmitDivideByZero emits the literal-zero-denominator trampoline for line, once.
func EmitDivideByZero(buf *asm.Buffer, line int, msgLabel string) {
	emitErrorTrampoline(buf, fmt.Sprintf("divide_by_zero_%d", line), msgLabel)
}

func emitErrorTrampoline(buf *asm.Buffer, label, msgLabel string) {
	buf.Emit(asm.Label{Name: label})
	buf.Emit(asm.La{Dest: asm.Acc, Label: msgLabel})
	buf.Emit(asm.Syscall{Name: "IO.out_string"})
	buf.Emit(asm.Syscall{Name: "exit"})
}
