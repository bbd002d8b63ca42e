// Package target captures everything that differs between the two asm
// dialects the generator can emit for (spec §1): VM-asm's stack-machine
// calling convention versus x86-asm's frame-pointer/argument-cleanup
// discipline. The expression generator and layout engine are shared
// verbatim across both; only the Target implementation differs.
package target

import "github.com/coolc/cgen/internal/asm"

// Target is the small seam the shared generator calls through whenever
// spec §4.5/§4.6/§4.6.1 says the two dialects diverge.
type Target interface {
	// Name identifies the target for diagnostics ("vm" or "x86").
	Name() string

	// ConstructorPrologue/Epilogue bracket a Class..new body (spec §4.5).
	ConstructorPrologue(buf *asm.Buffer)
	ConstructorEpilogue(buf *asm.Buffer)

	// FunctionPrologue/Epilogue bracket a method body (spec §4.6, the
	// "FUNCTION START"/"FUNCTION CLEANUP" fragments). temporariesNeeded is
	// the conservative upper bound from the stack-depth analysis.
	FunctionPrologue(buf *asm.Buffer, temporariesNeeded int)
	FunctionEpilogue(buf *asm.Buffer, numArgs, temporariesNeeded int)

	// FormalOffset returns the fp-relative offset of the index'th (1-based)
	// formal argument, given the method has numArgs formals total. The
	// x86 target's frame has one extra slot (the return address) between
	// fp and the pushed arguments (spec §4.6 "Symbol Environment").
	FormalOffset(numArgs, index int) int

	// CleanupDispatchAfterCall emits the post-call argument cleanup a
	// dispatch site is responsible for: on x86 the caller removes
	// argCount+1 slots (args plus receiver); on VM-asm the callee already
	// did this, so the method is a no-op (spec §4.6.1 step 9).
	CleanupDispatchAfterCall(buf *asm.Buffer, argCount int)

	// CleanupComparisonAfterCall removes the three argument slots a
	// comparison handler call pushed, when the target's convention makes
	// that the caller's job (spec §4.6 "Comparisons").
	CleanupComparisonAfterCall(buf *asm.Buffer)
}
