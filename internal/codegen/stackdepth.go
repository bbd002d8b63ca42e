package codegen

import "github.com/coolc/cgen/internal/ast"

// computeMaxStackDepth recursively walks exp to compute the number of
// frame-relative temporary slots its code generation will need (spec §4.5
// "temporaries_needed"): one slot per active let binding, reused across
// mutually-exclusive branches. Function arguments don't need slots here —
// the caller already pushed them.
//
// Case's contribution is a fixed 1 slot (for the subject, stored at fp[0])
// regardless of branch count, matching the reference allocator's behavior.
func computeMaxStackDepth(exp ast.Expr) int {
	switch e := exp.(type) {
	case ast.Block:
		max := 0
		for _, sub := range e.Body {
			if d := computeMaxStackDepth(sub); d > max {
				max = d
			}
		}
		return max

	case ast.Let:
		return len(e.Bindings) + computeMaxStackDepth(e.Body)

	case ast.If:
		thenDepth := computeMaxStackDepth(e.Then)
		elseDepth := computeMaxStackDepth(e.Else)
		if thenDepth > elseDepth {
			return thenDepth
		}
		return elseDepth

	case ast.While:
		return computeMaxStackDepth(e.Body)

	case ast.Case:
		return 1

	default:
		return 0
	}
}
