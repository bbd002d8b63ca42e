package asm

// Buffer is the monotonically growing instruction stream (spec §5: "Memory
// is bounded by instruction buffer length"). It never shrinks and is
// flushed exactly once, at the end of a generation run.
type Buffer struct {
	instrs []Instr
	labels map[string]int // label -> count, used to assert uniqueness (spec §8)
}

// NewBuffer returns an empty instruction buffer.
func NewBuffer() *Buffer {
	return &Buffer{labels: make(map[string]int)}
}

// Emit appends an instruction, verbatim, to the buffer.
func (b *Buffer) Emit(i Instr) {
	if lbl, ok := i.(Label); ok {
		b.labels[lbl.Name]++
	}
	b.instrs = append(b.instrs, i)
}

// Comment appends a comment instruction; notTabbed mirrors the reference
// core's section-banner comments, which are emitted without the usual
// four-tab indent.
func (b *Buffer) Comment(text string, notTabbed bool) {
	b.Emit(Comment{Text: text, NotTabbed: notTabbed})
}

// Len returns the number of instructions currently buffered.
func (b *Buffer) Len() int { return len(b.instrs) }

// Instrs returns the buffered instructions in emission order. The returned
// slice must not be mutated by callers; it aliases the buffer's backing array.
func (b *Buffer) Instrs() []Instr { return b.instrs }

// DuplicateLabels returns every label name that was emitted more than once,
// violating spec §3's "every emitted label is unique" invariant. An empty
// result is a precondition for a well-formed program (spec §8 "Label uniqueness").
func (b *Buffer) DuplicateLabels() []string {
	var dups []string
	for name, count := range b.labels {
		if count > 1 {
			dups = append(dups, name)
		}
	}
	return dups
}
