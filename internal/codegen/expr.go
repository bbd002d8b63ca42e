package codegen

import (
	"fmt"

	"github.com/coolc/cgen/internal/ast"
	"github.com/coolc/cgen/internal/asm"
	"github.com/coolc/cgen/internal/layout"
	"github.com/coolc/cgen/internal/symtab"
)

// Gen is the Expression Code Generator (spec §4.6): for every variant, the
// post-condition is "accumulator holds the expression's value, stack
// pointer unchanged". The switch below is expected to be exhaustive over
// every ast.Expr variant.
func (c *Context) Gen(exp ast.Expr) {
	switch e := exp.(type) {
	case ast.IntLiteral:
		c.Gen(ast.New{Type: "Int"})
		c.Buf.Emit(asm.Li{Dest: asm.Temp, Imm: e.Value})
		c.Buf.Emit(asm.St{Dest: asm.Acc, Src: asm.Temp, Offset: layout.AttributesStartIndex})

	case ast.StringLiteral:
		c.Gen(ast.New{Type: "String"})
		label := c.Strings.Insert(e.Value)
		c.Buf.Emit(asm.La{Dest: asm.Temp, Label: label})
		c.Buf.Emit(asm.St{Dest: asm.Acc, Src: asm.Temp, Offset: layout.AttributesStartIndex})

	case ast.BoolLiteral:
		c.Gen(ast.New{Type: "Bool"})
		if e.Value {
			c.Buf.Emit(asm.Li{Dest: asm.Temp, Imm: 1})
			c.Buf.Emit(asm.St{Dest: asm.Acc, Src: asm.Temp, Offset: layout.AttributesStartIndex})
		}

	case ast.Identifier:
		c.genIdentifier(e.Name)

	case ast.Assign:
		c.Gen(e.Value)
		c.genStoreTo(e.Name)

	case ast.New:
		c.genNew(e.Type)

	case ast.IsVoid:
		c.genIsVoid(e)

	case ast.Plus:
		c.genArith(e.Left, e.Right, func() asm.Instr { return asm.Add{Left: asm.Acc, Right: asm.Temp} })
	case ast.Minus:
		c.genArith(e.Left, e.Right, func() asm.Instr { return asm.Sub{Left: asm.Acc, Right: asm.Temp} })
	case ast.Times:
		c.genArith(e.Left, e.Right, func() asm.Instr { return asm.Mul{Left: asm.Acc, Right: asm.Temp} })
	case ast.Divide:
		c.genDivide(e)

	case ast.Lt:
		c.genComparison(e.Left, e.Right, "lt_handler")
	case ast.Le:
		c.genComparison(e.Left, e.Right, "le_handler")
	case ast.Eq:
		c.genComparison(e.Left, e.Right, "eq_handler")

	case ast.Not:
		c.genNot(e)
	case ast.Negate:
		c.genNegate(e)

	case ast.If:
		c.genIf(e)
	case ast.While:
		c.genWhile(e)

	case ast.Block:
		for _, sub := range e.Body {
			c.Gen(sub)
		}

	case ast.Let:
		c.genLet(e)

	case ast.DynamicDispatch:
		c.genDispatch(e.Line(), e.Receiver, "", e.StaticType, e.Method, e.Args)
	case ast.StaticDispatch:
		c.genDispatch(e.Line(), e.Receiver, e.Type, e.Type, e.Method, e.Args)
	case ast.SelfDispatch:
		c.genDispatch(e.Line(), nil, "", c.currentClass, e.Method, e.Args)

	case ast.Case:
		c.genCase(e)

	case ast.Internal:
		c.genInternal(e.Body)

	default:
		panic(fmt.Sprintf("codegen: unhandled expression variant %T", exp))
	}
}

func (c *Context) genIdentifier(name string) {
	loc := c.Syms.Lookup(name)
	if loc.IsOffset() {
		c.Buf.Emit(asm.Ld{Dest: asm.Acc, Src: loc.Base(), Offset: loc.Disp()})
	} else {
		c.Buf.Emit(asm.Mov{Dest: asm.Acc, Src: loc.Reg()})
	}
}

func (c *Context) genStoreTo(name string) {
	loc := c.Syms.Lookup(name)
	if loc.IsOffset() {
		c.Buf.Emit(asm.St{Dest: loc.Base(), Src: asm.Acc, Offset: loc.Disp()})
	} else {
		c.Buf.Emit(asm.Mov{Dest: loc.Reg(), Src: asm.Acc})
	}
}

// genNew calls class's constructor, preserving the caller's frame pointer
// and self around the call (spec §4.6 "New(T)").
func (c *Context) genNew(class string) {
	c.Buf.Emit(asm.Push{Reg: asm.FP})
	c.Buf.Emit(asm.Push{Reg: asm.Self})
	c.Buf.Emit(asm.CallLabel{Label: class + "..new"})
	c.Buf.Emit(asm.Pop{Reg: asm.Self})
	c.Buf.Emit(asm.Pop{Reg: asm.FP})
}

func (c *Context) genIsVoid(e ast.IsVoid) {
	falseLabel := "isvoid_false_" + c.nextBranchLabel()
	trueLabel := "isvoid_true_" + c.nextBranchLabel()
	end := "isvoid_end_" + c.nextBranchLabel()

	c.Gen(e.Value)
	c.Buf.Emit(asm.Bz{Reg: asm.Acc, Label: trueLabel})

	c.Buf.Emit(asm.Label{Name: falseLabel})
	c.Gen(ast.New{Type: "Bool"})
	c.Buf.Emit(asm.Jmp{Label: end})

	c.Buf.Emit(asm.Label{Name: trueLabel})
	c.Gen(ast.New{Type: "Bool"})
	c.Buf.Emit(asm.Li{Dest: asm.Temp, Imm: 1})
	c.Buf.Emit(asm.St{Dest: asm.Acc, Src: asm.Temp, Offset: layout.AttributesStartIndex})

	c.Buf.Emit(asm.Label{Name: end})
}

// genArith implements the shared +,-,x shape (spec §4.6 "Arithmetic"):
// code-gen left, push; code-gen right; pop left into temp; unbox both;
// combine; box into a fresh Int. combine runs with the unboxed left operand
// in temp and the unboxed right operand in acc, and must leave its result
// in temp (so its instruction has Left=acc, Right=temp).
func (c *Context) genArith(left, right ast.Expr, combine func() asm.Instr) {
	c.Gen(left)
	c.Buf.Emit(asm.Push{Reg: asm.Acc})
	c.Gen(right)
	c.Buf.Emit(asm.Pop{Reg: asm.Temp})

	c.Buf.Emit(asm.Ld{Dest: asm.Acc, Src: asm.Acc, Offset: layout.AttributesStartIndex})
	c.Buf.Emit(asm.Ld{Dest: asm.Temp, Src: asm.Temp, Offset: layout.AttributesStartIndex})
	c.Buf.Emit(combine())

	c.Buf.Emit(asm.Push{Reg: asm.Temp})
	c.Gen(ast.New{Type: "Int"})
	c.Buf.Emit(asm.Pop{Reg: asm.Temp})
	c.Buf.Emit(asm.St{Dest: asm.Acc, Src: asm.Temp, Offset: layout.AttributesStartIndex})
}

func (c *Context) genDivide(e ast.Divide) {
	line := e.Right.Line()
	literalZero, isZero := e.Right.(ast.IntLiteral)
	if isZero && literalZero.Value == 0 {
		c.divideByZeroLines[line] = true
	}

	c.Gen(e.Left)
	c.Buf.Emit(asm.Push{Reg: asm.Acc})
	c.Gen(e.Right)
	c.Buf.Emit(asm.Pop{Reg: asm.Temp})

	c.Buf.Emit(asm.Ld{Dest: asm.Acc, Src: asm.Acc, Offset: layout.AttributesStartIndex})
	c.Buf.Emit(asm.Ld{Dest: asm.Temp, Src: asm.Temp, Offset: layout.AttributesStartIndex})

	if isZero && literalZero.Value == 0 {
		okLabel := "div_ok_" + c.nextBranchLabel()
		c.Buf.Emit(asm.Bnz{Reg: asm.Acc, Label: okLabel})
		c.Buf.Emit(asm.Jmp{Label: fmt.Sprintf("divide_by_zero_%d", line)})
		c.Buf.Emit(asm.Label{Name: okLabel})
	}

	c.Buf.Emit(asm.Div{Left: asm.Acc, Right: asm.Temp})

	c.Buf.Emit(asm.Push{Reg: asm.Temp})
	c.Gen(ast.New{Type: "Int"})
	c.Buf.Emit(asm.Pop{Reg: asm.Temp})
	c.Buf.Emit(asm.St{Dest: asm.Acc, Src: asm.Temp, Offset: layout.AttributesStartIndex})
}

// genComparison pushes the operands in the order the shared handlers
// expect (self, fp, left, right, self) and calls the handler (spec §4.6
// "Comparisons"); on x86, the caller removes the three argument slots.
func (c *Context) genComparison(left, right ast.Expr, handler string) {
	c.Buf.Emit(asm.Push{Reg: asm.Self})
	c.Buf.Emit(asm.Push{Reg: asm.FP})

	c.Gen(left)
	c.Buf.Emit(asm.Push{Reg: asm.Acc})
	c.Gen(right)
	c.Buf.Emit(asm.Push{Reg: asm.Acc})
	c.Buf.Emit(asm.Push{Reg: asm.Self})

	c.Buf.Emit(asm.CallLabel{Label: handler})
	c.Target.CleanupComparisonAfterCall(c.Buf)

	c.Buf.Emit(asm.Pop{Reg: asm.FP})
	c.Buf.Emit(asm.Pop{Reg: asm.Self})
}

func (c *Context) genNot(e ast.Not) {
	c.Gen(e.Value)
	c.Buf.Emit(asm.Ld{Dest: asm.Temp, Src: asm.Acc, Offset: layout.AttributesStartIndex})
	c.Buf.Emit(asm.Li{Dest: asm.Temp2, Imm: 1})
	c.Buf.Emit(asm.Sub{Left: asm.Temp, Right: asm.Temp2})
	c.Buf.Emit(asm.Push{Reg: asm.Temp2})
	c.Gen(ast.New{Type: "Bool"})
	c.Buf.Emit(asm.Pop{Reg: asm.Temp2})
	c.Buf.Emit(asm.St{Dest: asm.Acc, Src: asm.Temp2, Offset: layout.AttributesStartIndex})
}

func (c *Context) genNegate(e ast.Negate) {
	c.Gen(e.Value)
	c.Buf.Emit(asm.Ld{Dest: asm.Temp, Src: asm.Acc, Offset: layout.AttributesStartIndex})
	c.Buf.Emit(asm.Li{Dest: asm.Temp2, Imm: -1})
	c.Buf.Emit(asm.Mul{Left: asm.Temp2, Right: asm.Temp})
	c.Buf.Emit(asm.Push{Reg: asm.Temp})
	c.Gen(ast.New{Type: "Int"})
	c.Buf.Emit(asm.Pop{Reg: asm.Temp})
	c.Buf.Emit(asm.St{Dest: asm.Acc, Src: asm.Temp, Offset: layout.AttributesStartIndex})
}

func (c *Context) genIf(e ast.If) {
	thenLabel := "true_" + c.nextBranchLabel()
	elseLabel := "false_" + c.nextBranchLabel()
	endLabel := "end_" + c.nextBranchLabel()

	c.Gen(e.Predicate)
	c.Buf.Emit(asm.Ld{Dest: asm.Acc, Src: asm.Acc, Offset: layout.AttributesStartIndex})
	c.Buf.Emit(asm.Bnz{Reg: asm.Acc, Label: thenLabel})

	c.Buf.Comment("ELSE (false branch)", true)
	c.Buf.Emit(asm.Label{Name: elseLabel})
	c.Gen(e.Else)
	c.Buf.Emit(asm.Jmp{Label: endLabel})

	c.Buf.Comment("THEN (true branch)", true)
	c.Buf.Emit(asm.Label{Name: thenLabel})
	c.Gen(e.Then)

	c.Buf.Emit(asm.Label{Name: endLabel})
}

// genWhile yields a void accumulator after the loop (resolved design
// decision, see DESIGN.md): the reference core left the accumulator
// holding whatever the final predicate evaluation produced.
func (c *Context) genWhile(e ast.While) {
	condLabel := "while_predicate_" + c.nextBranchLabel()
	endLabel := "end_while_" + c.nextBranchLabel()

	c.Buf.Emit(asm.Label{Name: condLabel})
	c.Gen(e.Predicate)
	c.Buf.Emit(asm.Ld{Dest: asm.Acc, Src: asm.Acc, Offset: layout.AttributesStartIndex})
	c.Buf.Emit(asm.Bz{Reg: asm.Acc, Label: endLabel})

	c.Gen(e.Body)
	c.Buf.Emit(asm.Jmp{Label: condLabel})

	c.Buf.Emit(asm.Label{Name: endLabel})
	c.Buf.Emit(asm.Li{Dest: asm.Acc, Imm: 0})
}

func (c *Context) genLet(e ast.Let) {
	c.Syms.PushScope()
	saved := c.temporaryIndex
	for _, binding := range e.Bindings {
		if binding.Init != nil {
			c.Gen(binding.Init)
		} else {
			c.genDefault(binding.Type)
		}
		c.Buf.Emit(asm.St{Dest: asm.FP, Src: asm.Acc, Offset: c.temporaryIndex})
		c.Syms.Insert(binding.Name, symtab.Offset(asm.FP, c.temporaryIndex))
		c.temporaryIndex--
	}

	c.Gen(e.Body)

	c.temporaryIndex = saved
	c.Syms.PopScope()
}

func (c *Context) genDefault(typeName string) {
	switch typeName {
	case "Int", "String", "Bool":
		c.Gen(ast.New{Type: typeName})
	default:
		c.Buf.Emit(asm.Li{Dest: asm.Acc, Imm: 0})
	}
}
