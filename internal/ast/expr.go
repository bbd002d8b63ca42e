package ast

// Expr is any expression-AST node the generator can traverse (spec §4.6).
// It is a closed sum: the switch in codegen.Context.Gen is expected to be
// exhaustive over every variant below (spec §9 "tagged-variant AST").
type Expr interface {
	exprNode()
	// Line returns the 1-based source line the expression was parsed from,
	// used to key the per-site runtime-trampoline dedup sets (spec §4.7).
	Line() int
}

// base carries the source line every expression variant needs, so each
// variant only has to embed it instead of repeating a Line() method.
type base struct{ LineNo int }

func (b base) Line() int { return b.LineNo }

// IntLiteral is an integer literal.
type IntLiteral struct {
	base
	Value int
}

// StringLiteral is a string literal.
type StringLiteral struct {
	base
	Value string
}

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	base
	Value bool
}

// Identifier is a reference to a symbol-environment-bound name (attribute,
// formal, let-binding, or case-branch variable).
type Identifier struct {
	base
	Name string
}

// Assign is `name <- value`.
type Assign struct {
	base
	Name  string
	Value Expr
}

// DynamicDispatch is `receiver.method(args...)`. StaticType is the
// annotated static type of Receiver — the type checker's output this core
// depends on for method-index lookup (spec §4.6.1).
type DynamicDispatch struct {
	base
	Receiver   Expr
	StaticType string
	Method     string
	Args       []Expr
}

// StaticDispatch is `receiver@Type.method(args...)`.
type StaticDispatch struct {
	base
	Receiver Expr
	Type     string
	Method   string
	Args     []Expr
}

// SelfDispatch is `method(args...)` invoked implicitly on self.
type SelfDispatch struct {
	base
	Method string
	Args   []Expr
}

// New constructs a default instance of Type.
type New struct {
	base
	Type string
}

// IsVoid tests whether Value evaluates to the void sentinel.
type IsVoid struct {
	base
	Value Expr
}

// Plus, Minus, Times, Divide are the four boxed-Int arithmetic operators.
type Plus struct {
	base
	Left, Right Expr
}
type Minus struct {
	base
	Left, Right Expr
}
type Times struct {
	base
	Left, Right Expr
}
type Divide struct {
	base
	Left, Right Expr
}

// Lt, Le, Eq are the three polymorphic comparison operators.
type Lt struct {
	base
	Left, Right Expr
}
type Le struct {
	base
	Left, Right Expr
}
type Eq struct {
	base
	Left, Right Expr
}

// Not negates a boxed Bool. Negate negates a boxed Int.
type Not struct {
	base
	Value Expr
}
type Negate struct {
	base
	Value Expr
}

// If is `if Predicate then Then else Else fi`.
type If struct {
	base
	Predicate, Then, Else Expr
}

// While is `while Predicate loop Body pool`.
type While struct {
	base
	Predicate, Body Expr
}

// Block is a `{ e1; e2; ...; en; }` sequence; its value is its last
// sub-expression's value.
type Block struct {
	base
	Body []Expr
}

// LetBinding is one binding within a `let` expression. Init is nil when the
// binding has no explicit initializer (it is then type-defaulted).
type LetBinding struct {
	Name string
	Type string
	Init Expr
}

// Let introduces one or more bindings in scope for Body.
type Let struct {
	base
	Bindings []*LetBinding
	Body     Expr
}

// CaseBranch is one `Var : Type => Body` arm of a case expression.
type CaseBranch struct {
	Var  string
	Type string
	Body Expr
}

// Case discriminates Subject's dynamic type against Branches.
type Case struct {
	base
	Subject  Expr
	Branches []*CaseBranch
}

// Internal marks a method body as a built-in the Runtime Trampoline
// Emitter supplies, named "Class.method" (e.g. "IO.out_string").
type Internal struct {
	base
	Body string
}

func (IntLiteral) exprNode()      {}
func (StringLiteral) exprNode()   {}
func (BoolLiteral) exprNode()     {}
func (Identifier) exprNode()      {}
func (Assign) exprNode()          {}
func (DynamicDispatch) exprNode() {}
func (StaticDispatch) exprNode()  {}
func (SelfDispatch) exprNode()    {}
func (New) exprNode()             {}
func (IsVoid) exprNode()          {}
func (Plus) exprNode()            {}
func (Minus) exprNode()           {}
func (Times) exprNode()           {}
func (Divide) exprNode()          {}
func (Lt) exprNode()              {}
func (Le) exprNode()              {}
func (Eq) exprNode()              {}
func (Not) exprNode()             {}
func (Negate) exprNode()          {}
func (If) exprNode()              {}
func (While) exprNode()           {}
func (Block) exprNode()           {}
func (Let) exprNode()             {}
func (Case) exprNode()            {}
func (Internal) exprNode()        {}
