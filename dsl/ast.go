package dsl

// Program is the root of the abstract syntax tree: top-level variable
// declarations followed by zero or more workflows. Declaration order is
// preserved for evaluation order. AST nodes are immutable once constructed;
// the validator, generator, and converter only read them.
type Program struct {
	Variables []VarDecl
	Workflows []Workflow
}

// VarDecl is a top-level `let|var|const NAME = EXPR` declaration. Name
// uniqueness across declarations is not enforced; at run time the last
// write wins.
type VarDecl struct {
	Keyword string // "let", "var", or "const"
	Name    string
	Value   Expr
}

// Workflow is a named, ordered collection of steps and conditional blocks.
type Workflow struct {
	Name string
	Body []Stmt
}

// Stmt is a workflow body statement: either *Step or *Conditional.
type Stmt interface {
	stmtNode()
}

// Step pairs a workflow-scoped numeric identity with a single command
// invocation. Number uniqueness is a validator invariant, not a structural
// one.
type Step struct {
	Number  int
	Command Command
}

// Conditional is an `if (cmp) { steps } else { steps }` block.
type Conditional struct {
	Condition *Comparison
	IfSteps   []*Step
	ElseSteps []*Step
}

func (*Step) stmtNode()        {}
func (*Conditional) stmtNode() {}

// Command is a named operation with positional arguments.
type Command struct {
	Name string
	Args []Expr
}

// Expr is an expression node. The concrete variants are StringLit,
// NumberLit, Ident, Binary, StepRef, PropertyAccess, and Comparison.
type Expr interface {
	exprNode()
}

// StringLit is a quoted string literal.
type StringLit struct {
	Value string
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
}

// Ident names a declared variable.
type Ident struct {
	Name string
}

// Binary is the single `+` operator, left-associative with no further
// precedence.
type Binary struct {
	Op    string // always "+"
	Left  Expr
	Right Expr
}

// StepRef denotes the result produced by another step, creating a data
// dependency edge.
type StepRef struct {
	Number int
}

// PropertyAccess projects a property out of an object expression, as in
// `step 1.status`.
type PropertyAccess struct {
	Object   Expr
	Property string
}

// Comparison is a relational expression used as a conditional guard.
type Comparison struct {
	Op    string // "==", "!=", ">", "<", ">=", "<="
	Left  Expr
	Right Expr
}

func (*StringLit) exprNode()      {}
func (*NumberLit) exprNode()      {}
func (*Ident) exprNode()          {}
func (*Binary) exprNode()         {}
func (*StepRef) exprNode()        {}
func (*PropertyAccess) exprNode() {}
func (*Comparison) exprNode()     {}

// Steps returns the workflow's flat step list, excluding steps nested in
// conditional branches. The validator's dependency scan and the graph
// generator both operate over this flat view.
func (w *Workflow) Steps() []*Step {
	steps := make([]*Step, 0, len(w.Body))
	for _, stmt := range w.Body {
		if s, ok := stmt.(*Step); ok {
			steps = append(steps, s)
		}
	}
	return steps
}
