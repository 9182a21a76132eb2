// ast.go — statement, expression and condition nodes.
//
// Each category is a closed tagged union: an unexported marker method pins
// the set of variants, and the evaluator switches over them exhaustively.
// Statements remember the indent recorded at parse time; block membership is
// decided purely by comparing those raw counts.
package kronos

// Stmt is one parsed statement.
type Stmt interface {
	stmtNode()
	// StmtIndent is the raw leading-whitespace count of the statement's line.
	StmtIndent() int
}

type stmtBase struct {
	Indent int
}

func (s stmtBase) stmtNode()       {}
func (s stmtBase) StmtIndent() int { return s.Indent }

// AssignStmt is `set [constant] NAME to EXPR [as TYPE]`. Type is one of
// "bool", "number", "string", or empty when the assignment is unannotated.
type AssignStmt struct {
	stmtBase
	Const bool
	Name  string
	Value Expr
	Type  string
}

// PrintStmt is `print EXPR`.
type PrintStmt struct {
	stmtBase
	Value Expr
}

// ElifClause is one `else if` arm of an if-chain.
type ElifClause struct {
	Cond Cond
	Body []Stmt
}

// IfStmt is an if-chain: the primary condition, any number of elif arms, and
// an optional trailing else block.
type IfStmt struct {
	stmtBase
	Cond  Cond
	Then  []Stmt
	Elifs []ElifClause
	Else  []Stmt
}

// ForStmt is `for VAR in range START to END`, ascending and inclusive.
type ForStmt struct {
	stmtBase
	Var   string
	Start Expr
	End   Expr
	Body  []Stmt
}

// WhileStmt re-evaluates Cond before every iteration.
type WhileStmt struct {
	stmtBase
	Cond Cond
	Body []Stmt
}

// FuncStmt is `function NAME [with P1, P2, ...]` or the zero-parameter
// entry-point form spelled __init__.
type FuncStmt struct {
	stmtBase
	Name   string
	Params []string
	Body   []Stmt
}

// CallStmt invokes a function in statement position; the result is discarded.
type CallStmt struct {
	stmtBase
	Name string
	Args []Expr
}

// ReturnStmt yields a value to the nearest enclosing call.
type ReturnStmt struct {
	stmtBase
	Value Expr
}

// Handler is one `on [KIND] error [as NAME]` clause of a try statement.
// Kind is empty for an unfiltered handler; Bind is empty when the error
// message is not captured.
type Handler struct {
	Kind string
	Bind string
	Body []Stmt
}

// TryStmt runs Body and routes a raised error to the first matching handler.
type TryStmt struct {
	stmtBase
	Body     []Stmt
	Handlers []Handler
}

// RaiseStmt is `raise [KIND] error EXPR`.
type RaiseStmt struct {
	stmtBase
	Kind    string
	Message Expr
}

// Expr is one parsed expression.
type Expr interface {
	exprNode()
}

// NumberLit is a numeric literal, always a float64.
type NumberLit struct {
	Value float64
}

// StringLit is a quoted literal with the quotes stripped.
type StringLit struct {
	Value string
}

// VarRef reads a variable (or one of the fixed named constants).
type VarRef struct {
	Name string
}

// BinaryExpr chains strictly left-to-right; Op is one of "+", "-", "*", "/".
type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
}

// CallExpr invokes a function in value position (`print call add with 5, 3`).
type CallExpr struct {
	Name string
	Args []Expr
}

func (NumberLit) exprNode()  {}
func (StringLit) exprNode()  {}
func (VarRef) exprNode()     {}
func (BinaryExpr) exprNode() {}
func (CallExpr) exprNode()   {}

// CompareOp is the operator of a binary condition.
type CompareOp string

const (
	OpEq CompareOp = "=="
	OpNe CompareOp = "!="
	OpGt CompareOp = ">"
	OpLt CompareOp = "<"
	OpGe CompareOp = ">="
	OpLe CompareOp = "<="
)

// UnaryOp is the operator of a unary (sign) condition.
type UnaryOp string

const (
	OpPositive    UnaryOp = "positive"
	OpNotPositive UnaryOp = "not_positive"
	OpNegative    UnaryOp = "negative"
	OpNotNegative UnaryOp = "not_negative"
)

// Cond is one parsed condition.
type Cond interface {
	condNode()
}

// BinaryCond compares two expressions. A `not` in the source has already
// been folded into the complementary operator by the parser.
type BinaryCond struct {
	Left  Expr
	Op    CompareOp
	Right Expr
}

// UnaryCond tests the sign of a numeric expression.
type UnaryCond struct {
	Value Expr
	Op    UnaryOp
}

func (BinaryCond) condNode() {}
func (UnaryCond) condNode()  {}
