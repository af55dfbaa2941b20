// ast.go: the closed set of W expression and statement nodes.
//
// The parser produces exactly these shapes and the evaluator type-switches
// over them exhaustively, so adding a command is a compile-checked change in
// both places. func/while statements carry their bodies as raw source lines;
// bodies are re-tokenized and re-parsed when they run, never at definition
// time.
package wlang

// Expr is an expression node; evaluating one yields a Value.
type Expr interface{ exprNode() }

// Stmt is a statement node; executing one mutates the environment or produces
// output.
type Stmt interface{ stmtNode() }

// --- expressions ---

// NumberLit is an integer or decimal literal.
type NumberLit struct {
	IsInt bool
	Int   int64
	Float float64
}

// StringLit is a double-quoted string literal.
type StringLit struct {
	Text string
}

// BoolLit is true or false.
type BoolLit struct {
	Val bool
}

// NameRef refers to a value bound in one of the three value namespaces.
// Resolution happens at evaluation time, in the order scalar variable,
// numeric array, string array.
type NameRef struct {
	Name string
}

// BinaryOp applies Op to the evaluated operands. Op is one of
// + - * / < > == != <= >= && ||.
type BinaryOp struct {
	Left  Expr
	Op    string
	Right Expr
}

// UnaryNot negates a boolean operand.
type UnaryNot struct {
	Operand Expr
}

func (*NumberLit) exprNode() {}
func (*StringLit) exprNode() {}
func (*BoolLit) exprNode()   {}
func (*NameRef) exprNode()   {}
func (*BinaryOp) exprNode()  {}
func (*UnaryNot) exprNode()  {}

// --- statements ---

// ExprStmt is a bare expression at statement position; its value is printed.
type ExprStmt struct {
	X Expr
}

// Assign binds the expression's value to Name in the scalar namespace.
// Produced by the "int" command (with Coerce set, forcing the value numeric)
// and by the trailing "= name" form.
type Assign struct {
	Name   string
	X      Expr
	Coerce bool
}

// BoolAssign binds a boolean literal to Name (the "bool" command; the literal
// defaults to false when omitted).
type BoolAssign struct {
	Name string
	Val  bool
}

// Show prints the expression's textual form.
type Show struct {
	X Expr
}

// NumArrayLit binds an ordered sequence of numeric scalars to Name.
type NumArrayLit struct {
	Name   string
	Values []Expr
}

// StrArrayLit binds an ordered sequence of strings to Name.
type StrArrayLit struct {
	Name   string
	Values []Expr
}

// Length prints the length of the named array.
type Length struct {
	Name string
}

// Push appends the expression's value to the named array.
type Push struct {
	Name string
	X    Expr
}

// Pop removes and prints the last element of the named array.
type Pop struct {
	Name string
}

// IndexGet reads one element of the named array. With a Target it binds the
// element in the scalar namespace, otherwise it prints it.
type IndexGet struct {
	Name   string
	Index  Expr
	Target string // empty means print
}

// RandomAssign binds a uniform integer drawn from [Lo, Hi] to Name.
type RandomAssign struct {
	Lo   Expr
	Hi   Expr
	Name string
}

// InputAssign prints the prompt, blocks for one line of input, and binds it
// as a string.
type InputAssign struct {
	Prompt Expr
	Name   string
}

// If executes exactly one branch. There is no block form; each branch is a
// single statement.
type If struct {
	Cond Expr
	Then Stmt
	Else Stmt // may be nil
}

// While repeats its body while Cond holds. Body lines are re-parsed each
// iteration. HeaderLine is the 1-based source line of the header, used for
// error reporting from within the body.
type While struct {
	Cond       Expr
	Body       []string
	HeaderLine int
}

// FuncDef stores the raw body lines under Name, replacing any prior
// definition.
type FuncDef struct {
	Name string
	Body []string
}

// Call runs a stored procedure body in the current environment.
type Call struct {
	Name string
}

// Redo executes one statement Count times.
type Redo struct {
	Count  Expr
	Action Stmt
}

// Write persists Text under Filename in the scratch directory.
type Write struct {
	Text     Expr
	Filename Expr
}

// Read loads the named scratch file and binds its contents to Name.
type Read struct {
	Filename Expr
	Name     string
}

// Sleep blocks for the given number of seconds (fractional allowed).
type Sleep struct {
	Seconds Expr
}

// ClockMode selects what the time/date/datetime commands print.
type ClockMode int

const (
	ClockUnix     ClockMode = iota // "time": seconds since the epoch
	ClockDate                      // "date": YYYY-MM-DD
	ClockDateTime                  // "datetime": YYYY-MM-DD HH:MM:SS
)

// ShowClock prints a formatted snapshot of the external clock.
type ShowClock struct {
	Mode ClockMode
}

// End halts the running program; the driver skips all remaining lines.
type End struct{}

func (*ExprStmt) stmtNode()     {}
func (*Assign) stmtNode()       {}
func (*BoolAssign) stmtNode()   {}
func (*Show) stmtNode()         {}
func (*NumArrayLit) stmtNode()  {}
func (*StrArrayLit) stmtNode()  {}
func (*Length) stmtNode()       {}
func (*Push) stmtNode()         {}
func (*Pop) stmtNode()          {}
func (*IndexGet) stmtNode()     {}
func (*RandomAssign) stmtNode() {}
func (*InputAssign) stmtNode()  {}
func (*If) stmtNode()           {}
func (*While) stmtNode()        {}
func (*FuncDef) stmtNode()      {}
func (*Call) stmtNode()         {}
func (*Redo) stmtNode()         {}
func (*Write) stmtNode()        {}
func (*Read) stmtNode()         {}
func (*Sleep) stmtNode()        {}
func (*ShowClock) stmtNode()    {}
func (*End) stmtNode()          {}
