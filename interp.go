// interp.go: the tree-walking evaluator.
//
// The Interpreter executes statement nodes against the flat global
// Environment. Execution is strictly sequential and single-threaded; sleep
// and input are blocking suspension points. All failures surface as typed
// error values (errors.go) returned from Exec/EvalExpr; nothing panics across
// a statement boundary.
package wlang

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Interpreter evaluates expressions and executes statements. Fields are
// exported so hosts and tests can substitute output sinks and services.
type Interpreter struct {
	Env    *Env
	Out    io.Writer // show/print output
	ErrOut io.Writer // per-statement error reports

	Clock Clock
	Rand  Rand
	Store Store
	Input LineReader

	// MaxIterations caps while-loop body executions; MaxCallDepth caps
	// nested procedure calls. Both convert runaway scripts into recoverable
	// runtime errors.
	MaxIterations int
	MaxCallDepth  int

	callDepth int
	halted    bool
}

// NewInterpreter builds a ready-to-run interpreter with the given config
// (nil means defaults): real clock, time-seeded randomness, scratch files in
// the configured directory, stdin input, stdout/stderr output.
func NewInterpreter(cfg *Config) *Interpreter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Interpreter{
		Env:           NewEnv(),
		Out:           os.Stdout,
		ErrOut:        os.Stderr,
		Clock:         SystemClock(),
		Rand:          SystemRand(),
		Store:         DirStore(cfg.ScratchDir),
		Input:         StdinReader(os.Stdin, os.Stdout),
		MaxIterations: cfg.MaxIterations,
		MaxCallDepth:  cfg.MaxCallDepth,
	}
}

// Halted reports whether an END statement has stopped the program.
func (i *Interpreter) Halted() bool { return i.halted }

// ClearHalt re-arms a halted interpreter (used by the REPL).
func (i *Interpreter) ClearHalt() { i.halted = false }

// --- expression evaluation ---

// EvalExpr evaluates an expression node to a value.
func (i *Interpreter) EvalExpr(e Expr) (Value, error) {
	switch n := e.(type) {
	case *NumberLit:
		if n.IsInt {
			return Int(n.Int), nil
		}
		return Num(n.Float), nil
	case *StringLit:
		return Str(n.Text), nil
	case *BoolLit:
		return Bool(n.Val), nil
	case *NameRef:
		v, ok := i.Env.Lookup(n.Name)
		if !ok {
			return Value{}, undef("no variable or array named: %s", n.Name)
		}
		return v, nil
	case *UnaryNot:
		v, err := i.EvalExpr(n.Operand)
		if err != nil {
			return Value{}, err
		}
		if v.Tag != VTBool {
			return Value{}, typeErr("operator 'not' requires a boolean value")
		}
		return Bool(!v.Data.(bool)), nil
	case *BinaryOp:
		l, err := i.EvalExpr(n.Left)
		if err != nil {
			return Value{}, err
		}
		r, err := i.EvalExpr(n.Right)
		if err != nil {
			return Value{}, err
		}
		return evalBinary(n.Op, l, r)
	}
	return Value{}, typeErr("unknown expression node %T", e)
}

func evalBinary(op string, l, r Value) (Value, error) {
	switch op {
	case "&&", "||":
		if l.Tag != VTBool || r.Tag != VTBool {
			return Value{}, typeErr("operator %q requires boolean operands", op)
		}
		a, b := l.Data.(bool), r.Data.(bool)
		if op == "&&" {
			return Bool(a && b), nil
		}
		return Bool(a || b), nil

	case "+", "-", "*", "/":
		if l.Tag == VTStr && r.Tag == VTStr && op == "+" {
			return Str(l.Data.(string) + r.Data.(string)), nil
		}
		if !l.IsNumeric() || !r.IsNumeric() {
			return Value{}, typeErr("operator %q requires numeric operands", op)
		}
		return arith(op, l, r)

	case "<", ">", "<=", ">=", "==", "!=":
		return compare(op, l, r)
	}
	return Value{}, typeErr("unknown operator %q", op)
}

// arith applies an arithmetic operator. Two ints yield an int with "/"
// truncating toward zero; any float operand promotes the result to float.
func arith(op string, l, r Value) (Value, error) {
	if l.Tag == VTInt && r.Tag == VTInt {
		a, b := l.Data.(int64), r.Data.(int64)
		switch op {
		case "+":
			return Int(a + b), nil
		case "-":
			return Int(a - b), nil
		case "*":
			return Int(a * b), nil
		case "/":
			if b == 0 {
				return Value{}, typeErr("division by zero")
			}
			return Int(a / b), nil
		}
	}
	a, b := l.AsFloat(), r.AsFloat()
	switch op {
	case "+":
		return Num(a + b), nil
	case "-":
		return Num(a - b), nil
	case "*":
		return Num(a * b), nil
	case "/":
		if b == 0 {
			return Value{}, typeErr("division by zero")
		}
		return Num(a / b), nil
	}
	return Value{}, typeErr("unknown operator %q", op)
}

// compare applies a comparison operator with natural ordering. A numeric
// operand paired with a numeric-looking string coerces the string first, so
// input-sourced values compare the way scripts expect.
func compare(op string, l, r Value) (Value, error) {
	if l.IsNumeric() && r.Tag == VTStr {
		if cv, ok := coerceNumeric(r); ok {
			r = cv
		}
	}
	if r.IsNumeric() && l.Tag == VTStr {
		if cv, ok := coerceNumeric(l); ok {
			l = cv
		}
	}

	switch {
	case l.IsNumeric() && r.IsNumeric():
		a, b := l.AsFloat(), r.AsFloat()
		return Bool(ordered(op, cmpFloat(a, b))), nil
	case l.Tag == VTStr && r.Tag == VTStr:
		return Bool(ordered(op, strings.Compare(l.Data.(string), r.Data.(string)))), nil
	case l.Tag == VTBool && r.Tag == VTBool:
		if op != "==" && op != "!=" {
			return Value{}, typeErr("operator %q cannot order booleans", op)
		}
		eq := l.Data.(bool) == r.Data.(bool)
		return Bool(eq == (op == "==")), nil
	}

	// mixed kinds: equal never, ordering is a type error
	switch op {
	case "==":
		return Bool(false), nil
	case "!=":
		return Bool(true), nil
	}
	return Value{}, typeErr("operator %q cannot compare %s", op, "values of different kinds")
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func ordered(op string, c int) bool {
	switch op {
	case "<":
		return c < 0
	case ">":
		return c > 0
	case "<=":
		return c <= 0
	case ">=":
		return c >= 0
	case "==":
		return c == 0
	case "!=":
		return c != 0
	}
	return false
}

// evalBool evaluates a condition expression and requires a boolean result.
func (i *Interpreter) evalBool(e Expr, what string) (bool, error) {
	v, err := i.EvalExpr(e)
	if err != nil {
		return false, err
	}
	if v.Tag != VTBool {
		return false, typeErr("%s condition must be a boolean, got %s", what, FormatValue(v))
	}
	return v.Data.(bool), nil
}

// evalIndex evaluates an expression to an integer, truncating floats and
// coercing numeric-looking strings.
func (i *Interpreter) evalIndex(e Expr, what string) (int64, error) {
	v, err := i.EvalExpr(e)
	if err != nil {
		return 0, err
	}
	if cv, ok := coerceNumeric(v); ok {
		v = cv
	}
	switch v.Tag {
	case VTInt:
		return v.Data.(int64), nil
	case VTNum:
		return int64(v.Data.(float64)), nil
	}
	return 0, typeErr("%s requires an integer, got %s", what, FormatValue(v))
}

// --- statement execution ---

// Exec executes one statement node. line is the 1-based source line the
// statement came from, used for body execution and error reporting.
func (i *Interpreter) Exec(s Stmt, line int) error {
	if i.halted {
		return nil
	}
	switch n := s.(type) {
	case *ExprStmt:
		v, err := i.EvalExpr(n.X)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.Out, FormatValue(v))
		return nil

	case *Assign:
		v, err := i.EvalExpr(n.X)
		if err != nil {
			return err
		}
		if n.Coerce {
			cv, ok := coerceNumeric(v)
			if !ok {
				return typeErr("int requires a numeric value, got %s", FormatValue(v))
			}
			v = cv
		}
		i.Env.SetVar(n.Name, v)
		return nil

	case *BoolAssign:
		i.Env.SetVar(n.Name, Bool(n.Val))
		return nil

	case *Show:
		v, err := i.EvalExpr(n.X)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.Out, FormatValue(v))
		return nil

	case *NumArrayLit:
		elems := make([]Value, 0, len(n.Values))
		for _, ve := range n.Values {
			v, err := i.EvalExpr(ve)
			if err != nil {
				return err
			}
			if !v.IsNumeric() {
				return typeErr("numeric array %q cannot hold %s", n.Name, FormatValue(v))
			}
			elems = append(elems, v)
		}
		i.Env.SetNumArray(n.Name, elems)
		return nil

	case *StrArrayLit:
		elems := make([]Value, 0, len(n.Values))
		for _, ve := range n.Values {
			v, err := i.EvalExpr(ve)
			if err != nil {
				return err
			}
			if v.Tag != VTStr {
				return typeErr("string array %q cannot hold %s", n.Name, FormatValue(v))
			}
			elems = append(elems, v)
		}
		i.Env.SetStrArray(n.Name, elems)
		return nil

	case *Length:
		elems, _, ok := i.Env.Array(n.Name)
		if !ok {
			return undef("no array named: %s", n.Name)
		}
		fmt.Fprintln(i.Out, len(elems))
		return nil

	case *Push:
		return i.execPush(n)

	case *Pop:
		elems, tag, ok := i.Env.Array(n.Name)
		if !ok {
			return undef("no array named: %s", n.Name)
		}
		if len(elems) == 0 {
			return boundsErr("pop from empty array %q", n.Name)
		}
		last := elems[len(elems)-1]
		i.Env.ReplaceArray(n.Name, tag, elems[:len(elems)-1])
		fmt.Fprintln(i.Out, FormatValue(last))
		return nil

	case *IndexGet:
		elems, _, ok := i.Env.Array(n.Name)
		if !ok {
			return undef("no array named: %s", n.Name)
		}
		idx, err := i.evalIndex(n.Index, "array index")
		if err != nil {
			return err
		}
		if idx < 0 || idx >= int64(len(elems)) {
			return boundsErr("invalid index: %d", idx)
		}
		if n.Target != "" {
			i.Env.SetVar(n.Target, elems[idx])
			return nil
		}
		fmt.Fprintln(i.Out, FormatValue(elems[idx]))
		return nil

	case *RandomAssign:
		lo, err := i.evalIndex(n.Lo, "random bound")
		if err != nil {
			return err
		}
		hi, err := i.evalIndex(n.Hi, "random bound")
		if err != nil {
			return err
		}
		if lo > hi {
			return boundsErr("random: lower bound %d greater than upper bound %d", lo, hi)
		}
		i.Env.SetVar(n.Name, Int(i.Rand.IntBetween(lo, hi)))
		return nil

	case *InputAssign:
		pv, err := i.EvalExpr(n.Prompt)
		if err != nil {
			return err
		}
		text, err := i.Input.ReadLine(FormatValue(pv))
		if err != nil {
			return ioErr("input failed: %v", err)
		}
		i.Env.SetVar(n.Name, Str(text))
		return nil

	case *If:
		cond, err := i.evalBool(n.Cond, "if")
		if err != nil {
			return err
		}
		if cond {
			return i.Exec(n.Then, line)
		}
		if n.Else != nil {
			return i.Exec(n.Else, line)
		}
		return nil

	case *While:
		return i.execWhile(n)

	case *FuncDef:
		i.Env.SetProc(n.Name, n.Body)
		return nil

	case *Call:
		return i.execCall(n, line)

	case *Redo:
		count, err := i.evalIndex(n.Count, "redo count")
		if err != nil {
			return err
		}
		for k := int64(0); k < count && !i.halted; k++ {
			if err := i.Exec(n.Action, line); err != nil {
				return err
			}
		}
		return nil

	case *Write:
		tv, err := i.EvalExpr(n.Text)
		if err != nil {
			return err
		}
		fv, err := i.EvalExpr(n.Filename)
		if err != nil {
			return err
		}
		if fv.Tag != VTStr {
			return typeErr("write requires a string filename")
		}
		if err := i.Store.WriteFile(fv.Data.(string), FormatValue(tv)); err != nil {
			return ioErr("cannot write %s: %v", fv.Data.(string), err)
		}
		return nil

	case *Read:
		fv, err := i.EvalExpr(n.Filename)
		if err != nil {
			return err
		}
		if fv.Tag != VTStr {
			return typeErr("read requires a string filename")
		}
		content, err := i.Store.ReadFile(fv.Data.(string))
		if err != nil {
			return ioErr("no file named: %s", fv.Data.(string))
		}
		i.Env.SetVar(n.Name, Str(content))
		return nil

	case *Sleep:
		v, err := i.EvalExpr(n.Seconds)
		if err != nil {
			return err
		}
		if !v.IsNumeric() {
			return typeErr("sleep requires a number of seconds")
		}
		secs := v.AsFloat()
		if secs < 0 {
			return typeErr("sleep requires a non-negative duration")
		}
		i.Clock.Sleep(time.Duration(secs * float64(time.Second)))
		return nil

	case *ShowClock:
		now := i.Clock.Now()
		switch n.Mode {
		case ClockUnix:
			fmt.Fprintln(i.Out, now.Unix())
		case ClockDate:
			fmt.Fprintln(i.Out, now.Format("2006-01-02"))
		case ClockDateTime:
			fmt.Fprintln(i.Out, now.Format("2006-01-02 15:04:05"))
		}
		return nil

	case *End:
		i.halted = true
		return nil
	}
	return typeErr("unknown statement node %T", s)
}

func (i *Interpreter) execPush(n *Push) error {
	v, err := i.EvalExpr(n.X)
	if err != nil {
		return err
	}
	elems, tag, ok := i.Env.Array(n.Name)
	if !ok {
		return undef("no array named: %s", n.Name)
	}
	if tag == VTNumArray {
		cv, ok := coerceNumeric(v)
		if !ok {
			return typeErr("cannot push %s onto numeric array %q", FormatValue(v), n.Name)
		}
		v = cv
	} else if v.Tag != VTStr {
		return typeErr("cannot push %s onto string array %q", FormatValue(v), n.Name)
	}
	i.Env.ReplaceArray(n.Name, tag, append(elems, v))
	return nil
}

// execWhile re-evaluates the condition before every iteration and re-parses
// every body line on every pass (bodies are raw lines, not cached ASTs). The
// iteration cap converts non-advancing loops into a recoverable error.
func (i *Interpreter) execWhile(n *While) error {
	iterations := 0
	for {
		cond, err := i.evalBool(n.Cond, "while")
		if err != nil {
			return err
		}
		if !cond || i.halted {
			return nil
		}
		if iterations >= i.MaxIterations {
			return &RuntimeError{
				Kind: ErrLoopLimit,
				Msg:  fmt.Sprintf("exceeded iteration limit (%d) in while loop", i.MaxIterations),
			}
		}
		for idx, bodyLine := range n.Body {
			if i.halted {
				return nil
			}
			i.RunLine(bodyLine, n.HeaderLine+idx+1)
		}
		iterations++
	}
}

// execCall runs a stored procedure body line by line in the current
// environment: no new scope, no parameters. The depth guard converts
// unbounded recursion into a recoverable error.
func (i *Interpreter) execCall(n *Call, line int) error {
	body, ok := i.Env.Proc(n.Name)
	if !ok {
		return undef("no procedure named: %s", n.Name)
	}
	if i.callDepth >= i.MaxCallDepth {
		return &RuntimeError{
			Kind: ErrDepth,
			Msg:  fmt.Sprintf("exceeded call depth limit (%d) calling %q", i.MaxCallDepth, n.Name),
		}
	}
	i.callDepth++
	defer func() { i.callDepth-- }()
	for idx, bodyLine := range body {
		if i.halted {
			return nil
		}
		i.RunLine(bodyLine, line+idx+1)
	}
	return nil
}

// --- line execution ---

// ExecLine runs exactly one statement: tokenize, parse, execute. Blank and
// comment-only input is a no-op. Errors are returned, not reported.
func (i *Interpreter) ExecLine(src string, lineNo int) error {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(src, "#") {
		return nil
	}
	toks, err := Tokenize(src)
	if err != nil {
		return err
	}
	if len(toks) == 0 {
		return nil
	}
	stmt, err := ParseStatement(toks, lineNo)
	if err != nil {
		return err
	}
	return i.Exec(stmt, lineNo)
}

// RunLine executes one source line: each ";"-separated statement runs through
// the full lex/parse/exec pipeline under its own guard, so one bad statement
// is reported and the rest of the line still runs.
func (i *Interpreter) RunLine(src string, lineNo int) {
	if i.halted {
		return
	}
	for _, piece := range splitStatements(src) {
		if i.halted {
			return
		}
		if err := i.ExecLine(piece, lineNo); err != nil {
			i.report(lineNo, err)
		}
	}
}

// report writes one per-statement error line and lets execution continue.
// Syntax errors already carry their line, so only their message is printed.
func (i *Interpreter) report(lineNo int, err error) {
	if se, ok := err.(*SyntaxError); ok {
		fmt.Fprintf(i.ErrOut, "[ERROR] Line %d: %s\n", lineNo, se.Msg)
		return
	}
	fmt.Fprintf(i.ErrOut, "[ERROR] Line %d: %v\n", lineNo, err)
}

// splitStatements splits a line on semicolons, ignoring semicolons inside
// quoted strings.
func splitStatements(line string) []string {
	var pieces []string
	var inDouble, inSingle bool
	start := 0
	for idx := 0; idx < len(line); idx++ {
		switch line[idx] {
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case ';':
			if !inDouble && !inSingle {
				pieces = append(pieces, line[start:idx])
				start = idx + 1
			}
		}
	}
	pieces = append(pieces, line[start:])
	return pieces
}
