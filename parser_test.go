// parser_test.go
package wlang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) Stmt {
	t.Helper()
	ts := toks(t, src)
	stmt, err := ParseStatement(ts, 1)
	require.NoError(t, err, "ParseStatement(%q)", src)
	return stmt
}

func parseErr(t *testing.T, src string) error {
	t.Helper()
	ts := toks(t, src)
	_, err := ParseStatement(ts, 1)
	require.Error(t, err, "ParseStatement(%q) should fail", src)
	return err
}

func Test_Parser_Show(t *testing.T) {
	s := parse(t, `show "hello"`).(*Show)
	require.Equal(t, &StringLit{Text: "hello"}, s.X)

	s = parse(t, `show 'x' + 1`).(*Show)
	bin := s.X.(*BinaryOp)
	require.Equal(t, "+", bin.Op)
	require.Equal(t, &NameRef{Name: "x"}, bin.Left)
}

func Test_Parser_IntAssign(t *testing.T) {
	a := parse(t, `int "5" 'x'`).(*Assign)
	require.Equal(t, "x", a.Name)
	require.True(t, a.Coerce)
	require.Equal(t, &StringLit{Text: "5"}, a.X)

	a = parse(t, `int 2 + 3 'y'`).(*Assign)
	require.Equal(t, "y", a.Name)
	require.IsType(t, &BinaryOp{}, a.X)
}

func Test_Parser_BoolDefaultsFalse(t *testing.T) {
	b := parse(t, `bool 'flag'`).(*BoolAssign)
	require.Equal(t, "flag", b.Name)
	require.False(t, b.Val)

	b = parse(t, `bool 'flag' true`).(*BoolAssign)
	require.True(t, b.Val)
}

func Test_Parser_ArrayLiteral(t *testing.T) {
	a := parse(t, `array "1, 2, 3" 'xs'`).(*NumArrayLit)
	require.Equal(t, "xs", a.Name)
	require.Len(t, a.Values, 3)
	require.Equal(t, &NumberLit{IsInt: true, Int: 2}, a.Values[1])

	// non-integer fields are dropped, not errors
	a = parse(t, `array "1, oops, 2.5, 3" 'xs'`).(*NumArrayLit)
	require.Len(t, a.Values, 2)
}

func Test_Parser_ArrayStr(t *testing.T) {
	a := parse(t, `array_str "red", "green", "blue" 'cs'`).(*StrArrayLit)
	require.Equal(t, "cs", a.Name)
	require.Len(t, a.Values, 3)
	require.Equal(t, &StringLit{Text: "green"}, a.Values[1])
}

func Test_Parser_GetWithAndWithoutTarget(t *testing.T) {
	g := parse(t, `get 'xs' 0`).(*IndexGet)
	require.Equal(t, "xs", g.Name)
	require.Empty(t, g.Target)

	g = parse(t, `get 'xs' 'i' = 'out'`).(*IndexGet)
	require.Equal(t, &NameRef{Name: "i"}, g.Index)
	require.Equal(t, "out", g.Target)
}

func Test_Parser_Random(t *testing.T) {
	r := parse(t, `random 1 10 = 'n'`).(*RandomAssign)
	require.Equal(t, "n", r.Name)

	err := parseErr(t, `random 1 10 'n'`)
	require.Contains(t, err.Error(), "expected '=' after random bounds")
}

func Test_Parser_Precedence(t *testing.T) {
	// 1 + 2 * 3 groups as 1 + (2 * 3)
	e := parse(t, `show 1 + 2 * 3`).(*Show).X.(*BinaryOp)
	require.Equal(t, "+", e.Op)
	inner := e.Right.(*BinaryOp)
	require.Equal(t, "*", inner.Op)

	// comparisons sit at the same level as + and are left-associative
	e = parse(t, `show 1 + 2 < 4`).(*Show).X.(*BinaryOp)
	require.Equal(t, "<", e.Op)
	require.Equal(t, "+", e.Left.(*BinaryOp).Op)
}

func Test_Parser_UnaryMinusAndNot(t *testing.T) {
	n := parse(t, `show -5`).(*Show).X.(*NumberLit)
	require.Equal(t, int64(-5), n.Int)

	u := parse(t, `show not 'ok'`).(*Show).X.(*UnaryNot)
	require.Equal(t, &NameRef{Name: "ok"}, u.Operand)
}

func Test_Parser_BareExprAssign(t *testing.T) {
	a := parse(t, `'i' + 1 = 'i'`).(*Assign)
	require.Equal(t, "i", a.Name)
	require.False(t, a.Coerce)

	e := parse(t, `'i' + 1`).(*ExprStmt)
	require.IsType(t, &BinaryOp{}, e.X)
}

func Test_Parser_IfElse(t *testing.T) {
	s := parse(t, `if 'x' == 1 show "one" else show "other"`).(*If)
	require.IsType(t, &BinaryOp{}, s.Cond)
	require.IsType(t, &Show{}, s.Then)
	require.IsType(t, &Show{}, s.Else)

	// a lone = in a condition compares
	s = parse(t, `if 'x' = 1 show "one"`).(*If)
	require.Equal(t, "==", s.Cond.(*BinaryOp).Op)
	require.Nil(t, s.Else)
}

func Test_Parser_WhileHeader(t *testing.T) {
	w := parse(t, `while 'i' < 3`).(*While)
	require.Equal(t, "<", w.Cond.(*BinaryOp).Op)
	require.Empty(t, w.Body, "bodies arrive from the block collector")
}

func Test_Parser_FuncAndCall(t *testing.T) {
	f := parse(t, `func 'greet'`).(*FuncDef)
	require.Equal(t, "greet", f.Name)

	c := parse(t, `call 'greet'`).(*Call)
	require.Equal(t, "greet", c.Name)
}

func Test_Parser_Redo(t *testing.T) {
	r := parse(t, `redo 3 show "hi"`).(*Redo)
	require.Equal(t, &NumberLit{IsInt: true, Int: 3}, r.Count)
	require.IsType(t, &Show{}, r.Action)
}

func Test_Parser_FileOps(t *testing.T) {
	w := parse(t, `write "data" "out.txt"`).(*Write)
	require.Equal(t, &StringLit{Text: "data"}, w.Text)

	r := parse(t, `read "out.txt" = 'contents'`).(*Read)
	require.Equal(t, "contents", r.Name)

	err := parseErr(t, `read "out.txt" 'contents'`)
	require.Contains(t, err.Error(), "expected '=' after read filename")
}

func Test_Parser_ClockCommands(t *testing.T) {
	require.Equal(t, ClockUnix, parse(t, `time`).(*ShowClock).Mode)
	require.Equal(t, ClockDate, parse(t, `date`).(*ShowClock).Mode)
	require.Equal(t, ClockDateTime, parse(t, `datetime`).(*ShowClock).Mode)
}

func Test_Parser_End(t *testing.T) {
	require.IsType(t, &End{}, parse(t, `END`))
}

func Test_Parser_TrailingTokens(t *testing.T) {
	err := parseErr(t, `leng 'xs' extra`)
	se, ok := err.(*SyntaxError)
	require.True(t, ok, "want *SyntaxError, got %T", err)
	require.Equal(t, 1, se.Line)
	require.Contains(t, se.Msg, "unexpected trailing token")
}

func Test_Parser_EmptyAndMalformed(t *testing.T) {
	_, err := ParseStatement(nil, 4)
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty statement")

	err = parseErr(t, `show +`)
	require.Contains(t, err.Error(), "unexpected token in expression")

	err = parseErr(t, `show`)
	require.Contains(t, err.Error(), "expected an expression, got end of line")

	err = parseErr(t, `push`)
	require.Contains(t, err.Error(), "expected a name")
}
