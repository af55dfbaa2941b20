// parser.go: recursive-descent parser for one W statement.
//
// The parser consumes the token sequence of one logical line and produces one
// statement node. The first bare identifier selects a command-specific
// sub-parser; an identifier that is not a recognized command is reinterpreted
// as the start of a bare expression, optionally followed by "= name" to bind
// the expression's value.
//
// Expression grammar, lowest to highest precedence, all left-associative:
//
//	expr   := term (( "+" | "-" | "&&" | "||" | "<" | ">" | "==" | "!=" | "<=" | ">=" ) term)*
//	term   := factor (( "*" | "/" ) factor)*
//	factor := NUMBER | STRING | BOOL | NAME | "not" factor | "-" factor
//
// There are no parentheses; nesting is only reachable through unary
// minus/not composition. In if/while conditions a single "=" is accepted as a
// synonym for "==".
//
// func and while parse only their headers. Bodies arrive later from the block
// collector as raw lines and stay unparsed until they run.
package wlang

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser consumes one statement from a token sequence.
type Parser struct {
	toks []Token
	pos  int
	line int
}

// NewParser wraps a token sequence; line is the 1-based source line number
// used in syntax errors.
func NewParser(toks []Token, line int) *Parser {
	return &Parser{toks: toks, line: line}
}

// ParseStatement parses exactly one statement and requires the whole token
// sequence to be consumed.
func ParseStatement(toks []Token, line int) (Stmt, error) {
	p := NewParser(toks, line)
	stmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if t := p.current(); t != nil {
		return nil, p.errf("unexpected trailing token %q", t.Text)
	}
	return stmt, nil
}

func (p *Parser) current() *Token {
	if p.pos < len(p.toks) {
		return &p.toks[p.pos]
	}
	return nil
}

func (p *Parser) advance() Token {
	t := p.toks[p.pos]
	p.pos++
	return t
}

func (p *Parser) errf(format string, args ...any) error {
	return &SyntaxError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

// expectOp consumes the next token if it is the given operator.
func (p *Parser) expectOp(op string) bool {
	if t := p.current(); t != nil && t.Type == OP && t.Text == op {
		p.pos++
		return true
	}
	return false
}

// parseName accepts a single-quoted name reference, a double-quoted string,
// or a bare identifier; both quoting conventions resolve names.
func (p *Parser) parseName() (string, error) {
	t := p.current()
	if t == nil {
		return "", p.errf("expected a name, got end of line")
	}
	switch t.Type {
	case NAME, STRING, IDENT:
		p.pos++
		return t.Text, nil
	}
	return "", p.errf("expected a name, got %s %q", t.Type, t.Text)
}

// --- expressions ---

var exprOps = map[string]bool{
	"+": true, "-": true,
	"&&": true, "||": true,
	"<": true, ">": true, "==": true, "!=": true, "<=": true, ">=": true,
}

func (p *Parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		t := p.current()
		if t == nil || t.Type != OP || !exprOps[t.Text] {
			return left, nil
		}
		op := p.advance().Text
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Left: left, Op: op, Right: right}
	}
}

func (p *Parser) parseTerm() (Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		t := p.current()
		if t == nil || t.Type != OP || (t.Text != "*" && t.Text != "/") {
			return left, nil
		}
		op := p.advance().Text
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Left: left, Op: op, Right: right}
	}
}

func (p *Parser) parseFactor() (Expr, error) {
	t := p.current()
	if t == nil {
		return nil, p.errf("expected an expression, got end of line")
	}
	switch t.Type {
	case NUMBER:
		p.pos++
		return numberLit(t.Text)
	case STRING:
		p.pos++
		return &StringLit{Text: t.Text}, nil
	case BOOLEAN:
		p.pos++
		return &BoolLit{Val: t.Text == "true"}, nil
	case NAME, IDENT:
		p.pos++
		return &NameRef{Name: t.Text}, nil
	case NOT:
		p.pos++
		inner, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &UnaryNot{Operand: inner}, nil
	case OP:
		if t.Text == "-" {
			p.pos++
			if n := p.current(); n != nil && n.Type == NUMBER {
				p.pos++
				return numberLit("-" + n.Text)
			}
			inner, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			return &BinaryOp{Left: &NumberLit{IsInt: true}, Op: "-", Right: inner}, nil
		}
	}
	return nil, p.errf("unexpected token in expression: %q", t.Text)
}

func numberLit(text string) (Expr, error) {
	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &SyntaxError{Msg: "invalid number literal: " + text}
		}
		return &NumberLit{Float: f}, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, &SyntaxError{Msg: "invalid number literal: " + text}
	}
	return &NumberLit{IsInt: true, Int: n}, nil
}

// parseCond parses an if/while condition: an expression, with a lone "="
// accepted as a comparison synonym for "==".
func (p *Parser) parseCond() (Expr, error) {
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.expectOp("=") {
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &BinaryOp{Left: left, Op: "==", Right: right}, nil
	}
	return left, nil
}

// --- statements ---

func (p *Parser) parseStmt() (Stmt, error) {
	t := p.current()
	if t == nil {
		return nil, p.errf("empty statement")
	}
	if t.Type == IDENT {
		switch t.Text {
		case "show":
			p.pos++
			x, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &Show{X: x}, nil
		case "int":
			p.pos++
			return p.parseInt()
		case "bool":
			p.pos++
			return p.parseBool()
		case "array":
			p.pos++
			return p.parseArray()
		case "array_str":
			p.pos++
			return p.parseArrayStr()
		case "leng":
			p.pos++
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}
			return &Length{Name: name}, nil
		case "push":
			p.pos++
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}
			x, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &Push{Name: name, X: x}, nil
		case "pop":
			p.pos++
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}
			return &Pop{Name: name}, nil
		case "get":
			p.pos++
			return p.parseGet()
		case "random":
			p.pos++
			return p.parseRandom()
		case "input":
			p.pos++
			return p.parseInput()
		case "if":
			p.pos++
			return p.parseIf()
		case "while":
			p.pos++
			cond, err := p.parseCond()
			if err != nil {
				return nil, err
			}
			return &While{Cond: cond, HeaderLine: p.line}, nil
		case "func":
			p.pos++
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}
			return &FuncDef{Name: name}, nil
		case "call":
			p.pos++
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}
			return &Call{Name: name}, nil
		case "redo":
			p.pos++
			count, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			action, err := p.parseStmt()
			if err != nil {
				return nil, err
			}
			return &Redo{Count: count, Action: action}, nil
		case "write":
			p.pos++
			text, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			file, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &Write{Text: text, Filename: file}, nil
		case "read":
			p.pos++
			return p.parseRead()
		case "sleep":
			p.pos++
			secs, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &Sleep{Seconds: secs}, nil
		case "time":
			p.pos++
			return &ShowClock{Mode: ClockUnix}, nil
		case "date":
			p.pos++
			return &ShowClock{Mode: ClockDate}, nil
		case "datetime":
			p.pos++
			return &ShowClock{Mode: ClockDateTime}, nil
		case "END":
			p.pos++
			return &End{}, nil
		}
	}
	return p.parseExprStmt()
}

// parseExprStmt handles a bare expression with an optional trailing "= name".
func (p *Parser) parseExprStmt() (Stmt, error) {
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.expectOp("=") {
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		return &Assign{Name: name, X: x}, nil
	}
	return &ExprStmt{X: x}, nil
}

// int VALUE NAME — scalar assignment; the value is coerced to a number at
// execution time.
func (p *Parser) parseInt() (Stmt, error) {
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &Assign{Name: name, X: x, Coerce: true}, nil
}

// bool NAME [true|false] — defaults to false when no literal follows.
func (p *Parser) parseBool() (Stmt, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if t := p.current(); t != nil && t.Type == BOOLEAN {
		p.pos++
		return &BoolAssign{Name: name, Val: t.Text == "true"}, nil
	}
	return &BoolAssign{Name: name, Val: false}, nil
}

// array "1,2,3" NAME — the literal is a comma-separated string; only
// integer-valued fields are kept.
func (p *Parser) parseArray() (Stmt, error) {
	t := p.current()
	if t == nil || t.Type != STRING {
		return nil, p.errf("expected a string with array values")
	}
	p.pos++
	var values []Expr
	for _, field := range strings.Split(t.Text, ",") {
		field = strings.TrimSpace(field)
		if field == "" || !looksNumeric(field) || strings.Contains(field, ".") {
			continue
		}
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			continue
		}
		values = append(values, &NumberLit{IsInt: true, Int: n})
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &NumArrayLit{Name: name, Values: values}, nil
}

// array_str "a", "b" NAME — string literals separated by commas, then the
// array name.
func (p *Parser) parseArrayStr() (Stmt, error) {
	var values []Expr
	for {
		t := p.current()
		if t == nil {
			break
		}
		if t.Type == STRING {
			p.pos++
			values = append(values, &StringLit{Text: t.Text})
			continue
		}
		if t.Type == COMMA {
			p.pos++
			continue
		}
		break
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &StrArrayLit{Name: name, Values: values}, nil
}

// get NAME INDEX [= VAR]
func (p *Parser) parseGet() (Stmt, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	index, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	target := ""
	if p.expectOp("=") {
		target, err = p.parseName()
		if err != nil {
			return nil, err
		}
	}
	return &IndexGet{Name: name, Index: index, Target: target}, nil
}

// random LO HI = NAME
func (p *Parser) parseRandom() (Stmt, error) {
	lo, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	hi, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.expectOp("=") {
		return nil, p.errf("expected '=' after random bounds")
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &RandomAssign{Lo: lo, Hi: hi, Name: name}, nil
}

// input PROMPT = NAME
func (p *Parser) parseInput() (Stmt, error) {
	prompt, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.expectOp("=") {
		return nil, p.errf("expected '=' after input prompt")
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &InputAssign{Prompt: prompt, Name: name}, nil
}

// read FILENAME = NAME
func (p *Parser) parseRead() (Stmt, error) {
	file, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.expectOp("=") {
		return nil, p.errf("expected '=' after read filename")
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &Read{Filename: file, Name: name}, nil
}

// if COND STMT [else STMT] — each branch is exactly one statement.
func (p *Parser) parseIf() (Stmt, error) {
	cond, err := p.parseCond()
	if err != nil {
		return nil, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	var els Stmt
	if t := p.current(); t != nil && t.Type == IDENT && t.Text == "else" {
		p.pos++
		els, err = p.parseStmt()
		if err != nil {
			return nil, err
		}
	}
	return &If{Cond: cond, Then: then, Else: els}, nil
}
