// lexer.go: line tokenizer for the W language.
//
// W is line-oriented: a source line is tokenized independently, there are no
// multi-line tokens. The scanner does longest-match at each position over a
// fixed, ordered set of token shapes; keyword shapes (true/false/not) are
// checked before the generic identifier shape. Whitespace runs and trailing
// '#' comments are discarded. When nothing matches, Tokenize fails with a
// *LexError carrying the byte position and a short snippet of the offending
// input.
package wlang

import (
	"strings"
)

// TokenType represents the kind of token.
type TokenType int

const (
	ILLEGAL TokenType = iota

	OP        // run of one or more operator characters: + - * / = < > ! & |
	NUMBER    // integer or decimal literal
	STRING    // double-quoted string literal
	NAME      // single-quoted reference to a bound name
	IDENT     // bare identifier: command keyword or variable name
	BOOLEAN   // true / false
	NOT       // logical-not keyword
	SEMICOLON // ";"
	COMMA     // ","
)

func (t TokenType) String() string {
	switch t {
	case OP:
		return "OP"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case NAME:
		return "NAME"
	case IDENT:
		return "IDENT"
	case BOOLEAN:
		return "BOOLEAN"
	case NOT:
		return "NOT"
	case SEMICOLON:
		return "SEMICOLON"
	case COMMA:
		return "COMMA"
	default:
		return "ILLEGAL"
	}
}

// Token is a lexical token. Text holds the payload with delimiters already
// stripped for STRING and NAME tokens. Pos is the 0-based byte offset of the
// token within its line, used for caret rendering in error snippets.
type Token struct {
	Type TokenType
	Text string
	Pos  int
}

// keywords checked before the identifier shape.
var keywords = map[string]TokenType{
	"true":  BOOLEAN,
	"false": BOOLEAN,
	"not":   NOT,
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func isOpChar(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '=', '<', '>', '!', '&', '|':
		return true
	}
	return false
}

// Tokenize converts one source line into an ordered token sequence. Whitespace
// and a trailing '#' comment are skipped. It never sees more than one line, so
// a newline byte is treated like any other unknown byte.
func Tokenize(line string) ([]Token, error) {
	var tokens []Token
	pos := 0
	for pos < len(line) {
		ch := line[pos]

		// whitespace
		if ch == ' ' || ch == '\t' || ch == '\r' {
			pos++
			continue
		}

		// comment runs to end of line
		if ch == '#' {
			break
		}

		switch ch {
		case ';':
			tokens = append(tokens, Token{Type: SEMICOLON, Text: ";", Pos: pos})
			pos++
			continue
		case ',':
			tokens = append(tokens, Token{Type: COMMA, Text: ",", Pos: pos})
			pos++
			continue
		}

		// operator cluster: maximal run of operator characters
		if isOpChar(ch) {
			start := pos
			for pos < len(line) && isOpChar(line[pos]) {
				pos++
			}
			tokens = append(tokens, Token{Type: OP, Text: line[start:pos], Pos: start})
			continue
		}

		// number: digits with an optional single decimal part
		if isDigit(ch) {
			start := pos
			for pos < len(line) && isDigit(line[pos]) {
				pos++
			}
			if pos+1 < len(line) && line[pos] == '.' && isDigit(line[pos+1]) {
				pos++
				for pos < len(line) && isDigit(line[pos]) {
					pos++
				}
			}
			tokens = append(tokens, Token{Type: NUMBER, Text: line[start:pos], Pos: start})
			continue
		}

		// double-quoted string literal (no escapes, single line)
		if ch == '"' {
			end := strings.IndexByte(line[pos+1:], '"')
			if end < 0 {
				return nil, lexErrAt(line, pos)
			}
			tokens = append(tokens, Token{Type: STRING, Text: line[pos+1 : pos+1+end], Pos: pos})
			pos += end + 2
			continue
		}

		// single-quoted name reference
		if ch == '\'' {
			end := strings.IndexByte(line[pos+1:], '\'')
			if end < 0 {
				return nil, lexErrAt(line, pos)
			}
			tokens = append(tokens, Token{Type: NAME, Text: line[pos+1 : pos+1+end], Pos: pos})
			pos += end + 2
			continue
		}

		// keyword or bare identifier
		if isAlpha(ch) {
			start := pos
			for pos < len(line) && isAlphaNum(line[pos]) {
				pos++
			}
			word := line[start:pos]
			if tt, ok := keywords[word]; ok {
				tokens = append(tokens, Token{Type: tt, Text: word, Pos: start})
			} else {
				tokens = append(tokens, Token{Type: IDENT, Text: word, Pos: start})
			}
			continue
		}

		return nil, lexErrAt(line, pos)
	}
	return tokens, nil
}

// lexErrAt builds a *LexError with a short snippet starting at pos.
func lexErrAt(line string, pos int) error {
	end := pos + 10
	if end > len(line) {
		end = len(line)
	}
	return &LexError{Pos: pos, Snippet: line[pos:end]}
}
