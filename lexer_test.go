// lexer_test.go
package wlang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	ts, err := Tokenize(src)
	require.NoError(t, err, "Tokenize(%q)", src)
	return ts
}

func tokenTypes(ts []Token) []TokenType {
	out := make([]TokenType, 0, len(ts))
	for _, tok := range ts {
		out = append(out, tok.Type)
	}
	return out
}

func Test_Lexer_CommandLine(t *testing.T) {
	ts := toks(t, `show 'x' + 1`)
	require.Equal(t, []TokenType{IDENT, NAME, OP, NUMBER}, tokenTypes(ts))
	require.Equal(t, "show", ts[0].Text)
	require.Equal(t, "x", ts[1].Text, "name delimiters are stripped")
	require.Equal(t, "+", ts[2].Text)
}

func Test_Lexer_KeywordsBeforeIdentifiers(t *testing.T) {
	ts := toks(t, `true false not truthy`)
	require.Equal(t, []TokenType{BOOLEAN, BOOLEAN, NOT, IDENT}, tokenTypes(ts))
	require.Equal(t, "truthy", ts[3].Text, "prefix match must not steal identifiers")
}

func Test_Lexer_OperatorCluster(t *testing.T) {
	ts := toks(t, `'a' == 'b' && 'c' <= 1`)
	require.Equal(t, []TokenType{NAME, OP, NAME, OP, NAME, OP, NUMBER}, tokenTypes(ts))
	require.Equal(t, "==", ts[1].Text)
	require.Equal(t, "&&", ts[3].Text)
	require.Equal(t, "<=", ts[5].Text)
}

func Test_Lexer_Numbers(t *testing.T) {
	ts := toks(t, `12 3.5 0.25`)
	require.Equal(t, []TokenType{NUMBER, NUMBER, NUMBER}, tokenTypes(ts))
	require.Equal(t, "12", ts[0].Text)
	require.Equal(t, "3.5", ts[1].Text)
	require.Equal(t, "0.25", ts[2].Text)

	// a dot only belongs to a number when a digit follows it
	_, err := Tokenize(`7.`)
	require.Error(t, err)
}

func Test_Lexer_StringsAndNames(t *testing.T) {
	ts := toks(t, `write "hello there" 'file'`)
	require.Equal(t, []TokenType{IDENT, STRING, NAME}, tokenTypes(ts))
	require.Equal(t, "hello there", ts[1].Text)
	require.Equal(t, "file", ts[2].Text)
}

func Test_Lexer_CommentAndWhitespace(t *testing.T) {
	ts := toks(t, "  show \t 1  # trailing comment ' \" ;")
	require.Equal(t, []TokenType{IDENT, NUMBER}, tokenTypes(ts))

	ts = toks(t, "# whole line comment")
	require.Empty(t, ts)
}

func Test_Lexer_SemicolonComma(t *testing.T) {
	ts := toks(t, `array_str "a", "b" 'xs' ;`)
	require.Equal(t, []TokenType{IDENT, STRING, COMMA, STRING, NAME, SEMICOLON}, tokenTypes(ts))
}

func Test_Lexer_ErrorPositionAndSnippet(t *testing.T) {
	_, err := Tokenize(`show 1 @ 2`)
	require.Error(t, err)
	le, ok := err.(*LexError)
	require.True(t, ok, "want *LexError, got %T", err)
	require.Equal(t, 7, le.Pos)
	require.Equal(t, "@ 2", le.Snippet)
}

func Test_Lexer_UnterminatedString(t *testing.T) {
	_, err := Tokenize(`show "oops`)
	require.Error(t, err)
	le, ok := err.(*LexError)
	require.True(t, ok)
	require.Equal(t, 5, le.Pos)

	_, err = Tokenize(`leng 'oops`)
	require.Error(t, err)
}

func Test_Lexer_CaretSnippet(t *testing.T) {
	src := `show 1 @ 2`
	_, err := Tokenize(src)
	require.Error(t, err)
	wrapped := WrapErrorWithLine(err, src)
	require.Contains(t, wrapped.Error(), "LEXICAL ERROR")
	require.Contains(t, wrapped.Error(), "       ^")
}
