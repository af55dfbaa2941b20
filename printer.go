// printer.go: debug rendering helpers shared by the REPL and tests.
package wlang

import (
	"fmt"
	"strings"
)

// FormatTokens renders a token sequence as "TYPE(text)" items, one per token.
// The REPL's :tokens command uses it to show how a line lexes.
func FormatTokens(toks []Token) string {
	parts := make([]string, 0, len(toks))
	for _, t := range toks {
		parts = append(parts, fmt.Sprintf("%s(%s)", t.Type, t.Text))
	}
	return strings.Join(parts, " ")
}
