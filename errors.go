// errors.go: the W error taxonomy and caret-snippet rendering.
//
// Every failure mode the engine can report is one of three typed errors:
//
//   - *LexError     — no token shape matched at a position in the line.
//   - *SyntaxError  — malformed statement grammar or a missing terminator.
//   - *RuntimeError — an execution failure, discriminated by Kind
//     (undefined name, type error, bounds, I/O, loop limit, call depth).
//
// The engine never panics across a statement boundary: Exec and EvalExpr
// return these as ordinary error values and the runner catches them per
// statement, reports them against the originating line, and moves on.
//
// WrapErrorWithLine decorates a lex error with a caret snippet pointing at the
// offending column of the source line, for terminals and logs:
//
//	LEXICAL ERROR: no token matches at position 8
//
//	  | show 1 @ 2
//	  |        ^
package wlang

import (
	"fmt"
	"strings"
)

// LexError reports that no token pattern matched. Pos is the 0-based byte
// offset within the line; Snippet holds the unmatched input from there.
type LexError struct {
	Pos     int
	Snippet string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("no token matches at position %d: %q", e.Pos, e.Snippet)
}

// SyntaxError reports malformed statement grammar. Line is the 1-based source
// line the statement came from.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Msg)
}

// ErrKind discriminates runtime failures.
type ErrKind int

const (
	ErrUndefined ErrKind = iota // reference to an unbound name
	ErrType                     // operand of the wrong type
	ErrBounds                   // empty-array pop, bad index, bad random range
	ErrIO                       // missing file, write failure
	ErrLoopLimit                // while-loop iteration cap exceeded
	ErrDepth                    // call-depth guard tripped
)

func (k ErrKind) String() string {
	switch k {
	case ErrUndefined:
		return "UndefinedName"
	case ErrType:
		return "TypeError"
	case ErrBounds:
		return "BoundsError"
	case ErrIO:
		return "IOError"
	case ErrLoopLimit:
		return "LoopLimitExceeded"
	case ErrDepth:
		return "CallDepthExceeded"
	default:
		return "RuntimeError"
	}
}

// RuntimeError is an execution failure raised by the evaluator. All runtime
// errors are recoverable at statement granularity.
type RuntimeError struct {
	Kind ErrKind
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func undef(format string, args ...any) error {
	return &RuntimeError{Kind: ErrUndefined, Msg: fmt.Sprintf(format, args...)}
}

func typeErr(format string, args ...any) error {
	return &RuntimeError{Kind: ErrType, Msg: fmt.Sprintf(format, args...)}
}

func boundsErr(format string, args ...any) error {
	return &RuntimeError{Kind: ErrBounds, Msg: fmt.Sprintf(format, args...)}
}

func ioErr(format string, args ...any) error {
	return &RuntimeError{Kind: ErrIO, Msg: fmt.Sprintf(format, args...)}
}

// WrapErrorWithLine augments a *LexError with a caret snippet of the source
// line it came from. Other errors are returned unchanged.
func WrapErrorWithLine(err error, line string) error {
	le, ok := err.(*LexError)
	if !ok {
		return err
	}
	col := le.Pos
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "LEXICAL ERROR: no token matches at position %d\n\n", le.Pos)
	fmt.Fprintf(&b, "  | %s\n", line)
	fmt.Fprintf(&b, "  | %s^\n", strings.Repeat(" ", col))
	return fmt.Errorf("%s", b.String())
}
