// runner.go: the program driver and block collector.
//
// A W program is a flat list of source lines. The driver walks them with a
// cursor; seeing a "func NAME" or "while COND" header switches into block
// collection, gathering body lines up to a line equal to the terminator
// "done". Failing to find "done" before end of input is a structural error
// reported against the header's line, after which the driver skips to the
// next line and keeps going — a single bad block never aborts the file.
// Every other line runs through RunLine's per-statement guard.
package wlang

import (
	"os"
	"strings"
)

// CollectBlock gathers the body of the block whose header sits at lines[start]:
// every following non-blank line (trimmed) up to, not including, a "done"
// line. It returns the body, the index of the first line after the block, and
// whether the terminator was found. When it was not, next is len(lines).
func CollectBlock(lines []string, start int) (body []string, next int, ok bool) {
	idx := start + 1
	for idx < len(lines) {
		trimmed := strings.TrimSpace(lines[idx])
		if trimmed == "done" {
			return body, idx + 1, true
		}
		if trimmed != "" {
			body = append(body, trimmed)
		}
		idx++
	}
	return body, idx, false
}

// RunLines executes a whole program. Statement errors are reported to ErrOut
// and execution resumes at the next line; an END statement stops the walk.
func (i *Interpreter) RunLines(lines []string) {
	idx := 0
	for idx < len(lines) && !i.halted {
		lineNo := idx + 1
		line := strings.TrimSpace(lines[idx])
		if line == "" || strings.HasPrefix(line, "#") {
			idx++
			continue
		}

		switch {
		case strings.HasPrefix(line, "func "):
			idx = i.runBlock(lines, idx, lineNo)
		case strings.HasPrefix(line, "while "):
			idx = i.runBlock(lines, idx, lineNo)
		default:
			i.RunLine(line, lineNo)
			idx++
		}
	}
}

// runBlock parses a func/while header, collects its body, and executes the
// resulting statement. It returns the index of the next top-level line.
func (i *Interpreter) runBlock(lines []string, start, lineNo int) int {
	header := strings.TrimSpace(lines[start])
	toks, err := Tokenize(header)
	if err != nil {
		i.report(lineNo, err)
		return start + 1
	}
	stmt, err := ParseStatement(toks, lineNo)
	if err != nil {
		i.report(lineNo, err)
		return start + 1
	}

	body, next, ok := CollectBlock(lines, start)
	switch n := stmt.(type) {
	case *FuncDef:
		if !ok {
			i.report(lineNo, &SyntaxError{Line: lineNo, Msg: "missing 'done' for function '" + n.Name + "'"})
			return next
		}
		n.Body = body
		if err := i.Exec(n, lineNo); err != nil {
			i.report(lineNo, err)
		}
	case *While:
		if !ok {
			i.report(lineNo, &SyntaxError{Line: lineNo, Msg: "missing 'done' for while loop"})
			return next
		}
		n.Body = body
		n.HeaderLine = lineNo
		if err := i.Exec(n, lineNo); err != nil {
			i.report(lineNo, err)
		}
	default:
		// header did not parse to a block statement; run it as a plain line
		i.RunLine(header, lineNo)
		return start + 1
	}
	return next
}

// RunScript splits source text into lines and executes it.
func (i *Interpreter) RunScript(src string) {
	i.RunLines(strings.Split(src, "\n"))
}

// RunFile loads a .w source file and executes it. The read error is the only
// failure surfaced to the caller; script errors are reported per statement.
func (i *Interpreter) RunFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	i.RunScript(string(data))
	return nil
}
