// errors.go — the three failure surfaces of the pipeline.
//
// Structural failures (lexing, parsing) are fatal to the current parse and
// carry what was expected versus what was found; there is no recovery.
// Runtime failures are a uniform kind+message pair that the language's
// try/on mechanism can intercept; an uncaught one aborts the run.
//
// WrapErrorWithSource upgrades lex errors to a caret-annotated snippet of the
// offending line, in the style of Python tracebacks. Parse and runtime errors
// carry no source position (tokens record nothing beyond the leading indent
// count), so they pass through with their plain headers.
package kronos

import (
	"fmt"
	"strings"
)

// Runtime error kinds. Raise statements may introduce further, caller-chosen
// kinds; handlers filter by exact kind string.
const (
	ErrMath  = "math"       // division by zero
	ErrName  = "name_error" // unresolved or unbound variable/function
	ErrType  = "type"       // declared-type violation, mixed-type operands
	ErrValue = "value"      // arity, constant reassignment, builtin arguments
	ErrPlain = "error"      // default kind of a bare raise
)

// LexError reports a character no lexer pattern could claim. Line and Col are
// 1-based positions in the original (unstripped) source.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// ParseError reports an unexpected token at a grammar decision point. Most
// errors name the expected versus encountered token type; decision points
// with no single expected type set Msg instead.
type ParseError struct {
	Expected TokenType
	Got      TokenType
	AtEnd    bool   // true when the token stream ran out instead
	Msg      string // overrides the expected/got rendering when non-empty
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return "PARSE ERROR: " + e.Msg
	}
	if e.AtEnd {
		return fmt.Sprintf("PARSE ERROR: expected %s, got end of input", e.Expected)
	}
	return fmt.Sprintf("PARSE ERROR: expected %s, got %s", e.Expected, e.Got)
}

// RuntimeError is an execution-time failure: a kind (see the Err* constants)
// plus a human-readable message. It is the value raised by `raise` and the
// value matched by `on ... error` handlers.
type RuntimeError struct {
	Kind string
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR (%s): %s", e.Kind, e.Msg)
}

func mathErr(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: ErrMath, Msg: fmt.Sprintf(format, args...)}
}

func nameErr(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: ErrName, Msg: fmt.Sprintf(format, args...)}
}

func typeErr(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: ErrType, Msg: fmt.Sprintf(format, args...)}
}

func valueErr(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: ErrValue, Msg: fmt.Sprintf(format, args...)}
}

// WrapErrorWithSource returns err augmented with a caret-annotated snippet of
// src when err is a *LexError; all other errors are returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	le, ok := err.(*LexError)
	if !ok {
		return err
	}
	return fmt.Errorf("%s", snippet(src, le.Line, le.Col, le.Msg))
}

// snippet renders the offending line with one line of context on each side
// and a caret under the 1-based column. Out-of-range coordinates are clamped
// so rendering never fails.
func snippet(src string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "LEXICAL ERROR at %d:%d: %s\n\n", line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
