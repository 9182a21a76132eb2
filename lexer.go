// lexer.go — line-oriented scanner for Kronos source.
//
// Kronos is indentation-structured, so the lexer works one physical line at a
// time: every non-blank line first yields an INDENT token whose Indent field
// carries the raw count of leading whitespace characters of that line (tabs
// and spaces each count as one character; there is no normalization). The
// stripped remainder is then scanned left to right against a fixed, ordered
// pattern table — literals first, then keywords anchored to word boundaries,
// then the generic identifier, then punctuation — taking the first match at
// each column. Whitespace between tokens is consumed but never emitted. A
// NEWLINE token closes every non-empty line.
//
// A character no pattern can claim is a *LexError; the scanner never skips
// input silently.
package kronos

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Literals & identifiers
	NUMBER TokenType = iota
	STRING
	NAME

	// Keywords
	SET
	TO
	IF
	ELSE
	FOR
	WHILE
	IN
	RANGE
	FUNCTION
	WITH
	CALL
	RETURN
	IS
	EQUAL
	NOT
	GREATER
	LESS
	THAN
	AND
	OR
	PRINT
	PLUS
	MINUS
	TIMES
	DIVIDED
	BY
	TRY
	ON
	AS
	RAISE
	ERROR

	// Punctuation & structure
	COLON
	COMMA
	INDENT
	NEWLINE
)

var tokenNames = [...]string{
	NUMBER: "NUMBER", STRING: "STRING", NAME: "NAME",
	SET: "SET", TO: "TO", IF: "IF", ELSE: "ELSE", FOR: "FOR",
	WHILE: "WHILE", IN: "IN", RANGE: "RANGE", FUNCTION: "FUNCTION",
	WITH: "WITH", CALL: "CALL", RETURN: "RETURN", IS: "IS",
	EQUAL: "EQUAL", NOT: "NOT", GREATER: "GREATER", LESS: "LESS",
	THAN: "THAN", AND: "AND", OR: "OR", PRINT: "PRINT",
	PLUS: "PLUS", MINUS: "MINUS", TIMES: "TIMES", DIVIDED: "DIVIDED",
	BY: "BY", TRY: "TRY", ON: "ON", AS: "AS", RAISE: "RAISE",
	ERROR: "ERROR", COLON: "COLON", COMMA: "COMMA",
	INDENT: "INDENT", NEWLINE: "NEWLINE",
}

func (tt TokenType) String() string {
	if int(tt) < len(tokenNames) && tokenNames[tt] != "" {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a lexical token. Text holds the raw matched slice (string literals
// keep their quotes; the parser strips them). Indent is meaningful only for
// INDENT tokens, where it carries the leading-whitespace count of the line.
// Tokens carry no line/column beyond that count.
type Token struct {
	Type   TokenType
	Text   string
	Indent int
}

// pattern is one entry of the ordered match table. match returns the length
// of the token starting at line[col], or 0 when the pattern does not apply.
type pattern struct {
	typ   TokenType
	match func(line string, col int) int
	skip  bool // matched text is consumed but not emitted (whitespace)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isWord(b byte) bool  { return isAlpha(b) || isDigit(b) }

func matchNumber(line string, col int) int {
	i := col
	for i < len(line) && isDigit(line[i]) {
		i++
	}
	if i == col {
		return 0
	}
	// optional fraction: at least one digit after the dot
	if i+1 < len(line) && line[i] == '.' && isDigit(line[i+1]) {
		i++
		for i < len(line) && isDigit(line[i]) {
			i++
		}
	}
	return i - col
}

func matchString(line string, col int) int {
	if line[col] != '"' {
		return 0
	}
	for i := col + 1; i < len(line); i++ {
		if line[i] == '"' {
			return i - col + 1
		}
	}
	return 0 // unterminated; the opening quote surfaces as a lex error
}

func matchName(line string, col int) int {
	if !isAlpha(line[col]) {
		return 0
	}
	i := col + 1
	for i < len(line) && isWord(line[i]) {
		i++
	}
	return i - col
}

// keyword returns a matcher for kw anchored to word boundaries on both sides,
// so an identifier that merely contains the keyword is never split.
func keyword(kw string) func(string, int) int {
	return func(line string, col int) int {
		end := col + len(kw)
		if end > len(line) || line[col:end] != kw {
			return 0
		}
		if col > 0 && isWord(line[col-1]) {
			return 0
		}
		if end < len(line) && isWord(line[end]) {
			return 0
		}
		return len(kw)
	}
}

func literal(text string) func(string, int) int {
	return func(line string, col int) int {
		if strings.HasPrefix(line[col:], text) {
			return len(text)
		}
		return 0
	}
}

func matchSpaces(line string, col int) int {
	i := col
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i - col
}

// patterns is tried in order at every column; the first match wins.
var patterns = []pattern{
	{typ: NUMBER, match: matchNumber},
	{typ: STRING, match: matchString},
	{typ: SET, match: keyword("set")},
	{typ: TO, match: keyword("to")},
	{typ: IF, match: keyword("if")},
	{typ: ELSE, match: keyword("else")},
	{typ: FOR, match: keyword("for")},
	{typ: WHILE, match: keyword("while")},
	{typ: IN, match: keyword("in")},
	{typ: RANGE, match: keyword("range")},
	{typ: FUNCTION, match: keyword("function")},
	{typ: WITH, match: keyword("with")},
	{typ: CALL, match: keyword("call")},
	{typ: RETURN, match: keyword("return")},
	{typ: IS, match: keyword("is")},
	{typ: EQUAL, match: keyword("equal")},
	{typ: NOT, match: keyword("not")},
	{typ: GREATER, match: keyword("greater")},
	{typ: LESS, match: keyword("less")},
	{typ: THAN, match: keyword("than")},
	{typ: AND, match: keyword("and")},
	{typ: OR, match: keyword("or")},
	{typ: PRINT, match: keyword("print")},
	{typ: PLUS, match: keyword("plus")},
	{typ: MINUS, match: keyword("minus")},
	{typ: TIMES, match: keyword("times")},
	{typ: DIVIDED, match: keyword("divided")},
	{typ: BY, match: keyword("by")},
	{typ: TRY, match: keyword("try")},
	{typ: ON, match: keyword("on")},
	{typ: AS, match: keyword("as")},
	{typ: RAISE, match: keyword("raise")},
	{typ: ERROR, match: keyword("error")},
	{typ: NAME, match: matchName},
	{typ: COLON, match: literal(":")},
	{typ: COMMA, match: literal(",")},
	{match: matchSpaces, skip: true},
}

// Lexer scans Kronos source into tokens.
type Lexer struct {
	src    string
	tokens []Token
}

// NewLexer creates a lexer for the given source.
func NewLexer(src string) *Lexer { return &Lexer{src: src} }

// Scan tokenizes the entire source. Tokens come out in source order; every
// non-blank line contributes INDENT, its content tokens, then NEWLINE.
func (l *Lexer) Scan() ([]Token, error) {
	for lineNo, raw := range strings.Split(l.src, "\n") {
		// The indent count and the stripped prefix must agree on what
		// counts as leading whitespace, or error columns drift.
		indent := leadingWhitespace(raw)
		stripped := strings.TrimRightFunc(raw[indent:], unicode.IsSpace)
		if stripped == "" {
			continue
		}
		l.tokens = append(l.tokens, Token{Type: INDENT, Indent: indent})

		col := 0
		for col < len(stripped) {
			n, pat := matchAt(stripped, col)
			if n == 0 {
				return nil, &LexError{
					Line: lineNo + 1,
					Col:  indent + col + 1,
					Msg:  fmt.Sprintf("unexpected character %q", stripped[col]),
				}
			}
			if !pat.skip {
				l.tokens = append(l.tokens, Token{Type: pat.typ, Text: stripped[col : col+n]})
			}
			col += n
		}
		l.tokens = append(l.tokens, Token{Type: NEWLINE, Text: "\n"})
	}
	return l.tokens, nil
}

func matchAt(line string, col int) (int, *pattern) {
	for i := range patterns {
		if n := patterns[i].match(line, col); n > 0 {
			return n, &patterns[i]
		}
	}
	return 0, nil
}

func leadingWhitespace(line string) int {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return n
}
