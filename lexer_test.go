// lexer_test.go
package kronos

import (
	"reflect"
	"strings"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer(src)
	ts, err := l.Scan()
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	return ts
}

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, 0, len(tokens))
	for _, tk := range tokens {
		out = append(out, tk.Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := tokenTypes(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func Test_Lexer_Assignment_Line(t *testing.T) {
	got := wantTypes(t, `set x to 5 plus 3`, []TokenType{
		INDENT, SET, NAME, TO, NUMBER, PLUS, NUMBER, NEWLINE,
	})
	if got[2].Text != "x" {
		t.Fatalf("variable name: want %q, got %q", "x", got[2].Text)
	}
	if got[4].Text != "5" || got[6].Text != "3" {
		t.Fatalf("number texts: got %q and %q", got[4].Text, got[6].Text)
	}
}

func Test_Lexer_Keywords_Need_Word_Boundaries(t *testing.T) {
	// "settings" contains "set" but must scan as one identifier.
	got := wantTypes(t, `set settings to 1`, []TokenType{
		INDENT, SET, NAME, TO, NUMBER, NEWLINE,
	})
	if got[2].Text != "settings" {
		t.Fatalf("want identifier %q, got %q", "settings", got[2].Text)
	}

	// Likewise "forward", "inner", "torch" must not split into keywords.
	wantTypes(t, `set forward to inner plus torch`, []TokenType{
		INDENT, SET, NAME, TO, NAME, PLUS, NAME, NEWLINE,
	})
}

func Test_Lexer_Indent_Counts_Raw_Leading_Whitespace(t *testing.T) {
	src := "if x is positive:\n    print x\n\tprint x"
	ts := toks(t, src)

	var indents []int
	for _, tk := range ts {
		if tk.Type == INDENT {
			indents = append(indents, tk.Indent)
		}
	}
	// Tabs and spaces each count as one character: 0, 4, 1.
	want := []int{0, 4, 1}
	if !reflect.DeepEqual(indents, want) {
		t.Fatalf("indent counts: want %v, got %v", want, indents)
	}
}

func Test_Lexer_Blank_Lines_Produce_Nothing(t *testing.T) {
	src := "set x to 1\n\n   \nset y to 2\n"
	wantTypes(t, src, []TokenType{
		INDENT, SET, NAME, TO, NUMBER, NEWLINE,
		INDENT, SET, NAME, TO, NUMBER, NEWLINE,
	})
}

func Test_Lexer_String_Keeps_Quotes(t *testing.T) {
	got := wantTypes(t, `print "hello, world"`, []TokenType{
		INDENT, PRINT, STRING, NEWLINE,
	})
	if got[2].Text != `"hello, world"` {
		t.Fatalf("string token should keep quotes, got %q", got[2].Text)
	}
}

func Test_Lexer_Numbers_Integer_And_Fractional(t *testing.T) {
	got := wantTypes(t, `set x to 3.14`, []TokenType{
		INDENT, SET, NAME, TO, NUMBER, NEWLINE,
	})
	if got[4].Text != "3.14" {
		t.Fatalf("fractional number text: got %q", got[4].Text)
	}

	// A dot with no digit after it is not part of the number; the stray dot
	// is then an unexpected character.
	l := NewLexer(`set x to 3.`)
	_, err := l.Scan()
	if err == nil {
		t.Fatalf("expected lex error for trailing dot")
	}
}

func Test_Lexer_Condition_Words(t *testing.T) {
	wantTypes(t, `while n is not greater than 10:`, []TokenType{
		INDENT, WHILE, NAME, IS, NOT, GREATER, THAN, NUMBER, COLON, NEWLINE,
	})
	wantTypes(t, `if a is equal to b:`, []TokenType{
		INDENT, IF, NAME, IS, EQUAL, TO, NAME, COLON, NEWLINE,
	})
}

func Test_Lexer_Function_And_Call(t *testing.T) {
	src := "function add with a, b:\n    return a plus b\ncall add with 5, 3"
	wantTypes(t, src, []TokenType{
		INDENT, FUNCTION, NAME, WITH, NAME, COMMA, NAME, COLON, NEWLINE,
		INDENT, RETURN, NAME, PLUS, NAME, NEWLINE,
		INDENT, CALL, NAME, WITH, NUMBER, COMMA, NUMBER, NEWLINE,
	})
}

func Test_Lexer_Try_Raise_Words(t *testing.T) {
	src := "try:\n    raise value error \"bad\"\non error as e:\n    print e"
	wantTypes(t, src, []TokenType{
		INDENT, TRY, COLON, NEWLINE,
		INDENT, RAISE, NAME, ERROR, STRING, NEWLINE,
		INDENT, ON, ERROR, AS, NAME, COLON, NEWLINE,
		INDENT, PRINT, NAME, NEWLINE,
	})
}

func Test_Lexer_Unexpected_Character(t *testing.T) {
	l := NewLexer("set x to 5\n  set y to @")
	_, err := l.Scan()
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %v", err)
	}
	if le.Line != 2 {
		t.Fatalf("error line: want 2, got %d", le.Line)
	}
	// Leading indentation counts toward the reported column.
	if le.Col != 12 {
		t.Fatalf("error col: want 12, got %d", le.Col)
	}
	if !strings.Contains(le.Error(), "LEXICAL ERROR") {
		t.Fatalf("error text: %q", le.Error())
	}
}

func Test_Lexer_Odd_Whitespace_Keeps_Columns_Aligned(t *testing.T) {
	// Only spaces and tabs count as indentation. A vertical tab is no
	// pattern's character, and the reported column must point at it.
	l := NewLexer("set x to 1\n  \vset y to 2")
	_, err := l.Scan()
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %v", err)
	}
	if le.Line != 2 || le.Col != 3 {
		t.Fatalf("error position: want 2:3, got %d:%d", le.Line, le.Col)
	}

	// Trailing carriage returns and a whitespace-only line stay invisible.
	wantTypes(t, "set x to 1\r\n \v \nset y to 2\r", []TokenType{
		INDENT, SET, NAME, TO, NUMBER, NEWLINE,
		INDENT, SET, NAME, TO, NUMBER, NEWLINE,
	})
}

func Test_Lexer_Unterminated_String(t *testing.T) {
	l := NewLexer(`print "oops`)
	_, err := l.Scan()
	if err == nil {
		t.Fatalf("expected lex error for unterminated string")
	}
	if !strings.Contains(err.Error(), "unexpected character") {
		t.Fatalf("error text: %q", err.Error())
	}
}
