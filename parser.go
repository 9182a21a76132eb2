// parser.go — recursive-descent parser for Kronos.
//
// The parser walks the token slice with a single cursor and produces the
// statement list executed by the interpreter. Nesting is not tracked with an
// indent stack: every block-parsing call receives its parent's raw indent and
// claims statements whose own indent is strictly greater, stopping (without
// consuming) at the first statement that is not. If-chain and try-handler
// continuation lines are recognized only at exactly the indent of the
// statement they extend.
//
// Any decision point that meets an unexpected token reports a *ParseError
// naming the expected and encountered kinds; there is no recovery.
package kronos

import (
	"fmt"
	"strconv"
)

// EntryPointName is the sentinel function name that, when defined, becomes
// the program's sole execution entry. It is recognized by spelling, not by a
// keyword, and must take no parameters.
const EntryPointName = "__init__"

// constModifier is the assignment modifier spelling, recognized the same way.
const constModifier = "constant"

// handlerKinds maps the error-kind spellings accepted by `on ... error`
// handlers to the runtime kinds they filter on.
var handlerKinds = map[string]string{
	"math":  ErrMath,
	"name":  ErrName,
	"type":  ErrType,
	"value": ErrValue,
}

// typeNames is the closed set of annotation spellings for `as TYPE`.
var typeNames = map[string]bool{
	"bool":   true,
	"number": true,
	"string": true,
}

// Parse lexes and parses a complete Kronos source string.
func Parse(src string) ([]Stmt, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses an already-scanned token sequence.
func ParseTokens(toks []Token) ([]Stmt, error) {
	p := &parser{toks: toks}
	return p.program()
}

type parser struct {
	toks []Token
	pos  int
}

func (p *parser) atEnd() bool { return p.pos >= len(p.toks) }

func (p *parser) peek() (Token, bool) {
	if p.atEnd() {
		return Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) peekIs(tt TokenType) bool {
	t, ok := p.peek()
	return ok && t.Type == tt
}

func (p *parser) peekAtIs(offset int, tt TokenType) bool {
	idx := p.pos + offset
	return idx < len(p.toks) && p.toks[idx].Type == tt
}

// advance consumes the next token unconditionally.
func (p *parser) advance() Token {
	t := p.toks[p.pos]
	p.pos++
	return t
}

// need consumes the next token, requiring it to be of type tt.
func (p *parser) need(tt TokenType) (Token, error) {
	t, ok := p.peek()
	if !ok {
		return Token{}, &ParseError{Expected: tt, AtEnd: true}
	}
	if t.Type != tt {
		return Token{}, &ParseError{Expected: tt, Got: t.Type}
	}
	p.pos++
	return t, nil
}

// ─────────────────────────── statements ───────────────────────────

func (p *parser) program() ([]Stmt, error) {
	var stmts []Stmt
	for !p.atEnd() {
		if p.peekIs(NEWLINE) {
			p.advance()
			continue
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *parser) statement() (Stmt, error) {
	indent := 0
	if p.peekIs(INDENT) {
		indent = p.advance().Indent
	}

	t, ok := p.peek()
	if !ok {
		return nil, &ParseError{Expected: NEWLINE, AtEnd: true}
	}

	switch t.Type {
	case SET:
		return p.assignment(indent)
	case PRINT:
		return p.printStmt(indent)
	case IF:
		return p.ifStmt(indent)
	case FOR:
		return p.forStmt(indent)
	case WHILE:
		return p.whileStmt(indent)
	case FUNCTION:
		return p.functionStmt(indent)
	case NAME:
		if t.Text == EntryPointName {
			return p.entryPointStmt(indent)
		}
	case CALL:
		return p.callStmt(indent)
	case RETURN:
		return p.returnStmt(indent)
	case TRY:
		return p.tryStmt(indent)
	case RAISE:
		return p.raiseStmt(indent)
	}
	return nil, &ParseError{Msg: fmt.Sprintf("unexpected %s at start of statement", t.Type)}
}

// block claims statements indented strictly deeper than parentIndent. It
// stops, without consuming, at the first statement back at or left of the
// parent, at a non-indent token, or at end of stream.
func (p *parser) block(parentIndent int) ([]Stmt, error) {
	var body []Stmt
	for {
		t, ok := p.peek()
		if !ok || t.Type != INDENT || t.Indent <= parentIndent {
			return body, nil
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
}

func (p *parser) assignment(indent int) (Stmt, error) {
	p.advance() // SET
	isConst := false
	if t, ok := p.peek(); ok && t.Type == NAME && t.Text == constModifier && p.peekAtIs(1, NAME) {
		// `set constant x to ...`; a lone `set constant to 5` still assigns
		// a plain variable named "constant".
		p.advance()
		isConst = true
	}
	name, err := p.need(NAME)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(TO); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	declType := ""
	if p.peekIs(AS) {
		p.advance()
		tname, err := p.need(NAME)
		if err != nil {
			return nil, err
		}
		if !typeNames[tname.Text] {
			return nil, &ParseError{Msg: fmt.Sprintf("unknown type name %q", tname.Text)}
		}
		declType = tname.Text
	}
	if _, err := p.need(NEWLINE); err != nil {
		return nil, err
	}
	return &AssignStmt{
		stmtBase: stmtBase{Indent: indent},
		Const:    isConst,
		Name:     name.Text,
		Value:    value,
		Type:     declType,
	}, nil
}

func (p *parser) printStmt(indent int) (Stmt, error) {
	p.advance() // PRINT
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(NEWLINE); err != nil {
		return nil, err
	}
	return &PrintStmt{stmtBase: stmtBase{Indent: indent}, Value: value}, nil
}

func (p *parser) ifStmt(indent int) (Stmt, error) {
	p.advance() // IF
	cond, err := p.condition()
	if err != nil {
		return nil, err
	}
	if err := p.endOfClause(); err != nil {
		return nil, err
	}
	then, err := p.block(indent)
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{stmtBase: stmtBase{Indent: indent}, Cond: cond, Then: then}

	// Continuation clauses live at exactly the if's own indent.
	for p.peekIs(INDENT) && p.toks[p.pos].Indent == indent && p.peekAtIs(1, ELSE) {
		p.advance() // INDENT
		p.advance() // ELSE
		if p.peekIs(IF) {
			p.advance()
			elifCond, err := p.condition()
			if err != nil {
				return nil, err
			}
			if err := p.endOfClause(); err != nil {
				return nil, err
			}
			elifBody, err := p.block(indent)
			if err != nil {
				return nil, err
			}
			stmt.Elifs = append(stmt.Elifs, ElifClause{Cond: elifCond, Body: elifBody})
			continue
		}
		// bare else: must be last
		if err := p.endOfClause(); err != nil {
			return nil, err
		}
		stmt.Else, err = p.block(indent)
		if err != nil {
			return nil, err
		}
		break
	}
	return stmt, nil
}

func (p *parser) forStmt(indent int) (Stmt, error) {
	p.advance() // FOR
	name, err := p.need(NAME)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(IN); err != nil {
		return nil, err
	}
	if _, err := p.need(RANGE); err != nil {
		return nil, err
	}
	start, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(TO); err != nil {
		return nil, err
	}
	end, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.endOfClause(); err != nil {
		return nil, err
	}
	body, err := p.block(indent)
	if err != nil {
		return nil, err
	}
	return &ForStmt{
		stmtBase: stmtBase{Indent: indent},
		Var:      name.Text,
		Start:    start,
		End:      end,
		Body:     body,
	}, nil
}

func (p *parser) whileStmt(indent int) (Stmt, error) {
	p.advance() // WHILE
	cond, err := p.condition()
	if err != nil {
		return nil, err
	}
	if err := p.endOfClause(); err != nil {
		return nil, err
	}
	body, err := p.block(indent)
	if err != nil {
		return nil, err
	}
	return &WhileStmt{stmtBase: stmtBase{Indent: indent}, Cond: cond, Body: body}, nil
}

func (p *parser) functionStmt(indent int) (Stmt, error) {
	p.advance() // FUNCTION
	name, err := p.need(NAME)
	if err != nil {
		return nil, err
	}
	var params []string
	if p.peekIs(WITH) {
		p.advance()
		param, err := p.need(NAME)
		if err != nil {
			return nil, err
		}
		params = append(params, param.Text)
		for p.peekIs(COMMA) {
			p.advance()
			param, err := p.need(NAME)
			if err != nil {
				return nil, err
			}
			params = append(params, param.Text)
		}
	}
	if err := p.endOfClause(); err != nil {
		return nil, err
	}
	body, err := p.block(indent)
	if err != nil {
		return nil, err
	}
	return &FuncStmt{
		stmtBase: stmtBase{Indent: indent},
		Name:     name.Text,
		Params:   params,
		Body:     body,
	}, nil
}

// entryPointStmt parses the sentinel zero-parameter entry function. The rule
// never looks for a `with` clause.
func (p *parser) entryPointStmt(indent int) (Stmt, error) {
	p.advance() // NAME "__init__"
	if err := p.endOfClause(); err != nil {
		return nil, err
	}
	body, err := p.block(indent)
	if err != nil {
		return nil, err
	}
	return &FuncStmt{stmtBase: stmtBase{Indent: indent}, Name: EntryPointName, Body: body}, nil
}

func (p *parser) callStmt(indent int) (Stmt, error) {
	name, args, err := p.callClause()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(NEWLINE); err != nil {
		return nil, err
	}
	return &CallStmt{stmtBase: stmtBase{Indent: indent}, Name: name, Args: args}, nil
}

// callClause parses `call NAME [with EXPR, ...]`, shared by statement and
// expression positions.
func (p *parser) callClause() (string, []Expr, error) {
	p.advance() // CALL
	name, err := p.need(NAME)
	if err != nil {
		return "", nil, err
	}
	var args []Expr
	if p.peekIs(WITH) {
		p.advance()
		arg, err := p.expression()
		if err != nil {
			return "", nil, err
		}
		args = append(args, arg)
		for p.peekIs(COMMA) {
			p.advance()
			arg, err := p.expression()
			if err != nil {
				return "", nil, err
			}
			args = append(args, arg)
		}
	}
	return name.Text, args, nil
}

func (p *parser) returnStmt(indent int) (Stmt, error) {
	p.advance() // RETURN
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(NEWLINE); err != nil {
		return nil, err
	}
	return &ReturnStmt{stmtBase: stmtBase{Indent: indent}, Value: value}, nil
}

func (p *parser) tryStmt(indent int) (Stmt, error) {
	p.advance() // TRY
	if err := p.endOfClause(); err != nil {
		return nil, err
	}
	body, err := p.block(indent)
	if err != nil {
		return nil, err
	}

	stmt := &TryStmt{stmtBase: stmtBase{Indent: indent}, Body: body}
	for p.peekIs(INDENT) && p.toks[p.pos].Indent == indent && p.peekAtIs(1, ON) {
		p.advance() // INDENT
		p.advance() // ON

		kind := ""
		if t, ok := p.peek(); ok && t.Type == NAME {
			mapped, known := handlerKinds[t.Text]
			if known {
				p.advance()
				kind = mapped
			}
		}
		if _, err := p.need(ERROR); err != nil {
			return nil, err
		}
		bind := ""
		if p.peekIs(AS) {
			p.advance()
			name, err := p.need(NAME)
			if err != nil {
				return nil, err
			}
			bind = name.Text
		}
		if err := p.endOfClause(); err != nil {
			return nil, err
		}
		handlerBody, err := p.block(indent)
		if err != nil {
			return nil, err
		}
		stmt.Handlers = append(stmt.Handlers, Handler{Kind: kind, Bind: bind, Body: handlerBody})
	}
	return stmt, nil
}

func (p *parser) raiseStmt(indent int) (Stmt, error) {
	p.advance() // RAISE
	kind := ErrPlain
	if t, ok := p.peek(); ok && t.Type == NAME {
		// Any spelling is a caller-chosen kind; `name` maps to the runtime's
		// name_error so handlers filtered on it match.
		p.advance()
		if mapped, known := handlerKinds[t.Text]; known {
			kind = mapped
		} else {
			kind = t.Text
		}
	}
	if _, err := p.need(ERROR); err != nil {
		return nil, err
	}
	message, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(NEWLINE); err != nil {
		return nil, err
	}
	return &RaiseStmt{stmtBase: stmtBase{Indent: indent}, Kind: kind, Message: message}, nil
}

// endOfClause consumes the `:` and line end that close a block header.
func (p *parser) endOfClause() error {
	if _, err := p.need(COLON); err != nil {
		return err
	}
	_, err := p.need(NEWLINE)
	return err
}

// ─────────────────────────── conditions ───────────────────────────

func (p *parser) condition() (Cond, error) {
	left, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(IS); err != nil {
		return nil, err
	}
	negated := false
	if p.peekIs(NOT) {
		p.advance()
		negated = true
	}

	t, ok := p.peek()
	if !ok {
		return nil, &ParseError{Expected: EQUAL, AtEnd: true}
	}
	switch t.Type {
	case EQUAL:
		p.advance()
		if _, err := p.need(TO); err != nil {
			return nil, err
		}
		op := OpEq
		if negated {
			op = OpNe
		}
		return p.finishBinaryCond(left, op)
	case GREATER:
		p.advance()
		if _, err := p.need(THAN); err != nil {
			return nil, err
		}
		op := OpGt
		if negated {
			op = OpLe
		}
		return p.finishBinaryCond(left, op)
	case LESS:
		p.advance()
		if _, err := p.need(THAN); err != nil {
			return nil, err
		}
		op := OpLt
		if negated {
			op = OpGe
		}
		return p.finishBinaryCond(left, op)
	case NAME:
		switch t.Text {
		case "positive":
			p.advance()
			op := OpPositive
			if negated {
				op = OpNotPositive
			}
			return &UnaryCond{Value: left, Op: op}, nil
		case "negative":
			p.advance()
			op := OpNegative
			if negated {
				op = OpNotNegative
			}
			return &UnaryCond{Value: left, Op: op}, nil
		}
	}
	return nil, &ParseError{Msg: fmt.Sprintf("unknown comparison: %s", t.Type)}
}

func (p *parser) finishBinaryCond(left Expr, op CompareOp) (Cond, error) {
	right, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &BinaryCond{Left: left, Op: op, Right: right}, nil
}

// ─────────────────────────── expressions ───────────────────────────

// expression parses `value (plus|minus|times|divided by value)*`, strictly
// left-associative with no precedence tiers.
func (p *parser) expression() (Expr, error) {
	left, err := p.value()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok {
			return left, nil
		}
		var op string
		switch t.Type {
		case PLUS:
			op = "+"
		case MINUS:
			op = "-"
		case TIMES:
			op = "*"
		case DIVIDED:
			op = "/"
		default:
			return left, nil
		}
		p.advance()
		if t.Type == DIVIDED {
			if _, err := p.need(BY); err != nil {
				return nil, err
			}
		}
		right, err := p.value()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right}
	}
}

func (p *parser) value() (Expr, error) {
	t, ok := p.peek()
	if !ok {
		return nil, &ParseError{Expected: NUMBER, AtEnd: true}
	}
	switch t.Type {
	case NUMBER:
		p.advance()
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, &ParseError{Msg: fmt.Sprintf("malformed number %q", t.Text)}
		}
		return &NumberLit{Value: f}, nil
	case STRING:
		p.advance()
		return &StringLit{Value: t.Text[1 : len(t.Text)-1]}, nil
	case CALL:
		name, args, err := p.callClause()
		if err != nil {
			return nil, err
		}
		return &CallExpr{Name: name, Args: args}, nil
	case NAME:
		p.advance()
		return &VarRef{Name: t.Text}, nil
	}
	return nil, &ParseError{Expected: NUMBER, Got: t.Type}
}
