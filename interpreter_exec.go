// interpreter_exec.go — statement execution and expression evaluation.
//
// Every exec call reports an outcome: either control continues, or a return
// statement fired and its value must unwind to the nearest call boundary.
// Blocks stop at the first returning statement and hand the same outcome up;
// callFunction converts it back into an ordinary value.
//
// Runtime failures travel as *RuntimeError on the error path. The try
// statement intercepts them, scanning its handlers in source order; anything
// unmatched keeps propagating, and an error that escapes Run aborts the run.
package kronos

import (
	"io"
	"math"
)

// outcome is the result of executing a statement: control either continues
// or unwinds a return value toward the enclosing call.
type outcome struct {
	returned bool
	value    Value
}

func (ip *Interpreter) execBlock(stmts []Stmt) (outcome, error) {
	for _, s := range stmts {
		out, err := ip.exec(s)
		if err != nil {
			return outcome{}, err
		}
		if out.returned {
			return out, nil
		}
	}
	return outcome{}, nil
}

func (ip *Interpreter) exec(s Stmt) (outcome, error) {
	switch st := s.(type) {
	case *AssignStmt:
		return outcome{}, ip.execAssign(st)

	case *PrintStmt:
		v, err := ip.evalExpr(st.Value)
		if err != nil {
			return outcome{}, err
		}
		if _, err := io.WriteString(ip.out, FormatValue(v)+"\n"); err != nil {
			return outcome{}, err
		}
		return outcome{}, nil

	case *IfStmt:
		ok, err := ip.evalCond(st.Cond)
		if err != nil {
			return outcome{}, err
		}
		if ok {
			return ip.execBlock(st.Then)
		}
		for _, elif := range st.Elifs {
			ok, err := ip.evalCond(elif.Cond)
			if err != nil {
				return outcome{}, err
			}
			if ok {
				return ip.execBlock(elif.Body)
			}
		}
		if st.Else != nil {
			return ip.execBlock(st.Else)
		}
		return outcome{}, nil

	case *ForStmt:
		return ip.execFor(st)

	case *WhileStmt:
		for {
			ok, err := ip.evalCond(st.Cond)
			if err != nil {
				return outcome{}, err
			}
			if !ok {
				return outcome{}, nil
			}
			out, err := ip.execBlock(st.Body)
			if err != nil || out.returned {
				return out, err
			}
		}

	case *FuncStmt:
		// Top-level definitions were hoisted before execution; a definition
		// nested in a block registers when control reaches it.
		ip.funcs[st.Name] = &Function{Params: st.Params, Body: st.Body}
		return outcome{}, nil

	case *CallStmt:
		_, err := ip.callFunction(st.Name, st.Args)
		return outcome{}, err

	case *ReturnStmt:
		v, err := ip.evalExpr(st.Value)
		if err != nil {
			return outcome{}, err
		}
		return outcome{returned: true, value: v}, nil

	case *TryStmt:
		return ip.execTry(st)

	case *RaiseStmt:
		v, err := ip.evalExpr(st.Message)
		if err != nil {
			return outcome{}, err
		}
		return outcome{}, &RuntimeError{Kind: st.Kind, Msg: FormatValue(v)}
	}
	return outcome{}, nil
}

func (ip *Interpreter) execAssign(st *AssignStmt) error {
	if ip.consts[st.Name] {
		return valueErr("cannot reassign constant %q", st.Name)
	}
	v, err := ip.evalExpr(st.Value)
	if err != nil {
		return err
	}
	if st.Type != "" {
		if v.TypeName() != st.Type {
			return typeErr("%s expects %s, got %s", st.Name, st.Type, v.TypeName())
		}
		ip.declared[st.Name] = st.Type
	} else if want, ok := ip.declared[st.Name]; ok {
		if v.TypeName() != want {
			return typeErr("%s expects %s, got %s", st.Name, want, v.TypeName())
		}
	}
	ip.vars[st.Name] = v
	ip.defined[st.Name] = true
	if st.Const {
		ip.consts[st.Name] = true
	}
	return nil
}

func (ip *Interpreter) execFor(st *ForStmt) (outcome, error) {
	start, err := ip.evalExpr(st.Start)
	if err != nil {
		return outcome{}, err
	}
	end, err := ip.evalExpr(st.End)
	if err != nil {
		return outcome{}, err
	}
	if start.Tag != VTNum || end.Tag != VTNum {
		return outcome{}, typeErr("range bounds must be numbers, got %s and %s",
			start.TypeName(), end.TypeName())
	}

	// Bounds are evaluated once, truncated, and the loop is inclusive on
	// both ends; start > end means zero iterations.
	lo := int(math.Trunc(start.AsNum()))
	hi := int(math.Trunc(end.AsNum()))
	for i := lo; i <= hi; i++ {
		ip.vars[st.Var] = Num(float64(i))
		ip.defined[st.Var] = true
		out, err := ip.execBlock(st.Body)
		if err != nil || out.returned {
			return out, err
		}
	}
	return outcome{}, nil
}

func (ip *Interpreter) execTry(st *TryStmt) (outcome, error) {
	out, err := ip.execBlock(st.Body)
	if err == nil {
		return out, nil
	}
	rte, ok := err.(*RuntimeError)
	if !ok {
		return outcome{}, err
	}
	for _, h := range st.Handlers {
		if h.Kind != "" && h.Kind != rte.Kind {
			continue
		}
		return ip.execHandler(h, rte)
	}
	// No handler matched; the error keeps climbing.
	return outcome{}, err
}

// execHandler runs one matching handler. The as-bound variable shadows any
// existing binding for the handler's duration; afterwards the prior value is
// restored, or the binding removed when there was none — the name stays in
// the defined set either way, which is how "assigned, later unbound" differs
// from "never defined".
func (ip *Interpreter) execHandler(h Handler, rte *RuntimeError) (outcome, error) {
	if h.Bind != "" {
		prior, had := ip.vars[h.Bind]
		ip.vars[h.Bind] = Str(rte.Msg)
		ip.defined[h.Bind] = true
		defer func() {
			if had {
				ip.vars[h.Bind] = prior
			} else {
				delete(ip.vars, h.Bind)
			}
		}()
	}
	return ip.execBlock(h.Body)
}

// ─────────────────────────── expressions ───────────────────────────

func (ip *Interpreter) evalExpr(e Expr) (Value, error) {
	switch ex := e.(type) {
	case *NumberLit:
		return Num(ex.Value), nil
	case *StringLit:
		return Str(ex.Value), nil
	case *VarRef:
		if c, ok := namedConstants[ex.Name]; ok {
			return Num(c), nil
		}
		v, bound := ip.vars[ex.Name]
		if !ip.defined[ex.Name] || !bound {
			return Null, nameErr("variable %q is not defined", ex.Name)
		}
		return v, nil
	case *BinaryExpr:
		left, err := ip.evalExpr(ex.Left)
		if err != nil {
			return Null, err
		}
		right, err := ip.evalExpr(ex.Right)
		if err != nil {
			return Null, err
		}
		return applyBinary(ex.Op, left, right)
	case *CallExpr:
		return ip.callFunction(ex.Name, ex.Args)
	}
	return Null, typeErr("unsupported expression")
}

func applyBinary(op string, left, right Value) (Value, error) {
	if op == "+" && left.Tag == VTStr && right.Tag == VTStr {
		return Str(left.AsStr() + right.AsStr()), nil
	}
	if left.Tag != VTNum || right.Tag != VTNum {
		return Null, typeErr("cannot apply %q to %s and %s",
			op, left.TypeName(), right.TypeName())
	}
	l, r := left.AsNum(), right.AsNum()
	switch op {
	case "+":
		return Num(l + r), nil
	case "-":
		return Num(l - r), nil
	case "*":
		return Num(l * r), nil
	case "/":
		if r == 0 {
			return Null, mathErr("division by zero")
		}
		return Num(l / r), nil
	}
	return Null, typeErr("unknown operator %q", op)
}

// ─────────────────────────── conditions ───────────────────────────

func (ip *Interpreter) evalCond(c Cond) (bool, error) {
	switch cd := c.(type) {
	case *BinaryCond:
		left, err := ip.evalExpr(cd.Left)
		if err != nil {
			return false, err
		}
		right, err := ip.evalExpr(cd.Right)
		if err != nil {
			return false, err
		}
		return compare(cd.Op, left, right)
	case *UnaryCond:
		v, err := ip.evalExpr(cd.Value)
		if err != nil {
			return false, err
		}
		if v.Tag != VTNum {
			return false, typeErr("sign test needs a number, got %s", v.TypeName())
		}
		f := v.AsNum()
		switch cd.Op {
		case OpPositive:
			return f > 0, nil
		case OpNotPositive:
			return f <= 0, nil
		case OpNegative:
			return f < 0, nil
		case OpNotNegative:
			return f >= 0, nil
		}
	}
	return false, typeErr("unsupported condition")
}

func compare(op CompareOp, left, right Value) (bool, error) {
	switch op {
	case OpEq:
		return left.Equal(right), nil
	case OpNe:
		return !left.Equal(right), nil
	}

	// Ordering needs two numbers or two strings.
	switch {
	case left.Tag == VTNum && right.Tag == VTNum:
		return orderNums(op, left.AsNum(), right.AsNum()), nil
	case left.Tag == VTStr && right.Tag == VTStr:
		return orderStrs(op, left.AsStr(), right.AsStr()), nil
	}
	return false, typeErr("cannot compare %s and %s", left.TypeName(), right.TypeName())
}

func orderNums(op CompareOp, l, r float64) bool {
	switch op {
	case OpGt:
		return l > r
	case OpLt:
		return l < r
	case OpGe:
		return l >= r
	case OpLe:
		return l <= r
	}
	return false
}

func orderStrs(op CompareOp, l, r string) bool {
	switch op {
	case OpGt:
		return l > r
	case OpLt:
		return l < r
	case OpGe:
		return l >= r
	case OpLe:
		return l <= r
	}
	return false
}
