// interpreter.go — interpreter state and the program entry points.
//
// One Interpreter is created per run and owns all ambient state: variable
// bindings, the defined-names set (names assigned at least once — a name can
// leave the bindings map, after a handler unbinds it, while staying in this
// set), constant names, standing type constraints, and the user function
// table. Print output goes to a configurable io.Writer so hosts and tests can
// capture it.
//
// Program execution is two-pass: Run first hoists every top-level function
// definition into the function table, then either executes the __init__
// entry point (when this statement list defines one; it must take no
// parameters) or the remaining statements in source order.
//
// A function call evaluates its arguments in the caller's bindings, then runs
// the body against a full clone of the caller's bindings and defined-set with
// the parameters overlaid. Whatever the callee does — assign, unbind, return,
// raise — the caller's exact pre-call state is restored when the call ends.
package kronos

import (
	"io"
	"math"
	"os"
)

// Function is one user-defined function: its parameter names and body.
type Function struct {
	Params []string
	Body   []Stmt
}

// namedConstants are resolved before any variable lookup.
var namedConstants = map[string]float64{
	"pi": math.Pi,
}

// Interpreter executes parsed Kronos programs.
type Interpreter struct {
	vars     map[string]Value
	defined  map[string]bool
	consts   map[string]bool
	declared map[string]string // name -> bool|number|string
	funcs    map[string]*Function

	out io.Writer
}

// NewInterpreter returns a fresh interpreter writing print output to stdout.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		vars:     make(map[string]Value),
		defined:  make(map[string]bool),
		consts:   make(map[string]bool),
		declared: make(map[string]string),
		funcs:    make(map[string]*Function),
		out:      os.Stdout,
	}
}

// SetOutput redirects print output to w.
func (ip *Interpreter) SetOutput(w io.Writer) { ip.out = w }

// Run executes a parsed program against the interpreter's persistent state.
func (ip *Interpreter) Run(stmts []Stmt) error {
	// Pass one: hoist function definitions out of the executable list.
	var entry *Function
	rest := make([]Stmt, 0, len(stmts))
	for _, s := range stmts {
		if fn, ok := s.(*FuncStmt); ok {
			f := &Function{Params: fn.Params, Body: fn.Body}
			ip.funcs[fn.Name] = f
			if fn.Name == EntryPointName {
				entry = f
			}
			continue
		}
		rest = append(rest, s)
	}

	// Pass two: an entry point defined by this statement list is the sole
	// program entry. One left in the function table by an earlier Run (the
	// interpreter persists across REPL lines) stays callable but does not
	// swallow the new statements.
	if entry != nil {
		if len(entry.Params) > 0 {
			return valueErr("%s takes no parameters", EntryPointName)
		}
		_, err := ip.execBlock(entry.Body)
		return err
	}
	_, err := ip.execBlock(rest)
	return err
}

// RunSource parses src and runs it, keeping state across calls (REPL mode).
func (ip *Interpreter) RunSource(src string) error {
	stmts, err := Parse(src)
	if err != nil {
		return err
	}
	return ip.Run(stmts)
}

// Run parses and executes src, sending print output to w.
func Run(src string, w io.Writer) error {
	ip := NewInterpreter()
	if w != nil {
		ip.SetOutput(w)
	}
	return ip.RunSource(src)
}

// callFunction invokes name with the given argument expressions and returns
// the call's value. Builtins always shadow user-defined functions.
func (ip *Interpreter) callFunction(name string, args []Expr) (Value, error) {
	if fn, ok := builtins[name]; ok {
		vals, err := ip.evalArgs(args)
		if err != nil {
			return Null, err
		}
		return fn(name, vals)
	}

	fn, ok := ip.funcs[name]
	if !ok {
		return Null, nameErr("function %q is not defined", name)
	}
	if len(args) != len(fn.Params) {
		return Null, valueErr("function %q expects %d arguments, got %d",
			name, len(fn.Params), len(args))
	}

	// Arguments see the caller's bindings, not the callee's frame.
	vals, err := ip.evalArgs(args)
	if err != nil {
		return Null, err
	}

	savedVars, savedDefined := ip.vars, ip.defined
	ip.vars = cloneValues(savedVars)
	ip.defined = cloneSet(savedDefined)
	for i, param := range fn.Params {
		ip.vars[param] = vals[i]
		ip.defined[param] = true
	}
	defer func() {
		ip.vars, ip.defined = savedVars, savedDefined
	}()

	out, err := ip.execBlock(fn.Body)
	if err != nil {
		return Null, err
	}
	if out.returned {
		return out.value, nil
	}
	return Null, nil
}

func (ip *Interpreter) evalArgs(args []Expr) ([]Value, error) {
	vals := make([]Value, 0, len(args))
	for _, a := range args {
		v, err := ip.evalExpr(a)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func cloneValues(m map[string]Value) map[string]Value {
	out := make(map[string]Value, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneSet(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
