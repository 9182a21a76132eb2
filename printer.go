// printer.go — textual form of runtime values and a plain AST dumper.
//
// FormatValue is what `print` emits. Numbers keep the float-typed look of the
// language: integral values render with one decimal (8 prints as 8.0), other
// values use the shortest decimal form, and magnitudes at or above 1e16 fall
// back to exponent notation. Strings print raw, without quotes.
//
// DumpProgram renders the statement list as an indented tree; it backs the
// CLI's `parse` command and the parser's own tests.
package kronos

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatValue renders v the way the print statement shows it.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNull:
		return "null"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTNum:
		return formatNumber(v.AsNum())
	case VTStr:
		return v.AsStr()
	}
	return "<unknown>"
}

func formatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if math.Abs(f) >= 1e16 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// DumpProgram renders stmts as an indented textual tree.
func DumpProgram(stmts []Stmt) string {
	var b strings.Builder
	for _, s := range stmts {
		dumpStmt(&b, s, 0)
	}
	return b.String()
}

func dumpStmt(b *strings.Builder, s Stmt, depth int) {
	pad := strings.Repeat("  ", depth)
	switch st := s.(type) {
	case *AssignStmt:
		mod := ""
		if st.Const {
			mod = " constant"
		}
		ann := ""
		if st.Type != "" {
			ann = " as " + st.Type
		}
		fmt.Fprintf(b, "%sassign%s %s = %s%s\n", pad, mod, st.Name, dumpExpr(st.Value), ann)
	case *PrintStmt:
		fmt.Fprintf(b, "%sprint %s\n", pad, dumpExpr(st.Value))
	case *IfStmt:
		fmt.Fprintf(b, "%sif %s\n", pad, dumpCond(st.Cond))
		dumpBlock(b, st.Then, depth+1)
		for _, e := range st.Elifs {
			fmt.Fprintf(b, "%selse if %s\n", pad, dumpCond(e.Cond))
			dumpBlock(b, e.Body, depth+1)
		}
		if st.Else != nil {
			fmt.Fprintf(b, "%selse\n", pad)
			dumpBlock(b, st.Else, depth+1)
		}
	case *ForStmt:
		fmt.Fprintf(b, "%sfor %s in range %s to %s\n", pad, st.Var, dumpExpr(st.Start), dumpExpr(st.End))
		dumpBlock(b, st.Body, depth+1)
	case *WhileStmt:
		fmt.Fprintf(b, "%swhile %s\n", pad, dumpCond(st.Cond))
		dumpBlock(b, st.Body, depth+1)
	case *FuncStmt:
		fmt.Fprintf(b, "%sfunction %s(%s)\n", pad, st.Name, strings.Join(st.Params, ", "))
		dumpBlock(b, st.Body, depth+1)
	case *CallStmt:
		fmt.Fprintf(b, "%scall %s(%s)\n", pad, st.Name, dumpArgs(st.Args))
	case *ReturnStmt:
		fmt.Fprintf(b, "%sreturn %s\n", pad, dumpExpr(st.Value))
	case *TryStmt:
		fmt.Fprintf(b, "%stry\n", pad)
		dumpBlock(b, st.Body, depth+1)
		for _, h := range st.Handlers {
			kind := h.Kind
			if kind == "" {
				kind = "any"
			}
			bind := ""
			if h.Bind != "" {
				bind = " as " + h.Bind
			}
			fmt.Fprintf(b, "%son %s error%s\n", pad, kind, bind)
			dumpBlock(b, h.Body, depth+1)
		}
	case *RaiseStmt:
		fmt.Fprintf(b, "%sraise %s error %s\n", pad, st.Kind, dumpExpr(st.Message))
	}
}

func dumpBlock(b *strings.Builder, body []Stmt, depth int) {
	for _, s := range body {
		dumpStmt(b, s, depth)
	}
}

func dumpExpr(e Expr) string {
	switch ex := e.(type) {
	case *NumberLit:
		return formatNumber(ex.Value)
	case *StringLit:
		return strconv.Quote(ex.Value)
	case *VarRef:
		return ex.Name
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", dumpExpr(ex.Left), ex.Op, dumpExpr(ex.Right))
	case *CallExpr:
		return fmt.Sprintf("call %s(%s)", ex.Name, dumpArgs(ex.Args))
	}
	return "<expr>"
}

func dumpArgs(args []Expr) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, dumpExpr(a))
	}
	return strings.Join(parts, ", ")
}

func dumpCond(c Cond) string {
	switch cd := c.(type) {
	case *BinaryCond:
		return fmt.Sprintf("(%s %s %s)", dumpExpr(cd.Left), cd.Op, dumpExpr(cd.Right))
	case *UnaryCond:
		return fmt.Sprintf("(%s is %s)", dumpExpr(cd.Value), cd.Op)
	}
	return "<cond>"
}
