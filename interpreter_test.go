// interpreter_test.go
package kronos

import (
	"bytes"
	"strings"
	"testing"
)

func runOut(t *testing.T, src string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Run(src, &buf); err != nil {
		t.Fatalf("Run error: %v\nsource:\n%s", err, src)
	}
	return buf.String()
}

func wantOut(t *testing.T, src, want string) {
	t.Helper()
	got := runOut(t, src)
	if got != want {
		t.Fatalf("output mismatch\nsource:\n%s\nwant:\n%q\ngot:\n%q", src, want, got)
	}
}

func wantRuntimeErr(t *testing.T, src, kind, msgPart string) {
	t.Helper()
	var buf bytes.Buffer
	err := Run(src, &buf)
	if err == nil {
		t.Fatalf("expected runtime error, got output %q\nsource:\n%s", buf.String(), src)
	}
	rte, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if rte.Kind != kind {
		t.Fatalf("error kind: want %q, got %q (%v)", kind, rte.Kind, rte)
	}
	if !strings.Contains(rte.Msg, msgPart) {
		t.Fatalf("error message: want substring %q, got %q", msgPart, rte.Msg)
	}
}

func Test_Interp_Arithmetic_And_Print(t *testing.T) {
	wantOut(t, `print 5 plus 3`, "8.0\n")
	wantOut(t, `print 10 minus 4 minus 3`, "3.0\n")
	wantOut(t, `print 2 plus 3 times 4`, "20.0\n")
	wantOut(t, `print 8 divided by 2`, "4.0\n")
	wantOut(t, `print 7 divided by 2`, "3.5\n")
	wantOut(t, `print "hi " plus "there"`, "hi there\n")
}

func Test_Interp_Division_By_Zero(t *testing.T) {
	wantRuntimeErr(t, `print 1 divided by 0`, ErrMath, "division by zero")
}

func Test_Interp_Mixed_Operand_Types(t *testing.T) {
	wantRuntimeErr(t, `print 1 plus "x"`, ErrType, `cannot apply "+"`)
	wantRuntimeErr(t, `print "a" times "b"`, ErrType, `cannot apply "*"`)
}

func Test_Interp_Variables_And_Name_Errors(t *testing.T) {
	wantOut(t, "set x to 4\nset x to x plus 1\nprint x", "5.0\n")
	wantRuntimeErr(t, `print ghost`, ErrName, `variable "ghost" is not defined`)
	wantRuntimeErr(t, `call ghost`, ErrName, `function "ghost" is not defined`)
}

func Test_Interp_Named_Constant_Pi(t *testing.T) {
	got := runOut(t, `print pi`)
	if !strings.HasPrefix(got, "3.14159") {
		t.Fatalf("pi output: %q", got)
	}
	// pi resolves even when shadow-assigned names exist around it.
	wantOut(t, "set r to 2\nprint pi times 0 plus r", "2.0\n")
}

func Test_Interp_Constant_Discipline(t *testing.T) {
	wantOut(t, "set constant limit to 10\nprint limit", "10.0\n")
	wantRuntimeErr(t,
		"set constant limit to 10\nset limit to 11",
		ErrValue, `cannot reassign constant "limit"`)
	// The constant modifier only applies when a name follows it.
	wantOut(t, "set constant to 1\nset constant to 2\nprint constant", "2.0\n")
}

func Test_Interp_Type_Annotation_Is_A_Standing_Constraint(t *testing.T) {
	wantOut(t, "set n to 1 as number\nset n to 2\nprint n", "2.0\n")
	wantRuntimeErr(t,
		"set n to 1 as number\nset n to \"two\"",
		ErrType, "n expects number, got string")
	wantRuntimeErr(t, `set s to 5 as string`, ErrType, "s expects string, got number")
}

func Test_Interp_If_Elif_Else(t *testing.T) {
	src := `set x to 10
if x is greater than 10:
    print "big"
else if x is equal to 10:
    print "ten"
else:
    print "small"`
	wantOut(t, src, "ten\n")
}

func Test_Interp_Unary_Conditions(t *testing.T) {
	src := `set x to 0
if x is positive:
    print "pos"
if x is not positive:
    print "not pos"
if x is not negative:
    print "not neg"`
	wantOut(t, src, "not pos\nnot neg\n")

	wantRuntimeErr(t,
		"set s to \"hi\"\nif s is positive:\n    print s",
		ErrType, "sign test needs a number")
}

func Test_Interp_String_Ordering(t *testing.T) {
	src := `if "apple" is less than "banana":
    print "yes"`
	wantOut(t, src, "yes\n")
	wantRuntimeErr(t,
		"if 1 is less than \"two\":\n    print 1",
		ErrType, "cannot compare number and string")
}

func Test_Interp_For_Loop_Is_Inclusive(t *testing.T) {
	src := `for i in range 1 to 3:
    print i`
	wantOut(t, src, "1.0\n2.0\n3.0\n")
}

func Test_Interp_For_Loop_Descending_Range_Is_Empty(t *testing.T) {
	src := `for i in range 5 to 1:
    print i
print "done"`
	wantOut(t, src, "done\n")
}

func Test_Interp_For_Loop_Bounds_Must_Be_Numbers(t *testing.T) {
	wantRuntimeErr(t,
		"for i in range \"a\" to 3:\n    print i",
		ErrType, "range bounds must be numbers")
}

func Test_Interp_While_Accumulator(t *testing.T) {
	src := `set n to 0
while n is less than 3:
    set n to n plus 1
print n`
	wantOut(t, src, "3.0\n")
}

func Test_Interp_Function_Call_And_Return(t *testing.T) {
	src := `function add with a, b:
    return a plus b
print call add with 5, 3`
	wantOut(t, src, "8.0\n")
}

func Test_Interp_Function_Factorial(t *testing.T) {
	src := `function factorial with n:
    set acc to 1
    for i in range 1 to n:
        set acc to acc times i
    return acc
print call factorial with 5`
	wantOut(t, src, "120.0\n")
}

func Test_Interp_Function_Frame_Isolation(t *testing.T) {
	// The callee sees a copy of the caller's bindings; its writes vanish
	// when the call returns.
	src := `set x to 1
function bump:
    set x to 99
    return x
print call bump
print x`
	wantOut(t, src, "99.0\n1.0\n")
}

func Test_Interp_Function_Arity_Check(t *testing.T) {
	src := `function add with a, b:
    return a plus b
call add with 1`
	wantRuntimeErr(t, src, ErrValue, `function "add" expects 2 arguments, got 1`)
}

func Test_Interp_Return_Unwinds_Loops(t *testing.T) {
	src := `function firstBig with limit:
    for i in range 1 to 100:
        if i is greater than limit:
            return i
    return 0
print call firstBig with 7`
	wantOut(t, src, "8.0\n")
}

func Test_Interp_Builtins_Shadow_User_Functions(t *testing.T) {
	src := `function min with a, b:
    return 999
print call min with 4, 2`
	wantOut(t, src, "2.0\n")
}

func Test_Interp_EntryPoint_Is_Sole_Entry(t *testing.T) {
	src := `print "never"
__init__:
    print "start"
    call helper
function helper:
    print "helped"`
	wantOut(t, src, "start\nhelped\n")
}

func Test_Interp_EntryPoint_Takes_No_Parameters(t *testing.T) {
	// A plain function definition spelled like the entry point with
	// parameters can only come from a hand-built AST; Run still rejects it.
	ip := NewInterpreter()
	var buf bytes.Buffer
	ip.SetOutput(&buf)
	err := ip.Run([]Stmt{
		&FuncStmt{Name: EntryPointName, Params: []string{"x"}},
	})
	if err == nil || !strings.Contains(err.Error(), "takes no parameters") {
		t.Fatalf("expected entry-point arity error, got %v", err)
	}
}

func Test_Interp_Try_Routes_By_Kind(t *testing.T) {
	src := `try:
    print 1 divided by 0
on value error:
    print "value"
on math error:
    print "math"`
	wantOut(t, src, "math\n")
}

func Test_Interp_Try_Unfiltered_Handler_Catches_Anything(t *testing.T) {
	src := `try:
    raise custom error "boom"
on math error:
    print "math"
on error as e:
    print e`
	wantOut(t, src, "boom\n")
}

func Test_Interp_Try_Unmatched_Kind_Propagates(t *testing.T) {
	src := `try:
    raise custom error "boom"
on math error:
    print "math"`
	wantRuntimeErr(t, src, "custom", "boom")
}

func Test_Interp_Try_First_Matching_Handler_Wins(t *testing.T) {
	src := `try:
    raise value error "bad"
on error:
    print "any"
on value error:
    print "value"`
	wantOut(t, src, "any\n")
}

func Test_Interp_Handler_Binding_Shadows_And_Restores(t *testing.T) {
	src := `set e to "outer"
try:
    raise error "inner"
on error as e:
    print e
print e`
	wantOut(t, src, "inner\nouter\n")
}

func Test_Interp_Handler_Binding_Unbinds_When_New(t *testing.T) {
	src := `try:
    raise error "inner"
on error as e:
    print e
print e`
	wantRuntimeErr(t, src, ErrName, `variable "e" is not defined`)
}

func Test_Interp_Raise_Message_Uses_Print_Formatting(t *testing.T) {
	src := `try:
    raise value error 5 plus 3
on value error as e:
    print e`
	wantOut(t, src, "8.0\n")
}

func Test_Interp_Name_Error_Reaches_Handlers(t *testing.T) {
	src := `try:
    print ghost
on name error as e:
    print e`
	wantOut(t, src, "variable \"ghost\" is not defined\n")
}

func Test_Interp_REPL_State_Persists(t *testing.T) {
	ip := NewInterpreter()
	var buf bytes.Buffer
	ip.SetOutput(&buf)

	if err := ip.RunSource(`set x to 1`); err != nil {
		t.Fatalf("first line: %v", err)
	}
	if err := ip.RunSource(`set x to x plus 1`); err != nil {
		t.Fatalf("second line: %v", err)
	}
	if err := ip.RunSource(`print x`); err != nil {
		t.Fatalf("third line: %v", err)
	}
	if buf.String() != "2.0\n" {
		t.Fatalf("persistent state output: %q", buf.String())
	}
}

func Test_Interp_REPL_EntryPoint_Does_Not_Swallow_Later_Lines(t *testing.T) {
	ip := NewInterpreter()
	var buf bytes.Buffer
	ip.SetOutput(&buf)

	if err := ip.RunSource("__init__:\n    print \"boot\""); err != nil {
		t.Fatalf("entry definition: %v", err)
	}
	if err := ip.RunSource(`print 1`); err != nil {
		t.Fatalf("later line: %v", err)
	}
	if buf.String() != "boot\n1.0\n" {
		t.Fatalf("later input must run, not re-run the entry point: %q", buf.String())
	}

	// The entry point stays an ordinary callable function.
	if err := ip.RunSource(`call __init__`); err != nil {
		t.Fatalf("explicit call: %v", err)
	}
	if buf.String() != "boot\n1.0\nboot\n" {
		t.Fatalf("explicit call output: %q", buf.String())
	}
}
