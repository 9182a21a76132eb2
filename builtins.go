// builtins.go — the fixed builtin function table.
//
// Builtin names always resolve ahead of user-defined functions of the same
// name. Each builtin checks its own arity (value error) and argument types
// (type error) against the fully evaluated argument list.
package kronos

import "math"

type builtinFunc func(name string, args []Value) (Value, error)

var builtins = map[string]builtinFunc{
	"round":    builtinRound,
	"min":      builtinMin,
	"max":      builtinMax,
	"sum":      builtinSum,
	"positive": builtinPositive,
	"negative": builtinNegative,
}

// IsBuiltin reports whether name is one of the fixed builtin functions.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func numArgs(name string, args []Value) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		if a.Tag != VTNum {
			return nil, typeErr("%s expects numbers, got %s", name, a.TypeName())
		}
		out = append(out, a.AsNum())
	}
	return out, nil
}

// builtinRound rounds to the nearest integer, or to the given number of
// decimal digits when a second argument is present.
func builtinRound(name string, args []Value) (Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return Null, valueErr("%s expects 1 or 2 arguments, got %d", name, len(args))
	}
	nums, err := numArgs(name, args)
	if err != nil {
		return Null, err
	}
	if len(nums) == 1 {
		return Num(math.Round(nums[0])), nil
	}
	scale := math.Pow(10, math.Trunc(nums[1]))
	return Num(math.Round(nums[0]*scale) / scale), nil
}

func builtinMin(name string, args []Value) (Value, error) {
	nums, err := atLeastOneNum(name, args)
	if err != nil {
		return Null, err
	}
	best := nums[0]
	for _, n := range nums[1:] {
		if n < best {
			best = n
		}
	}
	return Num(best), nil
}

func builtinMax(name string, args []Value) (Value, error) {
	nums, err := atLeastOneNum(name, args)
	if err != nil {
		return Null, err
	}
	best := nums[0]
	for _, n := range nums[1:] {
		if n > best {
			best = n
		}
	}
	return Num(best), nil
}

func builtinSum(name string, args []Value) (Value, error) {
	nums, err := atLeastOneNum(name, args)
	if err != nil {
		return Null, err
	}
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return Num(total), nil
}

func atLeastOneNum(name string, args []Value) ([]float64, error) {
	if len(args) < 1 {
		return nil, valueErr("%s expects at least 1 argument, got 0", name)
	}
	return numArgs(name, args)
}

// builtinPositive yields the absolute value of its argument.
func builtinPositive(name string, args []Value) (Value, error) {
	f, err := oneNum(name, args)
	if err != nil {
		return Null, err
	}
	return Num(math.Abs(f)), nil
}

// builtinNegative yields the negated absolute value of its argument.
func builtinNegative(name string, args []Value) (Value, error) {
	f, err := oneNum(name, args)
	if err != nil {
		return Null, err
	}
	return Num(-math.Abs(f)), nil
}

func oneNum(name string, args []Value) (float64, error) {
	if len(args) != 1 {
		return 0, valueErr("%s expects 1 argument, got %d", name, len(args))
	}
	nums, err := numArgs(name, args)
	if err != nil {
		return 0, err
	}
	return nums[0], nil
}
