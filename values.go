// values.go — the runtime value model.
//
// Kronos programs manipulate double-precision numbers and strings; null is
// what a call without a return yields, and bool exists so type annotations
// can name it. Value is a tagged struct in the usual interpreter shape: the
// tag says which payload field of Data is live.
package kronos

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTNull ValueTag = iota // no payload
	VTBool                 // bool
	VTNum                  // float64
	VTStr                  // string
)

// Value is the universal runtime carrier.
type Value struct {
	Tag  ValueTag
	Data any
}

// Null is the singleton null value.
var Null = Value{Tag: VTNull}

// Constructors.
func BoolVal(b bool) Value { return Value{Tag: VTBool, Data: b} }
func Num(f float64) Value  { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value   { return Value{Tag: VTStr, Data: s} }

// AsNum returns the float payload; valid only when Tag is VTNum.
func (v Value) AsNum() float64 { return v.Data.(float64) }

// AsStr returns the string payload; valid only when Tag is VTStr.
func (v Value) AsStr() string { return v.Data.(string) }

// TypeName is the runtime type checked against `as` annotations: one of
// "bool", "number", "string", or "unknown" for everything else.
func (v Value) TypeName() string {
	switch v.Tag {
	case VTBool:
		return "bool"
	case VTNum:
		return "number"
	case VTStr:
		return "string"
	default:
		return "unknown"
	}
}

// Equal reports value equality. Values of different tags are never equal.
func (v Value) Equal(w Value) bool {
	if v.Tag != w.Tag {
		return false
	}
	switch v.Tag {
	case VTNull:
		return true
	case VTBool:
		return v.Data.(bool) == w.Data.(bool)
	case VTNum:
		return v.AsNum() == w.AsNum()
	case VTStr:
		return v.AsStr() == w.AsStr()
	}
	return false
}
