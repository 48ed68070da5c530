package interpreter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type ValueKind int

const (
	KindNone ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindStr
	KindFunc
	KindBuiltin
)

// KindName returns the tag name used in error messages and disassembly.
func (k ValueKind) KindName() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindStr:
		return "str"
	case KindFunc:
		return "function"
	case KindBuiltin:
		return "builtin"
	default:
		return "None"
	}
}

// Value represents a dynamically-typed value on the operand stack.
// The zero Value is None.
type Value struct {
	Kind ValueKind
	I64  int64
	F64  float64
	Bool bool
	Str  string
	Fn   *Function
	Blt  *Builtin
}

// Function is a user-defined callable: a shared code object plus the
// qualified name attached by MAKE_FUNCTION.
type Function struct {
	Name string
	Code *Code
}

// NewInt creates an integer Value.
func NewInt(i int64) Value {
	return Value{Kind: KindInt, I64: i}
}

// NewFloat creates a float Value.
func NewFloat(f float64) Value {
	return Value{Kind: KindFloat, F64: f}
}

// NewBool creates a boolean Value.
func NewBool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// NewStr creates a string Value.
func NewStr(s string) Value {
	return Value{Kind: KindStr, Str: s}
}

// None is the unit value.
func None() Value {
	return Value{Kind: KindNone}
}

// NewFunc creates a Function value over a shared code object.
func NewFunc(name string, code *Code) Value {
	return Value{Kind: KindFunc, Fn: &Function{Name: name, Code: code}}
}

// String renders the canonical textual form used by print.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return formatFloat(v.F64)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindStr:
		return v.Str
	case KindFunc:
		return "<function " + v.Fn.Name + ">"
	case KindBuiltin:
		return "<builtin " + v.Blt.Name + ">"
	default:
		return "None"
	}
}

// formatFloat keeps the shortest round-trip form but never drops the
// fractional marker, so integral floats print as "7.0", not "7".
func formatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if math.IsNaN(f) {
		return "nan"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Truthy coerces the value for conditional jumps: None, false, zero of
// either numeric kind and the empty string are false.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNone:
		return false
	case KindBool:
		return v.Bool
	case KindInt:
		return v.I64 != 0
	case KindFloat:
		return v.F64 != 0
	case KindStr:
		return v.Str != ""
	default:
		return true
	}
}

func (v Value) isNumeric() bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

// asFloat promotes a numeric value to float64. Callers must check
// isNumeric first.
func (v Value) asFloat() float64 {
	if v.Kind == KindFloat {
		return v.F64
	}
	return float64(v.I64)
}

// CompareSelector mirrors the compare-op operand table of the bytecode
// stream: 0 <, 1 <=, 2 ==, 3 !=, 4 >, 5 >=.
type CompareSelector int

const (
	CmpLt CompareSelector = iota
	CmpLe
	CmpEq
	CmpNe
	CmpGt
	CmpGe
)

func (sel CompareSelector) String() string {
	switch sel {
	case CmpLt:
		return "<"
	case CmpLe:
		return "<="
	case CmpEq:
		return "=="
	case CmpNe:
		return "!="
	case CmpGt:
		return ">"
	case CmpGe:
		return ">="
	default:
		return fmt.Sprintf("cmp(%d)", int(sel))
	}
}

// Compare evaluates v ⋈ w for the given selector. Legal pairs are
// numeric-numeric (mixed pairs promote to float), bool-bool
// (false < true) and str-str (lexicographic); everything else is a
// TypeError.
func (v Value) Compare(sel CompareSelector, w Value) (Value, error) {
	var ord int

	switch {
	case v.Kind == KindInt && w.Kind == KindInt:
		ord = cmpOrder(v.I64, w.I64)
	case v.isNumeric() && w.isNumeric():
		ord = cmpOrder(v.asFloat(), w.asFloat())
	case v.Kind == KindBool && w.Kind == KindBool:
		ord = cmpOrder(boolInt(v.Bool), boolInt(w.Bool))
	case v.Kind == KindStr && w.Kind == KindStr:
		ord = strings.Compare(v.Str, w.Str)
	default:
		return Value{}, newTypeError("'%s' not supported between '%s' and '%s'",
			sel, v.Kind.KindName(), w.Kind.KindName())
	}

	switch sel {
	case CmpLt:
		return NewBool(ord < 0), nil
	case CmpLe:
		return NewBool(ord <= 0), nil
	case CmpEq:
		return NewBool(ord == 0), nil
	case CmpNe:
		return NewBool(ord != 0), nil
	case CmpGt:
		return NewBool(ord > 0), nil
	default:
		return NewBool(ord >= 0), nil
	}
}

func cmpOrder[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Add follows the numeric tower (int+int stays int, any float operand
// promotes) and additionally concatenates two strings.
func (v Value) Add(w Value) (Value, error) {
	switch {
	case v.Kind == KindInt && w.Kind == KindInt:
		return NewInt(v.I64 + w.I64), nil
	case v.isNumeric() && w.isNumeric():
		return NewFloat(v.asFloat() + w.asFloat()), nil
	case v.Kind == KindStr && w.Kind == KindStr:
		return NewStr(v.Str + w.Str), nil
	default:
		return Value{}, binOpTypeError("+", v, w)
	}
}

// Sub subtracts numerics with the usual promotion.
func (v Value) Sub(w Value) (Value, error) {
	switch {
	case v.Kind == KindInt && w.Kind == KindInt:
		return NewInt(v.I64 - w.I64), nil
	case v.isNumeric() && w.isNumeric():
		return NewFloat(v.asFloat() - w.asFloat()), nil
	default:
		return Value{}, binOpTypeError("-", v, w)
	}
}

// Mul multiplies numerics with the usual promotion.
func (v Value) Mul(w Value) (Value, error) {
	switch {
	case v.Kind == KindInt && w.Kind == KindInt:
		return NewInt(v.I64 * w.I64), nil
	case v.isNumeric() && w.isNumeric():
		return NewFloat(v.asFloat() * w.asFloat()), nil
	default:
		return Value{}, binOpTypeError("*", v, w)
	}
}

// TrueDiv always yields a float, even for two integer operands.
func (v Value) TrueDiv(w Value) (Value, error) {
	if !v.isNumeric() || !w.isNumeric() {
		return Value{}, binOpTypeError("/", v, w)
	}
	if w.asFloat() == 0 {
		return Value{}, newZeroDivisionError("division by zero")
	}
	return NewFloat(v.asFloat() / w.asFloat()), nil
}

// FloorDiv rounds toward negative infinity. Two integers stay an
// integer; any float operand yields a floored float.
func (v Value) FloorDiv(w Value) (Value, error) {
	switch {
	case v.Kind == KindInt && w.Kind == KindInt:
		if w.I64 == 0 {
			return Value{}, newZeroDivisionError("integer division by zero")
		}
		return NewInt(floorDivInt(v.I64, w.I64)), nil
	case v.isNumeric() && w.isNumeric():
		if w.asFloat() == 0 {
			return Value{}, newZeroDivisionError("float floor division by zero")
		}
		return NewFloat(math.Floor(v.asFloat() / w.asFloat())), nil
	default:
		return Value{}, binOpTypeError("//", v, w)
	}
}

// Neg negates a numeric value.
func (v Value) Neg() (Value, error) {
	switch v.Kind {
	case KindInt:
		return NewInt(-v.I64), nil
	case KindFloat:
		return NewFloat(-v.F64), nil
	default:
		return Value{}, newTypeError("bad operand type for unary -: '%s'", v.Kind.KindName())
	}
}

// floorDivInt implements the floored quotient: Go's / truncates toward
// zero, so a negative result with a remainder needs one more step down.
func floorDivInt(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func binOpTypeError(op string, v, w Value) error {
	return newTypeError("unsupported operand types for %s: '%s' and '%s'",
		op, v.Kind.KindName(), w.Kind.KindName())
}
