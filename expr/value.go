package expr

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// dep is implemented by both *reactivity.Cell and *reactivity.Derivation;
// it is the minimal surface the expression engine and extractor need,
// defined locally so this package does not have to import reactivity just
// to spell out two well-known methods.
type dep interface {
	Get() any
	Subscribe(func()) func()
}

// unwrap auto-unwraps a cell/derivation to its current value. Used
// whenever a resolved value flows into arithmetic, comparison, string
// coercion, or truthiness — everywhere except the receiver of a .get/.set/
// .subscribe call, which needs the wrapped value itself.
func unwrap(v any) any {
	if d, ok := v.(dep); ok {
		return d.Get()
	}
	return v
}

func truthy(v any) bool {
	v = unwrap(v)
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

func toNumber(v any) float64 {
	v = unwrap(v)
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case nil:
		return 0
	default:
		return math.NaN()
	}
}

func toStr(v any) string {
	v = unwrap(v)
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		if math.IsNaN(x) {
			return "NaN"
		}
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return strconv.FormatFloat(x, 'f', -1, 64)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Stringify, ToNumber, Truthy and Unwrap expose this package's value
// coercion to other packages (the binding handlers need the exact same
// string/number/truthiness rules the evaluator itself uses, e.g. "6"
// not "6.000000" for a whole-number cell value).
func Stringify(v any) string { return toStr(v) }
func ToNumber(v any) float64 { return toNumber(v) }
func Truthy(v any) bool      { return truthy(v) }
func Unwrap(v any) any       { return unwrap(v) }

// strictEquals implements === : same underlying representation and value,
// no coercion (mirrors JS === for the value shapes this engine produces).
func strictEquals(a, b any) bool {
	a, b = unwrap(a), unwrap(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != vb.Kind() {
		// allow int/float64 cross-comparison since JSON numbers decode as float64
		if isNumeric(va.Kind()) && isNumeric(vb.Kind()) {
			return toNumber(a) == toNumber(b)
		}
		return false
	}
	switch va.Kind() {
	case reflect.Slice, reflect.Map, reflect.Func:
		return false // reference types compare by identity only; different instances are never ===
	default:
		if va.Type().Comparable() {
			return a == b
		}
		return false
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return true
	}
	return false
}
