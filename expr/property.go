package expr

import (
	"reflect"
)

// getProp reads property name off v. It never unwraps the dep/cell methods
// get/set/subscribe (those are resolved by the caller before falling back
// here); everything else auto-unwraps v first. Blocked property names
// always read as undefined, satisfying the sandbox contract even when the
// underlying Go value happens to expose them.
func getProp(v any, name string) any {
	if isBlockedProperty(name) {
		return nil
	}
	v = unwrap(v)
	switch x := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return x[name]
	case []any:
		if name == "length" {
			return float64(len(x))
		}
		return arrayMethod(x, name)
	case string:
		if name == "length" {
			return float64(len([]rune(x)))
		}
		return stringMethod(x, name)
	default:
		return reflectGetProp(v, name)
	}
}

func reflectGetProp(v any, name string) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	f := rv.FieldByName(name)
	if !f.IsValid() || !f.CanInterface() {
		return nil
	}
	return f.Interface()
}

// setProp assigns to a property path when the target supports it
// (map[string]any only — plain decoded-JSON maps are the only mutable
// aggregate the sandbox exposes for writes). Blocked property names are
// silently ignored, never an error, per the sandbox contract.
func setProp(v any, name string, value any) {
	if isBlockedProperty(name) {
		return
	}
	if m, ok := unwrap(v).(map[string]any); ok {
		m[name] = value
	}
	// Any other receiver (slice, string, struct) is immutable from expression
	// land; writes are silently dropped rather than erroring, matching the
	// sandbox's "writes are silently ignored" rule for disallowed targets.
}

func computedIndex(v any, idx any) any {
	v = unwrap(v)
	idx = unwrap(idx)
	switch x := v.(type) {
	case []any:
		i, ok := idx.(float64)
		if !ok {
			return nil
		}
		n := int(i)
		if n < 0 || n >= len(x) {
			return nil
		}
		return x[n]
	case map[string]any:
		key, _ := idx.(string)
		return getProp(x, key)
	case string:
		i, ok := idx.(float64)
		if !ok {
			return nil
		}
		runes := []rune(x)
		n := int(i)
		if n < 0 || n >= len(runes) {
			return nil
		}
		return string(runes[n])
	default:
		if key, ok := idx.(string); ok {
			return getProp(v, key)
		}
		return nil
	}
}
