package expr

import (
	"encoding/json"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Func is the callable value every function-shaped expression result
// takes: builtin methods, arrow-function closures, and host functions
// placed in the scope all normalize to this shape so callExpr has one
// calling convention.
type Func func(args []any) any

func callable(v any) (Func, bool) {
	if f, ok := v.(Func); ok {
		return f, true
	}
	return nil, false
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

func arrayMethod(arr []any, name string) any {
	switch name {
	case "map":
		return Func(func(args []any) any {
			fn, ok := callable(arg(args, 0))
			if !ok {
				return nil
			}
			out := make([]any, len(arr))
			for i, v := range arr {
				out[i] = fn([]any{v, float64(i)})
			}
			return out
		})
	case "filter":
		return Func(func(args []any) any {
			fn, ok := callable(arg(args, 0))
			if !ok {
				return nil
			}
			var out []any
			for i, v := range arr {
				if truthy(fn([]any{v, float64(i)})) {
					out = append(out, v)
				}
			}
			if out == nil {
				out = []any{}
			}
			return out
		})
	case "forEach":
		return Func(func(args []any) any {
			fn, ok := callable(arg(args, 0))
			if !ok {
				return nil
			}
			for i, v := range arr {
				fn([]any{v, float64(i)})
			}
			return nil
		})
	case "find":
		return Func(func(args []any) any {
			fn, ok := callable(arg(args, 0))
			if !ok {
				return nil
			}
			for i, v := range arr {
				if truthy(fn([]any{v, float64(i)})) {
					return v
				}
			}
			return nil
		})
	case "some":
		return Func(func(args []any) any {
			fn, ok := callable(arg(args, 0))
			if !ok {
				return false
			}
			for i, v := range arr {
				if truthy(fn([]any{v, float64(i)})) {
					return true
				}
			}
			return false
		})
	case "every":
		return Func(func(args []any) any {
			fn, ok := callable(arg(args, 0))
			if !ok {
				return true
			}
			for i, v := range arr {
				if !truthy(fn([]any{v, float64(i)})) {
					return false
				}
			}
			return true
		})
	case "reduce":
		return Func(func(args []any) any {
			fn, ok := callable(arg(args, 0))
			if !ok {
				return nil
			}
			var acc any
			start := 0
			if len(args) > 1 {
				acc = args[1]
			} else if len(arr) > 0 {
				acc = arr[0]
				start = 1
			}
			for i := start; i < len(arr); i++ {
				acc = fn([]any{acc, arr[i], float64(i)})
			}
			return acc
		})
	case "includes":
		return Func(func(args []any) any {
			target := arg(args, 0)
			for _, v := range arr {
				if strictEquals(v, target) {
					return true
				}
			}
			return false
		})
	case "indexOf":
		return Func(func(args []any) any {
			target := arg(args, 0)
			for i, v := range arr {
				if strictEquals(v, target) {
					return float64(i)
				}
			}
			return float64(-1)
		})
	case "join":
		return Func(func(args []any) any {
			sep := ","
			if len(args) > 0 {
				sep = toStr(args[0])
			}
			parts := make([]string, len(arr))
			for i, v := range arr {
				parts[i] = toStr(v)
			}
			return strings.Join(parts, sep)
		})
	case "slice":
		return Func(func(args []any) any {
			return sliceAny(arr, args)
		})
	case "concat":
		return Func(func(args []any) any {
			out := append([]any{}, arr...)
			for _, a := range args {
				if sub, ok := a.([]any); ok {
					out = append(out, sub...)
				} else {
					out = append(out, a)
				}
			}
			return out
		})
	case "sort":
		return Func(func(args []any) any {
			out := append([]any{}, arr...)
			fn, hasFn := callable(arg(args, 0))
			sort.SliceStable(out, func(i, j int) bool {
				if hasFn {
					return toNumber(fn([]any{out[i], out[j]})) < 0
				}
				return toStr(out[i]) < toStr(out[j])
			})
			return out
		})
	default:
		return nil
	}
}

func sliceAny(arr []any, args []any) []any {
	n := len(arr)
	start, end := 0, n
	if len(args) > 0 {
		start = clampIndex(int(toNumber(args[0])), n)
	}
	if len(args) > 1 {
		end = clampIndex(int(toNumber(args[1])), n)
	}
	if start > end {
		return []any{}
	}
	out := make([]any, end-start)
	copy(out, arr[start:end])
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func stringMethod(s string, name string) any {
	switch name {
	case "toUpperCase":
		return Func(func(args []any) any { return strings.ToUpper(s) })
	case "toLowerCase":
		return Func(func(args []any) any { return strings.ToLower(s) })
	case "trim":
		return Func(func(args []any) any { return strings.TrimSpace(s) })
	case "includes":
		return Func(func(args []any) any { return strings.Contains(s, toStr(arg(args, 0))) })
	case "startsWith":
		return Func(func(args []any) any { return strings.HasPrefix(s, toStr(arg(args, 0))) })
	case "endsWith":
		return Func(func(args []any) any { return strings.HasSuffix(s, toStr(arg(args, 0))) })
	case "indexOf":
		return Func(func(args []any) any { return float64(strings.Index(s, toStr(arg(args, 0)))) })
	case "split":
		return Func(func(args []any) any {
			sep := toStr(arg(args, 0))
			parts := strings.Split(s, sep)
			out := make([]any, len(parts))
			for i, p := range parts {
				out[i] = p
			}
			return out
		})
	case "replace":
		return Func(func(args []any) any {
			return strings.Replace(s, toStr(arg(args, 0)), toStr(arg(args, 1)), 1)
		})
	case "replaceAll":
		return Func(func(args []any) any {
			return strings.ReplaceAll(s, toStr(arg(args, 0)), toStr(arg(args, 1)))
		})
	case "charAt":
		return Func(func(args []any) any {
			runes := []rune(s)
			i := int(toNumber(arg(args, 0)))
			if i < 0 || i >= len(runes) {
				return ""
			}
			return string(runes[i])
		})
	case "slice":
		return Func(func(args []any) any {
			runes := []rune(s)
			asAny := make([]any, len(runes))
			for i, r := range runes {
				asAny[i] = string(r)
			}
			out := sliceAny(asAny, args)
			var b strings.Builder
			for _, v := range out {
				b.WriteString(v.(string))
			}
			return b.String()
		})
	case "repeat":
		return Func(func(args []any) any { return strings.Repeat(s, int(toNumber(arg(args, 0)))) })
	default:
		return nil
	}
}

// globals wires the short allow-list of safe built-ins the sandbox permits
// through the same wrapper as scope identifiers.
func globals() Scope {
	return Scope{
		"Array":    arrayGlobal(),
		"Object":   objectGlobal(),
		"String":   Func(func(args []any) any { return toStr(arg(args, 0)) }),
		"Number":   Func(func(args []any) any { return toNumber(arg(args, 0)) }),
		"Boolean":  Func(func(args []any) any { return truthy(arg(args, 0)) }),
		"Date":     dateGlobal(),
		"Math":     mathGlobal(),
		"JSON":     jsonGlobal(),
		"RegExp":   regexpGlobal(),
		"Map":      Func(func(args []any) any { return newMapValue() }),
		"Set":      Func(func(args []any) any { return newSetValue(args) }),
		"NaN":      math.NaN(),
		"Infinity": math.Inf(1),
	}
}

func arrayGlobal() map[string]any {
	return map[string]any{
		"isArray": Func(func(args []any) any {
			_, ok := arg(args, 0).([]any)
			return ok
		}),
		"from": Func(func(args []any) any {
			switch x := arg(args, 0).(type) {
			case []any:
				return append([]any{}, x...)
			case string:
				runes := []rune(x)
				out := make([]any, len(runes))
				for i, r := range runes {
					out[i] = string(r)
				}
				return out
			default:
				return []any{}
			}
		}),
	}
}

func objectGlobal() map[string]any {
	return map[string]any{
		"keys": Func(func(args []any) any {
			m, _ := arg(args, 0).(map[string]any)
			keys := make([]any, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Slice(keys, func(i, j int) bool { return keys[i].(string) < keys[j].(string) })
			return keys
		}),
		"values": Func(func(args []any) any {
			m, _ := arg(args, 0).(map[string]any)
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			vals := make([]any, len(keys))
			for i, k := range keys {
				vals[i] = m[k]
			}
			return vals
		}),
		"entries": Func(func(args []any) any {
			m, _ := arg(args, 0).(map[string]any)
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			out := make([]any, len(keys))
			for i, k := range keys {
				out[i] = []any{k, m[k]}
			}
			return out
		}),
		"assign": Func(func(args []any) any {
			out := map[string]any{}
			for _, a := range args {
				if m, ok := a.(map[string]any); ok {
					for k, v := range m {
						out[k] = v
					}
				}
			}
			return out
		}),
	}
}

func mathGlobal() map[string]any {
	return map[string]any{
		"abs":   Func(func(args []any) any { return math.Abs(toNumber(arg(args, 0))) }),
		"floor": Func(func(args []any) any { return math.Floor(toNumber(arg(args, 0))) }),
		"ceil":  Func(func(args []any) any { return math.Ceil(toNumber(arg(args, 0))) }),
		"round": Func(func(args []any) any { return math.Round(toNumber(arg(args, 0))) }),
		"trunc": Func(func(args []any) any { return math.Trunc(toNumber(arg(args, 0))) }),
		"sqrt":  Func(func(args []any) any { return math.Sqrt(toNumber(arg(args, 0))) }),
		"pow":   Func(func(args []any) any { return math.Pow(toNumber(arg(args, 0)), toNumber(arg(args, 1))) }),
		"max": Func(func(args []any) any {
			m := math.Inf(-1)
			for _, a := range args {
				if n := toNumber(a); n > m {
					m = n
				}
			}
			return m
		}),
		"min": Func(func(args []any) any {
			m := math.Inf(1)
			for _, a := range args {
				if n := toNumber(a); n < m {
					m = n
				}
			}
			return m
		}),
		"PI": math.Pi,
	}
}

func jsonGlobal() map[string]any {
	return map[string]any{
		"stringify": Func(func(args []any) any {
			b, err := json.Marshal(unwrap(arg(args, 0)))
			if err != nil {
				return nil
			}
			return string(b)
		}),
		"parse": Func(func(args []any) any {
			var out any
			if err := json.Unmarshal([]byte(toStr(arg(args, 0))), &out); err != nil {
				return nil
			}
			return normalizeJSON(out)
		}),
	}
}

func dateGlobal() map[string]any {
	return map[string]any{
		"now": Func(func(args []any) any { return float64(0) }),
	}
}

func regexpGlobal() Func {
	return func(args []any) any {
		pattern := toStr(arg(args, 0))
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil
		}
		return map[string]any{
			"test": Func(func(a []any) any { return re.MatchString(toStr(arg(a, 0))) }),
			"exec": Func(func(a []any) any {
				m := re.FindStringSubmatch(toStr(arg(a, 0)))
				if m == nil {
					return nil
				}
				out := make([]any, len(m))
				for i, s := range m {
					out[i] = s
				}
				return out
			}),
		}
	}
}

func newMapValue() map[string]any {
	store := map[string]any{}
	return map[string]any{
		"get": Func(func(args []any) any { return store[toStr(arg(args, 0))] }),
		"set": Func(func(args []any) any { store[toStr(arg(args, 0))] = arg(args, 1); return nil }),
		"has": Func(func(args []any) any { _, ok := store[toStr(arg(args, 0))]; return ok }),
		"delete": Func(func(args []any) any {
			k := toStr(arg(args, 0))
			_, ok := store[k]
			delete(store, k)
			return ok
		}),
	}
}

func newSetValue(initial []any) map[string]any {
	store := map[string]bool{}
	if len(initial) > 0 {
		if items, ok := initial[0].([]any); ok {
			for _, v := range items {
				store[toStr(v)] = true
			}
		}
	}
	return map[string]any{
		"add": Func(func(args []any) any { store[toStr(arg(args, 0))] = true; return nil }),
		"has": Func(func(args []any) any { return store[toStr(arg(args, 0))] }),
		"delete": Func(func(args []any) any {
			k := toStr(arg(args, 0))
			ok := store[k]
			delete(store, k)
			return ok
		}),
	}
}

// normalizeJSON converts encoding/json's decoded map[string]interface{}
// into the plain map[string]any / []any shape the rest of the engine
// expects (they're the same type under Go's type system, this just
// documents the invariant at the one call site that matters).
func normalizeJSON(v any) any { return v }
