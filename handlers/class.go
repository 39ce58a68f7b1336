package handlers

import (
	"strings"

	"github.com/voltgo/volt/binder"
	"github.com/voltgo/volt/expr"
)

func init() {
	binder.RegisterBuiltin("class", classHandler)
}

// classHandler interprets the evaluated value as a space-separated
// string, a truthy-valued mapping, or a stringified primitive, and
// removes on re-apply any class it added previously that the new value
// no longer names.
func classHandler(ctx *binder.BindingContext) error {
	var previous []string
	return binder.BindValue(ctx, ctx.Directive.Value, func(v any) {
		next := classNames(v)
		list := ctx.Element.ClassList()
		for _, c := range previous {
			if !contains(next, c) {
				list.Remove(c)
			}
		}
		if len(next) > 0 {
			list.Add(next...)
		}
		previous = next
	})
}

func classNames(v any) []string {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return strings.Fields(x)
	case map[string]any:
		var out []string
		for k, val := range x {
			if expr.Truthy(val) {
				out = append(out, k)
			}
		}
		return out
	default:
		return strings.Fields(expr.Stringify(x))
	}
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
