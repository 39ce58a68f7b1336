package handlers

import (
	"strings"

	"github.com/voltgo/volt/binder"
	"github.com/voltgo/volt/expr"
)

func init() {
	binder.RegisterBuiltin("bind", bindHandler)
}

// booleanAttrs names HTML attributes whose presence (regardless of
// value) is the signal, rather than their string content.
var booleanAttrs = map[string]bool{
	"disabled": true, "checked": true, "readonly": true, "required": true,
	"selected": true, "multiple": true, "hidden": true, "autofocus": true,
	"open": true,
}

// bindHandler implements data-volt-bind:<attr>[.mods]. .number/.trim
// modifiers coerce the evaluated value before it is applied.
func bindHandler(ctx *binder.BindingContext) error {
	name := ctx.Directive.Sub
	_, isNumber := ctx.Directive.Mod("number")
	_, isTrim := ctx.Directive.Mod("trim")

	return binder.BindValue(ctx, ctx.Directive.Value, func(v any) {
		if isTrim {
			if s, ok := v.(string); ok {
				v = strings.TrimSpace(s)
			}
		}
		if isNumber {
			v = expr.ToNumber(v)
		}

		if booleanAttrs[name] {
			if expr.Truthy(v) {
				ctx.Element.SetAttribute(name, name)
			} else {
				ctx.Element.RemoveAttribute(name)
			}
			return
		}

		if v == nil || v == false {
			ctx.Element.RemoveAttribute(name)
			return
		}
		ctx.Element.SetAttribute(name, expr.Stringify(v))
	})
}
