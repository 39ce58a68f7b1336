package handlers

import (
	"github.com/voltgo/volt/binder"
	"github.com/voltgo/volt/expr"
)

func init() {
	binder.RegisterBuiltin("show", showHandler)
}

// showHandler toggles style.display, capturing the element's original
// inline display value on first apply so toggling back to visible
// restores it rather than clearing the property outright.
func showHandler(ctx *binder.BindingContext) error {
	var original string
	captured := false
	return binder.BindValue(ctx, ctx.Directive.Value, func(v any) {
		if !captured {
			original = ctx.Element.Style().GetPropertyValue("display")
			captured = true
		}
		if expr.Truthy(v) {
			if original == "" {
				ctx.Element.Style().RemoveProperty("display")
			} else {
				ctx.Element.Style().SetProperty("display", original)
			}
			return
		}
		ctx.Element.Style().SetProperty("display", "none")
	})
}
