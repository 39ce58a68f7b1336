package handlers

import (
	"github.com/voltgo/volt/binder"
	"github.com/voltgo/volt/expr"
)

func init() {
	binder.RegisterBuiltin("html", htmlHandler)
}

// htmlHandler assigns innerHTML verbatim; no sanitization is performed,
// matching the caller-trust contract for this binding.
func htmlHandler(ctx *binder.BindingContext) error {
	return binder.BindValue(ctx, ctx.Directive.Value, func(v any) {
		ctx.Element.SetInnerHTML(expr.Stringify(v))
	})
}
