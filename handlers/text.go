// Package handlers implements the built-in data-volt-* binding
// handlers and registers each into the binder package's handler
// registry at init time, keeping binder free of any import back to
// handlers (the database/sql driver pattern).
package handlers

import (
	"github.com/voltgo/volt/binder"
	"github.com/voltgo/volt/expr"
)

func init() {
	binder.RegisterBuiltin("text", textHandler)
}

func textHandler(ctx *binder.BindingContext) error {
	return binder.BindValue(ctx, ctx.Directive.Value, func(v any) {
		ctx.Element.SetTextContent(expr.Stringify(v))
	})
}
