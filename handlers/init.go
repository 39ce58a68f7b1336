package handlers

import (
	"github.com/voltgo/volt/binder"
	"github.com/voltgo/volt/expr"
)

func init() {
	binder.RegisterBuiltin("init", initHandler)
}

// initHandler runs the directive's statement once at mount, with no
// subscriptions — re-evaluation never happens for this directive.
func initHandler(ctx *binder.BindingContext) error {
	_, err := expr.Execute(ctx.Directive.Value, ctx.Scope)
	return err
}
