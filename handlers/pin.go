package handlers

import "github.com/voltgo/volt/binder"

func init() {
	binder.RegisterBuiltin("pin", pinHandler)
}

// pinHandler registers the element into the scope's pin registry under
// the directive's literal value (not evaluated — pin names are plain
// identifiers, not expressions).
func pinHandler(ctx *binder.BindingContext) error {
	name := ctx.Directive.Value
	ctx.Meta.RegisterPin(name, ctx.Element)
	ctx.AddCleanup(func() {
		ctx.Meta.UnregisterPin(name)
	})
	return nil
}
