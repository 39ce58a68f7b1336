package handlers

import (
	"strings"
	"unicode"

	"github.com/voltgo/volt/binder"
	"github.com/voltgo/volt/expr"
)

func init() {
	binder.RegisterBuiltin("style", styleHandler)
}

// styleHandler accepts either a mapping (camelCase keys -> kebab-case CSS
// properties, null/undefined removes the property) or a raw CSS text
// string assigned wholesale to cssText.
func styleHandler(ctx *binder.BindingContext) error {
	return binder.BindValue(ctx, ctx.Directive.Value, func(v any) {
		switch x := v.(type) {
		case nil:
			ctx.Element.Style().SetCSSText("")
		case string:
			ctx.Element.Style().SetCSSText(x)
		case map[string]any:
			for k, val := range x {
				prop := kebabCase(k)
				if expr.Unwrap(val) == nil {
					ctx.Element.Style().RemoveProperty(prop)
					continue
				}
				ctx.Element.Style().SetProperty(prop, expr.Stringify(val))
			}
		default:
			ctx.Element.Style().SetCSSText(expr.Stringify(x))
		}
	})
}

func kebabCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
