package handlers

import (
	"strings"

	"github.com/voltgo/volt/binder"
	"github.com/voltgo/volt/expr"
	"github.com/voltgo/volt/volterr"
)

func init() {
	binder.RegisterBuiltin("for", loopHandler)
}

// loopSyntax parses "ident in expr" or "(ident, idxIdent) in expr".
type loopSyntax struct {
	item string
	idx  string
	src  string
}

func parseLoopSyntax(raw string) (loopSyntax, error) {
	i := strings.Index(raw, " in ")
	if i < 0 {
		return loopSyntax{}, &volterr.InvalidBindingError{Directive: "data-volt-for", Value: raw, Reason: "missing \" in \""}
	}
	head := strings.TrimSpace(raw[:i])
	src := strings.TrimSpace(raw[i+len(" in "):])

	if strings.HasPrefix(head, "(") && strings.HasSuffix(head, ")") {
		inner := strings.TrimSpace(head[1 : len(head)-1])
		parts := strings.SplitN(inner, ",", 2)
		if len(parts) != 2 {
			return loopSyntax{}, &volterr.InvalidBindingError{Directive: "data-volt-for", Value: raw, Reason: "expected (ident, idxIdent)"}
		}
		return loopSyntax{item: strings.TrimSpace(parts[0]), idx: strings.TrimSpace(parts[1]), src: src}, nil
	}
	return loopSyntax{item: head, src: src}, nil
}

// loopHandler implements data-volt-for. It re-renders in full on every
// upstream change: unmount every previously rendered clone, then
// iterate the new array inserting one mounted clone per item before a
// placeholder comment, in source-array order.
func loopHandler(ctx *binder.BindingContext) error {
	syntax, err := parseLoopSyntax(ctx.Directive.Value)
	if err != nil {
		return err
	}

	template := ctx.Element
	parent := template.ParentElement()
	if parent == nil {
		return nil
	}

	placeholder := ctx.Doc.CreateComment("volt-for")
	parent.InsertBefore(placeholder, template)
	template.Remove()

	var rowTeardowns []func()

	apply := func(v any) {
		for _, t := range rowTeardowns {
			t()
		}
		rowTeardowns = rowTeardowns[:0]

		items, ok := v.([]any)
		if !ok {
			if v == nil {
				return
			}
			volterr.Report(volterr.Error, &volterr.InvalidBindingError{
				Directive: "data-volt-for", Value: ctx.Directive.Value, Reason: "source did not evaluate to an array",
			})
			return
		}

		for i, item := range items {
			clone := template.Clone()
			clone.RemoveAttribute("data-volt-for")
			parent.InsertBefore(clone, placeholder)

			additions := map[string]any{syntax.item: item}
			if syntax.idx != "" {
				additions[syntax.idx] = float64(i)
			}
			itemScope := expr.Extend(ctx.Scope, additions)

			teardown := binder.MountElement(ctx.Doc, clone, itemScope, ctx.Meta)
			rowTeardowns = append(rowTeardowns, func() {
				teardown()
				clone.Remove()
			})
		}
	}

	err = binder.BindValue(ctx, syntax.src, apply)
	ctx.AddCleanup(func() {
		for _, t := range rowTeardowns {
			t()
		}
		rowTeardowns = nil
	})
	return err
}
