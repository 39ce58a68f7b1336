package handlers

import (
	"github.com/voltgo/volt/binder"
	"github.com/voltgo/volt/dom"
	"github.com/voltgo/volt/expr"
)

func init() {
	binder.RegisterBuiltin("if", conditionalHandler)
	// The else sibling is discovered and detached by the if handler
	// itself; it is still independently collected by the walker (it
	// carries its own volt attribute), so it needs a registered no-op
	// here rather than falling through to the unknown-directive warning.
	binder.RegisterBuiltin("else", func(*binder.BindingContext) error { return nil })
}

type branch int

const (
	branchNone branch = iota
	branchIf
	branchElse
)

// conditionalHandler implements data-volt-if / data-volt-else as a
// two-state machine over {ifBranch, elseBranch, none}. At mount it
// detaches the if element (and an immediately following else sibling,
// if present) and inserts a placeholder comment in their place; each
// re-evaluation clones whichever template the new truthiness selects,
// tearing the previous one down first.
func conditionalHandler(ctx *binder.BindingContext) error {
	ifTemplate := ctx.Element
	parent := ifTemplate.ParentElement()
	if parent == nil {
		return nil
	}

	var elseTemplate dom.Element
	if next := nextSibling(parent, ifTemplate); next != nil {
		if _, has := next.GetAttribute("data-volt-else"); has {
			elseTemplate = next
		}
	}

	placeholder := ctx.Doc.CreateComment("volt-if")
	parent.InsertBefore(placeholder, ifTemplate)
	ifTemplate.Remove()
	if elseTemplate != nil {
		elseTemplate.Remove()
	}

	current := branchNone
	var currentTeardown func()

	apply := func(v any) {
		target := branchNone
		if expr.Truthy(v) {
			target = branchIf
		} else if elseTemplate != nil {
			target = branchElse
		}
		if target == current {
			return
		}
		if currentTeardown != nil {
			currentTeardown()
			currentTeardown = nil
		}
		current = target

		var tmpl dom.Element
		switch target {
		case branchIf:
			tmpl = ifTemplate
		case branchElse:
			tmpl = elseTemplate
		default:
			return
		}

		clone := tmpl.Clone()
		clone.RemoveAttribute("data-volt-if")
		clone.RemoveAttribute("data-volt-else")
		parent.InsertBefore(clone, placeholder)
		currentTeardown = binder.MountElement(ctx.Doc, clone, ctx.Scope, ctx.Meta)
		wrapped := currentTeardown
		currentTeardown = func() {
			wrapped()
			clone.Remove()
		}
	}

	err := binder.BindValue(ctx, ctx.Directive.Value, apply)
	ctx.AddCleanup(func() {
		if currentTeardown != nil {
			currentTeardown()
			currentTeardown = nil
		}
	})
	return err
}

func nextSibling(parent, el dom.Element) dom.Element {
	kids := parent.Children()
	for i, k := range kids {
		if k == el {
			if i+1 < len(kids) {
				return kids[i+1]
			}
			return nil
		}
	}
	return nil
}
