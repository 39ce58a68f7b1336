package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/voltgo/volt/binder"
	"github.com/voltgo/volt/dom"
	"github.com/voltgo/volt/expr"
)

func init() {
	binder.RegisterBuiltin("model", modelHandler)
}

// cellLike is satisfied by *reactivity.Cell (and anything else exposing
// the same get/set/subscribe shape).
type cellLike interface {
	Get() any
	Set(any)
	Subscribe(func()) func()
}

// modelHandler implements two-way binding between a named cell and a
// form control.
func modelHandler(ctx *binder.BindingContext) error {
	cell, ok := resolveCell(ctx.Scope, ctx.Directive.Value)
	if !ok {
		return &invalidModelPath{path: ctx.Directive.Value}
	}

	el := ctx.Element
	_, isNumber := ctx.Directive.Mod("number")
	_, isTrim := ctx.Directive.Mod("trim")
	_, isLazy := ctx.Directive.Mod("lazy")
	debounceMod, hasDebounce := ctx.Directive.Mod("debounce")

	writeToElement := func() {
		v := cell.Get()
		switch kindOf(el) {
		case "checkbox":
			el.SetChecked(expr.Truthy(v))
		case "radio":
			el.SetChecked(expr.Stringify(v) == el.Value())
		default:
			el.SetValue(expr.Stringify(v))
		}
	}
	writeToElement()
	unsub := cell.Subscribe(writeToElement)
	ctx.AddCleanup(unsub)

	readFromElement := func() any {
		switch kindOf(el) {
		case "checkbox":
			return el.Checked()
		case "radio":
			return el.Value()
		default:
			v := any(el.Value())
			if isNumber {
				return expr.ToNumber(v)
			}
			if isTrim {
				v = strings.TrimSpace(v.(string))
			}
			return v
		}
	}

	var writeToCell dom.EventListener = func(dom.Event) {
		cell.Set(readFromElement())
	}
	if hasDebounce {
		writeToCell = debounceModel(debounceMod.Arg, writeToCell)
	}

	eventName := "input"
	switch kindOf(el) {
	case "checkbox", "radio", "select":
		eventName = "change"
	}
	if isLazy {
		eventName = "change"
	}

	el.AddEventListener(eventName, false, writeToCell)
	ctx.AddCleanup(func() {
		el.RemoveEventListener(eventName, false, writeToCell)
	})
	return nil
}

func debounceModel(argMs string, fn dom.EventListener) dom.EventListener {
	delay := parseMs(argMs, 250)
	var timer *time.Timer
	return func(ev dom.Event) {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() { fn(ev) })
	}
}

func kindOf(el dom.Element) string {
	if el.TagName() == "SELECT" {
		return "select"
	}
	if el.TagName() != "INPUT" {
		return ""
	}
	t, _ := el.GetAttribute("type")
	return strings.ToLower(t)
}

// resolveCell walks a dotted path against scope; a segment that misses
// a direct key is retried with kebab-case-to-camelCase normalization,
// matching data-volt-state's own key normalization.
func resolveCell(scope expr.Scope, path string) (cellLike, bool) {
	segs := strings.Split(path, ".")
	var cur any = map[string]any(scope)
	for i, seg := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := m[seg]
		if !ok {
			v, ok = m[binder.NormalizeName(seg)]
		}
		if !ok {
			return nil, false
		}
		if i == len(segs)-1 {
			c, ok := v.(cellLike)
			return c, ok
		}
		cur = v
	}
	return nil, false
}

type invalidModelPath struct{ path string }

func (e *invalidModelPath) Error() string {
	return "volt: data-volt-model path " + strconv.Quote(e.path) + " did not resolve to a cell"
}
