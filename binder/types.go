// Package binder implements the DOM walker and per-element dispatch loop:
// it discovers data-volt-* attributes, splits each into (kind, sub,
// modifiers, value), builds and extends the scope, and routes every
// attribute to its handler. Built-in handlers live in the sibling
// handlers package and register themselves into this package's registry
// at init time (the database/sql driver pattern) so binder never needs
// to import handlers — handlers imports binder for BindingContext.
package binder

import (
	"github.com/voltgo/volt/dom"
	"github.com/voltgo/volt/expr"
	"github.com/voltgo/volt/scopemeta"
)

// Modifier is one parsed dot-separated modifier suffix, optionally
// carrying a numeric argument (".debounce.250" → Name "debounce", Arg
// "250").
type Modifier struct {
	Name string
	Arg  string
}

func (m Modifier) HasArg() bool { return m.Arg != "" }

// Directive is one parsed data-volt-* attribute.
type Directive struct {
	AttrName string
	Kind     string // text, html, class, show, style, bind, model, on, init, pin, if, else, for, skip, cloak, state, computed
	Sub      string // bind:<Sub>, on-<Sub>, computed:<Sub>
	Mods     []Modifier
	Value    string
}

func (d Directive) Mod(name string) (Modifier, bool) {
	for _, m := range d.Mods {
		if m.Name == name {
			return m, true
		}
	}
	return Modifier{}, false
}

func (d Directive) HasMod(name string) bool {
	_, ok := d.Mod(name)
	return ok
}

// BindingContext is passed to every handler: the bound element, the
// scope it evaluates against, the scope metadata sidecar, and an
// append-only teardown list the handler must push any subscription onto.
type BindingContext struct {
	Doc        dom.Document
	Element    dom.Element
	Scope      expr.Scope
	Meta       *scopemeta.Metadata
	Directive  Directive
	Teardowns  *[]func()
}

func (c *BindingContext) AddCleanup(fn func()) {
	*c.Teardowns = append(*c.Teardowns, fn)
}

// EventScope returns Scope extended with $el/$event, for handlers that
// evaluate inside an event-handler-shaped statement (event, in effect).
func (c *BindingContext) EventScope(event dom.Event) expr.Scope {
	return expr.Extend(c.Scope, map[string]any{
		"$el":    c.Element,
		"$event": event,
	})
}

// Handler is the shape every built-in and plugin directive handler
// implements.
type Handler func(ctx *BindingContext) error
