// Package volt is the runtime's top-level, thin wrapper: cell/derivation/
// effect creators re-exported from reactivity, Mount wiring binder +
// scopemeta + the built-in handlers, RegisterPlugin, and a discovery
// entry that scans a document for data-volt roots. It intentionally adds
// no behavior of its own beyond composing the packages underneath it.
package volt

import (
	"github.com/voltgo/volt/binder"
	"github.com/voltgo/volt/dom"
	"github.com/voltgo/volt/expr"
	"github.com/voltgo/volt/reactivity"
	"github.com/voltgo/volt/volterr"

	// Blank-imported so every built-in handler's init() registers into
	// binder's registry without binder ever importing handlers back —
	// the database/sql driver pattern applied to directive dispatch.
	_ "github.com/voltgo/volt/handlers"
)

// Cell, Derivation and Effect re-export the reactive primitives; a host
// embedding the runtime programmatically (outside any data-volt markup)
// builds scopes out of these the same way the binder does internally.
type Cell = reactivity.Cell
type Derivation = reactivity.Derivation
type Effect = reactivity.Effect

func NewCell(name string, initial any) *Cell              { return reactivity.NewCell(name, initial) }
func NewDerivation(name string, fn func() any) *Derivation { return reactivity.NewDerivation(name, fn) }
func CreateEffect(fn func()) *Effect                       { return reactivity.CreateEffect(fn) }
func OnCleanup(fn func())                                  { reactivity.OnCleanup(fn) }

// Scope is the identifier table an expression evaluates against.
type Scope = expr.Scope

// MountOptions/Option/Hooks configure a Mount call.
type MountOptions = binder.MountOptions
type Option = binder.Option
type Hooks = binder.Hooks

func WithHooks(h Hooks) Option        { return binder.WithHooks(h) }
func WithSink(s volterr.Sink) Option  { return binder.WithSink(s) }
func WithPlugins(plugins map[string]binder.PluginFunc) Option {
	return binder.WithPlugins(plugins)
}

// Mount binds root (and the subtree below it) against scope, returning a
// teardown closure. root's own data-volt-state and
// data-volt-computed:<name> attributes, if present, seed the scope
// handed to its descendants.
func Mount(doc dom.Document, root dom.Element, scope Scope, opts ...Option) (teardown func()) {
	return binder.Mount(doc, root, scope, opts...)
}

// RegisterPlugin installs a handler for a directive name with no
// built-in meaning, e.g. RegisterPlugin("tooltip", fn) handles
// data-volt-tooltip.
func RegisterPlugin(name string, fn binder.PluginFunc) {
	binder.RegisterPlugin(name, fn)
}

// MountAll discovers every element carrying the bare data-volt marker
// under root (root included) and mounts each as an independent root
// against its own empty scope, returning one teardown that disposes
// them all.
func MountAll(doc dom.Document, root dom.Element, opts ...Option) (teardown func()) {
	var roots []dom.Element
	var find func(el dom.Element)
	find = func(el dom.Element) {
		if _, has := el.GetAttribute("data-volt"); has {
			roots = append(roots, el)
			return // a mount root's interior is that root's own walk, not a nested discovery target
		}
		for _, c := range el.Children() {
			find(c)
		}
	}
	find(root)

	var teardowns []func()
	for _, r := range roots {
		teardowns = append(teardowns, Mount(doc, r, Scope{}, opts...))
	}
	return func() {
		for _, t := range teardowns {
			t()
		}
	}
}
