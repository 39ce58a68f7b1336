package binder

import (
	"sync"

	"github.com/voltgo/volt/expr"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Handler{}
)

// RegisterBuiltin installs a handler for a directive kind ("text",
// "html", "bind", "on", "model", ...). Called from the handlers
// package's init(), never by application code — application-facing
// extensibility goes through RegisterPlugin instead.
func RegisterBuiltin(kind string, h Handler) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = h
}

func lookupBuiltin(kind string) (Handler, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	h, ok := registry[kind]
	return h, ok
}

// PluginFunc is what RegisterPlugin accepts: invoked for any directive
// kind with no built-in handler, receiving an AdapterContext wrapping
// the BindingContext and the raw attribute value.
type PluginFunc func(ac *AdapterContext, value string) error

var (
	pluginMu sync.RWMutex
	plugins  = map[string]PluginFunc{}
)

// RegisterPlugin installs a plugin handler for a directive name not in
// the built-in set, e.g. RegisterPlugin("tooltip", ...) handles
// data-volt-tooltip.
func RegisterPlugin(name string, fn PluginFunc) {
	pluginMu.Lock()
	defer pluginMu.Unlock()
	plugins[name] = fn
}

func lookupPlugin(name string) (PluginFunc, bool) {
	pluginMu.RLock()
	defer pluginMu.RUnlock()
	fn, ok := plugins[name]
	return fn, ok
}

// AdapterContext is the surface a plugin handler sees: the underlying
// BindingContext plus convenience methods matching the spec's plugin
// adapter ("addCleanup, findSignal, evaluate, lifecycle hooks").
type AdapterContext struct {
	*BindingContext
}

// Evaluate runs src in expression mode against the adapter's scope.
func (ac *AdapterContext) Evaluate(src string) (any, error) {
	return expr.Evaluate(src, ac.Scope)
}

// FindSignal resolves a plain identifier in scope and returns it
// un-evaluated (the cell/derivation itself, not its current value) —
// useful for a plugin that wants to subscribe directly.
func (ac *AdapterContext) FindSignal(name string) (any, bool) {
	v, ok := ac.Scope[name]
	return v, ok
}
