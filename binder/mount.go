package binder

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/voltgo/volt/dom"
	"github.com/voltgo/volt/expr"
	"github.com/voltgo/volt/reactivity"
	"github.com/voltgo/volt/scopemeta"
	"github.com/voltgo/volt/volterr"
)

// Mount binds root and its subtree against scope (extended with any
// data-volt-state/computed entries found on root itself), dispatching
// every discovered element to the registered handlers. It returns a
// teardown closure; calling it more than once is a no-op after the
// first call.
func Mount(doc dom.Document, root dom.Element, scope expr.Scope, opts ...Option) (teardown func()) {
	o := newOptions(opts)
	report := reporterFor(o)

	if o.Hooks.BeforeMount != nil {
		o.Hooks.BeforeMount(root)
	}

	meta := scopemeta.New(root, nil)
	scopemeta.Attach(root, meta)

	rootScope, err := buildRootScope(root, scope)
	if err != nil {
		report(err)
		rootScope = scope
	}

	var currentScope = rootScope
	rootScope = expr.Extend(rootScope, scopemeta.Specials(meta, func() expr.Scope { return currentScope }))
	currentScope = rootScope

	var teardowns []func()
	mountSubtree(doc, root, rootScope, meta, o, report, &teardowns)

	scopemeta.Flush()

	if o.Hooks.AfterMount != nil {
		o.Hooks.AfterMount(root)
	}

	var done bool
	return func() {
		if done {
			return
		}
		done = true
		if o.Hooks.BeforeUnmount != nil {
			o.Hooks.BeforeUnmount(root)
		}
		for _, fn := range teardowns {
			runGuardedTeardown(fn, report)
		}
		scopemeta.Detach(root)
		if o.Hooks.AfterUnmount != nil {
			o.Hooks.AfterUnmount(root)
		}
	}
}

func runGuardedTeardown(fn func(), report func(error)) {
	defer func() {
		if r := recover(); r != nil {
			report(&volterr.HandlerRuntimeError{Handler: "teardown", Cause: toError(r)})
		}
	}()
	fn()
}

func toError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

func severityFor(err error) volterr.Severity {
	switch err.(type) {
	case *volterr.CircularDependencyError:
		return volterr.Fatal
	case *volterr.UnknownDirectiveError:
		return volterr.Warn
	default:
		return volterr.Error
	}
}

// buildRootScope decodes data-volt-state into cells and
// data-volt-computed:<name> attributes into derivations, both merged
// into a scope extending parent.
func buildRootScope(root dom.Element, parent expr.Scope) (expr.Scope, error) {
	additions := map[string]any{}

	if raw, ok := root.GetAttribute("data-volt-state"); ok && strings.TrimSpace(raw) != "" {
		var decoded map[string]any
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			return parent, &volterr.InvalidBindingError{Directive: "data-volt-state", Value: raw, Reason: err.Error()}
		}
		for k, v := range decoded {
			additions[normalizeName(k)] = reactivity.NewCell(normalizeName(k), v)
		}
	}

	scope := expr.Extend(parent, additions)

	for _, name := range root.AttributeNames() {
		const prefix = "data-volt-computed:"
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rawName := name[len(prefix):]
		camel := normalizeName(rawName)
		src, _ := root.GetAttribute(name)
		d := reactivity.NewDerivation(camel, func() any {
			v, err := expr.Evaluate(src, scope)
			if err != nil {
				return nil
			}
			return v
		})
		scope[camel] = d
	}

	return scope, nil
}

// NormalizeName converts kebab-case-name to kebabCaseName, the
// normalization applied to computed-derivation names and used as the
// fallback when resolving a model path segment that doesn't match a
// scope entry verbatim.
func NormalizeName(s string) string { return normalizeName(s) }

// normalizeName converts kebab-case-name to kebabCaseName.
func normalizeName(s string) string {
	parts := strings.Split(s, "-")
	if len(parts) == 1 {
		return s
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// mountSubtree walks root's children, dispatching each collected
// element per the fixed per-element order: cloak removal, loop/if
// precedence over generic attributes, else dispatch every attribute.
func mountSubtree(doc dom.Document, root dom.Element, scope expr.Scope, meta *scopemeta.Metadata, o *MountOptions, report func(error), teardowns *[]func()) {
	for _, ce := range walk(root) {
		mountElement(doc, ce, scope, meta, o, report, teardowns)
	}
}

// MountElement binds el itself plus its subtree against scope, without
// any of the root-level data-volt-state/computed decoding Mount does.
// This is what the loop and conditional handlers call to bring a cloned
// template element to life against a scope extended with the loop item
// (or, for conditional, the parent scope unchanged) — el is treated as
// if it were itself one of walk's collected elements.
func MountElement(doc dom.Document, el dom.Element, scope expr.Scope, meta *scopemeta.Metadata, opts ...Option) (teardown func()) {
	o := newOptions(opts)
	report := reporterFor(o)

	var teardowns []func()
	attrs := voltAttrs(el)
	if len(attrs) > 0 {
		mountElement(doc, collectedElement{el: el, attrs: attrs}, scope, meta, o, report, &teardowns)
	}
	// Only descend into children here when el itself has no loop/if — if
	// it did, mountElement already delegated the whole element (and
	// therefore its interior) to that handler.
	_, hasLoop := attrs["data-volt-for"]
	_, hasIf := attrs["data-volt-if"]
	if !hasLoop && !hasIf {
		mountSubtree(doc, el, scope, meta, o, report, &teardowns)
	}

	var done bool
	return func() {
		if done {
			return
		}
		done = true
		for _, fn := range teardowns {
			runGuardedTeardown(fn, report)
		}
	}
}

func mountElement(doc dom.Document, ce collectedElement, scope expr.Scope, meta *scopemeta.Metadata, o *MountOptions, report func(error), teardowns *[]func()) {
	el := ce.el
	if _, has := ce.attrs["data-volt-cloak"]; has {
		el.RemoveAttribute("data-volt-cloak")
	}

	if loopVal, has := ce.attrs["data-volt-for"]; has {
		dispatchOne(doc, el, scope, meta, "data-volt-for", "for", "", nil, loopVal, o, report, teardowns)
		return
	}
	if ifVal, has := ce.attrs["data-volt-if"]; has {
		dispatchOne(doc, el, scope, meta, "data-volt-if", "if", "", nil, ifVal, o, report, teardowns)
		return
	}

	for name, value := range ce.attrs {
		d, ok := ParseAttr(name, value)
		if !ok || d.Kind == "" {
			continue
		}
		dispatchDirective(doc, el, scope, meta, d, o, report, teardowns)
	}
}

func dispatchOne(doc dom.Document, el dom.Element, scope expr.Scope, meta *scopemeta.Metadata, attrName, kind, sub string, mods []Modifier, value string, o *MountOptions, report func(error), teardowns *[]func()) {
	d := Directive{AttrName: attrName, Kind: kind, Sub: sub, Mods: mods, Value: value}
	dispatchDirective(doc, el, scope, meta, d, o, report, teardowns)
}

func dispatchDirective(doc dom.Document, el dom.Element, scope expr.Scope, meta *scopemeta.Metadata, d Directive, o *MountOptions, report func(error), teardowns *[]func()) {
	ctx := &BindingContext{Doc: doc, Element: el, Scope: scope, Meta: meta, Directive: d, Teardowns: teardowns}

	h, ok := lookupBuiltin(d.Kind)
	if !ok {
		runPlugin(ctx, d, o, report)
		return
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				err := toError(r)
				if _, fatal := err.(*volterr.CircularDependencyError); fatal {
					panic(r)
				}
				report(&volterr.HandlerRuntimeError{Handler: d.Kind, Cause: err})
			}
		}()
		if err := h(ctx); err != nil {
			report(&volterr.HandlerRuntimeError{Handler: d.Kind, Cause: err})
		}
	}()
}

func runPlugin(ctx *BindingContext, d Directive, o *MountOptions, report func(error)) {
	fn, ok := o.Plugins[d.Kind]
	if !ok {
		fn, ok = lookupPlugin(d.Kind)
	}
	if !ok {
		report(&volterr.UnknownDirectiveError{Directive: d.AttrName})
		return
	}
	ac := &AdapterContext{BindingContext: ctx}
	defer func() {
		if r := recover(); r != nil {
			report(&volterr.PluginFailureError{Plugin: d.Kind, Cause: toError(r)})
		}
	}()
	if err := fn(ac, d.Value); err != nil {
		report(&volterr.PluginFailureError{Plugin: d.Kind, Cause: err})
	}
}
