package scopemeta

import (
	"sync"

	"github.com/voltgo/volt/dom"
	"github.com/voltgo/volt/expr"
)

// deferredMu/deferredQueue stand in for a microtask queue: there is no
// event loop to hook here, so $defer callbacks are queued and released
// by Flush, which the binder calls once at the end of each Mount pass —
// after the mount work has finished running. Event handler invocations
// do not call Flush; callbacks they queue wait for the next Flush, from a
// later Mount or from the host. This mirrors "runs before the next paint/IO but
// after the current synchronous job" without needing an actual
// scheduler.
var (
	deferredMu    sync.Mutex
	deferredQueue []func()
)

func scheduleDeferred(cb func()) {
	deferredMu.Lock()
	deferredQueue = append(deferredQueue, cb)
	deferredMu.Unlock()
}

// Flush runs every callback queued by $defer since the last Flush, in
// order. A callback scheduling another $defer call sees it flushed in
// the same pass (FIFO drain, not a fixed-size snapshot).
func Flush() {
	for {
		deferredMu.Lock()
		if len(deferredQueue) == 0 {
			deferredMu.Unlock()
			return
		}
		cb := deferredQueue[0]
		deferredQueue = deferredQueue[1:]
		deferredMu.Unlock()
		cb()
	}
}

// Specials returns the runtime-provided identifiers every mount scope
// gets extended with: $pins, $uid, $emit, $probe, $defer. $el and
// $event are not here — the binder only adds those to the narrower
// scope it builds for a single event-handler invocation.
//
// probeScope is resolved lazily (called at $probe-invocation time, not
// at Specials-build time) so $probe observes whatever scope is live at
// the call site; for this core implementation that is the scope the
// mount root was built with, not a descendant loop/event scope — $probe
// calls made from inside a loop body see the root scope, a known
// simplification recorded in the project's design notes.
func Specials(m *Metadata, probeScope func() expr.Scope) map[string]any {
	return map[string]any{
		"$pins": pinsProxy(m),
		"$uid": expr.Func(func(args []any) any {
			prefix := ""
			if len(args) > 0 {
				if s, ok := args[0].(string); ok {
					prefix = s
				}
			}
			return m.NextUID(prefix)
		}),
		"$emit": expr.Func(func(args []any) any {
			if m.Origin == nil {
				return nil
			}
			name, _ := arg0(args, "").(string)
			var detail any
			if len(args) > 1 {
				detail = args[1]
			}
			evt := dom.NewCustomEvent(name, m.Origin, detail)
			return m.Origin.DispatchEvent(evt)
		}),
		"$probe": expr.Func(func(args []any) any {
			if len(args) < 2 {
				return nil
			}
			src, _ := args[0].(string)
			return probe(src, probeScope(), args[1])
		}),
		"$defer": expr.Func(func(args []any) any {
			if len(args) == 0 {
				return nil
			}
			cb := args[0]
			scheduleDeferred(func() { callAny(cb, nil) })
			return nil
		}),
	}
}

func arg0(args []any, fallback any) any {
	if len(args) > 0 {
		return args[0]
	}
	return fallback
}

// probe implements $probe(exprSrc, cb): evaluate exprSrc once, call cb
// with the result, then subscribe cb to every dep ExtractDeps finds,
// returning a disposer that unsubscribes all of them.
func probe(src string, scope expr.Scope, cbVal any) func() {
	invoke := func() {
		v, err := expr.Evaluate(src, scope)
		if err != nil {
			return
		}
		callAny(cbVal, []any{v})
	}
	invoke()

	deps := expr.ExtractDeps(expr.ModeExpression, src, scope)
	var unsubs []func()
	for _, d := range deps {
		if s, ok := d.(interface{ Subscribe(func()) func() }); ok {
			unsubs = append(unsubs, s.Subscribe(invoke))
		}
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// callAny invokes cb if it is an expr.Func, the shape every callable
// value produced by the expression engine takes.
func callAny(cb any, args []any) any {
	if fn, ok := cb.(expr.Func); ok {
		return fn(args)
	}
	return nil
}

func pinsProxy(m *Metadata) map[string]any {
	return map[string]any{
		"get": expr.Func(func(args []any) any {
			name, _ := arg0(args, "").(string)
			el, ok := m.Pin(name)
			if !ok {
				return nil
			}
			return el
		}),
	}
}
