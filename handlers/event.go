package handlers

import (
	"strconv"
	"sync"
	"time"

	"github.com/voltgo/volt/binder"
	"github.com/voltgo/volt/dom"
	"github.com/voltgo/volt/expr"
)

func init() {
	binder.RegisterBuiltin("on", eventHandler)
}

// eventHandler implements data-volt-on-<event>[.mods]. The listener
// evaluates the directive's value in statement mode against
// scope ∪ {$el, $event}; if that produced a callable, it is invoked
// with the event.
func eventHandler(ctx *binder.BindingContext) error {
	name := ctx.Directive.Sub
	_, prevent := ctx.Directive.Mod("prevent")
	_, stop := ctx.Directive.Mod("stop")
	_, self := ctx.Directive.Mod("self")
	_, once := ctx.Directive.Mod("once")
	_, onWindow := ctx.Directive.Mod("window")
	_, onDocument := ctx.Directive.Mod("document")

	run := func(ev dom.Event) {
		if self && ev.Target() != ctx.Element {
			return
		}
		if prevent {
			ev.PreventDefault()
		}
		if stop {
			ev.StopPropagation()
		}
		scope := ctx.EventScope(ev)
		v, err := expr.Execute(ctx.Directive.Value, scope)
		if err != nil {
			return
		}
		if fn, ok := v.(expr.Func); ok {
			fn([]any{ev})
		}
	}

	listener := dom.EventListener(run)

	if debounceMod, ok := ctx.Directive.Mod("debounce"); ok {
		listener = debounce(debounceMod.Arg, listener, ctx)
	} else if throttleMod, ok := ctx.Directive.Mod("throttle"); ok {
		listener = throttle(throttleMod.Arg, listener, ctx)
	}

	if once {
		listener = once1(listener)
	}

	target := ctx.Element
	switch {
	case onWindow, onDocument:
		// No distinct window/document element in this abstraction; the
		// listener attaches on the mount root's document body, which is
		// the closest stand-in for a global target available through
		// dom.Document.
		target = ctx.Doc.Body()
	}

	target.AddEventListener(name, false, listener)
	ctx.AddCleanup(func() {
		target.RemoveEventListener(name, false, listener)
	})
	return nil
}

func once1(fn dom.EventListener) dom.EventListener {
	var used bool
	var mu sync.Mutex
	return func(ev dom.Event) {
		mu.Lock()
		if used {
			mu.Unlock()
			return
		}
		used = true
		mu.Unlock()
		fn(ev)
	}
}

func debounce(argMs string, fn dom.EventListener, ctx *binder.BindingContext) dom.EventListener {
	delay := parseMs(argMs, 250)
	var mu sync.Mutex
	var timer *time.Timer
	ctx.AddCleanup(func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	})
	return func(ev dom.Event) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() { fn(ev) })
	}
}

func throttle(argMs string, fn dom.EventListener, ctx *binder.BindingContext) dom.EventListener {
	interval := parseMs(argMs, 250)
	var mu sync.Mutex
	var last time.Time
	return func(ev dom.Event) {
		mu.Lock()
		now := time.Now()
		if !last.IsZero() && now.Sub(last) < interval {
			mu.Unlock()
			return
		}
		last = now
		mu.Unlock()
		fn(ev)
	}
}

func parseMs(s string, fallback int) time.Duration {
	if s == "" {
		return time.Duration(fallback) * time.Millisecond
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return time.Duration(fallback) * time.Millisecond
	}
	return time.Duration(n) * time.Millisecond
}
