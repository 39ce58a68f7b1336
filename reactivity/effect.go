package reactivity

import "github.com/voltgo/volt/volterr"

// Effect is a fire-and-forget reactive computation: it runs immediately,
// tracks every cell it reads, and re-runs synchronously whenever any of
// them is written. Disposal is idempotent and releases every upstream
// subscription. Grounded on the teacher's reactivity/effect.go, reworked
// to track through the shared frame stack in tracker.go instead of a
// single package-level currentEffect pointer, so effects driven by a
// derivation's recompute nest correctly.
type Effect struct {
	fn       func()
	cleanup  func()
	unsubs   []func()
	disposed bool
}

// CreateEffect runs fn immediately and returns a handle that re-runs it on
// every future change to a cell fn read. fn may call OnCleanup to register
// a closure that runs before the next re-execution and again on Dispose.
func CreateEffect(fn func()) *Effect {
	e := &Effect{fn: fn}
	e.run()
	return e
}

func (e *Effect) run() {
	if e.disposed {
		return
	}
	e.runCleanup()
	e.teardownSubs()

	prev := currentCleanupTarget
	currentCleanupTarget = e
	startTracking(nil)
	var deps []*Cell
	func() {
		defer func() {
			currentCleanupTarget = prev
			deps = stopTracking()
		}()
		runGuarded("effect", e.fn)
	}()
	for _, c := range deps {
		e.unsubs = append(e.unsubs, c.Subscribe(func() { e.run() }))
	}
}

func (e *Effect) runCleanup() {
	if e.cleanup == nil {
		return
	}
	c := e.cleanup
	e.cleanup = nil
	runGuarded("effect cleanup", c)
}

func (e *Effect) teardownSubs() {
	for _, u := range e.unsubs {
		u()
	}
	e.unsubs = nil
}

// Dispose runs final cleanups and detaches from every dependency. Safe to
// call more than once.
func (e *Effect) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.runCleanup()
	e.teardownSubs()
}

func (e *Effect) setCleanup(fn func()) { e.cleanup = fn }

// cleanupTarget is implemented by whichever compute (Effect or Derivation)
// is currently running, so OnCleanup can register against the right one.
type cleanupTarget interface {
	setCleanup(func())
}

var currentCleanupTarget cleanupTarget

// OnCleanup registers fn to run before the enclosing effect's or
// derivation's next re-execution and again when it is disposed. Outside of
// an effect/derivation it is a no-op, matching the teacher's cleanup.go.
func OnCleanup(fn func()) {
	if currentCleanupTarget == nil {
		return
	}
	currentCleanupTarget.setCleanup(fn)
}

// runGuarded recovers a panic from fn, reports it, and re-panics only for
// CircularDependencyError — the containment policy's one exemption.
func runGuarded(label string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			err := toError(r)
			if cd, ok := err.(*volterr.CircularDependencyError); ok {
				volterr.Report(volterr.Fatal, cd)
				panic(r)
			}
			volterr.Report(volterr.Error, &volterr.HandlerRuntimeError{Handler: label, Cause: err})
		}
	}()
	fn()
}
