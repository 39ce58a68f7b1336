package expr

import (
	"testing"

	"github.com/voltgo/volt/volterr"
)

// panickyCell is a dep whose Get panics with *volterr.CircularDependencyError,
// standing in for a derivation caught mid-recompute reading itself — the
// shape Evaluate/Execute actually see on a self-referential
// data-volt-computed read through data-volt-text.
type panickyCell struct{}

func (panickyCell) Get() any                { panic(&volterr.CircularDependencyError{Name: "loop"}) }
func (panickyCell) Subscribe(func()) func() { return func() {} }

func TestEvaluatePropagatesCircularDependencyPanic(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Evaluate to re-panic, got no panic")
		}
		if _, ok := r.(*volterr.CircularDependencyError); !ok {
			t.Fatalf("panic value = %#v, want *volterr.CircularDependencyError", r)
		}
	}()
	_, _ = Evaluate("loop", Scope{"loop": panickyCell{}})
	t.Fatal("unreachable: Evaluate should have panicked instead of returning")
}

func TestExecutePropagatesCircularDependencyPanic(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Execute to re-panic, got no panic")
		}
		if _, ok := r.(*volterr.CircularDependencyError); !ok {
			t.Fatalf("panic value = %#v, want *volterr.CircularDependencyError", r)
		}
	}()
	_, _ = Execute("loop", Scope{"loop": panickyCell{}})
	t.Fatal("unreachable: Execute should have panicked instead of returning")
}
