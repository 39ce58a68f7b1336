package reactivity

import (
	"fmt"
	"reflect"

	"github.com/voltgo/volt/volterr"
)

// Cell is the single-value reactive source described by the data model:
// readers are auto-tracked, writes notify subscribers unless the new value
// is reference-equal to the old one.
type Cell struct {
	name string
	val  any
	subs []*subscription
	next uint64
}

type subscription struct {
	id  uint64
	fn  func()
	off bool
}

// NewCell creates a cell holding initial. name is optional and used only
// for diagnostics (e.g. the CircularDependency message); pass "" when it
// doesn't matter.
func NewCell(name string, initial any) *Cell {
	return &Cell{name: name, val: initial}
}

// Name returns the cell's diagnostic name.
func (c *Cell) Name() string { return c.name }

// Get returns the current value, recording a dependency on the active
// tracking frame if one exists.
func (c *Cell) Get() any {
	recordDep(c)
	return c.val
}

// Peek returns the current value without recording a dependency.
// Derivation.Peek reads its backing cell through it.
func (c *Cell) Peek() any { return c.val }

// Set stores a new value and, if it is not reference-equal to the current
// one, notifies every subscriber active at the time of the write, over a
// snapshot of the subscriber set so a subscriber may add or remove
// subscriptions without corrupting the in-flight notification.
func (c *Cell) Set(v any) {
	if refEqual(c.val, v) {
		return
	}
	c.val = v
	c.notify()
}

func (c *Cell) notify() {
	snapshot := make([]*subscription, len(c.subs))
	copy(snapshot, c.subs)
	for _, s := range snapshot {
		if s.off {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					err := toError(r)
					volterr.Report(volterr.Error, &volterr.HandlerRuntimeError{Handler: "subscriber", Cause: err})
					if _, isCircular := err.(*volterr.CircularDependencyError); isCircular {
						panic(r)
					}
				}
			}()
			s.fn()
		}()
	}
}

// Subscribe registers fn to run on every future notify. It returns an
// unsubscribe closure; calling it more than once is a no-op.
func (c *Cell) Subscribe(fn func()) (unsubscribe func()) {
	c.next++
	id := c.next
	sub := &subscription{id: id, fn: fn}
	c.subs = append(c.subs, sub)
	return func() {
		if sub.off {
			return
		}
		sub.off = true
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				break
			}
		}
	}
}

func toError(r any) error {
	if e, ok := r.(error); ok {
		return e
	}
	return fmt.Errorf("%v", r)
}

// refEqual implements the data model's "reference-equal" write guard. For
// comparable scalar kinds it is Go's ==, matching JS primitive semantics;
// for maps and slices it compares underlying-data identity, matching JS
// object/array identity; anything else (funcs, mismatched kinds) is never
// considered equal so a write always notifies.
func refEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != vb.Kind() {
		return false
	}
	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	case reflect.Func:
		return false
	default:
		if !va.Type().Comparable() {
			return false
		}
		defer func() { recover() }()
		return a == b
	}
}
