// Package reactivity implements the runtime's reactive primitives: cells,
// derivations and effects, tied together by a single dependency tracker.
// Grounded on the teacher's reactivity package (signal.go/effect.go/memo.go)
// but reworked around an explicit tracking-frame stack, rather than one
// global currentEffect variable, so derivations can detect self-reads
// during their own recompute (the teacher's design has no such guard).
package reactivity

import "github.com/voltgo/volt/volterr"

// frame is one entry in the tracker's stack: the set of cells read while it
// was on top, and — for derivation recomputes — the cell identity that must
// not be read again (the cycle guard).
type frame struct {
	source *Cell
	cells  map[*Cell]struct{}
}

var trackStack []*frame

// startTracking pushes a new frame. source is non-nil only when tracking a
// derivation's own recompute, enabling CircularDependency detection.
func startTracking(source *Cell) {
	trackStack = append(trackStack, &frame{source: source, cells: make(map[*Cell]struct{})})
}

// stopTracking pops the top frame and returns the cells it recorded.
func stopTracking() []*Cell {
	n := len(trackStack)
	f := trackStack[n-1]
	trackStack = trackStack[:n-1]
	out := make([]*Cell, 0, len(f.cells))
	for c := range f.cells {
		out = append(out, c)
	}
	return out
}

// recordDep is called by Cell.Get to register a read against the active
// frame, if any. It panics with *volterr.CircularDependencyError when the
// cell being read is the very derivation currently recomputing.
func recordDep(c *Cell) {
	if len(trackStack) == 0 {
		return
	}
	f := trackStack[len(trackStack)-1]
	if f.source != nil && f.source == c {
		panic(&volterr.CircularDependencyError{Name: c.name})
	}
	f.cells[c] = struct{}{}
}

// tracking reports whether any frame is currently active.
func tracking() bool { return len(trackStack) > 0 }
