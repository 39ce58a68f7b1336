package reactivity

// derivationState is the three-state machine from the data model.
type derivationState int

const (
	uninitialized derivationState = iota
	valid
	recomputing
)

// Derivation is a lazily computed, auto-tracking read-only value. The
// first Get forces an initial compute; every subsequent upstream write
// recomputes eagerly (push), and subscribers are notified only when the
// recomputed value is not reference-equal to the previous one. A
// derivation that reads itself while recomputing panics with
// *volterr.CircularDependencyError. Grounded on the teacher's
// reactivity/memo.go (CreateMemo/ensureTracker), reworked so the recompute
// itself — not a second wrapping effect — owns the teardown/track/resub
// cycle, which is what lets the tracker tag the frame's source with the
// derivation's own cell for cycle detection.
type Derivation struct {
	cell        *Cell
	compute     func() any
	state       derivationState
	initialized bool
	unsubs      []func()
	cleanup     func()
}

// NewDerivation creates a derivation named name (used for diagnostics and
// CircularDependency messages) computed by fn.
func NewDerivation(name string, fn func() any) *Derivation {
	return &Derivation{cell: NewCell(name, nil), compute: fn, state: uninitialized}
}

// Get returns the current computed value, forcing the initial compute on
// first call, and records a dependency on the active tracking frame.
func (d *Derivation) Get() any {
	if d.state == uninitialized {
		d.recompute()
	}
	return d.cell.Get()
}

// Peek returns the current value without recording a dependency, forcing
// the initial compute if needed.
func (d *Derivation) Peek() any {
	if d.state == uninitialized {
		d.recompute()
	}
	return d.cell.Peek()
}

// Subscribe registers fn to run whenever the derivation's recomputed value
// changes. Forces the initial compute if needed.
func (d *Derivation) Subscribe(fn func()) (unsubscribe func()) {
	if d.state == uninitialized {
		d.recompute()
	}
	return d.cell.Subscribe(fn)
}

func (d *Derivation) recompute() {
	d.state = recomputing
	d.teardownSubs()
	d.runCleanup()

	prev := currentCleanupTarget
	currentCleanupTarget = d
	startTracking(d.cell)
	var result any
	var deps []*Cell
	func() {
		defer func() {
			currentCleanupTarget = prev
			deps = stopTracking()
		}()
		runGuarded("derivation", func() { result = d.compute() })
	}()
	for _, c := range deps {
		d.unsubs = append(d.unsubs, c.Subscribe(func() { d.recompute() }))
	}
	d.state = valid

	if !d.initialized {
		d.initialized = true
		d.cell.val = result
		return
	}
	d.cell.Set(result)
}

func (d *Derivation) teardownSubs() {
	for _, u := range d.unsubs {
		u()
	}
	d.unsubs = nil
}

func (d *Derivation) runCleanup() {
	if d.cleanup == nil {
		return
	}
	c := d.cleanup
	d.cleanup = nil
	runGuarded("derivation cleanup", c)
}

func (d *Derivation) setCleanup(fn func()) { d.cleanup = fn }
