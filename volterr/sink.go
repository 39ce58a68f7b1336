package volterr

import (
	"fmt"
	"sync"

	"github.com/voltgo/volt/internal/vlog"
)

// Sink receives every error the runtime's boundaries catch. Applications
// may install their own via SetSink; the default logs through vlog,
// mirroring the teacher's habit of a package-level mutable singleton
// (bridge.Manager, the action bus) rather than threading a logger through
// every constructor.
type Sink interface {
	Report(sev Severity, err error)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(sev Severity, err error)

func (f SinkFunc) Report(sev Severity, err error) { f(sev, err) }

var defaultSink Sink = SinkFunc(func(sev Severity, err error) {
	switch sev {
	case Warn:
		vlog.Warnf("%v", err)
	case Fatal:
		vlog.Errorf("fatal: %v", err)
	default:
		vlog.Errorf("%v", err)
	}
})

var (
	mu   sync.RWMutex
	sink = defaultSink
)

// SetSink installs the process-wide error sink. Passing nil restores the
// default logging sink.
func SetSink(s Sink) {
	mu.Lock()
	defer mu.Unlock()
	if s == nil {
		sink = defaultSink
		return
	}
	sink = s
}

// CurrentSink returns the active sink, used by per-mount overrides that
// need to fall back to the process default.
func CurrentSink() Sink {
	mu.RLock()
	defer mu.RUnlock()
	return sink
}

// Report routes err to the active sink at the given severity.
func Report(sev Severity, err error) {
	if err == nil {
		return
	}
	CurrentSink().Report(sev, err)
}

// Guard recovers a panic raised within fn, reports it through sink (or the
// process default if sink is nil), and returns it as an error. A recovered
// *CircularDependencyError is reported at Fatal and re-panicked, matching
// the containment policy's one exemption.
func Guard(sink Sink, fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		e, ok := r.(error)
		if !ok {
			e = &HandlerRuntimeError{Handler: "unknown", Cause: asError(r)}
		}
		reportTo(sink, severityOf(e), e)
		err = e
		if _, isCircular := e.(*CircularDependencyError); isCircular {
			panic(r)
		}
	}()
	fn()
	return nil
}

func severityOf(err error) Severity {
	switch err.(type) {
	case *CircularDependencyError:
		return Fatal
	case *UnknownDirectiveError:
		return Warn
	default:
		return Error
	}
}

func reportTo(s Sink, sev Severity, err error) {
	if s == nil {
		s = CurrentSink()
	}
	s.Report(sev, err)
}

func asError(v any) error {
	if e, ok := v.(error); ok {
		return e
	}
	return errString(fmt.Sprintf("%v", v))
}

type errString string

func (e errString) Error() string { return string(e) }
