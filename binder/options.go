package binder

import (
	"github.com/voltgo/volt/dom"
	"github.com/voltgo/volt/volterr"
)

// Hooks are the lifecycle callbacks a host can observe around a mount
// pass — e.g. to drive a loading spinner or flush analytics.
type Hooks struct {
	BeforeMount   func(el dom.Element)
	AfterMount    func(el dom.Element)
	BeforeUnmount func(el dom.Element)
	AfterUnmount  func(el dom.Element)
}

// MountOptions configures one Mount call. Use the With* functions rather
// than constructing MountOptions directly so future fields don't break
// callers.
type MountOptions struct {
	Hooks   Hooks
	Sink    volterr.Sink
	Plugins map[string]PluginFunc
}

type Option func(*MountOptions)

func WithHooks(h Hooks) Option {
	return func(o *MountOptions) { o.Hooks = h }
}

// WithSink overrides where handler/evaluation errors for this Mount call
// are reported; the default is volterr.CurrentSink(), the process-wide
// sink (stderr-style diagnostic via internal/vlog, non-fatal). Unlike a
// bare func(error) callback, a Sink receives the severity the binder
// computed for the error (Warn/Error/Fatal), matching every other
// recover boundary in this tree. Only errors raised during the Mount call
// itself reach this sink: errors from a binding re-applying after a later
// cell write, and errors a handler reports on its own, go to the
// process-wide sink.
func WithSink(s volterr.Sink) Option {
	return func(o *MountOptions) { o.Sink = s }
}

// WithPlugins installs a per-Mount plugin registry consulted before the
// process-wide one RegisterPlugin populates, so one Mount call can shadow
// or add plugin directives without affecting any other mount root.
func WithPlugins(plugins map[string]PluginFunc) Option {
	return func(o *MountOptions) { o.Plugins = plugins }
}

func newOptions(opts []Option) *MountOptions {
	o := &MountOptions{}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// reporterFor builds the report func Mount/MountElement thread through
// the dispatch tree: it always computes severityFor(err) itself, so a
// custom sink installed via WithSink sees the same Warn/Error/Fatal split
// the default process-wide sink does.
func reporterFor(o *MountOptions) func(error) {
	sink := o.Sink
	if sink == nil {
		sink = volterr.CurrentSink()
	}
	return func(err error) { sink.Report(severityFor(err), err) }
}
