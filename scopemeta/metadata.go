// Package scopemeta implements the per-root sidecar the spec calls
// ScopeMetadata: pin registry, uid counter, origin element, and parent
// link, plus the runtime-provided special scope variables ($el, $pins,
// $uid, $emit, $probe, $defer) built on top of it.
//
// Grounded on the teacher's reactivity/scope.go CleanupScope, which is
// the same shape of idea (a side structure threaded alongside a
// lifetime, parent-linked, holding registries private to that lifetime)
// applied here to pins/uid instead of cleanup callbacks.
package scopemeta

import (
	"fmt"
	"sync"

	"github.com/voltgo/volt/dom"
)

// Metadata is owned by exactly one mount root and lives exactly as long
// as it. Child scopes inside that root (loop rows, conditional branches)
// share the root's Metadata; the binder creates each Metadata with a nil
// Parent, so Parent is set only when a caller of New passes one.
type Metadata struct {
	mu     sync.Mutex
	Origin dom.Element
	Parent *Metadata
	pins   map[string]dom.Element
	uid    uint64
}

func New(origin dom.Element, parent *Metadata) *Metadata {
	return &Metadata{Origin: origin, Parent: parent, pins: map[string]dom.Element{}}
}

// RegisterPin is called by the pin binding handler during mount.
func (m *Metadata) RegisterPin(name string, el dom.Element) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pins[name] = el
}

// UnregisterPin is called during teardown of the element that owned the
// pin, so a later $pins read doesn't hand back a detached element.
func (m *Metadata) UnregisterPin(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pins, name)
}

// Pin resolves name, walking up through parent scopes if this scope
// doesn't own it directly — a pin registered on an ancestor root is
// still visible to a descendant scope's $pins reads.
func (m *Metadata) Pin(name string) (dom.Element, bool) {
	for cur := m; cur != nil; cur = cur.Parent {
		cur.mu.Lock()
		el, ok := cur.pins[name]
		cur.mu.Unlock()
		if ok {
			return el, true
		}
	}
	return nil, false
}

// NextUID returns a string unique within this scope: "volt-{n}", or
// "volt-{prefix}-{n}" when prefix is non-empty.
func (m *Metadata) NextUID(prefix string) string {
	m.mu.Lock()
	n := m.uid
	m.uid++
	m.mu.Unlock()
	if prefix == "" {
		return fmt.Sprintf("volt-%d", n)
	}
	return fmt.Sprintf("volt-%s-%d", prefix, n)
}

// registry keys Metadata by the dom.Element identity it was attached to
// — a mount root's element is a stable, comparable handle for the
// lifetime of that root, which is what the spec's "keyed by scope
// identity" wants in practice (Scope itself is a map and not comparable
// in Go).
var (
	registryMu sync.Mutex
	registry   = map[dom.Element]*Metadata{}
)

func Attach(el dom.Element, m *Metadata) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[el] = m
}

func Detach(el dom.Element) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, el)
}

func For(el dom.Element) (*Metadata, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	m, ok := registry[el]
	return m, ok
}
