// Package dom defines the DOM surface the binder and handlers packages
// program against. It mirrors the subset of honnef.co/go/js/dom/v2 that
// the runtime actually needs (the teacher's dom.go wraps that same
// package for its WASM build), so the same interface is satisfied by two
// backends: dom/domjs (syscall/js + honnef.co/go/js/dom/v2, real browser)
// and dom/domhtml (golang.org/x/net/html, used both as the default
// non-WASM backend and as the test backend — there is no separate mock
// package, tests mount against real parsed HTML).
package dom

// Node is the minimal tree-navigation surface shared by elements and text
// nodes.
type Node interface {
	NodeName() string
	ParentElement() Element
	ChildNodes() []Node
	TextContent() string
	SetTextContent(string)
	AppendChild(Node)
	RemoveChild(Node)
	InsertBefore(newNode, referenceNode Node)
	Remove()
}

// TokenList is the classList surface used by the class binding handler.
type TokenList interface {
	Add(tokens ...string)
	Remove(tokens ...string)
	Contains(token string) bool
	Toggle(token string, force ...bool) bool
	Items() []string
}

// Style is the inline CSSStyleDeclaration surface used by the style
// binding handler.
type Style interface {
	GetPropertyValue(prop string) string
	SetProperty(prop, value string)
	RemoveProperty(prop string)
	CSSText() string
	SetCSSText(text string)
}

// EventListener is the callback shape AddEventListener accepts.
type EventListener func(Event)

// Event is the subset of DOM Event the event binding handler and $event
// scope variable need.
type Event interface {
	Type() string
	Target() Element
	CurrentTarget() Element
	PreventDefault()
	StopPropagation()
}

// Element is the element surface the binder walks and the handlers
// mutate. Attribute reads return (value, ok) rather than "" so missing
// vs. empty-string attributes are distinguishable, which matters for
// boolean-style directives.
type Element interface {
	Node
	TagName() string
	GetAttribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)
	HasAttribute(name string) bool
	AttributeNames() []string
	ClassList() TokenList
	Style() Style
	InnerHTML() string
	SetInnerHTML(html string)
	Value() string
	SetValue(v string)
	Checked() bool
	SetChecked(bool)
	Children() []Element
	AddEventListener(eventType string, useCapture bool, listener EventListener)
	RemoveEventListener(eventType string, useCapture bool, listener EventListener)
	DispatchEvent(Event) bool
	// Clone returns a deep copy of this element (attributes and
	// descendants, not event listeners), detached from any parent — the
	// loop and conditional handlers clone a template on every render
	// pass the way Node.cloneNode(true) would.
	Clone() Element
}

// CustomEvent is a backend-independent dom.Event used for synthetic
// events — currently just $emit. It bubbles by construction: callers
// dispatch it on the origin element and rely on Element.DispatchEvent's
// walk up ParentElement to deliver it to ancestor listeners.
type CustomEvent struct {
	typ       string
	target    Element
	detail    any
	prevented bool
	stopped   bool
}

func NewCustomEvent(typ string, target Element, detail any) *CustomEvent {
	return &CustomEvent{typ: typ, target: target, detail: detail}
}

func (e *CustomEvent) Type() string          { return e.typ }
func (e *CustomEvent) Target() Element       { return e.target }
func (e *CustomEvent) CurrentTarget() Element { return e.target }
func (e *CustomEvent) PreventDefault()       { e.prevented = true }
func (e *CustomEvent) StopPropagation()      { e.stopped = true }
func (e *CustomEvent) Detail() any           { return e.detail }
func (e *CustomEvent) Prevented() bool       { return e.prevented }
func (e *CustomEvent) StopPropagationRequested() bool { return e.stopped }
func (e *CustomEvent) DefaultPrevented() bool         { return e.prevented }

// StopChecker is implemented by event types a backend's DispatchEvent
// can introspect to halt its bubble walk; both CustomEvent and each
// backend's native event type implement it.
type StopChecker interface{ StopPropagationRequested() bool }

// Document creates nodes and roots a tree walk.
type Document interface {
	CreateElement(tag string) Element
	CreateTextNode(text string) Node
	CreateComment(text string) Node
	Body() Element
}
