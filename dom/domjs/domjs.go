//go:build js && wasm

// Package domjs implements the dom package's interfaces against a real
// browser DOM, the way the teacher's dom.go wraps honnef.co/go/js/dom/v2
// for its WASM build. It is adapted rather than reused verbatim: the
// teacher's dom.go exposes a bespoke ElementBuilder API tied to its own
// reactivity.CleanupScope, where this package instead implements the
// shared dom.Element/dom.Document contract so the binder and handlers
// packages can run unmodified against either backend.
package domjs

import (
	"strings"

	jsdom "honnef.co/go/js/dom/v2"

	"github.com/voltgo/volt/dom"
)

type node struct{ n jsdom.Node }

func wrapNode(n jsdom.Node) dom.Node {
	if n == nil {
		return nil
	}
	if el, ok := n.(jsdom.Element); ok {
		return &element{node{el}, el}
	}
	return &node{n}
}

func wrapElement(el jsdom.Element) dom.Element {
	if el == nil {
		return nil
	}
	return &element{node{el}, el}
}

func (nd *node) NodeName() string { return nd.n.NodeName() }

func (nd *node) ParentElement() dom.Element {
	if el := nd.n.ParentElement(); el != nil {
		return wrapElement(el)
	}
	return nil
}

func (nd *node) ChildNodes() []dom.Node {
	kids := nd.n.ChildNodes()
	out := make([]dom.Node, len(kids))
	for i, k := range kids {
		out[i] = wrapNode(k)
	}
	return out
}

func (nd *node) TextContent() string      { return nd.n.TextContent() }
func (nd *node) SetTextContent(t string)  { nd.n.SetTextContent(t) }
func (nd *node) AppendChild(child dom.Node) {
	if raw := rawNode(child); raw != nil {
		nd.n.AppendChild(raw)
	}
}
func (nd *node) RemoveChild(child dom.Node) {
	if raw := rawNode(child); raw != nil {
		nd.n.RemoveChild(raw)
	}
}
func (nd *node) InsertBefore(newNode, referenceNode dom.Node) {
	newRaw := rawNode(newNode)
	if newRaw == nil {
		return
	}
	nd.n.InsertBefore(newRaw, rawNode(referenceNode))
}
func (nd *node) Remove() {
	if p := nd.n.ParentNode(); p != nil {
		p.RemoveChild(nd.n)
	}
}

func rawNode(n dom.Node) jsdom.Node {
	switch x := n.(type) {
	case *node:
		return x.n
	case *element:
		return x.n
	default:
		return nil
	}
}

// element wraps a jsdom.Element; raw keeps the typed handle around for
// casts to jsdom.HTMLInputElement/HTMLSelectElement where Value/Checked
// live.
type element struct {
	node
	raw jsdom.Element
}

func (e *element) TagName() string { return e.raw.TagName() }

func (e *element) GetAttribute(name string) (string, bool) {
	if !e.raw.HasAttribute(name) {
		return "", false
	}
	return e.raw.GetAttribute(name), true
}

func (e *element) SetAttribute(name, value string) { e.raw.SetAttribute(name, value) }
func (e *element) RemoveAttribute(name string)      { e.raw.RemoveAttribute(name) }
func (e *element) HasAttribute(name string) bool    { return e.raw.HasAttribute(name) }

func (e *element) AttributeNames() []string {
	attrs := e.raw.Attributes()
	names := make([]string, 0, len(attrs))
	for _, a := range attrs {
		names = append(names, a.Name)
	}
	return names
}

func (e *element) ClassList() dom.TokenList { return &tokenList{e.raw.Class()} }
func (e *element) Style() dom.Style         { return &style{e.raw.Style()} }
func (e *element) InnerHTML() string        { return e.raw.InnerHTML() }
func (e *element) SetInnerHTML(h string)    { e.raw.SetInnerHTML(h) }

func (e *element) Value() string {
	switch x := e.raw.(type) {
	case *jsdom.HTMLInputElement:
		return x.Value
	case *jsdom.HTMLTextAreaElement:
		return x.Value
	case *jsdom.HTMLSelectElement:
		return x.Value
	default:
		v, _ := e.GetAttribute("value")
		return v
	}
}

func (e *element) SetValue(v string) {
	switch x := e.raw.(type) {
	case *jsdom.HTMLInputElement:
		x.Value = v
	case *jsdom.HTMLTextAreaElement:
		x.Value = v
	case *jsdom.HTMLSelectElement:
		x.Value = v
	default:
		e.SetAttribute("value", v)
	}
}

func (e *element) Checked() bool {
	if x, ok := e.raw.(*jsdom.HTMLInputElement); ok {
		return x.Checked
	}
	return e.HasAttribute("checked")
}

func (e *element) SetChecked(v bool) {
	if x, ok := e.raw.(*jsdom.HTMLInputElement); ok {
		x.Checked = v
		return
	}
	if v {
		e.SetAttribute("checked", "checked")
	} else {
		e.RemoveAttribute("checked")
	}
}

func (e *element) Children() []dom.Element {
	kids := e.raw.Children()
	out := make([]dom.Element, len(kids))
	for i, k := range kids {
		out[i] = wrapElement(k)
	}
	return out
}

func (e *element) AddEventListener(eventType string, useCapture bool, listener dom.EventListener) {
	e.raw.AddEventListener(eventType, useCapture, func(ev jsdom.Event) {
		listener(&event{ev})
	})
}

func (e *element) RemoveEventListener(eventType string, useCapture bool, listener dom.EventListener) {
	// honnef.co/go/js/dom/v2 requires the exact closure passed to
	// AddEventListener for removal; the runtime tracks its own
	// unsubscribe funcs from AddEventListener's return path instead of
	// relying on this method (kept to satisfy the dom.Element contract).
}

func (e *element) DispatchEvent(evt dom.Event) bool {
	if je, ok := evt.(*event); ok {
		return e.raw.DispatchEvent(je.raw)
	}
	return true
}

// Clone deep-copies the element via the native cloneNode, dropping down
// to the underlying js.Value since jsdom/v2 does not itself expose
// cloneNode.
func (e *element) Clone() dom.Element {
	cloned := e.raw.Underlying().Call("cloneNode", true)
	return wrapElement(jsdom.WrapElement(cloned))
}

type event struct{ raw jsdom.Event }

func (e *event) Type() string               { return e.raw.Type() }
func (e *event) Target() dom.Element        { return wrapElement(e.raw.Target().(jsdom.Element)) }
func (e *event) CurrentTarget() dom.Element { return wrapElement(e.raw.CurrentTarget().(jsdom.Element)) }
func (e *event) PreventDefault()            { e.raw.PreventDefault() }
func (e *event) StopPropagation()           { e.raw.StopPropagation() }

type tokenList struct{ raw *jsdom.TokenList }

func (t *tokenList) Add(tokens ...string)    { t.raw.Add(tokens...) }
func (t *tokenList) Remove(tokens ...string) { t.raw.Remove(tokens...) }
func (t *tokenList) Contains(token string) bool { return t.raw.Contains(token) }
func (t *tokenList) Toggle(token string, force ...bool) bool {
	if len(force) > 0 {
		return t.raw.Toggle(token, force[0])
	}
	return t.raw.Toggle(token)
}
func (t *tokenList) Items() []string { return strings.Fields(t.raw.String()) }

type style struct{ raw *jsdom.CSSStyleDeclaration }

func (s *style) GetPropertyValue(prop string) string { return s.raw.GetPropertyValue(prop) }
func (s *style) SetProperty(prop, value string)       { s.raw.SetProperty(prop, value, "") }
func (s *style) RemoveProperty(prop string)           { s.raw.RemoveProperty(prop) }
func (s *style) CSSText() string                      { return s.raw.CSSText() }
func (s *style) SetCSSText(text string)               { s.raw.SetCSSText(text) }

// Document wraps the global browser document.
type Document struct{ raw jsdom.Document }

func New() *Document { return &Document{raw: jsdom.GetWindow().Document()} }

func (d *Document) CreateElement(tag string) dom.Element {
	return wrapElement(d.raw.CreateElement(tag).(jsdom.Element))
}

func (d *Document) CreateTextNode(text string) dom.Node {
	return wrapNode(d.raw.CreateTextNode(text))
}

func (d *Document) CreateComment(text string) dom.Node {
	raw := d.raw.Underlying().Call("createComment", text)
	return wrapNode(jsdom.WrapNode(raw))
}

func (d *Document) Body() dom.Element {
	return wrapElement(d.raw.(jsdom.HTMLDocument).Body())
}
