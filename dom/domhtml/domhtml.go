// Package domhtml implements the dom package's interfaces on top of
// golang.org/x/net/html, the same parser the teacher's non-WASM tooling
// reaches for whenever it needs a real HTML tree outside the browser.
// This backend serves two roles: it is the default implementation used
// by any host that embeds the runtime outside a browser (server-rendered
// previews, CLI tooling), and it is the test backend — binder and
// handlers tests mount against a domhtml tree instead of a mock, so the
// same code paths that run in production parse and walk real markup.
package domhtml

import (
	"reflect"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/voltgo/volt/dom"
)

func reflectFuncPtr(fn dom.EventListener) uintptr { return reflect.ValueOf(fn).Pointer() }

type elState struct {
	listeners  map[string][]dom.EventListener
	value      string
	hasValue   bool
	checked    bool
	hasChecked bool
}

var (
	stateMu sync.Mutex
	states  = map[*html.Node]*elState{}
)

func stateFor(n *html.Node) *elState {
	stateMu.Lock()
	defer stateMu.Unlock()
	s, ok := states[n]
	if !ok {
		s = &elState{listeners: map[string][]dom.EventListener{}}
		states[n] = s
	}
	return s
}

// node wraps any golang.org/x/net/html node (text, comment, element).
type node struct{ n *html.Node }

// wrapperMu/wrappers cache one dom.Node/dom.Element per *html.Node so
// that two calls that land on the same underlying node (e.g.
// el.ParentElement() from two different paths) return the same
// interface value — identity-keyed maps like scopemeta's registry and
// pointer equality checks like the conditional handler's sibling match
// both depend on this.
var (
	wrapperMu sync.Mutex
	wrappers  = map[*html.Node]dom.Node{}
)

func wrapNode(n *html.Node) dom.Node {
	if n == nil {
		return nil
	}
	wrapperMu.Lock()
	defer wrapperMu.Unlock()
	if w, ok := wrappers[n]; ok {
		return w
	}
	var w dom.Node
	if n.Type == html.ElementNode {
		w = &element{node{n}}
	} else {
		w = &node{n}
	}
	wrappers[n] = w
	return w
}

func wrapElement(n *html.Node) dom.Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return wrapNode(n).(dom.Element)
}

func (nd *node) NodeName() string {
	switch nd.n.Type {
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	default:
		return nd.n.Data
	}
}

func (nd *node) ParentElement() dom.Element {
	for p := nd.n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return wrapElement(p)
		}
	}
	return nil
}

func (nd *node) ChildNodes() []dom.Node {
	var out []dom.Node
	for c := nd.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, wrapNode(c))
	}
	return out
}

func (nd *node) TextContent() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(nd.n)
	return b.String()
}

func (nd *node) SetTextContent(text string) {
	for nd.n.FirstChild != nil {
		nd.n.RemoveChild(nd.n.FirstChild)
	}
	if text == "" {
		return
	}
	nd.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

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
	refRaw := rawNode(referenceNode)
	if newRaw == nil {
		return
	}
	if refRaw == nil {
		nd.n.AppendChild(newRaw)
		return
	}
	nd.n.InsertBefore(newRaw, refRaw)
}

func (nd *node) Remove() {
	if nd.n.Parent != nil {
		nd.n.Parent.RemoveChild(nd.n)
	}
}

func rawNode(n dom.Node) *html.Node {
	switch x := n.(type) {
	case *node:
		return x.n
	case *element:
		return x.n
	default:
		return nil
	}
}

// element adds the attribute/class/style/event surface on top of node.
type element struct{ node }

func (e *element) TagName() string { return strings.ToUpper(e.n.Data) }

func (e *element) GetAttribute(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e *element) SetAttribute(name, value string) {
	for i, a := range e.n.Attr {
		if a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

func (e *element) RemoveAttribute(name string) {
	out := e.n.Attr[:0]
	for _, a := range e.n.Attr {
		if a.Key != name {
			out = append(out, a)
		}
	}
	e.n.Attr = out
}

func (e *element) HasAttribute(name string) bool {
	_, ok := e.GetAttribute(name)
	return ok
}

func (e *element) AttributeNames() []string {
	names := make([]string, len(e.n.Attr))
	for i, a := range e.n.Attr {
		names[i] = a.Key
	}
	return names
}

func (e *element) ClassList() dom.TokenList { return &tokenList{el: e} }

func (e *element) Style() dom.Style { return &style{el: e} }

func (e *element) InnerHTML() string {
	var b strings.Builder
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

func (e *element) SetInnerHTML(h string) {
	for e.n.FirstChild != nil {
		e.n.RemoveChild(e.n.FirstChild)
	}
	var context *html.Node
	if a := atom.Lookup([]byte(strings.ToLower(e.n.Data))); a != 0 || e.n.Data != "" {
		context = &html.Node{Type: html.ElementNode, Data: e.n.Data, DataAtom: a}
	}
	nodes, err := html.ParseFragment(strings.NewReader(h), context)
	if err != nil {
		return
	}
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
}

func (e *element) Value() string {
	st := stateFor(e.n)
	if st.hasValue {
		return st.value
	}
	v, _ := e.GetAttribute("value")
	return v
}

func (e *element) SetValue(v string) {
	st := stateFor(e.n)
	st.hasValue = true
	st.value = v
}

func (e *element) Checked() bool {
	st := stateFor(e.n)
	if st.hasChecked {
		return st.checked
	}
	return e.HasAttribute("checked")
}

func (e *element) SetChecked(v bool) {
	st := stateFor(e.n)
	st.hasChecked = true
	st.checked = v
}

func (e *element) Children() []dom.Element {
	var out []dom.Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, wrapElement(c))
		}
	}
	return out
}

func (e *element) AddEventListener(eventType string, useCapture bool, listener dom.EventListener) {
	// useCapture is accepted for interface parity with the browser backend
	// but this tree has no capture phase to honor — listeners always run
	// during the single bubble pass DispatchEvent performs.
	st := stateFor(e.n)
	st.listeners[eventType] = append(st.listeners[eventType], listener)
}

func (e *element) RemoveEventListener(eventType string, useCapture bool, listener dom.EventListener) {
	st := stateFor(e.n)
	ls := st.listeners[eventType]
	target := reflectFuncPtr(listener)
	out := ls[:0]
	for _, l := range ls {
		if reflectFuncPtr(l) != target {
			out = append(out, l)
		}
	}
	st.listeners[eventType] = out
}

func (e *element) DispatchEvent(evt dom.Event) bool {
	sc, _ := evt.(dom.StopChecker)
	pc, _ := evt.(interface{ DefaultPrevented() bool })
	var cur dom.Element = e
	for cur != nil {
		ce, ok := cur.(*element)
		if !ok {
			break
		}
		st := stateFor(ce.n)
		for _, l := range st.listeners[evt.Type()] {
			l(evt)
		}
		if sc != nil && sc.StopPropagationRequested() {
			break
		}
		cur = cur.ParentElement()
	}
	if pc != nil {
		return !pc.DefaultPrevented()
	}
	return true
}

// Clone deep-copies the underlying html.Node subtree. Listeners are
// per-node state keyed by *html.Node identity, so a clone naturally
// starts with none attached, matching cloneNode's native behavior.
func (e *element) Clone() dom.Element {
	return wrapElement(cloneHTMLNode(e.n))
}

func cloneHTMLNode(n *html.Node) *html.Node {
	clone := &html.Node{
		Type:     n.Type,
		DataAtom: n.DataAtom,
		Data:     n.Data,
		Attr:     append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(cloneHTMLNode(c))
	}
	return clone
}

// Event is the concrete dom.Event this backend dispatches; exported so
// tests and the runtime's $emit implementation can construct one.
type Event struct {
	EventType     string
	EventTarget   dom.Element
	CurrTarget    dom.Element
	prevented     bool
	stopped       bool
}

func NewEvent(typ string, target dom.Element) *Event {
	return &Event{EventType: typ, EventTarget: target, CurrTarget: target}
}

func (e *Event) Type() string                      { return e.EventType }
func (e *Event) Target() dom.Element               { return e.EventTarget }
func (e *Event) CurrentTarget() dom.Element        { return e.CurrTarget }
func (e *Event) PreventDefault()                   { e.prevented = true }
func (e *Event) StopPropagation()                  { e.stopped = true }
func (e *Event) StopPropagationRequested() bool    { return e.stopped }
func (e *Event) DefaultPrevented() bool            { return e.prevented }

type tokenList struct{ el *element }

func (t *tokenList) current() []string {
	v, _ := t.el.GetAttribute("class")
	if v == "" {
		return nil
	}
	return strings.Fields(v)
}

func (t *tokenList) write(tokens []string) {
	t.el.SetAttribute("class", strings.Join(tokens, " "))
}

func (t *tokenList) Add(tokens ...string) {
	cur := t.current()
	for _, tok := range tokens {
		if !contains(cur, tok) {
			cur = append(cur, tok)
		}
	}
	t.write(cur)
}

func (t *tokenList) Remove(tokens ...string) {
	cur := t.current()
	out := cur[:0]
	for _, c := range cur {
		if !contains(tokens, c) {
			out = append(out, c)
		}
	}
	t.write(out)
}

func (t *tokenList) Contains(token string) bool { return contains(t.current(), token) }

func (t *tokenList) Toggle(token string, force ...bool) bool {
	want := !t.Contains(token)
	if len(force) > 0 {
		want = force[0]
	}
	if want {
		t.Add(token)
	} else {
		t.Remove(token)
	}
	return want
}

func (t *tokenList) Items() []string { return t.current() }

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// style implements dom.Style over the element's style attribute text,
// parsed into an ordered property list so re-serializing preserves
// declaration order (matters for snapshot-style tests comparing markup).
type style struct{ el *element }

func (s *style) parse() ([]string, map[string]string) {
	raw, _ := s.el.GetAttribute("style")
	var order []string
	props := map[string]string{}
	for _, decl := range strings.Split(raw, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		v := strings.TrimSpace(parts[1])
		if _, exists := props[k]; !exists {
			order = append(order, k)
		}
		props[k] = v
	}
	return order, props
}

func (s *style) GetPropertyValue(prop string) string {
	_, props := s.parse()
	return props[prop]
}

func (s *style) SetProperty(prop, value string) {
	order, props := s.parse()
	if _, exists := props[prop]; !exists {
		order = append(order, prop)
	}
	props[prop] = value
	s.writeAll(order, props)
}

func (s *style) RemoveProperty(prop string) {
	order, props := s.parse()
	delete(props, prop)
	out := order[:0]
	for _, k := range order {
		if k != prop {
			out = append(out, k)
		}
	}
	s.writeAll(out, props)
}

func (s *style) writeAll(order []string, props map[string]string) {
	var b strings.Builder
	for _, k := range order {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(props[k])
		b.WriteString(";")
	}
	s.el.SetAttribute("style", b.String())
}

func (s *style) CSSText() string {
	raw, _ := s.el.GetAttribute("style")
	return raw
}

func (s *style) SetCSSText(text string) { s.el.SetAttribute("style", text) }

// Document wraps a parsed *html.Node document root.
type Document struct{ root *html.Node }

func (d *Document) CreateElement(tag string) dom.Element {
	return wrapElement(&html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(strings.ToLower(tag)))})
}

func (d *Document) CreateTextNode(text string) dom.Node {
	return wrapNode(&html.Node{Type: html.TextNode, Data: text})
}

func (d *Document) CreateComment(text string) dom.Node {
	return wrapNode(&html.Node{Type: html.CommentNode, Data: text})
}

func (d *Document) Body() dom.Element {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return wrapElement(found)
}
