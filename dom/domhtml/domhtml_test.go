package domhtml

import (
	"testing"

	"github.com/voltgo/volt/dom"
)

func TestParseFragmentAndAttributes(t *testing.T) {
	root, err := ParseFragment(`<div id="app" class="a b"><span data-volt-text="msg"></span></div>`)
	if err != nil {
		t.Fatalf("ParseFragment error: %v", err)
	}
	kids := root.Children()
	if len(kids) != 1 {
		t.Fatalf("children = %d, want 1", len(kids))
	}
	div := kids[0]
	if id, ok := div.GetAttribute("id"); !ok || id != "app" {
		t.Fatalf("id = %q, %v, want app", id, ok)
	}
	if !div.ClassList().Contains("a") || !div.ClassList().Contains("b") {
		t.Fatalf("classList = %v, want a and b", div.ClassList().Items())
	}
	span := div.Children()[0]
	if v, ok := span.GetAttribute("data-volt-text"); !ok || v != "msg" {
		t.Fatalf("data-volt-text = %q, %v, want msg", v, ok)
	}
}

func TestSetAttributeAndRemoveAttribute(t *testing.T) {
	root, _ := ParseFragment(`<div></div>`)
	div := root.Children()[0]
	div.SetAttribute("title", "hi")
	if v, ok := div.GetAttribute("title"); !ok || v != "hi" {
		t.Fatalf("title = %q, want hi", v)
	}
	div.RemoveAttribute("title")
	if div.HasAttribute("title") {
		t.Fatal("title should be removed")
	}
}

func TestClassListAddRemoveToggle(t *testing.T) {
	root, _ := ParseFragment(`<div class="a"></div>`)
	div := root.Children()[0]
	cl := div.ClassList()
	cl.Add("b")
	if !cl.Contains("b") {
		t.Fatal("expected b to be added")
	}
	cl.Remove("a")
	if cl.Contains("a") {
		t.Fatal("expected a to be removed")
	}
	cl.Toggle("c")
	if !cl.Contains("c") {
		t.Fatal("expected c toggled on")
	}
	cl.Toggle("c")
	if cl.Contains("c") {
		t.Fatal("expected c toggled off")
	}
}

func TestStylePropertyRoundTrip(t *testing.T) {
	root, _ := ParseFragment(`<div style="color: red;"></div>`)
	div := root.Children()[0]
	st := div.Style()
	if got := st.GetPropertyValue("color"); got != "red" {
		t.Fatalf("color = %q, want red", got)
	}
	st.SetProperty("display", "none")
	if got := st.GetPropertyValue("display"); got != "none" {
		t.Fatalf("display = %q, want none", got)
	}
	st.RemoveProperty("color")
	if got := st.GetPropertyValue("color"); got != "" {
		t.Fatalf("color = %q, want empty after removal", got)
	}
}

func TestValueAndCheckedAreMutableRuntimeState(t *testing.T) {
	root, _ := ParseFragment(`<input value="start" checked>`)
	input := root.Children()[0]
	if got := input.Value(); got != "start" {
		t.Fatalf("value = %q, want start", got)
	}
	input.SetValue("changed")
	if got := input.Value(); got != "changed" {
		t.Fatalf("value = %q, want changed", got)
	}
	if !input.Checked() {
		t.Fatal("expected checked from attribute")
	}
	input.SetChecked(false)
	if input.Checked() {
		t.Fatal("expected checked to be false after SetChecked(false)")
	}
}

func TestAddEventListenerAndDispatchBubbles(t *testing.T) {
	root, _ := ParseFragment(`<div><button></button></div>`)
	div := root.Children()[0]
	button := div.Children()[0]

	var order []string
	button.AddEventListener("click", false, func(e dom.Event) {
		order = append(order, "button")
	})
	div.AddEventListener("click", false, func(e dom.Event) {
		order = append(order, "div")
	})

	evt := NewEvent("click", button)
	button.DispatchEvent(evt)

	if len(order) != 2 || order[0] != "button" || order[1] != "div" {
		t.Fatalf("dispatch order = %v, want [button div]", order)
	}
}

func TestDispatchEventStopPropagationHaltsBubble(t *testing.T) {
	root, _ := ParseFragment(`<div><button></button></div>`)
	div := root.Children()[0]
	button := div.Children()[0]

	reached := false
	button.AddEventListener("click", false, func(e dom.Event) {
		e.StopPropagation()
	})
	div.AddEventListener("click", false, func(e dom.Event) {
		reached = true
	})

	evt := NewEvent("click", button)
	button.DispatchEvent(evt)
	if reached {
		t.Fatal("expected StopPropagation to prevent bubbling to div")
	}
}

func TestInnerHTMLSetAndRead(t *testing.T) {
	root, _ := ParseFragment(`<div></div>`)
	div := root.Children()[0]
	div.SetInnerHTML("<span>hi</span>")
	kids := div.Children()
	if len(kids) != 1 || kids[0].TagName() != "SPAN" {
		t.Fatalf("children = %v, want one span", kids)
	}
	if got := kids[0].TextContent(); got != "hi" {
		t.Fatalf("text = %q, want hi", got)
	}
}
