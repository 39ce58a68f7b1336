package handlers_test

import (
	"testing"
	"time"

	volt "github.com/voltgo/volt"
	"github.com/voltgo/volt/dom/domhtml"
	"github.com/voltgo/volt/scopemeta"
)

func TestClassHandlerAddsAndRemovesOnChange(t *testing.T) {
	root, err := domhtml.ParseFragment(`
		<div data-volt data-volt-state='{"active":true,"extra":"warn"}'>
			<span data-volt-class="{active: active, danger: extra==='danger'}"></span>
			<button data-volt-on-click="active.set(false); extra.set('danger')"></button>
		</div>
	`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc := domhtml.NewDocument()
	mountRoot := root.Children()[0]
	span := mountRoot.Children()[0]
	button := mountRoot.Children()[1]

	volt.Mount(doc, mountRoot, volt.Scope{})

	if !span.ClassList().Contains("active") {
		t.Fatalf("expected active class present, classes=%v", span.ClassList().Items())
	}
	if span.ClassList().Contains("danger") {
		t.Fatalf("did not expect danger class, classes=%v", span.ClassList().Items())
	}

	button.DispatchEvent(&domhtml.Event{EventType: "click", EventTarget: button, CurrTarget: button})

	if span.ClassList().Contains("active") {
		t.Fatalf("expected active class removed after change, classes=%v", span.ClassList().Items())
	}
	if !span.ClassList().Contains("danger") {
		t.Fatalf("expected danger class added after change, classes=%v", span.ClassList().Items())
	}
}

func TestBindHandlerBooleanAttrAndModifiers(t *testing.T) {
	root, err := domhtml.ParseFragment(`
		<div data-volt data-volt-state='{"isDisabled":true,"raw":"  7  "}'>
			<button data-volt-bind:disabled="isDisabled"></button>
			<input data-volt-bind:value.number.trim="raw">
		</div>
	`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc := domhtml.NewDocument()
	mountRoot := root.Children()[0]
	button := mountRoot.Children()[0]
	input := mountRoot.Children()[1]

	volt.Mount(doc, mountRoot, volt.Scope{})

	if !button.HasAttribute("disabled") {
		t.Fatal("expected disabled attribute to be set")
	}
	got, ok := input.GetAttribute("value")
	if !ok || got != "7" {
		t.Fatalf("value attr = (%q, %v), want (\"7\", true)", got, ok)
	}
}

func TestShowHandlerTogglesDisplayAndRestoresOriginal(t *testing.T) {
	root, err := domhtml.ParseFragment(`
		<div data-volt data-volt-state='{"visible":false}'>
			<p style="display:inline" data-volt-show="visible"></p>
			<button data-volt-on-click="visible.set(!visible)"></button>
		</div>
	`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc := domhtml.NewDocument()
	mountRoot := root.Children()[0]
	p := mountRoot.Children()[0]
	button := mountRoot.Children()[1]

	volt.Mount(doc, mountRoot, volt.Scope{})

	if got := p.Style().GetPropertyValue("display"); got != "none" {
		t.Fatalf("display = %q, want \"none\"", got)
	}

	button.DispatchEvent(&domhtml.Event{EventType: "click", EventTarget: button, CurrTarget: button})

	if got := p.Style().GetPropertyValue("display"); got != "inline" {
		t.Fatalf("display after re-show = %q, want restored \"inline\"", got)
	}
}

func TestStyleHandlerAppliesAndRemovesProperties(t *testing.T) {
	root, err := domhtml.ParseFragment(`
		<div data-volt data-volt-state='{"color":"red","size":null}'>
			<span data-volt-style="{color: color, fontSize: size}"></span>
		</div>
	`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc := domhtml.NewDocument()
	mountRoot := root.Children()[0]
	span := mountRoot.Children()[0]

	volt.Mount(doc, mountRoot, volt.Scope{})

	if got := span.Style().GetPropertyValue("color"); got != "red" {
		t.Fatalf("color = %q, want \"red\"", got)
	}
	if got := span.Style().GetPropertyValue("font-size"); got != "" {
		t.Fatalf("font-size = %q, want empty (removed by null)", got)
	}
}

func TestPinHandlerRegistersAndUnregistersElement(t *testing.T) {
	root, err := domhtml.ParseFragment(`
		<div data-volt>
			<button data-volt-pin="submitBtn"></button>
		</div>
	`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc := domhtml.NewDocument()
	mountRoot := root.Children()[0]
	button := mountRoot.Children()[0]

	teardown := volt.Mount(doc, mountRoot, volt.Scope{})

	meta, ok := scopemeta.For(mountRoot)
	if !ok {
		t.Fatal("expected scope metadata attached to mount root")
	}
	el, ok := meta.Pin("submitBtn")
	if !ok {
		t.Fatal("expected pin \"submitBtn\" to be registered")
	}
	if el != button {
		t.Fatal("pinned element is not the button that declared the pin")
	}

	teardown()
	if _, ok := meta.Pin("submitBtn"); ok {
		t.Fatal("expected pin to be unregistered after teardown")
	}
}

func TestModelHandlerTwoWayBindsTextInput(t *testing.T) {
	root, err := domhtml.ParseFragment(`
		<div data-volt data-volt-state='{"name":"ada"}'>
			<input data-volt-model="name">
			<span data-volt-text="name"></span>
		</div>
	`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc := domhtml.NewDocument()
	mountRoot := root.Children()[0]
	input := mountRoot.Children()[0]
	span := mountRoot.Children()[1]

	volt.Mount(doc, mountRoot, volt.Scope{})

	if got := input.Value(); got != "ada" {
		t.Fatalf("initial input value = %q, want \"ada\"", got)
	}

	input.SetValue("grace")
	input.DispatchEvent(&domhtml.Event{EventType: "input", EventTarget: input, CurrTarget: input})

	if got := span.TextContent(); got != "grace" {
		t.Fatalf("text after model update = %q, want \"grace\"", got)
	}
}

func TestModelHandlerChangeEventDrivesCheckbox(t *testing.T) {
	root, err := domhtml.ParseFragment(`
		<div data-volt data-volt-state='{"agree":false}'>
			<input type="checkbox" data-volt-model="agree">
			<span data-volt-text="agree"></span>
		</div>
	`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc := domhtml.NewDocument()
	mountRoot := root.Children()[0]
	input := mountRoot.Children()[0]
	span := mountRoot.Children()[1]

	volt.Mount(doc, mountRoot, volt.Scope{})

	if span.TextContent() != "false" {
		t.Fatalf("initial text = %q, want \"false\"", span.TextContent())
	}

	input.SetChecked(true)
	input.DispatchEvent(&domhtml.Event{EventType: "change", EventTarget: input, CurrTarget: input})

	if got := span.TextContent(); got != "true" {
		t.Fatalf("text after checkbox change = %q, want \"true\"", got)
	}
}

func TestModelHandlerSelectUsesChangeEvent(t *testing.T) {
	root, err := domhtml.ParseFragment(`
		<div data-volt data-volt-state='{"color":"red"}'>
			<select data-volt-model="color">
				<option value="red">red</option>
				<option value="blue">blue</option>
			</select>
			<span data-volt-text="color"></span>
		</div>
	`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc := domhtml.NewDocument()
	mountRoot := root.Children()[0]
	sel := mountRoot.Children()[0]
	span := mountRoot.Children()[1]

	volt.Mount(doc, mountRoot, volt.Scope{})

	if got := sel.Value(); got != "red" {
		t.Fatalf("initial select value = %q, want \"red\"", got)
	}

	sel.SetValue("blue")
	sel.DispatchEvent(&domhtml.Event{EventType: "input", EventTarget: sel, CurrTarget: sel})

	if got := span.TextContent(); got != "red" {
		t.Fatalf("text after input event = %q, want unchanged \"red\" (select listens on change, not input)", got)
	}

	sel.DispatchEvent(&domhtml.Event{EventType: "change", EventTarget: sel, CurrTarget: sel})

	if got := span.TextContent(); got != "blue" {
		t.Fatalf("text after change event = %q, want \"blue\"", got)
	}
}

func TestModelHandlerDebounceCoalescesRapidInput(t *testing.T) {
	root, err := domhtml.ParseFragment(`
		<div data-volt data-volt-state='{"query":""}'>
			<input data-volt-model.debounce.30="query">
			<span data-volt-text="query"></span>
		</div>
	`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc := domhtml.NewDocument()
	mountRoot := root.Children()[0]
	input := mountRoot.Children()[0]
	span := mountRoot.Children()[1]

	volt.Mount(doc, mountRoot, volt.Scope{})

	fire := func(v string) {
		input.SetValue(v)
		input.DispatchEvent(&domhtml.Event{EventType: "input", EventTarget: input, CurrTarget: input})
	}
	fire("g")
	fire("gr")
	fire("gra")

	if got := span.TextContent(); got != "" {
		t.Fatalf("text immediately after rapid input = %q, want unchanged \"\" (debounced)", got)
	}

	time.Sleep(80 * time.Millisecond)

	if got := span.TextContent(); got != "gra" {
		t.Fatalf("text after debounce window = %q, want \"gra\"", got)
	}
}

func TestEventHandlerDebounceCoalescesRapidClicks(t *testing.T) {
	root, err := domhtml.ParseFragment(`
		<div data-volt data-volt-state='{"count":0}'>
			<span data-volt-text="count"></span>
			<button data-volt-on-click.debounce.30="count.set(count+1)"></button>
		</div>
	`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc := domhtml.NewDocument()
	mountRoot := root.Children()[0]
	span := mountRoot.Children()[0]
	button := mountRoot.Children()[1]

	volt.Mount(doc, mountRoot, volt.Scope{})

	click := func() {
		button.DispatchEvent(&domhtml.Event{EventType: "click", EventTarget: button, CurrTarget: button})
	}
	click()
	click()
	click()

	if got := span.TextContent(); got != "0" {
		t.Fatalf("text immediately after rapid clicks = %q, want unchanged \"0\" (debounced)", got)
	}

	time.Sleep(80 * time.Millisecond)

	if got := span.TextContent(); got != "1" {
		t.Fatalf("text after debounce window = %q, want \"1\" (three clicks coalesced into one)", got)
	}
}

func TestConditionalHandlerSwitchesBetweenIfAndElseBranches(t *testing.T) {
	root, err := domhtml.ParseFragment(`
		<div data-volt data-volt-state='{"loggedIn":false}'>
			<p data-volt-if="loggedIn" data-volt-text="'welcome back'"></p>
			<p data-volt-else data-volt-text="'please sign in'"></p>
			<button data-volt-on-click="loggedIn.set(!loggedIn)"></button>
		</div>
	`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc := domhtml.NewDocument()
	mountRoot := root.Children()[0]
	button := mountRoot.Children()[2]

	volt.Mount(doc, mountRoot, volt.Scope{})

	rendered := func() string {
		for _, c := range mountRoot.Children() {
			if c.TagName() == "P" {
				return c.TextContent()
			}
		}
		return ""
	}

	if got := rendered(); got != "please sign in" {
		t.Fatalf("initial branch text = %q, want \"please sign in\"", got)
	}

	button.DispatchEvent(&domhtml.Event{EventType: "click", EventTarget: button, CurrTarget: button})

	if got := rendered(); got != "welcome back" {
		t.Fatalf("branch text after toggle = %q, want \"welcome back\"", got)
	}

	button.DispatchEvent(&domhtml.Event{EventType: "click", EventTarget: button, CurrTarget: button})

	if got := rendered(); got != "please sign in" {
		t.Fatalf("branch text after second toggle = %q, want \"please sign in\"", got)
	}
}
