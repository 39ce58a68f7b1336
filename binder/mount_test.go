package binder_test

import (
	"testing"

	"github.com/voltgo/volt/binder"
	"github.com/voltgo/volt/dom"
	"github.com/voltgo/volt/dom/domhtml"
	"github.com/voltgo/volt/expr"
	"github.com/voltgo/volt/volterr"
)

func TestMountTeardownIsIdempotent(t *testing.T) {
	root, err := domhtml.ParseFragment(`
		<div data-volt data-volt-state='{"count":1}'>
			<span data-volt-text="count"></span>
		</div>
	`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc := domhtml.NewDocument()
	mountRoot := root.Children()[0]

	teardown := binder.Mount(doc, mountRoot, expr.Scope{})
	teardown()
	teardown() // must not panic the second time
}

func TestMountHooksFireInOrder(t *testing.T) {
	root, err := domhtml.ParseFragment(`<div data-volt></div>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc := domhtml.NewDocument()
	mountRoot := root.Children()[0]

	var order []string
	hooks := binder.Hooks{
		BeforeMount:   func(el dom.Element) { order = append(order, "beforeMount") },
		AfterMount:    func(el dom.Element) { order = append(order, "afterMount") },
		BeforeUnmount: func(el dom.Element) { order = append(order, "beforeUnmount") },
		AfterUnmount:  func(el dom.Element) { order = append(order, "afterUnmount") },
	}
	teardown := binder.Mount(doc, mountRoot, expr.Scope{}, binder.WithHooks(hooks))
	teardown()

	want := []string{"beforeMount", "afterMount", "beforeUnmount", "afterUnmount"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestMountReportsErrorsThroughWithSink(t *testing.T) {
	root, err := domhtml.ParseFragment(`
		<div data-volt>
			<span data-volt-text="1 +"></span>
		</div>
	`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc := domhtml.NewDocument()
	mountRoot := root.Children()[0]

	var got error
	var gotSeverity volterr.Severity
	sink := volterr.SinkFunc(func(sev volterr.Severity, err error) {
		if got == nil {
			got = err
			gotSeverity = sev
		}
	})
	teardown := binder.Mount(doc, mountRoot, expr.Scope{}, binder.WithSink(sink))
	defer teardown()

	if got == nil {
		t.Fatal("expected an error for a malformed expression")
	}
	if gotSeverity != volterr.Error {
		t.Fatalf("severity = %v, want volterr.Error", gotSeverity)
	}
}

func TestMountWithPluginsOverridesForThisMountOnly(t *testing.T) {
	root, err := domhtml.ParseFragment(`<div data-volt><span data-volt-tooltip="hi"></span></div>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc := domhtml.NewDocument()
	mountRoot := root.Children()[0]

	var gotValue string
	plugins := map[string]binder.PluginFunc{
		"tooltip": func(ac *binder.AdapterContext, value string) error {
			gotValue = value
			return nil
		},
	}
	teardown := binder.Mount(doc, mountRoot, expr.Scope{}, binder.WithPlugins(plugins))
	defer teardown()

	if gotValue != "hi" {
		t.Fatalf("plugin saw value = %q, want \"hi\"", gotValue)
	}

	other, err := domhtml.ParseFragment(`<div data-volt><span data-volt-tooltip="other"></span></div>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	otherTeardown := binder.Mount(doc, other.Children()[0], expr.Scope{})
	defer otherTeardown()

	if gotValue != "hi" {
		t.Fatalf("plugin ran for a mount without WithPlugins, saw value = %q", gotValue)
	}
}
