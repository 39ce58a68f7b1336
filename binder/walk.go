package binder

import "github.com/voltgo/volt/dom"

// collectedElement is one element the walker decided needs processing,
// along with its already-split namespace attributes.
type collectedElement struct {
	el    dom.Element
	attrs map[string]string // attr name -> raw value, volt attrs only
}

// walk descends root in document order and returns every element
// carrying at least one data-volt-* attribute, skipping descent into
// loop/conditional interiors (those are templates the loop/conditional
// handlers own) and excluding every element that carries data-volt-skip
// together with its whole subtree.
//
// root itself is never collected — Mount handles its own
// data-volt/data-volt-state/data-volt-computed:* attributes separately
// before walking its children.
func walk(root dom.Element) []collectedElement {
	var out []collectedElement
	for _, child := range root.Children() {
		walkInto(child, false, &out)
	}
	return out
}

func walkInto(el dom.Element, skipped bool, out *[]collectedElement) {
	attrs := voltAttrs(el)
	if skipped {
		// Below a skipped element: this element and its descendants are
		// excluded from collection, whatever attributes they carry.
		for _, child := range el.Children() {
			walkInto(child, true, out)
		}
		return
	}

	if _, has := attrs["data-volt-skip"]; has {
		for _, child := range el.Children() {
			walkInto(child, true, out)
		}
		return
	}

	if len(attrs) > 0 {
		*out = append(*out, collectedElement{el: el, attrs: attrs})
	}

	_, hasLoop := attrs["data-volt-for"]
	_, hasIf := attrs["data-volt-if"]
	_, hasElse := attrs["data-volt-else"]
	if hasLoop || hasIf || hasElse {
		// Interior is a template owned by the loop/conditional handler;
		// do not descend into it during the generic walk.
		return
	}

	for _, child := range el.Children() {
		walkInto(child, false, out)
	}
}

func voltAttrs(el dom.Element) map[string]string {
	var out map[string]string
	for _, name := range el.AttributeNames() {
		if !IsVoltAttr(name) {
			continue
		}
		v, _ := el.GetAttribute(name)
		if out == nil {
			out = map[string]string{}
		}
		out[name] = v
	}
	return out
}
