package binder

import "strings"

const attrPrefix = "data-volt"

// modifierNames is the recognized modifier vocabulary; the first token
// outside it ends modifier parsing, and that token and any after it are
// dropped.
var modifierNames = map[string]bool{
	"prevent":  true,
	"stop":     true,
	"self":     true,
	"window":   true,
	"document": true,
	"once":     true,
	"passive":  true,
	"debounce": true,
	"throttle": true,
	"number":   true,
	"trim":     true,
	"lazy":     true,
}

// IsVoltAttr reports whether name is a data-volt attribute at all
// (including the bare "data-volt" root marker).
func IsVoltAttr(name string) bool {
	return name == attrPrefix || strings.HasPrefix(name, attrPrefix+"-")
}

// ParseAttr splits a data-volt-* attribute name into a Directive. value
// is the attribute's raw string value, copied through unchanged.
//
// Recognized shapes (rest = name with the "data-volt-" prefix stripped):
//
//	bind:<attr>[.mods]     -> Kind "bind", Sub "<attr>"
//	on-<event>[.mods]      -> Kind "on",   Sub "<event>"
//	computed:<name>        -> Kind "computed", Sub "<name>" (no mods)
//	state                  -> Kind "state"
//	<kind>[.mods]          -> Kind "<kind>", e.g. "text", "show", "model"
//
// Modifiers are dot-separated (".prevent.stop", ".debounce.250") rather
// than dash-separated; the literal examples throughout this surface all
// use dots, so that is the form this parser accepts.
func ParseAttr(name, value string) (Directive, bool) {
	if name == attrPrefix {
		return Directive{AttrName: name, Kind: "state-root", Value: value}, true
	}
	if !strings.HasPrefix(name, attrPrefix+"-") {
		return Directive{}, false
	}
	rest := name[len(attrPrefix+"-"):]
	if rest == "" {
		return Directive{}, false
	}

	d := Directive{AttrName: name, Value: value}

	switch {
	case strings.HasPrefix(rest, "bind:"):
		d.Kind = "bind"
		rest = rest[len("bind:"):]
		d.Sub, rest = splitFirstDot(rest)
	case strings.HasPrefix(rest, "on-"):
		d.Kind = "on"
		rest = rest[len("on-"):]
		d.Sub, rest = splitFirstDot(rest)
	case strings.HasPrefix(rest, "computed:"):
		d.Kind = "computed"
		d.Sub = rest[len("computed:"):]
		return d, true
	case strings.HasPrefix(rest, "state-"):
		d.Kind = "state"
		d.Sub = rest[len("state-"):]
		return d, true
	default:
		d.Kind, rest = splitFirstDot(rest)
	}

	d.Mods = parseModifiers(rest)
	return d, true
}

// splitFirstDot splits s at its first '.', returning (head, remainder)
// where remainder still begins at the dot's position so the caller can
// feed it straight into parseModifiers.
func splitFirstDot(s string) (string, string) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// parseModifiers reads ".name.name.arg..." and produces Modifiers,
// attaching an all-digit token to the immediately preceding modifier's
// Arg. Parsing stops at the first token that is neither a known
// modifier name nor all-digits (so trailing garbage doesn't crash the
// binder, it is simply dropped from the modifier list).
func parseModifiers(s string) []Modifier {
	if s == "" {
		return nil
	}
	tokens := strings.Split(strings.TrimPrefix(s, "."), ".")
	var mods []Modifier
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if isAllDigits(tok) && len(mods) > 0 {
			mods[len(mods)-1].Arg = tok
			continue
		}
		if !modifierNames[tok] {
			break
		}
		mods = append(mods, Modifier{Name: tok})
	}
	return mods
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
