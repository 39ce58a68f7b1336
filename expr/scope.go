package expr

// Scope is the identifier-to-value mapping the expression engine sees at
// one mount point (spec data model §3). Values may be *reactivity.Cell,
// *reactivity.Derivation, plain Go values (string/float64/bool/map/slice
// from decoded JSON), or functions. Scopes are never mutated in place —
// loop and event bindings call Extend to derive a child scope instead.
type Scope map[string]any

// Extend returns a new scope containing every entry of parent plus
// additions (additions win on key collision), leaving parent untouched.
func Extend(parent Scope, additions map[string]any) Scope {
	child := make(Scope, len(parent)+len(additions))
	for k, v := range parent {
		child[k] = v
	}
	for k, v := range additions {
		child[k] = v
	}
	return child
}

// blockedIdentifiers names runtime escape hatches the sandbox refuses to
// resolve, regardless of whether the host scope happens to define them.
var blockedIdentifiers = map[string]bool{
	"Function": true, "eval": true,
	"window": true, "self": true, "global": true, "globalThis": true,
	"process": true, "require": true, "import": true, "module": true, "exports": true,
}

// blockedProperties names property names that must read as undefined and
// silently ignore writes, even on an otherwise-safe object.
var blockedProperties = map[string]bool{
	"__proto__": true, "prototype": true, "constructor": true,
}

func isBlockedIdentifier(name string) bool { return blockedIdentifiers[name] }
func isBlockedProperty(name string) bool   { return blockedProperties[name] }
