package expr

import "testing"

func TestExtractDepsFindsPlainIdentifier(t *testing.T) {
	count := newFakeCell(float64(1))
	deps := ExtractDeps(ModeExpression, "count + 1", Scope{"count": count})
	if len(deps) != 1 || deps[0] != count {
		t.Fatalf("deps = %v, want [count]", deps)
	}
}

func TestExtractDepsFindsNestedMemberPath(t *testing.T) {
	name := newFakeCell("Ada")
	scope := Scope{"user": map[string]any{"name": name}}
	deps := ExtractDeps(ModeExpression, "user.name", scope)
	if len(deps) != 1 || deps[0] != name {
		t.Fatalf("deps = %v, want [name]", deps)
	}
}

func TestExtractDepsDedupsRepeatedReads(t *testing.T) {
	count := newFakeCell(float64(1))
	deps := ExtractDeps(ModeExpression, "count + count * count", Scope{"count": count})
	if len(deps) != 1 {
		t.Fatalf("deps = %v, want exactly one deduped entry", deps)
	}
}

func TestExtractDepsIgnoresPlainValues(t *testing.T) {
	deps := ExtractDeps(ModeExpression, "a + b", Scope{"a": float64(1), "b": float64(2)})
	if len(deps) != 0 {
		t.Fatalf("deps = %v, want none (plain values aren't deps)", deps)
	}
}

func TestExtractDepsRecognizesStoreGetPattern(t *testing.T) {
	theme := newFakeCell("dark")
	scope := Scope{"$store": map[string]any{"theme": theme}}
	deps := ExtractDeps(ModeExpression, `$store.get("theme")`, scope)
	if len(deps) != 1 || deps[0] != theme {
		t.Fatalf("deps = %v, want [theme]", deps)
	}
}

func TestExtractDepsOnUnresolvableIdentifierReturnsNone(t *testing.T) {
	deps := ExtractDeps(ModeExpression, "unknownThing + 1", Scope{})
	if len(deps) != 0 {
		t.Fatalf("deps = %v, want none", deps)
	}
}

func TestExtractDepsOverApproximatesBothBranchesOfTernary(t *testing.T) {
	a := newFakeCell(float64(1))
	b := newFakeCell(float64(2))
	deps := ExtractDeps(ModeExpression, "flag ? a : b", Scope{"flag": true, "a": a, "b": b})
	if len(deps) != 2 {
		t.Fatalf("deps = %v, want both branches collected", deps)
	}
}
