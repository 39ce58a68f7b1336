package expr

// ExtractDeps performs a static, over-approximating scan for identifiers
// the given source might read: it re-lexes src with the same tokenizer
// the parser uses, walks runs of `ident(.ident)*`, and resolves each run
// against scope. Any resolved value implementing dep is collected. This
// intentionally does not execute the expression — it is a separate pass
// from Evaluate/Execute, matching how dependency discovery and value
// computation are kept as two distinct steps by the binder.
//
// A resolved path is never perfectly precise (a `cond ? a.x : b.y` scan
// collects both a.x and b.y even though only one executes), but
// over-subscribing is harmless: it just means an unrelated write
// triggers a redundant recompute.
func ExtractDeps(mode Mode, src string, scope Scope) []any {
	toks, err := lex(src)
	if err != nil {
		return nil
	}
	seen := map[any]bool{}
	var out []any

	add := func(v any) {
		if d, ok := v.(dep); ok {
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}

	i := 0
	for i < len(toks) {
		t := toks[i]
		if t.kind != tokIdent || isReservedWord(t.text) {
			i++
			continue
		}
		path := []string{t.text}
		j := i + 1
		for j+1 < len(toks) && toks[j].kind == tokPunct && toks[j].text == "." && toks[j+1].kind == tokIdent {
			path = append(path, toks[j+1].text)
			j += 2
		}

		if path[0] == "$store" && len(path) >= 2 {
			method := path[len(path)-1]
			if (method == "get" || method == "set" || method == "has") &&
				j < len(toks) && toks[j].kind == tokPunct && toks[j].text == "(" &&
				j+1 < len(toks) && toks[j+1].kind == tokString {
				key := toks[j+1].text
				if store, ok := scope["$store"].(map[string]any); ok {
					add(store[key])
				}
			}
		}

		resolvePath(scope, path, add)

		i = j
	}
	return out
}

// resolvePath walks path against scope and passes the root value and
// every value reached along the path to add, so a cell read on the way
// to the last segment is collected as well as the terminal value.
func resolvePath(scope Scope, path []string, add func(any)) {
	v, ok := scope[path[0]]
	if !ok {
		return
	}
	add(v)
	for _, seg := range path[1:] {
		if d, isDep := v.(dep); isDep {
			v = d.Get()
		}
		v = getProp(v, seg)
		add(v)
	}
}
