package expr

import (
	"fmt"
	"math"

	"github.com/voltgo/volt/volterr"
)

// evalNode walks n and produces its value against scope. It never returns
// an error directly — like the reactivity package's tracking machinery, it
// panics with a *volterr.EvaluationError on a runtime failure (sandbox
// refusals of blocked identifiers and properties are not failures: they
// read as undefined, nil), and the public Evaluate/Execute entry points in
// engine.go are the recover boundary. This keeps the walk itself free of
// error-plumbing noise, matching how computeExpr-shaped code reads
// throughout this codebase.
func evalNode(n node, scope Scope) any {
	switch nn := n.(type) {
	case numberLit:
		return nn.value
	case stringLit:
		return nn.value
	case boolLit:
		return nn.value
	case nullLit:
		return nil
	case undefinedLit:
		return nil
	case identifier:
		return evalIdentifier(nn, scope)
	case arrayLit:
		return evalArrayLit(nn, scope)
	case objectLit:
		return evalObjectLit(nn, scope)
	case memberExpr:
		return evalMemberExpr(nn, scope)
	case callExpr:
		return evalCallExpr(nn, scope)
	case unaryExpr:
		return evalUnaryExpr(nn, scope)
	case binaryExpr:
		return evalBinaryExpr(nn, scope)
	case logicalExpr:
		return evalLogicalExpr(nn, scope)
	case conditionalExpr:
		if truthy(evalNode(nn.test, scope)) {
			return evalNode(nn.cons, scope)
		}
		return evalNode(nn.alt, scope)
	case arrowFunc:
		return evalArrowFunc(nn, scope)
	case sequenceExpr:
		var last any
		for _, s := range nn.stmts {
			last = evalNode(s, scope)
		}
		return last
	default:
		panicEval(fmt.Sprintf("%T", n), fmt.Errorf("unhandled node type"))
		return nil
	}
}

func panicEval(expr string, cause error) {
	panic(&volterr.EvaluationError{Expr: expr, Cause: cause})
}

func evalIdentifier(n identifier, scope Scope) any {
	if isBlockedIdentifier(n.name) {
		return nil
	}
	v, ok := scope[n.name]
	if !ok {
		bi := globals()
		if gv, ok := bi[n.name]; ok {
			return gv
		}
		return nil
	}
	return v
}

func evalArrayLit(n arrayLit, scope Scope) any {
	out := []any{}
	for _, el := range n.elements {
		v := evalNode(el.node, scope)
		if el.spread {
			if arr, ok := unwrap(v).([]any); ok {
				out = append(out, arr...)
			}
			continue
		}
		out = append(out, v)
	}
	return out
}

func evalObjectLit(n objectLit, scope Scope) any {
	out := map[string]any{}
	for _, p := range n.props {
		if p.spread {
			if m, ok := unwrap(evalNode(p.value, scope)).(map[string]any); ok {
				for k, v := range m {
					out[k] = v
				}
			}
			continue
		}
		key := p.key
		if p.computed {
			key = toStr(evalNode(p.keyExpr, scope))
		}
		out[key] = evalNode(p.value, scope)
	}
	return out
}

func evalMemberExpr(n memberExpr, scope Scope) any {
	objRaw := evalNode(n.object, scope)
	if n.computed != nil {
		idx := evalNode(n.computed, scope)
		return computedIndex(objRaw, idx)
	}
	if d, ok := objRaw.(dep); ok {
		switch n.property {
		case "get":
			return Func(func(args []any) any { return d.Get() })
		case "subscribe":
			return Func(func(args []any) any {
				fn, ok := callable(arg(args, 0))
				if !ok {
					return nil
				}
				return d.Subscribe(func() { fn(nil) })
			})
		case "set":
			if setter, ok := objRaw.(interface{ Set(any) }); ok {
				return Func(func(args []any) any { setter.Set(arg(args, 0)); return nil })
			}
			panicEval(n.property, fmt.Errorf("value has no set method"))
		}
	}
	return getProp(objRaw, n.property)
}

func evalCallExpr(n callExpr, scope Scope) any {
	calleeVal := evalNode(n.callee, scope)
	fn, ok := callable(calleeVal)
	if !ok {
		panicEval("call", fmt.Errorf("value is not a function"))
	}
	var args []any
	for _, a := range n.args {
		v := evalNode(a.node, scope)
		if a.spread {
			if arr, ok := unwrap(v).([]any); ok {
				args = append(args, arr...)
				continue
			}
		}
		args = append(args, v)
	}
	return fn(args)
}

func evalUnaryExpr(n unaryExpr, scope Scope) any {
	v := evalNode(n.operand, scope)
	switch n.op {
	case "!":
		return !truthy(v)
	case "-":
		return -toNumber(v)
	case "+":
		return toNumber(v)
	}
	panicEval(n.op, fmt.Errorf("unknown unary operator"))
	return nil
}

func evalLogicalExpr(n logicalExpr, scope Scope) any {
	left := evalNode(n.left, scope)
	switch n.op {
	case "&&":
		if !truthy(left) {
			return left
		}
		return evalNode(n.right, scope)
	case "||":
		if truthy(left) {
			return left
		}
		return evalNode(n.right, scope)
	}
	panicEval(n.op, fmt.Errorf("unknown logical operator"))
	return nil
}

func evalBinaryExpr(n binaryExpr, scope Scope) any {
	left := evalNode(n.left, scope)
	right := evalNode(n.right, scope)
	switch n.op {
	case "+":
		lu, ru := unwrap(left), unwrap(right)
		if ls, ok := lu.(string); ok {
			return ls + toStr(ru)
		}
		if rs, ok := ru.(string); ok {
			return toStr(lu) + rs
		}
		return toNumber(left) + toNumber(right)
	case "-":
		return toNumber(left) - toNumber(right)
	case "*":
		return toNumber(left) * toNumber(right)
	case "/":
		return toNumber(left) / toNumber(right)
	case "%":
		return math.Mod(toNumber(left), toNumber(right))
	case "===":
		return strictEquals(left, right)
	case "!==":
		return !strictEquals(left, right)
	case "<":
		return compareValues(left, right) < 0
	case "<=":
		return compareValues(left, right) <= 0
	case ">":
		return compareValues(left, right) > 0
	case ">=":
		return compareValues(left, right) >= 0
	}
	panicEval(n.op, fmt.Errorf("unknown binary operator"))
	return nil
}

func compareValues(a, b any) int {
	au, bu := unwrap(a), unwrap(b)
	if as, ok := au.(string); ok {
		if bs, ok := bu.(string); ok {
			switch {
			case as < bs:
				return -1
			case as > bs:
				return 1
			default:
				return 0
			}
		}
	}
	an, bn := toNumber(a), toNumber(b)
	switch {
	case an < bn:
		return -1
	case an > bn:
		return 1
	default:
		return 0
	}
}

func evalArrowFunc(n arrowFunc, defScope Scope) any {
	return Func(func(args []any) any {
		additions := make(map[string]any, len(n.params))
		for i, p := range n.params {
			additions[p] = arg(args, i)
		}
		callScope := Extend(defScope, additions)
		return evalNode(n.body, callScope)
	})
}
