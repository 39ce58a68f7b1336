package expr

import (
	"fmt"

	"github.com/voltgo/volt/volterr"
)

// Evaluate parses (or fetches from cache) src as a single expression and
// runs it against scope, auto-unwrapping the final result. Used for
// attribute-bound expressions: text/show/class/attr and friends.
func Evaluate(src string, scope Scope) (result any, err error) {
	return run(ModeExpression, src, scope)
}

// Execute parses (or fetches from cache) src as a semicolon-separated
// statement sequence and runs it against scope. Used for event handler
// bodies, where side effects (cell.set(...), $emit(...)) matter more than
// the return value.
func Execute(src string, scope Scope) (result any, err error) {
	return run(ModeStatement, src, scope)
}

func run(mode Mode, src string, scope Scope) (result any, err error) {
	n, perr := compile(mode, src)
	if perr != nil {
		return nil, &volterr.EvaluationError{Expr: src, Cause: perr}
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, fatal := r.(*volterr.CircularDependencyError); fatal {
			panic(r)
		}
		if ee, ok := r.(*volterr.EvaluationError); ok {
			err = ee
			return
		}
		if e, ok := r.(error); ok {
			err = &volterr.EvaluationError{Expr: src, Cause: e}
			return
		}
		err = &volterr.EvaluationError{Expr: src, Cause: fmt.Errorf("%v", r)}
	}()

	result = unwrap(evalNode(n, scope))
	return result, nil
}
