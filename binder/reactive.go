package binder

import (
	"github.com/voltgo/volt/expr"
	"github.com/voltgo/volt/volterr"
)

// subscribable is satisfied by *reactivity.Cell and *reactivity.Derivation;
// ExtractDeps returns values of this shape.
type subscribable interface {
	Subscribe(fn func()) (unsubscribe func())
}

// BindValue implements the shared value-producing handler pattern: (a)
// evaluate src in expression mode, (b) apply the result, (c) extract the
// dependencies src would read, (d) subscribe apply to each of them, (e)
// push the aggregate unsubscribe into ctx's teardown list. The initial
// apply runs synchronously before BindValue returns.
func BindValue(ctx *BindingContext, src string, apply func(v any)) error {
	invoke := func() (any, error) {
		v, err := expr.Evaluate(src, ctx.Scope)
		if err != nil {
			return nil, err
		}
		apply(v)
		return v, nil
	}

	if _, err := invoke(); err != nil {
		return err
	}

	deps := expr.ExtractDeps(expr.ModeExpression, src, ctx.Scope)
	var unsubs []func()
	for _, d := range deps {
		s, ok := d.(subscribable)
		if !ok {
			continue
		}
		unsubs = append(unsubs, s.Subscribe(func() {
			if _, err := invoke(); err != nil {
				volterr.Report(volterr.Error, err)
			}
		}))
	}
	ctx.AddCleanup(func() {
		for _, u := range unsubs {
			u()
		}
	})
	return nil
}
