package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voltgo/volt/volterr"
)

func TestDerivationForcesComputeOnFirstRead(t *testing.T) {
	count := NewCell("count", 3)
	computes := 0
	d := NewDerivation("double", func() any {
		computes++
		return count.Get().(int) * 2
	})
	assert.Equal(t, 0, computes)
	assert.Equal(t, 6, d.Get())
	assert.Equal(t, 1, computes)
}

func TestDerivationRecomputesEagerlyOnUpstreamWrite(t *testing.T) {
	count := NewCell("count", 3)
	d := NewDerivation("double", func() any {
		return count.Get().(int) * 2
	})
	assert.Equal(t, 6, d.Get())
	count.Set(5)
	assert.Equal(t, 10, d.Peek())
}

func TestDerivationNotifiesSubscribersOnlyWhenValueChanges(t *testing.T) {
	flag := NewCell("flag", true)
	n := NewCell("n", 1)
	notifies := 0
	d := NewDerivation("parity", func() any {
		if flag.Get().(bool) {
			return n.Get().(int) % 2
		}
		return 0
	})
	d.Subscribe(func() { notifies++ })
	assert.Equal(t, 1, d.Peek())

	n.Set(3) // still odd -> 1, unchanged
	assert.Equal(t, 0, notifies)

	n.Set(4) // now even -> 0, changed
	assert.Equal(t, 1, notifies)
}

func TestDerivationSelfReadPanicsWithCircularDependency(t *testing.T) {
	var d *Derivation
	d = NewDerivation("loop", func() any {
		return d.Get()
	})
	assert.PanicsWithValue(t, &volterr.CircularDependencyError{Name: "loop"}, func() {
		d.Get()
	})
}

func TestDerivationChainRecomputesTransitively(t *testing.T) {
	base := NewCell("base", 1)
	d1 := NewDerivation("d1", func() any { return base.Get().(int) + 1 })
	d2 := NewDerivation("d2", func() any { return d1.Get().(int) * 10 })
	assert.Equal(t, 20, d2.Get())
	base.Set(2)
	assert.Equal(t, 30, d2.Peek())
}
