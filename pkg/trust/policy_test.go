package trust

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide_Boundary(t *testing.T) {
	p := NewPolicy()
	assert.True(t, p.Decide(60.0))
	assert.False(t, p.Decide(59.99))
	assert.True(t, p.Decide(100.0))
	assert.False(t, p.Decide(0.0))
}

func TestDecide_CustomThreshold(t *testing.T) {
	p := Policy{Threshold: 80.0}
	assert.True(t, p.Decide(80.0))
	assert.False(t, p.Decide(79.999))
	assert.True(t, p.Decide(95.0))
}

func TestDecide_Monotonic(t *testing.T) {
	p := NewPolicy()
	prev := false
	for s := 0.0; s <= 100.0; s += 0.5 {
		cur := p.Decide(s)
		if prev {
			assert.True(t, cur, "decision regressed at score %.1f", s)
		}
		prev = cur
	}
}
