package rx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDemandAdd(t *testing.T) {
	tests := []struct {
		name string
		a, b Demand
		want Demand
	}{
		{"NoneAndNone", None, None, None},
		{"Finite", Max(2), Max(3), Max(5)},
		{"UnlimitedLeft", Unlimited, Max(3), Unlimited},
		{"UnlimitedRight", Max(3), Unlimited, Unlimited},
		{"Saturates", Unlimited - 1, Max(5), Unlimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Add(tt.b))
		})
	}
}

func TestDemandMax(t *testing.T) {
	assert.Equal(t, None, Max(-3))
	assert.Equal(t, None, Max(0))
	assert.Equal(t, Demand(7), Max(7))
}

func TestDemandString(t *testing.T) {
	assert.Equal(t, "unlimited", Unlimited.String())
	assert.Equal(t, "42", Max(42).String())
}

func TestCounterTryConsumeOne(t *testing.T) {
	var c Counter
	assert.True(t, c.IsZero())
	assert.False(t, c.TryConsumeOne())

	c.Add(Max(2))
	assert.True(t, c.TryConsumeOne())
	assert.True(t, c.TryConsumeOne())
	assert.False(t, c.TryConsumeOne())
	assert.True(t, c.IsZero())

	c.Add(Unlimited)
	for i := 0; i < 1000; i++ {
		assert.True(t, c.TryConsumeOne())
	}
	assert.True(t, c.Demand().IsUnlimited())

	c.Add(Max(1))
	assert.True(t, c.Demand().IsUnlimited(), "unlimited stays unlimited")
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "respect-demand", RespectDemand.String())
	assert.Equal(t, "fire-and-forget", FireAndForget.String())
	assert.Equal(t, "unknown", Policy(9).String())
}
