package kvo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7vars/avrx/kvo"
	"github.com/7vars/avrx/rx"
	"github.com/7vars/avrx/rx/rxtest"
)

type counter struct {
	*kvo.Object
}

func newCounter() *counter {
	return &counter{kvo.NewObject(map[string]interface{}{"count": 0})}
}

func (c *counter) Count() int {
	v, _ := c.Get("count")
	return v.(int)
}

func (c *counter) increment(t *testing.T) {
	require.NoError(t, c.Set("count", c.Count()+1))
}

var countPath = kvo.KeyPath[*counter, int]{
	Key: "count",
	Get: (*counter).Count,
}

func TestIncrementEmitsNewValue(t *testing.T) {
	c := newCounter()
	var got []int
	sink := rx.Sink(kvo.NewPublisher(c, countPath), func(v int) { got = append(got, v) }, nil)
	defer sink.Cancel()

	c.increment(t)
	c.increment(t)

	assert.Equal(t, []int{1, 2}, got)
}

func TestRequestedDemandBoundsValues(t *testing.T) {
	tests := []struct {
		name   string
		demand rx.Demand
		want   []int
	}{
		{"None", rx.None, nil},
		{"One", rx.Max(1), []int{1}},
		{"Two", rx.Max(2), []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCounter()
			sub := rxtest.NewSubscriber[int](tt.demand)
			kvo.NewPublisher(c, countPath).Subscribe(sub)

			for i := 0; i < 5; i++ {
				c.increment(t)
			}

			assert.Equal(t, tt.want, sub.Values())
			assert.Equal(t, tt.demand != rx.None, sub.Completed())
			assert.Equal(t, 0, c.ObserverCount())
		})
	}
}

func TestFallsBackToGetter(t *testing.T) {
	o := kvo.NewObject(map[string]interface{}{"label": nil})
	path := kvo.KeyPath[*kvo.Object, string]{
		Key: "label",
		Get: func(*kvo.Object) string { return "fallback" },
	}
	sub := rxtest.NewSubscriber[string](rx.Unlimited)
	kvo.NewPublisher(o, path).Subscribe(sub)

	require.NoError(t, o.Set("label", 42))
	require.NoError(t, o.Set("label", "direct"))

	assert.Equal(t, []string{"fallback", "direct"}, sub.Values())
}

func TestCancelRemovesObserver(t *testing.T) {
	c := newCounter()
	sub := rxtest.NewSubscriber[int](rx.Unlimited)
	kvo.NewPublisher(c, countPath, rx.WithPolicy(rx.FireAndForget)).Subscribe(sub)
	assert.Equal(t, 1, c.ObserverCount())

	sub.Cancel()
	c.increment(t)

	assert.Equal(t, 0, c.ObserverCount())
	assert.Empty(t, sub.Values())
}

func TestPathWithoutGetterPanics(t *testing.T) {
	assert.Panics(t, func() {
		kvo.NewPublisher(newCounter(), kvo.KeyPath[*counter, int]{Key: "count"})
	})
}
