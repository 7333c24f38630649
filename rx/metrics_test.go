package rx

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/7vars/avrx"
)

type countingSubscriber struct {
	subscription Subscription
	initial      Demand
	received     int
}

func (c *countingSubscriber) OnSubscribe(s Subscription) {
	c.subscription = s
	s.Request(c.initial)
}

func (c *countingSubscriber) OnNext(int) Demand {
	c.received++
	return None
}

func (c *countingSubscriber) OnComplete() {}

func TestMetrics(t *testing.T) {
	var emit func(int)
	bridge := BridgeFuncs[int]{
		OnRegister: func(fn func(int)) avrx.Token {
			emit = fn
			return avrx.NewToken()
		},
	}
	name := t.Name()
	pub := NewPublisher[int](bridge, WithName(name))

	completing := &countingSubscriber{initial: Max(2)}
	pub.Subscribe(completing)
	assert.Equal(t, 1.0, testutil.ToFloat64(activeSubscriptions.WithLabelValues(name)))

	emit(1)
	emit(2)
	emit(3)

	assert.Equal(t, 2, completing.received)
	assert.Equal(t, 2.0, testutil.ToFloat64(deliveredTotal.WithLabelValues(name)))
	assert.Equal(t, 1.0, testutil.ToFloat64(droppedTotal.WithLabelValues(name, dropTerminal)))
	assert.Equal(t, 1.0, testutil.ToFloat64(completedTotal.WithLabelValues(name)))
	assert.Equal(t, 0.0, testutil.ToFloat64(activeSubscriptions.WithLabelValues(name)))

	cancelled := &countingSubscriber{initial: Unlimited}
	pub.Subscribe(cancelled)
	cancelled.subscription.Cancel()
	cancelled.subscription.Cancel()

	assert.Equal(t, 1.0, testutil.ToFloat64(cancelledTotal.WithLabelValues(name)))
	assert.Equal(t, 0.0, testutil.ToFloat64(activeSubscriptions.WithLabelValues(name)))
}

func TestRegistryGathers(t *testing.T) {
	families, err := Registry().Gather()
	assert.NoError(t, err)
	assert.NotNil(t, families)
}
