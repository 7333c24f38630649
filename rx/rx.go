// Package rx bridges push-style observation callbacks into demand driven
// streams: a Publisher hands each Subscriber its own Subscription, and values
// only flow while the subscriber has requested them.
package rx

type Publisher[T any] interface {
	// Subscribe creates a fresh Subscription and passes it to s.OnSubscribe.
	// Nothing is observed until s requests a positive demand.
	Subscribe(s Subscriber[T])
}

type Subscription interface {
	Cancellable
	Request(Demand)
}

type Subscriber[T any] interface {
	OnSubscribe(Subscription)
	// OnNext receives one value and returns the additional demand to grant.
	OnNext(T) Demand
	OnComplete()
}

type Cancellable interface {
	Cancel()
}

// Policy decides what a subscription does when its demand drops to zero
// after a delivery.
type Policy uint8

const (
	// RespectDemand completes the subscription and releases the
	// observation once the demand is exhausted.
	RespectDemand Policy = iota
	// FireAndForget keeps observing; values arriving without demand are
	// dropped until more is requested.
	FireAndForget
)

func (p Policy) String() string {
	switch p {
	case RespectDemand:
		return "respect-demand"
	case FireAndForget:
		return "fire-and-forget"
	default:
		return "unknown"
	}
}

func To[T any](pub Publisher[T], subs ...Subscriber[T]) {
	for _, sub := range subs {
		pub.Subscribe(sub)
	}
}
