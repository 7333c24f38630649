package rx

import "github.com/7vars/avrx"

type options struct {
	name   string
	policy Policy
	logger avrx.Logger
}

type Option func(*options)

// WithName labels the publisher in logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func WithPolicy(policy Policy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

func WithLogger(logger avrx.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

type bridgePublisher[T any] struct {
	name   string
	policy Policy
	bridge Bridge[T]
	logger avrx.Logger
}

// NewPublisher returns a Publisher observing bridge. The publisher holds no
// per-subscriber state and may be subscribed to concurrently.
func NewPublisher[T any](bridge Bridge[T], opts ...Option) Publisher[T] {
	if bridge == nil {
		panic(avrx.RuntimeError("rx: publisher without bridge"))
	}
	o := options{
		name:   "anonymous",
		policy: RespectDemand,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = avrx.NewLogger()
	}
	return &bridgePublisher[T]{
		name:   o.name,
		policy: o.policy,
		bridge: bridge,
		logger: o.logger.With(map[string]interface{}{
			"publisher": o.name,
			"policy":    o.policy.String(),
		}),
	}
}

func (p *bridgePublisher[T]) Subscribe(sub Subscriber[T]) {
	if sub == nil {
		panic(avrx.RuntimeError("rx: nil subscriber for " + p.name))
	}
	sub.OnSubscribe(newSubscription(p, sub))
}
