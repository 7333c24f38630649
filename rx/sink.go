package rx

import "sync"

// SinkSubscriber requests unlimited demand and hands every value to a
// callback until cancelled.
type SinkSubscriber[T any] struct {
	mu           sync.Mutex
	subscription Subscription
	cancelled    bool

	onValue    func(T)
	onComplete func()
}

// Sink subscribes to pub and returns the subscriber, which must be kept
// (e.g. in a Bag) for as long as values are wanted.
func Sink[T any](pub Publisher[T], onValue func(T), onComplete func()) *SinkSubscriber[T] {
	s := &SinkSubscriber[T]{
		onValue:    onValue,
		onComplete: onComplete,
	}
	pub.Subscribe(s)
	return s
}

func (s *SinkSubscriber[T]) OnSubscribe(sub Subscription) {
	s.mu.Lock()
	if s.cancelled || s.subscription != nil {
		s.mu.Unlock()
		sub.Cancel()
		return
	}
	s.subscription = sub
	s.mu.Unlock()

	sub.Request(Unlimited)
}

func (s *SinkSubscriber[T]) OnNext(v T) Demand {
	if s.onValue != nil {
		s.onValue(v)
	}
	return None
}

func (s *SinkSubscriber[T]) OnComplete() {
	s.mu.Lock()
	s.subscription = nil
	s.mu.Unlock()

	if s.onComplete != nil {
		s.onComplete()
	}
}

func (s *SinkSubscriber[T]) Cancel() {
	s.mu.Lock()
	sub := s.subscription
	s.subscription = nil
	s.cancelled = true
	s.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
}

// Store adds the sink to bag and returns it.
func (s *SinkSubscriber[T]) Store(bag *Bag) *SinkSubscriber[T] {
	bag.Add(s)
	return s
}
