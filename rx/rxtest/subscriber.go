// Package rxtest provides a recording subscriber for testing publishers.
package rxtest

import (
	"sync"

	"github.com/7vars/avrx/rx"
)

// Subscriber records every value it receives. It requests its initial
// demand on subscribe; ValueFunc decides the demand granted after each value.
type Subscriber[T any] struct {
	mu           sync.Mutex
	subscription rx.Subscription
	values       []T
	completions  int

	initial      rx.Demand
	ValueFunc    func(T) rx.Demand
	CompleteFunc func()
}

func NewSubscriber[T any](initial rx.Demand) *Subscriber[T] {
	return &Subscriber[T]{initial: initial}
}

func (s *Subscriber[T]) OnSubscribe(sub rx.Subscription) {
	s.mu.Lock()
	s.subscription = sub
	s.mu.Unlock()

	if s.initial != rx.None {
		sub.Request(s.initial)
	}
}

func (s *Subscriber[T]) OnNext(v T) rx.Demand {
	s.mu.Lock()
	s.values = append(s.values, v)
	s.mu.Unlock()

	if s.ValueFunc != nil {
		return s.ValueFunc(v)
	}
	return rx.None
}

func (s *Subscriber[T]) OnComplete() {
	s.mu.Lock()
	s.completions++
	s.mu.Unlock()

	if s.CompleteFunc != nil {
		s.CompleteFunc()
	}
}

// RequestMore asks the subscription for n more values.
func (s *Subscriber[T]) RequestMore(n rx.Demand) {
	if sub := s.Subscription(); sub != nil {
		sub.Request(n)
	}
}

func (s *Subscriber[T]) Cancel() {
	if sub := s.Subscription(); sub != nil {
		sub.Cancel()
	}
}

func (s *Subscriber[T]) Subscription() rx.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscription
}

func (s *Subscriber[T]) Values() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.values...)
}

func (s *Subscriber[T]) Completed() bool {
	return s.Completions() > 0
}

func (s *Subscriber[T]) Completions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completions
}
