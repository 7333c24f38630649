package rx

import (
	"sync"

	"github.com/7vars/avrx"
	"github.com/google/uuid"
)

type state uint8

const (
	stateIdle state = iota
	stateObserving
	stateTerminal
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateObserving:
		return "observing"
	default:
		return "terminal"
	}
}

// subscription links one subscriber to one bridge registration.
//
// mu guards state, demand, token and subscriber. delivery serialises calls
// into the subscriber so values arrive in callback order; it is never
// acquired while mu is held.
type subscription[T any] struct {
	mu       sync.Mutex
	delivery sync.Mutex

	name   string
	policy Policy
	bridge Bridge[T]
	logger avrx.Logger

	state      state
	demand     Counter
	token      avrx.Token
	subscriber Subscriber[T]
}

func newSubscription[T any](p *bridgePublisher[T], sub Subscriber[T]) *subscription[T] {
	activeSubscriptions.WithLabelValues(p.name).Inc()
	return &subscription[T]{
		name:       p.name,
		policy:     p.policy,
		bridge:     p.bridge,
		logger:     p.logger.WithField("subscription", uuid.NewString()),
		subscriber: sub,
	}
}

func (s *subscription[T]) Request(n Demand) {
	if n == None {
		s.logger.Debug("ignoring request without demand")
		return
	}

	s.mu.Lock()
	if s.state == stateTerminal {
		s.mu.Unlock()
		return
	}
	s.demand.Add(n)
	if s.state != stateIdle {
		s.mu.Unlock()
		return
	}
	s.state = stateObserving
	s.mu.Unlock()

	s.logger.WithField("state", stateObserving).Debugf("start observing with demand %s", n)
	token := s.bridge.Register(s.receive)

	s.mu.Lock()
	if s.state == stateTerminal {
		// cancelled or completed while registering
		s.mu.Unlock()
		s.release(token)
		return
	}
	s.token = token
	s.mu.Unlock()
}

func (s *subscription[T]) Cancel() {
	s.mu.Lock()
	if s.state == stateTerminal {
		s.mu.Unlock()
		return
	}
	token := s.terminate()
	s.mu.Unlock()

	cancelledTotal.WithLabelValues(s.name).Inc()
	s.logger.WithField("state", stateTerminal).Debug("cancelled")
	s.release(token)
}

func (s *subscription[T]) receive(v T) {
	s.delivery.Lock()
	defer s.delivery.Unlock()

	s.mu.Lock()
	if s.state != stateObserving {
		s.mu.Unlock()
		droppedTotal.WithLabelValues(s.name, dropTerminal).Inc()
		return
	}
	if !s.demand.TryConsumeOne() {
		s.mu.Unlock()
		droppedTotal.WithLabelValues(s.name, dropNoDemand).Inc()
		return
	}
	sub := s.subscriber
	s.mu.Unlock()

	more := sub.OnNext(v)
	deliveredTotal.WithLabelValues(s.name).Inc()

	s.mu.Lock()
	if s.state == stateTerminal {
		s.mu.Unlock()
		return
	}
	s.demand.Add(more)
	if s.policy != RespectDemand || !s.demand.IsZero() {
		s.mu.Unlock()
		return
	}
	token := s.terminate()
	s.mu.Unlock()

	completedTotal.WithLabelValues(s.name).Inc()
	s.logger.WithField("state", stateTerminal).Debug("demand exhausted, completing")
	s.release(token)
	sub.OnComplete()
}

// terminate must be called with mu held. It returns the token to release.
func (s *subscription[T]) terminate() avrx.Token {
	token := s.token
	s.state = stateTerminal
	s.token = avrx.Token{}
	s.subscriber = nil
	activeSubscriptions.WithLabelValues(s.name).Dec()
	return token
}

func (s *subscription[T]) release(token avrx.Token) {
	if token.IsZero() {
		return
	}
	s.bridge.Unregister(token)
}
