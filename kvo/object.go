package kvo

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/7vars/avrx"
)

type keyObserver struct {
	key string
	fn  func(Change)
}

// Object is a thread-safe property store. Only the keys it was created with
// can be written. Observers run on the writing goroutine after the store's
// lock is released, in no particular order.
type Object struct {
	mu        sync.RWMutex
	values    map[string]interface{}
	observers map[avrx.Token]keyObserver
}

// NewObject declares the object's keys together with their initial values.
func NewObject(initial map[string]interface{}) *Object {
	values := make(map[string]interface{}, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &Object{
		values:    values,
		observers: make(map[avrx.Token]keyObserver),
	}
}

func (o *Object) Get(key string) (interface{}, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.values[key]
	if !ok {
		return nil, errors.Wrap(ErrUnknownKey, key)
	}
	return v, nil
}

// Set stores v under key and notifies every observer of key, even when the
// value did not change.
func (o *Object) Set(key string, v interface{}) error {
	o.mu.Lock()
	old, ok := o.values[key]
	if !ok {
		o.mu.Unlock()
		return errors.Wrap(ErrUnknownKey, key)
	}
	o.values[key] = v
	targets := make([]func(Change), 0, len(o.observers))
	for _, obs := range o.observers {
		if obs.key == key {
			targets = append(targets, obs.fn)
		}
	}
	o.mu.Unlock()

	change := Change{Key: key, Old: old, New: v}
	for _, fn := range targets {
		fn(change)
	}
	return nil
}

func (o *Object) Keys() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	keys := make([]string, 0, len(o.values))
	for k := range o.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AddObserver panics on a nil fn. Observing an undeclared key is allowed but
// never fires.
func (o *Object) AddObserver(key string, fn func(Change)) avrx.Token {
	if fn == nil {
		panic(avrx.RuntimeError("kvo: nil observer for key " + key))
	}
	token := avrx.NewToken()

	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers[token] = keyObserver{key: key, fn: fn}
	return token
}

func (o *Object) RemoveObserver(token avrx.Token) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.observers, token)
}

func (o *Object) ObserverCount() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.observers)
}
