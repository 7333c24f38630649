package avrx

import "sync"

type notificationObserver struct {
	name   NotificationName
	object interface{}
	fn     func(Notification)
}

// NotificationCenter broadcasts named notifications to registered observers.
// Observers are called on the posting goroutine, outside the center's lock.
type NotificationCenter struct {
	mu        sync.RWMutex
	observers map[Token]notificationObserver
}

func NewNotificationCenter() *NotificationCenter {
	return &NotificationCenter{
		observers: make(map[Token]notificationObserver),
	}
}

func (c *NotificationCenter) AddObserver(name NotificationName, object interface{}, fn func(Notification)) Token {
	if fn == nil {
		panic(RuntimeError("avrx: observer for notification " + string(name) + " is nil"))
	}
	token := NewToken()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers[token] = notificationObserver{
		name:   name,
		object: object,
		fn:     fn,
	}
	return token
}

// RemoveObserver is a no-op for unknown or already removed tokens.
func (c *NotificationCenter) RemoveObserver(token Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.observers, token)
}

func (c *NotificationCenter) Post(name NotificationName, object interface{}, userInfo map[string]interface{}) {
	n := Notification{
		Name:     name,
		Object:   object,
		UserInfo: userInfo,
	}

	c.mu.RLock()
	targets := make([]func(Notification), 0, len(c.observers))
	for _, obs := range c.observers {
		if n.Matches(obs.name, obs.object) {
			targets = append(targets, obs.fn)
		}
	}
	c.mu.RUnlock()

	for _, fn := range targets {
		fn(n)
	}
}

func (c *NotificationCenter) ObserverCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.observers)
}
