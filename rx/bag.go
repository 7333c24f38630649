package rx

import "sync"

// Bag owns a set of live subscriptions so that their lifetime is bound to
// the bag's owner. The zero value is ready to use.
type Bag struct {
	mu    sync.Mutex
	items []Cancellable
}

func (b *Bag) Add(c Cancellable) {
	if c == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, c)
}

func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// CancelAll cancels every stored item and empties the bag.
func (b *Bag) CancelAll() {
	b.mu.Lock()
	items := b.items
	b.items = nil
	b.mu.Unlock()

	for _, c := range items {
		c.Cancel()
	}
}
