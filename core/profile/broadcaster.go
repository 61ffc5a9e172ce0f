package profile

import "sync"

// Broadcaster tells subscribers that the profile changed. The signal carries no payload:
// subscribers re-read what they need.
type Broadcaster struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[int]func()
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subscribers: make(map[int]func())}
}

// Subscribe registers fn and returns the func that removes it.
func (b *Broadcaster) Subscribe(fn func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subscribers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subscribers, id)
			b.mu.Unlock()
		})
	}
}

// Notify calls every subscriber synchronously, in no particular order.
func (b *Broadcaster) Notify() {
	b.mu.RLock()
	fns := make([]func(), 0, len(b.subscribers))
	for _, fn := range b.subscribers {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
