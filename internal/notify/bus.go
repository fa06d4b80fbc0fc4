package notify

import (
	"context"
	"sync"
)

// Bus is the in-process Publisher. Subscriptions are keyed by
// (entityType, id); subscribing with an empty id receives every change for
// that entity type. Delivery is best-effort: a subscriber whose buffer is
// full misses the change and is expected to re-read state instead.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]*subscription
}

type subscription struct {
	key string
	ch  chan Change
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]*subscription)}
}

func subKey(entityType, id string) string {
	return entityType + "/" + id
}

// Subscribe registers interest in one record, or in a whole entity type when
// id is empty. The returned cancel func removes the subscription and closes
// the channel; it is safe to call more than once.
func (b *Bus) Subscribe(entityType, id string, buffer int) (<-chan Change, func()) {
	if buffer < 1 {
		buffer = 1
	}
	sub := &subscription{key: subKey(entityType, id), ch: make(chan Change, buffer)}

	b.mu.Lock()
	b.subs[sub.key] = append(b.subs[sub.key], sub)
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			registered := b.subs[sub.key]
			for i, candidate := range registered {
				if candidate == sub {
					b.subs[sub.key] = append(registered[:i:i], registered[i+1:]...)
					break
				}
			}
			if len(b.subs[sub.key]) == 0 {
				delete(b.subs, sub.key)
			}
			// Closing under the write lock cannot race a send: sends only
			// happen under the read lock.
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

func (b *Bus) Publish(ctx context.Context, change Change) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	b.deliver(b.subs[subKey(change.EntityType, change.ID)], change)
	b.deliver(b.subs[subKey(change.EntityType, "")], change)
	return nil
}

func (b *Bus) deliver(subs []*subscription, change Change) {
	for _, sub := range subs {
		select {
		case sub.ch <- change:
		default:
		}
	}
}
