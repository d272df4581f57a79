package media

import (
	"sync"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Bus fans events out to subscribers. Element implementations embed it.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Event)
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Event)) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[int]func(Event))
	}

	id := b.next
	b.next++
	b.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
		})
	}
}

// Emit delivers ev to every current subscriber in registration order.
func (b *Bus) Emit(ev Event) {
	b.mu.Lock()
	ids := lo.Keys(b.subs)
	slices.Sort(ids)
	fns := lo.Map(ids, func(id int, _ int) func(Event) {
		return b.subs[id]
	})
	b.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Subscribers returns the number of registered subscribers.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

