package events

import "sync"

// Handler consumes one event.
type Handler func(Event)

type subscription struct {
	fn   Handler
	once bool
}

// Bus fans events out to subscribed handlers. Handlers run on the
// dispatching goroutine, mirroring the single event loop the page side has;
// one-shot subscriptions remove themselves after their first delivery.
type Bus struct {
	mu     sync.Mutex
	subs   map[Kind]map[int]*subscription
	nextID int
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		subs: make(map[Kind]map[int]*subscription),
	}
}

// Subscribe registers fn for every event of kind. The returned cancel
// function removes the subscription; calling it more than once is harmless.
func (b *Bus) Subscribe(kind Kind, fn Handler) func() {
	return b.add(kind, fn, false)
}

// SubscribeOnce registers fn for the next event of kind only
func (b *Bus) SubscribeOnce(kind Kind, fn Handler) func() {
	return b.add(kind, fn, true)
}

func (b *Bus) add(kind Kind, fn Handler, once bool) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID

	if b.subs[kind] == nil {
		b.subs[kind] = make(map[int]*subscription)
	}
	b.subs[kind][id] = &subscription{fn: fn, once: once}

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[kind], id)
	}
}

// Dispatch delivers ev to every handler subscribed to its kind. One-shot
// handlers are removed before their callback runs, so a handler re-dispatching
// on the bus cannot trigger itself again.
func (b *Bus) Dispatch(ev Event) {
	b.mu.Lock()
	var fns []Handler
	for id, sub := range b.subs[ev.Kind] {
		fns = append(fns, sub.fn)
		if sub.once {
			delete(b.subs[ev.Kind], id)
		}
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
