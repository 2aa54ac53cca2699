package listenerlist

import (
	"fmt"
	"sync"
)

// Handler receives the data of an emitted event.
type Handler[V any] interface {
	Handle(data V)
}

type funcHandler[V any] struct {
	fn func(V)
}

func (h *funcHandler[V]) Handle(data V) {
	h.fn(data)
}

// EventEmitter maps events (of type K) to handlers receiving data of type V.
// All handlers live in one List, under one category per event, so an emitter
// with many events and few handlers stays small.
type EventEmitter[K comparable, V any] struct {
	listeners  *List
	categories map[K]*Category
	lock       sync.RWMutex
}

// NewEventEmitter creates a new EventEmitter and returns a pointer to it.
func NewEventEmitter[K comparable, V any](opts ...Option) *EventEmitter[K, V] {
	return &EventEmitter[K, V]{
		listeners:  New(opts...),
		categories: make(map[K]*Category),
	}
}

func (e *EventEmitter[K, V]) category(event K, create bool) *Category {
	e.lock.RLock()
	c, found := e.categories[event]
	e.lock.RUnlock()
	if found || !create {
		return c
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	if c, found = e.categories[event]; !found {
		c = NewNamedCategory[Handler[V]](fmt.Sprint(event))
		e.categories[event] = c
	}
	return c
}

// Category returns the category backing event, or nil if nothing was ever
// registered for it.
func (e *EventEmitter[K, V]) Category(event K) *Category {
	return e.category(event, false)
}

// On registers a handler for the given event.
func (e *EventEmitter[K, V]) On(event K, handler Handler[V]) error {
	return e.listeners.Add(e.category(event, true), handler)
}

// OnFunc registers fn for the given event and returns the Handler wrapping
// it, which is what Off expects.
func (e *EventEmitter[K, V]) OnFunc(event K, fn func(V)) Handler[V] {
	if fn == nil {
		return nil
	}
	h := &funcHandler[V]{fn: fn}
	if err := e.On(event, h); err != nil {
		// a *funcHandler is non-nil, comparable and always a Handler[V]
		panic(err)
	}
	return h
}

// Off removes the most recent registration of handler for the given event.
func (e *EventEmitter[K, V]) Off(event K, handler Handler[V]) error {
	c := e.category(event, false)
	if c == nil {
		return nil
	}
	return e.listeners.Remove(c, handler)
}

// Emit calls every handler registered for the given event synchronously,
// the most recently registered first. Handlers registered or removed while
// Emit runs are picked up by the next call.
func (e *EventEmitter[K, V]) Emit(event K, data V) {
	c := e.category(event, false)
	if c == nil {
		return
	}

	entries := e.listeners.Snapshot()
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Category == c {
			entries[i].Listener.(Handler[V]).Handle(data)
		}
	}
}

// ListenerCount returns the number of handlers registered for event.
func (e *EventEmitter[K, V]) ListenerCount(event K) int {
	c := e.category(event, false)
	if c == nil {
		return 0
	}
	return e.listeners.CountOf(c)
}

// Listeners exposes the underlying List.
func (e *EventEmitter[K, V]) Listeners() *List {
	return e.listeners
}

// Close removes all handlers.
func (e *EventEmitter[K, V]) Close() {
	e.listeners.Clear()
}
