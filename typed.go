package listenerlist

import (
	"reflect"
)

// Typed is a category whose listener type is known at compile time. Emitters
// keep one per listener interface and expose add/remove methods built on it:
//
//	var fooListeners = listenerlist.Define[FooListener]("foo")
//
//	func (s *Source) AddFooListener(l FooListener) error {
//		return fooListeners.Add(&s.listeners, l)
//	}
//
//	func (s *Source) fireFoo(ev FooEvent) {
//		fooListeners.Fire(&s.listeners, func(l FooListener) { l.Foo(ev) })
//	}
type Typed[T any] struct {
	category *Category
}

// Define creates a Typed category named name.
func Define[T any](name string) Typed[T] {
	return Typed[T]{category: NewNamedCategory[T](name)}
}

// TypedOf wraps an existing category. It fails when c was not created for T.
func TypedOf[T any](c *Category) (Typed[T], error) {
	var zero Typed[T]
	if c == nil || c.typ != reflect.TypeFor[T]() {
		return zero, newErrListenerMismatch(nil, c, "category does not hold the requested listener type")
	}
	return Typed[T]{category: c}, nil
}

func (t Typed[T]) Category() *Category {
	return t.category
}

func (t Typed[T]) Add(l *List, listener T) error {
	return l.Add(t.category, listener)
}

func (t Typed[T]) Remove(l *List, listener T) error {
	return l.Remove(t.category, listener)
}

// Listeners returns the listeners of t in l, most recently added first.
func (t Typed[T]) Listeners(l *List) []T {
	entries := l.Snapshot()
	result := make([]T, 0, countOf(entries, t.category))
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Category == t.category {
			result = append(result, entries[i].Listener.(T))
		}
	}
	return result
}

func (t Typed[T]) Count(l *List) int {
	return l.CountOf(t.category)
}

// Fire calls fn for every listener of t, walking a single snapshot from the
// most recently added entry to the first. Listeners added or removed by fn
// take effect on the next Fire.
func (t Typed[T]) Fire(l *List, fn func(T)) {
	entries := l.Snapshot()
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Category == t.category {
			fn(entries[i].Listener.(T))
		}
	}
}
