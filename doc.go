// Package listenerlist keeps the listeners of an event source in one place.
//
// A source embeds a List and defines one Category per listener interface it
// notifies. The List stores (category, listener) pairs in registration order
// and costs nothing per category until a listener is added. Mutations are
// serialized and copy-on-write; reads are lock-free and see immutable
// snapshots, so a fire method can iterate without holding any lock:
//
//	type Source struct {
//		listeners listenerlist.List
//	}
//
//	var changeListeners = listenerlist.Define[ChangeListener]("change")
//
//	func (s *Source) AddChangeListener(l ChangeListener) error {
//		return changeListeners.Add(&s.listeners, l)
//	}
//
//	func (s *Source) fireChanged(ev ChangeEvent) {
//		changeListeners.Fire(&s.listeners, func(l ChangeListener) {
//			l.Changed(ev)
//		})
//	}
//
// Listeners implementing Serializable can be written with Save and read back
// with Restore or Load, given a Resolver such as Catalog that maps persisted
// names back to categories and listener factories.
package listenerlist
