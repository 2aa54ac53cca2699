package listenerlist

import (
	"reflect"
)

// Equaler lets a listener define its own equality for Remove. Listeners that
// do not implement it are compared with ==.
type Equaler interface {
	Equal(other any) bool
}

// isAbsent reports whether l is a nil interface or a typed nil.
func isAbsent(l any) bool {
	if l == nil {
		return true
	}
	v := reflect.ValueOf(l)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// isComparable reports whether l can take part in Remove lookups. The value
// is checked, not just its type: a struct with an interface field holding a
// slice has a comparable type but panics under ==.
func isComparable(l any) bool {
	if _, ok := l.(Equaler); ok {
		return true
	}
	return reflect.ValueOf(l).Comparable()
}

func sameListener(stored, l any) bool {
	if eq, ok := stored.(Equaler); ok {
		return eq.Equal(l)
	}
	if reflect.TypeOf(stored) != reflect.TypeOf(l) {
		return false
	}
	return stored == l
}

// checkListener validates a non-absent listener against c.
func checkListener(c *Category, l any) error {
	if c == nil {
		return newErrListenerMismatch(l, c, "nil category")
	}
	if !c.Accepts(l) {
		return newErrListenerMismatch(l, c, "")
	}
	if !isComparable(l) {
		return newErrListenerMismatch(l, c, "value of type "+reflect.TypeOf(l).String()+" is not comparable")
	}
	return nil
}
