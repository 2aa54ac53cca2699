package listenerlist

import (
	"reflect"
)

// Category is an opaque token naming the role a listener plays. Categories
// match by identity only: two tokens created for the same type are distinct.
type Category struct {
	name    string
	typ     reflect.Type
	accepts func(any) bool
}

// NewCategory creates a category for listeners assignable to T. The name is
// derived from T's package path and type name.
func NewCategory[T any]() *Category {
	return NewNamedCategory[T](typeName(reflect.TypeFor[T]()))
}

// NewNamedCategory creates a category for listeners assignable to T under a
// stable name. The name is what Save persists and what a Resolver maps back
// to the token.
func NewNamedCategory[T any](name string) *Category {
	return &Category{
		name: name,
		typ:  reflect.TypeFor[T](),
		accepts: func(l any) bool {
			_, ok := l.(T)
			return ok
		},
	}
}

func (c *Category) Name() string {
	return c.name
}

// Type returns the listener type the category was created for.
func (c *Category) Type() reflect.Type {
	return c.typ
}

// Accepts reports whether l may be registered under c.
func (c *Category) Accepts(l any) bool {
	return c.accepts(l)
}

func (c *Category) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.name
}

func typeName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
