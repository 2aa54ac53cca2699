package listenerlist

import (
	"sync"

	"github.com/pkg/errors"
)

type (
	// ListenerFactory returns a fresh listener for a persisted payload to be
	// decoded into. It usually returns a pointer.
	ListenerFactory func() any

	// Catalog is a Resolver backed by explicit lookup tables. The code that
	// defines categories and serializable listeners registers them once;
	// the tables are only consulted when a stream is loaded.
	Catalog struct {
		categories map[string]*Category
		kinds      map[string]ListenerFactory
		lock       sync.RWMutex
	}
)

func NewCatalog() *Catalog {
	return &Catalog{
		categories: make(map[string]*Category),
		kinds:      make(map[string]ListenerFactory),
	}
}

// RegisterCategory makes c resolvable by its name. Registering a second
// category under a taken name fails.
func (c *Catalog) RegisterCategory(category *Category) error {
	if category == nil {
		return errors.Wrap(ErrInvalidArgument, "nil category")
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	if prev, found := c.categories[category.Name()]; found {
		if prev == category {
			return nil
		}
		return errors.Wrapf(ErrInvalidArgument, "category %q already registered", category.Name())
	}
	c.categories[category.Name()] = category
	return nil
}

// RegisterKind makes listeners of the given kind loadable.
func (c *Catalog) RegisterKind(kind string, factory ListenerFactory) error {
	if factory == nil {
		return errors.Wrapf(ErrInvalidArgument, "nil factory for kind %q", kind)
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	if _, found := c.kinds[kind]; found {
		return errors.Wrapf(ErrInvalidArgument, "listener kind %q already registered", kind)
	}
	c.kinds[kind] = factory
	return nil
}

// RegisterListener registers T under the kind its zero value reports, with
// new(T) as the factory.
func RegisterListener[T any, PT interface {
	*T
	Serializable
}](c *Catalog) error {
	var zero T
	return c.RegisterKind(PT(&zero).ListenerKind(), func() any { return PT(new(T)) })
}

func (c *Catalog) ResolveCategory(name string) (*Category, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	category, found := c.categories[name]
	if !found {
		return nil, &ErrUnresolved{What: "category", Name: name}
	}
	return category, nil
}

func (c *Catalog) NewListener(kind string) (any, error) {
	c.lock.RLock()
	factory, found := c.kinds[kind]
	c.lock.RUnlock()

	if !found {
		return nil, &ErrUnresolved{What: "listener kind", Name: kind}
	}
	return factory(), nil
}
