package listenerlist

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrResolution      = errors.New("cannot resolve persisted name")
	ErrTruncatedStream = errors.New("listener stream ended before terminator")
)

// ErrListenerMismatch is returned by Add and Remove when a listener cannot
// be registered under the given category.
type ErrListenerMismatch struct {
	Listener any
	Category *Category
	reason   string
}

func (e ErrListenerMismatch) Error() string {
	if e.reason != "" {
		return fmt.Sprintf("listener %v: %s", e.Listener, e.reason)
	}
	return fmt.Sprintf("listener %v is not of type %s", e.Listener, e.Category)
}

func (e ErrListenerMismatch) Unwrap() error { return ErrInvalidArgument }

func newErrListenerMismatch(listener any, c *Category, reason string) *ErrListenerMismatch {
	return &ErrListenerMismatch{
		Listener: listener,
		Category: c,
		reason:   reason,
	}
}

// ErrUnresolved reports a persisted category or listener kind that the
// Resolver does not know about.
type ErrUnresolved struct {
	What string
	Name string
}

func (e ErrUnresolved) Error() string {
	return fmt.Sprintf("unknown %s %q", e.What, e.Name)
}

func (e ErrUnresolved) Unwrap() error { return ErrResolution }
