package listenerlist

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// noEntries is shared by every empty List.
var noEntries = []Entry{}

// Entry is one (category, listener) pair.
type Entry struct {
	Category *Category
	Listener any
}

func (e Entry) String() string {
	return fmt.Sprintf("type %s listener %v", e.Category, e.Listener)
}

// List holds the listeners of every category for the object that embeds it.
// It is cheap when empty: no per-category storage exists until a listener is
// added. The zero value is an empty List ready to use.
//
// Add, Remove and Clear are serialized. Every mutation installs a new slice
// rather than editing the current one, so readers never lock and a slice
// returned by Snapshot never changes afterwards.
type List struct {
	mu      sync.Mutex
	entries atomic.Pointer[[]Entry]
	logger  Logger
}

type Option func(*List)

func WithLogger(logger Logger) Option {
	return func(l *List) {
		l.logger = logger
	}
}

// New creates an empty List.
func New(opts ...Option) *List {
	l := &List{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *List) log() Logger {
	if l.logger == nil {
		return noopLogger{}
	}
	return l.logger
}

func (l *List) load() []Entry {
	if p := l.entries.Load(); p != nil {
		return *p
	}
	return noEntries
}

func (l *List) store(entries []Entry) {
	if len(entries) == 0 {
		entries = noEntries
	}
	l.entries.Store(&entries)
}

// Snapshot returns the current (category, listener) pairs in registration
// order. For performance the internal slice is returned as is: callers must
// not modify it. The result is never nil.
func (l *List) Snapshot() []Entry {
	return l.load()
}

// Listeners returns the listeners registered under exactly c, most recently
// added first.
func (l *List) Listeners(c *Category) []any {
	entries := l.load()
	result := make([]any, 0, countOf(entries, c))
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Category == c {
			result = append(result, entries[i].Listener)
		}
	}
	return result
}

// Count returns the total number of registered listeners.
func (l *List) Count() int {
	return len(l.load())
}

// CountOf returns the number of listeners registered under c.
func (l *List) CountOf(c *Category) int {
	return countOf(l.load(), c)
}

func countOf(entries []Entry, c *Category) int {
	n := 0
	for i := range entries {
		if entries[i].Category == c {
			n++
		}
	}
	return n
}

// Add registers listener under c. A nil listener is ignored. It fails with
// ErrInvalidArgument when listener is not assignable to c's type.
func (l *List) Add(c *Category, listener any) error {
	if isAbsent(listener) {
		return nil
	}
	if err := checkListener(c, listener); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cur := l.load()
	next := make([]Entry, len(cur)+1)
	copy(next, cur)
	next[len(cur)] = Entry{Category: c, Listener: listener}
	l.store(next)

	l.log().WithField("category", c.Name()).Debugf("listener added, %d registered", len(next))
	return nil
}

// Remove unregisters the most recently added pair matching c and listener.
// Removing a listener that is not registered is a no-op. Argument checks are
// those of Add.
func (l *List) Remove(c *Category, listener any) error {
	if isAbsent(listener) {
		return nil
	}
	if err := checkListener(c, listener); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cur := l.load()
	index := -1
	for i := len(cur) - 1; i >= 0; i-- {
		if cur[i].Category == c && sameListener(cur[i].Listener, listener) {
			index = i
			break
		}
	}
	if index == -1 {
		return nil
	}

	next := make([]Entry, 0, len(cur)-1)
	next = append(next, cur[:index]...)
	next = append(next, cur[index+1:]...)
	l.store(next)

	l.log().WithField("category", c.Name()).Debugf("listener removed, %d registered", len(next))
	return nil
}

// Clear removes every listener.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.store(nil)
}

// replace installs entries wholesale, used by Restore.
func (l *List) replace(entries []Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.store(entries)
}

func (l *List) String() string {
	entries := l.load()

	var sb strings.Builder
	fmt.Fprintf(&sb, "EventListenerList: %d listeners:", len(entries))
	for _, e := range entries {
		sb.WriteString(" ")
		sb.WriteString(e.String())
	}
	return sb.String()
}
