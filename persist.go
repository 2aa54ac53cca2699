package listenerlist

import (
	"io"

	"github.com/pkg/errors"
)

type (
	// Serializable marks listeners that Save persists. ListenerKind names the
	// factory a Resolver uses to rebuild the listener on load; the listener
	// itself is encoded with the stream's Format.
	Serializable interface {
		ListenerKind() string
	}

	// Resolver maps persisted names back to live values when a stream is
	// loaded.
	Resolver interface {
		// ResolveCategory returns the category token persisted under name.
		ResolveCategory(name string) (*Category, error)
		// NewListener returns a fresh listener of the given kind for the
		// persisted payload to be decoded into.
		NewListener(kind string) (any, error)
	}

	// Record is a persisted entry as read by Inspect, with the listener
	// payload rendered as text.
	Record struct {
		Category string
		Kind     string
		Listener string
	}

	recordWriter interface {
		write(category, kind string, listener any) error
		end() error
	}

	recordReader interface {
		// next returns nil at the terminator.
		next() (*rawRecord, error)
	}

	rawRecord struct {
		category string
		kind     string
		payload  payload
	}

	payload interface {
		decode(into any) error
		String() string
	}
)

// Save writes every Serializable listener of l to w, followed by the stream
// terminator. Other listeners are skipped.
func (l *List) Save(w io.Writer, format Format) error {
	entries := l.Snapshot()
	rw := format.newWriter(w)
	logger := l.log().WithField("format", format.Name())

	saved := 0
	for _, e := range entries {
		s, ok := e.Listener.(Serializable)
		if !ok {
			logger.Debugf("skipping listener %v of category %s: not serializable", e.Listener, e.Category)
			continue
		}
		if err := rw.write(e.Category.Name(), s.ListenerKind(), e.Listener); err != nil {
			return errors.Wrapf(err, "cannot write listener of category %s", e.Category)
		}
		saved++
	}

	if err := rw.end(); err != nil {
		return errors.Wrap(err, "cannot terminate listener stream")
	}

	logger.Debugf("saved %d of %d listeners", saved, len(entries))
	return nil
}

// Restore replaces the listeners of l with those read from r. Every entry is
// registered through Add, so each listener is checked against its resolved
// category again. If anything fails l is left untouched.
//
// The stream is read without holding the mutation lock and the result is
// installed in one swap, replacing the whole list: Add, Remove or Clear calls
// that complete while Restore is reading are overwritten.
func (l *List) Restore(r io.Reader, format Format, resolver Resolver) error {
	fresh, err := load(r, format, resolver, l.log())
	if err != nil {
		return err
	}

	l.replace(fresh.Snapshot())
	l.log().WithField("format", format.Name()).Infof("restored %d listeners", fresh.Count())
	return nil
}

// Load builds a new List from a stream written by Save.
func Load(r io.Reader, format Format, resolver Resolver, opts ...Option) (*List, error) {
	l := New(opts...)
	if err := l.Restore(r, format, resolver); err != nil {
		return nil, err
	}
	return l, nil
}

func load(r io.Reader, format Format, resolver Resolver, logger Logger) (*List, error) {
	fresh := New(WithLogger(logger))
	rr := format.newReader(r)

	for {
		rec, err := rr.next()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return fresh, nil
		}

		c, err := resolver.ResolveCategory(rec.category)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot resolve category %q", rec.category)
		}

		listener, err := resolver.NewListener(rec.kind)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot resolve listener kind %q", rec.kind)
		}

		if err := rec.payload.decode(listener); err != nil {
			return nil, errors.Wrapf(err, "cannot decode listener of kind %q", rec.kind)
		}

		if err := fresh.Add(c, listener); err != nil {
			return nil, err
		}
	}
}

// Inspect reads a stream written by Save without resolving it.
func Inspect(r io.Reader, format Format) ([]Record, error) {
	rr := format.newReader(r)

	var records []Record
	for {
		rec, err := rr.next()
		if err != nil {
			return records, err
		}
		if rec == nil {
			return records, nil
		}
		records = append(records, Record{
			Category: rec.category,
			Kind:     rec.kind,
			Listener: rec.payload.String(),
		})
	}
}
