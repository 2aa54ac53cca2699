package listenerlist

type (
	changeListener interface {
		Changed(what string)
	}

	closeListener interface {
		Closed()
	}

	printer struct {
		id int
	}

	auditListener struct {
		Name  string `json:"name" yaml:"name"`
		Level int    `json:"level" yaml:"level"`
	}

	// sliceListener is not comparable.
	sliceListener []string

	// boxListener has a comparable type whose values may not be.
	boxListener struct {
		v any
	}

	// keyedListener is not comparable but defines its own equality.
	keyedListener struct {
		key  string
		tags []string
	}
)

func (p *printer) Changed(string) {}

func (p *printer) Closed() {}

func (a *auditListener) Changed(string) {}

func (a *auditListener) ListenerKind() string { return "audit" }

func (s sliceListener) Changed(string) {}

func (b boxListener) Changed(string) {}

func (k keyedListener) Changed(string) {}

func (k keyedListener) Equal(other any) bool {
	o, ok := other.(keyedListener)
	return ok && o.key == k.key
}
