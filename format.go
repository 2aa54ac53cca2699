package listenerlist

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Format is the encoding of a persisted listener stream. A stream is a
// sequence of {category, kind, listener} records closed by a null record.
type Format interface {
	Name() string
	newWriter(w io.Writer) recordWriter
	newReader(r io.Reader) recordReader
}

var (
	// JSON writes one JSON value per line.
	JSON Format = jsonFormat{}
	// YAML writes one YAML document per record.
	YAML Format = yamlFormat{}
)

// FormatByName returns the Format called name ("json", "yaml" or "yml").
func FormatByName(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "unsupported format %q", name)
	}
}
