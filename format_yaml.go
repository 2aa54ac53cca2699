package listenerlist

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type yamlFormat struct{}

func (yamlFormat) Name() string { return "yaml" }

func (yamlFormat) newWriter(w io.Writer) recordWriter {
	return &yamlRecordWriter{enc: yaml.NewEncoder(w)}
}

func (yamlFormat) newReader(r io.Reader) recordReader {
	return &yamlRecordReader{dec: yaml.NewDecoder(r)}
}

type yamlRecordWriter struct {
	enc *yaml.Encoder
}

func (w *yamlRecordWriter) write(category, kind string, listener any) error {
	return w.enc.Encode(struct {
		Category string `yaml:"category"`
		Kind     string `yaml:"kind"`
		Listener any    `yaml:"listener"`
	}{category, kind, listener})
}

func (w *yamlRecordWriter) end() error {
	if err := w.enc.Encode(nil); err != nil {
		return err
	}
	return w.enc.Close()
}

type yamlRecord struct {
	Category string    `yaml:"category"`
	Kind     string    `yaml:"kind"`
	Listener yaml.Node `yaml:"listener"`
}

type yamlRecordReader struct {
	dec *yaml.Decoder
}

func (r *yamlRecordReader) next() (*rawRecord, error) {
	var doc yaml.Node
	if err := r.dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrTruncatedStream
		}
		return nil, errors.Wrap(err, "malformed yaml record")
	}

	if len(doc.Content) == 0 {
		return nil, ErrTruncatedStream
	}
	if root := doc.Content[0]; root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		// a bare "---" at the end of a cut stream is an empty document, not
		// the terminator
		if root.Value == "" {
			return nil, ErrTruncatedStream
		}
		return nil, nil
	}

	var rec yamlRecord
	if err := doc.Decode(&rec); err != nil {
		return nil, errors.Wrap(err, "malformed yaml record")
	}
	return &rawRecord{
		category: rec.Category,
		kind:     rec.Kind,
		payload:  &yamlPayload{node: rec.Listener},
	}, nil
}

type yamlPayload struct {
	node yaml.Node
}

func (p *yamlPayload) decode(into any) error {
	return p.node.Decode(into)
}

func (p *yamlPayload) String() string {
	out, err := yaml.Marshal(&p.node)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
