package listenerlist

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

type jsonFormat struct{}

func (jsonFormat) Name() string { return "json" }

func (jsonFormat) newWriter(w io.Writer) recordWriter {
	return &jsonRecordWriter{enc: json.NewEncoder(w)}
}

func (jsonFormat) newReader(r io.Reader) recordReader {
	return &jsonRecordReader{dec: json.NewDecoder(r)}
}

type jsonRecordWriter struct {
	enc *json.Encoder
}

func (w *jsonRecordWriter) write(category, kind string, listener any) error {
	return w.enc.Encode(struct {
		Category string `json:"category"`
		Kind     string `json:"kind"`
		Listener any    `json:"listener"`
	}{category, kind, listener})
}

func (w *jsonRecordWriter) end() error {
	return w.enc.Encode(nil)
}

type jsonRecord struct {
	Category string          `json:"category"`
	Kind     string          `json:"kind"`
	Listener json.RawMessage `json:"listener"`
}

type jsonRecordReader struct {
	dec *json.Decoder
}

func (r *jsonRecordReader) next() (*rawRecord, error) {
	var rec *jsonRecord
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrTruncatedStream
		}
		return nil, errors.Wrap(err, "malformed json record")
	}
	if rec == nil {
		return nil, nil
	}
	return &rawRecord{
		category: rec.Category,
		kind:     rec.Kind,
		payload:  jsonPayload(rec.Listener),
	}, nil
}

type jsonPayload json.RawMessage

func (p jsonPayload) decode(into any) error {
	return json.Unmarshal(p, into)
}

func (p jsonPayload) String() string {
	return string(p)
}
