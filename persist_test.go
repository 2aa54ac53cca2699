package listenerlist

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type persistFixture struct {
	changes *Category
	closes  *Category
	catalog *Catalog
}

func newPersistFixture(t *testing.T) persistFixture {
	t.Helper()

	f := persistFixture{
		changes: NewNamedCategory[changeListener]("change"),
		closes:  NewNamedCategory[closeListener]("close"),
		catalog: NewCatalog(),
	}
	require.NoError(t, f.catalog.RegisterCategory(f.changes))
	require.NoError(t, f.catalog.RegisterCategory(f.closes))
	require.NoError(t, RegisterListener[auditListener](f.catalog))
	return f
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	for _, format := range []Format{JSON, YAML} {
		t.Run(format.Name(), func(t *testing.T) {
			f := newPersistFixture(t)
			l := New()
			require.NoError(t, l.Add(f.changes, &auditListener{Name: "first", Level: 1}))
			require.NoError(t, l.Add(f.closes, &printer{id: 1}))
			require.NoError(t, l.Add(f.changes, &auditListener{Name: "second", Level: 2}))

			var buf bytes.Buffer
			require.NoError(t, l.Save(&buf, format))

			restored, err := Load(&buf, format, f.catalog)
			require.NoError(t, err)

			assert.Equal(t, []Entry{
				{Category: f.changes, Listener: &auditListener{Name: "first", Level: 1}},
				{Category: f.changes, Listener: &auditListener{Name: "second", Level: 2}},
			}, restored.Snapshot())
			assert.Equal(t, 0, restored.CountOf(f.closes))
		})
	}
}

func TestSaveEmptyList(t *testing.T) {
	for _, format := range []Format{JSON, YAML} {
		t.Run(format.Name(), func(t *testing.T) {
			var (
				l   List
				buf bytes.Buffer
			)
			require.NoError(t, l.Save(&buf, format))

			records, err := Inspect(&buf, format)
			require.NoError(t, err)
			assert.Empty(t, records)
		})
	}
}

func TestSaveJSONStream(t *testing.T) {
	f := newPersistFixture(t)
	l := New()
	require.NoError(t, l.Add(f.changes, &auditListener{Name: "a", Level: 3}))
	require.NoError(t, l.Add(f.changes, &printer{id: 1}))

	var buf bytes.Buffer
	require.NoError(t, l.Save(&buf, JSON))

	assert.Equal(t,
		`{"category":"change","kind":"audit","listener":{"name":"a","level":3}}`+"\n"+"null\n",
		buf.String(),
	)
}

func TestSaveLogsSkippedListeners(t *testing.T) {
	var logs, out bytes.Buffer
	l := New(WithLogger(NewWriterLogger(&logs)))
	changes := NewNamedCategory[changeListener]("change")
	require.NoError(t, l.Add(changes, &printer{id: 1}))

	require.NoError(t, l.Save(&out, YAML))

	assert.Contains(t, logs.String(), "not serializable")
	assert.Contains(t, logs.String(), "saved 0 of 1 listeners")
}

func TestRestoreReplacesExistingListeners(t *testing.T) {
	f := newPersistFixture(t)
	src := New()
	require.NoError(t, src.Add(f.changes, &auditListener{Name: "saved"}))

	var buf bytes.Buffer
	require.NoError(t, src.Save(&buf, YAML))

	dst := New()
	require.NoError(t, dst.Add(f.closes, &printer{id: 1}))
	require.NoError(t, dst.Restore(&buf, YAML, f.catalog))

	assert.Equal(t, []any{&auditListener{Name: "saved"}}, dst.Listeners(f.changes))
	assert.Equal(t, 0, dst.CountOf(f.closes))
}

func TestRestoreUnknownCategory(t *testing.T) {
	f := newPersistFixture(t)
	stream := `{"category":"missing","kind":"audit","listener":{}}` + "\nnull\n"

	l := New()
	p := &printer{id: 1}
	require.NoError(t, l.Add(f.closes, p))

	err := l.Restore(strings.NewReader(stream), JSON, f.catalog)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResolution))

	var unresolved *ErrUnresolved
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "missing", unresolved.Name)
	assert.Equal(t, "category", unresolved.What)

	// a failed restore leaves the list as it was
	assert.Equal(t, []Entry{{Category: f.closes, Listener: p}}, l.Snapshot())
}

func TestRestoreUnknownKind(t *testing.T) {
	f := newPersistFixture(t)
	stream := "category: change\nkind: other\nlistener: {}\n---\nnull\n"

	_, err := Load(strings.NewReader(stream), YAML, f.catalog)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResolution))
	assert.Contains(t, err.Error(), `unknown listener kind "other"`)
}

func TestRestoreRevalidatesCategory(t *testing.T) {
	resolver := &mockResolver{}
	closes := NewNamedCategory[closeListener]("close")
	resolver.On("ResolveCategory", "close").Return(closes, nil)
	resolver.On("NewListener", "audit").Return(&auditListener{}, nil)

	stream := `{"category":"close","kind":"audit","listener":{"name":"x"}}` + "\nnull\n"

	_, err := Load(strings.NewReader(stream), JSON, resolver)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	resolver.AssertExpectations(t)
}

func TestRestoreResolverError(t *testing.T) {
	resolver := &mockResolver{}
	boom := errors.New("boom")
	resolver.On("ResolveCategory", mock.Anything).Return(nil, boom)

	stream := "category: change\nkind: audit\nlistener:\n  name: x\n---\nnull\n"

	_, err := Load(strings.NewReader(stream), YAML, resolver)
	assert.True(t, errors.Is(err, boom))
	resolver.AssertNotCalled(t, "NewListener", mock.Anything)
}

func TestRestoreTruncatedStream(t *testing.T) {
	f := newPersistFixture(t)
	src := New()
	require.NoError(t, src.Add(f.changes, &auditListener{Name: "a"}))

	for _, format := range []Format{JSON, YAML} {
		t.Run(format.Name(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, src.Save(&buf, format))

			full := buf.String()
			cut := strings.LastIndex(full, "null")
			require.Greater(t, cut, 0)

			_, err := Load(strings.NewReader(full[:cut]), format, f.catalog)
			assert.True(t, errors.Is(err, ErrTruncatedStream))

			_, err = Load(strings.NewReader(""), format, f.catalog)
			assert.True(t, errors.Is(err, ErrTruncatedStream))
		})
	}
}

func TestRestoreMalformedStream(t *testing.T) {
	f := newPersistFixture(t)

	_, err := Load(strings.NewReader("{not json"), JSON, f.catalog)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTruncatedStream))

	_, err = Load(strings.NewReader(`{"category":"change","kind":"audit","listener":{"level":"high"}}`), JSON, f.catalog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot decode listener of kind "audit"`)
}

func TestInspect(t *testing.T) {
	f := newPersistFixture(t)
	l := New()
	require.NoError(t, l.Add(f.changes, &auditListener{Name: "a", Level: 1}))
	require.NoError(t, l.Add(f.closes, &printer{id: 1}))

	var jsonBuf, yamlBuf bytes.Buffer
	require.NoError(t, l.Save(&jsonBuf, JSON))
	require.NoError(t, l.Save(&yamlBuf, YAML))

	records, err := Inspect(&jsonBuf, JSON)
	require.NoError(t, err)
	assert.Equal(t, []Record{{Category: "change", Kind: "audit", Listener: `{"name":"a","level":1}`}}, records)

	records, err = Inspect(&yamlBuf, YAML)
	require.NoError(t, err)
	assert.Equal(t, []Record{{Category: "change", Kind: "audit", Listener: "name: a\nlevel: 1"}}, records)
}

func TestFormatByName(t *testing.T) {
	for name, want := range map[string]Format{"json": JSON, "YAML": YAML, "yml": YAML} {
		got, err := FormatByName(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := FormatByName("xml")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
