// Package arrowtable converts decoded FCS events into Apache Arrow records.
//
// The adapter plugs into fcs.DecodeTable:
//
//	rec, res, err := fcs.DecodeTable("sample.fcs", arrowtable.New())
//	if err != nil {
//	    return err
//	}
//	defer rec.Release()
//
// Each channel becomes one non-nullable column named after $PnN, typed Float32 or
// Float64 after the file's $DATATYPE. Duplicate channel names are kept as duplicate
// fields. Selected TEXT keywords are copied into the schema metadata, and each field
// carries its $PnS label and $PnR range when present.
package arrowtable

import (
	"errors"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/arloliu/fcs"
	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/event"
	"github.com/arloliu/fcs/format"
	"github.com/arloliu/fcs/internal/options"
	"github.com/arloliu/fcs/meta"
)

// Field metadata keys.
const (
	FieldLabel = "fcs.label"
	FieldRange = "fcs.range"
)

// DefaultMetadataKeys are the TEXT keywords copied into the schema metadata unless
// WithMetadataKeys overrides them. Absent keywords are skipped.
var DefaultMetadataKeys = []string{meta.KeyPar, meta.KeyTot, "$CYT", "$DATE", "$BTIM", "$ETIM", "$FIL"}

// Adapter builds arrow.Record values from event matrices.
type Adapter struct {
	mem  memory.Allocator
	keys []string
}

var _ fcs.TableAdapter[arrow.Record] = (*Adapter)(nil)

// Option configures an Adapter.
type Option = options.Option[*Adapter]

// New creates an adapter using the Go allocator and DefaultMetadataKeys.
func New(opts ...Option) (*Adapter, error) {
	a := &Adapter{
		mem:  memory.NewGoAllocator(),
		keys: DefaultMetadataKeys,
	}
	if err := options.Apply(a, opts...); err != nil {
		return nil, err
	}

	return a, nil
}

// WithAllocator sets the allocator for column buffers.
func WithAllocator(mem memory.Allocator) Option {
	return options.New(func(a *Adapter) error {
		if mem == nil {
			return errors.New("arrowtable: nil allocator")
		}
		a.mem = mem

		return nil
	})
}

// WithMetadataKeys replaces the TEXT keywords copied into the schema metadata.
func WithMetadataKeys(keys ...string) Option {
	return options.NoError(func(a *Adapter) {
		a.keys = append([]string(nil), keys...)
	})
}

// Table builds a record with one column per channel. The caller must Release it.
//
// Returns:
//   - arrow.Record: Record with events.Rows() rows and events.Cols() columns
//   - error: errs.ErrMalformedData when channels does not match the matrix width
func (a *Adapter) Table(events *event.Matrix, channels []string, metadata *meta.Store) (arrow.Record, error) {
	if len(channels) != events.Cols() {
		return nil, errs.MalformedData("%d channel names for %d matrix columns", len(channels), events.Cols())
	}

	dtype := arrow.DataType(arrow.PrimitiveTypes.Float32)
	if events.Kind() == format.DataTypeDouble {
		dtype = arrow.PrimitiveTypes.Float64
	}

	var descriptors []meta.Channel
	if metadata != nil {
		descriptors = metadata.Channels()
	}

	fields := make([]arrow.Field, len(channels))
	for j, name := range channels {
		fields[j] = arrow.Field{Name: name, Type: dtype, Nullable: false}
		if j < len(descriptors) {
			fields[j].Metadata = fieldMetadata(descriptors[j])
		}
	}
	schema := arrow.NewSchema(fields, a.schemaMetadata(metadata))

	cols := make([]arrow.Array, 0, len(channels))
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()

	for j := range channels {
		cols = append(cols, a.column(events, j))
	}

	return array.NewRecord(schema, cols, int64(events.Rows())), nil
}

func (a *Adapter) column(events *event.Matrix, j int) arrow.Array {
	rows, stride := events.Rows(), events.Cols()

	if events.Kind() == format.DataTypeDouble {
		b := array.NewFloat64Builder(a.mem)
		defer b.Release()

		b.Reserve(rows)
		values := events.Float64s()
		for i := range rows {
			b.UnsafeAppend(values[i*stride+j])
		}

		return b.NewArray()
	}

	b := array.NewFloat32Builder(a.mem)
	defer b.Release()

	b.Reserve(rows)
	values := events.Float32s()
	for i := range rows {
		b.UnsafeAppend(values[i*stride+j])
	}

	return b.NewArray()
}

func (a *Adapter) schemaMetadata(store *meta.Store) *arrow.Metadata {
	if store == nil {
		return nil
	}

	var keys, values []string
	for _, key := range a.keys {
		if v, ok := store.Get(key); ok {
			keys = append(keys, meta.NormalizeKey(key))
			values = append(values, v)
		}
	}
	if len(keys) == 0 {
		return nil
	}

	md := arrow.NewMetadata(keys, values)

	return &md
}

func fieldMetadata(ch meta.Channel) arrow.Metadata {
	var keys, values []string
	if ch.Label != "" {
		keys = append(keys, FieldLabel)
		values = append(values, ch.Label)
	}
	if ch.Range != 0 {
		keys = append(keys, FieldRange)
		values = append(values, strconv.FormatFloat(ch.Range, 'g', -1, 64))
	}

	return arrow.NewMetadata(keys, values)
}
