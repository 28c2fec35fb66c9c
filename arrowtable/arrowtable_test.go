package arrowtable

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/fcs"
	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/event"
	"github.com/arloliu/fcs/internal/fcstest"
)

func TestDecodeTable_Float32(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := &fcstest.Builder{
		Channels: []fcstest.Channel{
			{Name: "FSC-A", Label: "Forward scatter", Range: "262144"},
			{Name: "FSC-A"},
			{Name: "Time"},
		},
		Events: fcstest.Events(7, 3),
		Extra:  [][2]string{{"$CYT", "Aria"}},
	}
	path := filepath.Join(t.TempDir(), "sample.fcs")
	require.NoError(t, b.WriteFile(path))

	adapter, err := New(WithAllocator(mem))
	require.NoError(t, err)

	rec, res, err := fcs.DecodeTable[arrow.Record](path, adapter)
	require.NoError(t, err)
	defer rec.Release()

	require.Equal(t, int64(7), rec.NumRows())
	require.Equal(t, int64(3), rec.NumCols())

	schema := rec.Schema()
	require.Equal(t, "FSC-A", schema.Field(0).Name)
	require.Equal(t, "FSC-A", schema.Field(1).Name)
	require.Equal(t, arrow.PrimitiveTypes.Float32, schema.Field(2).Type)
	require.False(t, schema.Field(0).Nullable)

	label, ok := schema.Field(0).Metadata.GetValue(FieldLabel)
	require.True(t, ok)
	require.Equal(t, "Forward scatter", label)
	rng, ok := schema.Field(0).Metadata.GetValue(FieldRange)
	require.True(t, ok)
	require.Equal(t, "262144", rng)

	md := schema.Metadata()
	cyt, ok := md.GetValue("$CYT")
	require.True(t, ok)
	require.Equal(t, "Aria", cyt)
	tot, ok := md.GetValue("$TOT")
	require.True(t, ok)
	require.Equal(t, "7", tot)
	require.Negative(t, md.FindKey("$DATE"))

	for j := 0; j < 3; j++ {
		col := rec.Column(j).(*array.Float32)
		for i := 0; i < 7; i++ {
			require.Equal(t, res.Events.At(i, j), float64(col.Value(i)))
		}
	}
}

func TestTable_Float64(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	values := []float64{math.Pi, 1, -math.MaxFloat64, 2}
	m, err := event.NewFloat64Matrix(2, 2, values)
	require.NoError(t, err)

	adapter, err := New(WithAllocator(mem), WithMetadataKeys())
	require.NoError(t, err)

	rec, err := adapter.Table(m, []string{"a", "b"}, nil)
	require.NoError(t, err)
	defer rec.Release()

	require.Equal(t, arrow.PrimitiveTypes.Float64, rec.Schema().Field(0).Type)
	require.Equal(t, []float64{math.Pi, -math.MaxFloat64}, rec.Column(0).(*array.Float64).Float64Values())
	require.Equal(t, []float64{1, 2}, rec.Column(1).(*array.Float64).Float64Values())
	require.Equal(t, 0, rec.Schema().Metadata().Len())
}

func TestTable_ChannelMismatch(t *testing.T) {
	m, err := event.NewFloat32Matrix(1, 2, []float32{1, 2})
	require.NoError(t, err)

	adapter, err := New()
	require.NoError(t, err)

	_, err = adapter.Table(m, []string{"only"}, nil)
	require.ErrorIs(t, err, errs.ErrMalformedData)
}

func TestTable_Empty(t *testing.T) {
	m, err := event.NewFloat32Matrix(0, 2, nil)
	require.NoError(t, err)

	adapter, err := New()
	require.NoError(t, err)

	rec, err := adapter.Table(m, []string{"a", "b"}, nil)
	require.NoError(t, err)
	defer rec.Release()

	require.Equal(t, int64(0), rec.NumRows())
	require.Equal(t, int64(2), rec.NumCols())
}

func TestNew_NilAllocator(t *testing.T) {
	_, err := New(WithAllocator(nil))
	require.Error(t, err)
}
