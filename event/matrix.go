package event

import (
	"github.com/arloliu/fcs/encoding"
	"github.com/arloliu/fcs/endian"
	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/format"
	"github.com/arloliu/fcs/internal/hash"
)

// Matrix is an event-major table of decoded values.
//
// Values are stored in the precision of the file: float32 for $DATATYPE=F and float64
// for $DATATYPE=D. Float32s and Float64s expose the backing slice of the matching precision.
type Matrix struct {
	rows int
	cols int
	kind format.DataType
	f32  []float32
	f64  []float64
}

// NewFloat32Matrix wraps values as a rows x cols float32 matrix without copying.
func NewFloat32Matrix(rows, cols int, values []float32) (*Matrix, error) {
	if err := checkShape(rows, cols, len(values)); err != nil {
		return nil, err
	}

	return &Matrix{rows: rows, cols: cols, kind: format.DataTypeFloat, f32: values}, nil
}

// NewFloat64Matrix wraps values as a rows x cols float64 matrix without copying.
func NewFloat64Matrix(rows, cols int, values []float64) (*Matrix, error) {
	if err := checkShape(rows, cols, len(values)); err != nil {
		return nil, err
	}

	return &Matrix{rows: rows, cols: cols, kind: format.DataTypeDouble, f64: values}, nil
}

func checkShape(rows, cols, n int) error {
	if rows < 0 || cols < 0 || rows*cols != n {
		return errs.MalformedData("%d values do not form a %dx%d matrix", n, rows, cols)
	}

	return nil
}

// Rows returns the number of events.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of channels.
func (m *Matrix) Cols() int { return m.cols }

// Kind returns the element type, format.DataTypeFloat or format.DataTypeDouble.
func (m *Matrix) Kind() format.DataType { return m.kind }

// At returns the value of channel j for event i, widened to float64.
// It panics if i or j is out of range.
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic("event: matrix index out of range")
	}

	k := i*m.cols + j
	if m.kind == format.DataTypeFloat {
		return float64(m.f32[k])
	}

	return m.f64[k]
}

// Row returns a copy of event i.
func (m *Matrix) Row(i int) []float64 {
	row := make([]float64, m.cols)
	for j := range row {
		row[j] = m.At(i, j)
	}

	return row
}

// Column returns a copy of channel j across all events.
func (m *Matrix) Column(j int) []float64 {
	col := make([]float64, m.rows)
	for i := range col {
		col[i] = m.At(i, j)
	}

	return col
}

// Float32s returns the backing values of a float32 matrix in event-major order, or nil
// for a float64 matrix. The slice must not be modified.
func (m *Matrix) Float32s() []float32 { return m.f32 }

// Float64s returns the backing values of a float64 matrix in event-major order, or nil
// for a float32 matrix. The slice must not be modified.
func (m *Matrix) Float64s() []float64 { return m.f64 }

// Fingerprint returns the XXH3 hash of the values encoded little-endian in event-major
// order. Matrices with bit-identical contents and the same precision share a fingerprint.
//
// Rows are streamed through one reusable encoder buffer, so the matrix is never
// re-encoded as a whole.
func (m *Matrix) Fingerprint() uint64 {
	if m.kind == format.DataTypeFloat {
		return fingerprintRows(m.f32, m.cols)
	}

	return fingerprintRows(m.f64, m.cols)
}

func fingerprintRows[T encoding.Float](values []T, cols int) uint64 {
	h := hash.NewFingerprinter()
	enc := encoding.NewNumericRawEncoder[T](endian.GetLittleEndianEngine())
	defer enc.Finish()

	step := max(cols, 1)
	for start := 0; start < len(values); start += step {
		enc.Reset()
		enc.WriteSlice(values[start:min(start+step, len(values))])
		_, _ = h.Write(enc.Bytes())
	}

	return h.Sum64()
}
