package encoding

import (
	"math"
	"slices"
	"unsafe"

	"github.com/arloliu/fcs/endian"
	"github.com/arloliu/fcs/internal/pool"
)

// SizeOf returns the width in bytes of T.
func SizeOf[T Float]() int {
	var zero T

	return int(unsafe.Sizeof(zero))
}

// NumericRawEncoder encodes float values in their IEEE-754 representation using
// the byte order of the endian engine.
type NumericRawEncoder[T Float] struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var (
	_ ColumnarEncoder[float32] = (*NumericRawEncoder[float32])(nil)
	_ ColumnarEncoder[float64] = (*NumericRawEncoder[float64])(nil)
)

// NewNumericRawEncoder creates a new raw encoder writing with the given endian engine.
//
// Parameters:
//   - engine: Endian engine for byte order
//
// Returns:
//   - *NumericRawEncoder[T]: A new encoder backed by a pooled segment buffer
func NewNumericRawEncoder[T Float](engine endian.EndianEngine) *NumericRawEncoder[T] {
	return &NumericRawEncoder[T]{
		engine: engine,
		buf:    pool.GetSegmentBuffer(),
	}
}

// Write encodes a single value.
//
// Panics if Finish() has been called.
func (e *NumericRawEncoder[T]) Write(val T) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.buf.B = appendFloat(e.engine, e.buf.B, val)
}

// WriteSlice encodes a slice of values, growing the buffer once for the whole slice.
//
// Panics if Finish() has been called.
func (e *NumericRawEncoder[T]) WriteSlice(values []T) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	if len(values) == 0 {
		return
	}

	e.buf.B = slices.Grow(e.buf.B, len(values)*SizeOf[T]())
	for _, v := range values {
		e.buf.B = appendFloat(e.engine, e.buf.B, v)
	}
	e.count += len(values)
}

// Bytes returns the encoded bytes.
//
// Panics if Finish() has been called.
func (e *NumericRawEncoder[T]) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded values.
func (e *NumericRawEncoder[T]) Len() int {
	return e.count
}

// Size returns the number of encoded bytes.
//
// Panics if Finish() has been called.
func (e *NumericRawEncoder[T]) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset discards the encoded values and keeps the buffer.
func (e *NumericRawEncoder[T]) Reset() {
	if e.buf != nil {
		e.buf.Reset()
	}
	e.count = 0
}

// Finish returns the buffer to the pool. The encoder cannot be used afterwards.
func (e *NumericRawEncoder[T]) Finish() {
	if e.buf != nil {
		pool.PutSegmentBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// DecodeFloats decodes every whole value in src into dst, reusing its capacity.
//
// Trailing bytes that do not form a complete value are ignored. When engine matches
// the host byte order the bytes are copied directly into the backing array of dst,
// which avoids a per-value conversion and has no alignment requirement on src.
//
// Parameters:
//   - dst: Destination slice; its contents are overwritten
//   - src: Encoded values
//   - engine: Byte order of src
//
// Returns:
//   - []T: dst resliced (or reallocated) to len(src)/SizeOf[T]() values
func DecodeFloats[T Float](dst []T, src []byte, engine endian.EndianEngine) []T {
	size := SizeOf[T]()
	n := len(src) / size
	if cap(dst) < n {
		dst = make([]T, n)
	}
	dst = dst[:n]
	if n == 0 {
		return dst
	}

	if endian.CompareNativeEndian(engine) {
		raw := unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), n*size)
		copy(raw, src[:n*size])

		return dst
	}

	for i := range dst {
		dst[i] = readFloat[T](engine, src[i*size:])
	}

	return dst
}

func appendFloat[T Float](engine endian.EndianEngine, dst []byte, v T) []byte {
	switch x := any(v).(type) {
	case float32:
		return engine.AppendUint32(dst, math.Float32bits(x))
	case float64:
		return engine.AppendUint64(dst, math.Float64bits(x))
	}

	return dst
}

func readFloat[T Float](engine endian.EndianEngine, src []byte) T {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return T(math.Float32frombits(engine.Uint32(src)))
	}

	return T(math.Float64frombits(engine.Uint64(src)))
}
