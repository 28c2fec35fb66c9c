package encoding

// Float is the set of value types a DATA segment can hold in this decoder.
type Float interface {
	float32 | float64
}

// ColumnarEncoder writes a column of float values in a fixed byte order.
type ColumnarEncoder[T Float] interface {
	// Bytes returns the encoded byte slice.
	// The returned slice is valid until the next call to Write, WriteSlice, or Finish.
	// The caller should not modify the returned slice.
	Bytes() []byte

	// Len returns the number of encoded values.
	Len() int

	// Size returns the size in bytes of the encoded values.
	Size() int

	// Reset discards the encoded values but keeps the internal buffer for reuse.
	Reset()

	// Finish returns buffer resources to the pool.
	//
	// After calling Finish(), the encoder is no longer usable. Any subsequent calls to
	// Write(), WriteSlice(), Bytes(), or Size() will panic due to nil buffer.
	//
	//	encoder := NewNumericRawEncoder[float32](engine)
	//	defer encoder.Finish()
	Finish()

	// Write encodes a single value.
	Write(val T)

	// WriteSlice encodes a slice of values.
	WriteSlice(values []T)
}
