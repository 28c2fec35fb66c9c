// Package encoding converts between fixed-width IEEE-754 values and their byte
// representation in an FCS DATA segment.
//
// The FCS DATA segment stores list-mode events as a flat run of values, one per
// channel per event, all with the same width and byte order. Two directions are
// provided:
//
//   - DecodeFloats reads float32 or float64 values from bytes
//     written in any byte order. When the byte order matches the host, DecodeFloats
//     copies the bytes straight into the destination slice.
//   - NumericRawEncoder writes values in a chosen byte order into a pooled buffer.
//     The decoder itself never encodes; the encoder is used to produce fixtures and
//     to re-emit decoded matrices.
//
// # Example
//
//	engine := format.ParseByteOrder("4,3,2,1").Engine()
//	values := encoding.DecodeFloats[float32](nil, data, engine)
//
// NumericRawEncoder satisfies ColumnarEncoder for both precisions, so callers can be
// written once for either.
package encoding
