// Package format defines the enumerations used across the FCS decoder: DATA value
// types, byte order literals, acquisition modes and container compression types.
package format

import (
	"strings"

	"github.com/arloliu/fcs/endian"
)

type (
	DataType        uint8
	ByteOrder       uint8
	Mode            uint8
	CompressionType uint8
)

const (
	DataTypeUnknown DataType = 0x0
	DataTypeInteger DataType = 0x1 // DataTypeInteger is $DATATYPE=I, unsigned binary integers.
	DataTypeFloat   DataType = 0x2 // DataTypeFloat is $DATATYPE=F, IEEE-754 single precision.
	DataTypeDouble  DataType = 0x3 // DataTypeDouble is $DATATYPE=D, IEEE-754 double precision.
	DataTypeASCII   DataType = 0x4 // DataTypeASCII is $DATATYPE=A, ASCII encoded numbers.

	ByteOrderUnknown  ByteOrder = 0x0
	ByteOrderLittle32 ByteOrder = 0x1 // ByteOrderLittle32 is "1,2,3,4".
	ByteOrderBig32    ByteOrder = 0x2 // ByteOrderBig32 is "4,3,2,1".
	ByteOrderLittle16 ByteOrder = 0x3 // ByteOrderLittle16 is "1,2".
	ByteOrderBig16    ByteOrder = 0x4 // ByteOrderBig16 is "2,1".

	ModeUnknown     Mode = 0x0
	ModeList        Mode = 0x1 // ModeList is $MODE=L, event-major list mode.
	ModeCorrelated  Mode = 0x2 // ModeCorrelated is $MODE=C, correlated histograms.
	ModeUncorrelate Mode = 0x3 // ModeUncorrelate is $MODE=U, uncorrelated histograms.

	CompressionNone CompressionType = 0x1 // CompressionNone is a plain FCS file.
	CompressionZstd CompressionType = 0x2 // CompressionZstd is a Zstandard frame.
	CompressionS2   CompressionType = 0x3 // CompressionS2 is an S2 (or Snappy) stream.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 is an LZ4 frame.
	CompressionGzip CompressionType = 0x5 // CompressionGzip is a gzip member.
)

// ParseDataType maps a $DATATYPE keyword value onto a DataType.
func ParseDataType(s string) DataType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "I":
		return DataTypeInteger
	case "F":
		return DataTypeFloat
	case "D":
		return DataTypeDouble
	case "A":
		return DataTypeASCII
	default:
		return DataTypeUnknown
	}
}

// Size returns the element size in bytes, or 0 when the width is not fixed by the type.
func (d DataType) Size() int {
	switch d {
	case DataTypeFloat:
		return 4
	case DataTypeDouble:
		return 8
	default:
		return 0
	}
}

func (d DataType) String() string {
	switch d {
	case DataTypeInteger:
		return "I"
	case DataTypeFloat:
		return "F"
	case DataTypeDouble:
		return "D"
	case DataTypeASCII:
		return "A"
	default:
		return "Unknown"
	}
}

// ParseByteOrder maps a $BYTEORD keyword value onto one of the supported literals.
// Embedded spaces are ignored, so "1, 2, 3, 4" resolves like "1,2,3,4".
func ParseByteOrder(s string) ByteOrder {
	switch strings.ReplaceAll(strings.TrimSpace(s), " ", "") {
	case "1,2,3,4":
		return ByteOrderLittle32
	case "4,3,2,1":
		return ByteOrderBig32
	case "1,2":
		return ByteOrderLittle16
	case "2,1":
		return ByteOrderBig16
	default:
		return ByteOrderUnknown
	}
}

// IsLittleEndian reports whether the literal lists bytes in ascending order.
func (b ByteOrder) IsLittleEndian() bool {
	return b == ByteOrderLittle32 || b == ByteOrderLittle16
}

// Engine returns the endian engine for the byte order, or nil if it is unknown.
func (b ByteOrder) Engine() endian.EndianEngine {
	switch b {
	case ByteOrderLittle32, ByteOrderLittle16:
		return endian.GetLittleEndianEngine()
	case ByteOrderBig32, ByteOrderBig16:
		return endian.GetBigEndianEngine()
	default:
		return nil
	}
}

func (b ByteOrder) String() string {
	switch b {
	case ByteOrderLittle32:
		return "1,2,3,4"
	case ByteOrderBig32:
		return "4,3,2,1"
	case ByteOrderLittle16:
		return "1,2"
	case ByteOrderBig16:
		return "2,1"
	default:
		return "Unknown"
	}
}

// ParseMode maps a $MODE keyword value onto a Mode.
//
// Matching is exact: "l" or " L" is ModeUnknown.
func ParseMode(s string) Mode {
	switch s {
	case "L":
		return ModeList
	case "C":
		return ModeCorrelated
	case "U":
		return ModeUncorrelate
	default:
		return ModeUnknown
	}
}

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "L"
	case ModeCorrelated:
		return "C"
	case ModeUncorrelate:
		return "U"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}
