package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fcs/endian"
)

func TestParseDataType(t *testing.T) {
	tests := []struct {
		in   string
		want DataType
		size int
	}{
		{"F", DataTypeFloat, 4},
		{"d", DataTypeDouble, 8},
		{" I ", DataTypeInteger, 0},
		{"A", DataTypeASCII, 0},
		{"X", DataTypeUnknown, 0},
		{"", DataTypeUnknown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseDataType(tt.in)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.size, got.Size())
		})
	}
}

func TestParseByteOrder(t *testing.T) {
	tests := []struct {
		in     string
		want   ByteOrder
		little bool
		engine endian.EndianEngine
	}{
		{"1,2,3,4", ByteOrderLittle32, true, endian.GetLittleEndianEngine()},
		{"4,3,2,1", ByteOrderBig32, false, endian.GetBigEndianEngine()},
		{"1,2", ByteOrderLittle16, true, endian.GetLittleEndianEngine()},
		{"2,1", ByteOrderBig16, false, endian.GetBigEndianEngine()},
		{"1, 2, 3, 4", ByteOrderLittle32, true, endian.GetLittleEndianEngine()},
		{"3,4,1,2", ByteOrderUnknown, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseByteOrder(tt.in)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.little, got.IsLittleEndian())
			require.Equal(t, tt.engine, got.Engine())
		})
	}
}

func TestStringers(t *testing.T) {
	require.Equal(t, "F", DataTypeFloat.String())
	require.Equal(t, "Unknown", DataType(0xFF).String())
	require.Equal(t, "4,3,2,1", ByteOrderBig32.String())
	require.Equal(t, "L", ParseMode("L").String())
	require.Equal(t, ModeUnknown, ParseMode("l"))
	require.Equal(t, ModeUnknown, ParseMode(" L"))
	require.Equal(t, ModeUnknown, ParseMode("Z"))
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "Gzip", CompressionGzip.String())
	require.Equal(t, "Unknown", CompressionType(0).String())
}
