package event

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fcs/endian"
	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/format"
	"github.com/arloliu/fcs/internal/fcstest"
)

func TestResolveLayout(t *testing.T) {
	t.Run("little float32", func(t *testing.T) {
		f := load(t, &fcstest.Builder{Channels: fcstest.Channels("c", 3), Events: fcstest.Events(4, 3)})

		l, err := ResolveLayout(f.store)
		require.NoError(t, err)
		require.Equal(t, endian.GetLittleEndianEngine(), l.Engine)
		require.Equal(t, format.ByteOrderLittle32, l.ByteOrder)
		require.Equal(t, format.DataTypeFloat, l.DataType)
		require.Equal(t, 4, l.Width)
		require.Equal(t, 3, l.Channels)
		require.Equal(t, 4, l.Events)
		require.Equal(t, 12, l.BytesPerEvent())
		require.Equal(t, int64(48), l.Size())
		require.Contains(t, l.String(), "4 events x 3 channels")
	})

	t.Run("big float64", func(t *testing.T) {
		f := load(t, &fcstest.Builder{ByteOrd: "4,3,2,1", DataType: "D", Channels: fcstest.Channels("c", 2), Events: fcstest.Events(1, 2)})

		l, err := ResolveLayout(f.store)
		require.NoError(t, err)
		require.Equal(t, endian.GetBigEndianEngine(), l.Engine)
		require.Equal(t, format.DataTypeDouble, l.DataType)
		require.Equal(t, 8, l.Width)
	})

	t.Run("no channels", func(t *testing.T) {
		f := load(t, &fcstest.Builder{})

		l, err := ResolveLayout(f.store)
		require.NoError(t, err)
		require.Equal(t, int64(0), l.Size())
	})
}

func TestResolveLayoutErrors(t *testing.T) {
	cases := []struct {
		name string
		b    fcstest.Builder
		kind error
	}{
		{"integer datatype", fcstest.Builder{DataType: "I"}, errs.ErrUnsupportedFormat},
		{"ascii datatype", fcstest.Builder{DataType: "A"}, errs.ErrUnsupportedFormat},
		{"unknown byte order", fcstest.Builder{ByteOrd: "2,1,4,3"}, errs.ErrUnsupportedFormat},
		{"width not multiple of 8", fcstest.Builder{Channels: []fcstest.Channel{{Name: "a", Bits: 12}}}, errs.ErrMalformedData},
		{"mixed widths", fcstest.Builder{Channels: []fcstest.Channel{{Name: "a", Bits: 32}, {Name: "b", Bits: 64}}}, errs.ErrUnsupportedFormat},
		{"width differs from datatype", fcstest.Builder{Channels: []fcstest.Channel{{Name: "a", Bits: 64}, {Name: "b", Bits: 64}}}, errs.ErrMalformedData},
		{"float64 with 32-bit channels", fcstest.Builder{DataType: "D", Channels: []fcstest.Channel{{Name: "a", Bits: 32}}}, errs.ErrMalformedData},
		{"misaligned before mixed", fcstest.Builder{Channels: []fcstest.Channel{{Name: "a", Bits: 32}, {Name: "b", Bits: 10}}}, errs.ErrMalformedData},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.b
			if b.Channels == nil {
				b.Channels = fcstest.Channels("c", 1)
			}
			f := load(t, &b)

			_, err := ResolveLayout(f.store)
			require.ErrorIs(t, err, tc.kind)
		})
	}
}
