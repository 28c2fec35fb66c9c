package event

import (
	"fmt"
	"math"

	"github.com/arloliu/fcs/endian"
	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/format"
	"github.com/arloliu/fcs/meta"
)

// Layout is the physical shape of a DATA segment.
type Layout struct {
	Engine    endian.EndianEngine
	ByteOrder format.ByteOrder
	DataType  format.DataType
	Width     int // bytes per value
	Channels  int
	Events    int
}

// BytesPerEvent returns the size of one event record.
func (l Layout) BytesPerEvent() int {
	return l.Width * l.Channels
}

// Size returns the number of DATA bytes the layout requires.
func (l Layout) Size() int64 {
	return int64(l.Events) * int64(l.BytesPerEvent())
}

func (l Layout) String() string {
	return fmt.Sprintf("%d events x %d channels, %s %d-byte values, byte order %s",
		l.Events, l.Channels, l.DataType, l.Width, l.ByteOrder)
}

// ResolveLayout derives the DATA layout from the TEXT metadata.
//
// Returns:
//   - Layout: The resolved layout
//   - error: errs.ErrUnsupportedFormat for an unknown byte order, a $DATATYPE other than
//     F or D, or channels of different widths; errs.ErrMalformedData when a $PnB is not a
//     multiple of 8, or the shared width does not match $DATATYPE
func ResolveLayout(store *meta.Store) (Layout, error) {
	l := Layout{
		ByteOrder: store.ByteOrder(),
		DataType:  store.DataType(),
		Channels:  store.Par(),
		Events:    store.Tot(),
	}

	l.Engine = l.ByteOrder.Engine()
	if l.Engine == nil {
		return Layout{}, errs.Unsupported("$BYTEORD=%q is not supported", store.ByteOrd())
	}

	switch l.DataType {
	case format.DataTypeFloat, format.DataTypeDouble:
	default:
		v, _ := store.Get(meta.KeyDataType)
		return Layout{}, errs.Unsupported("$DATATYPE=%q is not supported, expected F or D", v)
	}

	channels := store.Channels()
	for _, ch := range channels {
		if ch.Bits%8 != 0 {
			return Layout{}, errs.MalformedData("$P%dB=%d is not a multiple of 8", ch.Index, ch.Bits)
		}
	}

	l.Width = l.DataType.Size()
	if len(channels) > 0 {
		first := channels[0]
		for _, ch := range channels[1:] {
			if ch.Bits != first.Bits {
				return Layout{}, errs.Unsupported("mixed channel widths ($P%dB=%d, $P%dB=%d)",
					first.Index, first.Bits, ch.Index, ch.Bits)
			}
		}

		if first.Bits/8 != l.Width {
			return Layout{}, errs.MalformedData("$PnB=%d does not match $DATATYPE=%s (%d bits)",
				first.Bits, l.DataType, l.Width*8)
		}
	}

	if l.Channels > 0 && int64(l.Events) > math.MaxInt/int64(l.BytesPerEvent()) {
		return Layout{}, errs.MalformedData("$TOT=%d x $PAR=%d does not fit in memory", l.Events, l.Channels)
	}

	return l, nil
}
