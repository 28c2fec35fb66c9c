package event

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/fcs/encoding"
	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/format"
	"github.com/arloliu/fcs/internal/pool"
	"github.com/arloliu/fcs/meta"
	"github.com/arloliu/fcs/section"
)

// Decoder reads the DATA segment of one dataset.
type Decoder struct {
	r        io.ReaderAt
	size     int64
	header   section.Header
	layout   Layout
	warnings []section.Warning
}

// NewDecoder resolves the DATA layout from store and prepares a decoder over r.
//
// Parameters:
//   - r: Source of the FCS file
//   - size: Total size of r in bytes
//   - header: Parsed HEADER segment
//   - store: Parsed TEXT segment
//
// Returns:
//   - *Decoder: Decoder ready to read DATA
//   - error: Any error from ResolveLayout
func NewDecoder(r io.ReaderAt, size int64, header section.Header, store *meta.Store) (*Decoder, error) {
	layout, err := ResolveLayout(store)
	if err != nil {
		return nil, err
	}

	return &Decoder{r: r, size: size, header: header, layout: layout}, nil
}

// Layout returns the resolved layout.
func (d *Decoder) Layout() Layout {
	return d.layout
}

// Warnings returns the non-fatal conditions found by Decode.
func (d *Decoder) Warnings() []section.Warning {
	return d.warnings
}

// Decode reads Events x Channels values starting at the DATA offset in a single read and
// returns them as a Matrix.
//
// Returns:
//   - *Matrix: Exactly Events rows and Channels columns
//   - error: errs.ErrTruncatedData when the source ends before the required bytes,
//     errs.ErrIO for any other read failure
func (d *Decoder) Decode() (*Matrix, error) {
	need := d.layout.Size()
	start := d.header.Data.Start

	available := max(d.size-start, 0)
	if available < need {
		return nil, errs.Truncated("DATA needs %d bytes at offset %d, source has %d", need, start, available)
	}

	if declared := d.header.Data.Len(); declared != need {
		d.warnings = append(d.warnings, section.Warning{
			Segment: section.SegmentData,
			Message: fmt.Sprintf("declared length %d differs from %d bytes required by $TOT x $PAR x width", declared, need),
		})
	}

	buf := pool.GetSegmentBuffer()
	defer pool.PutSegmentBuffer(buf)

	raw := buf.Resize(int(need))
	if need > 0 {
		n, err := d.r.ReadAt(raw, start)
		if n < len(raw) {
			if err == nil || errors.Is(err, io.EOF) {
				return nil, errs.Truncated("DATA read returned %d of %d bytes", n, need)
			}

			return nil, errs.IO("read DATA", err)
		}
	}

	rows, cols := d.layout.Events, d.layout.Channels
	if d.layout.DataType == format.DataTypeFloat {
		return NewFloat32Matrix(rows, cols, encoding.DecodeFloats[float32](nil, raw, d.layout.Engine))
	}

	return NewFloat64Matrix(rows, cols, encoding.DecodeFloats[float64](nil, raw, d.layout.Engine))
}
