package section

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/fcs/errs"
)

// Segment is an inclusive byte range [Start, End] within an FCS file.
type Segment struct {
	Start int64
	End   int64
}

// IsZero reports whether both offsets are zero, i.e. the segment is absent.
func (s Segment) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Len returns the number of bytes covered by the segment, 0 for an empty or inverted range.
func (s Segment) Len() int64 {
	if s.End < s.Start {
		return 0
	}

	return s.End - s.Start + 1
}

func (s Segment) String() string {
	return fmt.Sprintf("[%d, %d]", s.Start, s.End)
}

// Header is the parsed fixed-offset HEADER segment.
type Header struct {
	// FormatTag is the 6 byte version identifier, normally "FCS3.0".
	FormatTag string
	// Text locates the TEXT segment.
	Text Segment
	// Data locates the DATA segment.
	Data Segment
	// Analysis locates the optional ANALYSIS segment.
	Analysis Segment
}

// Warnings returns the non-fatal conditions carried by the header.
func (h Header) Warnings() []Warning {
	var warnings []Warning
	if h.FormatTag != ExpectedFormatTag {
		warnings = append(warnings, Warning{
			Segment: SegmentHeader,
			Message: fmt.Sprintf("format tag %q is not %q, decoding may be inaccurate", h.FormatTag, ExpectedFormatTag),
		})
	}
	if h.Analysis.Start != 0 {
		warnings = append(warnings, Warning{
			Segment: SegmentAnalysis,
			Message: fmt.Sprintf("ANALYSIS segment present at %s but it is not decoded", h.Analysis),
		})
	}

	return warnings
}

// ParseHeader parses a HEADER from a byte slice.
//
// Parameters:
//   - data: Byte slice starting at file offset 0 (at least HeaderSize bytes)
//
// Returns:
//   - Header: Parsed header
//   - error: errs.ErrMalformedHeader for short input or non-decimal offsets,
//     errs.ErrUnsupportedFormat when DATA offsets are deferred to the TEXT segment
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.MalformedHeader("need %d bytes, got %d", HeaderSize, len(data))
	}

	h := Header{FormatTag: string(data[:FormatTagSize])}

	fields := [6]*int64{
		&h.Text.Start, &h.Text.End,
		&h.Data.Start, &h.Data.End,
		&h.Analysis.Start, &h.Analysis.End,
	}
	for i, dst := range fields {
		at := OffsetFieldsAt + i*OffsetSize
		v, err := parseOffset(data[at : at+OffsetSize])
		if err != nil {
			return Header{}, errs.MalformedHeader("offset field at byte %d: %v", at, err)
		}
		*dst = v
	}

	if h.Data.Start == 0 || h.Data.End == 0 {
		return Header{}, errs.Unsupported("DATA offsets are stored in the TEXT segment ($BEGINDATA/$ENDDATA)")
	}

	return h, nil
}

// LocateSegments reads and parses the HEADER of r.
//
// Parameters:
//   - r: Random-access byte source positioned anywhere; reads start at offset 0
//   - size: Total size of r in bytes
//
// Returns:
//   - Header: Parsed header
//   - []Warning: Non-fatal header conditions (unexpected tag, ANALYSIS present)
//   - error: ParseHeader errors, errs.ErrIO on read failure
func LocateSegments(r io.ReaderAt, size int64) (Header, []Warning, error) {
	if size < HeaderSize {
		return Header{}, nil, errs.MalformedHeader("file is %d bytes, shorter than the %d byte HEADER", size, HeaderSize)
	}

	buf := make([]byte, HeaderSize)
	if _, err := r.ReadAt(buf, 0); err != nil && !errors.Is(err, io.EOF) {
		return Header{}, nil, errs.IO("read HEADER", err)
	}

	h, err := ParseHeader(buf)
	if err != nil {
		return Header{}, nil, err
	}

	return h, h.Warnings(), nil
}

// parseOffset decodes one right-justified ASCII decimal field. A blank field is 0.
func parseOffset(field []byte) (int64, error) {
	s := strings.TrimSpace(string(field))
	if s == "" {
		return 0, nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a decimal offset", field)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative offset %d", v)
	}

	return v, nil
}
