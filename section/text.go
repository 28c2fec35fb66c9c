package section

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/arloliu/fcs/errs"
)

// KeyValue is one keyword/value pair in TEXT segment order.
type KeyValue struct {
	Key   string
	Value string
}

// ReadText reads the raw TEXT segment located by h.
//
// Returns:
//   - []byte: The End-Start+1 bytes of the TEXT segment
//   - error: errs.ErrMalformedText for an empty range, errs.ErrTruncatedData when the
//     segment extends past size, errs.ErrIO on read failure
func ReadText(r io.ReaderAt, size int64, h Header) ([]byte, error) {
	seg := h.Text
	if seg.Len() == 0 {
		return nil, errs.MalformedText("empty TEXT segment %s", seg)
	}
	if seg.End >= size {
		return nil, errs.Truncated("TEXT segment %s extends past end of file (%d bytes)", seg, size)
	}

	buf := make([]byte, seg.Len())
	if _, err := r.ReadAt(buf, seg.Start); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.IO("read TEXT", err)
	}

	return buf, nil
}

// SplitText splits a raw TEXT segment into keyword/value pairs.
//
// Surrounding whitespace is stripped first. The delimiter is the first remaining byte
// and the last byte must equal it. With literal set, the interior is split on every
// delimiter byte; otherwise a doubled delimiter is read as one literal delimiter
// character inside a key or value.
//
// Parameters:
//   - raw: TEXT segment bytes as read from the file
//   - literal: Disable doubled-delimiter unescaping
//
// Returns:
//   - []KeyValue: Pairs in encounter order, duplicates included
//   - []Warning: A dropped trailing keyword without a value, if any
//   - error: errs.ErrMalformedText on framing violations
func SplitText(raw []byte, literal bool) ([]KeyValue, []Warning, error) {
	text := bytes.TrimSpace(raw)
	if len(text) < 2 {
		return nil, nil, errs.MalformedText("segment of %d bytes has no delimiter framing", len(text))
	}

	delim := text[0]
	if text[len(text)-1] != delim {
		return nil, nil, errs.MalformedText("segment starts with delimiter %q but ends with %q", delim, text[len(text)-1])
	}

	interior := text[1 : len(text)-1]
	var tokens []string
	if literal {
		tokens = splitLiteral(interior, delim)
	} else {
		tokens = splitEscaped(interior, delim)
	}

	pairs := make([]KeyValue, 0, len(tokens)/2)
	for i := 0; i+1 < len(tokens); i += 2 {
		pairs = append(pairs, KeyValue{Key: tokens[i], Value: tokens[i+1]})
	}

	var warnings []Warning
	if len(tokens)%2 == 1 {
		if dangling := tokens[len(tokens)-1]; strings.TrimSpace(dangling) != "" {
			warnings = append(warnings, Warning{
				Segment: SegmentText,
				Message: fmt.Sprintf("keyword %q has no value and was dropped", dangling),
			})
		}
	}

	return pairs, warnings, nil
}

func splitLiteral(interior []byte, delim byte) []string {
	if len(interior) == 0 {
		return nil
	}

	parts := bytes.Split(interior, []byte{delim})
	tokens := make([]string, len(parts))
	for i, p := range parts {
		tokens[i] = string(p)
	}

	return tokens
}

func splitEscaped(interior []byte, delim byte) []string {
	if len(interior) == 0 {
		return nil
	}

	tokens := make([]string, 0, bytes.Count(interior, []byte{delim})+1)
	var cur []byte
	for i := 0; i < len(interior); i++ {
		b := interior[i]
		if b != delim {
			cur = append(cur, b)
			continue
		}
		if i+1 < len(interior) && interior[i+1] == delim {
			cur = append(cur, delim)
			i++

			continue
		}
		tokens = append(tokens, string(cur))
		cur = cur[:0]
	}

	return append(tokens, string(cur))
}
