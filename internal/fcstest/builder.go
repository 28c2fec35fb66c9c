// Package fcstest builds in-memory FCS 3.0 images for tests.
//
// The builder produces exactly the subset of the format the decoder reads: a HEADER,
// a delimiter-framed TEXT segment and an event-major DATA segment. It is test
// tooling only and makes no attempt to produce files other readers would accept.
package fcstest

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/arloliu/fcs/encoding"
	"github.com/arloliu/fcs/endian"
)

// Channel describes one parameter written into the TEXT segment.
type Channel struct {
	Name  string
	Label string // $PnS, omitted when empty
	Bits  int    // $PnB, defaults to the DataType width
	Range string // $PnR, omitted when empty
	Amp   string // $PnE, omitted when empty
}

// Builder assembles an FCS image. The zero value plus Channels and Events yields a
// valid little-endian float32 list-mode file.
type Builder struct {
	Tag       string // defaults to "FCS3.0"
	Delimiter byte   // defaults to '|'
	ByteOrd   string // defaults to "1,2,3,4"
	DataType  string // defaults to "F"
	Mode      string // defaults to "L"
	NextData  string // defaults to "0"
	ZeroBased bool   // number channels from 0 instead of 1

	Channels []Channel
	Events   [][]float64

	// RawData replaces the encoded Events as DATA segment content.
	RawData []byte
	// Set overrides keywords after the standard ones are generated. Keys not already
	// present are appended in sorted order.
	Set map[string]string
	// Extra keywords appended in order after the standard ones.
	Extra [][2]string
	// Omit removes keywords from the TEXT segment.
	Omit []string
	// EscapeDelimiters doubles delimiter bytes found inside keys and values.
	EscapeDelimiters bool

	// ZeroDataOffsets writes 0 for both DATA offsets in the HEADER.
	ZeroDataOffsets bool
	// Analysis, when non-zero, is written as the ANALYSIS offsets in the HEADER.
	AnalysisStart, AnalysisEnd int64
	// TruncateBy removes bytes from the end of the image.
	TruncateBy int
	// TextPadding is inserted as whitespace around the TEXT segment.
	TextPadding int
}

func (b *Builder) defaults() {
	if b.Tag == "" {
		b.Tag = "FCS3.0"
	}
	if b.Delimiter == 0 {
		b.Delimiter = '|'
	}
	if b.ByteOrd == "" {
		b.ByteOrd = "1,2,3,4"
	}
	if b.DataType == "" {
		b.DataType = "F"
	}
	if b.Mode == "" {
		b.Mode = "L"
	}
	if b.NextData == "" {
		b.NextData = "0"
	}
}

// Keywords returns the TEXT keywords in the order they are written.
func (b *Builder) Keywords() [][2]string {
	b.defaults()

	kw := [][2]string{
		{"$BYTEORD", b.ByteOrd},
		{"$DATATYPE", b.DataType},
		{"$MODE", b.Mode},
		{"$NEXTDATA", b.NextData},
		{"$PAR", strconv.Itoa(len(b.Channels))},
		{"$TOT", strconv.Itoa(len(b.Events))},
	}

	base := 1
	if b.ZeroBased {
		base = 0
	}
	for i, ch := range b.Channels {
		n := i + base
		bits := ch.Bits
		if bits == 0 {
			bits = b.elementSize() * 8
		}
		kw = append(kw, [2]string{fmt.Sprintf("$P%dB", n), strconv.Itoa(bits)})
		if ch.Amp != "" {
			kw = append(kw, [2]string{fmt.Sprintf("$P%dE", n), ch.Amp})
		}
		kw = append(kw, [2]string{fmt.Sprintf("$P%dN", n), ch.Name})
		if ch.Range != "" {
			kw = append(kw, [2]string{fmt.Sprintf("$P%dR", n), ch.Range})
		}
		if ch.Label != "" {
			kw = append(kw, [2]string{fmt.Sprintf("$P%dS", n), ch.Label})
		}
	}
	kw = append(kw, b.Extra...)

	keys := make([]string, 0, len(b.Set))
	for key := range b.Set {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		value := b.Set[key]
		replaced := false
		for i := range kw {
			if kw[i][0] == key {
				kw[i][1] = value
				replaced = true
			}
		}
		if !replaced {
			kw = append(kw, [2]string{key, value})
		}
	}

	if len(b.Omit) > 0 {
		kept := kw[:0]
		for _, pair := range kw {
			if !slices.Contains(b.Omit, pair[0]) {
				kept = append(kept, pair)
			}
		}
		kw = kept
	}

	return kw
}

// Text returns the framed TEXT segment.
func (b *Builder) Text() []byte {
	b.defaults()

	d := string(b.Delimiter)
	var sb strings.Builder
	sb.WriteString(d)
	for _, pair := range b.Keywords() {
		sb.WriteString(b.escape(pair[0]))
		sb.WriteString(d)
		sb.WriteString(b.escape(pair[1]))
		sb.WriteString(d)
	}

	pad := strings.Repeat(" ", b.TextPadding)

	return []byte(pad + sb.String() + pad)
}

// Data returns the DATA segment content.
func (b *Builder) Data() []byte {
	b.defaults()
	if b.RawData != nil {
		return b.RawData
	}

	engine := endian.GetLittleEndianEngine()
	if strings.HasPrefix(strings.TrimSpace(b.ByteOrd), "4") || strings.HasPrefix(strings.TrimSpace(b.ByteOrd), "2") {
		engine = endian.GetBigEndianEngine()
	}

	if b.elementSize() == 8 {
		enc := encoding.NewNumericRawEncoder[float64](engine)
		defer enc.Finish()
		for _, ev := range b.Events {
			enc.WriteSlice(ev)
		}

		return append([]byte(nil), enc.Bytes()...)
	}

	enc := encoding.NewNumericRawEncoder[float32](engine)
	defer enc.Finish()
	for _, ev := range b.Events {
		for _, v := range ev {
			enc.Write(float32(v))
		}
	}
	out := append([]byte(nil), enc.Bytes()...)

	return out
}

// TextStart is the file offset of the TEXT segment.
const TextStart = 58

// Layout returns the HEADER offsets the builder writes.
func (b *Builder) Layout() (textStart, textEnd, dataStart, dataEnd int64) {
	text := b.Text()
	data := b.Data()
	textStart = TextStart
	textEnd = textStart + int64(len(text)) - 1
	dataStart = textEnd + 1
	dataEnd = dataStart + int64(len(data)) - 1

	return textStart, textEnd, dataStart, dataEnd
}

// Bytes returns the complete FCS image.
func (b *Builder) Bytes() []byte {
	b.defaults()

	text := b.Text()
	data := b.Data()
	textStart, textEnd, dataStart, dataEnd := b.Layout()
	if b.ZeroDataOffsets {
		dataStart, dataEnd = 0, 0
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-6.6s", b.Tag))
	sb.WriteString("    ")
	for _, v := range []int64{textStart, textEnd, dataStart, dataEnd, b.AnalysisStart, b.AnalysisEnd} {
		sb.WriteString(fmt.Sprintf("%8d", v))
	}

	out := make([]byte, 0, sb.Len()+len(text)+len(data))
	out = append(out, sb.String()...)
	out = append(out, text...)
	out = append(out, data...)

	if b.TruncateBy > 0 {
		out = out[:max(0, len(out)-b.TruncateBy)]
	}

	return out
}

// WriteFile writes the image to path.
func (b *Builder) WriteFile(path string) error {
	return os.WriteFile(path, b.Bytes(), 0o600)
}

func (b *Builder) elementSize() int {
	if strings.EqualFold(strings.TrimSpace(b.DataType), "D") {
		return 8
	}

	return 4
}

func (b *Builder) escape(s string) string {
	if !b.EscapeDelimiters {
		return s
	}
	d := string(b.Delimiter)

	return strings.ReplaceAll(s, d, d+d)
}

// Channels returns n channels named prefix1..prefixN.
func Channels(prefix string, n int) []Channel {
	chs := make([]Channel, n)
	for i := range chs {
		chs[i] = Channel{Name: fmt.Sprintf("%s%d", prefix, i+1)}
	}

	return chs
}

// Events returns rows x cols values where element [i][j] is i*cols+j+0.5.
func Events(rows, cols int) [][]float64 {
	ev := make([][]float64, rows)
	for i := range ev {
		ev[i] = make([]float64, cols)
		for j := range ev[i] {
			ev[i][j] = float64(i*cols+j) + 0.5
		}
	}

	return ev
}
