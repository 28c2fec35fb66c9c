package fcs

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/internal/fcstest"
	"github.com/arloliu/fcs/section"
)

// countingReader counts reads that touch bytes at or after dataStart.
type countingReader struct {
	r         io.ReaderAt
	dataStart int64
	reads     atomic.Int64
	dataReads atomic.Int64
}

func (c *countingReader) ReadAt(p []byte, off int64) (int, error) {
	c.reads.Add(1)
	if off+int64(len(p)) > c.dataStart {
		c.dataReads.Add(1)
	}

	return c.r.ReadAt(p, off)
}

// flakyReader fails every DATA read until fail reaches zero.
type flakyReader struct {
	r         io.ReaderAt
	dataStart int64
	fail      int
}

var errFlaky = errors.New("transient read failure")

func (f *flakyReader) ReadAt(p []byte, off int64) (int, error) {
	if off >= f.dataStart && f.fail > 0 {
		f.fail--
		return 0, errFlaky
	}

	return f.r.ReadAt(p, off)
}

func openBuilder(t *testing.T, b *fcstest.Builder, opts ...Option) (*Document, *countingReader) {
	t.Helper()

	img := b.Bytes()
	_, _, dataStart, _ := b.Layout()
	cr := &countingReader{r: bytes.NewReader(img), dataStart: dataStart}

	doc, err := OpenReader(cr, int64(len(img)), opts...)
	require.NoError(t, err)

	return doc, cr
}

func TestOpenReader_MetadataWithoutData(t *testing.T) {
	b := &fcstest.Builder{
		Channels: []fcstest.Channel{{Name: "FSC-A"}, {Name: "SSC-A"}, {Name: "FSC-A"}},
		Events:   fcstest.Events(4, 3),
		Extra:    [][2]string{{"$CYT", "Aria"}},
	}

	doc, cr := openBuilder(t, b)
	require.Zero(t, cr.dataReads.Load())
	require.Equal(t, []string{"FSC-A", "SSC-A", "FSC-A"}, doc.ChannelNames())
	require.Equal(t, 3, doc.Metadata().Par())
	require.Equal(t, 4, doc.Metadata().Tot())
	require.Empty(t, doc.Path())
	require.Equal(t, "FCS3.0", doc.Header().FormatTag)
	require.Empty(t, doc.Warnings())

	v, ok := doc.Metadata().Get("$cyt")
	require.True(t, ok)
	require.Equal(t, "Aria", v)
}

func TestDocument_DataIsCached(t *testing.T) {
	events := fcstest.Events(6, 2)
	doc, cr := openBuilder(t, &fcstest.Builder{Channels: fcstest.Channels("c", 2), Events: events})

	m1, err := doc.Data()
	require.NoError(t, err)
	require.Equal(t, int64(1), cr.dataReads.Load())
	reads := cr.reads.Load()

	m2, err := doc.Data()
	require.NoError(t, err)
	require.Same(t, m1, m2)
	require.Equal(t, reads, cr.reads.Load())

	for i, ev := range events {
		require.Equal(t, ev, m1.Row(i))
	}
}

func TestDocument_ErrorsAreNotCached(t *testing.T) {
	b := &fcstest.Builder{Channels: fcstest.Channels("c", 2), Events: fcstest.Events(3, 2)}
	img := b.Bytes()
	_, _, dataStart, _ := b.Layout()
	fr := &flakyReader{r: bytes.NewReader(img), dataStart: dataStart, fail: 1}

	doc, err := OpenReader(fr, int64(len(img)))
	require.NoError(t, err)

	_, err = doc.Data()
	require.ErrorIs(t, err, errs.ErrIO)
	require.ErrorIs(t, err, errFlaky)

	m, err := doc.Data()
	require.NoError(t, err)
	require.Equal(t, 3, m.Rows())
}

func TestDocument_NextDataRejectedOnlyForData(t *testing.T) {
	doc, cr := openBuilder(t, &fcstest.Builder{
		NextData: "1024",
		Channels: fcstest.Channels("c", 1),
		Events:   fcstest.Events(1, 1),
	})
	require.Equal(t, int64(1024), doc.Metadata().NextData())

	_, err := doc.Data()
	require.ErrorIs(t, err, errs.ErrUnsupportedFormat)
	require.Zero(t, cr.dataReads.Load())
}

func TestDocument_Truncated(t *testing.T) {
	doc, _ := openBuilder(t, &fcstest.Builder{
		Channels:   fcstest.Channels("c", 2),
		Events:     fcstest.Events(8, 2),
		TruncateBy: 3,
	})

	_, err := doc.Data()
	require.ErrorIs(t, err, errs.ErrTruncatedData)

	_, err = doc.Data()
	require.ErrorIs(t, err, errs.ErrTruncatedData)
}

func TestDocument_Analysis(t *testing.T) {
	doc, _ := openBuilder(t, &fcstest.Builder{Channels: fcstest.Channels("c", 1), Events: fcstest.Events(1, 1)})

	_, err := doc.Analysis()
	require.ErrorIs(t, err, errs.ErrNotImplemented)
}

func TestOpenReader_Errors(t *testing.T) {
	cases := []struct {
		name string
		img  []byte
		kind error
	}{
		{"short header", []byte("FCS3.0    "), errs.ErrMalformedHeader},
		{"deferred data offsets", (&fcstest.Builder{ZeroDataOffsets: true}).Bytes(), errs.ErrUnsupportedFormat},
		{"missing keyword", (&fcstest.Builder{Omit: []string{"$TOT"}}).Bytes(), errs.ErrMalformedText},
		{"text past end", (&fcstest.Builder{Channels: fcstest.Channels("c", 1), TruncateBy: 30}).Bytes(), errs.ErrTruncatedData},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := OpenReader(bytes.NewReader(tc.img), int64(len(tc.img)))
			require.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestOpenReader_WarningsAreLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b := &fcstest.Builder{
		Tag:           "FCS3.1",
		Channels:      fcstest.Channels("c", 2),
		Events:        fcstest.Events(2, 2),
		AnalysisStart: 5000,
		AnalysisEnd:   5100,
	}
	doc, _ := openBuilder(t, b, WithLogger(logger))

	warnings := doc.Warnings()
	require.Len(t, warnings, 2)
	require.Equal(t, section.SegmentHeader, warnings[0].Segment)
	require.Contains(t, warnings[0].Message, "FCS3.1")
	require.Equal(t, section.SegmentAnalysis, warnings[1].Segment)

	_, err := doc.Data()
	require.NoError(t, err)

	out := logs.String()
	require.Contains(t, out, "level=WARN")
	require.Contains(t, out, "located segments")
	require.Contains(t, out, "decoded DATA")
}

func TestOpenReader_DelimiterEscaping(t *testing.T) {
	b := &fcstest.Builder{
		Channels:         fcstest.Channels("c", 1),
		Events:           fcstest.Events(1, 1),
		Extra:            [][2]string{{"$COM", "a|b"}},
		EscapeDelimiters: true,
	}

	doc, _ := openBuilder(t, b)
	v, ok := doc.Metadata().Get("$COM")
	require.True(t, ok)
	require.Equal(t, "a|b", v)

	literal := &fcstest.Builder{
		Channels: fcstest.Channels("c", 1),
		Events:   fcstest.Events(1, 1),
		Extra:    [][2]string{{"$SRC", ""}, {"$CYT", "Aria"}},
	}
	doc, _ = openBuilder(t, literal, WithLiteralDelimiters())
	v, ok = doc.Metadata().Get("$SRC")
	require.True(t, ok)
	require.Empty(t, v)
	v, _ = doc.Metadata().Get("$CYT")
	require.Equal(t, "Aria", v)
}

func TestOptions(t *testing.T) {
	_, err := newConfig(WithLogger(nil))
	require.Error(t, err)

	_, err = newConfig(WithMaxDecompressedSize(0))
	require.Error(t, err)

	cfg, err := newConfig(WithMmap(), WithLiteralDelimiters(), WithMaxDecompressedSize(1024), WithMetadataOnly(), WithCompensation(), nil)
	require.NoError(t, err)
	require.True(t, cfg.mmap)
	require.True(t, cfg.literalDelimiters)
	require.True(t, cfg.metadataOnly)
	require.True(t, cfg.compensate)
	require.Equal(t, int64(1024), cfg.sourceConfig().MaxDecompressedSize)
	require.NotNil(t, cfg.logger)
}
