package fcs

import (
	"context"
	"io"
	"log/slog"

	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/event"
	"github.com/arloliu/fcs/format"
	"github.com/arloliu/fcs/internal/source"
	"github.com/arloliu/fcs/meta"
	"github.com/arloliu/fcs/section"
)

// Document is one parsed FCS file.
//
// Open parses HEADER and TEXT eagerly. DATA is decoded on the first successful call to
// Data and cached for the life of the document. The document does not keep the file
// open between calls. A Document is not safe for concurrent use.
type Document struct {
	path   string
	cfg    *Config
	logger *slog.Logger
	open   func() (source.Source, source.Info, error)

	header      section.Header
	store       *meta.Store
	warnings    []section.Warning
	compression format.CompressionType

	events *event.Matrix // nil until Data succeeds
}

// Open parses the HEADER and TEXT segments of the file at path.
//
// Parameters:
//   - path: File to open, plain or compressed with zstd, gzip, LZ4 or S2
//   - opts: Configuration options
//
// Returns:
//   - *Document: Parsed document with DATA not yet read
//   - error: errs.ErrIO if the file cannot be read, or any HEADER/TEXT parsing error
func Open(path string, opts ...Option) (*Document, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return openPath(path, cfg)
}

func openPath(path string, cfg *Config) (*Document, error) {
	d := newDocument(path, cfg, func() (source.Source, source.Info, error) {
		return source.Open(path, cfg.sourceConfig())
	})
	if err := d.load(); err != nil {
		return nil, err
	}

	return d, nil
}

// OpenReader parses the HEADER and TEXT segments of an uncompressed FCS image held by r.
//
// The caller keeps ownership of r, which must stay readable while the document is used
// and is never closed by the document.
//
// Parameters:
//   - r: Random-access source of the FCS image
//   - size: Size of the image in bytes
//   - opts: Configuration options
//
// Returns:
//   - *Document: Parsed document with DATA not yet read
//   - error: Any HEADER/TEXT parsing error
func OpenReader(r io.ReaderAt, size int64, opts ...Option) (*Document, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	d := newDocument("", cfg, func() (source.Source, source.Info, error) {
		return source.NopCloser(r, size), source.Info{Compression: format.CompressionNone}, nil
	})
	if err := d.load(); err != nil {
		return nil, err
	}

	return d, nil
}

func newDocument(path string, cfg *Config, open func() (source.Source, source.Info, error)) *Document {
	return &Document{
		path:   path,
		cfg:    cfg,
		logger: cfg.logger.With("path", path),
		open:   open,
	}
}

func (d *Document) load() error {
	src, info, err := d.open()
	if err != nil {
		return err
	}
	defer d.closeSource(src)

	size := src.Size()
	header, warnings, err := section.LocateSegments(src, size)
	if err != nil {
		return err
	}
	d.header = header
	d.compression = info.Compression
	d.warn(warnings...)

	d.logger.Debug("located segments",
		"format", header.FormatTag,
		"text", header.Text.String(),
		"data", header.Data.String(),
		"analysis", header.Analysis.String(),
		"compression", info.Compression.String(),
		"mapped", info.Mapped,
		"size", size,
	)

	raw, err := section.ReadText(src, size, header)
	if err != nil {
		return err
	}

	pairs, warnings, err := section.SplitText(raw, d.cfg.literalDelimiters)
	if err != nil {
		return err
	}
	d.warn(warnings...)

	store, err := meta.Parse(pairs)
	if err != nil {
		return err
	}
	d.store = store

	d.logger.Debug("parsed TEXT", "keywords", store.Len(), "channels", store.Par(), "events", store.Tot())

	return nil
}

// Data returns the decoded event matrix.
//
// The first successful call validates the layout, reads the DATA segment and caches the
// result; later calls return the cached matrix without any I/O. Errors are not cached,
// so a failed call can be retried.
//
// Returns:
//   - *event.Matrix: Matrix with $TOT rows and $PAR columns
//   - error: errs.ErrUnsupportedFormat for unsupported layouts, errs.ErrMalformedData,
//     errs.ErrTruncatedData or errs.ErrIO
func (d *Document) Data() (*event.Matrix, error) {
	if d.events != nil {
		return d.events, nil
	}

	if err := event.CheckAssumptions(d.store); err != nil {
		return nil, err
	}

	src, _, err := d.open()
	if err != nil {
		return nil, err
	}
	defer d.closeSource(src)

	dec, err := event.NewDecoder(src, src.Size(), d.header, d.store)
	if err != nil {
		return nil, err
	}

	m, err := dec.Decode()
	if err != nil {
		return nil, err
	}
	d.warn(dec.Warnings()...)
	d.events = m

	if d.logger.Enabled(context.Background(), slog.LevelDebug) {
		d.logger.Debug("decoded DATA", "layout", dec.Layout().String(), "fingerprint", m.Fingerprint())
	}

	return m, nil
}

// Analysis always fails: ANALYSIS segment decoding is not implemented.
func (d *Document) Analysis() ([]byte, error) {
	return nil, errs.NotImplemented("ANALYSIS segment decoding")
}

// Header returns the parsed HEADER segment.
func (d *Document) Header() section.Header {
	return d.header
}

// Metadata returns the parsed TEXT segment.
func (d *Document) Metadata() *meta.Store {
	return d.store
}

// ChannelNames returns the $PnN names in channel order, duplicates included.
func (d *Document) ChannelNames() []string {
	return d.store.ChannelNames()
}

// Warnings returns the non-fatal conditions found so far.
func (d *Document) Warnings() []section.Warning {
	return append([]section.Warning(nil), d.warnings...)
}

// Path returns the path given to Open, or "" for documents created with OpenReader.
func (d *Document) Path() string {
	return d.path
}

// Compression returns the container compression of the file.
func (d *Document) Compression() format.CompressionType {
	return d.compression
}

func (d *Document) warn(warnings ...section.Warning) {
	for _, w := range warnings {
		d.logger.Warn("FCS warning", "segment", w.Segment, "message", w.Message)
		d.warnings = append(d.warnings, w)
	}
}

func (d *Document) closeSource(src source.Source) {
	if err := src.Close(); err != nil {
		d.logger.Warn("failed to close FCS source", "error", err)
	}
}
