package fcs

import (
	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/event"
	"github.com/arloliu/fcs/meta"
	"github.com/arloliu/fcs/section"
)

// Result is the outcome of Decode.
type Result struct {
	// Metadata holds every TEXT keyword.
	Metadata *meta.Store
	// Events is the event matrix, nil when decoding with WithMetadataOnly.
	Events *event.Matrix
	// Channels lists the $PnN names in column order, nil when decoding with WithMetadataOnly.
	Channels []string
	// Warnings lists the non-fatal conditions found while decoding.
	Warnings []section.Warning
}

// Decode reads the FCS file at path.
//
// With WithMetadataOnly the DATA segment is never read and the result carries only
// Metadata. WithCompensation fails with errs.ErrNotImplemented before the file is opened.
//
// Parameters:
//   - path: File to decode
//   - opts: Configuration options
//
// Returns:
//   - *Result: Decoded metadata and, unless metadata-only, events and channel names
//   - error: Any error from Open or Document.Data
func Decode(path string, opts ...Option) (*Result, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	if cfg.compensate {
		return nil, errs.NotImplemented("compensation")
	}

	doc, err := openPath(path, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.metadataOnly {
		return &Result{Metadata: doc.Metadata(), Warnings: doc.Warnings()}, nil
	}

	m, err := doc.Data()
	if err != nil {
		return nil, err
	}

	return &Result{
		Metadata: doc.Metadata(),
		Events:   m,
		Channels: doc.ChannelNames(),
		Warnings: doc.Warnings(),
	}, nil
}

// TableAdapter converts a decoded event matrix into a tabular value of type T.
type TableAdapter[T any] interface {
	// Table builds a table with one column per channel. channels has one entry per
	// matrix column.
	Table(events *event.Matrix, channels []string, metadata *meta.Store) (T, error)
}

// DecodeTable decodes the file at path and hands the events to adapter.
//
// With WithMetadataOnly no table is built and the zero T is returned with the result.
func DecodeTable[T any](path string, adapter TableAdapter[T], opts ...Option) (T, *Result, error) {
	var zero T

	res, err := Decode(path, opts...)
	if err != nil {
		return zero, nil, err
	}
	if res.Events == nil {
		return zero, res, nil
	}

	table, err := adapter.Table(res.Events, res.Channels, res.Metadata)
	if err != nil {
		return zero, nil, err
	}

	return table, res, nil
}
