// Package source opens FCS files as random-access byte sources.
//
// A Source is acquired for one scoped read and must be closed by the caller on every
// path. Plain files are read through *os.File or, optionally, a read-only memory
// mapping. Compressed containers are decompressed in full into memory.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/arloliu/fcs/compress"
	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/format"
)

// DefaultMaxDecompressedSize bounds the size of a decompressed container.
const DefaultMaxDecompressedSize = 4 << 30 // 4GiB

// Source is a sized random-access byte source.
type Source interface {
	io.ReaderAt
	io.Closer
	// Size returns the number of readable bytes.
	Size() int64
}

// Config controls how a path is opened.
type Config struct {
	// Mmap maps plain files read-only instead of issuing pread calls.
	Mmap bool
	// MaxDecompressedSize rejects compressed containers that expand beyond this many bytes.
	// Zero means DefaultMaxDecompressedSize.
	MaxDecompressedSize int64
}

// Info describes how a source was opened.
type Info struct {
	Compression format.CompressionType
	Mapped      bool
}

// Open opens path according to cfg.
//
// Returns:
//   - Source: The opened source, owned by the caller
//   - Info: How the file was opened
//   - error: errs.ErrIO on open, read or decompression failures,
//     errs.ErrUnsupportedFormat for containers over the size limit
func Open(path string, cfg Config) (Source, Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Info{}, errs.IO("open", err)
	}

	src, info, err := open(f, cfg)
	if err != nil {
		f.Close()
		return nil, Info{}, err
	}

	return src, info, nil
}

func open(f *os.File, cfg Config) (Source, Info, error) {
	st, err := f.Stat()
	if err != nil {
		return nil, Info{}, errs.IO("stat", err)
	}
	size := st.Size()

	prefix := make([]byte, compress.MagicLen)
	n, err := f.ReadAt(prefix, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, Info{}, errs.IO("read prefix", err)
	}

	ct := compress.Detect(prefix[:n])
	if ct != format.CompressionNone {
		src, err := decompressFile(f, size, ct, cfg.MaxDecompressedSize)
		if err != nil {
			return nil, Info{}, err
		}
		// The decompressed copy is self-contained.
		f.Close()

		return src, Info{Compression: ct}, nil
	}

	if cfg.Mmap && size > 0 {
		m, err := mmap.Map(f, mmap.RDONLY, 0)
		if err != nil {
			return nil, Info{}, errs.IO("mmap", err)
		}

		return &mappedSource{file: f, data: m, Reader: bytes.NewReader(m)}, Info{Compression: ct, Mapped: true}, nil
	}

	return &fileSource{File: f, size: size}, Info{Compression: ct}, nil
}

func decompressFile(f *os.File, size int64, ct format.CompressionType, limit int64) (Source, error) {
	if limit <= 0 {
		limit = DefaultMaxDecompressedSize
	}

	raw := make([]byte, size)
	if _, err := f.ReadAt(raw, 0); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.IO("read container", err)
	}

	codec, err := compress.CreateCodec(ct, "container")
	if err != nil {
		return nil, errs.Unsupported("%v", err)
	}

	data, err := codec.Decompress(raw, limit)
	if errors.Is(err, compress.ErrSizeLimit) {
		return nil, errs.Unsupported("%s container expands beyond the %d byte limit", ct, limit)
	}
	if err != nil {
		return nil, errs.IO("decompress "+ct.String(), err)
	}

	return NewMemory(data), nil
}

// NewMemory wraps an in-memory FCS image as a Source. Close is a no-op.
func NewMemory(data []byte) Source {
	return memorySource{Reader: bytes.NewReader(data)}
}

// NopCloser wraps a caller-owned reader of known size; Close does not touch it.
func NopCloser(r io.ReaderAt, size int64) Source {
	return readerAtSource{r: r, size: size}
}

type fileSource struct {
	*os.File
	size int64
}

func (s *fileSource) Size() int64 { return s.size }

type mappedSource struct {
	*bytes.Reader
	file *os.File
	data mmap.MMap
}

func (s *mappedSource) Close() error {
	uerr := s.data.Unmap()
	cerr := s.file.Close()
	if uerr != nil {
		return fmt.Errorf("unmap: %w", uerr)
	}

	return cerr
}

type memorySource struct {
	*bytes.Reader
}

func (memorySource) Close() error { return nil }

type readerAtSource struct {
	r    io.ReaderAt
	size int64
}

func (s readerAtSource) ReadAt(p []byte, off int64) (int, error) { return s.r.ReadAt(p, off) }
func (s readerAtSource) Size() int64                             { return s.size }
func (readerAtSource) Close() error                              { return nil }
