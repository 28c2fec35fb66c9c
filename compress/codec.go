package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/fcs/format"
)

// Compressor compresses a whole container.
//
// The decoder itself never compresses; compressors exist so tools and tests can
// produce containers that Detect recognizes.
type Compressor interface {
	// Compress returns a newly allocated compressed copy of data.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a whole container.
//
// Implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress returns the decompressed content of data.
	// The input slice is not modified.
	//
	// Output is produced incrementally and decompression stops with ErrSizeLimit as soon
	// as more than limit bytes have been produced, so a small container cannot expand
	// beyond limit in memory. A limit <= 0 disables the bound.
	Decompress(data []byte, limit int64) ([]byte, error)
}

// ErrSizeLimit is returned by Decompress when the output would exceed its limit.
var ErrSizeLimit = errors.New("decompressed size exceeds limit")

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// MagicLen is the number of leading bytes Detect needs to identify every supported container.
const MagicLen = 10

var (
	magicZstd   = []byte{0x28, 0xB5, 0x2F, 0xFD}
	magicGzip   = []byte{0x1F, 0x8B}
	magicLZ4    = []byte{0x04, 0x22, 0x4D, 0x18}
	magicS2     = []byte{0xFF, 0x06, 0x00, 0x00, 'S', '2', 's', 'T', 'w', 'O'}
	magicSnappy = []byte{0xFF, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
)

// Detect identifies the container type from the first bytes of a file.
//
// Parameters:
//   - prefix: Leading bytes of the file (MagicLen bytes are enough)
//
// Returns:
//   - format.CompressionType: The detected compression, CompressionNone when no magic matches
func Detect(prefix []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(prefix, magicZstd):
		return format.CompressionZstd
	case bytes.HasPrefix(prefix, magicGzip):
		return format.CompressionGzip
	case bytes.HasPrefix(prefix, magicLZ4):
		return format.CompressionLZ4
	case bytes.HasPrefix(prefix, magicS2), bytes.HasPrefix(prefix, magicSnappy):
		return format.CompressionS2
	default:
		return format.CompressionNone
	}
}

// CreateCodec is a factory function that creates a Codec for the compression type.
//
// Parameters:
//   - compressionType: Type of compression
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionGzip:
		return NewGzipCompressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

// readLimited reads r to EOF, failing with ErrSizeLimit once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 || limit == math.MaxInt64 {
		return io.ReadAll(r)
	}

	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrSizeLimit, limit)
	}

	return out, nil
}
