//go:build !cgo || !gozstd

package compress

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdMinWindowBudget is the smallest window the decoder accepts under a limit.
// Encoders round windows up to a power of two, so a frame may declare a window
// larger than its content.
const zstdMinWindowBudget = 8 << 20

// zstdEncoderPool keeps encoders for reuse.
//
// Creating a zstd.Encoder allocates its match tables up front, which dominates the cost
// of compressing a small container. EncodeAll is safe to call on a pooled encoder.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}

		return encoder
	},
}

// Compress compresses the input data into a single Zstandard frame.
//
// Parameters:
//   - data: Plain container bytes
//
// Returns:
//   - []byte: A newly allocated Zstandard frame
//   - error: Always nil
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decompresses one or more concatenated Zstandard frames.
//
// Decoding streams through a single-goroutine decoder. With a positive limit the
// decoder is also created with WithDecoderMaxMemory, which rejects frames whose window
// alone would exceed max(limit, zstdMinWindowBudget) before the window is allocated.
//
// Parameters:
//   - data: Zstandard frames
//   - limit: Maximum output size in bytes, <= 0 for no limit
//
// Returns:
//   - []byte: Decompressed content
//   - error: ErrSizeLimit (wrapped) when the output would exceed limit, or a decoding error
func (c ZstdCompressor) Decompress(data []byte, limit int64) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	opts := []zstd.DOption{zstd.WithDecoderConcurrency(1)}
	if limit > 0 {
		opts = append(opts, zstd.WithDecoderMaxMemory(uint64(max(limit, zstdMinWindowBudget))))
	}

	decoder, err := zstd.NewReader(bytes.NewReader(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	defer decoder.Close()

	out, err := readLimited(decoder, limit)
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
		return nil, fmt.Errorf("zstd decompression failed: %w: %w", ErrSizeLimit, err)
	}
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}
