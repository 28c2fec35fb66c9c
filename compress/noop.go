package compress

import "fmt"

// NoOpCompressor passes plain FCS content through unchanged.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data as-is; the result shares memory with the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data as-is; the result shares memory with the input.
// It fails with ErrSizeLimit when data itself is longer than limit.
func (c NoOpCompressor) Decompress(data []byte, limit int64) ([]byte, error) {
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", ErrSizeLimit, len(data), limit)
	}

	return data, nil
}
