package compress

// ZstdCompressor handles Zstandard frames, the most common archive format for
// acquisition output.
//
// Two implementations exist behind the same type:
//   - zstd_pure.go: github.com/klauspost/compress/zstd, the default
//   - zstd_cgo.go: github.com/valyala/gozstd, selected with cgo and the "gozstd" build tag
//
// Both produce standard frames, so a container written by one is readable by the other.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec.
//
// Returns:
//   - ZstdCompressor: New Zstd codec instance
//
// Example:
//
//	codec := NewZstdCompressor()
//	packed, err := codec.Compress(image)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
