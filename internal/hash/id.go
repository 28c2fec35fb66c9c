// Package hash provides the hash functions used for channel lookup and event data
// fingerprints.
package hash

import (
	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
)

// ChannelID computes the xxHash64 of a channel name.
func ChannelID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Fingerprint computes the XXH3 64-bit hash of data.
func Fingerprint(data []byte) uint64 {
	return xxh3.Hash(data)
}

// NewFingerprinter returns a streaming XXH3 hasher whose Sum64 matches Fingerprint
// over the concatenation of everything written to it.
func NewFingerprinter() *xxh3.Hasher {
	return xxh3.New()
}
