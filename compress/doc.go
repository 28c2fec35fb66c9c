// Package compress recognizes and decodes compressed FCS containers.
//
// Acquisition pipelines frequently archive .fcs files with a general purpose
// compressor. The decoder needs random access to the HEADER, TEXT and DATA
// segments, so a compressed container is decompressed in full before parsing.
//
// Supported containers are identified by their magic bytes:
//
//	Zstd  28 B5 2F FD          Zstandard frame
//	Gzip  1F 8B                gzip member
//	LZ4   04 22 4D 18          LZ4 frame
//	S2    FF 06 00 00 S2sTwO   S2 stream (Snappy streams "sNaPpY" are accepted too)
//
// A plain FCS file starts with "FCS" and is reported as CompressionNone.
//
// Decompress takes an output limit and stops with ErrSizeLimit as soon as it is
// exceeded, so a container that expands far beyond its on-disk size is rejected
// without materializing it.
//
// Zstandard uses github.com/klauspost/compress/zstd with pooled encoders. Building
// with cgo and the "gozstd" tag switches to github.com/valyala/gozstd instead.
package compress
