// Package fcs decodes Flow Cytometry Standard (FCS 3.0) files into keyword metadata and
// a numeric event matrix.
//
// An FCS file holds three segments located by a fixed 58-byte HEADER: TEXT, a delimited
// list of keyword/value pairs describing the instrument and its channels; DATA, the
// recorded events; and an optional ANALYSIS segment, which this package does not decode.
//
// # Basic Usage
//
// Decoding a whole file:
//
//	res, err := fcs.Decode("sample.fcs")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Channels)             // $PnN names in channel order
//	fmt.Println(res.Events.At(0, 1))      // first event, second channel
//	v, _ := res.Metadata.Get("$CYT")      // any TEXT keyword, case-insensitive
//
// Reading only the metadata, without touching DATA:
//
//	res, err := fcs.Decode("sample.fcs", fcs.WithMetadataOnly())
//
// Working with a document, which decodes DATA lazily on first use and caches it:
//
//	doc, err := fcs.Open("sample.fcs", fcs.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	names := doc.ChannelNames()
//	m, err := doc.Data()
//
// # Supported Files
//
// The decoder reads list-mode ($MODE=L) single-dataset files whose channels all use
// the same IEEE-754 width ($DATATYPE=F or D) in one of the byte orders 1,2,3,4 /
// 4,3,2,1 / 1,2 / 2,1. Everything else is rejected with an error wrapping
// errs.ErrUnsupportedFormat. Files compressed as a whole with zstd, gzip, LZ4 or S2
// are decompressed transparently by Open and Decode.
//
// # Errors
//
// Every error wraps one of the sentinel kinds in package errs and can be matched with
// errors.Is. Non-fatal conditions are collected as section.Warning values on the
// document and logged at warning level.
package fcs
