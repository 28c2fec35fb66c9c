// Package event validates the layout assumptions of an FCS DATA segment and decodes
// it into an event matrix.
//
// Decoding is a three step affair:
//
//	if err := event.CheckAssumptions(store); err != nil { ... } // unsupported variants
//	dec, err := event.NewDecoder(r, size, header, store)      // resolve Layout
//	m, err := dec.Decode()                                     // one ReadAt, one pass
//
// The decoder only handles list-mode files ($MODE=L) whose channels share a single
// IEEE-754 width ($DATATYPE=F or D). The resulting Matrix is event-major: row i is
// event i, column j is channel j in keyword order.
package event
