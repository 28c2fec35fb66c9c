// Package meta holds the decoded TEXT segment of an FCS file.
//
// Store keeps every keyword/value pair in encounter order under upper-cased keys,
// and exposes typed accessors for the keywords the decoder depends on:
//
//	$PAR       number of parameters (channels)
//	$TOT       number of events
//	$NEXTDATA  offset of the next dataset, 0 when the file holds one
//	$BYTEORD   byte order literal
//	$DATATYPE  DATA value type
//	$MODE      acquisition mode
//	$PnB $PnN  per-channel bit width and short name
//	$PnS $PnR  per-channel label and range (optional)
//	$PnE       per-channel amplification (optional)
//
// Any other keyword stays reachable through Get.
package meta
