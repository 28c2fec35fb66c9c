// Package section parses the fixed HEADER segment of an FCS file and the delimiter
// framing of its TEXT segment.
//
// # File Layout
//
// An FCS 3.0 file starts with a 58 byte HEADER followed by segments located through it:
//
//	┌──────────────────────────────────────────────────────────┐
//	│ HEADER (58 bytes, fixed)                                 │
//	│  0-5    format tag, "FCS3.0"                             │
//	│  6-9    reserved (spaces)                                │
//	│  10-17  TEXT start       18-25  TEXT end                 │
//	│  26-33  DATA start       34-41  DATA end                 │
//	│  42-49  ANALYSIS start   50-57  ANALYSIS end             │
//	├──────────────────────────────────────────────────────────┤
//	│ TEXT: |KEY|value|KEY|value|...|                          │
//	├──────────────────────────────────────────────────────────┤
//	│ DATA: event-major fixed-width values                     │
//	├──────────────────────────────────────────────────────────┤
//	│ ANALYSIS (optional, not decoded)                         │
//	└──────────────────────────────────────────────────────────┘
//
// Offsets are right-justified ASCII decimal numbers and are inclusive: a segment
// spans End-Start+1 bytes.
//
// # TEXT Framing
//
// The first byte of the TEXT segment is the delimiter and the last byte must repeat
// it. Keys and values alternate between delimiters. FCS 3.x escapes a delimiter inside
// a value by doubling it; SplitText unescapes doubled delimiters unless asked to split
// literally.
package section
