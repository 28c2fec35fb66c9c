package section

// HEADER layout.
const (
	HeaderSize     = 58 // fixed HEADER size in bytes
	FormatTagSize  = 6  // size of the version identifier
	ReservedSize   = 4  // spaces following the version identifier
	OffsetSize     = 8  // width of every ASCII offset field
	OffsetFieldsAt = FormatTagSize + ReservedSize

	// ExpectedFormatTag is the version this decoder is written against.
	ExpectedFormatTag = "FCS3.0"
)

// Segment names used in warnings and errors.
const (
	SegmentHeader   = "HEADER"
	SegmentText     = "TEXT"
	SegmentData     = "DATA"
	SegmentAnalysis = "ANALYSIS"
)
