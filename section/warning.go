package section

// Warning is a non-fatal condition found while decoding. Decoding continues after it.
type Warning struct {
	// Segment is the segment the condition was found in, e.g. SegmentHeader.
	Segment string
	// Message describes the condition.
	Message string
}

func (w Warning) String() string {
	return w.Segment + ": " + w.Message
}
