package inject

import "fmt"

// MalformedMarkerError reports marker text that cannot be delimited
// unambiguously. Consolidation stops at the first one.
type MalformedMarkerError struct {
	Offset int
	Reason string
}

func (e *MalformedMarkerError) Error() string {
	return fmt.Sprintf("malformed injection marker at offset %d: %s", e.Offset, e.Reason)
}

// MarkerDecodeError reports a payload whose escapes could not be decoded.
type MarkerDecodeError struct {
	Offset int
	Quote  byte
	Err    error
}

func (e *MarkerDecodeError) Error() string {
	return fmt.Sprintf("decode injection payload at offset %d (quote %q): %v", e.Offset, e.Quote, e.Err)
}

func (e *MarkerDecodeError) Unwrap() error {
	return e.Err
}
