package video

import "fmt"

// FormatError reports a pixel format that cannot serve the requested
// operation, like binding a palette with more entries than the bit depth
// can address, or converting to an indexed format that has no palette.
type FormatError struct {
	Reason string
}

func (e FormatError) Error() string { return "pixel format: " + e.Reason }

// BlitError reports a blit whose source cannot be read.
type BlitError struct {
	Reason string
}

func (e BlitError) Error() string { return "blit: " + e.Reason }

// AllocationError reports an invalid surface or palette allocation request.
type AllocationError struct {
	Reason string
}

func (e AllocationError) Error() string { return "alloc: " + e.Reason }

func formatErrorf(format string, args ...interface{}) FormatError {
	return FormatError{Reason: fmt.Sprintf(format, args...)}
}

func allocErrorf(format string, args ...interface{}) AllocationError {
	return AllocationError{Reason: fmt.Sprintf(format, args...)}
}
