package oracle

import (
	"context"
	"errors"
)

var (
	// ErrInvalidParameter is returned when the request parameters cannot be turned
	// into an instrument, or the fetched mark IV cannot be encoded.
	ErrInvalidParameter = errors.New("InvalidParameter")
	// ErrFetch is returned when the order book could not be fetched or read.
	ErrFetch = errors.New("FetchError")
)

const (
	KindInvalidParameter = "InvalidParameter"
	KindFetchError       = "FetchError"
	KindUnknown          = "Unknown"
)

// ErrorKind maps err onto the error kinds reported to the host.
// Context cancellation and deadline errors count as fetch failures.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidParameter):
		return KindInvalidParameter
	case errors.Is(err, ErrFetch),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return KindFetchError
	default:
		return KindUnknown
	}
}
