package pvr

import "errors"

// Decode errors. Every failure surfaced by this package wraps one of these,
// so callers can branch with errors.Is while still seeing file context.
var (
	ErrBadMagic    = errors.New("bad magic")
	ErrUnsupported = errors.New("unsupported format code")
	ErrTruncated   = errors.New("truncated input")
	ErrIndexRange  = errors.New("index out of range")
	ErrEntryCount  = errors.New("entry count mismatch")
)
