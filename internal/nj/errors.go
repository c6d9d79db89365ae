package nj

import "errors"

// Parse errors. Failures wrap one of these with file context; nothing is
// recovered internally and no partial model is returned on error.
var (
	ErrBadMagic    = errors.New("bad magic")
	ErrUnsupported = errors.New("unsupported chunk type")
	ErrTruncated   = errors.New("truncated input")
	ErrCyclic      = errors.New("cyclic object reference")
)
