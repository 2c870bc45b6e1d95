package imaging

import "errors"

var (
	ErrInputUnavailable = errors.New("input image unavailable")
	ErrInvalidDepth     = errors.New("channel depth must be 1 or 3")
	ErrInvalidExtent    = errors.New("buffer extents must be positive")
	ErrRaggedRows       = errors.New("rows have different lengths")
	ErrUnknownTier      = errors.New("unknown resolution tier")
)
