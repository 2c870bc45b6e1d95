package transform

import "errors"

var (
	ErrDimensionMismatch = errors.New("source dimensions do not fit the transform")
	ErrInvalidKernel     = errors.New("invalid convolution kernel")
	ErrInvalidTarget     = errors.New("invalid target dimensions")
	ErrUnknownAlgorithm  = errors.New("unknown algorithm")
)
