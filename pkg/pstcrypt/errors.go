package pstcrypt

import "errors"

var (
	// ErrUnsupportedMode is returned for a mode outside none, compressible and high.
	ErrUnsupportedMode = errors.New("unsupported encryption mode")
	// ErrInvalidBuffer is returned when the buffer is missing or shorter than the requested size.
	ErrInvalidBuffer = errors.New("invalid buffer")
	// ErrLengthOverflow is returned when the requested size is not a valid byte count.
	ErrLengthOverflow = errors.New("size value exceeds maximum")
	// ErrUnknownTable is returned by Table for an unknown table name.
	ErrUnknownTable = errors.New("unknown permutation table")
)
