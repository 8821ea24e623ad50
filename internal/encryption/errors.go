package encryption

import "errors"

var (
	// ErrUnexpectedSize is returned when the number of transformed bytes differs from the block size.
	ErrUnexpectedSize = errors.New("transformed size mismatch")
	// ErrSameOutput is returned when the output path would overwrite the input.
	ErrSameOutput = errors.New("output path equals input path")
)
