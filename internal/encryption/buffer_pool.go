package encryption

import (
	"sync"
)

const defaultBufferSize = 64 * 1024

// bufferPool provides reusable buffers for streaming whole-file blocks.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, defaultBufferSize)

		return &buf
	},
}
