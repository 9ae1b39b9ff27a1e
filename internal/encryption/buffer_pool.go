package encryption

import (
	"sync"
)

const defaultChunkSize = 32 * 1024 // 32KB, a multiple of every supported block size

// bufferPool provides reusable chunk buffers. Each buffer has room for one
// extra block so the final padded block can be appended in place.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, defaultChunkSize+maxBlockSize)

		return &buf
	},
}

// maxBlockSize is the largest block size of any supported cipher.
const maxBlockSize = 16

// getBuffer returns a buffer of at least size+maxBlockSize bytes and a function
// releasing it. Release wipes the buffer; only default-size buffers are pooled.
func getBuffer(size int) ([]byte, func()) {
	if size != defaultChunkSize {
		buf := make([]byte, size+maxBlockSize)

		return buf, func() { clear(buf) }
	}

	bufp, _ := bufferPool.Get().(*[]byte) //nolint:errcheck // type is guaranteed by New

	return *bufp, func() {
		clear(*bufp)
		bufferPool.Put(bufp)
	}
}
