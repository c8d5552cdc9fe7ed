// Package pool reuses render buffers on the hot path.
package pool

import (
	"bytes"
	"sync"
)

// MaxPooledBuffer is the largest buffer capacity returned to the pool. A
// full site preview with every section enabled stays well below it.
const MaxPooledBuffer = 256 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// GetBuffer retrieves an empty buffer from the pool.
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool. Oversized buffers are dropped.
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > MaxPooledBuffer {
		return
	}
	bufferPool.Put(buf)
}
