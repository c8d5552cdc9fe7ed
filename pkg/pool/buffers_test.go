package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetBufferIsEmpty(t *testing.T) {
	buf := GetBuffer()
	buf.WriteString("<div>used</div>")
	PutBuffer(buf)

	assert.Zero(t, GetBuffer().Len())
}

func TestPutBufferIgnoresNilAndOversized(t *testing.T) {
	assert.NotPanics(t, func() { PutBuffer(nil) })

	big := bytes.NewBuffer(make([]byte, 0, MaxPooledBuffer+1))
	assert.NotPanics(t, func() { PutBuffer(big) })
}
