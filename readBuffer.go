package aseq

import (
	"errors"
	"io"
)

const (
	defaultChunkSize = 1024
	maxChunkSize     = 8 * 1024 * 1024
)

type readBuffer struct {
	buf []byte
	end int
}

func (rb *readBuffer) init(size int) {
	if size <= 0 {
		size = defaultChunkSize
	}
	if size > maxChunkSize {
		size = maxChunkSize
	}
	if len(rb.buf) != size {
		rb.buf = make([]byte, size)
	}
	rb.end = 0
}

func (rb *readBuffer) window() []byte {
	return rb.buf[:rb.end]
}

// readChunk fills the buffer from r. Short reads only happen at the end of
// the stream, in which case io.EOF is returned alongside the final bytes.
func (rb *readBuffer) readChunk(r io.Reader) error {
	n, err := io.ReadFull(r, rb.buf)
	rb.end = n
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return io.EOF
	}
	return err
}
