package pstcrypt

import (
	"fmt"
	"io"
)

// Cipher transforms a single block that arrives in pieces.
// The high-mode salt carries over from one call to the next, so decoding a block
// chunk by chunk yields the same bytes as decoding it in one call.
// A Cipher is not safe for concurrent use.
type Cipher struct {
	mode Mode
	key  uint32
	salt salt
}

// NewCipher returns a Cipher positioned at the first byte of a block.
func NewCipher(mode Mode, key uint32) (*Cipher, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	return &Cipher{mode: mode, key: key, salt: newSalt(key)}, nil
}

// Mode returns the mode the cipher was created with.
func (c *Cipher) Mode() Mode {
	return c.mode
}

// Decode decodes p in place as the next bytes of the block.
func (c *Cipher) Decode(p []byte) {
	switch c.mode {
	case ModeCompressible:
		decodeCompressible(p)
	case ModeHigh:
		c.salt = decodeHigh(p, c.salt)
	case ModeNone:
	}
}

// Encode encodes p in place as the next bytes of the block.
func (c *Cipher) Encode(p []byte) {
	switch c.mode {
	case ModeCompressible:
		encodeCompressible(p)
	case ModeHigh:
		c.salt = encodeHigh(p, c.salt)
	case ModeNone:
	}
}

// Reset rewinds the cipher to the start of a block.
func (c *Cipher) Reset() {
	c.salt = newSalt(c.key)
}

type reader struct {
	r      io.Reader
	cipher *Cipher
}

// NewReader returns a reader that decodes everything read from r as one block.
func NewReader(r io.Reader, mode Mode, key uint32) (io.Reader, error) {
	c, err := NewCipher(mode, key)
	if err != nil {
		return nil, fmt.Errorf("creating reader: %w", err)
	}

	return &reader{r: r, cipher: c}, nil
}

func (r *reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		r.cipher.Decode(p[:n])
	}

	return n, err //nolint:wrapcheck // io.EOF must pass through unwrapped
}

const writerBufferSize = 4096

type writer struct {
	w      io.Writer
	cipher *Cipher
	buf    []byte
}

// NewWriter returns a writer that encodes everything written to it as one block
// before passing it to w. The slices given to Write are not modified.
func NewWriter(w io.Writer, mode Mode, key uint32) (io.Writer, error) {
	c, err := NewCipher(mode, key)
	if err != nil {
		return nil, fmt.Errorf("creating writer: %w", err)
	}

	return &writer{w: w, cipher: c, buf: make([]byte, writerBufferSize)}, nil
}

func (w *writer) Write(p []byte) (int, error) {
	var written int

	for len(p) > 0 {
		n := copy(w.buf, p)
		chunk := w.buf[:n]

		w.cipher.Encode(chunk)

		m, err := w.w.Write(chunk)
		written += m

		if err != nil {
			return written, fmt.Errorf("writing encoded data: %w", err)
		}

		if m < n {
			return written, io.ErrShortWrite
		}

		p = p[n:]
	}

	return written, nil
}
