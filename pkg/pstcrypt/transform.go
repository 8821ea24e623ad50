package pstcrypt

import "fmt"

// Decode reverses the obfuscation of the first size bytes of data in place and
// returns the number of bytes processed.
//
// The key seeds the salt of ModeHigh and is ignored by the other modes.
// Arguments are validated before any byte is written: an unsupported mode, a
// buffer that is nil or shorter than size, or a negative size leaves data untouched.
// A zero size always succeeds, even with a nil buffer.
func Decode(mode Mode, key uint32, data []byte, size int) (int, error) {
	if err := validate(mode, data, size); err != nil {
		return 0, fmt.Errorf("decode: %w", err)
	}

	buf := data[:size]

	switch mode {
	case ModeCompressible:
		decodeCompressible(buf)
	case ModeHigh:
		decodeHigh(buf, newSalt(key))
	case ModeNone:
	}

	return size, nil
}

// Encode applies the obfuscation of mode to the first size bytes of data in place.
// It is the inverse of Decode for the same mode and key and validates its
// arguments the same way.
func Encode(mode Mode, key uint32, data []byte, size int) (int, error) {
	if err := validate(mode, data, size); err != nil {
		return 0, fmt.Errorf("encode: %w", err)
	}

	buf := data[:size]

	switch mode {
	case ModeCompressible:
		encodeCompressible(buf)
	case ModeHigh:
		encodeHigh(buf, newSalt(key))
	case ModeNone:
	}

	return size, nil
}

// DecodeBlock decodes all of data in place.
func DecodeBlock(mode Mode, key uint32, data []byte) error {
	_, err := Decode(mode, key, data, len(data))

	return err
}

// EncodeBlock encodes all of data in place.
func EncodeBlock(mode Mode, key uint32, data []byte) error {
	_, err := Encode(mode, key, data, len(data))

	return err
}

// validate checks the call shape in the order mode, buffer, size.
func validate(mode Mode, data []byte, size int) error {
	if err := mode.Validate(); err != nil {
		return err
	}

	if size > 0 && data == nil {
		return fmt.Errorf("%w: nil buffer for size %d", ErrInvalidBuffer, size)
	}

	if size > len(data) {
		return fmt.Errorf("%w: size %d exceeds buffer length %d", ErrInvalidBuffer, size, len(data))
	}

	if size < 0 {
		return fmt.Errorf("%w: %d", ErrLengthOverflow, size)
	}

	return nil
}

func decodeCompressible(data []byte) {
	for i, b := range data {
		data[i] = compressible[b]
	}
}

func encodeCompressible(data []byte) {
	for i, b := range data {
		data[i] = compressibleInv[b]
	}
}

// decodeHigh runs the salted substitution over data and returns the salt
// to use for the byte following it.
func decodeHigh(data []byte, s salt) salt {
	for i, b := range data {
		lower, upper := s.split()

		b = high1[b+lower]
		b = high2[b+upper] - upper
		data[i] = compressible[b] - lower

		s = s.advance()
	}

	return s
}

// encodeHigh mirrors decodeHigh step by step through the inverse tables.
func encodeHigh(data []byte, s salt) salt {
	for i, b := range data {
		lower, upper := s.split()

		b = compressibleInv[b+lower]
		b = high2Inv[b+upper] - upper
		data[i] = high1Inv[b] - lower

		s = s.advance()
	}

	return s
}
