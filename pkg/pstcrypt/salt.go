package pstcrypt

// salt is the per-byte state of the high mode.
type salt uint16

// newSalt folds the 32-bit block key into the initial salt.
func newSalt(key uint32) salt {
	return salt(uint16(key>>16) ^ uint16(key))
}

func (s salt) split() (lower, upper byte) {
	return byte(s), byte(s >> 8)
}

// advance wraps at 0xffff.
func (s salt) advance() salt {
	return s + 1
}
