package pstcrypt

import (
	"fmt"
	"strings"
)

// Mode is the obfuscation scheme declared by a PST file header.
// The numeric values match the on-disk encoding.
type Mode uint8

const (
	// ModeNone stores bytes unchanged.
	ModeNone Mode = iota
	// ModeCompressible substitutes each byte through a single permutation (NDB_CRYPT_PERMUTE).
	ModeCompressible
	// ModeHigh chains three permutations with a per-byte salt (NDB_CRYPT_CYCLIC).
	ModeHigh
)

// Validate reports whether m is one of the supported modes.
func (m Mode) Validate() error {
	switch m {
	case ModeNone, ModeCompressible, ModeHigh:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedMode, uint8(m))
	}
}

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeCompressible:
		return "compressible"
	case ModeHigh:
		return "high"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode converts a mode name to a Mode.
// Besides the canonical names it accepts the MS-PST terms "permute" and "cyclic".
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return ModeNone, nil
	case "compressible", "permute":
		return ModeCompressible, nil
	case "high", "cyclic":
		return ModeHigh, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMode, name)
	}
}
