// Package config holds the command-line configuration and its validation.
package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/gogen/pkg/validator"
	"github.com/idelchi/pstcrypt/pkg/pstcrypt"
)

// Suffixes controls the naming of output files.
type Suffixes struct {
	// Encoded is appended to encoded files and stripped from decoded ones.
	Encoded string `mapstructure:"encode-ext" json:"encode-ext"`
	// Decoded is appended to decoded files.
	Decoded string `mapstructure:"decode-ext" json:"decode-ext"`
}

// Log controls diagnostic output.
type Log struct {
	Level string `mapstructure:"log-level" validate:"oneof=trace debug info warn error off" json:"log-level"`
	JSON  bool   `mapstructure:"log-json" json:"log-json"`
}

// Config is the configuration of a decode or encode run.
type Config struct {
	// Mode is the obfuscation mode applied to every block, unless a manifest is given.
	Mode string `mapstructure:"mode" validate:"required_without=Manifest" json:"mode"`
	// Key is the 32-bit block key, in decimal or with a 0x/0o/0b prefix.
	Key string `mapstructure:"key" validate:"omitempty,blockkey" json:"key"`
	// BlockSize splits files into independently keyed blocks, e.g. "512" or "8KiB".
	BlockSize string `mapstructure:"block-size" validate:"omitempty,bytesize,exclusive=Manifest" json:"block-size"`
	// Manifest is a JSONC file listing the regions to transform.
	Manifest string `mapstructure:"manifest" validate:"omitempty,file" json:"manifest"`
	// Include filters files found in directories, by base name or, for
	// patterns with a slash, by path below the walked directory.
	Include []string `mapstructure:"include" validate:"dive,glob" json:"include"`

	Parallel           int  `mapstructure:"parallel" validate:"min=1" json:"parallel"`
	Quiet              bool `mapstructure:"quiet" json:"quiet"`
	Delete             bool `mapstructure:"delete" json:"delete"`
	Dry                bool `mapstructure:"dry" json:"dry"`
	Stats              bool `mapstructure:"stats" json:"stats"`
	PreserveTimestamps bool `mapstructure:"preserve-timestamps" json:"preserve-timestamps"`
	Show               bool `mapstructure:"show" json:"-"`

	Suffixes `mapstructure:",squash"`
	Log      `mapstructure:",squash"`

	// Encode selects the forward direction; set by the encode command.
	Encode bool `mapstructure:"-" json:"encode"`

	// Files are the positional arguments.
	Files []string `mapstructure:"-" validate:"min=1" json:"files"`

	// Resolved holds the parsed forms of Mode, Key and BlockSize after Validate.
	Resolved Resolved `mapstructure:"-" json:"-"`
}

// Resolved carries values parsed out of their string flags.
type Resolved struct {
	Mode      pstcrypt.Mode
	Key       uint32
	BlockSize int
}

// Display reports whether the configuration should be shown instead of run.
func (c *Config) Display() bool {
	return c.Show
}

// Validate checks config against its struct tags and then resolves the mode,
// key and block size of c.
func (c *Config) Validate(config any) error {
	v := validator.NewValidator()

	if err := register(v); err != nil {
		return err
	}

	if errs := v.Validate(config); len(errs) > 0 {
		return fmt.Errorf("validating configuration: %w", errors.Join(errs...))
	}

	return c.resolve()
}

func (c *Config) resolve() error {
	if c.Mode != "" {
		mode, err := pstcrypt.ParseMode(c.Mode)
		if err != nil {
			return fmt.Errorf("invalid mode: %w", err)
		}

		c.Resolved.Mode = mode
	}

	if c.Key != "" {
		key, err := ParseKey(c.Key)
		if err != nil {
			return err
		}

		c.Resolved.Key = key
	}

	if c.BlockSize != "" {
		size, err := parseBlockSize(c.BlockSize)
		if err != nil {
			return err
		}

		c.Resolved.BlockSize = size
	}

	return nil
}

// ParseKey parses a 32-bit block key. The base is taken from the prefix,
// so "3735928559", "0xdeadbeef" and "0o33653337357" are the same key.
func ParseKey(s string) (uint32, error) {
	key, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid key %q: %w", s, err)
	}

	return uint32(key), nil
}

func parseBlockSize(s string) (int, error) {
	size, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid block size %q: %w", s, err)
	}

	if size == 0 || size > maxBlockSize {
		return 0, fmt.Errorf("invalid block size %q: must be between 1 and %s", s, humanize.IBytes(maxBlockSize))
	}

	return int(size), nil
}

// maxBlockSize bounds a single block held in memory.
const maxBlockSize = 1 << 30
