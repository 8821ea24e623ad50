package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idelchi/gogen/pkg/validator"
	"github.com/idelchi/pstcrypt/internal/config"
	"github.com/idelchi/pstcrypt/pkg/pstcrypt"
)

func valid() config.Config {
	return config.Config{
		Mode:     "high",
		Key:      "0xdeadbeef",
		Parallel: 2,
		Log:      config.Log{Level: "warn"},
		Files:    []string{"mail.pst"},
	}
}

func TestValidateResolves(t *testing.T) {
	t.Parallel()

	cfg := valid()
	cfg.BlockSize = "8KiB"

	if err := cfg.Validate(&cfg); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	want := config.Resolved{Mode: pstcrypt.ModeHigh, Key: 0xdeadbeef, BlockSize: 8192}
	if cfg.Resolved != want {
		t.Errorf("Resolved = %+v, want %+v", cfg.Resolved, want)
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	manifest := filepath.Join(t.TempDir(), "blocks.jsonc")
	if err := os.WriteFile(manifest, []byte("[]"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		modify func(*config.Config)
		want   string
	}{
		{name: "missing mode", modify: func(c *config.Config) { c.Mode = "" }, want: "mode"},
		{name: "unknown mode", modify: func(c *config.Config) { c.Mode = "aes" }, want: "invalid mode"},
		{name: "key too large", modify: func(c *config.Config) { c.Key = "0x100000000" }, want: "key"},
		{name: "key not a number", modify: func(c *config.Config) { c.Key = "secret" }, want: "key"},
		{name: "zero block size", modify: func(c *config.Config) { c.BlockSize = "0" }, want: "block-size"},
		{name: "bad block size", modify: func(c *config.Config) { c.BlockSize = "lots" }, want: "block-size"},
		{
			name: "block size with manifest",
			modify: func(c *config.Config) {
				c.BlockSize = "512"
				c.Manifest = manifest
			},
			want: "exclusive",
		},
		{name: "missing manifest", modify: func(c *config.Config) { c.Manifest = "nope.jsonc" }, want: "manifest"},
		{name: "no parallelism", modify: func(c *config.Config) { c.Parallel = 0 }, want: "parallel"},
		{name: "no files", modify: func(c *config.Config) { c.Files = nil }, want: "Files"},
		{name: "bad log level", modify: func(c *config.Config) { c.Level = "loud" }, want: "log-level"},
		{name: "bad include", modify: func(c *config.Config) { c.Include = []string{"[a"} }, want: "include"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.modify(&cfg)

			err := cfg.Validate(&cfg)
			if err == nil {
				t.Fatal("Validate() succeeded, want error")
			}

			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestManifestReplacesMode(t *testing.T) {
	t.Parallel()

	manifest := filepath.Join(t.TempDir(), "blocks.jsonc")
	if err := os.WriteFile(manifest, []byte("[]"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := valid()
	cfg.Mode = ""
	cfg.Manifest = manifest

	if err := cfg.Validate(&cfg); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
}

func TestParseKey(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"3735928559", "0xdeadbeef", "0XDEADBEEF", "0o33653337357"} {
		key, err := config.ParseKey(s)
		if err != nil {
			t.Errorf("ParseKey(%q) error: %v", s, err)
		}

		if key != 0xdeadbeef {
			t.Errorf("ParseKey(%q) = %#x, want 0xdeadbeef", s, key)
		}
	}

	if _, err := config.ParseKey("-1"); err == nil {
		t.Error("ParseKey(-1) succeeded, want error")
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	cfg := valid()
	if cfg.Display() {
		t.Error("Display() = true without --show")
	}

	cfg.Show = true
	if !cfg.Display() {
		t.Error("Display() = false with --show")
	}
}

func TestValidateMessages(t *testing.T) {
	t.Parallel()

	cfg := valid()
	cfg.Key = "secret"
	cfg.BlockSize = "lots"

	err := cfg.Validate(&cfg)
	if err == nil {
		t.Fatal("Validate() succeeded, want error")
	}

	for _, want := range []string{
		"key must be a 32-bit integer",
		"block-size must be a size between 1B and 1GiB",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error = %q, want it to contain %q", err, want)
		}
	}

	if !errors.Is(err, validator.ErrValidation) {
		t.Errorf("Validate() error = %v, want ErrValidation", err)
	}
}
