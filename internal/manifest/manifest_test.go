package manifest_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/idelchi/pstcrypt/internal/manifest"
	"github.com/idelchi/pstcrypt/pkg/pstcrypt"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	const content = `[
  // out of order on purpose
  {"offset": 1024, "size": 16, "mode": "high", "key": "0x00210024"},
  {"offset": 0, "size": 512, "mode": "compressible"}, /* no key */
  {"offset": 512, "size": 8, "mode": "cyclic", "key": 7},
]`

	path := filepath.Join(t.TempDir(), "blocks.jsonc")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	regions, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := []manifest.Region{
		{Offset: 0, Size: 512, Mode: pstcrypt.ModeCompressible},
		{Offset: 512, Size: 8, Mode: pstcrypt.ModeHigh, Key: 7},
		{Offset: 1024, Size: 16, Mode: pstcrypt.ModeHigh, Key: 0x00210024},
	}

	if !reflect.DeepEqual(regions, want) {
		t.Errorf("Load() = %+v, want %+v", regions, want)
	}

	if err := manifest.Check(regions, 1040); err != nil {
		t.Errorf("Check(1040) error: %v", err)
	}

	if err := manifest.Check(regions, 1039); !errors.Is(err, manifest.ErrOutOfBounds) {
		t.Errorf("Check(1039) error = %v, want ErrOutOfBounds", err)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content string
		want    error
	}{
		"overlap":      {content: `[{"offset": 0, "size": 10, "mode": "none"}, {"offset": 9, "size": 1, "mode": "none"}]`, want: manifest.ErrOverlap},
		"unknown mode": {content: `[{"offset": 0, "size": 10, "mode": "aes"}]`, want: pstcrypt.ErrUnsupportedMode},
		"bad key":      {content: `[{"offset": 0, "size": 10, "mode": "high", "key": "0x1ffffffff"}]`},
		"negative":     {content: `[{"offset": -1, "size": 10, "mode": "high"}]`},
		"not an array": {content: `{"offset": 0}`},
		"end overflows": {
			content: `[{"offset": 9000000000000000000, "size": 9000000000000000000, "mode": "none"}]`,
			want:    manifest.ErrOutOfBounds,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := manifest.Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}

			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCheckOverflow(t *testing.T) {
	t.Parallel()

	tests := map[string]manifest.Region{
		"end wraps":       {Offset: 9_000_000_000_000_000_000, Size: 9_000_000_000_000_000_000},
		"max size":        {Offset: 1, Size: math.MaxInt64},
		"offset past end": {Offset: 4097, Size: 0},
		"negative size":   {Offset: 0, Size: -1},
	}

	for name, region := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := manifest.Check([]manifest.Region{{Offset: 0, Size: 16}, region}, 4096)
			if !errors.Is(err, manifest.ErrOutOfBounds) {
				t.Errorf("Check() error = %v, want ErrOutOfBounds", err)
			}
		})
	}

	if err := manifest.Check([]manifest.Region{{Offset: 4096, Size: 0}}, 4096); err != nil {
		t.Errorf("Check() of empty region at end of file error: %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()

	if _, err := manifest.Load(filepath.Join(t.TempDir(), "missing.jsonc")); err == nil {
		t.Error("Load() succeeded for missing file")
	}
}
