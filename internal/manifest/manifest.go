// Package manifest reads the list of blocks to transform inside a file.
//
// A manifest is a JSONC array of regions, as produced by a PST index walker:
//
//	[
//	  // node-map page
//	  {"offset": 17408, "size": 512, "mode": "compressible"},
//	  {"offset": 20480, "size": 8192, "mode": "high", "key": "0x00210024"},
//	]
//
// Bytes outside the listed regions are copied unchanged.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"

	"github.com/tidwall/jsonc"

	"github.com/idelchi/pstcrypt/pkg/pstcrypt"
)

var (
	// ErrOutOfBounds is returned for a region that does not fit in the file.
	ErrOutOfBounds = errors.New("region out of bounds")
	// ErrOverlap is returned when two regions share bytes.
	ErrOverlap = errors.New("regions overlap")
)

// Region is one block of a file together with its obfuscation parameters.
type Region struct {
	Offset int64
	Size   int64
	Mode   pstcrypt.Mode
	Key    uint32
}

// End returns the offset just past the region.
func (r Region) End() int64 {
	return r.Offset + r.Size
}

type entry struct {
	Offset int64  `json:"offset"`
	Size   int64  `json:"size"`
	Mode   string `json:"mode"`
	Key    key    `json:"key"`
}

// key accepts both JSON numbers and strings in any base understood by strconv.
type key uint32

func (k *key) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}

	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return fmt.Errorf("parsing key %s: %w", data, err)
	}

	*k = key(v)

	return nil
}

// Load reads a JSONC manifest and returns its regions in file order.
func Load(path string) ([]Region, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return nil, fmt.Errorf("reading manifest %q: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes manifest content. The input buffer is rewritten during parsing.
func Parse(data []byte) ([]Region, error) {
	clean := jsonc.ToJSONInPlace(data)

	var entries []entry
	if err := json.Unmarshal(clean, &entries); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	regions := make([]Region, 0, len(entries))

	for i, e := range entries {
		if e.Offset < 0 || e.Size < 0 {
			return nil, fmt.Errorf("region %d: negative offset or size", i)
		}

		if e.Size > math.MaxInt64-e.Offset {
			return nil, fmt.Errorf("%w: region %d ends past the largest file offset", ErrOutOfBounds, i)
		}

		mode, err := pstcrypt.ParseMode(e.Mode)
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}

		regions = append(regions, Region{Offset: e.Offset, Size: e.Size, Mode: mode, Key: uint32(e.Key)})
	}

	slices.SortFunc(regions, func(a, b Region) int {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		default:
			return 0
		}
	})

	for i := 1; i < len(regions); i++ {
		if regions[i].Offset < regions[i-1].End() {
			return nil, fmt.Errorf("%w: [%d, %d) and [%d, %d)", ErrOverlap,
				regions[i-1].Offset, regions[i-1].End(), regions[i].Offset, regions[i].End())
		}
	}

	return regions, nil
}

// Check verifies that every region lies within a file of the given size.
func Check(regions []Region, size int64) error {
	for _, r := range regions {
		if r.Offset < 0 || r.Size < 0 || r.Offset > size || r.Size > size-r.Offset {
			return fmt.Errorf("%w: offset %d size %d exceeds file size %d", ErrOutOfBounds, r.Offset, r.Size, size)
		}
	}

	return nil
}
