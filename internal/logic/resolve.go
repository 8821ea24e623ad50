package logic

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tidwall/match"

	"github.com/idelchi/pstcrypt/internal/config"
)

// ErrNoFiles is returned when the arguments select no file.
var ErrNoFiles = errors.New("no files matched")

// resolveFiles expands directories in cfg.Files and applies the include filter.
// Explicit files bypass filtering. When decoding without an include filter,
// only files carrying the encode suffix are taken from directories.
// It returns the number of files scanned before filtering.
func resolveFiles(cfg *config.Config) (int, error) {
	includes := append([]string{}, cfg.Include...)

	if !cfg.Encode && len(includes) == 0 && cfg.Suffixes.Encoded != "" {
		includes = append(includes, "*"+cfg.Suffixes.Encoded)
	}

	files, scanned, err := resolve(cfg.Files, includes)
	if err != nil {
		return scanned, err
	}

	cfg.Files = files

	return scanned, nil
}

// resolve walks args and returns the files to process, without duplicates.
func resolve(args, includes []string) (files []string, scanned int, err error) {
	seen := make(map[string]struct{})

	add := func(file string) {
		if _, ok := seen[file]; ok {
			return
		}

		seen[file] = struct{}{}
		files = append(files, file)
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return nil, 0, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			scanned++

			add(arg)

			continue
		}

		err = filepath.WalkDir(arg, func(file string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.Type().IsRegular() {
				return nil
			}

			scanned++

			rel, err := filepath.Rel(arg, file)
			if err != nil {
				return err
			}

			if matches(includes, filepath.ToSlash(rel)) {
				add(file)
			}

			return nil
		})
		if err != nil {
			return nil, 0, fmt.Errorf("walking %q: %w", arg, err)
		}
	}

	if len(files) == 0 {
		return nil, scanned, fmt.Errorf("%w: %v", ErrNoFiles, args)
	}

	return files, scanned, nil
}

// matches reports whether rel, a slash-separated path below the walked
// directory, matches any pattern. No patterns match everything.
//
// A pattern containing a slash is matched against rel with find -path
// semantics, so * also crosses directories: "nested/*.pst" selects
// nested/a.pst and nested/2024/b.pst. Other patterns match the base name.
func matches(patterns []string, rel string) bool {
	if len(patterns) == 0 {
		return true
	}

	name := path.Base(rel)

	for _, pattern := range patterns {
		if strings.Contains(pattern, "/") {
			if match.Match(rel, strings.TrimPrefix(pattern, "./")) {
				return true
			}

			continue
		}

		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}

	return false
}
