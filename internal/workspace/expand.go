// Package workspace runs the fixer over files: glob expansion, bounded
// parallel fixing and watch mode.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoInput is returned when the arguments match no files.
var ErrNoInput = errors.New("no input files")

// DefaultPatterns match YAML files at any depth.
var DefaultPatterns = []string{"**/*.yaml", "**/*.yml"}

// Expand resolves command-line arguments to a sorted, deduplicated list of
// files. A directory contributes every file under it matching patterns; an
// argument with glob metacharacters is matched with ** support; anything
// else must be an existing file.
func Expand(args, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	seen := make(map[string]bool)

	var files []string

	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)

		switch {
		case err == nil && info.IsDir():
			matches, err := globDir(arg, patterns)
			if err != nil {
				return nil, err
			}

			for _, m := range matches {
				add(m)
			}
		case err == nil:
			add(arg)
		case hasMeta(arg):
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("glob error in %s: %w", arg, err)
			}

			for _, m := range matches {
				add(m)
			}
		default:
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoInput
	}

	slices.Sort(files)

	return files, nil
}

func globDir(dir string, patterns []string) ([]string, error) {
	fsys := os.DirFS(dir)

	var out []string

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob error in %s: %w", pattern, err)
		}

		for _, m := range matches {
			if skipped(m) {
				continue
			}

			out = append(out, filepath.Join(dir, filepath.FromSlash(m)))
		}
	}

	return out, nil
}

// Matches reports whether the slash-separated relative path matches one of
// patterns.
func Matches(rel string, patterns []string) bool {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	rel = filepath.ToSlash(rel)
	if skipped(rel) {
		return false
	}

	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}

	return false
}

var excludedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// skipped reports whether a relative path lies inside an excluded or
// hidden directory.
func skipped(rel string) bool {
	dir := filepath.Dir(filepath.FromSlash(rel))
	for dir != "." && dir != string(filepath.Separator) {
		base := filepath.Base(dir)
		if excludedDirs[base] || (base != "." && strings.HasPrefix(base, ".")) {
			return true
		}

		dir = filepath.Dir(dir)
	}

	return false
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
