// Package fs provides file-based input and output for documentation.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/cdoc"
)

// MaxSourceSize bounds the size of a single source file. Extraction works on
// one in-memory blob, so larger inputs are rejected.
const MaxSourceSize = 16 << 20

// Expand resolves paths and glob patterns (including "**") into a sorted
// list of regular files without duplicates. A pattern that matches no file
// returns ENOTFOUND.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		matches, err := resolvePattern(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	slices.Sort(files)
	return files, nil
}

// resolvePattern expands a single path or glob pattern to regular files.
func resolvePattern(pattern string) ([]string, error) {
	if !containsGlob(pattern) {
		info, err := os.Stat(pattern)
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, cdoc.Errorf(cdoc.ENOTFOUND, "no such file: %s", pattern)
		} else if err != nil {
			return nil, err
		}
		if !info.Mode().IsRegular() {
			return nil, cdoc.Errorf(cdoc.EINVALID, "not a regular file: %s", pattern)
		}
		return []string{filepath.Clean(pattern)}, nil
	}

	// Use doublestar for ** support
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, cdoc.Errorf(cdoc.EINVALID, "invalid pattern %q: %v", pattern, err)
	}

	var files []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue // Skip paths that can't be stat'd
		}
		if info.Mode().IsRegular() {
			files = append(files, match)
		}
	}

	if len(files) == 0 {
		return nil, cdoc.Errorf(cdoc.ENOTFOUND, "no files match pattern: %s", pattern)
	}

	return files, nil
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// Ensure Reader implements cdoc.SourceReader at compile time.
var _ cdoc.SourceReader = (*Reader)(nil)

// Reader reads source files from disk.
type Reader struct {
	// MaxSize overrides MaxSourceSize when positive.
	MaxSize int64
}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadSource returns the content of the file at path.
func (r *Reader) ReadSource(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	limit := r.MaxSize
	if limit <= 0 {
		limit = MaxSourceSize
	}

	f, err := os.Open(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return "", cdoc.Errorf(cdoc.ENOTFOUND, "no such file: %s", path)
	} else if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return "", cdoc.Errorf(cdoc.EINVALID, "%s exceeds %d bytes", path, limit)
	}

	return string(data), nil
}
