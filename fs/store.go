package fs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/cdoc"
)

// OutputName maps a source path to the relative path of its rendered file.
// Example: src/util/math.c with FormatHTML → src/util/math.c.html
// A URL scheme, leading "/" and "../" segments are dropped so output stays
// inside the output directory.
func OutputName(path string, format cdoc.Format) (string, error) {
	if _, rest, ok := strings.Cut(path, "://"); ok {
		path = rest
	}
	rel := filepath.ToSlash(filepath.Clean(path))
	if vol := filepath.VolumeName(path); vol != "" {
		rel = strings.TrimPrefix(rel, filepath.ToSlash(vol))
	}
	rel = strings.TrimLeft(rel, "/")

	// Sources outside the working directory keep their remaining path.
	for strings.HasPrefix(rel, "../") {
		rel = strings.TrimPrefix(rel, "../")
	}

	if rel == "" || rel == "." || rel == ".." {
		return "", cdoc.Errorf(cdoc.EINVALID, "invalid output name for %q", path)
	}

	return filepath.FromSlash(rel) + format.Ext(), nil
}

// OutputMarker is the file that marks a directory as cdoc output. Commit only
// replaces an existing directory that carries it.
const OutputMarker = ".cdoc"

// Ensure OutputStore implements cdoc.OutputStore at compile time.
var _ cdoc.OutputStore = (*OutputStore)(nil)

// OutputStore implements cdoc.OutputStore with atomic update semantics.
// Documents are rendered into a temporary directory, then moved atomically
// on Commit.
type OutputStore struct {
	baseDir  string
	name     string
	renderer cdoc.Renderer
	format   cdoc.Format

	mu       sync.Mutex
	prepared bool
	saved    map[string]string // output name -> source name
}

// NewOutputStore creates a new OutputStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewOutputStore(baseDir, name string, renderer cdoc.Renderer, format cdoc.Format) *OutputStore {
	return &OutputStore{
		baseDir:  baseDir,
		name:     name,
		renderer: renderer,
		format:   format,
		saved:    make(map[string]string),
	}
}

func (s *OutputStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *OutputStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// prepare clears a temp directory left behind by an interrupted run.
// Callers must hold s.mu.
func (s *OutputStore) prepare() error {
	if s.prepared {
		return nil
	}
	if err := os.RemoveAll(s.tempDir()); err != nil {
		return err
	}
	s.prepared = true
	return nil
}

// Save renders doc and writes it under the temporary directory at the path
// derived from name. Two sources that map to the same output file are a
// conflict.
func (s *OutputStore) Save(ctx context.Context, name string, doc *cdoc.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := OutputName(name, s.format)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.saved[relPath]; ok {
		return cdoc.Errorf(cdoc.ECONFLICT, "%q and %q both render to %s", prev, name, filepath.ToSlash(relPath))
	}
	if err := s.prepare(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, doc); err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
		return err
	}
	s.saved[relPath] = name
	return nil
}

// Commit replaces the final directory with the temporary one. An existing
// final directory is replaced only when it is empty or holds OutputMarker;
// anything else is left untouched and Commit returns EINVALID.
func (s *OutputStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkReplaceable(); err != nil {
		return err
	}
	if err := s.prepare(); err != nil {
		return err
	}

	// An empty run still produces an (empty) output directory.
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.tempDir(), OutputMarker), nil, 0644); err != nil {
		return err
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	// Atomically rename temp to final
	return os.Rename(s.tempDir(), s.finalDir())
}

// checkReplaceable reports whether the final directory may be removed.
func (s *OutputStore) checkReplaceable() error {
	final := s.finalDir()
	info, err := os.Stat(final)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	if !info.IsDir() {
		return cdoc.Errorf(cdoc.EINVALID, "output path %s exists and is not a directory", final)
	}
	if _, err := os.Stat(filepath.Join(final, OutputMarker)); err == nil {
		return nil
	}
	entries, err := os.ReadDir(final)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return cdoc.Errorf(cdoc.EINVALID, "output directory %s is not empty and was not written by cdoc", final)
	}
	return nil
}

// Abort discards everything saved since the store was created.
func (s *OutputStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
