package main_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/cdoc"
	main "github.com/fwojciec/cdoc/cmd/cdoc"
	"github.com/fwojciec/cdoc/fs"
	cdochttp "github.com/fwojciec/cdoc/http"
	"github.com/fwojciec/cdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addSource = "/** @brief Adds.\n@param a left\n@param b right\n@return sum */ int add(int a, int b);\n"

// titleRenderer writes the document title and the briefs of its records.
func titleRenderer() *mock.Renderer {
	return &mock.Renderer{
		RenderFn: func(w io.Writer, doc *cdoc.Document) error {
			var briefs []string
			for _, rec := range doc.Records {
				briefs = append(briefs, rec.Brief)
			}
			_, err := io.WriteString(w, doc.Title+": "+strings.Join(briefs, ","))
			return err
		},
	}
}

func renderDeps(stdout, stderr *bytes.Buffer, renderer cdoc.Renderer, formats *[]cdoc.Format) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Reader: fs.NewReader(),
		Renderer: func(format cdoc.Format) cdoc.Renderer {
			if formats != nil {
				*formats = append(*formats, format)
			}
			return renderer
		},
		OutputStore: main.NewOutputStore,
	}
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRenderCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes single file to stdout", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, t.TempDir(), "math.c", addSource)
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		var formats []cdoc.Format

		cmd := &main.RenderCmd{Patterns: []string{path}, Format: "md"}
		err := cmd.Run(renderDeps(stdout, stderr, titleRenderer(), &formats))

		require.NoError(t, err)
		assert.Equal(t, "math.c: Adds.", stdout.String())
		assert.Equal(t, []cdoc.Format{cdoc.FormatMarkdown}, formats)
		assert.Empty(t, stderr.String())
	})

	t.Run("uses explicit title", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, t.TempDir(), "math.c", addSource)
		stdout := &bytes.Buffer{}

		cmd := &main.RenderCmd{Patterns: []string{path}, Format: "html", Title: "Math API"}
		err := cmd.Run(renderDeps(stdout, &bytes.Buffer{}, titleRenderer(), nil))

		require.NoError(t, err)
		assert.Equal(t, "Math API: Adds.", stdout.String())
	})

	t.Run("requires --out for multiple files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeSource(t, dir, "a.c", addSource)
		writeSource(t, dir, "b.c", addSource)
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		cmd := &main.RenderCmd{Patterns: []string{filepath.Join(dir, "*.c")}, Format: "html"}
		err := cmd.Run(renderDeps(stdout, stderr, titleRenderer(), nil))

		require.Error(t, err)
		assert.Equal(t, cdoc.EINVALID, cdoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--out")
		assert.Empty(t, stdout.String())
	})

	t.Run("writes every match into the output directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeSource(t, dir, "src/a.c", addSource)
		writeSource(t, dir, "src/lib/b.c", "/** Resets. */ void reset(void);")
		out := filepath.Join(dir, "site")
		stdout := &bytes.Buffer{}

		cmd := &main.RenderCmd{Patterns: []string{filepath.Join(dir, "src", "**", "*.c")}, Format: "html", Out: out}
		err := cmd.Run(renderDeps(stdout, &bytes.Buffer{}, titleRenderer(), nil))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Rendered 2 files (2 records)")

		a, err := fs.OutputName(filepath.Join(dir, "src", "a.c"), cdoc.FormatHTML)
		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Join(out, a))
		require.NoError(t, err)
		assert.Equal(t, "a.c: Adds.", string(content))

		b, err := fs.OutputName(filepath.Join(dir, "src", "lib", "b.c"), cdoc.FormatHTML)
		require.NoError(t, err)
		content, err = os.ReadFile(filepath.Join(out, b))
		require.NoError(t, err)
		assert.Equal(t, "b.c: Resets.", string(content))

		_, err = os.Stat(out + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("keeps previous output when rendering fails", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeSource(t, dir, "a.c", addSource)
		out := filepath.Join(dir, "site")
		previous := filepath.Join(out, "index.html")
		require.NoError(t, os.MkdirAll(out, 0755))
		require.NoError(t, os.WriteFile(previous, []byte("old"), 0644))
		failing := &mock.Renderer{
			RenderFn: func(io.Writer, *cdoc.Document) error { return errors.New("boom") },
		}

		cmd := &main.RenderCmd{Patterns: []string{path}, Format: "html", Out: out}
		err := cmd.Run(renderDeps(&bytes.Buffer{}, &bytes.Buffer{}, failing, nil))

		require.Error(t, err)
		content, readErr := os.ReadFile(previous)
		require.NoError(t, readErr)
		assert.Equal(t, "old", string(content))
		_, statErr := os.Stat(out + ".tmp")
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("reads sources from URLs", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(addSource))
		}))
		defer server.Close()
		stdout := &bytes.Buffer{}
		deps := renderDeps(stdout, &bytes.Buffer{}, titleRenderer(), nil)
		deps.Reader = cdochttp.NewReader(fs.NewReader())

		cmd := &main.RenderCmd{Patterns: []string{server.URL + "/lib/math.c"}, Format: "html"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "math.c: Adds.", stdout.String())
	})

	t.Run("aborts the store when a file cannot be read", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		good := writeSource(t, dir, "a.c", addSource)
		var saved []string
		var aborted, committed bool
		deps := renderDeps(&bytes.Buffer{}, &bytes.Buffer{}, titleRenderer(), nil)
		deps.Reader = &mock.SourceReader{
			ReadSourceFn: func(_ context.Context, path string) (string, error) {
				if path == good {
					return addSource, nil
				}
				return "", cdoc.Errorf(cdoc.ENOTFOUND, "gone")
			},
		}
		deps.OutputStore = func(string, cdoc.Renderer, cdoc.Format) cdoc.OutputStore {
			return &mock.OutputStore{
				SaveFn: func(_ context.Context, name string, _ *cdoc.Document) error {
					saved = append(saved, name)
					return nil
				},
				CommitFn: func() error { committed = true; return nil },
				AbortFn:  func() error { aborted = true; return nil },
			}
		}
		writeSource(t, dir, "b.c", addSource)

		cmd := &main.RenderCmd{Patterns: []string{filepath.Join(dir, "*.c")}, Format: "html", Out: filepath.Join(dir, "site")}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, []string{good}, saved)
		assert.True(t, aborted)
		assert.False(t, committed)
	})

	t.Run("refuses to replace a directory it did not write", func(t *testing.T) {
		t.Parallel()

		src := filepath.Join(t.TempDir(), "src")
		path := writeSource(t, src, "math.c", addSource)
		readme := writeSource(t, src, "README", "keep me")
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		cmd := &main.RenderCmd{Patterns: []string{path}, Format: "html", Out: src}
		err := cmd.Run(renderDeps(stdout, stderr, titleRenderer(), nil))

		require.Error(t, err)
		assert.Equal(t, cdoc.EINVALID, cdoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not written by cdoc")
		assert.Empty(t, stdout.String())
		for _, f := range []string{path, readme} {
			_, statErr := os.Stat(f)
			assert.NoError(t, statErr, f)
		}
		_, statErr := os.Stat(src + ".tmp")
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("replaces its own previous output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeSource(t, dir, "a.c", addSource)
		out := filepath.Join(dir, "site")
		cmd := &main.RenderCmd{Patterns: []string{path}, Format: "html", Out: out}

		require.NoError(t, cmd.Run(renderDeps(&bytes.Buffer{}, &bytes.Buffer{}, titleRenderer(), nil)))
		stdout := &bytes.Buffer{}
		err := cmd.Run(renderDeps(stdout, &bytes.Buffer{}, titleRenderer(), nil))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Rendered 1 files (1 records)")
	})

	t.Run("rejects sources that share an output file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeSource(t, dir, "a.c", addSource)
		stderr := &bytes.Buffer{}
		out := filepath.Join(dir, "site")
		deps := renderDeps(&bytes.Buffer{}, stderr, titleRenderer(), nil)
		deps.Reader = &mock.SourceReader{
			ReadSourceFn: func(context.Context, string) (string, error) { return addSource, nil },
		}

		cmd := &main.RenderCmd{Patterns: []string{path, "http://" + strings.TrimPrefix(filepath.ToSlash(path), "/")}, Format: "html", Out: out}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, cdoc.ECONFLICT, cdoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "both render to")
		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("reports missing input", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		cmd := &main.RenderCmd{Patterns: []string{filepath.Join(t.TempDir(), "missing.c")}, Format: "html"}
		err := cmd.Run(renderDeps(&bytes.Buffer{}, stderr, titleRenderer(), nil))

		require.Error(t, err)
		assert.Equal(t, cdoc.ENOTFOUND, cdoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
