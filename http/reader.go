// Package http provides an HTTP-based implementation of cdoc.SourceReader
// for annotated sources published at http(s) URLs.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/cdoc"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxSize bounds the size of a fetched source.
const DefaultMaxSize = 16 << 20

// Ensure Reader implements cdoc.SourceReader at compile time.
var _ cdoc.SourceReader = (*Reader)(nil)

// Reader retrieves source text from http and https URLs. Any other path is
// handed to the fallback reader.
type Reader struct {
	client   *http.Client
	timeout  time.Duration
	maxSize  int64
	limiter  *HostLimiter
	fallback cdoc.SourceReader
}

// Option configures a Reader.
type Option func(*Reader)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(r *Reader) {
		r.timeout = d
	}
}

// WithMaxSize sets the largest accepted response body in bytes.
func WithMaxSize(n int64) Option {
	return func(r *Reader) {
		r.maxSize = n
	}
}

// WithRateLimit limits requests to rps per host.
func WithRateLimit(rps float64) Option {
	return func(r *Reader) {
		r.limiter = NewHostLimiter(rps)
	}
}

// NewReader creates a Reader that serves URLs itself and delegates other
// paths to fallback. A nil fallback rejects non-URL paths.
func NewReader(fallback cdoc.SourceReader, opts ...Option) *Reader {
	r := &Reader{
		timeout:  DefaultFetchTimeout,
		maxSize:  DefaultMaxSize,
		fallback: fallback,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.client = &http.Client{
		Timeout: r.timeout,
	}

	return r
}

// IsURL reports whether path names an http or https resource.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ReadSource returns the body served at path, or delegates to the fallback
// reader when path is not a URL.
func (r *Reader) ReadSource(ctx context.Context, path string) (string, error) {
	if !IsURL(path) {
		if r.fallback == nil {
			return "", cdoc.Errorf(cdoc.EINVALID, "not a URL: %s", path)
		}
		return r.fallback.ReadSource(ctx, path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, req.URL.Host); err != nil {
			return "", err
		}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", cdoc.Errorf(cdoc.ENOTFOUND, "source not found: %s", path)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxSize+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > r.maxSize {
		return "", cdoc.Errorf(cdoc.EINVALID, "source too large: %s exceeds %d bytes", path, r.maxSize)
	}

	// Sources served in a legacy encoding are converted to UTF-8.
	decoded, err := charset.NewReader(bytes.NewReader(body), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}
	text, err := io.ReadAll(decoded)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}

	return string(text), nil
}
