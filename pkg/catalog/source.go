package catalog

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/spf13/afero"
)

const (
	// DefaultURL is the Homebrew cask API endpoint.
	DefaultURL = "https://formulae.brew.sh/api/cask.json"

	// DefaultTimeout bounds one catalog download.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodyBytes caps a catalog response body. The full cask
	// catalog is a few tens of MiB.
	DefaultMaxBodyBytes int64 = 256 << 20

	fileScheme = "file://"
)

// Source produces the raw catalog document, a JSON array of cask records,
// optionally gzip compressed.
type Source interface {
	// Name identifies the source in logs and diagnostics.
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// NewSource picks an HTTPSource for http(s) URLs and a SnapshotSource for
// file:// URLs and plain paths.
func NewSource(url string, fsys afero.Fs, client *http.Client, timeout time.Duration) Source {
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return &HTTPSource{URL: url, Client: client, Timeout: timeout}
	}
	return &SnapshotSource{Path: strings.TrimPrefix(url, fileScheme), FS: fsys}
}

// HTTPSource downloads the catalog with a single GET. It does not retry.
type HTTPSource struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
	// MaxBodyBytes defaults to DefaultMaxBodyBytes when zero.
	MaxBodyBytes int64
}

// Name implements Source.
func (s *HTTPSource) Name() string { return s.URL }

// Fetch implements Source. Failures are HTTP_STATUS for a non-2xx reply
// (detail "status"), TIMEOUT when the deadline expires or the request is
// aborted, CATALOG_DECODE for an oversized body, and NETWORK for any other
// transport failure.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid catalog URL").
			WithDetail("url", s.URL)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, err, s.URL, timeout)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Newf(errors.ErrHTTPStatus, "catalog request failed with status %d", resp.StatusCode).
			WithDetail("status", resp.StatusCode).
			WithDetail("url", s.URL)
	}

	limit := s.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, classifyTransportError(ctx, err, s.URL, timeout)
	}
	if int64(len(body)) > limit {
		return nil, errors.Newf(errors.ErrCatalogDecode, "catalog response exceeds %d bytes", limit).
			WithDetail("limit", limit).
			WithDetail("url", s.URL)
	}
	return body, nil
}

func classifyTransportError(ctx context.Context, err error, url string, timeout time.Duration) error {
	var netErr net.Error
	switch {
	case stderrors.Is(err, context.DeadlineExceeded),
		stderrors.Is(ctx.Err(), context.DeadlineExceeded),
		stderrors.As(err, &netErr) && netErr.Timeout():
		return errors.Wrap(err, errors.ErrTimeout, fmt.Sprintf("catalog request timed out after %s", timeout)).
			WithDetail("url", url)
	case stderrors.Is(err, context.Canceled):
		return errors.Wrap(err, errors.ErrTimeout, "catalog request aborted").
			WithDetail("url", url).
			WithDetail("aborted", true)
	default:
		return errors.Wrap(err, errors.ErrNetwork, "catalog request failed").
			WithDetail("url", url)
	}
}

// SnapshotSource reads a catalog snapshot from disk. Both ".json" and
// ".json.gz" files are accepted; compression is detected from content.
type SnapshotSource struct {
	Path string
	FS   afero.Fs
}

// Name implements Source.
func (s *SnapshotSource) Name() string { return fileScheme + s.Path }

// Fetch implements Source. A missing file is FILE_NOT_FOUND and an
// unreadable one PERMISSION_DENIED.
func (s *SnapshotSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fsys := s.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fsys, s.Path)
	if err != nil {
		return nil, errors.FromFSError(err, s.Path)
	}
	return data, nil
}
