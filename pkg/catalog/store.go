package catalog

import (
	"context"
	stderrors "errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/arthur-debert/brewadopt/pkg/logging"
	"github.com/arthur-debert/brewadopt/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// DefaultTTL is how long a cached catalog stays valid.
const DefaultTTL = 24 * time.Hour

// Options configures a Store. Zero values select defaults; CachePath is
// required.
type Options struct {
	// URL is an http(s) endpoint, a file:// URL or a plain snapshot path.
	URL       string
	CachePath string
	TTL       time.Duration
	Timeout   time.Duration

	FS         afero.Fs
	HTTPClient *http.Client
	// Source overrides the source derived from URL.
	Source Source
	Now    func() time.Time
}

// FetchResult is the outcome of FetchAll.
type FetchResult struct {
	Records   []types.PackageRecord
	FromCache bool
	// Source names where fresh records came from; empty for cache hits.
	Source string
}

// Info describes the cache file without failing.
type Info struct {
	Path    string        `json:"path" yaml:"path"`
	Exists  bool          `json:"exists" yaml:"exists"`
	Valid   bool          `json:"valid" yaml:"valid"`
	Reason  string        `json:"reason,omitempty" yaml:"reason,omitempty"`
	ModTime time.Time     `json:"mod_time,omitempty" yaml:"mod_time,omitempty"`
	Size    int64         `json:"size" yaml:"size"`
	Records int           `json:"records" yaml:"records"`
	Age     time.Duration `json:"age" yaml:"age"`
	TTL     time.Duration `json:"ttl" yaml:"ttl"`
}

// Store reads and writes the catalog cache and falls back to its Source.
type Store struct {
	opts   Options
	source Source
	logger zerolog.Logger
}

// NewStore creates a Store.
func NewStore(opts Options) (*Store, error) {
	if opts.CachePath == "" {
		return nil, errors.New(errors.ErrInvalidInput, "catalog cache path is required")
	}
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	src := opts.Source
	if src == nil {
		src = NewSource(opts.URL, opts.FS, opts.HTTPClient, opts.Timeout)
	}

	return &Store{
		opts:   opts,
		source: src,
		logger: logging.GetLogger("catalog.store"),
	}, nil
}

// CachePath returns the cache file location.
func (s *Store) CachePath() string {
	return s.opts.CachePath
}

// FetchAll returns the catalog. Unless forceRefresh is set a valid cache
// entry is returned without touching the source. Fresh records are written
// back to the cache; a write failure is logged and ignored.
func (s *Store) FetchAll(ctx context.Context, forceRefresh bool) (*FetchResult, error) {
	if !forceRefresh {
		entry, err := readEntry(s.opts.FS, s.opts.CachePath, s.opts.TTL, s.opts.Now(), s.logger)
		if err == nil {
			s.logger.Debug().
				Int("records", len(entry.Records)).
				Time("written", entry.Timestamp).
				Msg("Using cached catalog")
			return &FetchResult{Records: entry.Records, FromCache: true}, nil
		}
		s.logCacheMiss(err)
	}

	done := logging.LogOperationStart(s.logger, "fetch catalog")
	defer done()

	data, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	data, err = maybeGunzip(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogDecode, "cannot decompress catalog").
			WithDetail("source", s.source.Name())
	}
	records, err := decodeRecords(data, s.logger)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int("records", len(records)).Str("source", s.source.Name()).Msg("Fetched catalog")

	if err := s.Write(records); err != nil {
		s.logger.Warn().Err(err).Str("path", s.opts.CachePath).Msg("Could not write catalog cache")
	}

	return &FetchResult{Records: records, Source: s.source.Name()}, nil
}

func (s *Store) logCacheMiss(err error) {
	switch {
	case errors.IsErrorCode(err, errors.ErrFileNotFound):
		s.logger.Debug().Str("path", s.opts.CachePath).Msg("No catalog cache")
	case errors.IsErrorCode(err, errors.ErrCacheInvalid):
		s.logger.Debug().Interface("reason", errors.GetErrorDetails(err)["reason"]).Msg("Catalog cache invalid")
	default:
		s.logger.Warn().Err(err).Msg("Could not read catalog cache")
	}
}

// Load reads and validates the cache without contacting the source.
func (s *Store) Load() ([]types.PackageRecord, error) {
	entry, err := readEntry(s.opts.FS, s.opts.CachePath, s.opts.TTL, s.opts.Now(), s.logger)
	if err != nil {
		return nil, err
	}
	return entry.Records, nil
}

// Write persists records as a cache entry stamped with the current time.
func (s *Store) Write(records []types.PackageRecord) error {
	if len(records) == 0 {
		return errors.New(errors.ErrCatalogEmpty, "refusing to cache an empty catalog")
	}
	return writeEntry(s.opts.FS, s.opts.CachePath, records, s.opts.Now())
}

// ClearCache removes the cache file. A missing file is not an error.
func (s *Store) ClearCache() error {
	err := s.opts.FS.Remove(s.opts.CachePath)
	if err == nil || stderrors.Is(err, fs.ErrNotExist) {
		s.logger.Info().Str("path", s.opts.CachePath).Msg("Catalog cache cleared")
		return nil
	}
	return errors.Wrap(err, errors.ErrFileAccess, "cannot remove catalog cache").
		WithDetail("path", s.opts.CachePath)
}

// CacheInfo reports on the cache file. It never fails; problems show up as
// Valid=false with a Reason.
func (s *Store) CacheInfo() Info {
	info := Info{Path: s.opts.CachePath, TTL: s.opts.TTL}

	st, err := s.opts.FS.Stat(s.opts.CachePath)
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			info.Reason = err.Error()
		} else {
			info.Reason = "no cache file"
		}
		return info
	}
	info.Exists = true
	info.ModTime = st.ModTime()
	info.Size = st.Size()

	now := s.opts.Now()
	entry, err := readEntry(s.opts.FS, s.opts.CachePath, s.opts.TTL, now, s.logger)
	if err != nil {
		if reason, ok := errors.GetErrorDetails(err)["reason"].(string); ok {
			info.Reason = reason
		} else {
			info.Reason = err.Error()
		}
		info.Age = now.Sub(info.ModTime)
		return info
	}

	info.Valid = true
	info.Records = len(entry.Records)
	info.Age = now.Sub(entry.Timestamp)
	return info
}
