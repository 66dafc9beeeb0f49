package catalog

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/arthur-debert/brewadopt/pkg/types"
	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// CacheFormatVersion is stamped into every cache entry. Entries written with
// any other version are discarded.
const CacheFormatVersion = "2"

// maxClockSkew is how far in the future an entry timestamp may lie before
// the entry is rejected.
const maxClockSkew = time.Minute

// cacheEntry is the on-disk cache document.
type cacheEntry struct {
	Data          json.RawMessage `json:"data"`
	TimestampMs   int64           `json:"timestampMs"`
	FormatVersion string          `json:"formatVersion"`
}

// loadedEntry is a decoded, validated cache entry.
type loadedEntry struct {
	Records   []types.PackageRecord
	Timestamp time.Time
}

func readEntry(fsys afero.Fs, path string, ttl time.Duration, now time.Time, logger zerolog.Logger) (*loadedEntry, error) {
	compressed, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.FromFSError(err, path)
	}

	data, err := maybeGunzip(compressed)
	if err != nil {
		return nil, invalidCache(path, "cannot decompress", err)
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, invalidCache(path, "cannot parse", err)
	}

	if entry.FormatVersion != CacheFormatVersion {
		return nil, invalidCache(path, fmt.Sprintf("format version %q, want %q", entry.FormatVersion, CacheFormatVersion), nil)
	}

	stamp := time.UnixMilli(entry.TimestampMs)
	age := now.Sub(stamp)
	if age < -maxClockSkew {
		return nil, invalidCache(path, "timestamp in the future", nil)
	}
	if age > ttl {
		return nil, invalidCache(path, fmt.Sprintf("expired %s ago", (age-ttl).Round(time.Second)), nil)
	}

	if len(bytes.TrimSpace(entry.Data)) == 0 {
		return nil, invalidCache(path, "no data", nil)
	}
	records, err := decodeRecords(entry.Data, logger)
	if err != nil {
		return nil, invalidCache(path, "no usable records", err)
	}

	return &loadedEntry{Records: records, Timestamp: stamp}, nil
}

func writeEntry(fsys afero.Fs, path string, records []types.PackageRecord, now time.Time) error {
	data, err := json.Marshal(records)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode catalog")
	}
	doc, err := json.Marshal(cacheEntry{
		Data:          data,
		TimestampMs:   now.UnixMilli(),
		FormatVersion: CacheFormatVersion,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode cache entry")
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(doc); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot compress cache entry")
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot compress cache entry")
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.FromFSError(err, filepath.Dir(path))
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(fsys, tmp, buf.Bytes(), 0644); err != nil {
		return errors.FromFSError(err, tmp)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return errors.FromFSError(err, path)
	}
	return nil
}

// invalidCache builds a CACHE_INVALID error with the rejection reason as
// a detail. cause may be nil.
func invalidCache(path, reason string, cause error) error {
	var e *errors.BrewAdoptError
	if cause != nil {
		e = errors.Wrapf(cause, errors.ErrCacheInvalid, "cache %s: %s", path, reason)
	} else {
		e = errors.Newf(errors.ErrCacheInvalid, "cache %s: %s", path, reason)
	}
	return e.WithDetail("path", path).WithDetail("reason", reason)
}
