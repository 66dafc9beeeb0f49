// Test Type: Unit Test
// Description: Catalog cache validation, refresh and failure shapes

package catalog_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arthur-debert/brewadopt/pkg/catalog"
	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/arthur-debert/brewadopt/pkg/testutil"
	"github.com/arthur-debert/brewadopt/pkg/types"
	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cachePath = "/cache/brewadopt/casks.json.gz"

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

type catalogServer struct {
	*httptest.Server
	hits atomic.Int32
}

func serveCatalog(t *testing.T, status int, body []byte) *catalogServer {
	t.Helper()
	cs := &catalogServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(cs.Close)
	return cs
}

func newStore(t *testing.T, fsys afero.Fs, url string, c *clock) *catalog.Store {
	t.Helper()
	s, err := catalog.NewStore(catalog.Options{
		URL:       url,
		CachePath: cachePath,
		TTL:       time.Hour,
		Timeout:   2 * time.Second,
		FS:        fsys,
		Now:       c.Now,
	})
	require.NoError(t, err)
	return s
}

func sampleCatalog() *testutil.CatalogBuilder {
	return testutil.NewCatalog().
		Cask("visual-studio-code", "Microsoft Visual Studio Code", "VS Code").
		Desc("Open-source code editor", "https://code.visualstudio.com/").
		App("Visual Studio Code.app").
		Quit("com.microsoft.VSCode").
		Cask("quitall", "Quit All").
		AppTarget("QuitAll.app")
}

func TestNewStore_RequiresCachePath(t *testing.T) {
	_, err := catalog.NewStore(catalog.Options{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestStore_WriteLoadRoundTrip(t *testing.T) {
	c := &clock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := newStore(t, afero.NewMemMapFs(), "file:///unused.json", c)
	records := sampleCatalog().Build()

	require.NoError(t, s.Write(records))

	c.now = c.now.Add(59 * time.Minute)
	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestStore_WriteLoadRoundTrip_DecodedRecords(t *testing.T) {
	body := []byte(`[
		{"token":"a","name":["A"],"artifacts":[]},
		{"token":"b","name":["B"],"desc":"","artifacts":[{"uninstall":[{"quit":[],"launchctl":"com.example.b"}]}]},
		{"token":"c","name":[],"artifacts":[{"app":[{ "source": "C.app" }]}, "zap"]}
	]`)
	var records []types.PackageRecord
	require.NoError(t, json.Unmarshal(body, &records))

	c := &clock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := newStore(t, afero.NewMemMapFs(), "file:///unused.json", c)
	require.NoError(t, s.Write(records))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestStore_WriteRejectsEmpty(t *testing.T) {
	s := newStore(t, afero.NewMemMapFs(), "file:///unused.json", &clock{now: time.Now()})
	assert.True(t, errors.IsErrorCode(s.Write(nil), errors.ErrCatalogEmpty))
}

func TestStore_FetchAll_UsesValidCache(t *testing.T) {
	srv := serveCatalog(t, http.StatusOK, sampleCatalog().JSON(t))
	c := &clock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := newStore(t, afero.NewMemMapFs(), srv.URL, c)

	first, err := s.FetchAll(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, srv.URL, first.Source)
	assert.EqualValues(t, 1, srv.hits.Load())

	second, err := s.FetchAll(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Records, second.Records)
	assert.EqualValues(t, 1, srv.hits.Load(), "valid cache must not touch the network")
}

func TestStore_FetchAll_ExpiredCacheRefetches(t *testing.T) {
	srv := serveCatalog(t, http.StatusOK, sampleCatalog().JSON(t))
	c := &clock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := newStore(t, afero.NewMemMapFs(), srv.URL, c)

	require.NoError(t, s.Write(testutil.NewCatalog().Cask("old", "Old").Build()))

	c.now = c.now.Add(61 * time.Minute)
	res, err := s.FetchAll(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.EqualValues(t, 1, srv.hits.Load())
	assert.Len(t, res.Records, 2)
}

func TestStore_FetchAll_ForceRefreshOverwritesCache(t *testing.T) {
	srv := serveCatalog(t, http.StatusOK, sampleCatalog().JSON(t))
	c := &clock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := newStore(t, afero.NewMemMapFs(), srv.URL, c)

	require.NoError(t, s.Write(testutil.NewCatalog().Cask("old", "Old").Build()))

	res, err := s.FetchAll(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.EqualValues(t, 1, srv.hits.Load())

	cached, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleCatalog().Build(), cached)
}

func TestStore_FetchAll_HTTPStatus(t *testing.T) {
	srv := serveCatalog(t, http.StatusServiceUnavailable, []byte("down"))
	s := newStore(t, afero.NewMemMapFs(), srv.URL, &clock{now: time.Now()})

	_, err := s.FetchAll(context.Background(), false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHTTPStatus))
	assert.Equal(t, http.StatusServiceUnavailable, errors.GetErrorDetails(err)["status"])
}

func TestStore_FetchAll_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	s, err := catalog.NewStore(catalog.Options{
		URL:       srv.URL,
		CachePath: cachePath,
		Timeout:   50 * time.Millisecond,
		FS:        afero.NewMemMapFs(),
	})
	require.NoError(t, err)

	_, err = s.FetchAll(context.Background(), false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTimeout))
	assert.True(t, errors.IsTimeout(err))
}

func TestStore_FetchAll_Aborted(t *testing.T) {
	srv := serveCatalog(t, http.StatusOK, sampleCatalog().JSON(t))
	s := newStore(t, afero.NewMemMapFs(), srv.URL, &clock{now: time.Now()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FetchAll(ctx, true)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTimeout))
	assert.Equal(t, true, errors.GetErrorDetails(err)["aborted"])
}

func TestStore_FetchAll_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := newStore(t, afero.NewMemMapFs(), url, &clock{now: time.Now()})
	_, err := s.FetchAll(context.Background(), false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNetwork))
}

func TestStore_FetchAll_SkipsBadRecords(t *testing.T) {
	body := []byte(`[{"token":"good","name":["Good"]},{"name":["no token"]},7,{"token":"also-good"}]`)
	srv := serveCatalog(t, http.StatusOK, body)
	s := newStore(t, afero.NewMemMapFs(), srv.URL, &clock{now: time.Now()})

	res, err := s.FetchAll(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "good", res.Records[0].Token)
	assert.Equal(t, "also-good", res.Records[1].Token)
}

func TestStore_FetchAll_EmptyAndMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.ErrorCode
	}{
		{"empty array", `[]`, errors.ErrCatalogEmpty},
		{"only bad records", `[1,2,3]`, errors.ErrCatalogEmpty},
		{"object", `{"casks":[]}`, errors.ErrCatalogDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveCatalog(t, http.StatusOK, []byte(tt.body))
			s := newStore(t, afero.NewMemMapFs(), srv.URL, &clock{now: time.Now()})

			_, err := s.FetchAll(context.Background(), false)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestStore_FetchAll_CacheWriteFailureIgnored(t *testing.T) {
	srv := serveCatalog(t, http.StatusOK, sampleCatalog().JSON(t))
	fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())
	s := newStore(t, fsys, srv.URL, &clock{now: time.Now()})

	res, err := s.FetchAll(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, res.Records, 2)

	_, err = s.Load()
	assert.Error(t, err)
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestStore_FetchAll_Snapshot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/snap/cask.json.gz", gzipBytes(t, sampleCatalog().JSON(t)), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/snap/cask.json", sampleCatalog().JSON(t), 0644))

	for _, url := range []string{"file:///snap/cask.json.gz", "/snap/cask.json"} {
		t.Run(url, func(t *testing.T) {
			s := newStore(t, fsys, url, &clock{now: time.Now()})
			res, err := s.FetchAll(context.Background(), true)
			require.NoError(t, err)
			assert.Equal(t, sampleCatalog().Build(), res.Records)
		})
	}
}

func TestStore_FetchAll_SnapshotErrors(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/snap/locked.json", []byte(`[]`), 0644))
	fsys := testutil.NewErrorFS(mem).FailOn("/snap/locked.json", os.ErrPermission)

	_, err := newStore(t, fsys, "/snap/missing.json", &clock{now: time.Now()}).FetchAll(context.Background(), false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))

	_, err = newStore(t, fsys, "/snap/locked.json", &clock{now: time.Now()}).FetchAll(context.Background(), false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPermissionDenied))
}

func TestStore_GzipResponseBody(t *testing.T) {
	srv := serveCatalog(t, http.StatusOK, gzipBytes(t, sampleCatalog().JSON(t)))
	s := newStore(t, afero.NewMemMapFs(), srv.URL, &clock{now: time.Now()})

	res, err := s.FetchAll(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, res.Records, 2)
}

func writeRawEntry(t *testing.T, fsys afero.Fs, entry map[string]interface{}) {
	t.Helper()
	data, err := json.Marshal(entry)
	require.NoError(t, err)
	require.NoError(t, fsys.MkdirAll("/cache/brewadopt", 0755))
	require.NoError(t, afero.WriteFile(fsys, cachePath, gzipBytes(t, data), 0644))
}

func TestStore_Load_Invalid(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	records := []types.PackageRecord{{Token: "a"}}

	tests := []struct {
		name  string
		entry map[string]interface{}
	}{
		{"version mismatch", map[string]interface{}{"data": records, "timestampMs": now.UnixMilli(), "formatVersion": "0"}},
		{"future timestamp", map[string]interface{}{"data": records, "timestampMs": now.AddDate(1, 0, 0).UnixMilli(), "formatVersion": catalog.CacheFormatVersion}},
		{"expired", map[string]interface{}{"data": records, "timestampMs": now.Add(-2 * time.Hour).UnixMilli(), "formatVersion": catalog.CacheFormatVersion}},
		{"empty data", map[string]interface{}{"data": []types.PackageRecord{}, "timestampMs": now.UnixMilli(), "formatVersion": catalog.CacheFormatVersion}},
		{"missing data", map[string]interface{}{"timestampMs": now.UnixMilli(), "formatVersion": catalog.CacheFormatVersion}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			writeRawEntry(t, fsys, tt.entry)
			s := newStore(t, fsys, "file:///unused.json", &clock{now: now})

			_, err := s.Load()
			assert.True(t, errors.IsErrorCode(err, errors.ErrCacheInvalid), "got %v", err)

			info := s.CacheInfo()
			assert.True(t, info.Exists)
			assert.False(t, info.Valid)
			assert.NotEmpty(t, info.Reason)
		})
	}
}

func TestStore_Load_ToleratesSmallClockSkew(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	fsys := afero.NewMemMapFs()
	writeRawEntry(t, fsys, map[string]interface{}{
		"data":          []types.PackageRecord{{Token: "a"}},
		"timestampMs":   now.Add(30 * time.Second).UnixMilli(),
		"formatVersion": catalog.CacheFormatVersion,
	})
	s := newStore(t, fsys, "file:///unused.json", &clock{now: now})

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)

	s = newStore(t, fsys, "file:///unused.json", &clock{now: now.Add(-2 * time.Minute)})
	_, err = s.Load()
	assert.True(t, errors.IsErrorCode(err, errors.ErrCacheInvalid))
	assert.Equal(t, "timestamp in the future", errors.GetErrorDetails(err)["reason"])
}

func TestStore_Load_Corrupt(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, cachePath, []byte{0x1f, 0x8b, 0x00}, 0644))
	s := newStore(t, fsys, "file:///unused.json", &clock{now: time.Now()})

	_, err := s.Load()
	assert.True(t, errors.IsErrorCode(err, errors.ErrCacheInvalid))
}

func TestStore_ClearCache(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := newStore(t, fsys, "file:///unused.json", &clock{now: time.Now()})

	require.NoError(t, s.ClearCache(), "missing file is not an error")

	require.NoError(t, s.Write(sampleCatalog().Build()))
	require.NoError(t, s.ClearCache())
	exists, err := afero.Exists(fsys, cachePath)
	require.NoError(t, err)
	assert.False(t, exists)

	locked := testutil.NewErrorFS(fsys).FailOn(cachePath, os.ErrPermission)
	err = newStore(t, locked, "file:///unused.json", &clock{now: time.Now()}).ClearCache()
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}

func TestStore_CacheInfo(t *testing.T) {
	c := &clock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := newStore(t, afero.NewMemMapFs(), "file:///unused.json", c)

	info := s.CacheInfo()
	assert.Equal(t, cachePath, info.Path)
	assert.False(t, info.Exists)
	assert.False(t, info.Valid)

	require.NoError(t, s.Write(sampleCatalog().Build()))
	c.now = c.now.Add(10 * time.Minute)

	info = s.CacheInfo()
	assert.True(t, info.Exists)
	assert.True(t, info.Valid)
	assert.Equal(t, 2, info.Records)
	assert.Equal(t, 10*time.Minute, info.Age)
	assert.Equal(t, time.Hour, info.TTL)
	assert.Positive(t, info.Size)
}
