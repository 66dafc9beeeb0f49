// Package catalog fetches the Homebrew cask catalog and keeps a gzip
// compressed copy on disk.
//
// A Store is an explicit instance: callers construct one with Options and
// pass it to whatever needs the catalog. FetchAll serves the on-disk copy
// while it is valid and only then reaches for the configured Source, which
// is either the Homebrew JSON API (HTTPSource) or a local snapshot file
// (SnapshotSource).
//
// A cache entry is valid when its format version equals
// CacheFormatVersion, it is no older than the TTL and it holds at least one
// record. Failing to write the cache never fails a fetch.
package catalog
