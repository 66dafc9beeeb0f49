// Package index turns a flat cask catalog into the lookup maps the matcher
// queries. Build is pure: it performs no I/O and never panics on malformed
// records.
package index

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/brewadopt/pkg/apps"
	"github.com/arthur-debert/brewadopt/pkg/types"
)

// Index holds the four lookup maps built from one catalog. Within any value
// list no token appears twice.
type Index struct {
	ByToken            map[string]*types.PackageRecord
	ByNormalizedName   map[string][]*types.PackageRecord
	ByAppBundle        map[string][]*types.PackageRecord
	ByBundleIdentifier map[string][]*types.PackageRecord

	// Notes collects diagnostics for records or artifacts that were
	// skipped while building.
	Notes []string

	compactOnce sync.Once
	byCompact   map[string][]*types.PackageRecord

	namesOnce sync.Once
	names     []string
}

// Build indexes records. The returned index points into the records slice,
// which must not be modified afterwards.
func Build(records []types.PackageRecord) *Index {
	idx := &Index{
		ByToken:            make(map[string]*types.PackageRecord, len(records)),
		ByNormalizedName:   make(map[string][]*types.PackageRecord, len(records)),
		ByAppBundle:        make(map[string][]*types.PackageRecord, len(records)),
		ByBundleIdentifier: make(map[string][]*types.PackageRecord),
	}

	for i := range records {
		rec := &records[i]
		token := strings.TrimSpace(rec.Token)
		if token == "" {
			idx.note("record %d: blank token, skipped", i)
			continue
		}

		if _, dup := idx.ByToken[token]; dup {
			idx.note("record %d: duplicate token %q overwrites earlier record", i, token)
			removeToken(idx, token)
		}
		idx.ByToken[token] = rec

		for _, alias := range rec.Names {
			key := apps.Normalize(alias)
			if key == "" {
				continue
			}
			idx.ByNormalizedName[key] = appendUnique(idx.ByNormalizedName[key], rec)
		}

		for _, bundle := range rec.AppBundles() {
			switch bundle.Shape {
			case types.BundleShapeFilename, types.BundleShapeTarget:
				key := apps.Normalize(apps.StripBundleSuffix(bundle.Filename))
				if key == "" {
					idx.note("%s: app bundle %q normalizes to nothing", token, bundle.Filename)
					continue
				}
				idx.ByAppBundle[key] = appendUnique(idx.ByAppBundle[key], rec)
			default:
				idx.note("%s: unrecognized app bundle shape %s", token, string(bundle.Raw))
			}
		}

		for _, id := range rec.BundleIdentifiers() {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			idx.ByBundleIdentifier[id] = appendUnique(idx.ByBundleIdentifier[id], rec)
		}
	}

	return idx
}

// Len returns the number of distinct tokens indexed.
func (idx *Index) Len() int {
	return len(idx.ByToken)
}

// LookupToken returns the record for a token.
func (idx *Index) LookupToken(token string) (*types.PackageRecord, bool) {
	rec, ok := idx.ByToken[token]
	return rec, ok
}

// LookupName returns the records with an alias normalizing to name.
func (idx *Index) LookupName(normalized string) []*types.PackageRecord {
	return idx.ByNormalizedName[normalized]
}

// LookupCompactName returns the records with an alias that equals name once
// hyphens are stripped from both sides. The compact map is built on first
// use.
func (idx *Index) LookupCompactName(normalized string) []*types.PackageRecord {
	idx.compactOnce.Do(func() {
		idx.byCompact = make(map[string][]*types.PackageRecord, len(idx.ByNormalizedName))
		for key, recs := range idx.ByNormalizedName {
			ck := apps.CompactName(key)
			for _, rec := range recs {
				idx.byCompact[ck] = appendUnique(idx.byCompact[ck], rec)
			}
		}
	})
	return idx.byCompact[apps.CompactName(normalized)]
}

// Names returns every normalized alias key in sorted order.
func (idx *Index) Names() []string {
	idx.namesOnce.Do(func() {
		idx.names = make([]string, 0, len(idx.ByNormalizedName))
		for key := range idx.ByNormalizedName {
			idx.names = append(idx.names, key)
		}
		sort.Strings(idx.names)
	})
	return idx.names
}

// LookupBundle returns the records declaring an app bundle whose normalized
// stem equals stem.
func (idx *Index) LookupBundle(stem string) []*types.PackageRecord {
	return idx.ByAppBundle[stem]
}

// LookupBundleID returns the records whose uninstall directives name id.
func (idx *Index) LookupBundleID(id string) []*types.PackageRecord {
	return idx.ByBundleIdentifier[strings.TrimSpace(id)]
}

func (idx *Index) note(format string, args ...interface{}) {
	idx.Notes = append(idx.Notes, fmt.Sprintf(format, args...))
}

func appendUnique(list []*types.PackageRecord, rec *types.PackageRecord) []*types.PackageRecord {
	for _, existing := range list {
		if existing.Token == rec.Token {
			return list
		}
	}
	return append(list, rec)
}

// removeToken drops every reference to token so a later record with the
// same token replaces it everywhere.
func removeToken(idx *Index, token string) {
	for _, m := range []map[string][]*types.PackageRecord{
		idx.ByNormalizedName, idx.ByAppBundle, idx.ByBundleIdentifier,
	} {
		for key, list := range m {
			filtered := list[:0]
			for _, rec := range list {
				if strings.TrimSpace(rec.Token) != token {
					filtered = append(filtered, rec)
				}
			}
			if len(filtered) == 0 {
				delete(m, key)
			} else {
				m[key] = filtered
			}
		}
	}
}
