package matcher

import (
	"sort"

	"github.com/arthur-debert/brewadopt/pkg/apps"
	"github.com/arthur-debert/brewadopt/pkg/index"
	"github.com/arthur-debert/brewadopt/pkg/types"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Values for MatchCandidate.Source.
const (
	SourceNormalizedName = "normalized_name"
	SourcePackageName    = "package_name"
	SourceBundleID       = "bundle_id"
)

// fuzzyCeiling is the highest confidence the fuzzy rule can produce. It sits
// below every direct rule.
const fuzzyCeiling = 0.75

// minFuzzyInput is the shortest normalized name the fuzzy rule accepts.
const minFuzzyInput = 3

// Hit is one record a rule found for an app.
type Hit struct {
	Record *types.PackageRecord
	Value  string
	Source string
	// Confidence overrides the rule confidence when non-zero.
	Confidence float64
}

// Rule is one row of the ranking table.
type Rule struct {
	Name       string
	Confidence float64
	MatchType  types.MatchType
	// OptIn rules only run when Config.Fuzzy is set.
	OptIn bool
	Find  func(app *types.LocalApp, idx *index.Index) []Hit
}

// Rules is the ranking policy, evaluated top to bottom. Candidates from an
// earlier rule win deduplication, so confidences must not increase down the
// table.
var Rules = []Rule{
	{Name: "name-exact", Confidence: 1.00, MatchType: types.MatchNameExact, Find: findNameExact},
	{Name: "name-exact-compact", Confidence: 0.98, MatchType: types.MatchNameExactCompact, Find: findNameCompact},
	{Name: "exact-app-bundle", Confidence: 0.95, MatchType: types.MatchExactAppBundle, Find: findExactBundle},
	{Name: "package-name-bundle", Confidence: 0.90, MatchType: types.MatchNormalizedAppBundle, Find: findVariantBundle},
	{Name: "package-name-bundle-compact", Confidence: 0.88, MatchType: types.MatchNormalizedAppBundleCompact, Find: findVariantBundleCompact},
	{Name: "bundle-identifier", Confidence: 0.85, MatchType: types.MatchBundleIdentifier, Find: findBundleID},
	{Name: "fuzzy-name", Confidence: fuzzyCeiling, MatchType: types.MatchFuzzyName, OptIn: true, Find: findFuzzyName},
}

func findNameExact(app *types.LocalApp, idx *index.Index) []Hit {
	recs := idx.LookupName(app.NormalizedName)
	hits := make([]Hit, 0, len(recs))
	for _, rec := range recs {
		hits = append(hits, Hit{
			Record: rec,
			Value:  firstAlias(rec, func(alias string) bool { return apps.Normalize(alias) == app.NormalizedName }),
			Source: SourceNormalizedName,
		})
	}
	return hits
}

func findNameCompact(app *types.LocalApp, idx *index.Index) []Hit {
	compact := apps.CompactName(app.NormalizedName)
	if compact == "" {
		return nil
	}
	recs := idx.LookupCompactName(app.NormalizedName)
	hits := make([]Hit, 0, len(recs))
	for _, rec := range recs {
		hits = append(hits, Hit{
			Record: rec,
			Value: firstAlias(rec, func(alias string) bool {
				return apps.CompactName(apps.Normalize(alias)) == compact
			}),
			Source: SourceNormalizedName,
		})
	}
	return hits
}

func findExactBundle(app *types.LocalApp, idx *index.Index) []Hit {
	return bundleHits(idx.LookupBundle(app.NormalizedName), app.NormalizedName, SourceNormalizedName)
}

func findVariantBundle(app *types.LocalApp, idx *index.Index) []Hit {
	if app.PackageName == "" || app.PackageName == app.NormalizedName {
		return nil
	}
	return bundleHits(idx.LookupBundle(app.PackageName), app.PackageName, SourcePackageName)
}

func findVariantBundleCompact(app *types.LocalApp, idx *index.Index) []Hit {
	if app.PackageName == "" || app.PackageName == app.NormalizedName {
		return nil
	}
	compact := apps.CompactName(app.PackageName)
	return bundleHits(idx.LookupBundle(compact), compact, SourcePackageName)
}

func findBundleID(app *types.LocalApp, idx *index.Index) []Hit {
	if app.BundleID == "" {
		return nil
	}
	recs := idx.LookupBundleID(app.BundleID)
	hits := make([]Hit, 0, len(recs))
	for _, rec := range recs {
		hits = append(hits, Hit{Record: rec, Value: app.BundleID, Source: SourceBundleID})
	}
	return hits
}

// findFuzzyName ranks every alias key containing the app's name as a
// subsequence by edit distance and scales the distance into
// (0, fuzzyCeiling].
func findFuzzyName(app *types.LocalApp, idx *index.Index) []Hit {
	if len(app.NormalizedName) < minFuzzyInput {
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(app.NormalizedName, idx.Names())
	if len(ranks) == 0 {
		return nil
	}
	sort.Stable(ranks)

	var hits []Hit
	for _, r := range ranks {
		conf := fuzzyCeiling * (1 - float64(r.Distance)/float64(max(len(r.Target), 1)))
		if conf <= 0 {
			continue
		}
		for _, rec := range idx.LookupName(r.Target) {
			hits = append(hits, Hit{
				Record:     rec,
				Value:      r.Target,
				Source:     SourceNormalizedName,
				Confidence: conf,
			})
		}
	}
	return hits
}

func bundleHits(recs []*types.PackageRecord, value, source string) []Hit {
	hits := make([]Hit, 0, len(recs))
	for _, rec := range recs {
		hits = append(hits, Hit{Record: rec, Value: value, Source: source})
	}
	return hits
}

// firstAlias returns the record's first alias accepted by match, so a record
// reports a single matched value however many aliases normalize alike.
func firstAlias(rec *types.PackageRecord, match func(string) bool) string {
	for _, alias := range rec.Names {
		if match(alias) {
			return alias
		}
	}
	return ""
}
