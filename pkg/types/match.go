package types

// MatchType names the rule that produced a candidate.
type MatchType string

const (
	MatchNameExact                  MatchType = "name-exact"
	MatchNameExactCompact           MatchType = "name-exact-compact"
	MatchExactAppBundle             MatchType = "exact-app-bundle"
	MatchNormalizedAppBundle        MatchType = "normalized-app-bundle"
	MatchNormalizedAppBundleCompact MatchType = "normalized-app-bundle-compact"
	MatchBundleIdentifier           MatchType = "bundle-identifier"
	MatchFuzzyName                  MatchType = "fuzzy-name"
)

// IsDirect reports whether the match type is derived from a name, bundle
// filename, bundle identifier or token lookup rather than a fuzzy search.
func (m MatchType) IsDirect() bool {
	switch m {
	case MatchNameExact, MatchNameExactCompact, MatchExactAppBundle,
		MatchNormalizedAppBundle, MatchNormalizedAppBundleCompact, MatchBundleIdentifier:
		return true
	}
	return false
}

// Strategy labels summarize how a match result was reached.
const (
	StrategyAppBundle = "app-bundle"
	StrategyHybrid    = "hybrid"
)

// MatchCandidate is one catalog record proposed for a local app.
type MatchCandidate struct {
	Record     *PackageRecord `json:"-" yaml:"-"`
	Token      string         `json:"token" yaml:"token"`
	Confidence float64        `json:"confidence" yaml:"confidence"`
	MatchType  MatchType      `json:"match_type" yaml:"match_type"`
	// MatchedValue is the alias, bundle stem or identifier that matched.
	MatchedValue string `json:"matched_value" yaml:"matched_value"`
	// Source names the app field the lookup key came from.
	Source string `json:"source" yaml:"source"`
}

// MatchResult is the ranked outcome of matching one app.
type MatchResult struct {
	App        *LocalApp        `json:"-" yaml:"-"`
	Candidates []MatchCandidate `json:"candidates" yaml:"candidates"`
	Best       *MatchCandidate  `json:"best,omitempty" yaml:"best,omitempty"`
	Strategy   string           `json:"strategy" yaml:"strategy"`
}

// HasMatch reports whether the result has a best candidate.
func (r *MatchResult) HasMatch() bool {
	return r != nil && r.Best != nil
}
