// Package matcher scores catalog records against local apps.
//
// Every rule in Rules is evaluated for an app, the candidates are
// deduplicated by token keeping the first (highest confidence) occurrence,
// filtered by MinConfidence, sorted and truncated to MaxMatches.
package matcher

import (
	"context"
	"runtime"
	"sort"

	"github.com/arthur-debert/brewadopt/pkg/index"
	"github.com/arthur-debert/brewadopt/pkg/logging"
	"github.com/arthur-debert/brewadopt/pkg/types"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMinConfidence = 0.6
	DefaultMaxMatches    = 5
)

// Config tunes a Matcher. Zero values select the defaults.
type Config struct {
	MinConfidence float64
	MaxMatches    int
	// Fuzzy enables opt-in rules.
	Fuzzy bool
	// Concurrency bounds MatchAll. Zero means GOMAXPROCS.
	Concurrency int
}

// DefaultConfig returns the default matching configuration.
func DefaultConfig() Config {
	return Config{MinConfidence: DefaultMinConfidence, MaxMatches: DefaultMaxMatches}
}

// Matcher applies the rule table with a fixed configuration. It holds no
// per-app state and is safe for concurrent use.
type Matcher struct {
	cfg   Config
	rules []Rule
}

// New creates a Matcher. A zero MaxMatches becomes DefaultMaxMatches and a
// negative MinConfidence becomes 0.
func New(cfg Config) *Matcher {
	if cfg.MaxMatches <= 0 {
		cfg.MaxMatches = DefaultMaxMatches
	}
	if cfg.MinConfidence < 0 {
		cfg.MinConfidence = 0
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.GOMAXPROCS(0)
	}
	return &Matcher{cfg: cfg, rules: Rules}
}

// Config returns the effective configuration.
func (m *Matcher) Config() Config {
	return m.cfg
}

// Match ranks the catalog records for one app. A nil index is a programming
// error and panics. An app with no match yields an empty candidate list, a
// nil Best and the hybrid strategy.
func (m *Matcher) Match(app *types.LocalApp, idx *index.Index) types.MatchResult {
	if idx == nil {
		panic("matcher: Match called without an index")
	}

	var candidates []types.MatchCandidate
	seen := make(map[string]struct{})

	for _, rule := range m.rules {
		if rule.OptIn && !m.cfg.Fuzzy {
			continue
		}
		for _, hit := range rule.Find(app, idx) {
			if hit.Record == nil {
				continue
			}
			if _, dup := seen[hit.Record.Token]; dup {
				continue
			}
			seen[hit.Record.Token] = struct{}{}

			conf := rule.Confidence
			if hit.Confidence > 0 {
				conf = min(hit.Confidence, rule.Confidence)
			}
			candidates = append(candidates, types.MatchCandidate{
				Record:       hit.Record,
				Token:        hit.Record.Token,
				Confidence:   conf,
				MatchType:    rule.MatchType,
				MatchedValue: hit.Value,
				Source:       hit.Source,
			})
		}
	}

	filtered := candidates[:0]
	for _, c := range candidates {
		if c.Confidence >= m.cfg.MinConfidence {
			filtered = append(filtered, c)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Confidence > filtered[j].Confidence
	})
	if len(filtered) > m.cfg.MaxMatches {
		filtered = filtered[:m.cfg.MaxMatches]
	}

	result := types.MatchResult{
		App:        app,
		Candidates: append([]types.MatchCandidate{}, filtered...),
		Strategy:   types.StrategyHybrid,
	}
	if len(result.Candidates) > 0 {
		result.Best = &result.Candidates[0]
		if result.Best.MatchType.IsDirect() {
			result.Strategy = types.StrategyAppBundle
		}
	}
	return result
}

// MatchAll matches every app concurrently. Results are in input order. The
// only error is a cancelled context.
func (m *Matcher) MatchAll(ctx context.Context, apps []*types.LocalApp, idx *index.Index) ([]types.MatchResult, error) {
	if idx == nil {
		panic("matcher: MatchAll called without an index")
	}

	logger := logging.GetLogger("matcher")
	done := logging.LogOperationStart(logger, "match apps")
	defer done()

	results := make([]types.MatchResult, len(apps))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.Concurrency)

	for i, app := range apps {
		i, app := i, app
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = m.Match(app, idx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matched := 0
	for i := range results {
		if results[i].HasMatch() {
			matched++
		}
	}
	logger.Info().Int("apps", len(apps)).Int("matched", matched).Msg("Matching complete")
	return results, nil
}
