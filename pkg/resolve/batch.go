package resolve

import (
	"context"

	"github.com/arthur-debert/brewadopt/pkg/catalog"
	"github.com/arthur-debert/brewadopt/pkg/index"
	"github.com/arthur-debert/brewadopt/pkg/logging"
	"github.com/arthur-debert/brewadopt/pkg/matcher"
	"github.com/arthur-debert/brewadopt/pkg/types"
)

// CatalogFetcher is the part of catalog.Store the batch resolver uses.
type CatalogFetcher interface {
	FetchAll(ctx context.Context, forceRefresh bool) (*catalog.FetchResult, error)
}

// Batch resolves apps through the catalog index.
type Batch struct {
	Catalog      CatalogFetcher
	Matcher      *matcher.Matcher
	ForceRefresh bool
}

// Name implements Resolver.
func (b *Batch) Name() string { return "batch" }

// Resolve implements Resolver. Results are applied only after every stage
// succeeded.
func (b *Batch) Resolve(ctx context.Context, apps []*types.LocalApp) error {
	logger := logging.GetLogger("resolve.batch")

	fetched, err := b.Catalog.FetchAll(ctx, b.ForceRefresh)
	if err != nil {
		return err
	}
	logger.Debug().
		Int("records", len(fetched.Records)).
		Bool("fromCache", fetched.FromCache).
		Msg("Catalog ready")

	idx := index.Build(fetched.Records)
	if len(idx.Notes) > 0 {
		logger.Debug().Int("notes", len(idx.Notes)).Strs("sample", sample(idx.Notes, 5)).Msg("Index built with diagnostics")
	}

	m := b.Matcher
	if m == nil {
		m = matcher.New(matcher.DefaultConfig())
	}
	results, err := m.MatchAll(ctx, apps, idx)
	if err != nil {
		return err
	}

	for i, app := range apps {
		res := results[i]
		app.Match = &res
		if !res.HasMatch() {
			app.MarkUnavailable("")
			continue
		}
		rec := res.Best.Record
		app.MarkAvailable(types.PackageTypeCask, res.Best.Token, rec.Description, rec.Homepage)
	}
	return nil
}

func sample(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
