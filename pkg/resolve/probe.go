package resolve

import (
	"context"

	"github.com/arthur-debert/brewadopt/pkg/brew"
	"github.com/arthur-debert/brewadopt/pkg/logging"
	"github.com/arthur-debert/brewadopt/pkg/types"
	"golang.org/x/sync/errgroup"
)

// DefaultProbeConcurrency bounds concurrent brew invocations.
const DefaultProbeConcurrency = 4

// Prober answers whether a package name exists.
type Prober interface {
	Probe(ctx context.Context, name string) (brew.ProbeResult, error)
}

// Probe resolves each app with direct package-manager lookups: first its
// normalized name, then its package-name variant. A failing lookup only
// affects its own app.
type Probe struct {
	Brew        Prober
	Concurrency int
}

// Name implements Resolver.
func (p *Probe) Name() string { return "probe" }

// Resolve implements Resolver. The only error is a cancelled context.
func (p *Probe) Resolve(ctx context.Context, apps []*types.LocalApp) error {
	logger := logging.GetLogger("resolve.probe")
	done := logging.LogOperationStart(logger, "probe apps")
	defer done()

	limit := p.Concurrency
	if limit <= 0 {
		limit = DefaultProbeConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, app := range apps {
		app := app
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p.resolveOne(gctx, app)
			return nil
		})
	}
	return g.Wait()
}

func (p *Probe) resolveOne(ctx context.Context, app *types.LocalApp) {
	logger := logging.GetLogger("resolve.probe")

	var lastErr error
	for _, name := range app.LookupNames() {
		if name == "" {
			continue
		}
		res, err := p.Brew.Probe(ctx, name)
		if err != nil {
			lastErr = err
			logger.Debug().Err(err).Str("app", app.OriginalName).Str("name", name).Msg("Probe failed")
			continue
		}
		if res.Found {
			app.MarkAvailable(res.Type, res.Name, res.Description, res.Homepage)
			return
		}
	}

	reason := ""
	if lastErr != nil {
		reason = lastErr.Error()
	}
	app.MarkUnavailable(reason)
}
