// Package discovery runs one end-to-end classification of the local
// applications: probe Homebrew, enumerate bundles, classify the trivial
// cases, resolve the rest in batch and fall back to per-app probes when the
// batch path fails.
package discovery

import (
	"context"
	"time"

	"github.com/arthur-debert/brewadopt/pkg/apps"
	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/arthur-debert/brewadopt/pkg/logging"
	"github.com/arthur-debert/brewadopt/pkg/resolve"
	"github.com/arthur-debert/brewadopt/pkg/types"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Brew is the package-manager client a run needs.
type Brew interface {
	CheckInstalled(ctx context.Context) (string, error)
	InstalledPackages(ctx context.Context) (map[string]types.PackageType, error)
}

// Scanner enumerates local applications.
type Scanner interface {
	Scan(ctx context.Context) ([]*types.LocalApp, error)
}

// Options tune a single run.
type Options struct {
	// Ignore holds raw ignore-list entries; they are normalized.
	Ignore []string
	// SlowPath skips the batch resolver.
	SlowPath bool
}

// Result is the outcome of a run.
type Result struct {
	RunID         string                  `json:"run_id" yaml:"run_id"`
	BrewVersion   string                  `json:"brew_version" yaml:"brew_version"`
	Resolver      string                  `json:"resolver,omitempty" yaml:"resolver,omitempty"`
	FallbackCause string                  `json:"fallback_cause,omitempty" yaml:"fallback_cause,omitempty"`
	Apps          []*types.LocalApp       `json:"apps" yaml:"apps"`
	Counts        map[types.AppStatus]int `json:"counts" yaml:"counts"`
	Duration      time.Duration           `json:"duration" yaml:"duration"`
}

// Discoverer sequences a discovery run over injected collaborators.
type Discoverer struct {
	Brew     Brew
	Scanner  Scanner
	Batch    resolve.Resolver
	Fallback resolve.Resolver

	now    func() time.Time
	logger zerolog.Logger
}

// New creates a Discoverer. batch may be nil, in which case every run takes
// the fallback path.
func New(brew Brew, scanner Scanner, batch, fallback resolve.Resolver) *Discoverer {
	return &Discoverer{
		Brew:     brew,
		Scanner:  scanner,
		Batch:    batch,
		Fallback: fallback,
		now:      time.Now,
		logger:   logging.GetLogger("discovery"),
	}
}

// Run performs one discovery. Only an unreachable package manager or an
// unreadable application directory fail the run; every other problem
// degrades to the fallback resolver or to a per-app unavailable status.
func (d *Discoverer) Run(ctx context.Context, opts Options) (*Result, error) {
	start := d.now()
	result := &Result{
		RunID:  ulid.Make().String(),
		Counts: make(map[types.AppStatus]int),
	}
	logger := logging.ForRun(d.logger, result.RunID)

	version, err := d.Brew.CheckInstalled(ctx)
	if err != nil {
		if !errors.IsErrorCode(err, errors.ErrHomebrewNotInstalled) {
			err = errors.Wrap(err, errors.ErrHomebrewNotInstalled, "Homebrew is not available")
		}
		return nil, err
	}
	result.BrewVersion = version

	found, err := d.Scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}
	result.Apps = found
	if len(found) == 0 {
		logger.Info().Msg("No applications found")
		result.Apps = []*types.LocalApp{}
		result.Duration = d.now().Sub(start)
		return result, nil
	}

	pending := d.classify(ctx, found, apps.NewIgnoreList(opts.Ignore), logger)
	logger.Info().
		Int("apps", len(found)).
		Int("pending", len(pending)).
		Msg("Classified applications")

	if len(pending) > 0 {
		name, cause, err := d.resolve(ctx, pending, opts, logger)
		if err != nil {
			return nil, err
		}
		result.Resolver = name
		result.FallbackCause = cause
	}

	result.Counts = types.CountByStatus(found)
	result.Duration = d.now().Sub(start)
	logger.Info().
		Str("resolver", result.Resolver).
		Interface("counts", result.Counts).
		Dur("duration", result.Duration).
		Msg("Discovery complete")
	return result, nil
}

// classify marks ignored and already-installed apps and returns the rest,
// reset to pending.
func (d *Discoverer) classify(ctx context.Context, found []*types.LocalApp, ignore *apps.IgnoreList, logger zerolog.Logger) []*types.LocalApp {
	installed, err := d.Brew.InstalledPackages(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Could not list installed packages, assuming none")
		installed = nil
	}

	var pending []*types.LocalApp
	for _, app := range found {
		switch {
		case ignore.Matches(app.NormalizedName):
			app.Status = types.StatusIgnored
		case markInstalled(app, installed):
		default:
			app.Status = types.StatusPending
			pending = append(pending, app)
		}
	}
	return pending
}

func markInstalled(app *types.LocalApp, installed map[string]types.PackageType) bool {
	for _, name := range app.LookupNames() {
		if kind, ok := installed[name]; ok {
			app.Status = types.StatusAlreadyInstalled
			app.PackageType = kind
			app.MatchedPackage = name
			return true
		}
	}
	return false
}

// resolve runs the batch resolver and falls back on any error. It returns
// the name of the resolver that produced the result and, after a fallback,
// the reason.
func (d *Discoverer) resolve(ctx context.Context, pending []*types.LocalApp, opts Options, logger zerolog.Logger) (string, string, error) {
	cause := ""
	switch {
	case opts.SlowPath:
		cause = "slow path requested"
	case d.Batch == nil:
		cause = "no batch resolver"
	default:
		err := d.Batch.Resolve(ctx, pending)
		if err == nil {
			return d.Batch.Name(), "", nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", "", ctxErr
		}
		cause = err.Error()
		logger.Warn().Err(err).Msg("Batch resolution failed, falling back to per-app probes")
		for _, app := range pending {
			app.Status = types.StatusPending
			app.Match = nil
		}
	}

	if d.Fallback == nil {
		return "", cause, errors.New(errors.ErrInternal, "no fallback resolver configured")
	}
	if err := d.Fallback.Resolve(ctx, pending); err != nil {
		return "", cause, err
	}
	return d.Fallback.Name(), cause, nil
}
