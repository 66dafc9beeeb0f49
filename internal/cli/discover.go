package cli

import (
	"github.com/arthur-debert/brewadopt/pkg/apps"
	"github.com/arthur-debert/brewadopt/pkg/brew"
	"github.com/arthur-debert/brewadopt/pkg/config"
	"github.com/arthur-debert/brewadopt/pkg/discovery"
	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/arthur-debert/brewadopt/pkg/logging"
	"github.com/arthur-debert/brewadopt/pkg/matcher"
	"github.com/arthur-debert/brewadopt/pkg/paths"
	"github.com/arthur-debert/brewadopt/pkg/resolve"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type discoverFlags struct {
	refresh       bool
	slow          bool
	ignore        []string
	minConfidence float64
	maxMatches    int
	fuzzy         bool
	dirs          []string
}

func newDiscoverCmd(env *environment) *cobra.Command {
	flags := &discoverFlags{}

	cmd := &cobra.Command{
		Use:     "discover",
		Short:   MsgDiscoverShort,
		Long:    MsgDiscoverLong,
		Example: MsgDiscoverExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := env.config()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd.Flags(), cfg); err != nil {
				return err
			}
			renderer, err := env.renderer(cmd)
			if err != nil {
				return err
			}

			d, err := env.discoverer(cfg, flags.refresh)
			if err != nil {
				return err
			}

			logger := logging.WithFields(map[string]interface{}{
				"dirs":    cfg.Discovery.AppDirs,
				"slow":    cfg.Discovery.SlowPath,
				"refresh": flags.refresh,
			})
			logger.Info().Msg("Starting discovery")

			result, err := d.Run(cmd.Context(), discovery.Options{
				Ignore:   cfg.Discovery.Ignore,
				SlowPath: cfg.Discovery.SlowPath,
			})
			if err != nil {
				return err
			}
			return renderer.RenderDiscovery(result)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&flags.refresh, "refresh", false, MsgFlagRefresh)
	f.BoolVar(&flags.slow, "slow", false, MsgFlagSlow)
	f.StringSliceVar(&flags.ignore, "ignore", nil, MsgFlagIgnore)
	f.Float64Var(&flags.minConfidence, "min-confidence", matcher.DefaultMinConfidence, MsgFlagMinConfidence)
	f.IntVar(&flags.maxMatches, "max-matches", matcher.DefaultMaxMatches, MsgFlagMaxMatches)
	f.BoolVar(&flags.fuzzy, "fuzzy", false, MsgFlagFuzzy)
	f.StringSliceVar(&flags.dirs, "dir", nil, MsgFlagDir)
	_ = cmd.MarkFlagDirname("dir")

	return cmd
}

// apply overlays the flags the user actually set onto cfg.
func (f *discoverFlags) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("slow") {
		cfg.Discovery.SlowPath = f.slow
	}
	if fs.Changed("ignore") {
		cfg.Discovery.Ignore = append(cfg.Discovery.Ignore, f.ignore...)
	}
	if fs.Changed("min-confidence") {
		cfg.Matching.MinConfidence = f.minConfidence
	}
	if fs.Changed("max-matches") {
		cfg.Matching.MaxMatches = f.maxMatches
	}
	if fs.Changed("fuzzy") {
		cfg.Matching.Fuzzy = f.fuzzy
	}
	if fs.Changed("dir") {
		dirs := make([]string, 0, len(f.dirs))
		for _, dir := range f.dirs {
			dirs = append(dirs, paths.ExpandHome(dir))
		}
		cfg.Discovery.AppDirs = dirs
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid flag value").
			WithDetail("key", errors.GetErrorDetails(err)["key"])
	}
	return nil
}

// discoverer wires the collaborators of a discovery run from cfg.
func (e *environment) discoverer(cfg *config.Config, refresh bool) (*discovery.Discoverer, error) {
	store, err := e.store(cfg)
	if err != nil {
		return nil, err
	}

	m := matcher.New(matcher.Config{
		MinConfidence: cfg.Matching.MinConfidence,
		MaxMatches:    cfg.Matching.MaxMatches,
		Fuzzy:         cfg.Matching.Fuzzy,
		Concurrency:   cfg.Matching.Concurrency,
	})
	client := brew.NewClient(e.opts.Runner)

	batch := &resolve.Batch{Catalog: store, Matcher: m, ForceRefresh: refresh}
	probe := &resolve.Probe{Brew: client, Concurrency: cfg.Discovery.ProbeConcurrency}

	return discovery.New(client, apps.NewScanner(e.opts.FS, cfg.Discovery.AppDirs...), batch, probe), nil
}
