package cli

import (
	"github.com/arthur-debert/brewadopt/pkg/catalog"
	"github.com/arthur-debert/brewadopt/pkg/config"
	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/arthur-debert/brewadopt/pkg/paths"
	"github.com/arthur-debert/brewadopt/pkg/ui"
	"github.com/spf13/cobra"
)

// environment resolves configuration, paths and renderers lazily so that
// flags are parsed before anything is loaded.
type environment struct {
	opts  Options
	flags *globalFlags

	cfg *config.Config
}

func (e *environment) config() (*config.Config, error) {
	if e.cfg != nil {
		return e.cfg, nil
	}

	var (
		cfg *config.Config
		err error
	)
	if e.flags.configPath != "" {
		cfg, err = config.LoadFile(paths.ExpandHome(e.flags.configPath), true)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	e.cfg = cfg
	return cfg, nil
}

func (e *environment) cachePath(cfg *config.Config) (string, error) {
	if cfg.Catalog.CachePath != "" {
		return cfg.Catalog.CachePath, nil
	}
	p, err := paths.New()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "cannot resolve cache directory")
	}
	return p.CatalogCachePath(), nil
}

func (e *environment) store(cfg *config.Config) (*catalog.Store, error) {
	cachePath, err := e.cachePath(cfg)
	if err != nil {
		return nil, err
	}
	return catalog.NewStore(catalog.Options{
		URL:        cfg.Catalog.URL,
		CachePath:  cachePath,
		TTL:        cfg.Catalog.TTL,
		Timeout:    cfg.Catalog.Timeout,
		FS:         e.opts.FS,
		HTTPClient: e.opts.HTTPClient,
	})
}

func (e *environment) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(e.flags.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}
