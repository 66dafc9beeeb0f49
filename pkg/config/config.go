package config

import (
	"strings"
	"time"

	"github.com/arthur-debert/brewadopt/pkg/errors"
)

// Config is the effective configuration.
type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Matching  MatchingConfig  `koanf:"matching"`
	Discovery DiscoveryConfig `koanf:"discovery"`

	// Source lists the files and layers that were loaded, in order.
	Source []string `koanf:"-"`
}

// CatalogConfig configures the catalog store.
type CatalogConfig struct {
	URL       string        `koanf:"url"`
	Timeout   time.Duration `koanf:"timeout"`
	TTL       time.Duration `koanf:"ttl"`
	CachePath string        `koanf:"cache_path"`
}

// MatchingConfig configures the matcher.
type MatchingConfig struct {
	MinConfidence float64 `koanf:"min_confidence"`
	MaxMatches    int     `koanf:"max_matches"`
	Fuzzy         bool    `koanf:"fuzzy"`
	Concurrency   int     `koanf:"concurrency"`
}

// DiscoveryConfig configures a discovery run.
type DiscoveryConfig struct {
	AppDirs          []string `koanf:"app_dirs"`
	Ignore           []string `koanf:"ignore"`
	SlowPath         bool     `koanf:"slow_path"`
	ProbeConcurrency int      `koanf:"probe_concurrency"`
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	fail := func(key, msg string, value interface{}) error {
		return errors.Newf(errors.ErrConfigValid, "%s: %s", key, msg).
			WithDetail("key", key).
			WithDetail("value", value)
	}

	switch {
	case strings.TrimSpace(c.Catalog.URL) == "":
		return fail("catalog.url", "must not be empty", c.Catalog.URL)
	case c.Catalog.Timeout <= 0:
		return fail("catalog.timeout", "must be positive", c.Catalog.Timeout.String())
	case c.Catalog.TTL <= 0:
		return fail("catalog.ttl", "must be positive", c.Catalog.TTL.String())
	case c.Matching.MinConfidence < 0 || c.Matching.MinConfidence > 1:
		return fail("matching.min_confidence", "must be between 0 and 1", c.Matching.MinConfidence)
	case c.Matching.MaxMatches < 1:
		return fail("matching.max_matches", "must be at least 1", c.Matching.MaxMatches)
	case c.Matching.Concurrency < 0:
		return fail("matching.concurrency", "must not be negative", c.Matching.Concurrency)
	case len(c.Discovery.AppDirs) == 0:
		return fail("discovery.app_dirs", "must list at least one directory", c.Discovery.AppDirs)
	case c.Discovery.ProbeConcurrency < 1:
		return fail("discovery.probe_concurrency", "must be at least 1", c.Discovery.ProbeConcurrency)
	}
	return nil
}
