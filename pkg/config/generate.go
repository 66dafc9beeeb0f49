package config

import (
	"strings"

	"github.com/arthur-debert/brewadopt/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
)

// fileView mirrors Config in the shape of the config file, with durations
// as strings.
type fileView struct {
	Catalog struct {
		URL       string `toml:"url"`
		Timeout   string `toml:"timeout"`
		TTL       string `toml:"ttl"`
		CachePath string `toml:"cache_path"`
	} `toml:"catalog"`
	Matching struct {
		MinConfidence float64 `toml:"min_confidence"`
		MaxMatches    int     `toml:"max_matches"`
		Fuzzy         bool    `toml:"fuzzy"`
		Concurrency   int     `toml:"concurrency"`
	} `toml:"matching"`
	Discovery struct {
		AppDirs          []string `toml:"app_dirs"`
		Ignore           []string `toml:"ignore"`
		SlowPath         bool     `toml:"slow_path"`
		ProbeConcurrency int      `toml:"probe_concurrency"`
	} `toml:"discovery"`
}

// Generate renders cfg as a config file.
func Generate(cfg *Config) (string, error) {
	var v fileView
	v.Catalog.URL = cfg.Catalog.URL
	v.Catalog.Timeout = cfg.Catalog.Timeout.String()
	v.Catalog.TTL = cfg.Catalog.TTL.String()
	v.Catalog.CachePath = cfg.Catalog.CachePath
	v.Matching.MinConfidence = cfg.Matching.MinConfidence
	v.Matching.MaxMatches = cfg.Matching.MaxMatches
	v.Matching.Fuzzy = cfg.Matching.Fuzzy
	v.Matching.Concurrency = cfg.Matching.Concurrency
	v.Discovery.AppDirs = nonNil(cfg.Discovery.AppDirs)
	v.Discovery.Ignore = nonNil(cfg.Discovery.Ignore)
	v.Discovery.SlowPath = cfg.Discovery.SlowPath
	v.Discovery.ProbeConcurrency = cfg.Discovery.ProbeConcurrency

	out, err := toml.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot render configuration")
	}
	return string(out), nil
}

// GenerateCommented returns the embedded defaults with every value line
// commented out, suitable as a starting user file.
func GenerateCommented() string {
	lines := strings.Split(DefaultContent(), "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}
	return strings.Join(result, "\n")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
