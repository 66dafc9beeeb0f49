package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"strings"

	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/arthur-debert/brewadopt/pkg/logging"
	"github.com/arthur-debert/brewadopt/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every configuration environment variable.
	EnvPrefix = "BREWADOPT_"

	// EnvConfigFile names an explicit config file.
	EnvConfigFile = "BREWADOPT_CONFIG"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

var sections = map[string]bool{"catalog": true, "matching": true, "discovery": true}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// DefaultContent returns the embedded defaults file.
func DefaultContent() string {
	return string(defaultConfig)
}

// Load reads the configuration from the default locations. The user file is
// BREWADOPT_CONFIG when set (and must then exist), otherwise the XDG
// config file when present.
func Load() (*Config, error) {
	if path := os.Getenv(EnvConfigFile); path != "" {
		return LoadFile(paths.ExpandHome(path), true)
	}

	p, err := paths.New()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot resolve config directory")
	}
	return LoadFile(p.ConfigFilePath(), false)
}

// LoadFile layers defaults, the file at path and the environment. An empty
// path skips the file layer. A missing file is an error only when required
// is set.
func LoadFile(path string, required bool) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")
	var loaded []string

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}
	loaded = append(loaded, "defaults")

	// 2. User file
	if path != "" {
		_, statErr := os.Stat(path)
		switch {
		case statErr == nil:
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
					WithDetail("path", path)
			}
			loaded = append(loaded, path)
			logger.Debug().Str("path", path).Msg("Loaded config file")
		case required || !os.IsNotExist(statErr):
			return nil, errors.FromFSError(statErr, path)
		}
	}

	// 3. Environment
	envK := koanf.New(".")
	if err := envK.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}
	if len(envK.Keys()) > 0 {
		if err := k.Load(confmap.Provider(envK.All(), "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to merge environment")
		}
		loaded = append(loaded, "environment")
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Source = loaded

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps BREWADOPT_MATCHING_MIN_CONFIDENCE to matching.min_confidence.
// Variables outside the known sections are ignored.
func envKey(s string) string {
	rest := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, ok := strings.Cut(rest, "_")
	if !ok || !sections[section] || key == "" {
		return ""
	}
	return section + "." + key
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	for i, dir := range cfg.Discovery.AppDirs {
		cfg.Discovery.AppDirs[i] = paths.ExpandHome(strings.TrimSpace(dir))
	}
	cfg.Catalog.CachePath = paths.ExpandHome(cfg.Catalog.CachePath)
	return &cfg, nil
}

// Default returns the embedded defaults with no user file or environment
// applied.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic("config: embedded defaults are invalid: " + err.Error())
	}
	cfg, err := unmarshal(k)
	if err != nil {
		panic("config: embedded defaults are invalid: " + err.Error())
	}
	cfg.Source = []string{"defaults"}
	return cfg
}
