// Package paths provides centralized path handling for brewadopt.
//
// This package implements the XDG Base Directory specification and provides
// a consistent API for every location brewadopt reads or writes:
//
//   - Cache: $XDG_CACHE_HOME/brewadopt (the compressed cask catalog)
//   - Config: $XDG_CONFIG_HOME/brewadopt (config.toml)
//   - State: $XDG_STATE_HOME/brewadopt (brewadopt.log)
//
// # Environment Variables
//
//   - BREWADOPT_CACHE_DIR: Override the cache directory
//   - BREWADOPT_CONFIG_DIR: Override the config directory
//   - BREWADOPT_STATE_DIR: Override the state directory
//
// # Usage
//
//	p, err := paths.New()
//	if err != nil {
//	    return err
//	}
//	cacheFile := p.CatalogCachePath() // ~/.cache/brewadopt/casks.json.gz
package paths
