// Package config loads brewadopt's configuration.
//
// Sources are layered with koanf, later ones winning:
//
//  1. the embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/brewadopt/config.toml, or the file
//     named by BREWADOPT_CONFIG
//  3. environment variables BREWADOPT_<SECTION>_<KEY>
//
// Command-line flags are applied on top by the CLI.
package config
