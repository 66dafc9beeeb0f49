package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort         = "Find apps Homebrew could manage for you"
	MsgVersionShort      = "Print version information"
	MsgVersionLong       = "Print detailed version information including commit hash and build date"
	MsgDiscoverShort     = "Classify local applications against Homebrew"
	MsgCacheShort        = "Inspect or manage the cask catalog cache"
	MsgCacheInfoShort    = "Show the catalog cache location and state"
	MsgCacheClearShort   = "Delete the catalog cache"
	MsgCacheRefreshShort = "Download the catalog and rewrite the cache"
	MsgConfigShort       = "Inspect the configuration"
	MsgConfigShowShort   = "Print the effective configuration"
	MsgConfigInitShort   = "Write a commented config file with the defaults"
	MsgCompletionShort   = "Generate shell completion script"

	// Status messages
	MsgCacheCleared     = "Removed catalog cache at %s"
	MsgCacheRefreshed   = "Fetched %s casks from %s"
	MsgConfigWritten    = "Wrote %s"
	MsgConfigSourceLine = "# loaded from: %s\n"

	// Version output
	MsgVersionFormat = "brewadopt version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error messages
	MsgErrConfigExists = "%s already exists (use --force to overwrite)"

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat        = "Output format: auto, term, text, json, yaml or markdown"
	MsgFlagConfig        = "Config file to load instead of the default location"
	MsgFlagRefresh       = "Download a fresh catalog even if the cache is valid"
	MsgFlagSlow          = "Skip the catalog and ask brew about each app"
	MsgFlagIgnore        = "App names to ignore (comma separated, added to the config list)"
	MsgFlagMinConfidence = "Discard candidates below this confidence (0-1)"
	MsgFlagMaxMatches    = "Keep at most this many candidates per app"
	MsgFlagFuzzy         = "Also try fuzzy name matches"
	MsgFlagDir           = "Application directory to scan (repeatable, replaces the configured list)"
	MsgFlagForce         = "Overwrite an existing config file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/discover-long.txt
	msgDiscoverLongRaw string
	MsgDiscoverLong    = strings.TrimSpace(msgDiscoverLongRaw)

	//go:embed msgs/discover-example.txt
	msgDiscoverExampleRaw string
	MsgDiscoverExample    = strings.TrimRight(msgDiscoverExampleRaw, "\n")

	//go:embed msgs/cache-long.txt
	msgCacheLongRaw string
	MsgCacheLong    = strings.TrimSpace(msgCacheLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
