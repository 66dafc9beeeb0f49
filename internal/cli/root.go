package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/brewadopt/internal/version"
	"github.com/arthur-debert/brewadopt/pkg/brew"
	"github.com/arthur-debert/brewadopt/pkg/logging"
	"github.com/arthur-debert/brewadopt/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Options injects the collaborators the commands use. Zero values select
// the real implementations.
type Options struct {
	Runner     brew.Runner
	FS         afero.Fs
	HTTPClient *http.Client
}

type globalFlags struct {
	verbosity  int
	format     string
	configPath string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithOptions(Options{})
}

// NewRootCmdWithOptions builds the command tree over the given collaborators.
func NewRootCmdWithOptions(opts Options) *cobra.Command {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	if opts.Runner == nil {
		opts.Runner = brew.NewExecRunner()
	}

	flags := &globalFlags{}
	env := &environment{opts: opts, flags: flags}

	rootCmd := &cobra.Command{
		Use:     "brewadopt",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&flags.format, "format", "f", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", MsgFlagConfig)
	_ = rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(ui.FormatNames, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(newDiscoverCmd(env))
	rootCmd.AddCommand(newCacheCmd(env))
	rootCmd.AddCommand(newConfigCmd(env))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// Execute runs the root command with a context cancelled on interrupt and
// renders any error to stderr. It returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		renderError(rootCmd, err)
		return 1
	}
	return 0
}

// renderError writes err in the requested format, falling back to plain
// text when the format itself is the problem.
func renderError(rootCmd *cobra.Command, err error) {
	format := ui.FormatAuto
	if name, ferr := rootCmd.PersistentFlags().GetString("format"); ferr == nil {
		if parsed, perr := ui.ParseFormat(name); perr == nil {
			format = parsed
		} else {
			format = ui.FormatText
		}
	}

	renderer, rerr := ui.NewRenderer(format, rootCmd.ErrOrStderr())
	if rerr != nil {
		log.Error().Err(err).Msg("Command failed")
		return
	}
	if werr := renderer.RenderError(err); werr != nil {
		log.Error().Err(err).Msg("Command failed")
	}
}
