package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/brewadopt/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AppName is stamped on every record written to the log file.
const AppName = "brewadopt"

// SetupLogger configures the global logger for a CLI invocation.
// Records go to stderr in console form and, when the state directory is
// writable, to the brewadopt log file as JSON lines.
func SetupLogger(verbosity int) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	// Console output respects NO_COLOR so piped runs stay plain
	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	writers := []io.Writer{console}

	logPath := logFilePath()
	file, fileErr := openLogFile(logPath)
	if fileErr == nil {
		writers = append(writers, file)
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).
		With().
		Timestamp().
		Str("app", AppName).
		Int("pid", os.Getpid()).
		Logger()

	// Report the file problem through the logger we just built
	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logPath).Msg("Log file unavailable, logging to stderr only")
	}

	// Caller locations only help when debugging
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().
		Int("verbosity", verbosity).
		Str("level", zerolog.GlobalLevel().String()).
		Str("log_file", logPath).
		Msg("Logging configured")
}

// levelFor maps the -v count to a level: none is warn, -v info, -vv debug,
// anything above trace.
func levelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a logger tagged with the component that owns it,
// e.g. "catalog.store" or "matcher".
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// ForRun scopes logger to a single discovery run so interleaved runs can be
// told apart in the log file.
func ForRun(logger zerolog.Logger, runID string) zerolog.Logger {
	return logger.With().Str("run", runID).Logger()
}

// WithFields returns the global logger with fields attached.
func WithFields(fields map[string]interface{}) zerolog.Logger {
	return log.With().Fields(fields).Logger()
}

// logFilePath resolves where the log file lives. BREWADOPT_STATE_DIR wins,
// then XDG_STATE_HOME, then ~/.local/state/brewadopt.
func logFilePath() string {
	p, err := paths.New()
	if err != nil {
		return paths.LogFileName
	}
	return p.LogFilePath()
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// LogCommand records an external command before it runs.
func LogCommand(name string, args []string) {
	log.Debug().
		Str("command", name).
		Strs("args", args).
		Msg("Running command")
}

// LogOperationStart logs that operation began and returns a func that logs
// its completion with the elapsed time. Typical use:
//
//	done := logging.LogOperationStart(logger, "fetch catalog")
//	defer done()
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("elapsed", time.Since(start)).
			Msg("Finished")
	}
}
