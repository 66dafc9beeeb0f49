package brew

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"time"

	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/arthur-debert/brewadopt/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultCommandTimeout bounds a single command.
const DefaultCommandTimeout = 2 * time.Minute

// Result is the outcome of a finished command. A non-zero exit status is
// reported through Success and ExitCode, not as an error.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Success  bool
}

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Timeout time.Duration
	// Env is appended to the current environment.
	Env    []string
	logger zerolog.Logger
}

// NewExecRunner creates an ExecRunner that keeps Homebrew from
// auto-updating or reporting analytics while it is being queried.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Timeout: DefaultCommandTimeout,
		Env:     []string{"HOMEBREW_NO_AUTO_UPDATE=1", "HOMEBREW_NO_ANALYTICS=1", "HOMEBREW_NO_ENV_HINTS=1"},
		logger:  logging.GetLogger("brew.exec"),
	}
}

// Run implements Runner. It returns an error only when the command cannot
// be started or the context ends first.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), r.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.LogCommand(name, args)
	err := cmd.Run()

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		res.Success = true
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		code := errors.ErrCommandFailed
		if stderrors.Is(ctxErr, context.DeadlineExceeded) {
			code = errors.ErrTimeout
		}
		return res, errors.Wrapf(ctxErr, code, "%s did not finish", name).
			WithDetail("command", name).
			WithDetail("args", args)
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		r.logger.Debug().
			Str("command", name).
			Strs("args", args).
			Int("exitCode", res.ExitCode).
			Str("stderr", res.Stderr).
			Msg("Command exited with non-zero status")
		return res, nil
	}

	return res, errors.Wrapf(err, errors.ErrCommandFailed, "cannot run %s", name).
		WithDetail("command", name)
}
