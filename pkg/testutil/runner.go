package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/arthur-debert/brewadopt/pkg/brew"
)

// FakeRunner implements brew.Runner with scripted responses keyed by the
// full command line, e.g. "brew info --cask --json=v2 firefox". Unscripted
// commands exit with status 1.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     []string
}

type fakeResponse struct {
	result brew.Result
	err    error
}

// NewFakeRunner creates a runner that answers "brew --version" and empty
// "brew list" calls, so it behaves like a fresh Homebrew install.
func NewFakeRunner() *FakeRunner {
	r := &FakeRunner{responses: make(map[string]fakeResponse)}
	r.On("brew --version", brew.Result{Stdout: "Homebrew 4.3.1\n", Success: true})
	r.On("brew list --formula -1", brew.Result{Success: true})
	r.On("brew list --cask -1", brew.Result{Success: true})
	return r
}

// On scripts the result for a command line.
func (r *FakeRunner) On(cmdline string, res brew.Result) *FakeRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[cmdline] = fakeResponse{result: res}
	return r
}

// OnError scripts a runner error for a command line.
func (r *FakeRunner) OnError(cmdline string, err error) *FakeRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[cmdline] = fakeResponse{err: err}
	return r
}

// Cask scripts "brew info --cask" for token.
func (r *FakeRunner) Cask(token, desc, homepage string) *FakeRunner {
	return r.On("brew info --cask --json=v2 "+token, brew.Result{
		Stdout:  `{"formulae":[],"casks":[{"token":"` + token + `","desc":"` + desc + `","homepage":"` + homepage + `"}]}`,
		Success: true,
	})
}

// Formula scripts "brew info --formula" for name.
func (r *FakeRunner) Formula(name, desc string) *FakeRunner {
	return r.On("brew info --formula --json=v2 "+name, brew.Result{
		Stdout:  `{"formulae":[{"name":"` + name + `","desc":"` + desc + `"}],"casks":[]}`,
		Success: true,
	})
}

// Installed scripts the output of "brew list --cask -1".
func (r *FakeRunner) Installed(casks ...string) *FakeRunner {
	return r.On("brew list --cask -1", brew.Result{Stdout: strings.Join(casks, "\n") + "\n", Success: true})
}

// Run implements brew.Runner.
func (r *FakeRunner) Run(ctx context.Context, name string, args ...string) (brew.Result, error) {
	cmdline := strings.Join(append([]string{name}, args...), " ")

	r.mu.Lock()
	r.calls = append(r.calls, cmdline)
	resp, ok := r.responses[cmdline]
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return brew.Result{}, err
	}
	if !ok {
		return brew.Result{ExitCode: 1, Stderr: "Error: No available formula or cask"}, nil
	}
	return resp.result, resp.err
}

// Calls returns the command lines run so far.
func (r *FakeRunner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Called reports whether a command line was run.
func (r *FakeRunner) Called(cmdline string) bool {
	for _, c := range r.Calls() {
		if c == cmdline {
			return true
		}
	}
	return false
}
