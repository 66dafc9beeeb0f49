// Package brew queries the local Homebrew installation.
package brew

import (
	"bufio"
	"context"
	"strings"

	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/arthur-debert/brewadopt/pkg/logging"
	"github.com/arthur-debert/brewadopt/pkg/types"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// DefaultBinary is the Homebrew executable looked up on PATH.
const DefaultBinary = "brew"

// ProbeResult is the answer to "is there a package called name".
type ProbeResult struct {
	Found       bool
	Name        string
	Type        types.PackageType
	Description string
	Homepage    string
}

// Client wraps the brew commands brewadopt needs.
type Client struct {
	Runner Runner
	Binary string
	logger zerolog.Logger
}

// NewClient creates a Client. A nil runner selects NewExecRunner.
func NewClient(runner Runner) *Client {
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Client{
		Runner: runner,
		Binary: DefaultBinary,
		logger: logging.GetLogger("brew.client"),
	}
}

func (c *Client) run(ctx context.Context, args ...string) (Result, error) {
	bin := c.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	return c.Runner.Run(ctx, bin, args...)
}

// CheckInstalled verifies that brew can be executed and returns its
// version string, e.g. "4.3.1". Any failure is HOMEBREW_NOT_INSTALLED.
func (c *Client) CheckInstalled(ctx context.Context) (string, error) {
	res, err := c.run(ctx, "--version")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrHomebrewNotInstalled, "Homebrew is not installed or not on PATH")
	}
	if !res.Success {
		return "", errors.New(errors.ErrHomebrewNotInstalled, "Homebrew is not working").
			WithDetail("exitCode", res.ExitCode).
			WithDetail("stderr", strings.TrimSpace(res.Stderr))
	}

	line, _, _ := strings.Cut(strings.TrimSpace(res.Stdout), "\n")
	version := strings.TrimSpace(strings.TrimPrefix(line, "Homebrew"))
	c.logger.Debug().Str("version", version).Msg("Homebrew available")
	return version, nil
}

// InstalledPackages lists installed casks and formulae. When a name is
// both, the cask wins.
func (c *Client) InstalledPackages(ctx context.Context) (map[string]types.PackageType, error) {
	installed := make(map[string]types.PackageType)

	for _, kind := range []types.PackageType{types.PackageTypeFormula, types.PackageTypeCask} {
		res, err := c.run(ctx, "list", "--"+string(kind), "-1")
		if err != nil {
			return nil, err
		}
		if !res.Success {
			return nil, errors.Newf(errors.ErrCommandFailed, "brew list --%s failed", kind).
				WithDetail("exitCode", res.ExitCode).
				WithDetail("stderr", strings.TrimSpace(res.Stderr))
		}
		sc := bufio.NewScanner(strings.NewReader(res.Stdout))
		for sc.Scan() {
			if name := strings.TrimSpace(sc.Text()); name != "" {
				installed[name] = kind
			}
		}
	}

	c.logger.Debug().Int("count", len(installed)).Msg("Listed installed packages")
	return installed, nil
}

// infoV2 is the subset of `brew info --json=v2` brewadopt reads.
type infoV2 struct {
	Formulae []struct {
		Name     string `json:"name"`
		Desc     string `json:"desc"`
		Homepage string `json:"homepage"`
	} `json:"formulae"`
	Casks []struct {
		Token    string `json:"token"`
		Desc     string `json:"desc"`
		Homepage string `json:"homepage"`
	} `json:"casks"`
}

// Probe asks brew whether name exists as a cask, then as a formula. A name
// brew does not know is a clean miss (Found=false, nil error). Errors
// come from the runner or from output that cannot be parsed.
func (c *Client) Probe(ctx context.Context, name string) (ProbeResult, error) {
	for _, kind := range []types.PackageType{types.PackageTypeCask, types.PackageTypeFormula} {
		res, err := c.run(ctx, "info", "--"+string(kind), "--json=v2", name)
		if err != nil {
			return ProbeResult{}, err
		}
		if !res.Success {
			continue
		}

		var info infoV2
		if err := json.Unmarshal([]byte(res.Stdout), &info); err != nil {
			return ProbeResult{}, errors.Wrapf(err, errors.ErrCommandFailed, "cannot parse brew info output for %s", name).
				WithDetail("name", name)
		}

		switch {
		case kind == types.PackageTypeCask && len(info.Casks) > 0:
			cask := info.Casks[0]
			return ProbeResult{Found: true, Name: cask.Token, Type: kind, Description: cask.Desc, Homepage: cask.Homepage}, nil
		case kind == types.PackageTypeFormula && len(info.Formulae) > 0:
			f := info.Formulae[0]
			return ProbeResult{Found: true, Name: f.Name, Type: kind, Description: f.Desc, Homepage: f.Homepage}, nil
		}
	}
	return ProbeResult{Name: name}, nil
}
