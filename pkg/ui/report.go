package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/brewadopt/pkg/catalog"
	"github.com/arthur-debert/brewadopt/pkg/discovery"
	"github.com/arthur-debert/brewadopt/pkg/types"
	"github.com/dustin/go-humanize"
)

// section groups the apps of one status for the human-readable renderers.
type section struct {
	Status types.AppStatus
	Title  string
	Apps   []*types.LocalApp
}

func sectionTitle(s types.AppStatus) string {
	switch s {
	case types.StatusAvailable:
		return "Available in Homebrew"
	case types.StatusAlreadyInstalled:
		return "Already managed by Homebrew"
	case types.StatusUnavailable:
		return "No package found"
	case types.StatusIgnored:
		return "Ignored"
	default:
		return string(s)
	}
}

// sections returns the non-empty status groups in display order.
func sections(result *discovery.Result) []section {
	var out []section
	for _, status := range types.AllStatuses {
		apps := types.FilterByStatus(result.Apps, status)
		if len(apps) == 0 {
			continue
		}
		out = append(out, section{Status: status, Title: sectionTitle(status), Apps: apps})
	}
	return out
}

func packageLabel(app *types.LocalApp) string {
	if app.MatchedPackage == "" {
		return ""
	}
	if app.PackageType == "" {
		return app.MatchedPackage
	}
	return fmt.Sprintf("%s (%s)", app.MatchedPackage, app.PackageType)
}

func matchLabel(app *types.LocalApp) string {
	if !app.Match.HasMatch() {
		return ""
	}
	best := app.Match.Best
	return fmt.Sprintf("%s %.2f", best.MatchType, best.Confidence)
}

// detailLabel is the last column: the description for matches, the error
// for failed probes.
func detailLabel(app *types.LocalApp) string {
	if app.Error != "" {
		return app.Error
	}
	return app.Description
}

func summaryLine(result *discovery.Result) string {
	counts := result.Counts
	if counts == nil {
		counts = types.CountByStatus(result.Apps)
	}
	parts := make([]string, 0, len(types.AllStatuses))
	for _, status := range types.AllStatuses {
		parts = append(parts, fmt.Sprintf("%d %s", counts[status], strings.ReplaceAll(string(status), "-", " ")))
	}
	return fmt.Sprintf("%s %s: %s", humanize.Comma(int64(len(result.Apps))),
		plural(len(result.Apps), "app", "apps"), strings.Join(parts, ", "))
}

func resolverLine(result *discovery.Result) string {
	if result.Resolver == "" {
		return ""
	}
	line := fmt.Sprintf("resolved via %s in %s", result.Resolver, result.Duration.Round(time.Millisecond))
	if result.FallbackCause != "" {
		line += fmt.Sprintf(" (batch failed: %s)", result.FallbackCause)
	}
	return line
}

// cacheRows lists the cache facts as label/value pairs.
func cacheRows(info *catalog.Info) [][2]string {
	rows := [][2]string{{"Path", info.Path}}
	if !info.Exists {
		return append(rows, [2]string{"Status", "missing"})
	}

	status := "valid"
	if !info.Valid {
		status = "invalid"
		if info.Reason != "" {
			status += ": " + info.Reason
		}
	}
	rows = append(rows,
		[2]string{"Status", status},
		[2]string{"Size", humanize.Bytes(uint64(info.Size))},
	)
	if info.Valid {
		rows = append(rows, [2]string{"Records", humanize.Comma(int64(info.Records))})
	}
	if !info.ModTime.IsZero() {
		rows = append(rows, [2]string{"Updated", humanize.Time(info.ModTime)})
	}
	if info.TTL > 0 {
		rows = append(rows, [2]string{"TTL", info.TTL.String()})
	}
	return rows
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
