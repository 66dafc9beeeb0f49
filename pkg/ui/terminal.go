package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/brewadopt/pkg/catalog"
	"github.com/arthur-debert/brewadopt/pkg/discovery"
	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/arthur-debert/brewadopt/pkg/types"
	"github.com/pterm/pterm"
)

// terminalRenderer renders rich output: pterm badges per status group and
// lipgloss styles from styles.yaml for the cells.
type terminalRenderer struct {
	w      io.Writer
	styles Styles
}

func newTerminalRenderer(w io.Writer, styles Styles) *terminalRenderer {
	return &terminalRenderer{w: w, styles: styles}
}

// StatusBadge returns the pterm style used for a status badge.
func StatusBadge(status types.AppStatus) *pterm.Style {
	switch status {
	case types.StatusAvailable:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)
	case types.StatusAlreadyInstalled:
		return pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)
	case types.StatusUnavailable:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

func (r *terminalRenderer) RenderDiscovery(result *discovery.Result) error {
	var b strings.Builder

	secs := sections(result)
	if len(secs) == 0 {
		b.WriteString(r.styles.Render("Muted", "No applications found."))
		b.WriteString("\n")
	}

	for _, sec := range secs {
		badge := StatusBadge(sec.Status).Sprint(" " + strings.ToUpper(string(sec.Status)) + " ")
		fmt.Fprintf(&b, "%s %s %s\n", badge, r.styles.Render("Heading", sec.Title),
			r.styles.Render("Muted", fmt.Sprintf("(%d)", len(sec.Apps))))

		data := pterm.TableData{{"App", "Package", "Match", "Details"}}
		for _, app := range sec.Apps {
			data = append(data, []string{
				r.styles.Render("AppName", app.OriginalName),
				r.styles.Render("Package", packageLabel(app)),
				r.styles.Render("Confidence", matchLabel(app)),
				r.detail(app),
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to render table")
		}
		b.WriteString(table)
		b.WriteString("\n\n")
	}

	b.WriteString(r.styles.Render("Success", summaryLine(result)))
	b.WriteString("\n")
	if line := resolverLine(result); line != "" {
		style := "Muted"
		if result.FallbackCause != "" {
			style = "Warning"
		}
		b.WriteString(r.styles.Render(style, line))
		b.WriteString("\n")
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *terminalRenderer) detail(app *types.LocalApp) string {
	if app.Error != "" {
		return r.styles.Render("Warning", app.Error)
	}
	return r.styles.Render("Description", app.Description)
}

func (r *terminalRenderer) RenderCacheInfo(info *catalog.Info) error {
	var b strings.Builder
	b.WriteString(r.styles.Render("Heading", "Catalog cache"))
	b.WriteString("\n")
	for _, row := range cacheRows(info) {
		value := row[1]
		if row[0] == "Status" {
			switch {
			case !info.Exists:
				value = r.styles.Render("Muted", value)
			case info.Valid:
				value = r.styles.Render("Success", value)
			default:
				value = r.styles.Render("Warning", value)
			}
		}
		fmt.Fprintf(&b, "  %-8s %s\n", row[0]+":", value)
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *terminalRenderer) RenderError(err error) error {
	msg := fmt.Sprintf("%s %s\n", pterm.Error.Prefix.Text, r.styles.Render("Error", err.Error()))
	_, werr := io.WriteString(r.w, msg)
	return werr
}

func (r *terminalRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}
