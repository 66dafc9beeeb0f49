package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/brewadopt/pkg/catalog"
	"github.com/arthur-debert/brewadopt/pkg/discovery"
)

// textRenderer writes plain aligned columns with no escape sequences, for
// pipes and NO_COLOR terminals.
type textRenderer struct {
	w io.Writer
}

func newTextRenderer(w io.Writer) *textRenderer {
	return &textRenderer{w: w}
}

func (r *textRenderer) RenderDiscovery(result *discovery.Result) error {
	var b strings.Builder
	for _, sec := range sections(result) {
		fmt.Fprintf(&b, "%s (%d)\n", sec.Title, len(sec.Apps))
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for _, app := range sec.Apps {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", app.OriginalName, packageLabel(app), matchLabel(app), detailLabel(app))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		b.WriteString("\n")
	}
	b.WriteString(summaryLine(result))
	b.WriteString("\n")
	if line := resolverLine(result); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	_, err := io.WriteString(r.w, trimRightLines(b.String()))
	return err
}

func (r *textRenderer) RenderCacheInfo(info *catalog.Info) error {
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	for _, row := range cacheRows(info) {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.w, "Error: %s\n", err.Error())
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

// trimRightLines drops the column padding tabwriter leaves after the last
// non-empty cell.
func trimRightLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
