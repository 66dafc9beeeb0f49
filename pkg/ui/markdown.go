package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/brewadopt/pkg/catalog"
	"github.com/arthur-debert/brewadopt/pkg/discovery"
	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/charmbracelet/glamour"
)

const (
	glamourAutoStyle = "auto"
	glamourWrapWidth = 100
)

// markdownRenderer writes markdown tables. With a style set the document is
// rendered for the terminal through glamour; otherwise the raw markdown is
// written so it can be pasted into notes or issues.
type markdownRenderer struct {
	w     io.Writer
	style string
}

func newMarkdownRenderer(w io.Writer, style string) *markdownRenderer {
	return &markdownRenderer{w: w, style: style}
}

func (r *markdownRenderer) write(doc string) error {
	if r.style == "" {
		_, err := io.WriteString(r.w, doc)
		return err
	}

	options := []glamour.TermRendererOption{glamour.WithWordWrap(glamourWrapWidth)}
	if r.style == glamourAutoStyle {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStandardStyle(r.style))
	}
	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create markdown renderer")
	}
	out, err := renderer.Render(doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render markdown")
	}
	_, err = io.WriteString(r.w, out)
	return err
}

func (r *markdownRenderer) RenderDiscovery(result *discovery.Result) error {
	var b strings.Builder
	b.WriteString("# Application discovery\n\n")
	for _, sec := range sections(result) {
		fmt.Fprintf(&b, "## %s (%d)\n\n", sec.Title, len(sec.Apps))
		b.WriteString("| App | Package | Match | Details |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, app := range sec.Apps {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				mdCell(app.OriginalName), mdCode(packageLabel(app)),
				mdCell(matchLabel(app)), mdCell(detailLabel(app)))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s\n", summaryLine(result))
	if line := resolverLine(result); line != "" {
		fmt.Fprintf(&b, "\n_%s_\n", mdCell(line))
	}
	return r.write(b.String())
}

func (r *markdownRenderer) RenderCacheInfo(info *catalog.Info) error {
	var b strings.Builder
	b.WriteString("# Catalog cache\n\n| Field | Value |\n|---|---|\n")
	for _, row := range cacheRows(info) {
		fmt.Fprintf(&b, "| %s | %s |\n", row[0], mdCell(row[1]))
	}
	return r.write(b.String())
}

func (r *markdownRenderer) RenderError(err error) error {
	return r.write(fmt.Sprintf("**Error:** %s\n", mdCell(err.Error())))
}

func (r *markdownRenderer) RenderMessage(msg string) error {
	return r.write(msg + "\n")
}

// mdCell escapes the characters that would break a table row.
func mdCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func mdCode(s string) string {
	if s == "" {
		return ""
	}
	return "`" + s + "`"
}
