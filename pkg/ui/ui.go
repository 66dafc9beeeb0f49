// Package ui renders command results in the formats the CLI accepts:
// rich terminal output, plain text, JSON, YAML and markdown.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/brewadopt/pkg/catalog"
	"github.com/arthur-debert/brewadopt/pkg/discovery"
	"github.com/arthur-debert/brewadopt/pkg/errors"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderDiscovery renders the outcome of a discovery run
	RenderDiscovery(result *discovery.Result) error

	// RenderCacheInfo renders the state of the catalog cache
	RenderCacheInfo(info *catalog.Info) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return newTerminalRenderer(output, DefaultStyles()), nil
	case FormatText:
		return newTextRenderer(output), nil
	case FormatJSON:
		return newJSONRenderer(output), nil
	case FormatYAML:
		return newYAMLRenderer(output), nil
	case FormatMarkdown:
		style := ""
		if file, ok := output.(*os.File); ok && isTerminal(file) && os.Getenv("NO_COLOR") == "" {
			style = glamourAutoStyle
		}
		return newMarkdownRenderer(output, style), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
