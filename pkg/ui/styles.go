package ui

import (
	_ "embed"
	"sync"

	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed embedded/styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	MarginBottom int    `yaml:"marginBottom,omitempty"`
	MarginTop    int    `yaml:"marginTop,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
}

// StyleConfig is the parsed styles.yaml document.
type StyleConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Styles maps semantic names to lipgloss styles.
type Styles map[string]lipgloss.Style

// Get returns the named style, or an empty style when it is not defined.
func (s Styles) Get(name string) lipgloss.Style {
	if style, ok := s[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Render applies the named style to text.
func (s Styles) Render(name, text string) string {
	return s.Get(name).Render(text)
}

var (
	defaultOnce     sync.Once
	defaultRegistry Styles
)

// DefaultStyles returns the styles compiled into the binary.
func DefaultStyles() Styles {
	defaultOnce.Do(func() {
		styles, err := LoadStyles(defaultStyles)
		if err != nil {
			panic("embedded styles.yaml is invalid: " + err.Error())
		}
		defaultRegistry = styles
	})
	return defaultRegistry
}

// LoadStyles parses a styles document. A style naming an undefined color
// is an error so typos surface at load time.
func LoadStyles(data []byte) (Styles, error) {
	var cfg StyleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to parse styles")
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	out := make(Styles, len(cfg.Styles))
	for name, def := range cfg.Styles {
		style, err := buildStyle(def, colors)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "style %q", name).WithDetail("style", name)
		}
		out[name] = style
	}
	return out, nil
}

func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) (lipgloss.Style, error) {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}

	if def.Foreground != "" {
		color, ok := colors[def.Foreground]
		if !ok {
			return style, errors.Newf(errors.ErrConfigValid, "unknown color %q", def.Foreground)
		}
		style = style.Foreground(color)
	}
	if def.Background != "" {
		color, ok := colors[def.Background]
		if !ok {
			return style, errors.Newf(errors.ErrConfigValid, "unknown color %q", def.Background)
		}
		style = style.Background(color)
	}

	if def.MarginBottom > 0 {
		style = style.MarginBottom(def.MarginBottom)
	}
	if def.MarginTop > 0 {
		style = style.MarginTop(def.MarginTop)
	}
	if def.PaddingLeft > 0 {
		style = style.PaddingLeft(def.PaddingLeft)
	}
	return style, nil
}
