// Package styles defines the visual styling for handoff's terminal output.
//
// Styles use semantic names and adaptive colors that adjust to light and
// dark terminal themes. They are declared in the embedded styles.yaml and
// built against a lipgloss renderer, so color detection follows the writer
// the output is going to rather than os.Stdout.
package styles

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold             bool   `yaml:"bold,omitempty"`
	Italic           bool   `yaml:"italic,omitempty"`
	Faint            bool   `yaml:"faint,omitempty"`
	Underline        bool   `yaml:"underline,omitempty"`
	Foreground       string `yaml:"foreground,omitempty"`
	Background       string `yaml:"background,omitempty"`
	Border           string `yaml:"border,omitempty"`
	BorderForeground string `yaml:"borderForeground,omitempty"`
	Width            int    `yaml:"width,omitempty"`
	Align            string `yaml:"align,omitempty"`
	MarginLeft       int    `yaml:"marginLeft,omitempty"`
	PaddingLeft      int    `yaml:"paddingLeft,omitempty"`
	PaddingRight     int    `yaml:"paddingRight,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Registry maps semantic names to lipgloss styles
type Registry map[string]lipgloss.Style

// Default builds the embedded styles for renderer.
func Default(renderer *lipgloss.Renderer) Registry {
	reg, err := Load(defaultStyles, renderer)
	if err != nil {
		panic(fmt.Sprintf("failed to load embedded styles: %v", err))
	}
	return reg
}

// Load parses a styles document and builds its styles for renderer.
func Load(data []byte, renderer *lipgloss.Renderer) (Registry, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	reg := make(Registry, len(config.Styles))
	for name, def := range config.Styles {
		style, err := buildStyle(renderer, def, colors)
		if err != nil {
			return nil, fmt.Errorf("style %s: %w", name, err)
		}
		reg[name] = style
	}
	return reg, nil
}

// buildStyle constructs a lipgloss style from a style definition
func buildStyle(renderer *lipgloss.Renderer, def StyleDef, colors map[string]lipgloss.AdaptiveColor) (lipgloss.Style, error) {
	style := renderer.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Faint {
		style = style.Faint(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}

	color := func(name string) (lipgloss.AdaptiveColor, error) {
		c, ok := colors[name]
		if !ok {
			return c, fmt.Errorf("unknown color %q", name)
		}
		return c, nil
	}

	if def.Foreground != "" {
		c, err := color(def.Foreground)
		if err != nil {
			return style, err
		}
		style = style.Foreground(c)
	}
	if def.Background != "" {
		c, err := color(def.Background)
		if err != nil {
			return style, err
		}
		style = style.Background(c)
	}

	if def.Border != "" {
		border, ok := borders[def.Border]
		if !ok {
			return style, fmt.Errorf("unknown border %q", def.Border)
		}
		style = style.Border(border)
		if def.BorderForeground != "" {
			c, err := color(def.BorderForeground)
			if err != nil {
				return style, err
			}
			style = style.BorderForeground(c)
		}
	}

	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	switch def.Align {
	case "center":
		style = style.Align(lipgloss.Center)
	case "right":
		style = style.Align(lipgloss.Right)
	}

	if def.MarginLeft > 0 {
		style = style.MarginLeft(def.MarginLeft)
	}
	if def.PaddingLeft > 0 || def.PaddingRight > 0 {
		style = style.Padding(0, def.PaddingRight, 0, def.PaddingLeft)
	}

	return style, nil
}

var borders = map[string]lipgloss.Border{
	"normal":  lipgloss.NormalBorder(),
	"rounded": lipgloss.RoundedBorder(),
	"double":  lipgloss.DoubleBorder(),
	"thick":   lipgloss.ThickBorder(),
}

// Get safely retrieves a style, returning an empty style for unknown names
func (r Registry) Get(name string) lipgloss.Style {
	if style, ok := r[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Render applies the named style to text.
func (r Registry) Render(name, text string) string {
	return r.Get(name).Render(text)
}
