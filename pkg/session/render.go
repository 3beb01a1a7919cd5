package session

import (
	"github.com/charmbracelet/glamour"
)

// Renderer turns a handoff into terminal output.
type Renderer interface {
	Render(content string) string
}

// PlainRenderer returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string) string {
	return content
}

// GlamourRenderer uses the glamour library for rich markdown rendering
type GlamourRenderer struct {
	Style string // Style name: "dark", "light", "notty", "auto", or path to custom style
	Width int    // Word wrap width (0 = glamour default)
}

// NewGlamourRenderer creates a markdown renderer using glamour with auto-detection
func NewGlamourRenderer(width int) *GlamourRenderer {
	return &GlamourRenderer{
		Style: "auto",
		Width: width,
	}
}

// NewRenderer picks glamour for color terminals and plain output otherwise.
func NewRenderer(color bool, width int) Renderer {
	if !color {
		return &PlainRenderer{}
	}
	return NewGlamourRenderer(width)
}

// Render converts markdown for the terminal, falling back to the raw text.
func (r *GlamourRenderer) Render(content string) string {
	var options []glamour.TermRendererOption

	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	case "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night":
		options = append(options, glamour.WithStandardStyle(r.Style))
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}

	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return rendered
}
