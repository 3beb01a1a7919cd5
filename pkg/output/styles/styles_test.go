package styles

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer(profile termenv.Profile) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(&bytes.Buffer{})
	r.SetColorProfile(profile)
	return r
}

func TestDefault(t *testing.T) {
	reg := Default(testRenderer(termenv.Ascii))

	expected := []string{
		"Heading", "Rule", "Banner", "Title", "Version", "Subtitle",
		"Success", "SuccessTitle", "Fail", "Error", "Info", "Muted", "Dim",
		"Value", "Command", "Path", "Label", "DryRun",
	}
	for _, name := range expected {
		t.Run(name, func(t *testing.T) {
			_, ok := reg[name]
			assert.True(t, ok, "style %s should exist", name)
		})
	}
}

func TestRender(t *testing.T) {
	t.Run("ascii profile strips color", func(t *testing.T) {
		reg := Default(testRenderer(termenv.Ascii))
		assert.Equal(t, "done", reg.Render("Success", "done"))
	})

	t.Run("truecolor profile adds escapes", func(t *testing.T) {
		reg := Default(testRenderer(termenv.TrueColor))
		out := reg.Render("Success", "done")
		assert.Contains(t, out, "done")
		assert.Contains(t, out, "\x1b[")
	})

	t.Run("unknown style is plain", func(t *testing.T) {
		reg := Default(testRenderer(termenv.TrueColor))
		assert.Equal(t, "x", reg.Render("Nope", "x"))
	})
}

func TestLoad_Errors(t *testing.T) {
	r := testRenderer(termenv.Ascii)

	_, err := Load([]byte("colors: [unterminated"), r)
	require.Error(t, err)

	_, err = Load([]byte("styles:\n  X:\n    foreground: nosuch\n"), r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown color")

	_, err = Load([]byte("styles:\n  X:\n    border: wavy\n"), r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown border")
}

func TestBanner(t *testing.T) {
	reg := Default(testRenderer(termenv.Ascii))
	out := reg.Render("Banner", "hello")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "│   hello  │")
}
