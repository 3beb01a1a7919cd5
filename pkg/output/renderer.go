package output

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/sessionkit/handoff/pkg/logging"
	"github.com/sessionkit/handoff/pkg/output/styles"
	"github.com/sessionkit/handoff/pkg/types"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const ruleWidth = 40

// CommandHelp is one entry of the installed commands list.
type CommandHelp struct {
	Name string
	Help string
}

// InstalledCommands are listed after a successful install.
var InstalledCommands = []CommandHelp{
	{"/handoff", "Auto-save session"},
	{"/resume", "Resume with wizard"},
	{"/save-handoff", "Save with options"},
	{"/switch-context", "Switch workstream"},
	{"/delete-handoff", "Delete handoff(s)"},
	{"/auto-handoff", "Toggle auto-handoff"},
}

// Renderer writes installer reports to a terminal or plain writer.
//
// Reports are produced in two phases:
//  1. Template expansion: the embedded templates lay out the result
//  2. Styling: the "style" template function applies lipgloss styles, or
//     returns text untouched when color is off
type Renderer struct {
	templates *template.Template
	writer    io.Writer
	noColor   bool
	styles    styles.Registry
}

// NewRenderer creates a Renderer writing to w. With noColor every style is
// a no-op; otherwise colors follow w's terminal profile, upgraded to 256
// colors when w is not a terminal (color was explicitly requested).
func NewRenderer(w io.Writer, noColor bool) (*Renderer, error) {
	log := logging.GetLogger("output.Renderer")

	lr := lipgloss.NewRenderer(w)
	if noColor {
		lr.SetColorProfile(termenv.Ascii)
	} else if lr.ColorProfile() == termenv.Ascii {
		lr.SetColorProfile(termenv.ANSI256)
	}
	log.Debug().
		Bool("noColor", noColor).
		Str("colorProfile", profileName(lr.ColorProfile())).
		Msg("Creating renderer")

	r := &Renderer{
		writer:  w,
		noColor: noColor,
		styles:  styles.Default(lr),
	}

	tmpl, err := template.New("output").Funcs(r.funcs()).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.templates = tmpl

	return r, nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"style": r.style,
		"step":  r.step,
		"check": r.check,
		"pad":   pad,
		"rule":  func() string { return strings.Repeat("═", ruleWidth) },
	}
}

func (r *Renderer) style(name, text string) string {
	if r.noColor {
		return text
	}
	return r.styles.Render(name, text)
}

func (r *Renderer) step(s types.Step) string {
	switch s.Status {
	case types.StepOK:
		return r.style("Success", "✓") + " " + s.Message
	case types.StepFail:
		return r.style("Fail", "✗") + " " + s.Message
	default:
		return r.style("Info", s.Message)
	}
}

func (r *Renderer) check(c types.StatusCheck) string {
	mark := r.style("Success", "✓")
	if !c.OK {
		mark = r.style("Fail", "✗")
	}
	if c.Detail == "" {
		return mark + " " + c.Name
	}
	return mark + " " + c.Name + ": " + r.style("Muted", c.Detail)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}

// sectionView groups consecutive steps under their section heading.
type sectionView struct {
	Title string
	Steps []types.Step
}

func groupSections(steps []types.Step) []sectionView {
	var sections []sectionView
	for _, s := range steps {
		if n := len(sections); n > 0 && sections[n-1].Title == s.Section {
			sections[n-1].Steps = append(sections[n-1].Steps, s)
			continue
		}
		sections = append(sections, sectionView{Title: s.Section, Steps: []types.Step{s}})
	}
	return sections
}

func (r *Renderer) execute(name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	_, err := fmt.Fprintln(r.writer, strings.TrimSuffix(buf.String(), "\n"))
	return err
}

// RenderBanner writes the product box and the project being installed into.
func (r *Renderer) RenderBanner(version, projectDir string) error {
	title := r.style("Title", "claude-code-handoff") + "  " + r.style("Version", "v"+version)
	subtitle := r.style("Subtitle", "Session Continuity for Claude Code")

	var box string
	if r.noColor {
		box = plainBox(title, subtitle)
	} else {
		box = r.styles.Render("Banner", title+"\n"+subtitle)
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range strings.Split(box, "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n  " + r.style("Info", "Project:") + " " + r.style("Path", projectDir))

	_, err := fmt.Fprintln(r.writer, b.String())
	return err
}

func plainBox(lines ...string) string {
	width := 0
	for _, l := range lines {
		if w := lipgloss.Width(l); w > width {
			width = w
		}
	}
	width += 5

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", width) + "┐\n")
	for _, l := range lines {
		b.WriteString("│   " + l + strings.Repeat(" ", width-3-lipgloss.Width(l)) + "│\n")
	}
	b.WriteString("└" + strings.Repeat("─", width) + "┘")
	return b.String()
}

// RenderInstall writes the per-section step report.
func (r *Renderer) RenderInstall(result *types.InstallResult) error {
	return r.execute("install.tmpl", map[string]interface{}{
		"Sections": groupSections(result.Steps),
	})
}

// RenderSummary writes the closing block of an install.
func (r *Renderer) RenderSummary(result *types.InstallResult) error {
	return r.execute("summary.tmpl", map[string]interface{}{
		"DryRun":   result.DryRun,
		"Complete": result.Verification.Complete(),
		"Files":    result.FilesWritten,
		"Commands": InstalledCommands,
	})
}

// RenderStatus writes the status report.
func (r *Renderer) RenderStatus(result *types.StatusResult) error {
	return r.execute("status.tmpl", result)
}

// RenderError renders an error message with appropriate styling
func (r *Renderer) RenderError(err error) error {
	_, writeErr := fmt.Fprintln(r.writer, r.style("Error", "Error:")+" "+err.Error())
	return writeErr
}

// RenderMessage renders a simple message with optional styling
func (r *Renderer) RenderMessage(style, message string) error {
	_, err := fmt.Fprintln(r.writer, r.style(style, message))
	return err
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}
