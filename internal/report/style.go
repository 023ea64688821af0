// Package report renders detailed developments for people: terminal styles,
// the bar schedule, and PDF and XLSX exports.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorCyan   = lipgloss.Color("36")  // headings
	colorGreen  = lipgloss.Color("35")  // ok
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // failures
	colorWhite  = lipgloss.Color("255") // values
	colorDim    = lipgloss.Color("240") // secondary text
)

// Styles is the set of terminal styles used by the CLI.
type Styles struct {
	Title   lipgloss.Style
	Dim     lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// ColorEnabled reports whether f is a terminal that should receive colour.
// NO_COLOR disables it regardless.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewStyles returns coloured styles, or plain ones when color is false.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{Title: plain, Dim: plain, Value: plain, Success: plain, Warning: plain, Error: plain}
	}
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colorCyan),
		Dim:     lipgloss.NewStyle().Foreground(colorDim),
		Value:   lipgloss.NewStyle().Foreground(colorWhite),
		Success: lipgloss.NewStyle().Foreground(colorGreen),
		Warning: lipgloss.NewStyle().Foreground(colorYellow),
		Error:   lipgloss.NewStyle().Foreground(colorRed),
	}
}

// Header renders an upper-case heading with an underline.
func (s Styles) Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len([]rune(upper)))
	return fmt.Sprintf("%s\n%s", s.Title.Render(upper), s.Dim.Render(line))
}

// Warn renders a warning line.
func (s Styles) Warn(text string) string {
	return s.Warning.Render("! " + text)
}

// OK renders a success line.
func (s Styles) OK(text string) string {
	return s.Success.Render("✓ " + text)
}

// Fail renders a failure line.
func (s Styles) Fail(text string) string {
	return s.Error.Render("✗ " + text)
}
