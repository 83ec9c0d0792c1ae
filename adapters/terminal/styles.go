// Package terminal colours REPL output with lipgloss.
package terminal

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/umoja4life/fatashi"
	"github.com/umoja4life/fatashi/repl"
	"io"
)

// ANSI colour numbers, so the terminal theme picks the shade.
var (
	Cyan   = lipgloss.Color("6")
	Yellow = lipgloss.Color("3")
	Green  = lipgloss.Color("2")
	Red    = lipgloss.Color("1")
)

// Styles holds one style per kind of output line.
type Styles struct {
	Prompt    lipgloss.Style
	Info      lipgloss.Style
	Visual    lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles renders with r, so colour is dropped when r's output is not a
// terminal.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Prompt:    r.NewStyle().Foreground(Yellow),
		Info:      r.NewStyle().Foreground(Cyan),
		Visual:    r.NewStyle().Foreground(Green),
		Warn:      r.NewStyle().Foreground(Green).Bold(true),
		Error:     r.NewStyle().Foreground(Red).Bold(true),
		Highlight: r.NewStyle().Foreground(Green).Bold(true).Underline(true),
	}
}

// Theme gives a REPL theme for output written to w.
func Theme(w io.Writer) repl.Theme {
	return DefaultStyles(lipgloss.NewRenderer(w)).Theme()
}

func (s Styles) Theme() repl.Theme {
	return repl.Theme{
		Prompt: render(s.Prompt),
		Info:   render(s.Info),
		Warn:   render(s.Warn),
		Error:  render(s.Error),
		Result: fatashi.Renderer{
			Emphasize: render(s.Highlight),
			Text:      render(s.Visual),
		},
	}
}

func render(style lipgloss.Style) func(string) string {
	return func(s string) string {
		return style.Render(s)
	}
}
