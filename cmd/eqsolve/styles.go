package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/katalvlaran/eqsolve/equation"
)

// styles renders results and errors, in color only on terminals.
type styles struct {
	enabled bool
	result  lipgloss.Style
	label   lipgloss.Style
	err     lipgloss.Style
	hint    lipgloss.Style
}

// newStyles decides coloring from mode (auto, always, never) and w.
func newStyles(w io.Writer, mode string) styles {
	enabled := false
	switch mode {
	case "always":
		enabled = true
	case "auto":
		if f, ok := w.(interface{ Fd() uintptr }); ok {
			enabled = isatty.IsTerminal(f.Fd())
		}
	}
	return styles{
		enabled: enabled,
		result:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		err:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		hint:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (s styles) render(st lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return st.Render(text)
}

// value renders a computed value.
func (s styles) value(text string) string { return s.render(s.result, text) }

// solution renders "x = 2, y = 1" with the kind as a label.
func (s styles) solution(kind equation.Kind, values equation.SolutionMap) string {
	return s.render(s.label, "["+kind.String()+"] ") + s.value(values.String())
}

// failure renders an error.
func (s styles) failure(err error) string { return s.render(s.err, "error: "+err.Error()) }

func (s styles) muted(text string) string { return s.render(s.hint, text) }
