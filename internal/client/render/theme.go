// Package render turns page state into terminal text. Styling goes through
// lipgloss; plain mode produces the same text without escape codes.
package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the client palette.
type Theme struct {
	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// PlatformColors tints the platform badge of a result.
	PlatformColors map[string]string
}

// DefaultTheme is the Slate palette.
func DefaultTheme() Theme {
	return Theme{
		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500

		PlatformColors: map[string]string{
			"youtube":  "#dc2626",
			"web":      "#0284c7",
			"coursera": "#2563eb",
			"udemy":    "#9333ea",
			"ai":       "#14b8a6",
		},
	}
}

// Styles are the lipgloss styles built from a Theme.
type Styles struct {
	Title   lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Info    lipgloss.Style
	Box     lipgloss.Style

	platformColors map[string]string
	muted          string
	plain          bool
}

func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		platformColors: t.PlatformColors,
		muted:          t.Muted,
	}
}

// PlainStyles render text unchanged.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{
		Title: s, Text: s, Muted: s, Accent: s,
		Success: s, Warning: s, Danger: s, Info: s, Box: s,
		plain: true,
	}
}

// Platform returns the badge style of a result platform.
func (s Styles) Platform(name string) lipgloss.Style {
	if s.plain {
		return lipgloss.NewStyle()
	}
	color := s.platformColors[name]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true)
}
