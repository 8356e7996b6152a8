package ui

import (
	"github.com/charmbracelet/lipgloss"

	"commas/internal/screen"
)

// Design centralizes the TUI color palette and common styles.
//
// Palette is based on Vitesse Dark Soft:
// https://github.com/antfu/vscode-theme-vitesse/blob/main/themes/vitesse-dark-soft.json
type designTheme struct {
	// Core brand/semantic colors
	Primary lipgloss.Color // #4d9375
	Blue    lipgloss.Color // #6394bf
	Yellow  lipgloss.Color // #e6cc77
	Magenta lipgloss.Color // #d9739f
	Red     lipgloss.Color // #cb7676

	// Text colors
	Text      lipgloss.Color // #dbd7caee
	Secondary lipgloss.Color // #bfbaaa
	Muted     lipgloss.Color // #dedcd590

	// Surfaces
	Bg        lipgloss.Color // #181818
	BgSoft    lipgloss.Color // #292929
	ErrorBand lipgloss.Color // red tint behind failed output

	// Text on accent backgrounds (e.g., buttons/chips)
	OnAccent lipgloss.Color // #222 (vitesse button.foreground)

	// Status bar colors
	BarFG lipgloss.AdaptiveColor // light/dark
	BarBG lipgloss.AdaptiveColor // light/dark
}

// Vitesse defines the current global design theme for the TUI.
var Vitesse = designTheme{
	Primary: lipgloss.Color("#4d9375"),
	Blue:    lipgloss.Color("#6394bf"),
	Yellow:  lipgloss.Color("#e6cc77"),
	Magenta: lipgloss.Color("#d9739f"),
	Red:     lipgloss.Color("#cb7676"),

	Text:      lipgloss.Color("#dbd7caee"),
	Secondary: lipgloss.Color("#bfbaaa"),
	Muted:     lipgloss.Color("#dedcd590"),

	Bg:        lipgloss.Color("#181818"),
	BgSoft:    lipgloss.Color("#292929"),
	ErrorBand: lipgloss.Color("#3a2424"),

	OnAccent: lipgloss.Color("#222"),

	BarFG: lipgloss.AdaptiveColor{Light: "#343433", Dark: "#bfbaaa"},
	BarBG: lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#222"},
}

// DecorationColor maps a semantic decoration color onto the palette.
func DecorationColor(c screen.Color) lipgloss.Color {
	switch c {
	case screen.ColorYellow:
		return Vitesse.Yellow
	case screen.ColorGreen:
		return Vitesse.Primary
	case screen.ColorRed:
		return Vitesse.Red
	default:
		return Vitesse.Secondary
	}
}

// ChipKeyStyle returns a style for the left-most highlighted chip in the status bar.
func ChipKeyStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Vitesse.OnAccent).
		Background(Vitesse.Primary).
		Padding(0, 1)
}

// StatusBarBase returns the base style for the status bar background/foreground.
func StatusBarBase() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.BarFG).Background(Vitesse.BarBG)
}

// PopupStyle is the completion list body.
func PopupStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.Text).Background(Vitesse.BgSoft)
}

// PopupSelectedStyle marks the highlighted completion.
func PopupSelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.OnAccent).Background(Vitesse.Primary)
}
