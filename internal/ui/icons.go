package ui

import "os"

// nfEnabled returns true when Nerd Font icons should be rendered.
// Default to enabled; allow disabling via NERDFONT=0
func nfEnabled() bool {
	return os.Getenv("NERDFONT") != "0"
}

func nf(icon, fallback string) string {
	if nfEnabled() {
		return icon
	}
	return fallback
}

// Status bar icons
func IconTerminal() string { return nf("\uf120", ">") }
func IconFolder() string   { return nf("\uf07b", "cwd") }
func IconBranch() string   { return nf("\ue725", "br") }
func IconBusy() string     { return nf("\uf110", "...") }
func IconVersion() string  { return nf("\uf02b", "v") }

// Gutter glyphs
const (
	gutterDot    = "●"
	gutterAction = "◆"
)

// Completion kinds
func IconCandidate(recommended bool) string {
	if recommended {
		return nf("\uf005", "*")
	}
	return nf("\uf0da", ">")
}
