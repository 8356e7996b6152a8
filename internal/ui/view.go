package ui

import (
	"path/filepath"
	"strings"
	"time"

	zone "github.com/lrstanley/bubblezone"

	appver "commas/internal/version"
)

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "starting shell…"
	}
	b := &strings.Builder{}
	b.WriteString(m.renderTerminal())
	b.WriteString(m.renderStatusBarLine())
	return zone.Scan(b.String())
}

// renderStatusBarLine builds the one-line status bar under the terminal.
func (m model) renderStatusBarLine() string {
	tab := m.t.addon.Tab
	now := m.now
	if now.IsZero() {
		now = time.Now()
	}

	shell := filepath.Base(m.t.launch.Path)
	if m.t.launch.Integrated {
		shell += " ⚡"
	}
	leftParts := []string{IconTerminal() + " " + shell}
	if tab.Cwd != "" {
		leftParts = append(leftParts, IconFolder()+" "+shortPath(tab.Cwd))
	}
	if !tab.Idle {
		leftParts = append(leftParts, IconBusy()+" running")
	}

	var center string
	if m.t.addon.Selected() >= 0 {
		center = m.help.ShortHelpView(m.keys.ShortHelp())
	} else {
		center = m.help.ShortHelpView(m.keys.IdleHelp())
	}

	// right segments: git info (if available) + clock + version
	var rightParts []string
	if m.git.InRepo {
		br := IconBranch() + " " + m.git.Branch
		if m.git.Dirty {
			br += "*"
		}
		rightParts = append(rightParts, br)
	}
	rightParts = append(rightParts, now.Format("15:04"), IconVersion()+appver.AppVersion)
	return renderStatusBarStyled(m.width, leftParts, center, rightParts)
}

// shortPath abbreviates the home dir to ~.
func shortPath(p string) string {
	if home, err := homeDir(); err == nil && home != "" {
		if p == home {
			return "~"
		}
		if strings.HasPrefix(p, home+string(filepath.Separator)) {
			return "~" + p[len(home):]
		}
	}
	return p
}
