package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"commas/internal/system"
)

func waitPostCmd(events <-chan func(), done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-events:
			return postMsg(fn)
		case <-done:
			return nil
		}
	}
}

func watchSettingsCmd(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return settingsChangedMsg{}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func gitInfoCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		info, _ := system.GetGitInfo(context.Background(), dir)
		return gitInfoMsg{dir: dir, info: info}
	}
}

// refreshGit schedules a git lookup when the cwd changed or a command ran.
func (m *model) refreshGit() tea.Cmd {
	cwd := m.t.addon.Tab.Cwd
	if cwd == "" || (!m.t.gitStale && cwd == m.gitDir) {
		return nil
	}
	m.t.gitStale = false
	m.gitDir = cwd
	return gitInfoCmd(cwd)
}
