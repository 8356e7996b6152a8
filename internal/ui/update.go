package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"commas/internal/system"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cols, rows := m.termSize()
		m.t.screen.Resize(cols, rows)
		if m.t.pty != nil {
			_ = m.t.pty.Resize(cols, rows)
		}
		return m, nil
	case ptyStartedMsg:
		m.t.pty = msg.Pty
		m.t.input.p = msg.Pty
		if m.width > 0 {
			cols, rows := m.termSize()
			_ = msg.Pty.Resize(cols, rows)
		}
		return m, tea.Batch(readPTYOnceCmd(msg.Pty), waitShellCmd(msg.Cmd))
	case ptyStartErrMsg:
		m.err = msg.Err
		return m.quit()
	case ptyChunkMsg:
		if len(msg.Data) > 0 {
			_, _ = m.t.screen.Write(msg.Data)
		}
		cmds := []tea.Cmd{readPTYOnceCmd(m.t.pty)}
		if c := m.refreshGit(); c != nil {
			cmds = append(cmds, c)
		}
		return m, tea.Batch(cmds...)
	case ptyClosedMsg:
		if msg.Err != nil {
			system.Logger.Debug("shell closed", "err", msg.Err)
		}
		return m.quit()
	case postMsg:
		msg()
		return m, waitPostCmd(m.t.events, m.t.done)
	case settingsChangedMsg:
		if !m.t.settings.AutoCompletion() {
			m.t.addon.ClearCompletion()
		}
		return m, watchSettingsCmd(m.t.watch)
	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()
	case gitInfoMsg:
		if msg.dir == m.gitDir {
			m.git = msg.info
		}
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.t.close()
	return m, tea.Quit
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := m.t.addon
	_, rows := m.termSize()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.PrevCommand):
		a.ScrollToCommand(-1)
		return m, nil
	case key.Matches(msg, m.keys.NextCommand):
		a.ScrollToCommand(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.t.screen.ScrollLines(-rows / 2)
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.t.screen.ScrollLines(rows / 2)
		return m, nil
	}

	// completion popup navigation
	if a.Selected() >= 0 {
		switch {
		case key.Matches(msg, m.keys.Accept):
			if a.ApplySelected(false) {
				return m, nil
			}
		case key.Matches(msg, m.keys.Enter):
			if a.ApplySelected(true) {
				return m, nil
			}
		case key.Matches(msg, m.keys.Next):
			a.SelectCompletion(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			a.SelectCompletion(-1)
			return m, nil
		case key.Matches(msg, m.keys.Dismiss):
			a.SkipCompletion(nil)
			a.ClearCompletion()
			return m, nil
		}
	}

	b := keyToPTYBytes(msg)
	if len(b) == 0 || m.t.pty == nil {
		return m, nil
	}
	m.t.screen.ScrollToBottom()
	return m, writePTYCmd(m.t.pty, b)
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.t.screen.ScrollLines(-3)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.t.screen.ScrollLines(3)
		return m, nil
	}
	// Apply a completion when its row is clicked
	if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
		items := m.t.addon.Tab.Completions
		for i := range items {
			if zone.Get(completionZone(i)).InBounds(msg) {
				m.t.addon.ApplyCandidate(items[i], false)
				return m, nil
			}
		}
	}
	return m, nil
}

func completionZone(i int) string { return fmt.Sprintf("completion.%d", i) }
