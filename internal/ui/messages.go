package ui

import (
	"os/exec"
	"time"

	"github.com/charmbracelet/x/xpty"

	"commas/internal/system"
)

// Bubble Tea messages

// PTY lifecycle
type ptyStartedMsg struct {
	Pty xpty.Pty
	Cmd *exec.Cmd
}
type ptyStartErrMsg struct{ Err error }
type ptyChunkMsg struct{ Data []byte }
type ptyClosedMsg struct{ Err error }

// postMsg runs work handed back by background completion rounds.
type postMsg func()

// settingsChangedMsg follows a reload of settings.json.
type settingsChangedMsg struct{}

// periodic tick for status bar time
type tickMsg time.Time

// git info updates
type gitInfoMsg struct {
	dir  string
	info system.GitInfo
}
