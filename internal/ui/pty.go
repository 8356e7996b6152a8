package ui

import (
	"context"
	"fmt"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/xpty"

	"commas/internal/shellscript"
	"commas/internal/system"
)

// startShellCmd starts the shell on a fresh PTY of the given size.
func startShellCmd(l shellscript.Launch, dir string, cols, rows int) tea.Cmd {
	return func() tea.Msg {
		p, err := xpty.NewPty(cols, rows)
		if err != nil {
			return ptyStartErrMsg{Err: err}
		}
		cmd := exec.Command(l.Path, l.Args...)
		cmd.Env = append(append([]string(nil), l.Env...), "TERM=xterm-256color", "TERM_PROGRAM=commas")
		cmd.Dir = dir
		if err := p.Start(cmd); err != nil {
			_ = p.Close()
			return ptyStartErrMsg{Err: fmt.Errorf("start %s: %w", l.Path, err)}
		}
		system.Logger.Info("shell started", "path", l.Path, "args", l.Args, "integrated", l.Integrated)
		return ptyStartedMsg{Pty: p, Cmd: cmd}
	}
}

// schedule a single PTY read
func readPTYOnceCmd(p xpty.Pty) tea.Cmd {
	return func() tea.Msg {
		buf := make([]byte, 4096)
		n, err := p.Read(buf)
		if n > 0 {
			return ptyChunkMsg{Data: buf[:n]}
		}
		if err != nil {
			return ptyClosedMsg{Err: err}
		}
		return ptyChunkMsg{}
	}
}

// write to PTY
func writePTYCmd(p xpty.Pty, data []byte) tea.Cmd {
	return func() tea.Msg {
		_, _ = p.Write(data)
		return nil
	}
}

// waitShellCmd reports when the shell process exits.
func waitShellCmd(cmd *exec.Cmd) tea.Cmd {
	return func() tea.Msg {
		return ptyClosedMsg{Err: xpty.WaitProcess(context.Background(), cmd)}
	}
}

// ptyInput forwards completion edits to the PTY once it is running.
type ptyInput struct{ p xpty.Pty }

func (w *ptyInput) Write(b []byte) (int, error) {
	if w.p == nil {
		return 0, fmt.Errorf("shell not started")
	}
	return w.p.Write(b)
}

// keyToPTYBytes maps a Bubble Tea key onto the bytes a terminal would send.
func keyToPTYBytes(k tea.KeyMsg) []byte {
	var out []byte
	switch {
	case k.Type == tea.KeyRunes && len(k.Runes) > 0:
		out = []byte(string(k.Runes))
	case k.Type == tea.KeySpace:
		out = []byte(" ")
	case k.Type >= 0 && k.Type < 0x20 || k.Type == tea.KeyBackspace:
		// control characters: Ctrl+letters, Tab, Enter, Esc, Backspace
		out = []byte{byte(k.Type)}
	default:
		out = namedKey(k.Type)
	}
	if len(out) > 0 && k.Alt {
		out = append([]byte{0x1b}, out...)
	}
	return out
}

func namedKey(t tea.KeyType) []byte {
	switch t {
	case tea.KeyUp:
		return []byte("\x1b[A")
	case tea.KeyDown:
		return []byte("\x1b[B")
	case tea.KeyRight:
		return []byte("\x1b[C")
	case tea.KeyLeft:
		return []byte("\x1b[D")
	case tea.KeyHome:
		return []byte("\x1b[H")
	case tea.KeyEnd:
		return []byte("\x1b[F")
	case tea.KeyPgUp:
		return []byte("\x1b[5~")
	case tea.KeyPgDown:
		return []byte("\x1b[6~")
	case tea.KeyDelete:
		return []byte("\x1b[3~")
	case tea.KeyInsert:
		return []byte("\x1b[2~")
	case tea.KeyShiftTab:
		return []byte("\x1b[Z")
	case tea.KeyCtrlLeft:
		return []byte("\x1b[1;5D")
	case tea.KeyCtrlRight:
		return []byte("\x1b[1;5C")
	}
	return nil
}
