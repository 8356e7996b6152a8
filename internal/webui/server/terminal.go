package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/creack/pty"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"commas/internal/completion"
	"commas/internal/screen"
	"commas/internal/settings"
	"commas/internal/shellint"
	"commas/internal/shellscript"
	"commas/internal/system"
)

// wsUpgrader upgrades HTTP connections to WebSocket.
var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Allow all origins for local dev; the server typically binds to localhost.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMsg is a control frame from the browser.
//
//	{"type":"resize","cols":120,"rows":40}
//	{"type":"input","data":"ls\r"}
//	{"type":"accept","enter":true}
//	{"type":"select","delta":1}
//	{"type":"dismiss"}
//	{"type":"navigate","delta":-1}
type clientMsg struct {
	Type  string `json:"type"`
	Cols  int    `json:"cols"`
	Rows  int    `json:"rows"`
	Data  string `json:"data"`
	Delta int    `json:"delta"`
	Enter bool   `json:"enter"`
}

// serverEvent is a JSON text frame. PTY output travels as binary frames.
type serverEvent struct {
	Type        string                    `json:"type"`
	Completions []completion.Candidate    `json:"completions,omitempty"`
	Selected    int                       `json:"selected"`
	Command     string                    `json:"command,omitempty"`
	ExitCode    *int                      `json:"exitCode,omitempty"`
	Actions     []shellint.QuickFixAction `json:"actions,omitempty"`
	Cwd         string                    `json:"cwd,omitempty"`
	Line        int                       `json:"line"`
}

// terminalWSHandler launches the configured shell in a PTY and bridges it
// over WebSocket, interpreting shell integration on the server side.
func (s *Server) terminalWSHandler(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		http.Error(c.Writer, fmt.Sprintf("upgrade failed: %v", err), http.StatusBadRequest)
		return
	}
	defer conn.Close()

	cfg := s.settings()
	l := s.launch(cfg)
	cmd := exec.Command(l.Path, l.Args...)
	cmd.Env = append(l.Env, "TERM=xterm-256color", "TERM_PROGRAM=commas")
	// Inherit working dir from server process; allow overriding via ?cwd=
	cmd.Dir = c.Query("cwd")

	cols, rows := queryInt(c, "cols", 80), queryInt(c, "rows", 24)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, mustJSON(serverEvent{Type: "error", Command: "failed to start shell: " + err.Error()}))
		return
	}
	defer func() { _ = ptmx.Close() }() // Best-effort close; will kill the child

	t := s.newTermSession(conn, ptmx, cols, rows)
	if cmd.Dir != "" {
		t.addon.Tab.Cwd = cmd.Dir
	} else {
		t.addon.Tab.Cwd, _ = os.Getwd()
	}
	t.run()
	_ = cmd.Process.Kill()
	_ = cmd.Wait()
}

func (s *Server) launch(cfg settings.Settings) shellscript.Launch {
	path, args := cfg.Shell()
	if runtime.GOOS == "windows" && cfg.ShellPath == "" {
		path, args = defaultShell()
	}
	if cfg.Integration && s.IntegrationDir != "" {
		return shellscript.Integrate(path, args, os.Environ(), s.IntegrationDir)
	}
	return shellscript.Launch{Path: path, Args: args, Env: os.Environ()}
}

// termSession owns one browser terminal. Only run's goroutine touches the
// screen, the addon and the connection writer.
type termSession struct {
	conn   *websocket.Conn
	ptmx   *os.File
	screen *screen.Screen
	addon  *shellint.Addon
	events chan func()
	done   chan struct{}
	cwd    string
	// fixed is the command whose quick fixes were last sent.
	fixed *shellint.Command
}

func (s *Server) newTermSession(conn *websocket.Conn, ptmx *os.File, cols, rows int) *termSession {
	cfg := s.settings()
	t := &termSession{
		conn:   conn,
		ptmx:   ptmx,
		screen: screen.New(cols, rows, cfg.Scrollback),
		events: make(chan func(), 16),
		done:   make(chan struct{}),
	}
	t.addon = shellint.New(shellint.NewTab(), shellint.Options{
		Settings:    s.store(),
		Provider:    s.Provider,
		Input:       ptmx,
		Post:        t.post,
		Timeout:     cfg.Timeout(),
		OnPromptEnd: s.OnPromptEnd,
		OnCommandFinished: func(c *shellint.Command) {
			t.send(serverEvent{Type: "command", Command: c.Command, ExitCode: c.ExitCode, Line: c.Line()})
		},
		OnCompletions: func(list []completion.Candidate) {
			t.send(serverEvent{Type: "completions", Completions: list, Selected: t.addon.Selected()})
		},
	})
	t.addon.Activate(t.screen)
	return t
}

func (t *termSession) post(fn func()) {
	select {
	case t.events <- fn:
	case <-t.done:
	}
}

func (t *termSession) run() {
	defer close(t.done)
	defer t.addon.Dispose()

	out := make(chan []byte, 16)
	in := make(chan clientMsg, 16)
	go t.readPTY(out)
	go t.readWS(in)
	for {
		select {
		case b, ok := <-out:
			if !ok {
				_ = t.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "pty closed"))
				return
			}
			if err := t.conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
				return
			}
			_, _ = t.screen.Write(b)
			t.afterWrite()
		case m, ok := <-in:
			if !ok {
				return
			}
			t.handle(m)
		case fn := <-t.events:
			fn()
		}
	}
}

// afterWrite reports state the shell changed through OSC 633.
func (t *termSession) afterWrite() {
	tab := t.addon.Tab
	if tab.Cwd != t.cwd {
		t.cwd = tab.Cwd
		t.send(serverEvent{Type: "cwd", Cwd: tab.Cwd})
	}
	if cur := t.addon.Tracker().Current(); cur != nil && cur != t.fixed && len(cur.Actions) > 0 {
		t.fixed = cur
		t.send(serverEvent{Type: "actions", Actions: cur.Actions, Line: cur.Line()})
	}
}

func (t *termSession) handle(m clientMsg) {
	switch m.Type {
	case "resize":
		if m.Cols > 0 && m.Rows > 0 {
			_ = pty.Setsize(t.ptmx, &pty.Winsize{Cols: uint16(m.Cols), Rows: uint16(m.Rows)})
			t.screen.Resize(m.Cols, m.Rows)
		}
	case "input":
		t.screen.ScrollToBottom()
		_, _ = t.ptmx.Write([]byte(m.Data))
	case "accept":
		if !t.addon.ApplySelected(m.Enter) {
			key := "\t"
			if m.Enter {
				key = "\r"
			}
			_, _ = t.ptmx.Write([]byte(key))
		}
	case "select":
		t.addon.SelectCompletion(m.Delta)
		t.send(serverEvent{Type: "selected", Selected: t.addon.Selected()})
	case "dismiss":
		t.addon.SkipCompletion(nil)
		t.addon.ClearCompletion()
	case "navigate":
		t.addon.ScrollToCommand(m.Delta)
		t.send(serverEvent{Type: "scroll", Line: t.addon.RecentLine()})
	default:
		system.Logger.Debug("unknown terminal frame", "type", m.Type)
	}
}

func (t *termSession) send(ev serverEvent) {
	_ = t.conn.WriteMessage(websocket.TextMessage, mustJSON(ev))
}

// readPTY forwards PTY output until the shell exits.
func (t *termSession) readPTY(out chan<- []byte) {
	defer close(out)
	buf := make([]byte, 4096)
	for {
		n, err := t.ptmx.Read(buf)
		if n > 0 {
			b := append([]byte(nil), buf[:n]...)
			select {
			case out <- b:
			case <-t.done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// readWS decodes client frames. Frames that are not JSON control messages
// are raw input.
func (t *termSession) readWS(in chan<- clientMsg) {
	defer close(in)
	for {
		mt, data, err := t.conn.ReadMessage()
		if err != nil {
			// client closed
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}
		var m clientMsg
		if json.Unmarshal(data, &m) != nil || m.Type == "" {
			m = clientMsg{Type: "input", Data: string(data)}
		}
		select {
		case in <- m:
		case <-t.done:
			return
		}
	}
}

func queryInt(c *gin.Context, key string, def int) int {
	if n, err := strconv.Atoi(c.Query(key)); err == nil && n > 0 {
		return n
	}
	return def
}

func mustJSON(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}

// defaultShell returns the platform-appropriate shell and arguments.
func defaultShell() (string, []string) {
	if runtime.GOOS == "windows" {
		// Fallback to powershell if available
		pwsh := os.Getenv("COMSPEC")
		if pwsh == "" {
			pwsh = "powershell.exe"
		}
		return pwsh, []string{}
	}
	// Respect $SHELL, default to /bin/bash then /bin/sh
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, []string{"-l"}
	}
	if _, err := os.Stat("/bin/bash"); err == nil {
		return "/bin/bash", []string{"-l"}
	}
	return "/bin/sh", []string{"-l"}
}
