package ui

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/xpty"

	"commas/internal/completion"
	"commas/internal/config"
	"commas/internal/screen"
	"commas/internal/settings"
	"commas/internal/shellint"
	"commas/internal/shellscript"
	"commas/internal/system"
)

const (
	gutterWidth = 2
	statusRows  = 1
	cacheTTL    = 3 * time.Second
	cacheSize   = 256
)

// Model for TUI
type model struct {
	t *term

	keys keyMap
	help help.Model

	width  int
	height int

	// status bar state
	now    time.Time
	git    system.GitInfo
	gitDir string

	quitting bool
	err      error
}

// term holds the pointer-shared terminal state. Bubble Tea copies the model
// on every update, while the addon's callbacks need a stable target.
type term struct {
	screen   *screen.Screen
	addon    *shellint.Addon
	settings *settings.Store
	local    *completion.Local
	cache    *completion.Cache

	launch shellscript.Launch
	dir    string
	input  ptyInput
	pty    xpty.Pty

	events  chan func()
	done    chan struct{}
	watch   <-chan struct{}
	watcher io.Closer

	gitStale  bool
	closeOnce sync.Once
}

// InitialModel builds the terminal model from settings.json and the
// environment. The shell starts once the program runs.
func InitialModel() (tea.Model, error) {
	setPath, err := config.SettingsPath()
	if err != nil {
		return nil, err
	}
	st, err := settings.Open(setPath)
	if errors.Is(err, settings.ErrInvalid) {
		system.Logger.Warn("using default settings", "err", err)
	} else if err != nil {
		return nil, err
	}
	snippets, err := config.SnippetsPath()
	if err != nil {
		return nil, err
	}
	s := st.Get()
	wd, _ := os.Getwd()

	t := &term{
		settings: st,
		dir:      wd,
		events:   make(chan func(), 16),
		done:     make(chan struct{}),
		launch:   launchFor(s),
	}
	t.screen = screen.New(80, 24, s.Scrollback)
	t.local = completion.NewLocal(snippets)
	t.cache = completion.NewCache(t.local, cacheTTL, cacheSize)
	t.addon = shellint.New(shellint.NewTab(), shellint.Options{
		Settings:          st,
		Provider:          t.cache,
		Input:             &t.input,
		Post:              t.post,
		Timeout:           s.Timeout(),
		OnPromptEnd:       t.promptEnd,
		OnCommandFinished: t.commandFinished,
	})
	t.addon.Tab.Cwd = wd
	t.addon.Activate(t.screen)
	go t.local.Refresh()

	if ch, w, err := st.Watch(); err != nil {
		system.Logger.Warn("settings watch unavailable", "err", err)
	} else {
		t.watch, t.watcher = ch, w
	}

	return model{t: t, keys: defaultKeys(), help: help.New(), now: time.Now(), gitDir: wd}, nil
}

// launchFor resolves the shell command line, injecting the integration
// script when enabled.
func launchFor(s settings.Settings) shellscript.Launch {
	path, args := s.Shell()
	l := shellscript.Launch{Path: path, Args: args, Env: os.Environ()}
	if !s.Integration {
		return l
	}
	dir, err := config.IntegrationDir()
	if err == nil {
		err = shellscript.Install(dir)
	}
	if err != nil {
		system.Logger.Warn("shell integration unavailable", "err", err)
		return l
	}
	return shellscript.Integrate(path, args, os.Environ(), dir)
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		startShellCmd(m.t.launch, m.t.dir, m.t.screen.Cols(), m.t.screen.Rows()),
		waitPostCmd(m.t.events, m.t.done),
		watchSettingsCmd(m.t.watch),
		tickCmd(),
		gitInfoCmd(m.t.dir),
	)
}

// Close stops the shell and background watchers. It is safe to call twice.
func (m model) Close() error {
	m.t.close()
	return nil
}

// Err reports why the shell could not start, if it failed to.
func (m model) Err() error { return m.err }

func (t *term) close() {
	t.closeOnce.Do(func() {
		close(t.done)
		t.addon.Dispose()
		if t.watcher != nil {
			_ = t.watcher.Close()
		}
		if t.pty != nil {
			_ = t.pty.Close()
		}
	})
}

// post hands fn to the Update loop. It gives up once the program is closing.
func (t *term) post(fn func()) {
	select {
	case t.events <- fn:
	case <-t.done:
	}
}

func (t *term) promptEnd() {
	go func() {
		t.local.Refresh()
		t.cache.Clear()
	}()
}

func (t *term) commandFinished(c *shellint.Command) {
	t.gitStale = true
	if c.ExitCode != nil {
		system.Logger.Debug("command finished", "command", c.Command, "exit", *c.ExitCode, "actions", len(c.Actions))
	} else {
		system.Logger.Debug("command finished", "command", c.Command)
	}
}

// termSize is the grid size left after the gutter and status bar.
func (m model) termSize() (cols, rows int) {
	return max(m.width-gutterWidth, 10), max(m.height-statusRows, 2)
}
