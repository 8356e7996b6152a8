package shellint

import (
	"io"
	"strconv"
	"time"

	"commas/internal/completion"
	"commas/internal/screen"
	"commas/internal/system"
)

// Grid is the terminal buffer the addon anchors to. *screen.Screen
// implements it.
type Grid interface {
	Cols() int
	Rows() int
	Cursor() (x, y int)
	BaseY() int
	LineText(row int, trimRight bool, start, end int) string
	IsWrapped(row int) bool
	RegisterMarker(offset int) *screen.Marker
	RegisterDecoration(opts screen.DecorationOptions) *screen.Decoration
	RegisterOscHandler(cmd int, fn screen.OscHandler) screen.Disposable
	OnCursorMove(fn func()) screen.Disposable
	ScrollToLine(row int)
}

// Settings is read on every event.
type Settings interface {
	AutoCompletion() bool
	HighlightErrors() bool
}

// StaticSettings is a fixed Settings value.
type StaticSettings struct {
	Completion bool
	Highlight  bool
}

func (s StaticSettings) AutoCompletion() bool  { return s.Completion }
func (s StaticSettings) HighlightErrors() bool { return s.Highlight }

// Tab is the per-tab state shared with the renderer.
type Tab struct {
	// Idle is false while a command is producing output.
	Idle bool
	// Cwd is the last directory reported by the shell.
	Cwd string
	// Completions is the ranked list of the live completion session.
	Completions []completion.Candidate
}

// NewTab returns a tab in its default state.
func NewTab() *Tab { return &Tab{Idle: true} }

// Options wires the addon to its collaborators. Only Settings is required.
type Options struct {
	Settings Settings
	Provider completion.Provider
	// Input receives completion edits, normally the PTY.
	Input io.Writer
	// Post runs fn on the goroutine that owns the grid. Provider calls run
	// in the background and deliver through Post. Nil means provider calls,
	// including the prefetch after an applied completion, run inline.
	Post    func(fn func())
	Timeout time.Duration

	// OnPromptEnd fires on every PromptEnd, before anything else happens.
	OnPromptEnd func()
	// OnCommandFinished fires after CommandComplete closes a command.
	OnCommandFinished func(*Command)
	// OnCompletions fires when Tab.Completions changes.
	OnCompletions func([]completion.Candidate)
}

const defaultTimeout = 800 * time.Millisecond

// Addon interprets shell integration sequences for one tab.
// All methods must be called from the goroutine that owns the grid.
type Addon struct {
	Tab *Tab

	opts        Options
	grid        Grid
	tracker     Tracker
	highlights  []*screen.Marker
	disposables []screen.Disposable

	// recent is the ID of the last marker scrolled to; 0 means none.
	recent int

	session    *session
	generation uint64
	skip       *skipState
	selected   int
}

// New creates an addon for tab. A nil tab gets a fresh default one.
func New(tab *Tab, opts Options) *Addon {
	if tab == nil {
		tab = NewTab()
	}
	tab.Idle = true
	if opts.Settings == nil {
		opts.Settings = StaticSettings{Completion: true}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Addon{Tab: tab, opts: opts}
}

// Activate attaches the addon to grid.
func (a *Addon) Activate(grid Grid) {
	a.grid = grid
	a.disposables = append(a.disposables,
		grid.RegisterOscHandler(OscIdentifier, a.HandlePayload),
		grid.OnCursorMove(func() {
			if a.opts.Settings.AutoCompletion() {
				a.TriggerCompletion()
			} else {
				a.ClearCompletion()
			}
		}),
	)
}

// Dispose detaches from the grid and releases every marker the addon owns.
func (a *Addon) Dispose() {
	for _, d := range a.disposables {
		d.Dispose()
	}
	a.disposables = nil
	a.tracker.DisposeAll()
	for _, m := range a.highlights {
		m.Dispose()
	}
	a.highlights = nil
	a.recent = 0
	a.ClearCompletion()
	a.skip = nil
	a.Tab.Idle = true
}

// Tracker exposes the command log.
func (a *Addon) Tracker() *Tracker { return &a.tracker }

// HandlePayload handles the text after "633;". It returns false for codes
// outside the protocol so the grid can fall back.
func (a *Addon) HandlePayload(payload string) bool {
	seq, ok := ParseSequence(payload)
	if !ok {
		system.Logger.Debug("osc 633 ignored", "payload", payload)
		return false
	}
	a.HandleSequence(seq)
	return true
}

// HandleSequence applies one decoded sequence.
func (a *Addon) HandleSequence(seq Sequence) {
	switch seq.Code {
	case PromptStart:
	case PromptEnd:
		a.promptEnd()
	case OutputStart:
		a.Tab.Idle = false
	case CommandComplete:
		a.commandComplete(seq.Arg(0))
	case CommandLine:
		a.commandLine(seq.Arg(0))
	case ContinuationStart, ContinuationEnd, RightPromptStart, RightPromptEnd:
	case Property:
		for k, v := range seq.Properties() {
			switch k {
			case "Cwd":
				a.Tab.Cwd = v
			}
		}
	}
}

func (a *Addon) promptEnd() {
	if a.opts.OnPromptEnd != nil {
		a.opts.OnPromptEnd()
	}
	marker := a.grid.RegisterMarker(0)
	if marker == nil {
		return
	}
	cur := a.tracker.Current()
	var actions []QuickFixAction
	if cur != nil {
		actions = cur.Actions
	} else {
		actions = a.generateActions(marker)
	}
	color := screen.ColorForeground
	if len(actions) > 0 {
		color = screen.ColorYellow
	}
	deco := a.commandDecoration(marker, color, len(actions) > 0)
	if cur != nil {
		// Prompt redrawn before the command ran
		cur.Marker.Dispose()
		cur.Marker = marker
		cur.Decoration = deco
		return
	}
	x, _ := a.grid.Cursor()
	a.tracker.Open(&Command{
		Marker:     marker,
		Decoration: deco,
		CursorX:    x,
		Actions:    actions,
	})
	a.recent = 0
}

// generateActions derives quick fixes from the last finished command, whose
// output ends at the new prompt marker.
func (a *Addon) generateActions(prompt *screen.Marker) []QuickFixAction {
	last := a.tracker.LastFinished()
	if last == nil || last.Command == "" || !last.Failed() || last.Marker.IsDisposed() {
		return nil
	}
	output := commandOutput(a.grid, last.Marker.Line(), prompt.Line())
	return QuickFixActions(last.Command, output)
}

func (a *Addon) commandComplete(arg string) {
	a.Tab.Idle = true
	cur := a.tracker.Current()
	if cur == nil {
		return
	}
	if code, ok := parseExitCode(arg); ok {
		cur.ExitCode = &code
		if !cur.Marker.IsDisposed() {
			cur.Decoration.Dispose()
			cur.Decoration = nil
			if code != 0 && a.opts.Settings.HighlightErrors() {
				_, y := a.grid.Cursor()
				a.highlightRows(cur.Marker.Line(), a.grid.BaseY()+y-1, screen.ColorRed)
			} else {
				color := screen.ColorGreen
				if code != 0 {
					color = screen.ColorRed
				}
				cur.Decoration = a.commandDecoration(cur.Marker, color, true)
			}
		}
	}
	a.tracker.Close()
	if a.opts.OnCommandFinished != nil {
		a.opts.OnCommandFinished(cur)
	}
}

// parseExitCode accepts 0..127. Larger values mean the shell was killed by
// a signal and say nothing about the command.
func parseExitCode(arg string) (int, bool) {
	if arg == "" {
		return 0, false
	}
	code, err := strconv.Atoi(arg)
	if err != nil || code < 0 || code >= 128 {
		return 0, false
	}
	return code, true
}

func (a *Addon) commandLine(text string) {
	cur := a.tracker.Current()
	if cur == nil {
		return
	}
	cur.Command = text
	if !cur.Marker.IsDisposed() {
		cur.Decoration.SetData("command", text)
	}
}

func (a *Addon) commandDecoration(marker *screen.Marker, color screen.Color, strong bool) *screen.Decoration {
	return a.grid.RegisterDecoration(screen.DecorationOptions{
		Marker: marker,
		Kind:   "command",
		Color:  color,
		Strong: strong,
	})
}

// highlightRows puts a full-width block on each absolute row in [from, to].
func (a *Addon) highlightRows(from, to int, color screen.Color) {
	live := a.highlights[:0]
	for _, m := range a.highlights {
		if !m.IsDisposed() {
			live = append(live, m)
		}
	}
	a.highlights = live
	_, y := a.grid.Cursor()
	cursorRow := a.grid.BaseY() + y
	for row := from; row <= to; row++ {
		m := a.grid.RegisterMarker(row - cursorRow)
		if m == nil {
			continue
		}
		a.grid.RegisterDecoration(screen.DecorationOptions{
			Marker: m,
			Width:  a.grid.Cols(),
			Height: 1,
			Layer:  screen.LayerBottom,
			Kind:   "highlight",
			Color:  color,
		})
		a.highlights = append(a.highlights, m)
	}
}
