package shellint

import (
	"sort"

	"commas/internal/screen"
)

// QuickFixAction is a suggested follow-up command.
type QuickFixAction struct {
	Command string `json:"command"`
}

// Command is one prompt/execute cycle. Marker and Decoration are released
// together.
type Command struct {
	Marker     *screen.Marker
	Decoration *screen.Decoration
	// CursorX is the column where input starts on the prompt row.
	CursorX int
	// Command is the executed text; empty until the shell reports it.
	Command  string
	ExitCode *int
	// Actions are quick fixes derived from the previous command when this
	// prompt appeared.
	Actions []QuickFixAction
}

// Line is the row of the command's prompt, or -1 once evicted.
func (c *Command) Line() int { return c.Marker.Line() }

// Failed reports a recorded nonzero exit code.
func (c *Command) Failed() bool { return c.ExitCode != nil && *c.ExitCode != 0 }

// Tracker keeps the ordered command log and the open command.
type Tracker struct {
	commands []*Command
	current  *Command
}

// Current is the open command, if any.
func (t *Tracker) Current() *Command { return t.current }

// Open appends c and makes it current. Commands whose markers were evicted
// are dropped from the log first.
func (t *Tracker) Open(c *Command) {
	live := t.commands[:0]
	for _, x := range t.commands {
		if !x.Marker.IsDisposed() {
			live = append(live, x)
		}
	}
	for i := len(live); i < len(t.commands); i++ {
		t.commands[i] = nil
	}
	t.commands = append(live, c)
	t.current = c
}

// Close ends the open command and returns it.
func (t *Tracker) Close() *Command {
	c := t.current
	t.current = nil
	return c
}

// LastFinished is the most recent command that is not open.
func (t *Tracker) LastFinished() *Command {
	for i := len(t.commands) - 1; i >= 0; i-- {
		if t.commands[i] != t.current {
			return t.commands[i]
		}
	}
	return nil
}

// Commands returns the log, oldest first.
func (t *Tracker) Commands() []*Command {
	return append([]*Command(nil), t.commands...)
}

// Markers returns live prompt markers sorted by row.
func (t *Tracker) Markers() []*screen.Marker {
	var out []*screen.Marker
	for _, c := range t.commands {
		if !c.Marker.IsDisposed() {
			out = append(out, c.Marker)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line() < out[j].Line() })
	return out
}

// DisposeAll releases every marker and empties the log.
func (t *Tracker) DisposeAll() {
	for _, c := range t.commands {
		c.Marker.Dispose()
	}
	t.commands = nil
	t.current = nil
}
