package shellint

import (
	"context"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"commas/internal/completion"
	"commas/internal/screen"
	"commas/internal/system"
)

// Position is an absolute cursor coordinate.
type Position = screen.Position

// session is the rendered completion popup. There is at most one per tab.
type session struct {
	marker     *screen.Marker
	decoration *screen.Decoration
	renderer   screen.Disposable
	position   Position
}

type skipState struct {
	always bool
	pos    Position
}

func (a *Addon) currentPosition() Position {
	x, y := a.grid.Cursor()
	return Position{X: x, Y: a.grid.BaseY() + y}
}

// currentInput is the text typed since the prompt, up to pos. It is empty
// when no command is open or the shell already reported its text.
func (a *Addon) currentInput(pos Position) string {
	cur := a.tracker.Current()
	if cur == nil || cur.Command != "" || cur.Marker.IsDisposed() {
		return ""
	}
	promptLine := max(cur.Marker.Line(), 0)
	if pos.Y < promptLine || pos.X < cur.CursorX {
		return ""
	}
	rowspan := pos.Y - promptLine + 1
	var b strings.Builder
	for i := 0; i < rowspan; i++ {
		trimRight := rowspan <= 1 || i != rowspan-1
		start, end := 0, -1
		if i == 0 {
			start = cur.CursorX
		}
		if i == rowspan-1 {
			end = pos.X
		}
		b.WriteString(a.grid.LineText(promptLine+i, trimRight, start, end))
	}
	return b.String()
}

// quickCandidates turns the open command's quick fixes into candidates for
// input. They are only offered while the command is still being typed.
func (a *Addon) quickCandidates(input string) []completion.Candidate {
	cur := a.tracker.Current()
	if cur == nil || cur.Command != "" {
		return nil
	}
	out := make([]completion.Candidate, 0, len(cur.Actions))
	for _, act := range cur.Actions {
		out = append(out, completion.Candidate{
			Type:  completion.TypeRecommendation,
			Query: input,
			Value: act.Command,
		})
	}
	return out
}

// TriggerCompletion starts a completion round for the cursor position.
// Results from earlier rounds that arrive later are dropped.
func (a *Addon) TriggerCompletion() {
	if a.grid == nil {
		return
	}
	pos := a.currentPosition()
	input := a.currentInput(pos)
	reuse := false
	if s := a.session; s != nil {
		switch {
		case s.position == pos:
			return
		case !s.marker.IsDisposed() && s.marker.Line() == pos.Y:
			reuse = true
		default:
			a.ClearCompletion()
		}
	}
	a.generation++
	token := a.generation
	quick := a.quickCandidates(input)

	if input == "" || a.opts.Provider == nil {
		a.resolveCompletion(token, pos, reuse, completion.Rank(quick))
		return
	}
	provider, cwd, timeout := a.opts.Provider, a.Tab.Cwd, a.opts.Timeout
	fetch := func() []completion.Candidate {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		list, _ := completion.Safe(provider).Complete(ctx, input, cwd)
		return completion.Rank(append(quick, list...))
	}
	if a.opts.Post == nil {
		a.resolveCompletion(token, pos, reuse, fetch())
		return
	}
	post := a.opts.Post
	go func() {
		ranked := fetch()
		post(func() { a.resolveCompletion(token, pos, reuse, ranked) })
	}()
}

func (a *Addon) resolveCompletion(token uint64, pos Position, reuse bool, ranked []completion.Candidate) {
	if token != a.generation {
		return
	}
	if reuse && (a.session == nil || a.session.marker.IsDisposed()) {
		reuse = false
		a.dropSession()
	}
	if len(ranked) == 0 {
		if reuse {
			a.ClearCompletion()
		}
		return
	}
	if sk := a.skip; sk != nil {
		top := ranked[0]
		if sk.always || (sk.pos == pos && top.Query != "" && top.Value == top.Query) {
			a.skip = nil
			if reuse {
				a.ClearCompletion()
			}
			return
		}
	}
	if !reuse {
		a.dropSession()
	}
	s := a.renderSession(pos, len(ranked), reuse)
	if s == nil {
		return
	}
	a.session = s
	a.setCompletions(ranked)
}

// renderSession creates the popup decoration or rebinds the existing one.
func (a *Addon) renderSession(pos Position, height int, reuse bool) *session {
	var marker *screen.Marker
	var deco *screen.Decoration
	if reuse {
		marker, deco = a.session.marker, a.session.decoration
		a.session.renderer.Dispose()
	} else {
		marker = a.grid.RegisterMarker(0)
		deco = a.grid.RegisterDecoration(screen.DecorationOptions{
			Marker: marker,
			Width:  a.grid.Cols() / 2,
			Height: a.grid.Rows() / 2,
			Layer:  screen.LayerTop,
			Kind:   "completion",
		})
		if deco == nil {
			marker.Dispose()
			return nil
		}
	}
	x, y := a.grid.Cursor()
	cols, rows := a.grid.Cols(), a.grid.Rows()
	renderer := deco.OnRender(func(d *screen.Decoration) {
		vertical := "below"
		if y >= rows/2 {
			vertical = "above"
		}
		horizontal := "right"
		if x >= cols/2 {
			horizontal = "left"
		}
		d.SetData("vertical", vertical)
		d.SetData("horizontal", horizontal)
		d.SetData("column", strconv.Itoa(x))
		d.SetData("rowSpan", strconv.Itoa(height))
	})
	return &session{marker: marker, decoration: deco, renderer: renderer, position: pos}
}

func (a *Addon) dropSession() {
	if s := a.session; s != nil {
		s.renderer.Dispose()
		s.marker.Dispose()
		s.decoration.Dispose()
		a.session = nil
	}
}

func (a *Addon) setCompletions(list []completion.Candidate) {
	a.Tab.Completions = list
	a.selected = 0
	if a.opts.OnCompletions != nil {
		a.opts.OnCompletions(list)
	}
}

// ClearCompletion disposes the popup and invalidates pending rounds.
func (a *Addon) ClearCompletion() {
	a.generation++
	a.dropSession()
	if a.Tab.Completions != nil {
		a.setCompletions(nil)
	}
}

// SkipCompletion suppresses the next round that would show a completion
// already typed at pos. A nil pos suppresses the next round outright.
func (a *Addon) SkipCompletion(pos *Position) {
	if pos == nil {
		a.skip = &skipState{always: true}
		return
	}
	a.skip = &skipState{pos: *pos}
}

// Session reports the popup decoration, or nil when none is shown.
func (a *Addon) Session() *screen.Decoration {
	if a.session == nil || a.session.decoration.IsDisposed() {
		return nil
	}
	return a.session.decoration
}

// ApplyCompletion deletes back characters before the cursor, types value
// and warms the provider for the resulting input.
func (a *Addon) ApplyCompletion(value string, back int) {
	if a.grid == nil {
		return
	}
	back = max(back, 0)
	pos := a.currentPosition()
	input := a.currentInput(pos)
	runes := []rune(input)
	keep := max(len(runes)-back, 0)

	deleted := runewidth.StringWidth(string(runes[keep:])) + max(back-len(runes), 0)
	cols := a.grid.Cols()
	pos.X += runewidth.StringWidth(value) - deleted
	for pos.X > cols {
		pos.X -= cols
		pos.Y++
	}
	for pos.X < 0 {
		pos.X += cols
		pos.Y--
	}
	a.SkipCompletion(&pos)

	if a.opts.Input != nil {
		edit := strings.Repeat("\x7f", back) + value
		if _, err := io.WriteString(a.opts.Input, edit); err != nil {
			system.Logger.Warn("write completion", "err", err)
		}
	}
	a.prefetch(string(runes[:keep]) + value + " ")
}

// prefetch asks the provider for next and discards the answer; a caching
// provider keeps it for the next round. Without Post the call runs inline.
func (a *Addon) prefetch(next string) {
	if a.opts.Provider == nil {
		return
	}
	p, cwd, timeout := a.opts.Provider, a.Tab.Cwd, a.opts.Timeout
	warm := func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, _ = completion.Safe(p).Complete(ctx, next, cwd)
	}
	if a.opts.Post == nil {
		warm()
		return
	}
	go warm()
}

// SelectCompletion moves the highlighted item by delta, wrapping around.
func (a *Addon) SelectCompletion(delta int) {
	n := len(a.Tab.Completions)
	if n == 0 || a.Session() == nil {
		return
	}
	a.selected = ((a.selected+delta)%n + n) % n
}

// Selected is the highlighted index, or -1 when nothing is shown.
func (a *Addon) Selected() int {
	if len(a.Tab.Completions) == 0 || a.Session() == nil {
		return -1
	}
	return a.selected
}

// ApplyCandidate applies c, replacing its query.
func (a *Addon) ApplyCandidate(c completion.Candidate, enter bool) bool {
	back := utf8.RuneCountInString(c.Query)
	if c.Value == "" || (enter && utf8.RuneCountInString(c.Value) == back) {
		return false
	}
	a.ApplyCompletion(c.Value, back)
	return true
}

// ApplySelected applies the highlighted candidate. With enter set, an item
// identical to what was typed is not consumed so Enter reaches the shell.
func (a *Addon) ApplySelected(enter bool) bool {
	i := a.Selected()
	if i < 0 {
		return false
	}
	return a.ApplyCandidate(a.Tab.Completions[i], enter)
}
