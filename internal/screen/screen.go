package screen

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// wideTail fills the second cell of a double-width rune.
const wideTail rune = 0

type line struct {
	cells   []rune
	wrapped bool
}

func newLine(cols int) *line {
	l := &line{cells: make([]rune, cols)}
	for i := range l.cells {
		l.cells[i] = ' '
	}
	return l
}

func (l *line) resize(cols int) {
	if cols <= len(l.cells) {
		l.cells = l.cells[:cols]
		return
	}
	for len(l.cells) < cols {
		l.cells = append(l.cells, ' ')
	}
}

func (l *line) erase(from, to int) {
	if from < 0 {
		from = 0
	}
	if to > len(l.cells) {
		to = len(l.cells)
	}
	for i := from; i < to; i++ {
		l.cells[i] = ' '
	}
}

// Position is an absolute buffer coordinate. Y counts from the oldest
// retained scrollback line.
type Position struct {
	X int
	Y int
}

// Screen is a line buffer with scrollback fed by a terminal byte stream.
// Rows are addressed absolutely: the viewport starts at BaseY.
// A Screen is not safe for concurrent use.
type Screen struct {
	cols, rows int
	scrollback int

	lines  []*line
	cx, cy int
	saved  Position

	viewportY int
	follow    bool
	title     string

	parser *ansi.Parser

	markers     []*Marker
	nextMarker  int
	decorations []*Decoration

	oscHandlers map[int][]*oscHandler
	moveHooks   []*moveHook
	lastPos     Position
}

// New creates a screen of cols x rows keeping at most scrollback lines above
// the viewport.
func New(cols, rows, scrollback int) *Screen {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if scrollback < 0 {
		scrollback = 0
	}
	s := &Screen{
		cols:        cols,
		rows:        rows,
		scrollback:  scrollback,
		follow:      true,
		oscHandlers: map[int][]*oscHandler{},
	}
	for i := 0; i < rows; i++ {
		s.lines = append(s.lines, newLine(cols))
	}
	s.parser = ansi.NewParser()
	s.parser.SetHandler(ansi.Handler{
		Print:     s.print,
		Execute:   s.execute,
		HandleCsi: s.handleCsi,
		HandleEsc: s.handleEsc,
		HandleOsc: s.handleOsc,
	})
	return s
}

// Write feeds terminal output into the screen. Cursor-move hooks run once
// afterwards when the absolute cursor position changed.
func (s *Screen) Write(p []byte) (int, error) {
	s.parser.Parse(p)
	if s.follow {
		s.viewportY = s.BaseY()
	}
	s.fireCursorMove()
	return len(p), nil
}

func (s *Screen) Cols() int     { return s.cols }
func (s *Screen) Rows() int     { return s.rows }
func (s *Screen) Title() string { return s.title }

// BaseY is the absolute row of the first viewport line.
func (s *Screen) BaseY() int { return len(s.lines) - s.rows }

// Cursor returns the cursor column and viewport row. The column equals Cols
// while a wrap is pending.
func (s *Screen) Cursor() (x, y int) { return s.cx, s.cy }

// CursorPosition returns the absolute cursor position.
func (s *Screen) CursorPosition() Position {
	return Position{X: s.cx, Y: s.BaseY() + s.cy}
}

// Length is the number of addressable rows including scrollback.
func (s *Screen) Length() int { return len(s.lines) }

// LineText returns the text of an absolute row between columns start and end.
// end < 0 means the full width.
func (s *Screen) LineText(row int, trimRight bool, start, end int) string {
	if row < 0 || row >= len(s.lines) {
		return ""
	}
	cells := s.lines[row].cells
	if end < 0 || end > len(cells) {
		end = len(cells)
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return ""
	}
	var b strings.Builder
	for _, r := range cells[start:end] {
		if r == wideTail {
			continue
		}
		b.WriteRune(r)
	}
	if trimRight {
		return strings.TrimRight(b.String(), " ")
	}
	return b.String()
}

// IsWrapped reports whether an absolute row continues the previous one.
func (s *Screen) IsWrapped(row int) bool {
	if row < 0 || row >= len(s.lines) {
		return false
	}
	return s.lines[row].wrapped
}

// ViewportY is the absolute row shown at the top of the view.
func (s *Screen) ViewportY() int { return s.viewportY }

// ScrollToLine moves the view so row is at the top, clamped to the buffer.
func (s *Screen) ScrollToLine(row int) {
	if row < 0 {
		row = 0
	}
	if row > s.BaseY() {
		row = s.BaseY()
	}
	s.viewportY = row
	s.follow = row == s.BaseY()
}

// ScrollLines scrolls the view by n rows; negative scrolls up.
func (s *Screen) ScrollLines(n int) { s.ScrollToLine(s.viewportY + n) }

func (s *Screen) ScrollToBottom() { s.ScrollToLine(s.BaseY()) }

// Resize changes the grid size without reflowing text. Absolute rows of
// existing lines are preserved.
func (s *Screen) Resize(cols, rows int) {
	if cols < 1 || rows < 1 {
		return
	}
	absY := s.BaseY() + s.cy
	for _, l := range s.lines {
		l.resize(cols)
	}
	s.cols = cols
	for len(s.lines) < rows {
		s.lines = append(s.lines, newLine(cols))
	}
	s.rows = rows
	s.cy = clamp(absY-s.BaseY(), 0, rows-1)
	if s.cx > cols {
		s.cx = cols
	}
	s.trimScrollback()
	if s.follow || s.viewportY > s.BaseY() {
		s.viewportY = s.BaseY()
	}
	s.fireCursorMove()
}

func (s *Screen) current() *line { return s.lines[s.BaseY()+s.cy] }

func (s *Screen) print(r rune) {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return
	}
	if w > s.cols {
		w = s.cols
	}
	if s.cx+w > s.cols {
		s.cx = 0
		s.lineFeed()
		s.current().wrapped = true
	}
	l := s.current()
	l.cells[s.cx] = r
	if w == 2 {
		l.cells[s.cx+1] = wideTail
	}
	s.cx += w
}

func (s *Screen) execute(b byte) {
	switch b {
	case '\r':
		s.cx = 0
	case '\n', '\v', '\f':
		s.lineFeed()
		s.current().wrapped = false
	case '\b':
		s.cx = min(s.cx, s.cols-1)
		if s.cx > 0 {
			s.cx--
		}
	case '\t':
		s.cx = min((s.cx/8+1)*8, s.cols-1)
	}
}

// lineFeed moves the cursor down, scrolling the viewport into scrollback at
// the bottom margin.
func (s *Screen) lineFeed() {
	if s.cy < s.rows-1 {
		s.cy++
		return
	}
	s.lines = append(s.lines, newLine(s.cols))
	s.trimScrollback()
}

func (s *Screen) reverseIndex() {
	if s.cy > 0 {
		s.cy--
		return
	}
	base := s.BaseY()
	copy(s.lines[base+1:], s.lines[base:len(s.lines)-1])
	s.lines[base] = newLine(s.cols)
}

func (s *Screen) trimScrollback() {
	excess := len(s.lines) - s.rows - s.scrollback
	if excess <= 0 {
		return
	}
	s.dropLines(excess)
}

// dropLines evicts the n oldest lines. Markers shift with their lines and
// markers that fall off are disposed.
func (s *Screen) dropLines(n int) {
	if n <= 0 {
		return
	}
	s.lines = append([]*line(nil), s.lines[n:]...)
	if !s.follow {
		s.viewportY = max(0, s.viewportY-n)
	}
	var gone []*Marker
	for _, m := range s.markers {
		m.line -= n
		if m.line < 0 {
			gone = append(gone, m)
		}
	}
	for _, m := range gone {
		m.Dispose()
	}
}

func (s *Screen) eraseInDisplay(mode int) {
	base := s.BaseY()
	switch mode {
	case 0:
		s.current().erase(s.cx, s.cols)
		for i := base + s.cy + 1; i < len(s.lines); i++ {
			s.lines[i] = newLine(s.cols)
		}
	case 1:
		for i := base; i < base+s.cy; i++ {
			s.lines[i] = newLine(s.cols)
		}
		s.current().erase(0, s.cx+1)
	case 2:
		for i := base; i < len(s.lines); i++ {
			s.lines[i] = newLine(s.cols)
		}
	case 3:
		s.dropLines(base)
		s.viewportY = 0
	}
}

func (s *Screen) eraseInLine(mode int) {
	l := s.current()
	switch mode {
	case 0:
		l.erase(s.cx, s.cols)
	case 1:
		l.erase(0, s.cx+1)
	case 2:
		l.erase(0, s.cols)
	}
}

func (s *Screen) deleteChars(n int) {
	l := s.current()
	x := min(s.cx, s.cols-1)
	n = min(n, s.cols-x)
	copy(l.cells[x:], l.cells[x+n:])
	l.erase(s.cols-n, s.cols)
}

func (s *Screen) insertChars(n int) {
	l := s.current()
	x := min(s.cx, s.cols-1)
	n = min(n, s.cols-x)
	copy(l.cells[x+n:], l.cells[x:s.cols-n])
	l.erase(x, x+n)
}

func (s *Screen) handleCsi(cmd ansi.Cmd, params ansi.Params) {
	if cmd.Prefix() != 0 || cmd.Intermediate() != 0 {
		return
	}
	n := func(i int) int {
		v, _, _ := params.Param(i, 1)
		return max(v, 1)
	}
	p := func(i int) int {
		v, _, _ := params.Param(i, 0)
		return v
	}
	switch cmd.Final() {
	case 'A':
		s.cy = max(0, s.cy-n(0))
	case 'B', 'e':
		s.cy = min(s.rows-1, s.cy+n(0))
	case 'C', 'a':
		s.cx = min(s.cols-1, s.cx+n(0))
	case 'D':
		s.cx = max(0, min(s.cx, s.cols-1)-n(0))
	case 'E':
		s.cx = 0
		s.cy = min(s.rows-1, s.cy+n(0))
	case 'F':
		s.cx = 0
		s.cy = max(0, s.cy-n(0))
	case 'G', '`':
		s.cx = clamp(n(0)-1, 0, s.cols-1)
	case 'H', 'f':
		s.cy = clamp(n(0)-1, 0, s.rows-1)
		s.cx = clamp(n(1)-1, 0, s.cols-1)
	case 'd':
		s.cy = clamp(n(0)-1, 0, s.rows-1)
	case 'J':
		s.eraseInDisplay(p(0))
	case 'K':
		s.eraseInLine(p(0))
	case 'P':
		s.deleteChars(n(0))
	case '@':
		s.insertChars(n(0))
	case 'X':
		x := min(s.cx, s.cols-1)
		s.current().erase(x, x+n(0))
	case 'S':
		for i := 0; i < n(0); i++ {
			s.lines = append(s.lines, newLine(s.cols))
		}
		s.trimScrollback()
	case 's':
		s.saveCursor()
	case 'u':
		s.restoreCursor()
	}
}

func (s *Screen) handleEsc(cmd ansi.Cmd) {
	if cmd.Intermediate() != 0 {
		return
	}
	switch cmd.Final() {
	case '7':
		s.saveCursor()
	case '8':
		s.restoreCursor()
	case 'D':
		s.lineFeed()
	case 'E':
		s.cx = 0
		s.lineFeed()
	case 'M':
		s.reverseIndex()
	case 'c':
		s.eraseInDisplay(2)
		s.cx, s.cy = 0, 0
	}
}

func (s *Screen) saveCursor() { s.saved = Position{X: s.cx, Y: s.cy} }

func (s *Screen) restoreCursor() {
	s.cx = clamp(s.saved.X, 0, s.cols)
	s.cy = clamp(s.saved.Y, 0, s.rows-1)
}

func (s *Screen) fireCursorMove() {
	pos := s.CursorPosition()
	if pos == s.lastPos {
		return
	}
	s.lastPos = pos
	for _, h := range append([]*moveHook(nil), s.moveHooks...) {
		if !h.disposed {
			h.fn()
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
