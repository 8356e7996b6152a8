package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	runewidth "github.com/mattn/go-runewidth"

	"commas/internal/completion"
	"commas/internal/screen"
)

var homeDir = os.UserHomeDir

type overlayRow struct {
	x     int
	width int
	text  string
}

// renderTerminal draws the viewport with its gutter, failed-output bands,
// the cursor and the completion popup.
func (m model) renderTerminal() string {
	s := m.t.screen
	cols, rows := s.Cols(), s.Rows()
	top := s.ViewportY()

	gutter := map[int]string{}
	bands := map[int]bool{}
	var popup *screen.Decoration
	for _, d := range s.Decorations() {
		switch d.Kind() {
		case "command":
			glyph := gutterDot
			if d.Strong() && d.Color() == screen.ColorYellow {
				glyph = gutterAction
			}
			st := lipgloss.NewStyle().Foreground(DecorationColor(d.Color())).Bold(d.Strong())
			gutter[d.Line()] = st.Render(glyph) + strings.Repeat(" ", gutterWidth-1)
		case "highlight":
			for i := 0; i < d.Height(); i++ {
				bands[d.Line()+i] = true
			}
		case "completion":
			popup = d
		}
	}
	overlay := m.popupOverlay(popup, top, rows, cols)

	cx, cy := s.Cursor()
	cursorRow := s.BaseY() + cy - top
	cx = min(cx, cols-1)

	b := &strings.Builder{}
	for r := 0; r < rows; r++ {
		abs := top + r
		if g, ok := gutter[abs]; ok {
			b.WriteString(g)
		} else {
			b.WriteString(strings.Repeat(" ", gutterWidth))
		}
		base := lipgloss.NewStyle()
		if bands[abs] {
			base = base.Background(Vitesse.ErrorBand)
		}
		cursor := -1
		if r == cursorRow {
			cursor = cx
		}
		if ov, ok := overlay[r]; ok {
			b.WriteString(m.cells(abs, 0, ov.x, base, cursor))
			b.WriteString(ov.text)
			b.WriteString(m.cells(abs, ov.x+ov.width, cols, base, cursor))
		} else {
			b.WriteString(m.cells(abs, 0, cols, base, cursor))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// cells renders columns [from, to) of an absolute row, inverting the cursor
// cell when it falls inside the range.
func (m model) cells(abs, from, to int, st lipgloss.Style, cursor int) string {
	if from >= to {
		return ""
	}
	s := m.t.screen
	if cursor < from || cursor >= to {
		return st.Render(fit(s.LineText(abs, false, from, to), to-from))
	}
	before := fit(s.LineText(abs, false, from, cursor), cursor-from)
	at := fit(s.LineText(abs, false, cursor, cursor+1), 1)
	after := fit(s.LineText(abs, false, cursor+1, to), to-cursor-1)
	return st.Render(before) + st.Reverse(true).Render(at) + st.Render(after)
}

// fit truncates or pads s to exactly w cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > w {
		s = runewidth.Truncate(s, w, "")
	}
	return runewidth.FillRight(s, w)
}

// popupOverlay lays out the completion list next to the prompt line. The
// decoration's render hook decides the side and the anchor column.
func (m model) popupOverlay(d *screen.Decoration, top, rows, cols int) map[int]overlayRow {
	items := m.t.addon.Tab.Completions
	if d == nil || len(items) == 0 {
		return nil
	}
	d.Render()
	span, _ := strconv.Atoi(d.Data("rowSpan"))
	col, _ := strconv.Atoi(d.Data("column"))
	span = min(span, len(items), d.Height())
	if span <= 0 {
		return nil
	}
	anchor := d.Line() - top
	start := anchor + 1
	if d.Data("vertical") == "above" {
		start = anchor - span
	}

	width := 0
	for _, c := range items {
		width = max(width, runewidth.StringWidth(itemText(c)))
	}
	width = max(min(width+2, d.Width(), cols), 1)
	x := col
	if d.Data("horizontal") == "left" {
		x = col - width
	}
	x = max(min(x, cols-width), 0)

	sel := m.t.addon.Selected()
	first := 0
	if sel >= span {
		first = sel - span + 1
	}
	out := make(map[int]overlayRow, span)
	for i := 0; i < span; i++ {
		r := start + i
		if r < 0 || r >= rows {
			continue
		}
		idx := first + i
		st := PopupStyle()
		if idx == sel {
			st = PopupSelectedStyle()
		}
		text := st.Render(fit(" "+itemText(items[idx]), width))
		out[r] = overlayRow{x: x, width: width, text: zone.Mark(completionZone(idx), text)}
	}
	return out
}

func itemText(c completion.Candidate) string {
	t := IconCandidate(c.Type == completion.TypeRecommendation) + " " + c.Value
	if c.Description != "" {
		t += "  " + c.Description
	}
	return t
}

// renderStatusBarStyled lays out chips on both sides with an optional
// center text, trimming chips when the width runs out.
func renderStatusBarStyled(width int, leftParts []string, center string, rightParts []string) string {
	w := width
	if w <= 0 {
		w = 100
	}

	statusBarStyle := StatusBarBase()
	keyStyle := ChipKeyStyle().Inherit(statusBarStyle).MarginRight(1)
	nugget := lipgloss.NewStyle().
		Foreground(Vitesse.OnAccent).
		Padding(0, 1)
	nuggetBG := []lipgloss.Color{
		Vitesse.Blue,
		Vitesse.Yellow,
		Vitesse.Magenta,
		Vitesse.Primary,
	}

	leftItems := make([]string, 0, len(leftParts))
	for i, s := range leftParts {
		if i == 0 {
			leftItems = append(leftItems, keyStyle.Render(s))
			continue
		}
		leftItems = append(leftItems, nugget.Background(nuggetBG[(i-1)%len(nuggetBG)]).Render(s))
	}
	rightItems := make([]string, 0, len(rightParts))
	for i, s := range rightParts {
		rightItems = append(rightItems, nugget.Background(nuggetBG[i%len(nuggetBG)]).Render(s))
	}

	leftStr, rightStr := strings.Join(leftItems, ""), strings.Join(rightItems, "")
	lw, rw := xansi.StringWidth(leftStr), xansi.StringWidth(rightStr)
	for lw+rw > w && len(leftItems) > 1 {
		leftItems = leftItems[:len(leftItems)-1]
		leftStr = strings.Join(leftItems, "")
		lw = xansi.StringWidth(leftStr)
	}
	for lw+rw > w && len(rightItems) > 0 {
		rightItems = rightItems[:len(rightItems)-1]
		rightStr = strings.Join(rightItems, "")
		rw = xansi.StringWidth(rightStr)
	}

	centerWidth := max(w-lw-rw, 0)
	center = " " + center
	if xansi.StringWidth(center) > centerWidth {
		center = xansi.Truncate(center, centerWidth, "")
	}
	mid := lipgloss.NewStyle().Inherit(statusBarStyle).Width(centerWidth).Render(center)
	return statusBarStyle.Width(w).Render(leftStr + mid + rightStr)
}
