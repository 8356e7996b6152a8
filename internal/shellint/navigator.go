package shellint

// ScrollToCommand scrolls to the prompt offset commands away from the one
// visited last, wrapping in both directions. Without a previous visit the
// walk starts one past the newest prompt.
func (a *Addon) ScrollToCommand(offset int) {
	if a.grid == nil {
		return
	}
	markers := a.tracker.Markers()
	n := len(markers)
	if n == 0 {
		return
	}
	idx := n
	if a.recent != 0 {
		for i, m := range markers {
			if m.ID == a.recent {
				idx = i
				break
			}
		}
	}
	target := markers[((idx+offset)%n+n)%n]
	a.recent = target.ID
	a.grid.ScrollToLine(target.Line())
}

// RecentLine is the row of the prompt visited last, or -1.
func (a *Addon) RecentLine() int {
	if a.recent == 0 {
		return -1
	}
	for _, m := range a.tracker.Markers() {
		if m.ID == a.recent {
			return m.Line()
		}
	}
	return -1
}
