package screen

// Marker tracks an absolute row while lines scroll and get evicted.
type Marker struct {
	ID int

	s         *Screen
	line      int
	disposed  bool
	onDispose []func()
}

// RegisterMarker anchors a marker at the cursor row plus offset. It returns
// nil when that row is outside the buffer.
func (s *Screen) RegisterMarker(offset int) *Marker {
	row := s.BaseY() + s.cy + offset
	if row < 0 || row >= len(s.lines) {
		return nil
	}
	s.nextMarker++
	m := &Marker{ID: s.nextMarker, s: s, line: row}
	s.markers = append(s.markers, m)
	return m
}

// Markers returns the live markers in registration order.
func (s *Screen) Markers() []*Marker {
	return append([]*Marker(nil), s.markers...)
}

// Line is the absolute row of the marker, or -1 once disposed.
func (m *Marker) Line() int {
	if m == nil || m.disposed {
		return -1
	}
	return m.line
}

// IsDisposed is true for nil markers too.
func (m *Marker) IsDisposed() bool {
	return m == nil || m.disposed
}

// OnDispose registers fn to run when the marker is disposed. A marker that is
// already gone runs fn immediately.
func (m *Marker) OnDispose(fn func()) {
	if m.IsDisposed() {
		fn()
		return
	}
	m.onDispose = append(m.onDispose, fn)
}

func (m *Marker) Dispose() {
	if m.IsDisposed() {
		return
	}
	m.disposed = true
	for i, x := range m.s.markers {
		if x == m {
			m.s.markers = append(m.s.markers[:i:i], m.s.markers[i+1:]...)
			break
		}
	}
	hooks := m.onDispose
	m.onDispose = nil
	for _, fn := range hooks {
		fn()
	}
}
