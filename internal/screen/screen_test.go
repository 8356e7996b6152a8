package screen

import "testing"

func TestPrintWrapsAndMarksContinuation(t *testing.T) {
	s := New(5, 3, 10)
	s.Write([]byte("abcdefg"))
	if got := s.LineText(0, true, 0, -1); got != "abcde" {
		t.Fatalf("row 0 = %q", got)
	}
	if got := s.LineText(1, true, 0, -1); got != "fg" {
		t.Fatalf("row 1 = %q", got)
	}
	if s.IsWrapped(0) || !s.IsWrapped(1) {
		t.Fatalf("wrap flags = %v %v", s.IsWrapped(0), s.IsWrapped(1))
	}
	if x, y := s.Cursor(); x != 2 || y != 1 {
		t.Fatalf("cursor = %d,%d", x, y)
	}
}

func TestPendingWrapKeepsCursorAtWidth(t *testing.T) {
	s := New(4, 2, 0)
	s.Write([]byte("abcd"))
	if x, _ := s.Cursor(); x != 4 {
		t.Fatalf("cursor x = %d, want 4", x)
	}
	s.Write([]byte("\b"))
	if x, _ := s.Cursor(); x != 2 {
		t.Fatalf("cursor x after BS = %d, want 2", x)
	}
}

func TestScrollbackEvictionDisposesMarkers(t *testing.T) {
	s := New(10, 2, 1)
	m := s.RegisterMarker(0)
	if m == nil || m.Line() != 0 {
		t.Fatalf("marker line = %d", m.Line())
	}
	d := s.RegisterDecoration(DecorationOptions{Marker: m})
	s.Write([]byte("a\r\nb\r\n"))
	if m.Line() != 0 || s.BaseY() != 1 {
		t.Fatalf("after one scroll: marker %d base %d", m.Line(), s.BaseY())
	}
	s.Write([]byte("c\r\n"))
	if !m.IsDisposed() || m.Line() != -1 {
		t.Fatalf("marker should be evicted, line %d", m.Line())
	}
	if !d.IsDisposed() {
		t.Fatalf("decoration should follow its marker")
	}
	if got := s.LineText(0, true, 0, -1); got != "b" {
		t.Fatalf("oldest row = %q", got)
	}
}

func TestMarkerShiftsWithEviction(t *testing.T) {
	s := New(10, 2, 1)
	s.Write([]byte("a\r\n"))
	m := s.RegisterMarker(0)
	s.Write([]byte("b\r\nc\r\n"))
	if m.Line() != 0 {
		t.Fatalf("marker line = %d, want 0", m.Line())
	}
	if got := s.LineText(m.Line(), true, 0, -1); got != "b" {
		t.Fatalf("marker row text = %q", got)
	}
}

func TestOscHandlersFallThrough(t *testing.T) {
	s := New(10, 2, 0)
	var got []string
	s.RegisterOscHandler(633, func(p string) bool {
		got = append(got, "old:"+p)
		return true
	})
	h := s.RegisterOscHandler(633, func(p string) bool {
		got = append(got, "new:"+p)
		return p == "B"
	})
	s.Write([]byte("\x1b]633;B\x07\x1b]633;Z\x1b\\"))
	want := []string{"new:B", "new:Z", "old:Z"}
	if len(got) != len(want) {
		t.Fatalf("calls = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls = %v, want %v", got, want)
		}
	}
	h.Dispose()
	got = nil
	s.Write([]byte("\x1b]633;A\x07"))
	if len(got) != 1 || got[0] != "old:A" {
		t.Fatalf("after dispose calls = %v", got)
	}
	s.Write([]byte("\x1b]2;hello\x07"))
	if s.Title() != "hello" {
		t.Fatalf("title = %q", s.Title())
	}
}

func TestCursorMoveFiresOncePerWrite(t *testing.T) {
	s := New(10, 3, 0)
	n := 0
	d := s.OnCursorMove(func() { n++ })
	s.Write([]byte("abc"))
	s.Write([]byte("\x1b]633;A\x07"))
	if n != 1 {
		t.Fatalf("hook calls = %d, want 1", n)
	}
	d.Dispose()
	s.Write([]byte("d"))
	if n != 1 {
		t.Fatalf("hook ran after dispose")
	}
}

func TestCsiEditing(t *testing.T) {
	s := New(10, 3, 0)
	s.Write([]byte("hello\x1b[3D\x1b[K"))
	if got := s.LineText(0, true, 0, -1); got != "he" {
		t.Fatalf("after EL = %q", got)
	}
	s.Write([]byte("\x1b[2;4Hx\x1b[1;1H\x1b[P"))
	if got := s.LineText(0, true, 0, -1); got != "e" {
		t.Fatalf("after DCH = %q", got)
	}
	if got := s.LineText(1, false, 0, 4); got != "   x" {
		t.Fatalf("CUP row = %q", got)
	}
	s.Write([]byte("\x1b[2J"))
	if got := s.LineText(1, true, 0, -1); got != "" {
		t.Fatalf("after ED = %q", got)
	}
}

func TestWideRunesOccupyTwoCells(t *testing.T) {
	s := New(6, 2, 0)
	s.Write([]byte("你好x"))
	if x, _ := s.Cursor(); x != 5 {
		t.Fatalf("cursor x = %d, want 5", x)
	}
	if got := s.LineText(0, true, 0, -1); got != "你好x" {
		t.Fatalf("row = %q", got)
	}
	if got := s.LineText(0, true, 2, 4); got != "好" {
		t.Fatalf("range = %q", got)
	}
}

func TestDecorationRenderHooks(t *testing.T) {
	s := New(10, 2, 0)
	d := s.RegisterDecoration(DecorationOptions{Marker: s.RegisterMarker(0), Color: ColorRed})
	calls := 0
	h := d.OnRender(func(*Decoration) { calls++ })
	d.Render()
	h.Dispose()
	d.Render()
	if calls != 1 {
		t.Fatalf("render calls = %d", calls)
	}
	d.SetData("command", "ls")
	if d.Data("command") != "ls" || d.Color() != ColorRed {
		t.Fatalf("data/color not kept")
	}
	d.Marker().Dispose()
	if !d.IsDisposed() || len(s.Decorations()) != 0 {
		t.Fatalf("decoration not released with marker")
	}
	if s.RegisterDecoration(DecorationOptions{Marker: d.Marker()}) != nil {
		t.Fatalf("decoration on disposed marker should be nil")
	}
}

func TestScrollToLineClamps(t *testing.T) {
	s := New(10, 2, 10)
	s.Write([]byte("1\r\n2\r\n3\r\n4"))
	if s.BaseY() != 2 || s.ViewportY() != 2 {
		t.Fatalf("base %d viewport %d", s.BaseY(), s.ViewportY())
	}
	s.ScrollToLine(0)
	s.Write([]byte("\r\n5"))
	if s.ViewportY() != 0 {
		t.Fatalf("viewport should stay while scrolled back, got %d", s.ViewportY())
	}
	s.ScrollToLine(99)
	if s.ViewportY() != s.BaseY() {
		t.Fatalf("viewport %d base %d", s.ViewportY(), s.BaseY())
	}
}
