package shellint

import (
	"fmt"
	"testing"
)

func promptAt(row int) string {
	return fmt.Sprintf("\x1b[%d;1H$ ", row+1) + osc("B")
}

func TestScrollToCommandWraps(t *testing.T) {
	s, a := setup(t, 20, 12, Options{Settings: StaticSettings{}})
	write(s, promptAt(2)+osc("D;0"), promptAt(5)+osc("D;0"), promptAt(9))

	a.ScrollToCommand(-1)
	if got := a.RecentLine(); got != 9 {
		t.Fatalf("-1 without pointer = %d, want 9", got)
	}
	a.ScrollToCommand(1)
	if got := a.RecentLine(); got != 2 {
		t.Fatalf("+1 from last = %d, want 2", got)
	}
	a.ScrollToCommand(-1)
	if got := a.RecentLine(); got != 9 {
		t.Fatalf("-1 from first = %d, want 9", got)
	}
	a.ScrollToCommand(-1)
	if got := a.RecentLine(); got != 5 {
		t.Fatalf("-1 = %d, want 5", got)
	}
}

func TestScrollToCommandDanglingPointer(t *testing.T) {
	s, a := setup(t, 20, 12, Options{Settings: StaticSettings{}})
	write(s, promptAt(2)+osc("D;0"), promptAt(5)+osc("D;0"), promptAt(9))
	a.ScrollToCommand(-3)
	if got := a.RecentLine(); got != 2 {
		t.Fatalf("-3 = %d, want 2", got)
	}
	a.Tracker().Commands()[0].Marker.Dispose()
	if a.RecentLine() != -1 {
		t.Fatalf("pointer should dangle")
	}
	a.ScrollToCommand(-1)
	if got := a.RecentLine(); got != 9 {
		t.Fatalf("dangling pointer counts from the end, got %d", got)
	}
}

func TestScrollToCommandEmpty(t *testing.T) {
	_, a := setup(t, 20, 12, Options{})
	a.ScrollToCommand(1)
	if a.RecentLine() != -1 {
		t.Fatalf("no commands should leave no pointer")
	}
}

func TestNewPromptResetsPointer(t *testing.T) {
	s, a := setup(t, 20, 12, Options{Settings: StaticSettings{}})
	write(s, promptAt(2)+osc("D;0"), promptAt(5)+osc("D;0"))
	a.ScrollToCommand(-1)
	write(s, promptAt(9))
	if a.RecentLine() != -1 {
		t.Fatalf("PromptEnd should clear the pointer")
	}
}
