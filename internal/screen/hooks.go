package screen

import "strings"

// Disposable releases a registration.
type Disposable interface {
	Dispose()
}

type disposeFunc func()

func (f disposeFunc) Dispose() { f() }

// OscHandler receives the payload after "<cmd>;". Returning false lets the
// sequence fall through to older handlers and the built-in defaults.
type OscHandler func(payload string) bool

type oscHandler struct {
	fn       OscHandler
	disposed bool
}

type moveHook struct {
	fn       func()
	disposed bool
}

// RegisterOscHandler adds a handler for OSC sequences with the given numeric
// identifier. Later registrations run first.
func (s *Screen) RegisterOscHandler(cmd int, fn OscHandler) Disposable {
	h := &oscHandler{fn: fn}
	s.oscHandlers[cmd] = append(s.oscHandlers[cmd], h)
	return disposeFunc(func() {
		if h.disposed {
			return
		}
		h.disposed = true
		list := s.oscHandlers[cmd]
		for i, x := range list {
			if x == h {
				s.oscHandlers[cmd] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
	})
}

// OnCursorMove registers fn to run after a Write or Resize that moved the
// cursor.
func (s *Screen) OnCursorMove(fn func()) Disposable {
	h := &moveHook{fn: fn}
	s.moveHooks = append(s.moveHooks, h)
	return disposeFunc(func() {
		if h.disposed {
			return
		}
		h.disposed = true
		for i, x := range s.moveHooks {
			if x == h {
				s.moveHooks = append(s.moveHooks[:i:i], s.moveHooks[i+1:]...)
				break
			}
		}
	})
}

func (s *Screen) handleOsc(cmd int, data []byte) {
	payload := ""
	if _, rest, ok := strings.Cut(string(data), ";"); ok {
		payload = rest
	}
	list := s.oscHandlers[cmd]
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].disposed {
			continue
		}
		if list[i].fn(payload) {
			return
		}
	}
	switch cmd {
	case 0, 2:
		s.title = payload
	}
}
