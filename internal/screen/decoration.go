package screen

// Color is a semantic decoration color; the renderer maps it to a palette.
type Color int

const (
	ColorForeground Color = iota
	ColorYellow
	ColorGreen
	ColorRed
)

func (c Color) String() string {
	switch c {
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	case ColorRed:
		return "red"
	default:
		return "foreground"
	}
}

type Layer int

const (
	LayerBottom Layer = iota
	LayerTop
)

// DecorationOptions describes an overlay anchored to a marker row.
type DecorationOptions struct {
	Marker *Marker
	X      int
	Width  int
	Height int
	Layer  Layer
	Kind   string
	Color  Color
	Strong bool
}

// Decoration is a visual overlay. It is disposed together with its marker.
type Decoration struct {
	opts     DecorationOptions
	s        *Screen
	data     map[string]string
	hooks    []*renderHook
	disposed bool
}

type renderHook struct {
	fn       func(*Decoration)
	disposed bool
}

// RegisterDecoration attaches a decoration to opts.Marker. It returns nil if
// the marker is missing or disposed.
func (s *Screen) RegisterDecoration(opts DecorationOptions) *Decoration {
	if opts.Marker.IsDisposed() {
		return nil
	}
	if opts.Width <= 0 {
		opts.Width = 1
	}
	if opts.Height <= 0 {
		opts.Height = 1
	}
	d := &Decoration{opts: opts, s: s, data: map[string]string{}}
	s.decorations = append(s.decorations, d)
	opts.Marker.OnDispose(d.Dispose)
	return d
}

// Decorations returns the live decorations in registration order.
func (s *Screen) Decorations() []*Decoration {
	return append([]*Decoration(nil), s.decorations...)
}

func (d *Decoration) Marker() *Marker { return d.opts.Marker }
func (d *Decoration) X() int          { return d.opts.X }
func (d *Decoration) Width() int      { return d.opts.Width }
func (d *Decoration) Height() int     { return d.opts.Height }
func (d *Decoration) Layer() Layer    { return d.opts.Layer }
func (d *Decoration) Kind() string    { return d.opts.Kind }
func (d *Decoration) Color() Color    { return d.opts.Color }
func (d *Decoration) Strong() bool    { return d.opts.Strong }

// Line is the absolute row of the decoration, or -1 once disposed.
func (d *Decoration) Line() int {
	if d.IsDisposed() {
		return -1
	}
	return d.opts.Marker.Line()
}

func (d *Decoration) IsDisposed() bool {
	return d == nil || d.disposed
}

func (d *Decoration) SetData(key, value string) {
	if d.IsDisposed() {
		return
	}
	d.data[key] = value
}

func (d *Decoration) Data(key string) string {
	if d == nil {
		return ""
	}
	return d.data[key]
}

// OnRender registers fn to run each time the decoration is rendered.
func (d *Decoration) OnRender(fn func(*Decoration)) Disposable {
	h := &renderHook{fn: fn}
	if !d.IsDisposed() {
		d.hooks = append(d.hooks, h)
	}
	return disposeFunc(func() {
		if h.disposed {
			return
		}
		h.disposed = true
		for i, x := range d.hooks {
			if x == h {
				d.hooks = append(d.hooks[:i:i], d.hooks[i+1:]...)
				break
			}
		}
	})
}

// Render runs the render hooks. Renderers call it once per frame.
func (d *Decoration) Render() {
	if d.IsDisposed() {
		return
	}
	for _, h := range append([]*renderHook(nil), d.hooks...) {
		if !h.disposed {
			h.fn(d)
		}
	}
}

func (d *Decoration) Dispose() {
	if d.IsDisposed() {
		return
	}
	d.disposed = true
	d.hooks = nil
	for i, x := range d.s.decorations {
		if x == d {
			d.s.decorations = append(d.s.decorations[:i:i], d.s.decorations[i+1:]...)
			break
		}
	}
}
