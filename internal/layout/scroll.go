package layout

// ScrollThreshold is the vertical offset in pixels past which the navbar
// switches to its scrolled style.
const ScrollThreshold = 20.0

// IsScrolled reports whether the offset is strictly past the threshold.
func IsScrolled(offset float64) bool {
	return offset > ScrollThreshold
}

// ScrollHandler receives the vertical scroll offset of the viewport.
type ScrollHandler func(offset float64)

// Surface is the host a page shell is mounted on. OnScroll registers a
// listener and returns the function that removes it.
type Surface interface {
	OnScroll(handler ScrollHandler) (unsubscribe func())
}

// HeadlessSurface is a Surface driven by explicit Scroll calls. It backs
// server-side rendering and tests.
type HeadlessSurface struct {
	next     int
	handlers map[int]ScrollHandler
}

func NewHeadlessSurface() *HeadlessSurface {
	return &HeadlessSurface{handlers: make(map[int]ScrollHandler)}
}

func (s *HeadlessSurface) OnScroll(handler ScrollHandler) func() {
	id := s.next
	s.next++
	s.handlers[id] = handler
	return func() {
		delete(s.handlers, id)
	}
}

// Scroll delivers a scroll event to every registered listener.
func (s *HeadlessSurface) Scroll(offset float64) {
	for _, handler := range s.handlers {
		handler(offset)
	}
}

func (s *HeadlessSurface) ListenerCount() int {
	return len(s.handlers)
}
