package layout

// MobileMenu is the open/closed state of the slide-out panel. The zero
// value is closed.
type MobileMenu struct {
	open bool
}

func (m *MobileMenu) IsOpen() bool {
	return m.open
}

func (m *MobileMenu) Open() {
	m.open = true
}

func (m *MobileMenu) Close() {
	m.open = false
}

func (m *MobileMenu) Toggle() {
	m.open = !m.open
}

// SetOpen mirrors the panel's own open-change callback.
func (m *MobileMenu) SetOpen(open bool) {
	m.open = open
}

// Select is called when an entry inside the panel is chosen.
func (m *MobileMenu) Select() {
	m.open = false
}
