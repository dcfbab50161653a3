// Package live keeps a page shell per browser tab in sync over a WebSocket:
// the browser reports scroll offsets and clicks, the server answers with the
// resulting shell state.
package live

import (
	"errors"
	"fmt"
	"strings"

	"altaviva-site/internal/layout"
	"altaviva-site/pkg/navigation"
	"altaviva-site/pkg/validator"
)

type EventType string

const (
	EventScroll      EventType = "scroll"
	EventToggleTheme EventType = "toggle-theme"
	EventMenu        EventType = "menu"
	EventSelect      EventType = "select"
)

var ErrUnknownEvent = errors.New("unknown live event")

// Event is a message sent by the browser.
type Event struct {
	Type   EventType `json:"type" validate:"required"`
	Offset float64   `json:"offset"`
	Open   bool      `json:"open"`
	Path   string    `json:"path" validate:"omitempty,page_path"`
}

// StoreDirective asks the browser to persist a preference itself.
type StoreDirective struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	MaxAge int    `json:"max_age"`
}

// Snapshot is the shell state sent back after every event.
type Snapshot struct {
	Type        string          `json:"type"`
	Theme       string          `json:"theme,omitempty"`
	Scrolled    bool            `json:"scrolled"`
	MenuOpen    bool            `json:"menu_open"`
	ActivePath  string          `json:"active_path,omitempty"`
	NavbarClass string          `json:"navbar_class,omitempty"`
	RootClasses []string        `json:"root_classes,omitempty"`
	Store       *StoreDirective `json:"store,omitempty"`
	Error       string          `json:"error,omitempty"`
}

const (
	snapshotState = "state"
	snapshotError = "error"
)

// Session is one connected tab. It is the scroll surface its shell is
// mounted on.
type Session struct {
	surface    *layout.HeadlessSurface
	shell      *layout.PageShell
	storage    *clientStorage
	activePath string
}

// NewSession mounts a shell over storage. When clientSide is set, writes are
// held back and handed to the browser as store directives.
func NewSession(storage layout.Storage, clientSide bool, cookieMaxAge int, entries []navigation.Item, activePath string) *Session {
	s := &Session{
		surface:    layout.NewHeadlessSurface(),
		activePath: activePath,
	}

	if clientSide {
		s.storage = newClientStorage(storage, cookieMaxAge)
		storage = s.storage
	}

	s.shell = layout.NewPageShell(layout.Options{
		Entries: entries,
		Storage: storage,
	})
	s.shell.Mount(s)

	return s
}

func (s *Session) OnScroll(handler layout.ScrollHandler) func() {
	return s.surface.OnScroll(handler)
}

func (s *Session) Shell() *layout.PageShell {
	return s.shell
}

// Listeners reports the number of scroll listeners attached to the session.
func (s *Session) Listeners() int {
	return s.surface.ListenerCount()
}

// Handle applies ev and returns the resulting state.
func (s *Session) Handle(ev Event) (Snapshot, error) {
	ev.Type = EventType(strings.TrimSpace(string(ev.Type)))
	if err := validator.Validate(ev); err != nil {
		return s.errorSnapshot(err), err
	}

	switch ev.Type {
	case EventScroll:
		s.surface.Scroll(ev.Offset)
	case EventToggleTheme:
		s.shell.ToggleTheme()
	case EventMenu:
		s.shell.Menu().SetOpen(ev.Open)
	case EventSelect:
		if item, ok := s.shell.SelectEntry(ev.Path); ok {
			s.activePath = item.Path
		}
	default:
		err := fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
		return s.errorSnapshot(err), err
	}

	return s.Snapshot(), nil
}

// Snapshot reports the current state and drains any pending store directive.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Type:        snapshotState,
		Theme:       s.shell.Theme().String(),
		Scrolled:    s.shell.Scrolled(),
		MenuOpen:    s.shell.Menu().IsOpen(),
		ActivePath:  s.activePath,
		NavbarClass: layout.NavbarClass(s.shell.Scrolled()),
		RootClasses: s.shell.RootClasses(),
	}
	if s.storage != nil {
		snap.Store = s.storage.drain()
	}
	return snap
}

func (s *Session) errorSnapshot(err error) Snapshot {
	return Snapshot{
		Type:     snapshotError,
		Scrolled: s.shell.Scrolled(),
		MenuOpen: s.shell.Menu().IsOpen(),
		Error:    err.Error(),
	}
}

// Close unmounts the shell.
func (s *Session) Close() {
	s.shell.Unmount()
}

// clientStorage reads through to the request storage and keeps writes
// in memory until they are handed to the browser.
type clientStorage struct {
	read    layout.Storage
	maxAge  int
	values  map[string]string
	pending *StoreDirective
}

func newClientStorage(read layout.Storage, maxAge int) *clientStorage {
	return &clientStorage{read: read, maxAge: maxAge, values: make(map[string]string)}
}

func (c *clientStorage) Get(key string) (string, error) {
	if value, ok := c.values[key]; ok {
		return value, nil
	}
	if c.read == nil {
		return "", layout.ErrPreferenceNotFound
	}
	return c.read.Get(key)
}

func (c *clientStorage) Set(key, value string) error {
	c.values[key] = value
	c.pending = &StoreDirective{Key: key, Value: value, MaxAge: c.maxAge}
	return nil
}

func (c *clientStorage) drain() *StoreDirective {
	pending := c.pending
	c.pending = nil
	return pending
}
