// Package layout implements the page shell shared by every page of the
// site: navigation bar, mobile menu panel and footer, together with the
// theme and scroll state they depend on.
package layout

import (
	"time"

	"altaviva-site/pkg/logger"
	"altaviva-site/pkg/navigation"
)

type Options struct {
	Entries    []navigation.Item
	Site       SiteInfo
	Storage    Storage
	Root       DocumentRoot
	Primitives Primitives
	Clock      func() time.Time
}

// PageShell holds the state of one mounted layout. It is driven by a single
// event loop and is not safe for concurrent use.
type PageShell struct {
	entries    []navigation.Item
	site       SiteInfo
	theme      *ThemeContext
	primitives Primitives
	clock      func() time.Time

	menu        MobileMenu
	scrolled    bool
	mounted     bool
	unsubscribe func()
}

func NewPageShell(opts Options) *PageShell {
	entries := opts.Entries
	if entries == nil {
		entries = navigation.Entries()
	}

	site := opts.Site
	if site.Name == "" {
		site = DefaultSiteInfo()
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	return &PageShell{
		entries:    entries,
		site:       site,
		theme:      NewThemeContext(opts.Storage, opts.Root),
		primitives: withFallbacks(opts.Primitives),
		clock:      clock,
	}
}

// Mount reads the stored theme and subscribes to scroll events on the
// surface. Mounting an already mounted shell does nothing.
func (s *PageShell) Mount(surface Surface) {
	if s.mounted {
		return
	}
	s.mounted = true

	if _, err := s.theme.Load(); err != nil {
		logger.Warn("Falling back to light theme", map[string]interface{}{"error": err.Error()})
	}

	if surface != nil {
		s.unsubscribe = surface.OnScroll(s.handleScroll)
	}
}

// Unmount removes the scroll listener and discards the scroll state.
func (s *PageShell) Unmount() {
	if !s.mounted {
		return
	}
	s.mounted = false

	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.scrolled = false
}

func (s *PageShell) handleScroll(offset float64) {
	s.scrolled = IsScrolled(offset)
}

func (s *PageShell) Mounted() bool {
	return s.mounted
}

func (s *PageShell) Scrolled() bool {
	return s.scrolled
}

func (s *PageShell) Theme() Theme {
	return s.theme.Current()
}

func (s *PageShell) ThemeContext() *ThemeContext {
	return s.theme
}

// ToggleTheme flips the theme. A failed write is logged; the shell still
// shows the new theme.
func (s *PageShell) ToggleTheme() Theme {
	theme, err := s.theme.Toggle()
	if err != nil {
		logger.Error(err, "Failed to persist theme preference", map[string]interface{}{"theme": theme.String()})
	}
	return theme
}

func (s *PageShell) Menu() *MobileMenu {
	return &s.menu
}

// SelectEntry handles a click on a mobile panel entry: the panel closes and
// the selected entry is returned for navigation.
func (s *PageShell) SelectEntry(path string) (navigation.Item, bool) {
	s.menu.Select()
	return navigation.Find(s.entries, path)
}

func (s *PageShell) Entries() []navigation.Item {
	out := make([]navigation.Item, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *PageShell) Site() SiteInfo {
	return s.site
}

// RootClasses lists the classes currently set on the document root.
func (s *PageShell) RootClasses() []string {
	if lister, ok := s.theme.Root().(interface{ Classes() []string }); ok {
		return lister.Classes()
	}
	if s.theme.Root().HasClass(DarkClass) {
		return []string{DarkClass}
	}
	return []string{}
}
