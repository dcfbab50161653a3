package layout

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Theme is the persisted display mode.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	// ThemeStorageKey is the storage key holding the theme preference.
	ThemeStorageKey = "theme"
	// DarkClass is toggled on the document root while the dark theme is active.
	DarkClass = "dark"
)

var (
	ErrUnknownTheme       = errors.New("unknown theme")
	ErrPreferenceNotFound = errors.New("preference not found")
)

// ParseTheme accepts "light" or "dark" in any case. It parses API input;
// stored values are matched exactly.
func ParseTheme(value string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, value)
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) String() string {
	return string(t)
}

// Storage is a key/value store for visitor preferences. Get returns
// ErrPreferenceNotFound when the key has never been written.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// DocumentRoot is the class list of the page root element.
type DocumentRoot interface {
	ToggleClass(name string, force bool)
	HasClass(name string) bool
}

// ClassList is an in-memory DocumentRoot.
type ClassList struct {
	classes map[string]struct{}
}

func NewClassList(initial ...string) *ClassList {
	l := &ClassList{classes: make(map[string]struct{})}
	for _, name := range initial {
		for _, field := range strings.Fields(name) {
			l.classes[field] = struct{}{}
		}
	}
	return l
}

func (l *ClassList) ToggleClass(name string, force bool) {
	if force {
		l.classes[name] = struct{}{}
		return
	}
	delete(l.classes, name)
}

func (l *ClassList) HasClass(name string) bool {
	_, ok := l.classes[name]
	return ok
}

// Classes returns the class names sorted alphabetically.
func (l *ClassList) Classes() []string {
	out := make([]string, 0, len(l.classes))
	for name := range l.classes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (l *ClassList) String() string {
	return strings.Join(l.Classes(), " ")
}

// ThemeContext owns the theme preference of one page shell. It keeps the
// stored value and the root class list in agreement.
type ThemeContext struct {
	storage Storage
	root    DocumentRoot
	current Theme
	loaded  bool
}

// NewThemeContext builds a context over the given storage and root. A nil
// storage leaves the preference in memory only.
func NewThemeContext(storage Storage, root DocumentRoot) *ThemeContext {
	if root == nil {
		root = NewClassList()
	}
	return &ThemeContext{storage: storage, root: root, current: ThemeLight}
}

// Load reads the stored preference once and applies it to the root.
// Missing or unreadable values fall back to light; the read error, if any,
// is returned alongside the applied theme.
func (t *ThemeContext) Load() (Theme, error) {
	if t.loaded {
		return t.current, nil
	}
	t.loaded = true

	theme, err := t.read()
	t.current = theme
	t.apply()
	return theme, err
}

func (t *ThemeContext) read() (Theme, error) {
	if t.storage == nil {
		return ThemeLight, nil
	}

	value, err := t.storage.Get(ThemeStorageKey)
	if err != nil {
		if errors.Is(err, ErrPreferenceNotFound) {
			return ThemeLight, nil
		}
		return ThemeLight, fmt.Errorf("read theme preference: %w", err)
	}

	// Stored values must match exactly; anything else is treated as absent.
	if Theme(value) == ThemeDark {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}

// Toggle flips the theme, persists it and updates the root class. The
// in-memory theme and root class change even if the write fails.
func (t *ThemeContext) Toggle() (Theme, error) {
	next := t.current.Opposite()
	return next, t.Set(next)
}

// Set stores and applies the given theme.
func (t *ThemeContext) Set(theme Theme) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, string(theme))
	}

	t.loaded = true
	t.current = theme
	t.apply()

	if t.storage == nil {
		return nil
	}
	if err := t.storage.Set(ThemeStorageKey, theme.String()); err != nil {
		return fmt.Errorf("write theme preference: %w", err)
	}
	return nil
}

func (t *ThemeContext) Current() Theme {
	return t.current
}

func (t *ThemeContext) Root() DocumentRoot {
	return t.root
}

func (t *ThemeContext) apply() {
	t.root.ToggleClass(DarkClass, t.current == ThemeDark)
}

// MemoryStorage is a map-backed Storage.
type MemoryStorage struct {
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", ErrPreferenceNotFound
	}
	return value, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.values[key] = value
	return nil
}
