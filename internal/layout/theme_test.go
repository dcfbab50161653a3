package layout

import (
	"errors"
	"testing"
)

type failingStorage struct {
	getErr error
	setErr error
	values map[string]string
}

func (f *failingStorage) Get(key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.values[key]
	if !ok {
		return "", ErrPreferenceNotFound
	}
	return value, nil
}

func (f *failingStorage) Set(key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.values == nil {
		f.values = make(map[string]string)
	}
	f.values[key] = value
	return nil
}

func TestParseTheme(t *testing.T) {
	cases := []struct {
		input   string
		want    Theme
		wantErr bool
	}{
		{input: "light", want: ThemeLight},
		{input: " DARK ", want: ThemeDark},
		{input: "sepia", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseTheme(tc.input)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownTheme) {
				t.Fatalf("ParseTheme(%q): expected ErrUnknownTheme, got %v", tc.input, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseTheme(%q) = %q, %v; want %q", tc.input, got, err, tc.want)
		}
	}
}

func TestThemeContextLoadDefaultsToLight(t *testing.T) {
	root := NewClassList()
	ctx := NewThemeContext(NewMemoryStorage(), root)

	theme, err := ctx.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if theme != ThemeLight {
		t.Fatalf("expected light theme, got %s", theme)
	}
	if root.HasClass(DarkClass) {
		t.Fatalf("expected dark class to be absent")
	}
}

func TestThemeContextLoadAppliesStoredDark(t *testing.T) {
	storage := NewMemoryStorage()
	_ = storage.Set(ThemeStorageKey, "dark")
	root := NewClassList()

	theme, _ := NewThemeContext(storage, root).Load()
	if theme != ThemeDark {
		t.Fatalf("expected dark theme, got %s", theme)
	}
	if !root.HasClass(DarkClass) {
		t.Fatalf("expected dark class on root")
	}
}

func TestThemeContextLoadIgnoresUnknownValue(t *testing.T) {
	storage := NewMemoryStorage()
	_ = storage.Set(ThemeStorageKey, "purple")

	theme, err := NewThemeContext(storage, nil).Load()
	if err != nil {
		t.Fatalf("expected unknown value to be treated as absent, got %v", err)
	}
	if theme != ThemeLight {
		t.Fatalf("expected light theme, got %s", theme)
	}
}

func TestThemeContextLoadMatchesStoredValueExactly(t *testing.T) {
	for _, value := range []string{"DARK", " dark", "Dark"} {
		storage := NewMemoryStorage()
		_ = storage.Set(ThemeStorageKey, value)
		root := NewClassList()

		theme, err := NewThemeContext(storage, root).Load()
		if err != nil {
			t.Fatalf("Load(%q) returned error: %v", value, err)
		}
		if theme != ThemeLight || root.HasClass(DarkClass) {
			t.Fatalf("stored %q: expected light without dark class, got %s", value, theme)
		}
	}
}

func TestThemeContextLoadReadsOnce(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := NewThemeContext(storage, nil)
	ctx.Load()

	_ = storage.Set(ThemeStorageKey, "dark")
	if theme, _ := ctx.Load(); theme != ThemeLight {
		t.Fatalf("expected second Load to keep the mounted value, got %s", theme)
	}
}

func TestThemeContextToggleRoundTrip(t *testing.T) {
	storage := NewMemoryStorage()
	root := NewClassList()
	ctx := NewThemeContext(storage, root)
	ctx.Load()

	theme, err := ctx.Toggle()
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if theme != ThemeDark {
		t.Fatalf("expected dark after first toggle, got %s", theme)
	}
	if stored, _ := storage.Get(ThemeStorageKey); stored != "dark" {
		t.Fatalf("expected stored dark, got %q", stored)
	}
	if !root.HasClass(DarkClass) {
		t.Fatalf("expected dark class after first toggle")
	}

	theme, _ = ctx.Toggle()
	if theme != ThemeLight {
		t.Fatalf("expected light after second toggle, got %s", theme)
	}
	if stored, _ := storage.Get(ThemeStorageKey); stored != "light" {
		t.Fatalf("expected stored light, got %q", stored)
	}
	if root.HasClass(DarkClass) {
		t.Fatalf("expected dark class removed after second toggle")
	}
}

func TestThemeContextStorageAndRootAgreeAfterToggles(t *testing.T) {
	storage := NewMemoryStorage()
	root := NewClassList("antialiased")
	ctx := NewThemeContext(storage, root)
	ctx.Load()

	for i := 0; i < 5; i++ {
		ctx.Toggle()
		stored, _ := storage.Get(ThemeStorageKey)
		if (stored == "dark") != root.HasClass(DarkClass) {
			t.Fatalf("iteration %d: stored %q disagrees with root classes %v", i, stored, root.Classes())
		}
		if !root.HasClass("antialiased") {
			t.Fatalf("expected unrelated root classes to be preserved")
		}
	}
}

func TestThemeContextReadFailureFallsBackToLight(t *testing.T) {
	boom := errors.New("storage unavailable")
	ctx := NewThemeContext(&failingStorage{getErr: boom}, nil)

	theme, err := ctx.Load()
	if !errors.Is(err, boom) {
		t.Fatalf("expected read error to be returned, got %v", err)
	}
	if theme != ThemeLight {
		t.Fatalf("expected light fallback, got %s", theme)
	}
}

func TestThemeContextWriteFailureStillAppliesRoot(t *testing.T) {
	boom := errors.New("read-only")
	root := NewClassList()
	ctx := NewThemeContext(&failingStorage{setErr: boom}, root)
	ctx.Load()

	theme, err := ctx.Toggle()
	if !errors.Is(err, boom) {
		t.Fatalf("expected write error, got %v", err)
	}
	if theme != ThemeDark || ctx.Current() != ThemeDark || !root.HasClass(DarkClass) {
		t.Fatalf("expected in-memory theme and root to follow the toggle")
	}
}

func TestThemeContextWithoutStorage(t *testing.T) {
	ctx := NewThemeContext(nil, nil)
	if theme, err := ctx.Load(); err != nil || theme != ThemeLight {
		t.Fatalf("expected light with nil storage, got %s, %v", theme, err)
	}
	if theme, err := ctx.Toggle(); err != nil || theme != ThemeDark {
		t.Fatalf("expected toggle to work in memory, got %s, %v", theme, err)
	}
}

func TestThemeContextSetRejectsUnknown(t *testing.T) {
	ctx := NewThemeContext(NewMemoryStorage(), nil)
	if err := ctx.Set(Theme("blue")); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
}

func TestClassList(t *testing.T) {
	list := NewClassList("b a", "c")
	list.ToggleClass("d", true)
	list.ToggleClass("a", false)

	if got := list.String(); got != "b c d" {
		t.Fatalf("unexpected classes %q", got)
	}
}
