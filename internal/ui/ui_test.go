package ui

import (
	"html/template"
	"strings"
	"testing"

	"altaviva-site/internal/layout"
	"altaviva-site/pkg/navigation"
)

func TestEveryNavigationIconHasGlyph(t *testing.T) {
	for _, entry := range navigation.Entries() {
		if !HasGlyph(entry.Icon) {
			t.Fatalf("missing glyph for %s (%s)", entry.Label, entry.Icon)
		}
	}
	for _, icon := range []navigation.Icon{navigation.IconPlane, navigation.IconMenu, navigation.IconClose, navigation.IconMail, navigation.IconClock} {
		if !HasGlyph(icon) {
			t.Fatalf("missing glyph %s", icon)
		}
	}
}

func TestIconsRenderSVGWithClass(t *testing.T) {
	out := string(Icons{}.Icon(navigation.IconPlane, "icon plane--dark"))
	if !strings.HasPrefix(out, "<svg") || !strings.Contains(out, `class="icon-plane icon plane--dark"`) {
		t.Fatalf("unexpected icon markup %s", out)
	}
	if got := (Icons{}).Icon(navigation.Icon("unknown"), ""); got != "" {
		t.Fatalf("expected empty markup for unknown glyph, got %s", got)
	}
}

func TestButtonEscapesAttributes(t *testing.T) {
	out := string(Buttons{}.Button(layout.ButtonProps{
		ID:      "theme-toggle",
		Variant: VariantGhost,
		Size:    SizeIcon,
		Title:   `"quoted"`,
		Action:  "toggle-theme",
		Content: template.HTML("<span>x</span>"),
	}))

	for _, want := range []string{
		`id="theme-toggle"`,
		`class="btn btn--ghost btn--icon"`,
		`data-action="toggle-theme"`,
		`title="&#34;quoted&#34;"`,
		`<span>x</span>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestSheetReflectsOpenState(t *testing.T) {
	sheet := Sheet{Icons: Icons{}}

	closed := string(sheet.Panel(layout.PanelProps{ID: "mobile-menu", Body: "<nav></nav>"}))
	if !strings.Contains(closed, `data-state="closed"`) || !strings.Contains(closed, " hidden") {
		t.Fatalf("expected closed sheet, got %s", closed)
	}
	if !strings.Contains(closed, "sheet--right") {
		t.Fatalf("expected default right side, got %s", closed)
	}

	open := string(sheet.Panel(layout.PanelProps{ID: "mobile-menu", Open: true, Side: "left", Body: "<nav></nav>"}))
	if strings.Contains(open, " hidden") || !strings.Contains(open, `data-state="open"`) {
		t.Fatalf("expected open sheet, got %s", open)
	}
	if !strings.Contains(open, `data-action="close-menu"`) || !strings.Contains(open, "<nav></nav>") {
		t.Fatalf("expected close control and body, got %s", open)
	}
}

func TestPrimitivesDriveShellRender(t *testing.T) {
	shell := layout.NewPageShell(layout.Options{Primitives: Primitives()})
	view := shell.Render("/Home", "")

	if !strings.Contains(string(view.Nav.ThemeToggle), "<svg") {
		t.Fatalf("expected theme toggle to contain svg icon")
	}
	if !strings.Contains(string(view.Mobile.HTML), `id="mobile-menu"`) {
		t.Fatalf("expected mobile panel rendered through sheet")
	}
}
