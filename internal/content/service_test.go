package content

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"altaviva-site/pkg/navigation"
)

func TestEmbeddedPagesCoverNavigation(t *testing.T) {
	fsys, err := DefaultFS("")
	if err != nil {
		t.Fatalf("DefaultFS returned error: %v", err)
	}
	service := NewService(fsys, nil)

	for _, entry := range navigation.Entries() {
		name := strings.TrimPrefix(entry.Path, "/")
		page, err := service.Page(name)
		if err != nil {
			t.Fatalf("expected page for %s, got %v", entry.Path, err)
		}
		if page.Title == "" || page.HTML == "" {
			t.Fatalf("expected rendered content for %s", entry.Path)
		}
	}
}

func TestPageRendersAndSanitizesMarkdown(t *testing.T) {
	fsys := fstest.MapFS{
		"Sample.md": {Data: []byte("# Título\n\nTexto com **destaque**.\n\n<script>alert(1)</script>\n")},
	}
	service := NewService(fsys, nil)

	page, err := service.Page("Sample")
	if err != nil {
		t.Fatalf("Page returned error: %v", err)
	}
	if page.Title != "Título" {
		t.Fatalf("expected title from heading, got %q", page.Title)
	}
	html := string(page.HTML)
	if !strings.Contains(html, "<strong>destaque</strong>") {
		t.Fatalf("expected markdown emphasis rendered, got %s", html)
	}
	if strings.Contains(html, "<script") {
		t.Fatalf("expected script stripped, got %s", html)
	}
}

func TestPageUnknownName(t *testing.T) {
	service := NewService(fstest.MapFS{}, nil)

	for _, name := range []string{"Missing", "../etc/passwd", "a/b"} {
		if _, err := service.Page(name); !errors.Is(err, ErrPageNotFound) {
			t.Fatalf("expected ErrPageNotFound for %q, got %v", name, err)
		}
	}
}

func TestPageIsCachedUntilInvalidated(t *testing.T) {
	fsys := fstest.MapFS{"Home.md": {Data: []byte("# Antes\n")}}
	service := NewService(fsys, nil)

	if _, err := service.Page("Home"); err != nil {
		t.Fatalf("Page returned error: %v", err)
	}
	fsys["Home.md"] = &fstest.MapFile{Data: []byte("# Depois\n")}

	page, _ := service.Page("Home")
	if page.Title != "Antes" {
		t.Fatalf("expected cached title, got %q", page.Title)
	}

	if err := service.Invalidate(); err != nil {
		t.Fatalf("Invalidate returned error: %v", err)
	}
	page, _ = service.Page("Home")
	if page.Title != "Depois" {
		t.Fatalf("expected fresh title after invalidation, got %q", page.Title)
	}
}

func TestNamesAreSorted(t *testing.T) {
	service := NewService(fstest.MapFS{
		"Sobre.md":  {Data: []byte("# Sobre\n")},
		"Home.md":   {Data: []byte("# Home\n")},
		"notes.txt": {Data: []byte("ignored")},
	}, nil)

	names, err := service.Names()
	if err != nil {
		t.Fatalf("Names returned error: %v", err)
	}
	if len(names) != 2 || names[0] != "Home" || names[1] != "Sobre" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestDefaultFSRejectsMissingDirectory(t *testing.T) {
	if _, err := DefaultFS(t.TempDir() + "/missing"); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestHeadingAnchorsAreASCII(t *testing.T) {
	fsys := fstest.MapFS{
		"Valores.md": {Data: []byte("# Missão e Valores\n\n## Missão\n\n## Missão\n")},
	}
	service := NewService(fsys, nil)

	page, err := service.Page("Valores")
	if err != nil {
		t.Fatalf("Page returned error: %v", err)
	}
	html := string(page.HTML)
	for _, id := range []string{`id="missao-e-valores"`, `id="missao"`, `id="missao-1"`} {
		if !strings.Contains(html, id) {
			t.Fatalf("expected %s in %s", id, html)
		}
	}
}
