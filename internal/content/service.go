// Package content renders the markdown pages placed inside the page shell.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"altaviva-site/pkg/cache"
	"altaviva-site/pkg/logger"
	"altaviva-site/pkg/utils"
	"altaviva-site/pkg/validator"
)

//go:embed pages/*.md
var embedded embed.FS

var ErrPageNotFound = errors.New("page not found")

type Page struct {
	Name  string        `json:"name"`
	Title string        `json:"title"`
	HTML  template.HTML `json:"html"`
}

type Service struct {
	fsys  fs.FS
	md    goldmark.Markdown
	cache *cache.Cache

	mu    sync.RWMutex
	pages map[string]*Page
}

// DefaultFS returns the pages shipped with the binary, or dir when set.
func DefaultFS(dir string) (fs.FS, error) {
	if strings.TrimSpace(dir) != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("content directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("content path %s is not a directory", dir)
		}
		return os.DirFS(dir), nil
	}
	return fs.Sub(embedded, "pages")
}

func NewService(fsys fs.FS, c *cache.Cache) *Service {
	return &Service{
		fsys: fsys,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		cache: c,
		pages: make(map[string]*Page),
	}
}

// Page renders the named page, caching the result.
func (s *Service) Page(name string) (*Page, error) {
	if !validator.IsPagePath("/" + name) {
		return nil, fmt.Errorf("%w: %q", ErrPageNotFound, name)
	}

	s.mu.RLock()
	page, ok := s.pages[name]
	s.mu.RUnlock()
	if ok {
		return page, nil
	}

	if s.cache.Enabled() {
		var cached Page
		if err := s.cache.GetCachedPage(name, &cached); err == nil {
			s.store(&cached)
			return &cached, nil
		}
	}

	page, err := s.render(name)
	if err != nil {
		return nil, err
	}

	s.store(page)
	if err := s.cache.CachePage(name, page); err != nil {
		logger.Error(err, "Failed to cache page", map[string]interface{}{"page": name})
	}
	return page, nil
}

func (s *Service) store(page *Page) {
	s.mu.Lock()
	s.pages[page.Name] = page
	s.mu.Unlock()
}

func (s *Service) render(name string) (*Page, error) {
	source, err := fs.ReadFile(s.fsys, name+".md")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrPageNotFound, name)
		}
		return nil, fmt.Errorf("read page %s: %w", name, err)
	}

	var buf bytes.Buffer
	ctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	if err := s.md.Convert(source, &buf, parser.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("render page %s: %w", name, err)
	}

	return &Page{
		Name:  name,
		Title: extractTitle(string(source), name),
		HTML:  template.HTML(validator.SanitizeHTML(buf.String())),
	}, nil
}

// Names lists the available pages.
func (s *Service) Names() ([]string, error) {
	files, err := fs.Glob(s.fsys, "*.md")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, file := range files {
		names = append(names, strings.TrimSuffix(path.Base(file), ".md"))
	}
	sort.Strings(names)
	return names, nil
}

// Invalidate drops rendered pages so edits under CONTENT_DIR show up.
func (s *Service) Invalidate() error {
	s.mu.Lock()
	s.pages = make(map[string]*Page)
	s.mu.Unlock()
	return s.cache.InvalidatePagesCache()
}

// headingIDs gives headings ASCII anchors, numbering repeats.
type headingIDs struct {
	seen map[string]int
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{seen: make(map[string]int)}
}

func (h *headingIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	slug := utils.GenerateSlug(string(value))
	if slug == "" {
		slug = "secao"
	}
	id := slug
	if n := h.seen[slug]; n > 0 {
		id = fmt.Sprintf("%s-%d", slug, n)
	}
	h.seen[slug]++
	return []byte(id)
}

func (h *headingIDs) Put(value []byte) {
	h.seen[string(value)]++
}

func extractTitle(source, fallback string) string {
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return fallback
}
