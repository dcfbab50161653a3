package layout

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"altaviva-site/pkg/logger"
	"altaviva-site/pkg/navigation"
)

type BrandView struct {
	Name    string
	Tagline string
	Logo    string
	Home    string
}

type LinkView struct {
	Label  string
	Path   string
	Active bool
	Class  string
	Icon   template.HTML
}

type NavBarView struct {
	Class       string
	Scrolled    bool
	Brand       BrandView
	Links       []LinkView
	ThemeToggle template.HTML
	MenuTrigger template.HTML
}

type MobilePanelView struct {
	Open  bool
	Links []LinkView
	HTML  template.HTML
}

type ContactView struct {
	Address     []string
	AddressIcon template.HTML
	Phone       string
	PhoneIcon   template.HTML
	Email       string
	EmailIcon   template.HTML
	Hours       []string
	HoursIcon   template.HTML
}

type SocialView struct {
	Name   string
	URL    string
	Class  string
	Target string
	Rel    string
	Icon   template.HTML
}

type FooterView struct {
	Brand      BrandView
	About      string
	QuickLinks []LinkView
	Contact    ContactView
	Social     []SocialView
	Follow     string
	Year       int
	Copyright  string
	Credits    string
}

// View is everything the shell template needs for one render.
type View struct {
	Theme     Theme
	RootClass string
	Nav       NavBarView
	Mobile    MobilePanelView
	Footer    FooterView
	Content   template.HTML
}

const (
	navbarClass         = "navbar"
	navbarScrolledClass = "navbar--scrolled"
	navLinkClass        = "nav-link"
	activeClass         = "active"
	mobileLinkClass     = "mobile-link"
	mobileActiveClass   = "mobile-link--active"
	footerLinkClass     = "footer-link"
)

// NavbarClass returns the navbar classes for the given scroll state.
func NavbarClass(scrolled bool) string {
	if scrolled {
		return navbarClass + " " + navbarScrolledClass
	}
	return navbarClass
}

// Render builds the view for the given path, wrapping content.
func (s *PageShell) Render(currentPath string, content template.HTML) View {
	brand := BrandView{
		Name:    s.site.Name,
		Tagline: s.site.Tagline,
		Logo:    s.site.Logo,
		Home:    navigation.PageURL("Home"),
	}

	theme := s.theme.Current()

	return View{
		Theme:     theme,
		RootClass: strings.Join(s.RootClasses(), " "),
		Nav: NavBarView{
			Class:       NavbarClass(s.scrolled),
			Scrolled:    s.scrolled,
			Brand:       brand,
			Links:       s.desktopLinks(currentPath),
			ThemeToggle: s.themeToggle(theme),
			MenuTrigger: s.menuTrigger(),
		},
		Mobile:  s.mobilePanel(brand, currentPath),
		Footer:  s.footer(brand),
		Content: content,
	}
}

func (s *PageShell) desktopLinks(currentPath string) []LinkView {
	links := make([]LinkView, 0, len(s.entries))
	for _, entry := range s.entries {
		active := entry.IsActive(currentPath)
		class := navLinkClass
		if active {
			class += " " + activeClass
		}
		links = append(links, LinkView{
			Label:  entry.Label,
			Path:   entry.Path,
			Active: active,
			Class:  class,
		})
	}
	return links
}

func (s *PageShell) mobileLinks(currentPath string) []LinkView {
	links := make([]LinkView, 0, len(s.entries))
	for _, entry := range s.entries {
		active := entry.IsActive(currentPath)
		class := mobileLinkClass
		if active {
			class += " " + mobileActiveClass
		}
		links = append(links, LinkView{
			Label:  entry.Label,
			Path:   entry.Path,
			Active: active,
			Class:  class,
			Icon:   s.primitives.Icons.Icon(entry.Icon, "icon icon--md"),
		})
	}
	return links
}

func (s *PageShell) themeToggle(theme Theme) template.HTML {
	return s.primitives.Buttons.Button(ButtonProps{
		ID:      "theme-toggle",
		Variant: "ghost",
		Size:    "icon",
		Class:   "plane-toggle",
		Title:   "Alternar tema",
		Action:  "toggle-theme",
		Content: s.primitives.Icons.Icon(navigation.IconPlane, "icon icon--md plane--"+theme.String()),
	})
}

func (s *PageShell) menuTrigger() template.HTML {
	return s.primitives.Buttons.Button(ButtonProps{
		ID:      "menu-trigger",
		Variant: "ghost",
		Size:    "icon",
		Class:   "menu-trigger",
		Title:   "Menu",
		Action:  "open-menu",
		Content: s.primitives.Icons.Icon(navigation.IconMenu, "icon icon--lg"),
	})
}

var panelBodyTemplate = template.Must(template.New("mobile-panel").Parse(
	`<div class="mobile-panel__header">` +
		`<img src="{{.Brand.Logo}}" alt="{{.Brand.Name}}" class="mobile-panel__logo">` +
		`<div><h2 class="gradient-text">{{.Brand.Name}}</h2><p class="muted">Menu</p></div>` +
		`</div>` +
		`<nav class="mobile-panel__links">{{range .Links}}` +
		`<a href="{{.Path}}" class="{{.Class}}" data-action="select" data-path="{{.Path}}">{{.Icon}}<span>{{.Label}}</span></a>` +
		`{{end}}</nav>`,
))

func (s *PageShell) mobilePanel(brand BrandView, currentPath string) MobilePanelView {
	links := s.mobileLinks(currentPath)

	var body bytes.Buffer
	if err := panelBodyTemplate.Execute(&body, struct {
		Brand BrandView
		Links []LinkView
	}{Brand: brand, Links: links}); err != nil {
		logger.Error(err, "Failed to render mobile panel", map[string]interface{}{"path": currentPath})
		body.Reset()
	}

	open := s.menu.IsOpen()
	return MobilePanelView{
		Open:  open,
		Links: links,
		HTML: s.primitives.Panels.Panel(PanelProps{
			ID:    "mobile-menu",
			Open:  open,
			Side:  "right",
			Class: "mobile-panel",
			Body:  template.HTML(body.String()),
		}),
	}
}

func (s *PageShell) footer(brand BrandView) FooterView {
	quick := navigation.QuickLinks(s.entries, navigation.QuickLinkCount)
	links := make([]LinkView, 0, len(quick))
	for _, entry := range quick {
		links = append(links, LinkView{
			Label: entry.Label,
			Path:  entry.Path,
			Class: footerLinkClass,
			Icon:  s.primitives.Icons.Icon(entry.Icon, "icon icon--sm"),
		})
	}

	social := make([]SocialView, 0, len(s.site.Social))
	for _, link := range s.site.Social {
		social = append(social, SocialView{
			Name:   link.Name,
			URL:    link.URL,
			Class:  "social " + link.Class,
			Target: "_blank",
			Rel:    "noopener noreferrer",
			Icon:   s.primitives.Icons.Icon(link.Icon, "icon icon--md"),
		})
	}

	icons := s.primitives.Icons
	year := s.clock().Year()

	return FooterView{
		Brand:      brand,
		About:      s.site.About,
		QuickLinks: links,
		Contact: ContactView{
			Address:     s.site.Contact.Address,
			AddressIcon: icons.Icon(navigation.IconMapPinned, "icon icon--md contact--address"),
			Phone:       s.site.Contact.Phone,
			PhoneIcon:   icons.Icon(navigation.IconPhone, "icon icon--md contact--phone"),
			Email:       s.site.Contact.Email,
			EmailIcon:   icons.Icon(navigation.IconMail, "icon icon--md contact--email"),
			Hours:       s.site.Contact.Hours,
			HoursIcon:   icons.Icon(navigation.IconClock, "icon icon--md contact--hours"),
		},
		Social:    social,
		Follow:    s.site.Follow,
		Year:      year,
		Copyright: fmt.Sprintf("© %d %s Todos os direitos reservados.", year, s.site.Company),
		Credits:   s.site.Credits,
	}
}

type textPrimitives struct{}

func (textPrimitives) Icon(navigation.Icon, string) template.HTML {
	return ""
}

func (textPrimitives) Button(props ButtonProps) template.HTML {
	return template.HTML(`<button type="button" title="` + template.HTMLEscapeString(props.Title) + `">` + string(props.Content) + `</button>`)
}

func (textPrimitives) Panel(props PanelProps) template.HTML {
	return props.Body
}

func withFallbacks(p Primitives) Primitives {
	if p.Icons == nil {
		p.Icons = textPrimitives{}
	}
	if p.Buttons == nil {
		p.Buttons = textPrimitives{}
	}
	if p.Panels == nil {
		p.Panels = textPrimitives{}
	}
	return p
}
