package navigation

import "strings"

// Icon names a glyph understood by the icon renderer.
type Icon string

const (
	IconHome      Icon = "home"
	IconPackage   Icon = "package"
	IconMapPin    Icon = "map-pin"
	IconLightbulb Icon = "lightbulb"
	IconInfo      Icon = "info"
	IconTarget    Icon = "target"
	IconPhone     Icon = "phone"
	IconMenu      Icon = "menu"
	IconClose     Icon = "x"
	IconPlane     Icon = "plane"
	IconFacebook  Icon = "facebook"
	IconInstagram Icon = "instagram"
	IconMail      Icon = "mail"
	IconMapPinned Icon = "map-pinned"
	IconClock     Icon = "clock"
)

// Item represents a navigation link that can be rendered in shared layouts.
type Item struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  Icon   `json:"icon"`
}

// QuickLinkCount is the number of leading entries repeated in the footer.
const QuickLinkCount = 5

// PageURL maps a logical page name to its route.
func PageURL(name string) string {
	name = strings.Trim(strings.TrimSpace(name), "/")
	return "/" + name
}

var entries = []Item{
	{Label: "Início", Path: PageURL("Home"), Icon: IconHome},
	{Label: "Pacotes", Path: PageURL("Pacotes"), Icon: IconPackage},
	{Label: "City Tours", Path: PageURL("CityTours"), Icon: IconMapPin},
	{Label: "Consultoria", Path: PageURL("Consultoria"), Icon: IconLightbulb},
	{Label: "Minhas Reservas", Path: PageURL("MyBookings"), Icon: IconPackage},
	{Label: "Sobre Nós", Path: PageURL("SobreNos"), Icon: IconInfo},
	{Label: "Missão e Valores", Path: PageURL("MissaoValores"), Icon: IconTarget},
	{Label: "Contato", Path: PageURL("Contato"), Icon: IconPhone},
}

// Entries returns a copy of the site navigation in display order.
func Entries() []Item {
	out := make([]Item, len(entries))
	copy(out, entries)
	return out
}

// QuickLinks returns the first n items, preserving order.
func QuickLinks(items []Item, n int) []Item {
	if n < 0 {
		n = 0
	}
	if n > len(items) {
		n = len(items)
	}
	out := make([]Item, n)
	copy(out, items[:n])
	return out
}

// IsActive reports whether the item targets exactly the given path.
func (i Item) IsActive(currentPath string) bool {
	return i.Path == currentPath
}

// Find returns the item whose path equals the given path.
func Find(items []Item, path string) (Item, bool) {
	for _, item := range items {
		if item.IsActive(path) {
			return item, true
		}
	}
	return Item{}, false
}
