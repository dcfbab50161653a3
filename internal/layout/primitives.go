package layout

import (
	"html/template"

	"altaviva-site/pkg/navigation"
)

// IconRenderer draws a glyph with the given CSS class.
type IconRenderer interface {
	Icon(glyph navigation.Icon, class string) template.HTML
}

type ButtonProps struct {
	ID      string
	Variant string
	Size    string
	Class   string
	Title   string
	// Action is the client action name wired to the button.
	Action  string
	Content template.HTML
}

// Button renders a clickable control.
type Button interface {
	Button(props ButtonProps) template.HTML
}

type PanelProps struct {
	ID    string
	Open  bool
	Side  string
	Class string
	Body  template.HTML
}

// Panel renders an overlay panel around the given body.
type Panel interface {
	Panel(props PanelProps) template.HTML
}

// Primitives bundles the UI collaborators a page shell draws with.
type Primitives struct {
	Icons   IconRenderer
	Buttons Button
	Panels  Panel
}
