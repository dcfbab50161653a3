package ui

import (
	"html/template"
	"strings"

	"altaviva-site/internal/layout"
	"altaviva-site/pkg/navigation"
)

const (
	VariantDefault = "default"
	VariantGhost   = "ghost"
	VariantOutline = "outline"

	SizeDefault = "default"
	SizeIcon    = "icon"
	SizeSm      = "sm"
	SizeLg      = "lg"
)

func classNames(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, " ")
}

func attr(sb *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	sb.WriteString(` ` + name + `="`)
	sb.WriteString(template.HTMLEscapeString(value))
	sb.WriteString(`"`)
}

// Buttons renders layout buttons as native <button> elements.
type Buttons struct{}

func (Buttons) Button(props layout.ButtonProps) template.HTML {
	variant := props.Variant
	if variant == "" {
		variant = VariantDefault
	}
	size := props.Size
	if size == "" {
		size = SizeDefault
	}

	var sb strings.Builder
	sb.WriteString(`<button type="button"`)
	attr(&sb, "id", props.ID)
	attr(&sb, "class", classNames("btn", "btn--"+variant, "btn--"+size, props.Class))
	attr(&sb, "title", props.Title)
	attr(&sb, "aria-label", props.Title)
	attr(&sb, "data-action", props.Action)
	sb.WriteString(`>`)
	sb.WriteString(string(props.Content))
	sb.WriteString(`</button>`)
	return template.HTML(sb.String())
}

// Sheet renders a side panel with a backdrop and a close control.
type Sheet struct {
	Icons layout.IconRenderer
}

func (s Sheet) Panel(props layout.PanelProps) template.HTML {
	side := props.Side
	if side == "" {
		side = "right"
	}
	state := "closed"
	if props.Open {
		state = "open"
	}

	var sb strings.Builder
	sb.WriteString(`<div class="sheet-backdrop" data-action="close-menu" data-state="` + state + `"></div>`)
	sb.WriteString(`<aside role="dialog" aria-modal="true"`)
	attr(&sb, "id", props.ID)
	attr(&sb, "class", classNames("sheet", "sheet--"+side, props.Class))
	attr(&sb, "data-state", state)
	if !props.Open {
		sb.WriteString(` hidden`)
	}
	sb.WriteString(`>`)
	sb.WriteString(`<button type="button" class="sheet__close" data-action="close-menu" aria-label="Fechar">`)
	if s.Icons != nil {
		sb.WriteString(string(s.Icons.Icon(navigation.IconClose, "icon icon--md")))
	}
	sb.WriteString(`</button>`)
	sb.WriteString(string(props.Body))
	sb.WriteString(`</aside>`)
	return template.HTML(sb.String())
}

// Primitives returns the default primitive set for the page shell.
func Primitives() layout.Primitives {
	icons := Icons{}
	return layout.Primitives{
		Icons:   icons,
		Buttons: Buttons{},
		Panels:  Sheet{Icons: icons},
	}
}
