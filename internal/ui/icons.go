// Package ui renders the icon, button and sheet primitives used by the page shell.
package ui

import (
	"html/template"
	"strings"

	"altaviva-site/pkg/navigation"
)

// Outline glyphs drawn on a 24x24 grid with a 2px stroke.
var glyphs = map[navigation.Icon][]string{
	navigation.IconHome: {
		`<path d="m3 9 9-7 9 7v11a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2z"/>`,
		`<polyline points="9 22 9 12 15 12 15 22"/>`,
	},
	navigation.IconPackage: {
		`<path d="M21 8 12 3 3 8v8l9 5 9-5z"/>`,
		`<path d="m3.3 7.6 8.7 5 8.7-5"/>`,
		`<path d="M12 22V12"/>`,
	},
	navigation.IconMapPin: {
		`<path d="M20 10c0 6-8 12-8 12s-8-6-8-12a8 8 0 0 1 16 0z"/>`,
		`<circle cx="12" cy="10" r="3"/>`,
	},
	navigation.IconLightbulb: {
		`<path d="M15 14c.2-1 .7-1.7 1.5-2.5A6 6 0 1 0 6 8c0 1.3.5 2.4 1.5 3.5.8.8 1.3 1.5 1.5 2.5"/>`,
		`<path d="M9 18h6"/>`,
		`<path d="M10 22h4"/>`,
	},
	navigation.IconInfo: {
		`<circle cx="12" cy="12" r="10"/>`,
		`<path d="M12 16v-4"/>`,
		`<path d="M12 8h.01"/>`,
	},
	navigation.IconTarget: {
		`<circle cx="12" cy="12" r="10"/>`,
		`<circle cx="12" cy="12" r="6"/>`,
		`<circle cx="12" cy="12" r="2"/>`,
	},
	navigation.IconPhone: {
		`<path d="M22 16.9v3a2 2 0 0 1-2.2 2 19.8 19.8 0 0 1-8.6-3.1 19.5 19.5 0 0 1-6-6A19.8 19.8 0 0 1 2.1 4.2 2 2 0 0 1 4.1 2h3a2 2 0 0 1 2 1.7c.1 1 .4 1.9.7 2.8a2 2 0 0 1-.5 2.1L8 9.9a16 16 0 0 0 6 6l1.3-1.3a2 2 0 0 1 2.1-.4c.9.3 1.8.6 2.8.7a2 2 0 0 1 1.7 2z"/>`,
	},
	navigation.IconMenu: {
		`<line x1="4" x2="20" y1="6" y2="6"/>`,
		`<line x1="4" x2="20" y1="12" y2="12"/>`,
		`<line x1="4" x2="20" y1="18" y2="18"/>`,
	},
	navigation.IconClose: {
		`<path d="M18 6 6 18"/>`,
		`<path d="m6 6 12 12"/>`,
	},
	navigation.IconPlane: {
		`<path d="M17.8 19.2 16 11l3.5-3.5C21 6 21.5 4 21 3c-1-.5-3 0-4.5 1.5L13 8 4.8 6.2c-.5-.1-.9.1-1.1.5l-.3.5c-.2.5-.1 1 .3 1.3L9 12l-2 3H4l-1 1 3 2 2 3 1-1v-3l3-2 3.5 5.3c.3.4.8.5 1.3.3l.5-.2c.4-.3.6-.7.5-1.2z"/>`,
	},
	navigation.IconFacebook: {
		`<path d="M18 2h-3a5 5 0 0 0-5 5v3H7v4h3v8h4v-8h3l1-4h-4V7a1 1 0 0 1 1-1h3z"/>`,
	},
	navigation.IconInstagram: {
		`<rect width="20" height="20" x="2" y="2" rx="5" ry="5"/>`,
		`<path d="M16 11.4A4 4 0 1 1 12.6 8 4 4 0 0 1 16 11.4z"/>`,
		`<line x1="17.5" x2="17.5" y1="6.5" y2="6.5"/>`,
	},
	navigation.IconMail: {
		`<rect width="20" height="16" x="2" y="4" rx="2"/>`,
		`<path d="m22 7-8.97 5.7a1.94 1.94 0 0 1-2.06 0L2 7"/>`,
	},
	navigation.IconMapPinned: {
		`<path d="M18 8c0 4.5-6 9-6 9s-6-4.5-6-9a6 6 0 0 1 12 0"/>`,
		`<circle cx="12" cy="8" r="2"/>`,
		`<path d="M8.8 13.9 3.9 15.5a1 1 0 0 0 0 1.9l7.4 3.3a2 2 0 0 0 1.4 0l7.4-3.3a1 1 0 0 0 0-1.9l-4.9-1.6"/>`,
	},
	navigation.IconClock: {
		`<circle cx="12" cy="12" r="10"/>`,
		`<polyline points="12 6 12 12 16 14"/>`,
	},
}

// Icons draws navigation glyphs as inline SVG.
type Icons struct{}

func (Icons) Icon(glyph navigation.Icon, class string) template.HTML {
	parts, ok := glyphs[glyph]
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<svg class="`)
	sb.WriteString(template.HTMLEscapeString(strings.TrimSpace("icon-" + string(glyph) + " " + class)))
	sb.WriteString(`" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true" xmlns="http://www.w3.org/2000/svg">`)
	for _, part := range parts {
		sb.WriteString(part)
	}
	sb.WriteString(`</svg>`)
	return template.HTML(sb.String())
}

// HasGlyph reports whether glyph can be drawn.
func HasGlyph(glyph navigation.Icon) bool {
	_, ok := glyphs[glyph]
	return ok
}
