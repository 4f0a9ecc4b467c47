package shared

import "github.com/rohanthewiz/element"

// NavLink is one entry in the site navigation.
type NavLink struct {
	Label string
	Href  string
}

// NavLinks appear in the desktop nav and the mobile menu.
var NavLinks = []NavLink{
	{"Home", "/"},
	{"Stores", "/stores"},
	{"Trends", "/trends"},
}

// SiteHeader is the sticky page header. It gains the "scrolled" class once
// the page scrolls past the shadow threshold; #mobileMenu is toggled by the
// menu button.
type SiteHeader struct {
	Brand string
}

// Render implements element.Component
func (h SiteHeader) Render(b *element.Builder) any {
	b.Header("class", "site-header", "id", "header").R(
		b.DivClass("header-inner").R(
			b.A("class", "logo", "href", "/").R(
				b.SpanClass("logo-icon").T("🛒"),
				b.SpanClass("logo-text").T(h.Brand),
			),
			b.Nav("class", "main-nav").R(
				element.ForEach(NavLinks, func(l NavLink) {
					b.A("href", l.Href).T(l.Label)
				}),
			),
			b.Button("class", "mobile-menu-btn", "type", "button", "aria-label", "Menu",
				"aria-controls", "mobileMenu", "onclick", "toggleMobileMenu()").T("☰"),
		),
		b.Nav("class", "mobile-menu", "id", "mobileMenu").R(
			element.ForEach(NavLinks, func(l NavLink) {
				b.A("href", l.Href).T(l.Label)
			}),
		),
	)
	return nil
}
