package shared

import "github.com/rohanthewiz/element"

// Footer is the site footer.
type Footer struct{}

// Render implements element.Component
func (f Footer) Render(b *element.Builder) any {
	b.Footer("class", "site-footer").R(
		b.P().T("Prices are collected from Tesco, SuperValu, Dunnes, Lidl and Aldi and may change in store."),
		b.P("class", "copyright").T("Copyright &copy; 2026 ComparAid"),
	)
	return nil
}
