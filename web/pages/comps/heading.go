package comps

import "github.com/rohanthewiz/element"

// Heading is the hero title block above the search form.
type Heading struct {
	Title    string
	Subtitle string
}

func (h Heading) Render(b *element.Builder) (x any) {
	b.DivClass("hero-heading").R(
		b.H1Class("hero-title").T(h.Title),
		b.Wrap(func() {
			if h.Subtitle != "" {
				b.PClass("hero-subtitle").T(h.Subtitle)
			}
		}),
	)
	return
}
