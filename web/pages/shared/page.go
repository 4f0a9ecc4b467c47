// Package shared contains components used by every page.
package shared

// Page carries the data common to all pages. Embed it in a page struct to
// get the site header and footer.
type Page struct {
	Title string
}

// Header returns the site header for this page.
func (p Page) Header() SiteHeader {
	return SiteHeader{Brand: "ComparAid"}
}

// Footer returns the site footer.
func (p Page) Footer() Footer {
	return Footer{}
}
