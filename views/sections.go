package views

import "strings"

type Section string

const (
	SectionHome         Section = "home"
	SectionAbout        Section = "about"
	SectionServices     Section = "services"
	SectionCaseStudies  Section = "case-studies"
	SectionWork         Section = "work"
	SectionTestimonials Section = "testimonials"
	SectionContact      Section = "contact"
	SectionLogin        Section = "login"
	SectionAdmin        Section = "admin"
)

// NavItem is one entry of the top navigation.
type NavItem struct {
	Section Section
	Label   string
	Path    string
}

var desktopNav = []NavItem{
	{SectionHome, "Home", "/"},
	{SectionAbout, "About", "/about"},
	{SectionServices, "Services", "/services"},
	{SectionCaseStudies, "Case Studies", "/case-studies"},
	{SectionWork, "Gallery", "/work"},
	{SectionContact, "Contact", "/contact"},
}

// DesktopNav lists the desktop navigation entries.
func DesktopNav() []NavItem {
	return append([]NavItem(nil), desktopNav...)
}

// MobileNav is the desktop navigation plus the admin entry.
func MobileNav() []NavItem {
	return append(DesktopNav(), NavItem{SectionAdmin, "Admin", "/admin"})
}

// SectionForPath returns the navigation section a path belongs to. Unknown
// paths belong to home.
func SectionForPath(path string) Section {
	first := strings.Trim(path, "/")
	if i := strings.IndexByte(first, '/'); i >= 0 {
		first = first[:i]
	}

	switch s := Section(first); s {
	case SectionAbout, SectionServices, SectionCaseStudies, SectionWork,
		SectionTestimonials, SectionContact, SectionLogin, SectionAdmin:
		return s
	}
	return SectionHome
}
