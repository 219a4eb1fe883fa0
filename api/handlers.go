package api

import (
	"github.com/paleotommytechy/portfolio/auth"
	"github.com/paleotommytechy/portfolio/models"
	"github.com/paleotommytechy/portfolio/views"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, guard *auth.Guard, settings siteSettings) *routeHandlers {
	sources := views.Sources{
		Services:     deps.Services,
		Projects:     deps.Projects,
		CaseStudies:  deps.CaseStudies,
		Testimonials: deps.Testimonials,
	}

	return &routeHandlers{
		pages:        newPageHandler(deps.Renderer, sources, deps.Mailer, settings.cvFile),
		login:        newLoginHandler(deps.Renderer, deps.Store, settings.secureCookies),
		admin:        newAdminHandler(deps.Renderer, deps.Registry, guard),
		services:     newContentHandler[models.Service]("services", deps.Services),
		projects:     newContentHandler[models.GalleryProject]("projects", deps.Projects),
		caseStudies:  newContentHandler[models.CaseStudy]("case-studies", deps.CaseStudies),
		testimonials: newContentHandler[models.Testimonial]("testimonials", deps.Testimonials),
	}
}
