package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// setupPageRoutes registers the public site, login and the guarded dashboard.
func setupPageRoutes(r chi.Router, handlers *routeHandlers, sessions sessionMiddleware) {
	r.Get("/", handlers.pages.home())
	r.Get("/about", handlers.pages.about())
	r.Get("/services", handlers.pages.services())
	r.Get("/case-studies", handlers.pages.caseStudies())
	r.Get("/work", handlers.pages.work())
	r.Get("/testimonials", handlers.pages.testimonials())
	r.Get("/contact", handlers.pages.contact())
	r.Post("/contact", handlers.pages.sendContact())
	r.Get("/cv.pdf", handlers.pages.cv())

	r.Get("/login", handlers.login.showLogin())
	r.Post("/login", handlers.login.signIn())
	r.Post("/logout", handlers.login.signOut())

	r.Route("/admin", func(r chi.Router) {
		r.Use(sessions.requireSession)

		r.Get("/", handlers.admin.showDashboard())
		r.Get("/session/ws", handlers.admin.sessionEvents())
		r.Get("/{tab}", handlers.admin.showDashboard())
		r.Post("/{tab}", handlers.admin.submit())
		r.Post("/{tab}/cancel", handlers.admin.cancel())
		r.Post("/{tab}/{id}/edit", handlers.admin.startEdit())
		r.Post("/{tab}/{id}/delete", handlers.admin.deleteRow())
	})

	r.NotFound(handlers.pages.notFound())
}

// setupAPIRoutes registers the JSON content API. Writes need a verified
// bearer token.
func setupAPIRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	protected := r.With(authMiddleware.authenticate)
	handlers.services.mount(r, protected)
	handlers.projects.mount(r, protected)
	handlers.caseStudies.mount(r, protected)
	handlers.testimonials.mount(r, protected)
}

func healthHandler(responder Responder, startupTime time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, HealthResponse{
			Status:    "ok",
			StartedAt: startupTime.UTC().Format(time.RFC3339),
			Uptime:    time.Since(startupTime).Round(time.Second).String(),
		})
	}
}
