package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/paleotommytechy/portfolio/admin"
	"github.com/paleotommytechy/portfolio/auth"
	"github.com/paleotommytechy/portfolio/config"
	"github.com/paleotommytechy/portfolio/gateway"
	"github.com/paleotommytechy/portfolio/models"
	"github.com/paleotommytechy/portfolio/views"
	"github.com/rs/zerolog/log"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Renderer     *views.Renderer
	Services     *gateway.Content[models.Service]
	Projects     *gateway.Content[models.GalleryProject]
	CaseStudies  *gateway.Content[models.CaseStudy]
	Testimonials *gateway.Content[models.Testimonial]
	Store        *auth.Store
	Registry     *admin.Registry
	Verifier     *auth.Verifier
	Mailer       ContactSender
}

func (d Dependencies) validate() error {
	switch {
	case d.Renderer == nil:
		return errors.New("renderer is required")
	case d.Services == nil || d.Projects == nil || d.CaseStudies == nil || d.Testimonials == nil:
		return errors.New("all content gateways are required")
	case d.Store == nil || d.Registry == nil || d.Verifier == nil:
		return errors.New("session store, registry and verifier are required")
	case d.Mailer == nil:
		return errors.New("mailer is required")
	}
	return nil
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(c map[string]string, deps Dependencies) (Server, error) {
	if err := deps.validate(); err != nil {
		return Server{}, fmt.Errorf("new server: %w", err)
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	router := newRouter(deps, withConfig(c), withStartupTime(startupTime))

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

// siteSettings are the config values handlers read.
type siteSettings struct {
	secureCookies bool
	cvFile        string
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestIDMiddleware)
	chiRouter.Use(LogInternalServerErrors)
	if config.GetBool(router.config, "REQUEST_LOGGING", true) {
		chiRouter.Use(ColoredHTTPLoggingMiddleware)
	}

	// Without ACCEPTED_ORIGINS only same-origin callers are served.
	if acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS", nil); len(acceptedOrigins) > 0 {
		chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
		chiRouter.Use(corsMiddleware(acceptedOrigins))
	}

	settings := siteSettings{
		secureCookies: config.GetBool(router.config, "COOKIE_SECURE", false),
		cvFile:        config.GetString(router.config, "CV_FILE", "static/cv.pdf"),
	}

	guard := auth.NewGuard(deps.Store)
	handlers := initializeHandlers(deps, guard, settings)

	chiRouter.Get("/health", healthHandler(NewResponder(log.Logger, nil), router.startupTime))
	setupAPIRoutes(chiRouter, handlers, newAuthMiddleware(deps.Verifier))
	setupPageRoutes(chiRouter, handlers, newSessionMiddleware(guard, settings.secureCookies))

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
