package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/paleotommytechy/portfolio/models"
	"github.com/paleotommytechy/portfolio/views"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ContactSender delivers contact form messages.
type ContactSender interface {
	SendContactMessage(ctx context.Context, msg models.ContactMessage) error
}

var formValidator = validator.New(validator.WithRequiredStructEnabled())

// pageHandler serves the public sections. Every request is a fresh mount:
// content is listed once and the fallback is used when nothing comes back.
type pageHandler struct {
	responder Responder
	logger    zerolog.Logger
	renderer  *views.Renderer
	sources   views.Sources
	mailer    ContactSender
	cvFile    string
}

func newPageHandler(renderer *views.Renderer, sources views.Sources, mailer ContactSender, cvFile string) pageHandler {
	logger := log.With().Str("handlerName", "pageHandler").Logger()

	return pageHandler{
		responder: NewResponder(logger, renderer),
		logger:    logger,
		renderer:  renderer,
		sources:   sources,
		mailer:    mailer,
		cvFile:    cvFile,
	}
}

func (h pageHandler) render(w http.ResponseWriter, status int, name string, section views.Section, title string, data any) {
	h.responder.WritePage(w, status, name, h.renderer.NewPage(section, title, data))
}

func (h pageHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, http.StatusOK, "home", views.SectionHome, "Home", models.ProfileImage)
	}
}

// notFound shows the home page for paths no section claims.
func (h pageHandler) notFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, http.StatusNotFound, "home", views.SectionForPath(r.URL.Path), "Home", models.ProfileImage)
	}
}

func (h pageHandler) about() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, http.StatusOK, "about", views.SectionAbout, "About", views.NewAboutData(models.ProfileSkills()))
	}
}

func (h pageHandler) services() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, http.StatusOK, "services", views.SectionServices, "Services", h.sources.LoadServices(r.Context()))
	}
}

func (h pageHandler) caseStudies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, http.StatusOK, "case_studies", views.SectionCaseStudies, "Case Studies", h.sources.LoadCaseStudies(r.Context()))
	}
}

func (h pageHandler) work() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := views.NewWorkData(h.sources.LoadProjects(r.Context()))
		h.render(w, http.StatusOK, "work", views.SectionWork, "Gallery", data)
	}
}

func (h pageHandler) testimonials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, http.StatusOK, "testimonials", views.SectionTestimonials, "Testimonials", h.sources.LoadTestimonials(r.Context()))
	}
}

func (h pageHandler) contact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := views.ContactData{Channels: models.ContactChannels()}
		h.render(w, http.StatusOK, "contact", views.SectionContact, "Contact", data)
	}
}

func (h pageHandler) sendContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := views.ContactData{Channels: models.ContactChannels()}
		if err := r.ParseForm(); err != nil {
			data.Error = "Your message could not be read. Please try again."
			h.render(w, http.StatusBadRequest, "contact", views.SectionContact, "Contact", data)
			return
		}

		msg := models.ContactMessage{
			Name:    strings.TrimSpace(r.PostForm.Get("name")),
			Email:   strings.TrimSpace(r.PostForm.Get("email")),
			Message: strings.TrimSpace(r.PostForm.Get("message")),
		}
		if err := formValidator.Struct(msg); err != nil {
			data.Form = msg
			data.Error = contactValidationMessage(err)
			h.render(w, http.StatusUnprocessableEntity, "contact", views.SectionContact, "Contact", data)
			return
		}

		if err := h.mailer.SendContactMessage(r.Context(), msg); err != nil {
			h.logger.Error().Err(err).Str("from", msg.Email).Msg("Failed to deliver contact message")
			data.Form = msg
			data.Error = "Your message could not be sent right now. Please reach out by email instead."
			h.render(w, http.StatusBadGateway, "contact", views.SectionContact, "Contact", data)
			return
		}

		data.Sent = true
		h.render(w, http.StatusOK, "contact", views.SectionContact, "Contact", data)
	}
}

func contactValidationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "email" {
			return "Please enter a valid email address."
		}
		return fe.Field() + " is required."
	}
	return "Please check the form and try again."
}

func (h pageHandler) cv() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.cvFile == "" {
			http.NotFound(w, r)
			return
		}
		if _, err := os.Stat(h.cvFile); err != nil {
			h.logger.Warn().Err(err).Str("path", h.cvFile).Msg("CV file unavailable")
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		http.ServeFile(w, r, h.cvFile)
	}
}
