package api

import "github.com/paleotommytechy/portfolio/models"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	pages        pageHandler
	login        loginHandler
	admin        adminHandler
	services     contentHandler[models.Service]
	projects     contentHandler[models.GalleryProject]
	caseStudies  contentHandler[models.CaseStudy]
	testimonials contentHandler[models.Testimonial]
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

// ListResponse is the body of GET /api/{kind}.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	StartedAt string `json:"startedAt"`
	Uptime    string `json:"uptime"`
}
