package views

import (
	"context"
	"html/template"

	"github.com/paleotommytechy/portfolio/admin"
	"github.com/paleotommytechy/portfolio/models"
)

// Lister is the read side of a content gateway.
type Lister[T any] interface {
	ListAll(ctx context.Context) []T
}

// Sources are the content lists the public pages read.
type Sources struct {
	Services     Lister[models.Service]
	Projects     Lister[models.GalleryProject]
	CaseStudies  Lister[models.CaseStudy]
	Testimonials Lister[models.Testimonial]
}

// orFallback keeps the site from looking empty before content is seeded.
func orFallback[T any](items []T, fallback func() []T) []T {
	if len(items) > 0 {
		return items
	}
	return fallback()
}

func (s Sources) LoadServices(ctx context.Context) []models.Service {
	return orFallback(s.Services.ListAll(ctx), models.FallbackServices)
}

func (s Sources) LoadProjects(ctx context.Context) []models.GalleryProject {
	return orFallback(s.Projects.ListAll(ctx), models.FallbackProjects)
}

func (s Sources) LoadCaseStudies(ctx context.Context) []models.CaseStudy {
	return orFallback(s.CaseStudies.ListAll(ctx), models.FallbackCaseStudies)
}

func (s Sources) LoadTestimonials(ctx context.Context) []models.Testimonial {
	return orFallback(s.Testimonials.ListAll(ctx), models.FallbackTestimonials)
}

// Page is what the layout renders around a page body.
type Page struct {
	Section   Section
	Title     string
	Year      int
	Nav       []NavItem
	MobileNav []NavItem
	Data      any
}

type SkillGroup struct {
	Title string
	Items []string
}

type AboutData struct {
	Groups []SkillGroup
}

func NewAboutData(s models.Skills) AboutData {
	return AboutData{Groups: []SkillGroup{
		{"Frontend", s.Frontend},
		{"Backend", s.Backend},
		{"Embedded Systems", s.Embedded},
		{"Tools & Cloud", s.Tools},
		{"Soft Skills", s.Soft},
	}}
}

type WorkData struct {
	Projects []models.GalleryProject
	// Neutral is the resting card transform.
	Neutral template.CSS
}

func NewWorkData(projects []models.GalleryProject) WorkData {
	return WorkData{Projects: projects, Neutral: template.CSS(TiltTransform(NeutralTilt))}
}

// ContactData is the contact page and the state of its form.
type ContactData struct {
	Channels []models.ContactChannel
	Form     models.ContactMessage
	Sent     bool
	Error    string
}

// LoginData is the login page. A non-empty Email means someone is signed in.
type LoginData struct {
	Email     string
	FormEmail string
	Error     string
	Message   string
}

// AdminData is the dashboard with one tab active.
type AdminData struct {
	Email        string
	Tab          admin.Tab
	Tabs         []admin.Tab
	Error        string
	Services     admin.View[models.Service, admin.ServiceForm]
	Projects     admin.View[models.GalleryProject, admin.ProjectForm]
	CaseStudies  admin.View[models.CaseStudy, admin.CaseStudyForm]
	Testimonials admin.View[models.Testimonial, admin.TestimonialForm]
}

// NewAdminData snapshots every manager of d.
func NewAdminData(d *admin.Dashboard, tab admin.Tab, email string) AdminData {
	data := AdminData{Email: email, Tab: tab, Tabs: admin.Tabs}
	data.Services = d.Services.View()
	data.Projects = d.Projects.View()
	data.CaseStudies = d.CaseStudies.View()
	data.Testimonials = d.Testimonials.View()
	return data
}
