package admin

import (
	"net/url"
	"strings"

	"github.com/paleotommytechy/portfolio/models"
)

type ServiceForm struct {
	Title string `validate:"required"`
	Desc  string `validate:"required"`
	Icon  string
}

type ProjectForm struct {
	Title       string `validate:"required"`
	Category    string `validate:"required"`
	Description string
	Image       string
	Tech        string
}

type CaseStudyForm struct {
	Title       string `validate:"required"`
	Category    string `validate:"required"`
	Description string
	Content     string
	CoverImage  string
	Tech        string
	ProjectLink string
	Problem     string
	Solution    string
}

type TestimonialForm struct {
	Quote   string `validate:"required"`
	Author  string `validate:"required"`
	Company string `validate:"required"`
}

func field(v url.Values, name string) string {
	return strings.TrimSpace(v.Get(name))
}

func ParseServiceForm(v url.Values) ServiceForm {
	return ServiceForm{Title: field(v, "title"), Desc: field(v, "desc"), Icon: field(v, "icon")}
}

func ParseProjectForm(v url.Values) ProjectForm {
	return ProjectForm{
		Title:       field(v, "title"),
		Category:    field(v, "category"),
		Description: field(v, "description"),
		Image:       field(v, "image"),
		Tech:        field(v, "tech"),
	}
}

func ParseCaseStudyForm(v url.Values) CaseStudyForm {
	return CaseStudyForm{
		Title:       field(v, "title"),
		Category:    field(v, "category"),
		Description: field(v, "description"),
		Content:     field(v, "content"),
		CoverImage:  field(v, "coverImage"),
		Tech:        field(v, "tech"),
		ProjectLink: field(v, "projectLink"),
		Problem:     field(v, "problem"),
		Solution:    field(v, "solution"),
	}
}

func ParseTestimonialForm(v url.Values) TestimonialForm {
	return TestimonialForm{Quote: field(v, "quote"), Author: field(v, "author"), Company: field(v, "company")}
}

// keepImage picks the uploaded URL, then the typed URL, then the image the
// edit target already had.
func keepImage(uploaded, typed string, current func() string) string {
	switch {
	case uploaded != "":
		return uploaded
	case typed != "":
		return typed
	case current != nil:
		return current()
	}
	return ""
}

var ServiceKind = Kind[models.Service, ServiceForm]{
	Name: "services",
	ToForm: func(s models.Service) ServiceForm {
		return ServiceForm{Title: s.Title, Desc: s.Desc, Icon: s.Icon}
	},
	Build: func(f ServiceForm, _ *models.Service, _ string) models.Service {
		return models.Service{Title: f.Title, Desc: f.Desc, Icon: f.Icon}
	},
}

var ProjectKind = Kind[models.GalleryProject, ProjectForm]{
	Name:        "projects",
	Folder:      "gallery",
	UploadAlert: "Failed to upload image",
	ToForm: func(p models.GalleryProject) ProjectForm {
		return ProjectForm{
			Title:       p.Title,
			Category:    p.Category,
			Description: p.Description,
			Image:       p.Image,
			Tech:        models.JoinTech(p.Tech),
		}
	},
	Build: func(f ProjectForm, target *models.GalleryProject, uploaded string) models.GalleryProject {
		var current func() string
		if target != nil {
			current = func() string { return target.Image }
		}
		return models.GalleryProject{
			Title:       f.Title,
			Category:    f.Category,
			Description: f.Description,
			Image:       keepImage(uploaded, f.Image, current),
			Tech:        models.SplitTech(f.Tech),
		}
	},
}

var CaseStudyKind = Kind[models.CaseStudy, CaseStudyForm]{
	Name:        "case_studies",
	Folder:      "case-studies",
	UploadAlert: "Failed to upload cover image",
	ToForm: func(c models.CaseStudy) CaseStudyForm {
		return CaseStudyForm{
			Title:       c.Title,
			Category:    c.Category,
			Description: c.Description,
			Content:     c.Content,
			CoverImage:  c.CoverImage,
			Tech:        models.JoinTech(c.Tech),
			ProjectLink: c.ProjectLink,
			Problem:     c.Problem,
			Solution:    c.Solution,
		}
	},
	Build: func(f CaseStudyForm, target *models.CaseStudy, uploaded string) models.CaseStudy {
		var current func() string
		if target != nil {
			current = func() string { return target.CoverImage }
		}
		return models.CaseStudy{
			Title:       f.Title,
			Category:    f.Category,
			Description: f.Description,
			Content:     f.Content,
			CoverImage:  keepImage(uploaded, f.CoverImage, current),
			Tech:        models.SplitTech(f.Tech),
			ProjectLink: f.ProjectLink,
			Problem:     f.Problem,
			Solution:    f.Solution,
		}
	},
}

var TestimonialKind = Kind[models.Testimonial, TestimonialForm]{
	Name:        "testimonials",
	Folder:      "testimonials",
	UploadAlert: "Failed to upload avatar",
	ToForm: func(t models.Testimonial) TestimonialForm {
		return TestimonialForm{Quote: t.Quote, Author: t.Author, Company: t.Company}
	},
	Build: func(f TestimonialForm, target *models.Testimonial, uploaded string) models.Testimonial {
		var current func() string
		if target != nil {
			current = func() string { return target.Avatar }
		}
		return models.Testimonial{
			Quote:   f.Quote,
			Author:  f.Author,
			Company: f.Company,
			Avatar:  keepImage(uploaded, "", current),
		}
	},
}
