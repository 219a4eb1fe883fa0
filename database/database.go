package database

import (
	"github.com/paleotommytechy/portfolio/models"
	"gorm.io/gorm"
)

type (
	ServiceTable     = Table[models.ServiceRow, models.Service]
	ProjectTable     = Table[models.ProjectRow, models.GalleryProject]
	CaseStudyTable   = Table[models.CaseStudyRow, models.CaseStudy]
	TestimonialTable = Table[models.TestimonialRow, models.Testimonial]
)

type Database struct {
	services     *ServiceTable
	projects     *ProjectTable
	caseStudies  *CaseStudyTable
	testimonials *TestimonialTable
}

// New initializes a new Database struct with each table using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		services: NewTable(db, Mapping[models.ServiceRow, models.Service]{
			ToLocal:  models.ServiceFromRow,
			ToRemote: models.ServiceToRow,
		}),
		projects: NewTable(db, Mapping[models.ProjectRow, models.GalleryProject]{
			ToLocal:  models.ProjectFromRow,
			ToRemote: models.ProjectToRow,
		}),
		caseStudies: NewTable(db, Mapping[models.CaseStudyRow, models.CaseStudy]{
			ToLocal:  models.CaseStudyFromRow,
			ToRemote: models.CaseStudyToRow,
		}),
		testimonials: NewTable(db, Mapping[models.TestimonialRow, models.Testimonial]{
			ToLocal:  models.TestimonialFromRow,
			ToRemote: models.TestimonialToRow,
		}),
	}
}

// Accessor methods for each table

func (d Database) Services() *ServiceTable {
	return d.services
}

func (d Database) Projects() *ProjectTable {
	return d.projects
}

func (d Database) CaseStudies() *CaseStudyTable {
	return d.caseStudies
}

func (d Database) Testimonials() *TestimonialTable {
	return d.testimonials
}
