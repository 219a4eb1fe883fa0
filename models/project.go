package models

import "gorm.io/datatypes"

// GalleryProject is a tilt card on the work gallery.
type GalleryProject struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Tech        []string `json:"tech"`
}

func (p GalleryProject) RecordID() int64 { return p.ID }

// ProjectRow is a row of the projects table.
type ProjectRow struct {
	ID          int64                       `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Title       string                      `json:"title" gorm:"column:title;type:text;not null"`
	Category    *string                     `json:"category" gorm:"column:category;type:text"`
	Description *string                     `json:"description" gorm:"column:description;type:text"`
	ImageURL    *string                     `json:"image_url" gorm:"column:image_url;type:text"`
	Tech        datatypes.JSONSlice[string] `json:"tech" gorm:"column:tech"`
}

func (ProjectRow) TableName() string { return "projects" }

func ProjectFromRow(row ProjectRow) GalleryProject {
	return GalleryProject{
		ID:          row.ID,
		Title:       row.Title,
		Category:    str(row.Category),
		Description: str(row.Description),
		Image:       str(row.ImageURL),
		Tech:        techList(row.Tech),
	}
}

func ProjectToRow(p GalleryProject) ProjectRow {
	return ProjectRow{
		ID:          p.ID,
		Title:       p.Title,
		Category:    optional(p.Category),
		Description: optional(p.Description),
		ImageURL:    optional(p.Image),
		Tech:        techColumn(p.Tech),
	}
}
