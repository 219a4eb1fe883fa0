package models

import "gorm.io/datatypes"

// CaseStudy is a long-form write-up of a delivered project.
type CaseStudy struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"required"`
	Content     string   `json:"content"`
	CoverImage  string   `json:"coverImage"`
	Tech        []string `json:"tech"`
	ProjectLink string   `json:"projectLink,omitempty"`
	Problem     string   `json:"problem,omitempty"`
	Solution    string   `json:"solution,omitempty"`
}

func (c CaseStudy) RecordID() int64 { return c.ID }

// CaseStudyRow is a row of the case_studies table.
type CaseStudyRow struct {
	ID            int64                       `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Title         string                      `json:"title" gorm:"column:title;type:text;not null"`
	Description   *string                     `json:"description" gorm:"column:description;type:text"`
	Category      *string                     `json:"category" gorm:"column:category;type:text"`
	Content       *string                     `json:"content" gorm:"column:content;type:text"`
	CoverImageURL *string                     `json:"cover_image_url" gorm:"column:cover_image_url;type:text"`
	Tech          datatypes.JSONSlice[string] `json:"tech" gorm:"column:tech"`
	ProjectLink   *string                     `json:"project_link" gorm:"column:project_link;type:text"`
	Problem       *string                     `json:"problem" gorm:"column:problem;type:text"`
	Solution      *string                     `json:"solution" gorm:"column:solution;type:text"`
}

func (CaseStudyRow) TableName() string { return "case_studies" }

func CaseStudyFromRow(row CaseStudyRow) CaseStudy {
	return CaseStudy{
		ID:          row.ID,
		Title:       row.Title,
		Description: str(row.Description),
		Category:    str(row.Category),
		Content:     str(row.Content),
		CoverImage:  str(row.CoverImageURL),
		Tech:        techList(row.Tech),
		ProjectLink: str(row.ProjectLink),
		Problem:     str(row.Problem),
		Solution:    str(row.Solution),
	}
}

func CaseStudyToRow(c CaseStudy) CaseStudyRow {
	return CaseStudyRow{
		ID:            c.ID,
		Title:         c.Title,
		Description:   optional(c.Description),
		Category:      optional(c.Category),
		Content:       optional(c.Content),
		CoverImageURL: optional(c.CoverImage),
		Tech:          techColumn(c.Tech),
		ProjectLink:   optional(c.ProjectLink),
		Problem:       optional(c.Problem),
		Solution:      optional(c.Solution),
	}
}
