package models

// Testimonial is a client quote.
type Testimonial struct {
	ID      int64  `json:"id"`
	Quote   string `json:"quote" validate:"required"`
	Author  string `json:"author" validate:"required"`
	Company string `json:"company" validate:"required"`
	Avatar  string `json:"avatar,omitempty"`
}

func (t Testimonial) RecordID() int64 { return t.ID }

// TestimonialRow is a row of the testimonials table.
type TestimonialRow struct {
	ID        int64   `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Quote     string  `json:"quote" gorm:"column:quote;type:text;not null"`
	Author    string  `json:"author" gorm:"column:author;type:text;not null"`
	Company   *string `json:"company" gorm:"column:company;type:text"`
	AvatarURL *string `json:"avatar_url" gorm:"column:avatar_url;type:text"`
}

func (TestimonialRow) TableName() string { return "testimonials" }

func TestimonialFromRow(row TestimonialRow) Testimonial {
	return Testimonial{
		ID:      row.ID,
		Quote:   row.Quote,
		Author:  row.Author,
		Company: str(row.Company),
		Avatar:  str(row.AvatarURL),
	}
}

func TestimonialToRow(t Testimonial) TestimonialRow {
	return TestimonialRow{
		ID:        t.ID,
		Quote:     t.Quote,
		Author:    t.Author,
		Company:   optional(t.Company),
		AvatarURL: optional(t.Avatar),
	}
}
