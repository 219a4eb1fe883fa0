package models

// Service is a card on the services page.
type Service struct {
	ID    int64  `json:"id"`
	Title string `json:"title" validate:"required"`
	Desc  string `json:"desc" validate:"required"`
	Icon  string `json:"icon,omitempty"`
}

func (s Service) RecordID() int64 { return s.ID }

// ServiceRow is a row of the services table.
type ServiceRow struct {
	ID          int64   `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Title       string  `json:"title" gorm:"column:title;type:text;not null"`
	Description *string `json:"description" gorm:"column:description;type:text"`
	Icon        *string `json:"icon" gorm:"column:icon;type:text"`
}

func (ServiceRow) TableName() string { return "services" }

func ServiceFromRow(row ServiceRow) Service {
	return Service{
		ID:    row.ID,
		Title: row.Title,
		Desc:  str(row.Description),
		Icon:  str(row.Icon),
	}
}

func ServiceToRow(s Service) ServiceRow {
	return ServiceRow{
		ID:          s.ID,
		Title:       s.Title,
		Description: optional(s.Desc),
		Icon:        optional(s.Icon),
	}
}
