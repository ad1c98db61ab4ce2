package models

import "time"

type Title struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:256;not null;uniqueIndex:idx_titles_name_category_year"`
	Description *string `json:"description,omitempty" gorm:"size:2000"`
	Year        int     `json:"year" gorm:"not null;uniqueIndex:idx_titles_name_category_year"`
	CategoryID  *int64  `json:"-" gorm:"uniqueIndex:idx_titles_name_category_year"`
	// Rating is the per-read AVG(score) over the title's reviews, nil when it has none.
	// Never persisted.
	Rating    *float64   `json:"rating,omitempty" gorm:"->;-:migration"`
	CreatedAt *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`

	// Associations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genres,omitempty" gorm:"many2many:title_genres;"`
}

func (Title) TableName() string {
	return "titles"
}
