package models

// explicit join model: titles own their genre links (deleted with the title),
// while deleting a genre only nulls genre_id and never touches the title
type TitleGenre struct {
	ID      int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID int64  `json:"title_id" gorm:"index;not null"`
	GenreID *int64 `json:"genre_id" gorm:"index"`

	Title Title  `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Genre *Genre `json:"-" gorm:"constraint:OnDelete:SET NULL;"`
}

func (TitleGenre) TableName() string {
	return "title_genres"
}
