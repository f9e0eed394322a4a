package models

import (
	"time"
)

type Book struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Title    string `gorm:"type:varchar(255);not null" json:"title"`
	Summary  string `gorm:"type:text;not null" json:"summary"`
	ISBN     string `gorm:"type:varchar(30);not null" json:"isbn"`
	AuthorID string `gorm:"type:uuid;not null;index" json:"author_id"`

	// Foreign key relationships
	Author Author  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Genres []Genre `gorm:"many2many:book_genres" json:"genres,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// URL returns the detail page path for this book.
func (b *Book) URL() string {
	return "/catalog/book/" + b.ID
}
