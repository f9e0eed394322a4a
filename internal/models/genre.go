package models

import (
	"time"
)

type Genre struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// URL returns the detail page path for this genre.
func (g *Genre) URL() string {
	return "/catalog/genre/" + g.ID
}
