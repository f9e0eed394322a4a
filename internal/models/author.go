package models

import (
	"time"
)

type Author struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName   string     `gorm:"type:varchar(100);not null" json:"first_name"`
	FamilyName  string     `gorm:"type:varchar(100);not null" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Name returns the display name, family name first.
func (a *Author) Name() string {
	return a.FamilyName + ", " + a.FirstName
}

// URL returns the detail page path for this author.
func (a *Author) URL() string {
	return "/catalog/author/" + a.ID
}

// Lifespan returns "birth - death" with either side blank when unknown.
func (a *Author) Lifespan() string {
	var lifespan string
	if a.DateOfBirth != nil {
		lifespan = a.DateOfBirth.Format("Jan 2, 2006")
	}
	lifespan += " - "
	if a.DateOfDeath != nil {
		lifespan += a.DateOfDeath.Format("Jan 2, 2006")
	}
	return lifespan
}

// DateOfBirthISO returns the birth date as YYYY-MM-DD for form echoing.
func (a *Author) DateOfBirthISO() string {
	if a.DateOfBirth == nil {
		return ""
	}
	return a.DateOfBirth.Format("2006-01-02")
}

// DateOfDeathISO returns the death date as YYYY-MM-DD for form echoing.
func (a *Author) DateOfDeathISO() string {
	if a.DateOfDeath == nil {
		return ""
	}
	return a.DateOfDeath.Format("2006-01-02")
}
