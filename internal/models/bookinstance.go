package models

import (
	"time"
)

// InstanceStatus is the loan state of a physical copy.
type InstanceStatus string

const (
	StatusAvailable   InstanceStatus = "Available"
	StatusMaintenance InstanceStatus = "Maintenance"
	StatusLoaned      InstanceStatus = "Loaned"
	StatusReserved    InstanceStatus = "Reserved"
)

// InstanceStatuses lists every valid status, in form display order.
var InstanceStatuses = []InstanceStatus{
	StatusAvailable,
	StatusMaintenance,
	StatusLoaned,
	StatusReserved,
}

type BookInstance struct {
	ID      string         `gorm:"type:uuid;primaryKey" json:"id"`
	BookID  string         `gorm:"type:uuid;not null;index" json:"book_id"`
	Imprint string         `gorm:"type:varchar(255);not null" json:"imprint"`
	Status  InstanceStatus `gorm:"type:varchar(20);not null;default:'Maintenance'" json:"status"`
	DueBack time.Time      `json:"due_back"`

	Book Book `gorm:"foreignKey:BookID" json:"book,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// URL returns the detail page path for this copy.
func (bi *BookInstance) URL() string {
	return "/catalog/bookinstance/" + bi.ID
}

// DueBackFormatted returns the due date in a readable form.
func (bi *BookInstance) DueBackFormatted() string {
	return bi.DueBack.Format("Jan 2, 2006")
}

// DueBackISO returns the due date as YYYY-MM-DD for form echoing.
func (bi *BookInstance) DueBackISO() string {
	return bi.DueBack.Format("2006-01-02")
}
