package models

import "time"

type LeadStatus string

const (
	LeadNew           LeadStatus = "New"
	LeadBusy          LeadStatus = "Busy"
	LeadInterested    LeadStatus = "Interested"
	LeadNotInterested LeadStatus = "Not_Interested"
	LeadNoResponse    LeadStatus = "No_Response"
	LeadEnrolled      LeadStatus = "Enrolled"
	LeadResolved      LeadStatus = "Resolved"
)

// ValidLeadStatus reports whether s is one of the seven pipeline states.
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadNew, LeadBusy, LeadInterested, LeadNotInterested,
		LeadNoResponse, LeadEnrolled, LeadResolved:
		return true
	}
	return false
}

const (
	LeadSourceManual = "Manual"
	LeadSourceCSV    = "CSV Import"
	LeadSourceSheet  = "Google Sheet"
)

type Lead struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AssignedTo   *uint      `gorm:"index" json:"assigned_to,omitempty"`
	AssignedDate *time.Time `json:"assigned_date,omitempty"`

	Name   string     `gorm:"not null" json:"name"`
	Phone  string     `gorm:"index;not null" json:"phone"`
	Email  string     `json:"email"`
	Source string     `gorm:"not null;default:Manual" json:"source"`
	Status LeadStatus `gorm:"type:varchar(20);not null;default:New" json:"status"`
	Note   string     `json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
