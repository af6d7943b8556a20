package models

import "time"

type TicketStatus string

const (
	TicketPending  TicketStatus = "Pending"
	TicketResolved TicketStatus = "Resolved"
)

type SupportTicket struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	ClientID    uint         `gorm:"index;not null" json:"client_id"`
	Subject     string       `gorm:"not null" json:"subject"`
	Description string       `json:"description"`
	Status      TicketStatus `gorm:"type:varchar(20);not null;default:Pending" json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	ResolvedAt  *time.Time   `json:"resolved_at,omitempty"`
}

type CallStatus string

const (
	CallPending CallStatus = "Pending"
	CallDone    CallStatus = "Done"
)

type CallRequest struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ClientID  uint       `gorm:"index;not null" json:"client_id"`
	Status    CallStatus `gorm:"type:varchar(20);not null;default:Pending" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}
