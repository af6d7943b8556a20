package models

import "time"

type Batch struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	StudentLimit  int       `gorm:"not null;default:20" json:"student_limit"`
	CoordinatorID *uint     `gorm:"index" json:"coordinator_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
