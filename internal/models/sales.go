package models

import "time"

type SalesRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID uint      `gorm:"index;not null" json:"employee_id"`
	Date       string    `gorm:"type:varchar(10);not null" json:"date"` // YYYY-MM-DD
	Count      int       `gorm:"not null;default:1" json:"count"`
	CreatedAt  time.Time `json:"created_at"`
}
