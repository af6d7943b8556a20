package models

import "time"

type LeaveType string

const (
	LeaveSick   LeaveType = "Sick"
	LeaveCasual LeaveType = "Casual"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "Pending"
	LeaveApproved LeaveStatus = "Approved"
	LeaveRejected LeaveStatus = "Rejected"
)

type LeaveRequest struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	EmployeeID uint        `gorm:"index;not null" json:"employee_id"`
	LeaveType  LeaveType   `gorm:"type:varchar(20);not null" json:"leave_type"`
	StartDate  string      `gorm:"type:varchar(10);not null" json:"start_date"` // YYYY-MM-DD
	EndDate    string      `gorm:"type:varchar(10);not null" json:"end_date"`
	Reason     string      `json:"reason"`
	Status     LeaveStatus `gorm:"type:varchar(20);not null;default:Pending" json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}
