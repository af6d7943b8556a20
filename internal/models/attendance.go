package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLate    AttendanceStatus = "Late"
	AttendanceLeave   AttendanceStatus = "Leave"
)

// Attendance holds one row per employee per day; the composite unique index
// closes the race between two near-simultaneous check-ins.
type Attendance struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	EmployeeID uint   `gorm:"not null;uniqueIndex:idx_attendance_employee_date" json:"employee_id"`
	Date       string `gorm:"type:varchar(10);not null;uniqueIndex:idx_attendance_employee_date" json:"date"` // YYYY-MM-DD

	InTime  string  `gorm:"type:varchar(8)" json:"in_time"` // HH:MM:SS
	OutTime *string `gorm:"type:varchar(8)" json:"out_time,omitempty"`

	Status        AttendanceStatus `gorm:"type:varchar(20);not null" json:"status"`
	PenaltyAmount decimal.Decimal  `gorm:"type:numeric(10,2);default:0.00" json:"penalty_amount"`

	CreatedAt time.Time `json:"created_at"`
}

// Completed reports whether the day's record has been checked out; a
// completed record is never mutated again.
func (a Attendance) Completed() bool { return a.OutTime != nil }
