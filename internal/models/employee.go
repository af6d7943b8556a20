package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	UserID    *uint `gorm:"index" json:"user_id,omitempty"`
	CompanyID uint  `gorm:"index;not null" json:"company_id"`

	FullName    string `gorm:"not null" json:"full_name"`
	Designation string `json:"designation"`
	JoiningDate string `gorm:"type:varchar(10)" json:"joining_date"` // YYYY-MM-DD

	HourlyRate         decimal.Decimal `gorm:"type:numeric(10,2);default:50.00" json:"hourly_rate"`
	TransportAllowance decimal.Decimal `gorm:"type:numeric(10,2);default:910.00" json:"transport_allowance"`
	FoodAllowance      decimal.Decimal `gorm:"type:numeric(10,2);default:910.00" json:"food_allowance"`

	IsProbation    bool `gorm:"not null;default:true" json:"is_probation"`
	CasualLeaveBal int  `gorm:"not null;default:10" json:"casual_leave_bal"`
	SickLeaveBal   int  `gorm:"not null;default:14" json:"sick_leave_bal"`

	CreatedAt time.Time `json:"created_at"`
}
