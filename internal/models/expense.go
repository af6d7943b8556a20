package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense rows are immutable after creation; there is no update handler.
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CompanyID   uint            `gorm:"index;not null" json:"company_id"`
	VoucherNo   string          `gorm:"uniqueIndex;not null" json:"voucher_no"`
	Date        string          `gorm:"type:varchar(10);not null" json:"date"` // YYYY-MM-DD
	Description string          `gorm:"not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaidTo      string          `json:"paid_to"`
	CreatedAt   time.Time       `json:"created_at"`
}
