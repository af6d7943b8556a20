package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Own-M/gainers-os/internal/models"
)

func clockAt(hh, mm, ss int) time.Time {
	return time.Date(2025, 3, 10, hh, mm, ss, 0, time.UTC)
}

func TestEvaluateCheckIn(t *testing.T) {
	rate := decimal.NewFromInt(50)

	tests := []struct {
		name    string
		in      time.Time
		status  models.AttendanceStatus
		penalty string
	}{
		{"early morning", clockAt(9, 0, 0), models.AttendancePresent, "0"},
		{"on the cutoff", clockAt(15, 10, 0), models.AttendancePresent, "0"},
		{"one second past", clockAt(15, 10, 1), models.AttendanceLate, "50"},
		{"well past", clockAt(15, 20, 0), models.AttendanceLate, "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, penalty := EvaluateCheckIn(tt.in, rate)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.penalty, penalty.String())
		})
	}
}

func TestCanCheckOut(t *testing.T) {
	assert.False(t, CanCheckOut("09:00:00", "09:59:59"))
	assert.True(t, CanCheckOut("09:00:00", "10:00:00"))
	assert.True(t, CanCheckOut("09:00:00", "17:30:00"))
	assert.False(t, CanCheckOut("garbage", "10:00:00"))
}

func TestWorkDuration(t *testing.T) {
	assert.Equal(t, "8h 25m", WorkDuration("09:00:00", "17:25:30"))
	assert.Equal(t, "0h 0m", WorkDuration("17:00:00", "09:00:00"))
	assert.Equal(t, "0h 0m", WorkDuration("bad", "09:00:00"))
}

func TestCommissionTiers(t *testing.T) {
	assert.Equal(t, int64(0), Commission(0))
	assert.Equal(t, int64(400), Commission(1))
	assert.Equal(t, int64(4000), Commission(10))
	assert.Equal(t, int64(4500), Commission(11))
	// 10x400 + 2x500
	assert.Equal(t, int64(5000), Commission(12))
}

func TestBonusThreshold(t *testing.T) {
	assert.Equal(t, int64(0), Bonus(10))
	assert.Equal(t, int64(1000), Bonus(11))
}

func TestComputePayslip(t *testing.T) {
	rate := decimal.NewFromInt(50)
	transport := decimal.NewFromInt(910)
	food := decimal.NewFromInt(910)

	// 20 present days, no lates, 12 sales.
	slip := Compute(20, 0, rate, transport, food, 12)

	assert.Equal(t, int64(7000), slip.Base) // 20 x 7h x 50
	assert.Equal(t, int64(910), slip.Transport)
	assert.Equal(t, int64(910), slip.Food)
	assert.Equal(t, int64(5000), slip.Commission)
	assert.Equal(t, int64(1000), slip.Bonus)
	assert.Equal(t, int64(14820), slip.Gross)
}

func TestComputePayslipLateDaysPaySixHours(t *testing.T) {
	rate := decimal.NewFromInt(100)
	slip := Compute(2, 3, rate, decimal.Zero, decimal.Zero, 0)

	// 2x7x100 + 3x6x100
	assert.Equal(t, int64(3200), slip.Base)
	assert.Equal(t, int64(3200), slip.Gross)
}

func TestComputeTruncatesFromExactTotal(t *testing.T) {
	rate, _ := decimal.NewFromString("50.50")
	slip := Compute(1, 0, rate, decimal.Zero, decimal.Zero, 0)

	// 7 x 50.50 = 353.50 -> 353
	assert.Equal(t, int64(353), slip.Base)
	assert.Equal(t, int64(353), slip.Gross)
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-02-01", start)
	assert.Equal(t, "2025-02-28", end)

	assert.Equal(t, 31, DaysInMonth(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)))
}
