// Package payroll holds the attendance and payslip arithmetic. Everything
// here is pure: callers pass times and aggregate counts in, so the same
// inputs always price the same wages.
package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Own-M/gainers-os/internal/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"

	// Check-ins strictly after this time of day count as Late.
	lateCutoffSeconds = 15*3600 + 10*60

	// A shift must run at least this long before check-out is accepted.
	MinShiftSeconds = 3600

	// Contract terms: a worked day pays seven hours, a late day forfeits
	// one of them.
	dailyHours     = 7
	lateDayHours   = dailyHours - 1
	commissionRate = 400
	tierRate       = 500
	tierThreshold  = 10
	tierBonus      = 1000
)

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// EvaluateCheckIn derives the day's status and lateness penalty from the
// check-in time. The penalty is one hour of pay, charged on top of the
// shortened late-day rate.
func EvaluateCheckIn(in time.Time, hourlyRate decimal.Decimal) (models.AttendanceStatus, decimal.Decimal) {
	if secondsOfDay(in) > lateCutoffSeconds {
		return models.AttendanceLate, hourlyRate
	}
	return models.AttendancePresent, decimal.Zero
}

// ElapsedSeconds is the same-day span between two HH:MM:SS clock readings.
func ElapsedSeconds(inTime, outTime string) (int, error) {
	t1, err := time.Parse(TimeLayout, inTime)
	if err != nil {
		return 0, err
	}
	t2, err := time.Parse(TimeLayout, outTime)
	if err != nil {
		return 0, err
	}
	return secondsOfDay(t2) - secondsOfDay(t1), nil
}

// CanCheckOut reports whether the one-hour minimum shift has elapsed.
// Unparseable times read as "not yet".
func CanCheckOut(inTime, outTime string) bool {
	secs, err := ElapsedSeconds(inTime, outTime)
	if err != nil {
		return false
	}
	return secs >= MinShiftSeconds
}

// WorkDuration formats a shift span as "3h 25m" for dashboard display.
func WorkDuration(inTime, outTime string) string {
	secs, err := ElapsedSeconds(inTime, outTime)
	if err != nil || secs < 0 {
		return "0h 0m"
	}
	return fmt.Sprintf("%dh %dm", secs/3600, (secs%3600)/60)
}

// Commission pays 400 per sale up to ten, 500 per sale beyond.
func Commission(sales int) int64 {
	if sales <= tierThreshold {
		return int64(sales) * commissionRate
	}
	return tierThreshold*commissionRate + int64(sales-tierThreshold)*tierRate
}

// Bonus is a flat 1000 once sales clear the tier threshold.
func Bonus(sales int) int64 {
	if sales > tierThreshold {
		return tierBonus
	}
	return 0
}

// Payslip carries the monthly figures, already truncated to whole units the
// way the printed document shows them.
type Payslip struct {
	PresentDays int `json:"present_days"`
	LateDays    int `json:"late_days"`
	Sales       int `json:"sales"`

	Base       int64 `json:"base"`
	Transport  int64 `json:"transport"`
	Food       int64 `json:"food"`
	Commission int64 `json:"commission"`
	Bonus      int64 `json:"bonus"`
	Gross      int64 `json:"gross"`
}

// Compute prices one calendar month of work. Present days pay seven hours,
// late days six; allowances, tiered commission and the sales bonus stack on
// top. Gross is truncated from the exact total, not summed from the
// truncated lines.
func Compute(presentDays, lateDays int, hourlyRate, transport, food decimal.Decimal, sales int) Payslip {
	normalPay := decimal.NewFromInt(int64(presentDays) * dailyHours).Mul(hourlyRate)
	latePay := decimal.NewFromInt(int64(lateDays) * lateDayHours).Mul(hourlyRate)
	base := normalPay.Add(latePay)

	commission := Commission(sales)
	bonus := Bonus(sales)

	gross := base.
		Add(transport).
		Add(food).
		Add(decimal.NewFromInt(commission)).
		Add(decimal.NewFromInt(bonus))

	return Payslip{
		PresentDays: presentDays,
		LateDays:    lateDays,
		Sales:       sales,
		Base:        base.IntPart(),
		Transport:   transport.IntPart(),
		Food:        food.IntPart(),
		Commission:  commission,
		Bonus:       bonus,
		Gross:       gross.IntPart(),
	}
}

// MonthRange returns the first and last date of t's calendar month,
// formatted for the date columns.
func MonthRange(t time.Time) (string, string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format(DateLayout), last.Format(DateLayout)
}

// DaysInMonth is the day count of t's calendar month.
func DaysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1).Day()
}
