package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Own-M/gainers-os/internal/middleware"
	"github.com/Own-M/gainers-os/internal/models"
	"github.com/Own-M/gainers-os/internal/payroll"
)

type AttendanceHandler struct {
	DB    *gorm.DB
	Clock func() time.Time
}

func NewAttendanceHandler(db *gorm.DB, clock func() time.Time) *AttendanceHandler {
	if clock == nil {
		clock = time.Now
	}
	return &AttendanceHandler{DB: db, Clock: clock}
}

type MarkOwnReq struct {
	Action string `json:"action" binding:"required"` // check_in / check_out
}

// MarkOwn is the employee's own check-in/check-out button. Repeated
// check-ins and too-early check-outs are accepted and ignored, so the
// dashboard can post without special-casing.
func (h *AttendanceHandler) MarkOwn(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok || id.Employee == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "employee only"})
		return
	}

	var req MarkOwnReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	now := h.Clock()
	switch req.Action {
	case "check_in":
		h.checkIn(c, *id.Employee, models.AttendancePresent, now)
	case "check_out":
		h.checkOut(c, *id.Employee, now)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
	}
}

type MarkReq struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Action     string `json:"action"`  // check_in / check_out, stamped now
	Status     string `json:"status"`  // manual backfill with InTime
	InTime     string `json:"in_time"` // HH:MM
}

// Mark lets an admin stamp or backfill a day for any employee.
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req MarkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	var emp models.Employee
	if err := h.DB.First(&emp, req.EmployeeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}

	now := h.Clock()
	switch {
	case req.Action == "check_in":
		h.checkIn(c, emp, models.AttendancePresent, now)
	case req.Action == "check_out":
		h.checkOut(c, emp, now)
	case req.Status != "" && req.InTime != "":
		at, err := time.Parse("15:04", strings.TrimSpace(req.InTime))
		if err != nil {
			// Malformed manual times are dropped, matching the
			// fire-and-forget dashboard form.
			logrus.Warnf("manual attendance: bad in_time %q", req.InTime)
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		day := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
		h.checkIn(c, emp, models.AttendanceStatus(req.Status), day)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
	}
}

// checkIn creates the day's record unless one exists. The time-of-day rule
// can override the requested status to Late and attach the penalty. The
// check-then-insert runs in a transaction and the (employee, date) unique
// index backstops it, so two racing check-ins collapse to one row.
func (h *AttendanceHandler) checkIn(c *gin.Context, emp models.Employee, status models.AttendanceStatus, at time.Time) {
	date := at.Format(payroll.DateLayout)

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Attendance
		if err := tx.Where("employee_id = ? AND date = ?", emp.ID, date).First(&existing).Error; err == nil {
			return nil // already checked in today
		}

		lateStatus, penalty := payroll.EvaluateCheckIn(at, emp.HourlyRate)
		if lateStatus == models.AttendanceLate {
			status = models.AttendanceLate
		}

		row := models.Attendance{
			EmployeeID:    emp.ID,
			Date:          date,
			InTime:        at.Format(payroll.TimeLayout),
			Status:        status,
			PenaltyAmount: penalty,
		}
		if err := tx.Create(&row).Error; err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique") {
				return nil // lost the race, same outcome
			}
			return err
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// checkOut completes the day's record once the one-hour minimum shift has
// elapsed. Anything else (no record, already completed, too early) is a
// silent no-op.
func (h *AttendanceHandler) checkOut(c *gin.Context, emp models.Employee, at time.Time) {
	date := at.Format(payroll.DateLayout)
	outTime := at.Format(payroll.TimeLayout)

	var row models.Attendance
	if err := h.DB.Where("employee_id = ? AND date = ?", emp.ID, date).First(&row).Error; err == nil {
		if row.OutTime == nil && payroll.CanCheckOut(row.InTime, outTime) {
			row.OutTime = &outTime
			if err := h.DB.Save(&row).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save", "detail": err.Error()})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListByEmployee returns the most recent attendance rows for one employee.
func (h *AttendanceHandler) ListByEmployee(c *gin.Context) {
	employeeID := strings.TrimSpace(c.Param("employee_id"))
	if employeeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id required"})
		return
	}

	var rows []models.Attendance
	if err := h.DB.Where("employee_id = ?", employeeID).Order("date desc").Limit(50).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": rows})
}
