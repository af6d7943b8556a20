package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Own-M/gainers-os/internal/middleware"
	"github.com/Own-M/gainers-os/internal/models"
	"github.com/Own-M/gainers-os/internal/payroll"
)

type LeaveHandler struct {
	DB *gorm.DB
}

func NewLeaveHandler(db *gorm.DB) *LeaveHandler { return &LeaveHandler{DB: db} }

type ApplyLeaveReq struct {
	EmployeeID uint   `json:"employee_id"` // admin applying on behalf; own profile otherwise
	LeaveType  string `json:"leave_type" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

func (h *LeaveHandler) Apply(c *gin.Context) {
	var req ApplyLeaveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	empID := req.EmployeeID
	if empID == 0 {
		id, ok := middleware.CurrentIdentity(c)
		if !ok || id.Employee == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id required"})
			return
		}
		empID = id.Employee.ID
	}

	leaveType := models.LeaveType(req.LeaveType)
	if leaveType != models.LeaveSick && leaveType != models.LeaveCasual {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown leave type"})
		return
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "Personal"
	}

	row := models.LeaveRequest{
		EmployeeID: empID,
		LeaveType:  leaveType,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     reason,
		Status:     models.LeavePending,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": row})
}

// Approve marks the request approved and deducts the inclusive day span from
// the matching balance, clamped at zero. Unparseable dates leave the
// approval standing with no deduction; that mirrors how wages were always
// settled here and payroll reconciles it by hand.
func (h *LeaveHandler) Approve(c *gin.Context) {
	req, ok := h.loadPending(c)
	if !ok {
		return
	}

	req.Status = models.LeaveApproved
	if err := h.DB.Save(&req).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "approve failed"})
		return
	}

	if days, err := inclusiveDays(req.StartDate, req.EndDate); err != nil {
		logrus.Warnf("leave %d approved without deduction: %v", req.ID, err)
	} else {
		var emp models.Employee
		if err := h.DB.First(&emp, req.EmployeeID).Error; err == nil {
			switch req.LeaveType {
			case models.LeaveSick:
				emp.SickLeaveBal = max(0, emp.SickLeaveBal-days)
			case models.LeaveCasual:
				emp.CasualLeaveBal = max(0, emp.CasualLeaveBal-days)
			}
			if err := h.DB.Save(&emp).Error; err != nil {
				logrus.Warnf("leave %d: balance update failed: %v", req.ID, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *LeaveHandler) Reject(c *gin.Context) {
	req, ok := h.loadPending(c)
	if !ok {
		return
	}

	req.Status = models.LeaveRejected
	if err := h.DB.Save(&req).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reject failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// loadPending fetches the leave request from the path id and enforces the
// single Pending -> Approved/Rejected transition.
func (h *LeaveHandler) loadPending(c *gin.Context) (models.LeaveRequest, bool) {
	id64, _ := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)

	var req models.LeaveRequest
	if err := h.DB.First(&req, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "leave request not found"})
		return req, false
	}
	if req.Status != models.LeavePending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "already decided"})
		return req, false
	}
	return req, true
}

func inclusiveDays(start, end string) (int, error) {
	d1, err := time.Parse(payroll.DateLayout, start)
	if err != nil {
		return 0, err
	}
	d2, err := time.Parse(payroll.DateLayout, end)
	if err != nil {
		return 0, err
	}
	days := int(d2.Sub(d1).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days + 1, nil
}
