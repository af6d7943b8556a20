package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Own-M/gainers-os/internal/models"
	"github.com/Own-M/gainers-os/internal/payroll"
)

type SalesHandler struct {
	DB    *gorm.DB
	Clock func() time.Time
}

func NewSalesHandler(db *gorm.DB, clock func() time.Time) *SalesHandler {
	if clock == nil {
		clock = time.Now
	}
	return &SalesHandler{DB: db, Clock: clock}
}

type AddSalesReq struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	SaleCount  int    `json:"sale_count" binding:"required"`
	SaleDate   string `json:"sale_date"` // YYYY-MM-DD, today when empty
}

func (h *SalesHandler) Add(c *gin.Context) {
	var req AddSalesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	var emp models.Employee
	if err := h.DB.First(&emp, req.EmployeeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}

	date := req.SaleDate
	if date == "" {
		date = h.Clock().Format(payroll.DateLayout)
	}

	row := models.SalesRecord{
		EmployeeID: emp.ID,
		Date:       date,
		Count:      req.SaleCount,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": row})
}
