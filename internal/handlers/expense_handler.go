package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Own-M/gainers-os/internal/models"
	"github.com/Own-M/gainers-os/internal/payroll"
)

type ExpenseHandler struct {
	DB    *gorm.DB
	Clock func() time.Time
}

func NewExpenseHandler(db *gorm.DB, clock func() time.Time) *ExpenseHandler {
	if clock == nil {
		clock = time.Now
	}
	return &ExpenseHandler{DB: db, Clock: clock}
}

type AddExpenseReq struct {
	CompanyID   uint   `json:"company_id" binding:"required"`
	VoucherNo   string `json:"voucher_no"`
	Date        string `json:"date"`
	Description string `json:"description" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	PaidTo      string `json:"paid_to"`
}

// Add records an expense voucher. Vouchers are immutable: there is no update
// or delete endpoint, corrections are posted as new vouchers.
func (h *ExpenseHandler) Add(c *gin.Context) {
	var req AddExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	var company models.Company
	if err := h.DB.First(&company, req.CompanyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
		return
	}

	voucher := strings.TrimSpace(req.VoucherNo)
	if voucher == "" {
		voucher = "EXP-" + strings.ToUpper(uuid.NewString()[:8])
	}
	date := req.Date
	if date == "" {
		date = h.Clock().Format(payroll.DateLayout)
	}

	row := models.Expense{
		CompanyID:   company.ID,
		VoucherNo:   voucher,
		Date:        date,
		Description: req.Description,
		Amount:      amount,
		PaidTo:      strings.TrimSpace(req.PaidTo),
	}
	if err := h.DB.Create(&row).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "voucher_no already used"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": row})
}

func (h *ExpenseHandler) List(c *gin.Context) {
	var rows []models.Expense
	if err := h.DB.Order("date desc").Limit(100).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": rows})
}
