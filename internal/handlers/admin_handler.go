package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Own-M/gainers-os/internal/models"
	"github.com/Own-M/gainers-os/internal/utils"
)

// AdminHandler covers the back-office CRUD the admin dashboard links to:
// the company record plus employee accounts.
type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler { return &AdminHandler{DB: db} }

type CreateCompanyReq struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	LogoURL string `json:"logo_url"`
}

func (h *AdminHandler) CreateCompany(c *gin.Context) {
	var req CreateCompanyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	row := models.Company{
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		LogoURL: strings.TrimSpace(req.LogoURL),
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": row})
}

type CreateEmployeeReq struct {
	CompanyID   uint   `json:"company_id" binding:"required"`
	FullName    string `json:"full_name" binding:"required"`
	Designation string `json:"designation"`
	JoiningDate string `json:"joining_date"`

	HourlyRate         string `json:"hourly_rate"`
	TransportAllowance string `json:"transport_allowance"`
	FoodAllowance      string `json:"food_allowance"`

	// Optional login account for the employee dashboard.
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AdminHandler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	var company models.Company
	if err := h.DB.First(&company, req.CompanyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
		return
	}

	rate, err := moneyOrDefault(req.HourlyRate, "50.00")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hourly_rate"})
		return
	}
	transport, err := moneyOrDefault(req.TransportAllowance, "910.00")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transport_allowance"})
		return
	}
	food, err := moneyOrDefault(req.FoodAllowance, "910.00")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food_allowance"})
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		emp := models.Employee{
			CompanyID:          company.ID,
			FullName:           strings.TrimSpace(req.FullName),
			Designation:        strings.TrimSpace(req.Designation),
			JoiningDate:        req.JoiningDate,
			HourlyRate:         rate,
			TransportAllowance: transport,
			FoodAllowance:      food,
			CasualLeaveBal:     10,
			SickLeaveBal:       14,
			IsProbation:        true,
		}

		if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" && req.Password != "" {
			hash, err := utils.HashPassword(req.Password)
			if err != nil {
				return err
			}
			user := models.User{
				Email:        email,
				FullName:     emp.FullName,
				PasswordHash: hash,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			emp.UserID = &user.ID
		}

		return tx.Create(&emp).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AdminHandler) ListEmployees(c *gin.Context) {
	var rows []models.Employee
	if err := h.DB.Order("id asc").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": rows})
}

func moneyOrDefault(s, def string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = def
	}
	return decimal.NewFromString(s)
}
