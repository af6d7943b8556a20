package handlers

import (
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Own-M/gainers-os/internal/models"
	"github.com/Own-M/gainers-os/internal/sheets"
)

// LeadImporter pulls candidate leads from the external spreadsheet. The
// concrete implementation lives in internal/sheets; tests stub it.
type LeadImporter interface {
	Fetch(ctx context.Context) ([]sheets.LeadRow, error)
}

type CRMHandler struct {
	DB       *gorm.DB
	Clock    func() time.Time
	Importer LeadImporter
}

func NewCRMHandler(db *gorm.DB, clock func() time.Time, importer LeadImporter) *CRMHandler {
	if clock == nil {
		clock = time.Now
	}
	return &CRMHandler{DB: db, Clock: clock, Importer: importer}
}

type AddLeadReq struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// AddLead accepts either a JSON body for a single manual lead or a multipart
// upload with a csv_file of (name, phone, email) rows. CSV import is
// best-effort row by row: short rows are skipped, and rows created before a
// malformed remainder stay created.
func (h *CRMHandler) AddLead(c *gin.Context) {
	if file, _, err := c.Request.FormFile("csv_file"); err == nil {
		defer file.Close()
		h.importCSV(c, file)
		return
	}

	var req AddLeadReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Phone) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and phone required"})
		return
	}

	row := models.Lead{
		Name:   strings.TrimSpace(req.Name),
		Phone:  strings.TrimSpace(req.Phone),
		Email:  strings.TrimSpace(req.Email),
		Source: models.LeadSourceManual,
		Status: models.LeadNew,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": row})
}

func (h *CRMHandler) importCSV(c *gin.Context, file io.Reader) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	// Header row.
	if _, err := reader.Read(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty csv"})
		return
	}

	created := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Rows already imported stand; the rest of the file is
			// abandoned.
			logrus.Warnf("csv lead import stopped: %v", err)
			break
		}
		if len(record) < 2 {
			continue
		}

		lead := models.Lead{
			Name:   strings.TrimSpace(record[0]),
			Phone:  strings.TrimSpace(record[1]),
			Source: models.LeadSourceCSV,
			Status: models.LeadNew,
		}
		if len(record) > 2 {
			lead.Email = strings.TrimSpace(record[2])
		}
		if err := h.DB.Create(&lead).Error; err != nil {
			logrus.Warnf("csv lead import: %v", err)
			continue
		}
		created++
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "count": created})
}

type DistributeReq struct {
	Amount     int   `json:"amount"`
	EmployeeID *uint `json:"employee_id"`
}

// Distribute hands unassigned New leads out, oldest first. With a target
// employee every selected lead goes to them; otherwise the batch cycles
// round-robin across all employees in id order. Leads that already carry an
// assignee are never selected.
func (h *CRMHandler) Distribute(c *gin.Context) {
	var req DistributeReq
	_ = c.ShouldBindJSON(&req)
	if req.Amount <= 0 {
		req.Amount = 10
	}

	var leads []models.Lead
	if err := h.DB.Where("assigned_to IS NULL AND status = ?", models.LeadNew).
		Order("id asc").Limit(req.Amount).Find(&leads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leads"})
		return
	}

	now := h.Clock()
	assigned := 0

	if req.EmployeeID != nil {
		var emp models.Employee
		if err := h.DB.First(&emp, *req.EmployeeID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		for i := range leads {
			leads[i].AssignedTo = &emp.ID
			leads[i].AssignedDate = &now
			if err := h.DB.Save(&leads[i]).Error; err == nil {
				assigned++
			}
		}
	} else {
		var employees []models.Employee
		if err := h.DB.Order("id asc").Find(&employees).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load employees"})
			return
		}
		if len(employees) > 0 {
			for i := range leads {
				emp := employees[i%len(employees)]
				leads[i].AssignedTo = &emp.ID
				leads[i].AssignedDate = &now
				if err := h.DB.Save(&leads[i]).Error; err == nil {
					assigned++
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "assigned": assigned})
}

type UpdateLeadReq struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

func (h *CRMHandler) UpdateStatus(c *gin.Context) {
	id64, _ := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)

	var req UpdateLeadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	status := models.LeadStatus(req.Status)
	if !models.ValidLeadStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	var lead models.Lead
	if err := h.DB.First(&lead, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
		return
	}

	lead.Status = status
	if note := strings.TrimSpace(req.Note); note != "" {
		lead.Note = note
	}
	if err := h.DB.Save(&lead).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "new_status": lead.Status})
}

// Sync pulls the lead spreadsheet and imports rows with a phone number we
// have not seen before. Failures come back as a JSON error message rather
// than a 5xx so the dashboard can show them inline.
func (h *CRMHandler) Sync(c *gin.Context) {
	if h.Importer == nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "sheet import not configured"})
		return
	}

	rows, err := h.Importer.Fetch(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": err.Error()})
		return
	}

	count := 0
	for _, r := range rows {
		phone := strings.TrimSpace(r.Phone)
		if phone == "" {
			continue
		}

		var existing models.Lead
		if err := h.DB.Where("phone = ?", phone).First(&existing).Error; err == nil {
			continue
		}

		lead := models.Lead{
			Name:   r.Name,
			Phone:  phone,
			Email:  r.Email,
			Source: models.LeadSourceSheet,
			Status: models.LeadNew,
		}
		if err := h.DB.Create(&lead).Error; err != nil {
			logrus.Warnf("sheet sync: %v", err)
			continue
		}
		count++
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "count": count})
}
