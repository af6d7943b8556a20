package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Own-M/gainers-os/internal/middleware"
	"github.com/Own-M/gainers-os/internal/models"
)

// PortalHandler is the client-facing slice of the system: onboarding
// progress, the assigned coordinator, and the two ways a client can ask for
// help.
type PortalHandler struct {
	DB *gorm.DB
}

func NewPortalHandler(db *gorm.DB) *PortalHandler { return &PortalHandler{DB: db} }

func (h *PortalHandler) currentClient(c *gin.Context) (*models.EnrolledClient, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok || id.Client == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "client only"})
		return nil, false
	}
	return id.Client, true
}

func (h *PortalHandler) Dashboard(c *gin.Context) {
	client, ok := h.currentClient(c)
	if !ok {
		return
	}
	h.renderDashboard(c, client)
}

// renderDashboard is shared with the role router so that GET /dashboard and
// GET /portal answer identically for a client.
func (h *PortalHandler) renderDashboard(c *gin.Context, client *models.EnrolledClient) {
	var coordinator *models.Employee
	if client.BatchID != nil {
		var batch models.Batch
		if err := h.DB.First(&batch, *client.BatchID).Error; err == nil && batch.CoordinatorID != nil {
			var emp models.Employee
			if err := h.DB.First(&emp, *batch.CoordinatorID).Error; err == nil {
				coordinator = &emp
			}
		}
	}

	var tickets []models.SupportTicket
	if err := h.DB.Where("client_id = ?", client.ID).Order("created_at desc").Find(&tickets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load"})
		return
	}

	tasks := gin.H{}
	for _, t := range models.AllTasks {
		tasks[string(t)] = client.TaskDone(t)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"role":        "client",
		"client":      client,
		"progress":    client.Progress(),
		"tasks":       tasks,
		"coordinator": coordinator,
		"tickets":     tickets,
	})
}

type CreateTicketReq struct {
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description"`
}

func (h *PortalHandler) CreateTicket(c *gin.Context) {
	client, ok := h.currentClient(c)
	if !ok {
		return
	}

	var req CreateTicketReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	row := models.SupportTicket{
		ClientID:    client.ID,
		Subject:     strings.TrimSpace(req.Subject),
		Description: strings.TrimSpace(req.Description),
		Status:      models.TicketPending,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": row})
}

func (h *PortalHandler) RequestCall(c *gin.Context) {
	client, ok := h.currentClient(c)
	if !ok {
		return
	}

	row := models.CallRequest{
		ClientID: client.ID,
		Status:   models.CallPending,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": row})
}
