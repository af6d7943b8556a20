package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Own-M/gainers-os/internal/models"
	"github.com/Own-M/gainers-os/internal/payroll"
	"github.com/Own-M/gainers-os/internal/utils"
)

type CMSHandler struct {
	DB    *gorm.DB
	Clock func() time.Time
}

func NewCMSHandler(db *gorm.DB, clock func() time.Time) *CMSHandler {
	if clock == nil {
		clock = time.Now
	}
	return &CMSHandler{DB: db, Clock: clock}
}

type CreateBatchReq struct {
	Name          string `json:"name" binding:"required"`
	StudentLimit  int    `json:"student_limit"`
	CoordinatorID *uint  `json:"coordinator_id"`
}

func (h *CMSHandler) CreateBatch(c *gin.Context) {
	var req CreateBatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}
	if req.StudentLimit <= 0 {
		req.StudentLimit = 20
	}

	row := models.Batch{
		Name:          strings.TrimSpace(req.Name),
		StudentLimit:  req.StudentLimit,
		CoordinatorID: req.CoordinatorID,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": row})
}

func (h *CMSHandler) BatchDetails(c *gin.Context) {
	id64, _ := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)

	var batch models.Batch
	if err := h.DB.First(&batch, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		return
	}

	var clients []models.EnrolledClient
	if err := h.DB.Where("batch_id = ?", batch.ID).Order("id asc").Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load"})
		return
	}

	type clientView struct {
		models.EnrolledClient
		Progress int `json:"progress"`
	}
	views := make([]clientView, 0, len(clients))
	for _, cl := range clients {
		views = append(views, clientView{EnrolledClient: cl, Progress: cl.Progress()})
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "batch": batch, "clients": views})
}

type AddClientReq struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone"`
	BatchID *uint  `json:"batch_id"`

	// Login password; generated when empty.
	Password string `json:"password"`
}

// AddClient enrolls a client and opens a portal login for them. When no
// password is supplied one is generated and returned exactly once in the
// response. A client whose email already has a login keeps the enrollment
// but gets no second account.
func (h *CMSHandler) AddClient(c *gin.Context) {
	var req AddClientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := req.Password
	generated := false
	if password == "" {
		password = fmt.Sprintf("pass%04d", rand.Intn(10000))
		generated = true
	}

	client := models.EnrolledClient{
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Phone:      strings.TrimSpace(req.Phone),
		BatchID:    req.BatchID,
		JoinedDate: h.Clock().Format(payroll.DateLayout),
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("email = ?", email).First(&existing).Error; err == nil {
			logrus.Warnf("client %s: email already has a login, enrolling without one", email)
		} else {
			hash, err := utils.HashPassword(password)
			if err != nil {
				return err
			}
			user := models.User{
				Email:        email,
				FullName:     client.Name,
				PasswordHash: hash,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			client.UserID = &user.ID
		}
		return tx.Create(&client).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save", "detail": err.Error()})
		return
	}

	resp := gin.H{"status": "ok", "data": client}
	if generated && client.UserID != nil {
		resp["generated_password"] = password
	}
	c.JSON(http.StatusOK, resp)
}

type UpdateTaskReq struct {
	ClientID  uint   `json:"client_id" binding:"required"`
	TaskName  string `json:"task_name" binding:"required"`
	IsChecked bool   `json:"is_checked"`
}

// UpdateTask toggles one checklist flag and answers with the recomputed
// progress so the checkbox UI can update in place.
func (h *CMSHandler) UpdateTask(c *gin.Context) {
	var req UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	var client models.EnrolledClient
	if err := h.DB.First(&client, req.ClientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}

	if !client.SetTask(models.TaskName(req.TaskName), req.IsChecked) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown task"})
		return
	}
	if err := h.DB.Save(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "progress": client.Progress()})
}

func (h *CMSHandler) ResolveTicket(c *gin.Context) {
	id64, _ := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)

	var ticket models.SupportTicket
	if err := h.DB.First(&ticket, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}

	now := h.Clock()
	ticket.Status = models.TicketResolved
	ticket.ResolvedAt = &now
	if err := h.DB.Save(&ticket).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *CMSHandler) CompleteCall(c *gin.Context) {
	id64, _ := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)

	var call models.CallRequest
	if err := h.DB.First(&call, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "call request not found"})
		return
	}

	call.Status = models.CallDone
	if err := h.DB.Save(&call).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
