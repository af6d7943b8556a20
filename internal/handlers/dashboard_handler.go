package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Own-M/gainers-os/internal/middleware"
	"github.com/Own-M/gainers-os/internal/models"
	"github.com/Own-M/gainers-os/internal/payroll"
)

type DashboardHandler struct {
	DB     *gorm.DB
	Clock  func() time.Time
	Portal *PortalHandler
}

func NewDashboardHandler(db *gorm.DB, clock func() time.Time, portal *PortalHandler) *DashboardHandler {
	if clock == nil {
		clock = time.Now
	}
	return &DashboardHandler{DB: db, Clock: clock, Portal: portal}
}

// Home routes the caller to the dashboard their role owns. An authenticated
// user with no admin flag and no linked profile gets nothing.
func (h *DashboardHandler) Home(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
		return
	}

	switch id.Role {
	case middleware.RoleAdmin:
		h.adminDashboard(c)
	case middleware.RoleEmployee:
		h.employeeDashboard(c, *id.Employee)
	case middleware.RoleClient:
		h.Portal.renderDashboard(c, id.Client)
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied: no profile found"})
	}
}

// employeeToday is the admin's per-employee attendance column: nothing yet,
// an open shift (plus whether the hour lock has passed), or a finished one.
type employeeToday struct {
	models.Employee
	AttnStatus  string  `json:"attn_status"` // Pending / Active / Completed
	CheckInTime *string `json:"check_in_time,omitempty"`
	CanCheckout bool    `json:"can_checkout"`
}

func (h *DashboardHandler) adminDashboard(c *gin.Context) {
	now := h.Clock()
	today := now.Format(payroll.DateLayout)
	nowTime := now.Format(payroll.TimeLayout)
	query := c.Query("q")

	var employees []models.Employee
	var expenses []models.Expense
	var leads []models.Lead

	if query != "" {
		like := "%" + query + "%"
		h.DB.Where("full_name LIKE ? OR designation LIKE ?", like, like).Find(&employees)
		h.DB.Where("description LIKE ?", like).Find(&expenses)
		h.DB.Where("name LIKE ? OR phone LIKE ?", like, like).Find(&leads)
	} else {
		h.DB.Order("id asc").Find(&employees)
		h.DB.Order("date desc").Limit(10).Find(&expenses)
		h.DB.Order("created_at desc").Limit(50).Find(&leads)
	}

	var todaysAttendance []models.Attendance
	h.DB.Where("date = ?", today).Find(&todaysAttendance)

	presentToday, lateToday := 0, 0
	attnByEmployee := map[uint]models.Attendance{}
	for _, a := range todaysAttendance {
		attnByEmployee[a.EmployeeID] = a
		switch a.Status {
		case models.AttendancePresent:
			presentToday++
		case models.AttendanceLate:
			lateToday++
		}
	}

	rows := make([]employeeToday, 0, len(employees))
	for _, emp := range employees {
		row := employeeToday{Employee: emp, AttnStatus: "Pending"}
		if a, ok := attnByEmployee[emp.ID]; ok {
			in := a.InTime
			row.CheckInTime = &in
			if a.Completed() {
				row.AttnStatus = "Completed"
			} else {
				row.AttnStatus = "Active"
				row.CanCheckout = payroll.CanCheckOut(a.InTime, nowTime)
			}
		}
		rows = append(rows, row)
	}

	var pendingLeaves []models.LeaveRequest
	h.DB.Where("status = ?", models.LeavePending).Find(&pendingLeaves)

	monthStart, _ := payroll.MonthRange(now)
	var totalExpense, monthlyExpense decimal.Decimal
	h.DB.Model(&models.Expense{}).Select("COALESCE(SUM(amount), 0)").Scan(&totalExpense)
	h.DB.Model(&models.Expense{}).Where("date >= ?", monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&monthlyExpense)

	var totalLeads, newLeads, enrolledLeads, unassignedLeads int64
	h.DB.Model(&models.Lead{}).Count(&totalLeads)
	h.DB.Model(&models.Lead{}).Where("status = ?", models.LeadNew).Count(&newLeads)
	h.DB.Model(&models.Lead{}).Where("status = ?", models.LeadEnrolled).Count(&enrolledLeads)
	h.DB.Model(&models.Lead{}).Where("assigned_to IS NULL").Count(&unassignedLeads)

	var batches []models.Batch
	h.DB.Order("created_at desc").Find(&batches)

	var clients []models.EnrolledClient
	h.DB.Order("joined_date desc").Limit(20).Find(&clients)

	var pendingTickets []models.SupportTicket
	h.DB.Where("status = ?", models.TicketPending).Order("created_at asc").Find(&pendingTickets)

	var pendingCalls []models.CallRequest
	h.DB.Where("status = ?", models.CallPending).Order("created_at asc").Find(&pendingCalls)

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"role":          "admin",
		"today":         today,
		"search_query":  query,
		"employees":     rows,
		"emp_count":     len(employees),
		"expenses":      expenses,
		"present_today": presentToday,
		"late_today":    lateToday,

		"pending_leaves": pendingLeaves,
		"pending_count":  len(pendingLeaves),

		"total_expense":   totalExpense,
		"monthly_expense": monthlyExpense,

		"leads":            leads,
		"total_leads":      totalLeads,
		"new_leads":        newLeads,
		"enrolled_leads":   enrolledLeads,
		"unassigned_leads": unassignedLeads,

		"batches":        batches,
		"clients":        clients,
		"pending_issues": pendingTickets,
		"pending_calls":  pendingCalls,
	})
}

func (h *DashboardHandler) employeeDashboard(c *gin.Context, emp models.Employee) {
	now := h.Clock()
	today := now.Format(payroll.DateLayout)
	nowTime := now.Format(payroll.TimeLayout)

	attnStatus := "Pending"
	canCheckout := false
	duration := "0h 0m"
	var attendance *models.Attendance

	var a models.Attendance
	if err := h.DB.Where("employee_id = ? AND date = ?", emp.ID, today).First(&a).Error; err == nil {
		attendance = &a
		if a.Completed() {
			attnStatus = "Completed"
			duration = payroll.WorkDuration(a.InTime, *a.OutTime)
		} else {
			attnStatus = "Active"
			canCheckout = payroll.CanCheckOut(a.InTime, nowTime)
			duration = payroll.WorkDuration(a.InTime, nowTime)
		}
	}

	var history []models.Attendance
	h.DB.Where("employee_id = ?", emp.ID).Order("date desc").Limit(5).Find(&history)

	monthStart, _ := payroll.MonthRange(now)
	var salesCount int64
	h.DB.Model(&models.SalesRecord{}).Where("employee_id = ? AND date >= ?", emp.ID, monthStart).
		Select("COALESCE(SUM(count), 0)").Scan(&salesCount)

	var myLeaves []models.LeaveRequest
	h.DB.Where("employee_id = ?", emp.ID).Order("start_date desc").Limit(5).Find(&myLeaves)

	var myLeads []models.Lead
	h.DB.Where("assigned_to = ?", emp.ID).Order("created_at desc").Find(&myLeads)

	leadSummary := map[models.LeadStatus]int{}
	var newAssigned []models.Lead
	for _, l := range myLeads {
		leadSummary[l.Status]++
		if l.Status == models.LeadNew {
			newAssigned = append(newAssigned, l)
		}
	}

	var myBatches []models.Batch
	h.DB.Where("coordinator_id = ?", emp.ID).Find(&myBatches)

	coordinatedClients := h.DB.Model(&models.EnrolledClient{}).Select("id").
		Where("batch_id IN (?)", h.DB.Model(&models.Batch{}).Select("id").Where("coordinator_id = ?", emp.ID))

	var myTickets []models.SupportTicket
	h.DB.Where("status = ? AND client_id IN (?)", models.TicketPending, coordinatedClients).Find(&myTickets)

	var myCalls []models.CallRequest
	h.DB.Where("status = ? AND client_id IN (?)", models.CallPending, coordinatedClients).Find(&myCalls)

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"role":         "employee",
		"today":        today,
		"employee":     emp,
		"attendance":   attendance,
		"attn_status":  attnStatus,
		"can_checkout": canCheckout,
		"duration":     duration,
		"history":      history,
		"sales_count":  salesCount,
		"my_leaves":    myLeaves,
		"all_leads":    myLeads,
		"new_leads":    newAssigned,
		"lead_summary": leadSummary,
		"my_batches":   myBatches,
		"my_tickets":   myTickets,
		"my_calls":     myCalls,
	})
}
