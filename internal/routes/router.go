package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Own-M/gainers-os/internal/handlers"
	"github.com/Own-M/gainers-os/internal/middleware"
)

// Options carries the pieces the router wires into handlers. Clock defaults
// to time.Now; tests pin it.
type Options struct {
	JWTSecret string
	Clock     func() time.Time
	Importer  handlers.LeadImporter
}

func NewRouter(db *gorm.DB, opts Options) *gin.Engine {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	r := gin.Default()

	authH := handlers.NewAuthHandler(db, opts.JWTSecret, opts.Clock)
	adminH := handlers.NewAdminHandler(db)
	attendanceH := handlers.NewAttendanceHandler(db, opts.Clock)
	leaveH := handlers.NewLeaveHandler(db)
	salesH := handlers.NewSalesHandler(db, opts.Clock)
	expenseH := handlers.NewExpenseHandler(db, opts.Clock)
	crmH := handlers.NewCRMHandler(db, opts.Clock, opts.Importer)
	cmsH := handlers.NewCMSHandler(db, opts.Clock)
	portalH := handlers.NewPortalHandler(db)
	dashboardH := handlers.NewDashboardHandler(db, opts.Clock, portalH)
	reportsH := handlers.NewReportsHandler(db, opts.Clock)

	r.GET("/health", handlers.Health)

	authed := middleware.AuthRequired(db, opts.JWTSecret)
	admin := middleware.RequireAdmin()

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", authH.Login)
		api.POST("/auth/logout", authed, authH.Logout)
		api.POST("/auth/totp/setup", authed, authH.SetupTOTP)
		api.POST("/auth/totp/verify", authed, authH.VerifyTOTPSetup)
	}

	staff := api.Group("", authed)
	{
		staff.GET("/dashboard", dashboardH.Home)

		staff.POST("/attendance/mark-own", middleware.RequireEmployee(), attendanceH.MarkOwn)
		staff.POST("/attendance/mark", admin, attendanceH.Mark)
		staff.GET("/attendance/:employee_id", admin, attendanceH.ListByEmployee)

		staff.POST("/leave/apply", leaveH.Apply)
		staff.POST("/leave/:id/approve", admin, leaveH.Approve)
		staff.POST("/leave/:id/reject", admin, leaveH.Reject)

		staff.POST("/sales", salesH.Add)

		staff.GET("/expenses", admin, expenseH.List)
		staff.POST("/expenses", admin, expenseH.Add)

		staff.POST("/admin/company", admin, adminH.CreateCompany)
		staff.GET("/admin/employees", admin, adminH.ListEmployees)
		staff.POST("/admin/employees", admin, adminH.CreateEmployee)

		staff.POST("/crm/leads", admin, crmH.AddLead)
		staff.POST("/crm/distribute", admin, crmH.Distribute)
		staff.POST("/crm/leads/:id/status", crmH.UpdateStatus)
		staff.GET("/crm/sync", admin, crmH.Sync)

		staff.POST("/cms/batches", admin, cmsH.CreateBatch)
		staff.GET("/cms/batches/:id", cmsH.BatchDetails)
		staff.POST("/cms/clients", admin, cmsH.AddClient)
		staff.POST("/cms/tasks", cmsH.UpdateTask)
		staff.POST("/cms/tickets/:id/resolve", cmsH.ResolveTicket)
		staff.POST("/cms/calls/:id/done", cmsH.CompleteCall)

		staff.GET("/portal", middleware.RequireClient(), portalH.Dashboard)
		staff.POST("/portal/tickets", middleware.RequireClient(), portalH.CreateTicket)
		staff.POST("/portal/call-requests", middleware.RequireClient(), portalH.RequestCall)

		reports := staff.Group("/reports", admin)
		{
			reports.GET("/payslip/:emp_id", reportsH.Payslip)
			reports.GET("/appointment/:emp_id", reportsH.AppointmentLetter)
			reports.GET("/id-card/:emp_id", reportsH.IDCard)
			reports.GET("/voucher/:expense_id", reportsH.Voucher)
			reports.GET("/experience/:emp_id", reportsH.ExperienceCertificate)
			reports.GET("/attendance-log/:emp_id", reportsH.AttendanceLog)
			reports.GET("/salary-sheet", reportsH.SalarySheet)
			reports.GET("/salary-sheet.xlsx", reportsH.SalarySheetXLSX)
			reports.GET("/attendance-sheet", reportsH.AttendanceSheet)
			reports.GET("/attendance-sheet.xlsx", reportsH.AttendanceSheetXLSX)
		}
	}

	return r
}
