package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"

	"github.com/Own-M/gainers-os/internal/models"
	"github.com/Own-M/gainers-os/internal/payroll"
)

// ReportsHandler renders the printable documents: payslips, letters, the
// company-wide salary and attendance sheets, and per-employee logs.
type ReportsHandler struct {
	DB    *gorm.DB
	Clock func() time.Time
}

func NewReportsHandler(db *gorm.DB, clock func() time.Time) *ReportsHandler {
	if clock == nil {
		clock = time.Now
	}
	return &ReportsHandler{DB: db, Clock: clock}
}

func (h *ReportsHandler) employeeFromParam(c *gin.Context) (models.Employee, models.Company, bool) {
	id64, _ := strconv.ParseUint(strings.TrimSpace(c.Param("emp_id")), 10, 64)

	var emp models.Employee
	if err := h.DB.First(&emp, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return emp, models.Company{}, false
	}

	var company models.Company
	_ = h.DB.First(&company, emp.CompanyID).Error
	return emp, company, true
}

// monthlyPayslip aggregates the employee's current calendar month and prices
// it.
func (h *ReportsHandler) monthlyPayslip(emp models.Employee, now time.Time) payroll.Payslip {
	monthStart, monthEnd := payroll.MonthRange(now)

	var presentDays, lateDays int64
	h.DB.Model(&models.Attendance{}).
		Where("employee_id = ? AND date BETWEEN ? AND ? AND status = ?", emp.ID, monthStart, monthEnd, models.AttendancePresent).
		Count(&presentDays)
	h.DB.Model(&models.Attendance{}).
		Where("employee_id = ? AND date BETWEEN ? AND ? AND status = ?", emp.ID, monthStart, monthEnd, models.AttendanceLate).
		Count(&lateDays)

	var sales int64
	h.DB.Model(&models.SalesRecord{}).
		Where("employee_id = ? AND date BETWEEN ? AND ?", emp.ID, monthStart, monthEnd).
		Select("COALESCE(SUM(count), 0)").Scan(&sales)

	return payroll.Compute(int(presentDays), int(lateDays), emp.HourlyRate, emp.TransportAllowance, emp.FoodAllowance, int(sales))
}

func newReportPDF(title, subtitle string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(10)
	if subtitle != "" {
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, subtitle)
		pdf.Ln(10)
	}
	return pdf
}

func writePDF(c *gin.Context, pdf *gofpdf.Fpdf, filename string) {
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	if err := pdf.Output(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build pdf"})
	}
}

func pdfKeyValue(pdf *gofpdf.Fpdf, rows [][2]string) {
	pdf.SetFont("Arial", "", 11)
	for _, r := range rows {
		pdf.Cell(90, 8, r[0])
		pdf.Cell(90, 8, r[1])
		pdf.Ln(8)
	}
}

func (h *ReportsHandler) Payslip(c *gin.Context) {
	emp, company, ok := h.employeeFromParam(c)
	if !ok {
		return
	}

	now := h.Clock()
	slip := h.monthlyPayslip(emp, now)

	pdf := newReportPDF("Payslip - "+now.Format("January 2006"), company.Name)
	pdfKeyValue(pdf, [][2]string{
		{"Employee", emp.FullName},
		{"Designation", emp.Designation},
		{"Present Days", strconv.Itoa(slip.PresentDays)},
		{"Late Days", strconv.Itoa(slip.LateDays)},
		{"Sales", strconv.Itoa(slip.Sales)},
	})
	pdf.Ln(4)
	pdfKeyValue(pdf, [][2]string{
		{"Base Salary", strconv.FormatInt(slip.Base, 10)},
		{"Transport Allowance", strconv.FormatInt(slip.Transport, 10)},
		{"Food Allowance", strconv.FormatInt(slip.Food, 10)},
		{"Commission", strconv.FormatInt(slip.Commission, 10)},
		{"Bonus", strconv.FormatInt(slip.Bonus, 10)},
		{"Gross Pay", strconv.FormatInt(slip.Gross, 10)},
	})

	writePDF(c, pdf, fmt.Sprintf("Payslip_%s.pdf", emp.FullName))
}

func (h *ReportsHandler) AppointmentLetter(c *gin.Context) {
	emp, company, ok := h.employeeFromParam(c)
	if !ok {
		return
	}

	pdf := newReportPDF("Appointment Letter", company.Name)
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"This letter confirms the appointment of %s as %s with effect from %s. "+
			"The engagement is on an hourly basis at a rate of %s per hour, with transport "+
			"and food allowances as per company policy.",
		emp.FullName, emp.Designation, emp.JoiningDate, emp.HourlyRate.StringFixed(2)), "", "L", false)

	writePDF(c, pdf, "Appointment.pdf")
}

func (h *ReportsHandler) IDCard(c *gin.Context) {
	emp, company, ok := h.employeeFromParam(c)
	if !ok {
		return
	}

	pdf := gofpdf.New("P", "mm", "A7", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, company.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, emp.FullName, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, emp.Designation, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("ID: %04d", emp.ID), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Joined: "+emp.JoiningDate, "", 1, "C", false, 0, "")

	writePDF(c, pdf, "ID_Card.pdf")
}

func (h *ReportsHandler) Voucher(c *gin.Context) {
	id64, _ := strconv.ParseUint(strings.TrimSpace(c.Param("expense_id")), 10, 64)

	var exp models.Expense
	if err := h.DB.First(&exp, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	var company models.Company
	_ = h.DB.First(&company, exp.CompanyID).Error

	pdf := newReportPDF("Expense Voucher", company.Name)
	pdfKeyValue(pdf, [][2]string{
		{"Voucher No", exp.VoucherNo},
		{"Date", exp.Date},
		{"Description", exp.Description},
		{"Paid To", exp.PaidTo},
		{"Amount", exp.Amount.StringFixed(2)},
	})

	writePDF(c, pdf, "Voucher.pdf")
}

func (h *ReportsHandler) ExperienceCertificate(c *gin.Context) {
	emp, company, ok := h.employeeFromParam(c)
	if !ok {
		return
	}

	pdf := newReportPDF("Experience Certificate", company.Name)
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"This is to certify that %s has been working with %s as %s since %s. "+
			"During this period their conduct and performance have been satisfactory. "+
			"Issued on %s.",
		emp.FullName, company.Name, emp.Designation, emp.JoiningDate,
		h.Clock().Format("2 January 2006")), "", "L", false)

	writePDF(c, pdf, "Experience_Certificate.pdf")
}

// salaryRows collects the salary-sheet lines for every employee; shared by
// the PDF and XLSX exports.
func (h *ReportsHandler) salaryRows(now time.Time) ([]models.Employee, []payroll.Payslip) {
	var employees []models.Employee
	h.DB.Order("id asc").Find(&employees)

	slips := make([]payroll.Payslip, len(employees))
	for i, emp := range employees {
		slips[i] = h.monthlyPayslip(emp, now)
	}
	return employees, slips
}

func (h *ReportsHandler) SalarySheet(c *gin.Context) {
	var company models.Company
	if err := h.DB.First(&company).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no company found"})
		return
	}

	now := h.Clock()
	employees, slips := h.salaryRows(now)

	pdf := newReportPDF("Salary Sheet - "+now.Format("January 2006"), company.Name)
	pdf.SetFont("Arial", "B", 10)
	for _, head := range []string{"Employee", "Present", "Late", "Base", "Gross"} {
		pdf.Cell(38, 8, head)
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	var total int64
	for i, emp := range employees {
		pdf.Cell(38, 8, emp.FullName)
		pdf.Cell(38, 8, strconv.Itoa(slips[i].PresentDays))
		pdf.Cell(38, 8, strconv.Itoa(slips[i].LateDays))
		pdf.Cell(38, 8, strconv.FormatInt(slips[i].Base, 10))
		pdf.Cell(38, 8, strconv.FormatInt(slips[i].Gross, 10))
		pdf.Ln(8)
		total += slips[i].Gross
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(38*4, 8, "Total")
	pdf.Cell(38, 8, strconv.FormatInt(total, 10))

	writePDF(c, pdf, "Salary_Sheet.pdf")
}

// attendanceGrid maps employee id -> day of month -> status initial.
func (h *ReportsHandler) attendanceGrid(now time.Time) map[uint]map[int]string {
	monthStart, monthEnd := payroll.MonthRange(now)

	var rows []models.Attendance
	h.DB.Where("date BETWEEN ? AND ?", monthStart, monthEnd).Find(&rows)

	grid := map[uint]map[int]string{}
	for _, a := range rows {
		d, err := time.Parse(payroll.DateLayout, a.Date)
		if err != nil {
			continue
		}
		if grid[a.EmployeeID] == nil {
			grid[a.EmployeeID] = map[int]string{}
		}
		grid[a.EmployeeID][d.Day()] = string(a.Status[0])
	}
	return grid
}

func (h *ReportsHandler) AttendanceSheet(c *gin.Context) {
	var company models.Company
	if err := h.DB.First(&company).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no company found"})
		return
	}

	now := h.Clock()
	days := payroll.DaysInMonth(now)
	grid := h.attendanceGrid(now)

	var employees []models.Employee
	h.DB.Order("id asc").Find(&employees)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("%s - Attendance %s", company.Name, now.Format("January 2006")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 7)
	pdf.Cell(40, 6, "Employee")
	for d := 1; d <= days; d++ {
		pdf.Cell(7, 6, strconv.Itoa(d))
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 7)
	for _, emp := range employees {
		pdf.Cell(40, 6, emp.FullName)
		for d := 1; d <= days; d++ {
			pdf.Cell(7, 6, grid[emp.ID][d])
		}
		pdf.Ln(6)
	}

	writePDF(c, pdf, "Attendance_Sheet.pdf")
}

func (h *ReportsHandler) AttendanceLog(c *gin.Context) {
	emp, company, ok := h.employeeFromParam(c)
	if !ok {
		return
	}

	var records []models.Attendance
	h.DB.Where("employee_id = ?", emp.ID).Order("date desc").Limit(30).Find(&records)

	pdf := newReportPDF("Attendance Log - "+emp.FullName, company.Name)
	pdf.SetFont("Arial", "B", 10)
	for _, head := range []string{"Date", "In", "Out", "Status", "Penalty"} {
		pdf.Cell(38, 8, head)
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, r := range records {
		out := ""
		if r.OutTime != nil {
			out = *r.OutTime
		}
		pdf.Cell(38, 8, r.Date)
		pdf.Cell(38, 8, r.InTime)
		pdf.Cell(38, 8, out)
		pdf.Cell(38, 8, string(r.Status))
		pdf.Cell(38, 8, r.PenaltyAmount.StringFixed(2))
		pdf.Ln(8)
	}

	writePDF(c, pdf, "Attn_Log.pdf")
}
