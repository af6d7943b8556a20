package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/Own-M/gainers-os/internal/models"
	"github.com/Own-M/gainers-os/internal/payroll"
)

func writeXLSX(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build xlsx"})
	}
}

func xlsxHeaderStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	return style
}

// SalarySheetXLSX is the spreadsheet twin of the salary-sheet PDF, used by
// accounting to post the month into their books.
func (h *ReportsHandler) SalarySheetXLSX(c *gin.Context) {
	var company models.Company
	if err := h.DB.First(&company).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no company found"})
		return
	}

	now := h.Clock()
	employees, slips := h.salaryRows(now)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Salary"
	index, _ := f.NewSheet(sheet)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	style := xlsxHeaderStyle(f)
	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s - Salary %s", company.Name, now.Format("January 2006")))
	f.MergeCell(sheet, "A1", "H1")
	f.SetCellStyle(sheet, "A1", "H1", style)

	headers := []string{"Employee", "Present", "Late", "Sales", "Base", "Commission", "Bonus", "Gross"}
	for i, head := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheet, cell, head)
		f.SetCellStyle(sheet, cell, cell, style)
	}

	for i, emp := range employees {
		row := i + 4
		slip := slips[i]
		f.SetCellValue(sheet, "A"+strconv.Itoa(row), emp.FullName)
		f.SetCellValue(sheet, "B"+strconv.Itoa(row), slip.PresentDays)
		f.SetCellValue(sheet, "C"+strconv.Itoa(row), slip.LateDays)
		f.SetCellValue(sheet, "D"+strconv.Itoa(row), slip.Sales)
		f.SetCellValue(sheet, "E"+strconv.Itoa(row), slip.Base)
		f.SetCellValue(sheet, "F"+strconv.Itoa(row), slip.Commission)
		f.SetCellValue(sheet, "G"+strconv.Itoa(row), slip.Bonus)
		f.SetCellValue(sheet, "H"+strconv.Itoa(row), slip.Gross)
	}

	writeXLSX(c, f, fmt.Sprintf("Salary_%s.xlsx", now.Format("2006-01")))
}

// AttendanceSheetXLSX exports the month's day grid, one column per day.
func (h *ReportsHandler) AttendanceSheetXLSX(c *gin.Context) {
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

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	index, _ := f.NewSheet(sheet)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	style := xlsxHeaderStyle(f)
	f.SetCellValue(sheet, "A1", "Employee")
	f.SetCellStyle(sheet, "A1", "A1", style)
	for d := 1; d <= days; d++ {
		cell, _ := excelize.CoordinatesToCellName(d+1, 1)
		f.SetCellValue(sheet, cell, d)
		f.SetCellStyle(sheet, cell, cell, style)
	}

	for i, emp := range employees {
		row := i + 2
		f.SetCellValue(sheet, "A"+strconv.Itoa(row), emp.FullName)
		for d := 1; d <= days; d++ {
			if mark, ok := grid[emp.ID][d]; ok {
				cell, _ := excelize.CoordinatesToCellName(d+1, row)
				f.SetCellValue(sheet, cell, mark)
			}
		}
	}

	writeXLSX(c, f, fmt.Sprintf("Attendance_%s.xlsx", now.Format("2006-01")))
}
