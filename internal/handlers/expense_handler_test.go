package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Own-M/gainers-os/internal/models"
)

func seedCompany(t *testing.T, db *gorm.DB) models.Company {
	t.Helper()
	company := models.Company{Name: "Gainers"}
	require.NoError(t, db.FirstOrCreate(&company, models.Company{Name: "Gainers"}).Error)
	return company
}

func TestAddExpenseGeneratesVoucher(t *testing.T) {
	db := newTestDB(t)
	clk := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	r := newRouter(db, clk, nil)

	admin := seedAdmin(t, db)
	company := seedCompany(t, db)
	tok := authToken(t, admin.ID, true)

	w := doJSON(t, r, http.MethodPost, "/api/v1/expenses", tok, map[string]any{
		"company_id":  company.ID,
		"description": "office chairs",
		"amount":      "1250.50",
		"paid_to":     "Furniture Mart",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var row models.Expense
	require.NoError(t, db.Where("description = ?", "office chairs").First(&row).Error)
	assert.Regexp(t, `^EXP-[0-9A-F]{8}$`, row.VoucherNo)
	assert.Equal(t, "2025-03-10", row.Date)
	assert.True(t, row.Amount.Equal(decimal.RequireFromString("1250.50")))
}

func TestAddExpenseRejectsDuplicateVoucher(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, nil, nil)

	admin := seedAdmin(t, db)
	company := seedCompany(t, db)
	tok := authToken(t, admin.ID, true)

	body := map[string]any{
		"company_id":  company.ID,
		"voucher_no":  "EXP-REUSED01",
		"date":        "2025-03-01",
		"description": "printer toner",
		"amount":      "300.00",
	}
	w := doJSON(t, r, http.MethodPost, "/api/v1/expenses", tok, body)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/expenses", tok, body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "voucher_no already used", decodeBody(t, w)["error"])
}

func TestAddExpenseRejectsBadAmount(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, nil, nil)

	admin := seedAdmin(t, db)
	company := seedCompany(t, db)
	tok := authToken(t, admin.ID, true)

	w := doJSON(t, r, http.MethodPost, "/api/v1/expenses", tok, map[string]any{
		"company_id":  company.ID,
		"description": "snacks",
		"amount":      "lots",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSalesAddDefaultsDate(t *testing.T) {
	db := newTestDB(t)
	clk := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	r := newRouter(db, clk, nil)

	admin := seedAdmin(t, db)
	_, emp := seedEmployee(t, db, "rahim", 50)
	tok := authToken(t, admin.ID, true)

	w := doJSON(t, r, http.MethodPost, "/api/v1/sales", tok, map[string]any{
		"employee_id": emp.ID,
		"sale_count":  3,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var row models.SalesRecord
	require.NoError(t, db.Where("employee_id = ?", emp.ID).First(&row).Error)
	assert.Equal(t, "2025-03-10", row.Date)
	assert.Equal(t, 3, row.Count)
}

func TestCreateEmployeeWithLogin(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, nil, nil)

	admin := seedAdmin(t, db)
	company := seedCompany(t, db)
	tok := authToken(t, admin.ID, true)

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/employees", tok, map[string]any{
		"company_id": company.ID,
		"full_name":  "Karim",
		"email":      "Karim@Example.com",
		"password":   "karim-pass",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var emp models.Employee
	require.NoError(t, db.Where("full_name = ?", "Karim").First(&emp).Error)
	assert.True(t, emp.HourlyRate.Equal(decimal.NewFromInt(50)))
	assert.True(t, emp.TransportAllowance.Equal(decimal.NewFromInt(910)))
	assert.Equal(t, 10, emp.CasualLeaveBal)
	assert.Equal(t, 14, emp.SickLeaveBal)
	require.NotNil(t, emp.UserID)

	var user models.User
	require.NoError(t, db.First(&user, *emp.UserID).Error)
	assert.Equal(t, "karim@example.com", user.Email)

	// The new login lands on the employee dashboard.
	w = doJSON(t, r, http.MethodGet, "/api/v1/dashboard", authToken(t, user.ID, false), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "employee", decodeBody(t, w)["role"])
}

func TestCreateEmployeeRejectsBadRate(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, nil, nil)

	admin := seedAdmin(t, db)
	company := seedCompany(t, db)
	tok := authToken(t, admin.ID, true)

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/employees", tok, map[string]any{
		"company_id":  company.ID,
		"full_name":   "Karim",
		"hourly_rate": "fifty",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
