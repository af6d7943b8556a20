package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Own-M/gainers-os/internal/models"
	"github.com/Own-M/gainers-os/internal/utils"
)

func TestDashboardRoutesByRole(t *testing.T) {
	db := newTestDB(t)
	clk := &fakeClock{now: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)}
	r := newRouter(db, clk, nil)

	admin := seedAdmin(t, db)
	empUser, _ := seedEmployee(t, db, "rahim", 50)
	clientUser, _ := seedClient(t, db, "tania", nil)

	w := doJSON(t, r, http.MethodGet, "/api/v1/dashboard", authToken(t, admin.ID, true), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", decodeBody(t, w)["role"])

	w = doJSON(t, r, http.MethodGet, "/api/v1/dashboard", authToken(t, empUser.ID, false), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "employee", decodeBody(t, w)["role"])

	w = doJSON(t, r, http.MethodGet, "/api/v1/dashboard", authToken(t, clientUser.ID, false), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "client", decodeBody(t, w)["role"])
}

func TestDashboardWithoutProfileIsForbidden(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, nil, nil)

	hash, err := utils.HashPassword("orphan-pass")
	require.NoError(t, err)
	orphan := models.User{Email: "orphan@example.com", FullName: "Orphan", PasswordHash: hash}
	require.NoError(t, db.Create(&orphan).Error)

	w := doJSON(t, r, http.MethodGet, "/api/v1/dashboard", authToken(t, orphan.ID, false), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminDashboardCountsToday(t *testing.T) {
	db := newTestDB(t)
	clk := &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	r := newRouter(db, clk, nil)

	admin := seedAdmin(t, db)
	u1, _ := seedEmployee(t, db, "rahim", 50)
	u2, _ := seedEmployee(t, db, "karim", 50)

	doJSON(t, r, http.MethodPost, "/api/v1/attendance/mark-own", authToken(t, u1.ID, false), map[string]any{"action": "check_in"})

	clk.Set(time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC))
	doJSON(t, r, http.MethodPost, "/api/v1/attendance/mark-own", authToken(t, u2.ID, false), map[string]any{"action": "check_in"})

	w := doJSON(t, r, http.MethodGet, "/api/v1/dashboard", authToken(t, admin.ID, true), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	assert.EqualValues(t, 1, body["present_today"])
	assert.EqualValues(t, 1, body["late_today"])
}

func TestClientPortalShowsProgressAndTickets(t *testing.T) {
	db := newTestDB(t)
	clk := &fakeClock{now: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)}
	r := newRouter(db, clk, nil)

	batch := models.Batch{Name: "Fall 2025", StudentLimit: 20}
	require.NoError(t, db.Create(&batch).Error)
	clientUser, client := seedClient(t, db, "tania", &batch.ID)
	require.NoError(t, db.Model(&client).Update("task_docs_received", true).Error)
	tok := authToken(t, clientUser.ID, false)

	w := doJSON(t, r, http.MethodPost, "/api/v1/portal/tickets", tok, map[string]any{
		"subject":     "cannot open checklist",
		"description": "page is blank",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/portal/call-requests", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/portal", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	assert.Equal(t, "client", body["role"])
	assert.EqualValues(t, 6, body["progress"])

	tickets, ok := body["tickets"].([]any)
	require.True(t, ok)
	assert.Len(t, tickets, 1)
}

func TestPortalRejectsEmployees(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, nil, nil)

	u, _ := seedEmployee(t, db, "rahim", 50)
	w := doJSON(t, r, http.MethodGet, "/api/v1/portal", authToken(t, u.ID, false), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
