package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Own-M/gainers-os/internal/models"
)

func TestLoginIssuesUsableToken(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, nil, nil)
	seedAdmin(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "Admin@Example.com",
		"password": "admin-pass",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	tok, ok := body["token"].(string)
	require.True(t, ok)
	user := body["user"].(map[string]any)
	assert.Equal(t, true, user["is_admin"])

	w = doJSON(t, r, http.MethodGet, "/api/v1/dashboard", tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, nil, nil)
	seedAdmin(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginLocksAfterFiveFailures(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, nil, nil)
	admin := seedAdmin(t, db)

	for i := 0; i < 5; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
			"email":    "admin@example.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	// Even the right password bounces while the lockout runs.
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "admin@example.com",
		"password": "admin-pass",
	})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var u models.User
	require.NoError(t, db.First(&u, admin.ID).Error)
	assert.Equal(t, 1, u.LockoutLevel)
	require.NotNil(t, u.LockoutUntil)
}

func TestProtectedRoutesNeedAToken(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, nil, nil)

	w := doJSON(t, r, http.MethodGet, "/api/v1/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/dashboard", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnlyRoutesRejectEmployees(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, nil, nil)

	u, _ := seedEmployee(t, db, "rahim", 50)
	tok := authToken(t, u.ID, false)

	w := doJSON(t, r, http.MethodPost, "/api/v1/expenses", tok, map[string]any{
		"purpose": "office chairs",
		"amount":  "1200.00",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
