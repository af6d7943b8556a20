package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Own-M/gainers-os/internal/handlers"
	"github.com/Own-M/gainers-os/internal/middleware"
	"github.com/Own-M/gainers-os/internal/models"
	"github.com/Own-M/gainers-os/internal/routes"
	"github.com/Own-M/gainers-os/internal/storage"
	"github.com/Own-M/gainers-os/internal/utils"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One in-memory database means exactly one connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, storage.Migrate(db))
	return db
}

// fakeClock lets tests move the wall clock between requests.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time  { return f.now }
func (f *fakeClock) Set(t time.Time) { f.now = t }

func newRouter(db *gorm.DB, clk *fakeClock, importer handlers.LeadImporter) *gin.Engine {
	opts := routes.Options{JWTSecret: testSecret, Importer: importer}
	if clk != nil {
		opts.Clock = clk.Now
	}
	return routes.NewRouter(db, opts)
}

func seedAdmin(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	hash, err := utils.HashPassword("admin-pass")
	require.NoError(t, err)
	u := models.User{Email: "admin@example.com", FullName: "Admin", PasswordHash: hash, IsAdmin: true}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedEmployee(t *testing.T, db *gorm.DB, name string, rate int64) (models.User, models.Employee) {
	t.Helper()
	hash, err := utils.HashPassword("emp-pass")
	require.NoError(t, err)
	u := models.User{Email: name + "@example.com", FullName: name, PasswordHash: hash}
	require.NoError(t, db.Create(&u).Error)

	company := models.Company{Name: "Gainers"}
	require.NoError(t, db.FirstOrCreate(&company, models.Company{Name: "Gainers"}).Error)

	emp := models.Employee{
		UserID:             &u.ID,
		CompanyID:          company.ID,
		FullName:           name,
		HourlyRate:         decimal.NewFromInt(rate),
		TransportAllowance: decimal.NewFromInt(910),
		FoodAllowance:      decimal.NewFromInt(910),
		CasualLeaveBal:     10,
		SickLeaveBal:       14,
	}
	require.NoError(t, db.Create(&emp).Error)
	return u, emp
}

func seedClient(t *testing.T, db *gorm.DB, name string, batchID *uint) (models.User, models.EnrolledClient) {
	t.Helper()
	hash, err := utils.HashPassword("client-pass")
	require.NoError(t, err)
	u := models.User{Email: name + "@example.com", FullName: name, PasswordHash: hash}
	require.NoError(t, db.Create(&u).Error)

	cl := models.EnrolledClient{
		UserID:  &u.ID,
		BatchID: batchID,
		Name:    name,
		Email:   u.Email,
		Phone:   "0170000000",
	}
	require.NoError(t, db.Create(&cl).Error)
	return u, cl
}

func authToken(t *testing.T, userID uint, isAdmin bool) string {
	t.Helper()
	claims := middleware.Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
