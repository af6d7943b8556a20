package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/Own-M/gainers-os/internal/models"
)

type Claims struct {
	UserID  uint `json:"user_id"`
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// Role tags the resolved identity. Exactly one role applies per request:
// admin wins over a linked employee profile, employee over client.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
	RoleNone     Role = "none"
)

// Identity is resolved once per request and carried in the gin context, so
// handlers never re-derive who is calling.
type Identity struct {
	Role     Role
	User     models.User
	Employee *models.Employee
	Client   *models.EnrolledClient
}

const identityKey = "identity"

// AuthRequired validates the bearer token and resolves the caller's identity
// against the profile tables.
func AuthRequired(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}
		tok := strings.TrimPrefix(h, "Bearer ")

		claims := &Claims{}
		parsed, err := jwt.ParseWithClaims(tok, claims, func(token *jwt.Token) (any, error) {
			return []byte(secret), nil
		})
		if err != nil || !parsed.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			c.Abort()
			return
		}

		c.Set(identityKey, resolveIdentity(db, user))
		c.Next()
	}
}

func resolveIdentity(db *gorm.DB, user models.User) Identity {
	if user.IsAdmin {
		return Identity{Role: RoleAdmin, User: user}
	}

	var emp models.Employee
	if err := db.Where("user_id = ?", user.ID).First(&emp).Error; err == nil {
		return Identity{Role: RoleEmployee, User: user, Employee: &emp}
	}

	var client models.EnrolledClient
	if err := db.Where("user_id = ?", user.ID).First(&client).Error; err == nil {
		return Identity{Role: RoleClient, User: user, Client: &client}
	}

	return Identity{Role: RoleNone, User: user}
}

// CurrentIdentity reads the identity resolved by AuthRequired.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

func RequireAdmin() gin.HandlerFunc {
	return requireRole(RoleAdmin)
}

func RequireEmployee() gin.HandlerFunc {
	return requireRole(RoleEmployee)
}

func RequireClient() gin.HandlerFunc {
	return requireRole(RoleClient)
}

func requireRole(role Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok || id.Role != role {
			c.JSON(http.StatusForbidden, gin.H{"error": string(role) + " only"})
			c.Abort()
			return
		}
		c.Next()
	}
}
