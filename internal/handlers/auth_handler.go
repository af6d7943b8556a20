package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/Own-M/gainers-os/internal/middleware"
	"github.com/Own-M/gainers-os/internal/models"
	"github.com/Own-M/gainers-os/internal/utils"
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	Clock     func() time.Time
}

func NewAuthHandler(db *gorm.DB, secret string, clock func() time.Time) *AuthHandler {
	if clock == nil {
		clock = time.Now
	}
	return &AuthHandler{DB: db, JWTSecret: secret, Clock: clock}
}

type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	TOTPCode string `json:"totp_code"`
}

func lockMinutes(level int) int {
	if level <= 0 {
		return 5
	}
	return 5 * (level + 1)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	now := h.Clock()

	var u models.User
	if err := h.DB.Where("email = ?", email).First(&u).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if u.LockoutUntil != nil && now.Before(*u.LockoutUntil) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "locked", "until": u.LockoutUntil})
		return
	}

	if !utils.CheckPassword(u.PasswordHash, req.Password) {
		u.FailedLoginCount++
		if u.FailedLoginCount >= 5 {
			u.LockoutLevel++
			t := now.Add(time.Duration(lockMinutes(u.LockoutLevel-1)) * time.Minute)
			u.LockoutUntil = &t
			u.FailedLoginCount = 0
		}
		_ = h.DB.Save(&u).Error
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if u.TOTPEnabled {
		code := strings.TrimSpace(req.TOTPCode)
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "totp required"})
			return
		}
		if !utils.VerifyTOTP(code, u.TOTPSecret) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid totp"})
			return
		}
	}

	u.FailedLoginCount = 0
	u.LockoutUntil = nil
	_ = h.DB.Save(&u).Error

	claims := middleware.Claims{
		UserID:  u.ID,
		IsAdmin: u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign token failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"token":  signed,
		"user": gin.H{
			"id":        u.ID,
			"full_name": u.FullName,
			"email":     u.Email,
			"is_admin":  u.IsAdmin,
		},
	})
}

// Logout acknowledges the client discarding its token; tokens are stateless
// and simply expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, ok := middleware.CurrentIdentity(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetupTOTP issues a fresh secret for the calling account. The secret only
// becomes binding after VerifyTOTPSetup confirms a valid code.
func (h *AuthHandler) SetupTOTP(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
		return
	}

	secret, otpauth, err := utils.GenerateTOTPSecret("GainersOS", id.User.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "totp failed"})
		return
	}

	u := id.User
	u.TOTPSecret = secret
	u.TOTPEnabled = false
	if err := h.DB.Save(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "otpauth": otpauth})
}

type VerifyTotpReq struct {
	Code string `json:"code" binding:"required"`
}

func (h *AuthHandler) VerifyTOTPSetup(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
		return
	}

	var req VerifyTotpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	u := id.User
	if u.TOTPSecret == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "totp not initialized"})
		return
	}
	if !utils.VerifyTOTP(strings.TrimSpace(req.Code), u.TOTPSecret) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid totp"})
		return
	}

	u.TOTPEnabled = true
	if err := h.DB.Save(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "totp enabled"})
}
