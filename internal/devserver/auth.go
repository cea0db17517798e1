package devserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sekolahdigital/tamuadmin/internal/domain"
	"github.com/sekolahdigital/tamuadmin/internal/validate"
)

// authHandler issues and revokes bearer tokens for the admin account.
type authHandler struct {
	db          *gorm.DB
	secret      string
	tokenExpiry time.Duration
}

func newAuthHandler(db *gorm.DB, secret string, tokenExpiry time.Duration) *authHandler {
	return &authHandler{db: db, secret: secret, tokenExpiry: tokenExpiry}
}

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /login. A matching email and password yields an HS256
// token plus the admin profile; anything else answers 401 without revealing
// which part was wrong.
func (h *authHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		fail(c, domain.NewAppError(domain.CodeValidation, "Invalid request body", nil))
		return
	}
	if err := validate.Struct(form); err != nil {
		fail(c, err)
		return
	}

	var admin domain.Admin
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", form.Email).
		First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.rejectLogin(c)
			return
		}
		fail(c, domain.NewAppError(domain.CodeInternal, "Server Error", err))
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(form.Password)) != nil {
		h.rejectLogin(c)
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.Itoa(admin.ID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.tokenExpiry)),
	})
	signed, err := token.SignedString([]byte(h.secret))
	if err != nil {
		fail(c, domain.NewAppError(domain.CodeInternal, "Server Error", err))
		return
	}

	ok(c, "", gin.H{
		"access_token": signed,
		"user":         admin,
	})
}

func (h *authHandler) rejectLogin(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Email atau password salah",
	})
}

// Logout handles POST /logout. Tokens are stateless, so revocation is the
// client discarding its copy; the endpoint exists to honor the contract.
func (h *authHandler) Logout(c *gin.Context) {
	ok(c, "Logout berhasil", nil)
}

// seedAdmin ensures the configured admin account exists. The password is
// only hashed on first creation; changing it in config requires wiping the
// database file.
func seedAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&domain.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("check admin account: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := domain.Admin{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}
	return nil
}
