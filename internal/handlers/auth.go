package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sinasezza/todolist-api/internal/middleware"
	"github.com/sinasezza/todolist-api/internal/services"
)

type AuthHandler struct {
	db          *gorm.DB
	authService services.AuthService
	tokenTTL    time.Duration
}

func NewAuthHandler(db *gorm.DB, authService services.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{db: db, authService: authService, tokenTTL: tokenTTL}
}

// Register creates a new account.
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(h.db, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateUsername):
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
		case errors.Is(err, services.ErrDuplicateEmail):
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
		case errors.Is(err, services.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login exchanges form-encoded credentials for a bearer token. The token is
// also set as an HTTP-only cookie so browser clients stay authenticated.
// POST /auth/token
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	token, err := h.authService.Login(h.db, username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.SetCookie(middleware.AccessTokenCookie, token, int(h.tokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Logout clears the access token cookie.
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
