package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sinasezza/todolist-api/internal/middleware"
	"github.com/sinasezza/todolist-api/internal/services"
)

type UserHandler struct {
	db          *gorm.DB
	userService services.UserService
}

func NewUserHandler(db *gorm.DB, userService services.UserService) *UserHandler {
	return &UserHandler{db: db, userService: userService}
}

// Info returns the authenticated user's profile.
// GET /users/info
func (h *UserHandler) Info(c *gin.Context) {
	claims := middleware.CurrentClaims(c)

	user, err := h.userService.GetByID(h.db, claims.UserID)
	if err != nil {
		handleUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword verifies the current password before storing a new hash.
// POST /users/change-password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	claims := middleware.CurrentClaims(c)

	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.userService.ChangePassword(h.db, claims.UserID, req.Password, req.NewPassword)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "error on password change"})
			return
		}
		handleUserError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "password changed"})
}

// ChangePhoneNumber updates the stored phone number.
// PUT /users/change-phone-number
func (h *UserHandler) ChangePhoneNumber(c *gin.Context) {
	claims := middleware.CurrentClaims(c)

	var req services.ChangePhoneNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.ChangePhoneNumber(h.db, claims.UserID, req.PhoneNumber); err != nil {
		handleUserError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "phone number changed"})
}
