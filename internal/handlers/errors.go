package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sinasezza/todolist-api/internal/services"
)

func handleTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTodoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
