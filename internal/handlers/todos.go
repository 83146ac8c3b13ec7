package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/sinasezza/todolist-api/internal/middleware"
	"github.com/sinasezza/todolist-api/internal/models"
	"github.com/sinasezza/todolist-api/internal/services"
)

type TodoHandler struct {
	db          *gorm.DB
	todoService services.TodoService
}

func NewTodoHandler(db *gorm.DB, todoService services.TodoService) *TodoHandler {
	return &TodoHandler{db: db, todoService: todoService}
}

// Create adds a todo owned by the authenticated user.
// POST /todos
func (h *TodoHandler) Create(c *gin.Context) {
	claims := middleware.CurrentClaims(c)

	var req services.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todoService.Create(h.db, claims.UserID, req)
	if err != nil {
		handleTodoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// List returns the authenticated user's todos, paginated and sorted.
// GET /todos
func (h *TodoHandler) List(c *gin.Context) {
	claims := middleware.CurrentClaims(c)

	sortBy := c.DefaultQuery("sortBy", "created_at")
	order := c.DefaultQuery("order", "desc")
	page := c.DefaultQuery("page", "1")
	pageSize := c.DefaultQuery("pageSize", "10")

	todos, total, err := h.todoService.ListOwned(h.db, claims.UserID, sortBy, order, page, pageSize)
	if err != nil {
		handleTodoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"todos": todos,
		"total": total,
	})
}

// Get returns a single todo. Regular users only see their own; privileged
// users can fetch any todo by id. A malformed id parses to uuid.Nil, which
// matches no row: every id that does not name an accessible todo reads as 404.
// GET /todos/:id
func (h *TodoHandler) Get(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	id := uuid.FromStringOrNil(c.Param("id"))

	var (
		todo *models.Todo
		err  error
	)
	if models.IsPrivileged(claims.Role) {
		todo, err = h.todoService.GetAny(h.db, id)
	} else {
		todo, err = h.todoService.GetOwned(h.db, claims.UserID, id)
	}
	if err != nil {
		handleTodoError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// Update replaces a todo's fields. Ownership rules match Get.
// PUT /todos/:id
func (h *TodoHandler) Update(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	id := uuid.FromStringOrNil(c.Param("id"))

	var req services.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	if models.IsPrivileged(claims.Role) {
		err = h.todoService.UpdateAny(h.db, id, req)
	} else {
		err = h.todoService.UpdateOwned(h.db, claims.UserID, id, req)
	}
	if err != nil {
		handleTodoError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// Delete removes a todo. Ownership rules match Get.
// DELETE /todos/:id
func (h *TodoHandler) Delete(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	id := uuid.FromStringOrNil(c.Param("id"))

	var err error
	if models.IsPrivileged(claims.Role) {
		err = h.todoService.DeleteAny(h.db, id)
	} else {
		err = h.todoService.DeleteOwned(h.db, claims.UserID, id)
	}
	if err != nil {
		handleTodoError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
