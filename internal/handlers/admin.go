package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/sinasezza/todolist-api/internal/services"
)

type AdminHandler struct {
	db          *gorm.DB
	todoService services.TodoService
}

func NewAdminHandler(db *gorm.DB, todoService services.TodoService) *AdminHandler {
	return &AdminHandler{db: db, todoService: todoService}
}

// ListTodos returns every todo across all owners.
// GET /admin/todos
func (h *AdminHandler) ListTodos(c *gin.Context) {
	todos, err := h.todoService.ListAll(h.db)
	if err != nil {
		handleTodoError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// DeleteTodo removes any user's todo by id. Malformed ids parse to uuid.Nil
// and fall out as 404, the same as any other id naming no row.
// DELETE /admin/todo/:id
func (h *AdminHandler) DeleteTodo(c *gin.Context) {
	id := uuid.FromStringOrNil(c.Param("id"))

	if err := h.todoService.DeleteAny(h.db, id); err != nil {
		handleTodoError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
