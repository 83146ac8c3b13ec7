package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/sinasezza/todolist-api/internal/cache"
	"github.com/sinasezza/todolist-api/internal/models"
	"github.com/sinasezza/todolist-api/internal/services"
)

const warmupWorkers = 4

type CacheHandler struct {
	db          *gorm.DB
	cache       cache.Cache
	todoService services.TodoService
}

func NewCacheHandler(db *gorm.DB, cacheInstance cache.Cache, todoService services.TodoService) *CacheHandler {
	return &CacheHandler{db: db, cache: cacheInstance, todoService: todoService}
}

// Stats returns cache statistics.
// GET /admin/cache/stats
func (h *CacheHandler) Stats(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cache is not initialized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cache": h.cache.Stats()})
}

// Warm pre-populates the default todo list page for every user that owns at
// least one todo. The worker pool runs within the request and the report is
// returned to the caller.
// POST /admin/cache/warm
func (h *CacheHandler) Warm(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cache is not initialized"})
		return
	}

	var ownerIDs []uuid.UUID
	if err := h.db.Model(&models.Todo{}).Distinct().Pluck("owner_id", &ownerIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	jobs := make([]cache.WarmupJob, 0, len(ownerIDs))
	for _, ownerID := range ownerIDs {
		todos, total, err := h.todoService.ListOwned(h.db, ownerID, "created_at", "desc", "1", "10")
		if err != nil {
			continue
		}
		jobs = append(jobs, cache.WarmupJob{
			Key: services.TodoListCacheKey(ownerID, "created_at", "desc", "1", "10"),
			Data: gin.H{
				"todos": todos,
				"total": total,
			},
			TTL: 15 * time.Minute,
		})
	}

	pool := cache.NewWarmupPool(warmupWorkers, h.cache)
	report := pool.Run(jobs)

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
		"duration":  report.Duration.String(),
	})
}

// Clear drops every cached entry.
// DELETE /admin/cache/clear
func (h *CacheHandler) Clear(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cache is not initialized"})
		return
	}
	if err := h.cache.DeletePattern("*"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cache"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "cache cleared"})
}
