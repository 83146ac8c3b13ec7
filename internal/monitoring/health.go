package monitoring

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type CheckFunc func(ctx context.Context) error

type HealthCheck struct {
	Name      string        `json:"name"`
	Status    string        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration"`
	CheckedAt time.Time     `json:"checked_at"`
}

type healthChecker struct {
	mu     sync.RWMutex
	checks map[string]CheckFunc
}

var globalHealthChecker = &healthChecker{
	checks: make(map[string]CheckFunc),
}

// RegisterHealthCheck adds a named dependency probe evaluated by the health
// and readiness endpoints.
func RegisterHealthCheck(name string, check CheckFunc) {
	globalHealthChecker.mu.Lock()
	defer globalHealthChecker.mu.Unlock()
	globalHealthChecker.checks[name] = check
}

// RunHealthChecks evaluates every registered probe with a short deadline.
func RunHealthChecks() map[string]HealthCheck {
	globalHealthChecker.mu.RLock()
	checks := make(map[string]CheckFunc, len(globalHealthChecker.checks))
	for name, fn := range globalHealthChecker.checks {
		checks[name] = fn
	}
	globalHealthChecker.mu.RUnlock()

	results := make(map[string]HealthCheck, len(checks))
	for name, fn := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		start := time.Now()
		err := fn(ctx)
		cancel()

		result := HealthCheck{
			Name:      name,
			Status:    "healthy",
			Duration:  time.Since(start),
			CheckedAt: time.Now(),
		}
		if err != nil {
			result.Status = "unhealthy"
			result.Message = err.Error()
		}
		results[name] = result
	}
	return results
}

func allHealthy(checks map[string]HealthCheck) bool {
	for _, check := range checks {
		if check.Status != "healthy" {
			return false
		}
	}
	return true
}

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := RunHealthChecks()

		status := "healthy"
		code := http.StatusOK
		if !allHealthy(checks) {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"checks":    checks,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

func ReadinessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := RunHealthChecks()

		if !allHealthy(checks) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

func LivenessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		globalMetrics.mu.RLock()
		start := globalMetrics.StartTime
		globalMetrics.mu.RUnlock()

		c.JSON(http.StatusOK, gin.H{
			"status": "alive",
			"uptime": time.Since(start).String(),
		})
	}
}
