package monitoring

import (
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics aggregates request counters for the whole process.
type Metrics struct {
	mu sync.RWMutex

	RequestCount    int64            `json:"request_count"`
	RequestDuration time.Duration    `json:"avg_request_duration"`
	ActiveRequests  int64            `json:"active_requests"`
	ErrorCount      int64            `json:"error_count"`
	StatusCodes     map[string]int64 `json:"status_codes"`
	Endpoints       map[string]int64 `json:"endpoints"`
	StartTime       time.Time        `json:"start_time"`
	LastRequest     time.Time        `json:"last_request"`

	totalDuration time.Duration
}

var globalMetrics = &Metrics{
	StatusCodes: make(map[string]int64),
	Endpoints:   make(map[string]int64),
	StartTime:   time.Now(),
}

// MetricsMiddleware records count, duration, status and endpoint for every
// request passing through the router.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		globalMetrics.mu.Lock()
		globalMetrics.ActiveRequests++
		globalMetrics.mu.Unlock()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		endpoint := c.Request.Method + " " + c.FullPath()

		globalMetrics.mu.Lock()
		globalMetrics.ActiveRequests--
		globalMetrics.RequestCount++
		globalMetrics.totalDuration += duration
		globalMetrics.RequestDuration = globalMetrics.totalDuration / time.Duration(globalMetrics.RequestCount)
		globalMetrics.StatusCodes[http.StatusText(status)]++
		globalMetrics.Endpoints[endpoint]++
		globalMetrics.LastRequest = time.Now()
		if status >= http.StatusInternalServerError {
			globalMetrics.ErrorCount++
		}
		globalMetrics.mu.Unlock()
	}
}

// GetMetrics returns a copy safe to serialize.
func GetMetrics() Metrics {
	globalMetrics.mu.RLock()
	defer globalMetrics.mu.RUnlock()

	snapshot := Metrics{
		RequestCount:    globalMetrics.RequestCount,
		RequestDuration: globalMetrics.RequestDuration,
		ActiveRequests:  globalMetrics.ActiveRequests,
		ErrorCount:      globalMetrics.ErrorCount,
		StatusCodes:     make(map[string]int64, len(globalMetrics.StatusCodes)),
		Endpoints:       make(map[string]int64, len(globalMetrics.Endpoints)),
		StartTime:       globalMetrics.StartTime,
		LastRequest:     globalMetrics.LastRequest,
	}
	for k, v := range globalMetrics.StatusCodes {
		snapshot.StatusCodes[k] = v
	}
	for k, v := range globalMetrics.Endpoints {
		snapshot.Endpoints[k] = v
	}
	return snapshot
}

type MemoryMetrics struct {
	Alloc      uint64 `json:"alloc_mb"`
	TotalAlloc uint64 `json:"total_alloc_mb"`
	Sys        uint64 `json:"sys_mb"`
	NumGC      uint32 `json:"num_gc"`
}

type SystemMetrics struct {
	Uptime         time.Duration `json:"uptime"`
	GoroutineCount int           `json:"goroutine_count"`
	CPUCount       int           `json:"cpu_count"`
	GoVersion      string        `json:"go_version"`
	MemoryUsage    MemoryMetrics `json:"memory_usage"`
}

func GetSystemMetrics() SystemMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	globalMetrics.mu.RLock()
	start := globalMetrics.StartTime
	globalMetrics.mu.RUnlock()

	return SystemMetrics{
		Uptime:         time.Since(start),
		GoroutineCount: runtime.NumGoroutine(),
		CPUCount:       runtime.NumCPU(),
		GoVersion:      runtime.Version(),
		MemoryUsage: MemoryMetrics{
			Alloc:      bToMb(m.Alloc),
			TotalAlloc: bToMb(m.TotalAlloc),
			Sys:        bToMb(m.Sys),
			NumGC:      m.NumGC,
		},
	}
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}

type statsRegistry struct {
	mu        sync.RWMutex
	providers map[string]func() map[string]interface{}
}

var globalStatsRegistry = &statsRegistry{
	providers: make(map[string]func() map[string]interface{}),
}

// RegisterStatsProvider adds a named counter source (database pool, cache)
// reported by the metrics endpoint alongside the request metrics.
func RegisterStatsProvider(name string, provider func() map[string]interface{}) {
	globalStatsRegistry.mu.Lock()
	defer globalStatsRegistry.mu.Unlock()
	globalStatsRegistry.providers[name] = provider
}

func collectStats() map[string]map[string]interface{} {
	globalStatsRegistry.mu.RLock()
	defer globalStatsRegistry.mu.RUnlock()

	stats := make(map[string]map[string]interface{}, len(globalStatsRegistry.providers))
	for name, provider := range globalStatsRegistry.providers {
		stats[name] = provider()
	}
	return stats
}

// MetricsHandler serves the aggregated application and system metrics plus
// every registered stats provider under its own key.
func MetricsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response := gin.H{
			"application": GetMetrics(),
			"system":      GetSystemMetrics(),
			"timestamp":   time.Now().Format(time.RFC3339),
		}
		for name, stats := range collectStats() {
			response[name] = stats
		}
		c.JSON(http.StatusOK, response)
	}
}
