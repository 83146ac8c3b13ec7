package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/sinasezza/todolist-api/internal/auth"
	"github.com/sinasezza/todolist-api/internal/cache"
	"github.com/sinasezza/todolist-api/internal/config"
	"github.com/sinasezza/todolist-api/internal/database"
	"github.com/sinasezza/todolist-api/internal/handlers"
	"github.com/sinasezza/todolist-api/internal/middleware"
	"github.com/sinasezza/todolist-api/internal/monitoring"
	"github.com/sinasezza/todolist-api/internal/services"
)

// Application holds all application dependencies and state
type Application struct {
	Config *config.Config
	DB     *gorm.DB
	Cache  cache.Cache
	Redis  *redis.Client
	Router *gin.Engine
	Server *http.Server

	Codec       *auth.TokenCodec
	AuthService services.AuthService
	TodoService services.TodoService
	UserService services.UserService
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize application: %v", err)
	}

	app.setupRoutes()
	app.startServer()
}

func initializeApplication(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config: cfg,
	}

	log.Println("🚀 Initializing TodoList API...")
	log.Printf("📋 Environment: %s", cfg.Server.Environment)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	app.DB = db
	log.Println("✅ Database connected and configured")

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}
	log.Println("✅ Database schema migrated")

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis unavailable: %v (continuing with memory cache only)", err)
		redisClient = nil
	} else {
		app.Redis = redisClient
		log.Println("✅ Redis connected")
	}

	if redisClient != nil {
		app.Cache = cache.NewMultiLevelCache(cache.NewRedisCache(redisClient))
		log.Println("✅ Multi-level cache initialized (Memory L1 + Redis L2)")
	} else {
		app.Cache = cache.NewMultiLevelCache(nil)
		log.Println("✅ Memory cache initialized (Redis fallback mode)")
	}

	app.Codec = auth.NewTokenCodec(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL)
	app.AuthService = services.NewAuthService(app.Codec)
	app.UserService = services.NewUserService()

	todoServiceImpl := services.NewTodoService()
	if app.Cache != nil {
		app.TodoService = services.NewCachedTodoService(todoServiceImpl, app.Cache)
		log.Println("✅ Cached todo service initialized")
	} else {
		app.TodoService = todoServiceImpl
		log.Println("✅ Todo service initialized")
	}

	monitoring.RegisterHealthCheck("database", func(ctx context.Context) error {
		return database.Health(app.DB)
	})
	monitoring.RegisterStatsProvider("database", func() map[string]interface{} {
		return database.Stats(app.DB)
	})
	monitoring.RegisterStatsProvider("cache", app.Cache.Stats)
	if app.Redis != nil {
		monitoring.RegisterHealthCheck("redis", func(ctx context.Context) error {
			return app.Redis.Ping(ctx).Err()
		})
	}

	log.Println("✅ All services initialized")

	return app, nil
}

func (app *Application) setupRoutes() {
	r := gin.New()

	// Global middleware stack (order matters!)
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryWithLog())
	r.Use(middleware.SecureHeader())
	r.Use(monitoring.MetricsMiddleware())

	rateLimit := rate.Limit(float64(app.Config.RateLimit.RequestsPerMin) / 60.0)
	r.Use(middleware.RateLimiter(rateLimit, app.Config.RateLimit.BurstSize))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://host.docker.internal"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health and monitoring endpoints (no auth required)
	r.GET("/health", monitoring.HealthHandler())
	r.GET("/ready", monitoring.ReadinessHandler())
	r.GET("/live", monitoring.LivenessHandler())
	r.GET("/metrics", monitoring.MetricsHandler())

	// Public authentication routes
	authHandler := handlers.NewAuthHandler(app.DB, app.AuthService, app.Codec.TTL())
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/token", authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
	}

	// Protected routes (require a valid access token)
	protected := r.Group("")
	protected.Use(middleware.Authenticate(app.Codec))
	{
		todoHandler := handlers.NewTodoHandler(app.DB, app.TodoService)
		todoRoutes := protected.Group("/todos")
		{
			todoRoutes.POST("", todoHandler.Create)
			todoRoutes.GET("", todoHandler.List)
			todoRoutes.GET("/:id", todoHandler.Get)
			todoRoutes.PUT("/:id", todoHandler.Update)
			todoRoutes.DELETE("/:id", todoHandler.Delete)
		}

		userHandler := handlers.NewUserHandler(app.DB, app.UserService)
		userRoutes := protected.Group("/users")
		{
			userRoutes.GET("/info", userHandler.Info)
			userRoutes.POST("/change-password", userHandler.ChangePassword)
			userRoutes.PUT("/change-phone-number", userHandler.ChangePhoneNumber)
		}

		adminHandler := handlers.NewAdminHandler(app.DB, app.TodoService)
		adminRoutes := protected.Group("/admin")
		adminRoutes.Use(middleware.RequirePrivileged())
		{
			adminRoutes.GET("/todos", adminHandler.ListTodos)
			adminRoutes.DELETE("/todo/:id", adminHandler.DeleteTodo)

			cacheHandler := handlers.NewCacheHandler(app.DB, app.Cache, app.TodoService)
			cacheRoutes := adminRoutes.Group("/cache")
			{
				cacheRoutes.GET("/stats", cacheHandler.Stats)
				cacheRoutes.POST("/warm", cacheHandler.Warm)
				cacheRoutes.DELETE("/clear", cacheHandler.Clear)
			}
		}
	}

	app.Router = r
}

func (app *Application) startServer() {
	addr := app.Config.GetServerAddr()

	app.Server = &http.Server{
		Addr:         addr,
		Handler:      app.Router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("🛑 Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.Server.Shutdown(ctx); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}

		app.cleanup()
		log.Println("✅ Server stopped gracefully")
	}()

	log.Printf("🚀 Server starting on %s", addr)
	log.Printf("📊 Metrics available at http://%s/metrics", addr)
	log.Printf("💚 Health check at http://%s/health", addr)

	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}

func (app *Application) cleanup() {
	log.Println("🧹 Cleaning up resources...")

	if app.Cache != nil {
		if err := app.Cache.Close(); err != nil {
			log.Printf("⚠️  Error closing cache: %v", err)
		}
	}

	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			log.Printf("⚠️  Error closing Redis: %v", err)
		}
	}

	if app.DB != nil {
		if err := database.Close(app.DB); err != nil {
			log.Printf("⚠️  Error closing database: %v", err)
		}
	}

	log.Println("✅ Cleanup complete")
}
