package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"github.com/sinasezza/todolist-api/internal/utils"
)

const defaultJWTSecret = "default_secret_change_in_production"

type ServerConfig struct {
	Host         string
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type JWTConfig struct {
	Secret string
	Issuer string
	// AccessTokenTTL is deployment-tunable; 20 minutes by default.
	AccessTokenTTL time.Duration
}

type RateLimitConfig struct {
	RequestsPerMin int
	BurstSize      int
}

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

// LoadConfig builds the process configuration from the environment, reading a
// .env file first when one is present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         utils.GetEnv("SERVER_HOST", "0.0.0.0"),
			Port:         utils.GetEnv("SERVER_PORT", "8080"),
			Environment:  utils.GetEnv("ENVIRONMENT", "development"),
			ReadTimeout:  utils.GetEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: utils.GetEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  utils.GetEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			DSN:             utils.GetEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=todolist port=5432 sslmode=disable"),
			MaxOpenConns:    utils.GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    utils.GetEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: utils.GetEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: utils.GetEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:         utils.GetEnv("REDIS_HOST", "localhost"),
			Port:         utils.GetEnv("REDIS_PORT", "6379"),
			Password:     utils.GetEnv("REDIS_PASSWORD", ""),
			DB:           utils.GetEnvAsInt("REDIS_DB", 0),
			PoolSize:     utils.GetEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: utils.GetEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
			MaxRetries:   utils.GetEnvAsInt("REDIS_MAX_RETRIES", 3),
			DialTimeout:  utils.GetEnvAsDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  utils.GetEnvAsDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: utils.GetEnvAsDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		JWT: JWTConfig{
			Secret:         utils.GetEnv("JWT_SECRET_KEY", defaultJWTSecret),
			Issuer:         utils.GetEnv("JWT_ISSUER", "todolist-api"),
			AccessTokenTTL: utils.GetEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 20*time.Minute),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMin: utils.GetEnvAsInt("RATE_LIMIT_REQUESTS_PER_MIN", 300),
			BurstSize:      utils.GetEnvAsInt("RATE_LIMIT_BURST_SIZE", 20),
		},
	}

	if cfg.IsProduction() && cfg.JWT.Secret == defaultJWTSecret {
		return nil, errors.New("JWT_SECRET_KEY must be set in production")
	}
	if cfg.JWT.AccessTokenTTL <= 0 {
		return nil, errors.New("JWT_ACCESS_TOKEN_TTL must be positive")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
