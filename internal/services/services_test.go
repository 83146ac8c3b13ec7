package services

import (
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sinasezza/todolist-api/internal/auth"
	"github.com/sinasezza/todolist-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Todo{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func testCodec() *auth.TokenCodec {
	return auth.NewTokenCodec("test-secret", "todolist-api", 20*time.Minute)
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	hashed, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		ID:             uuid.Must(uuid.NewV4()),
		Username:       username,
		Email:          username + "@example.com",
		FirstName:      "Test",
		LastName:       "User",
		HashedPassword: hashed,
		Role:           role,
		IsActive:       true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

func createTestTodo(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string) *models.Todo {
	t.Helper()

	todo := models.Todo{
		ID:      uuid.Must(uuid.NewV4()),
		OwnerID: ownerID,
		Title:   title,
	}
	if err := db.Create(&todo).Error; err != nil {
		t.Fatalf("Failed to create test todo: %v", err)
	}
	return &todo
}
