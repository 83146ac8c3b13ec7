package services

import (
	"errors"
	"testing"

	"github.com/gofrs/uuid"

	"github.com/sinasezza/todolist-api/internal/auth"
	"github.com/sinasezza/todolist-api/internal/models"
)

func TestUserService_GetByID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService()
	alice := createTestUser(t, db, "alice", models.RoleUser)

	got, err := svc.GetByID(db, alice.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("Expected username 'alice', got %q", got.Username)
	}

	if _, err := svc.GetByID(db, uuid.Must(uuid.NewV4())); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService()
	alice := createTestUser(t, db, "alice", models.RoleUser)

	if err := svc.ChangePassword(db, alice.ID, "password123", "newpassword456"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	var updated models.User
	if err := db.First(&updated, "id = ?", alice.ID).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if !auth.VerifyPassword(updated.HashedPassword, "newpassword456") {
		t.Error("Expected new password to verify after change")
	}
	if auth.VerifyPassword(updated.HashedPassword, "password123") {
		t.Error("Expected old password to stop verifying after change")
	}
}

func TestUserService_ChangePassword_WrongCurrent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService()
	alice := createTestUser(t, db, "alice", models.RoleUser)

	err := svc.ChangePassword(db, alice.ID, "wrong-password", "newpassword456")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
	}

	// The stored hash must be untouched after a refused change.
	var updated models.User
	if err := db.First(&updated, "id = ?", alice.ID).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if !auth.VerifyPassword(updated.HashedPassword, "password123") {
		t.Error("Expected original password to keep verifying")
	}
}

func TestUserService_ChangePhoneNumber(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService()
	alice := createTestUser(t, db, "alice", models.RoleUser)

	if err := svc.ChangePhoneNumber(db, alice.ID, "09123456789"); err != nil {
		t.Fatalf("ChangePhoneNumber failed: %v", err)
	}

	var updated models.User
	if err := db.First(&updated, "id = ?", alice.ID).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if updated.PhoneNumber != "09123456789" {
		t.Errorf("Expected phone number to be updated, got %q", updated.PhoneNumber)
	}

	if err := svc.ChangePhoneNumber(db, uuid.Must(uuid.NewV4()), "09123456789"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}
