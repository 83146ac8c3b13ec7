package services

import (
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/sinasezza/todolist-api/internal/auth"
	"github.com/sinasezza/todolist-api/internal/models"
)

type ChangePasswordRequest struct {
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type ChangePhoneNumberRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,numeric,min=10,max=11"`
}

type UserService interface {
	GetByID(db *gorm.DB, id uuid.UUID) (*models.User, error)
	ChangePassword(db *gorm.DB, id uuid.UUID, current, newPassword string) error
	ChangePhoneNumber(db *gorm.DB, id uuid.UUID, phoneNumber string) error
}

type UserServiceImpl struct{}

func NewUserService() *UserServiceImpl {
	return &UserServiceImpl{}
}

func (s *UserServiceImpl) GetByID(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ChangePassword re-hashes only after the current password verifies; the
// stored hash is untouched otherwise.
func (s *UserServiceImpl) ChangePassword(db *gorm.DB, id uuid.UUID, current, newPassword string) error {
	user, err := s.GetByID(db, id)
	if err != nil {
		return err
	}

	if !auth.VerifyPassword(user.HashedPassword, current) {
		return ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return db.Model(&models.User{}).Where("id = ?", id).
		Update("hashed_password", hashed).Error
}

func (s *UserServiceImpl) ChangePhoneNumber(db *gorm.DB, id uuid.UUID, phoneNumber string) error {
	res := db.Model(&models.User{}).Where("id = ?", id).
		Update("phone_number", phoneNumber)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
