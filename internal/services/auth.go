package services

import (
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/sinasezza/todolist-api/internal/auth"
	"github.com/sinasezza/todolist-api/internal/models"
)

type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"first_name" binding:"required,max=50"`
	LastName    string `json:"last_name" binding:"required,max=50"`
	Role        string `json:"role" binding:"omitempty,oneof=user admin superuser"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,numeric,min=10,max=11"`
}

type AuthService interface {
	Register(db *gorm.DB, req RegisterRequest) (*models.User, error)
	Login(db *gorm.DB, username, password string) (string, error)
}

type AuthServiceImpl struct {
	codec *auth.TokenCodec
}

func NewAuthService(codec *auth.TokenCodec) *AuthServiceImpl {
	return &AuthServiceImpl{codec: codec}
}

// Register creates an active user with a hashed password. Username and email
// uniqueness is checked before insert; the unique indexes are the backstop.
func (s *AuthServiceImpl) Register(db *gorm.DB, req RegisterRequest) (*models.User, error) {
	var existing models.User
	if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// The binding tag filters roles at the edge; the service enforces the
	// closed set for callers that bypass binding.
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	switch role {
	case models.RoleUser, models.RoleAdmin, models.RoleSuperuser:
	default:
		return nil, ErrInvalidRole
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:             uuid.Must(uuid.NewV4()),
		Username:       req.Username,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		HashedPassword: hashed,
		Role:           role,
		PhoneNumber:    req.PhoneNumber,
		IsActive:       true,
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Login verifies the credentials and issues an access token. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *AuthServiceImpl) Login(db *gorm.DB, username, password string) (string, error) {
	var user models.User
	err := db.Where("username = ? AND is_active = ?", username, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.VerifyPassword(user.HashedPassword, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.codec.Encode(user.Username, user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
