package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type Todo struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	OwnerID     uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Priority    int       `json:"priority" gorm:"not null;default:1"`
	Completed   bool      `json:"completed" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
