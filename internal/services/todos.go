package services

import (
	"errors"
	"strconv"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/sinasezza/todolist-api/internal/models"
)

type TodoRequest struct {
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description" binding:"omitempty,min=3,max=100"`
	Priority    int    `json:"priority" binding:"required,gte=1,lte=5"`
	Completed   bool   `json:"completed"`
}

// TodoService performs todo CRUD. The Owned methods never expose rows the
// given owner does not hold; a row owned by someone else is reported exactly
// like an absent one. The Any methods bypass the owner filter and back the
// admin endpoints.
type TodoService interface {
	Create(db *gorm.DB, ownerID uuid.UUID, req TodoRequest) (*models.Todo, error)
	GetOwned(db *gorm.DB, ownerID, id uuid.UUID) (*models.Todo, error)
	ListOwned(db *gorm.DB, ownerID uuid.UUID, sortBy, order, page, pageSize string) ([]models.Todo, int64, error)
	UpdateOwned(db *gorm.DB, ownerID, id uuid.UUID, req TodoRequest) error
	DeleteOwned(db *gorm.DB, ownerID, id uuid.UUID) error

	GetAny(db *gorm.DB, id uuid.UUID) (*models.Todo, error)
	ListAll(db *gorm.DB) ([]models.Todo, error)
	UpdateAny(db *gorm.DB, id uuid.UUID, req TodoRequest) error
	DeleteAny(db *gorm.DB, id uuid.UUID) error
}

type TodoServiceImpl struct{}

func NewTodoService() *TodoServiceImpl {
	return &TodoServiceImpl{}
}

func (s *TodoServiceImpl) Create(db *gorm.DB, ownerID uuid.UUID, req TodoRequest) (*models.Todo, error) {
	todo := models.Todo{
		ID:          uuid.Must(uuid.NewV4()),
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Completed:   req.Completed,
	}
	if err := db.Create(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (s *TodoServiceImpl) GetOwned(db *gorm.DB, ownerID, id uuid.UUID) (*models.Todo, error) {
	var todo models.Todo
	err := db.Where("id = ? AND owner_id = ?", id, ownerID).First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return &todo, nil
}

func (s *TodoServiceImpl) ListOwned(db *gorm.DB, ownerID uuid.UUID, sortBy, order, page, pageSize string) ([]models.Todo, int64, error) {
	allowedSort := map[string]bool{"created_at": true, "updated_at": true, "title": true, "priority": true}
	if !allowedSort[sortBy] {
		sortBy = "created_at"
	}
	if order != "asc" && order != "desc" {
		order = "desc"
	}

	p := 1
	ps := 10
	if v, err := strconv.Atoi(page); err == nil && v > 0 {
		p = v
	}
	if v, err := strconv.Atoi(pageSize); err == nil && v > 0 && v <= 100 {
		ps = v
	}
	offset := (p - 1) * ps

	var total int64
	if err := db.Model(&models.Todo{}).Where("owner_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var todos []models.Todo
	err := db.Where("owner_id = ?", ownerID).
		Order(sortBy + " " + order).Offset(offset).Limit(ps).
		Find(&todos).Error
	return todos, total, err
}

func (s *TodoServiceImpl) UpdateOwned(db *gorm.DB, ownerID, id uuid.UUID, req TodoRequest) error {
	res := db.Model(&models.Todo{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(updateColumns(req))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

func (s *TodoServiceImpl) DeleteOwned(db *gorm.DB, ownerID, id uuid.UUID) error {
	res := db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Todo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

func (s *TodoServiceImpl) GetAny(db *gorm.DB, id uuid.UUID) (*models.Todo, error) {
	var todo models.Todo
	err := db.Where("id = ?", id).First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return &todo, nil
}

func (s *TodoServiceImpl) ListAll(db *gorm.DB) ([]models.Todo, error) {
	var todos []models.Todo
	err := db.Order("created_at desc").Find(&todos).Error
	return todos, err
}

func (s *TodoServiceImpl) UpdateAny(db *gorm.DB, id uuid.UUID, req TodoRequest) error {
	res := db.Model(&models.Todo{}).Where("id = ?", id).Updates(updateColumns(req))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

func (s *TodoServiceImpl) DeleteAny(db *gorm.DB, id uuid.UUID) error {
	res := db.Where("id = ?", id).Delete(&models.Todo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// updateColumns maps the request to an explicit column set so that a false
// completed flag is persisted rather than skipped as a zero value. OwnerID is
// deliberately absent; ownership never changes after creation.
func updateColumns(req TodoRequest) map[string]interface{} {
	return map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"priority":    req.Priority,
		"completed":   req.Completed,
	}
}
