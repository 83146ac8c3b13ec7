package services

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/sinasezza/todolist-api/internal/cache"
	"github.com/sinasezza/todolist-api/internal/models"
)

const todoCacheTTL = 15 * time.Minute

// TodoListCacheKey names a cached page of one owner's todos.
func TodoListCacheKey(ownerID uuid.UUID, sortBy, order, page, pageSize string) string {
	return fmt.Sprintf("todos:user:%s:list:%s:%s:%s:%s", ownerID, sortBy, order, page, pageSize)
}

func todoItemCacheKey(ownerID, id uuid.UUID) string {
	return fmt.Sprintf("todos:user:%s:item:%s", ownerID, id)
}

func ownerCachePattern(ownerID uuid.UUID) string {
	return fmt.Sprintf("todos:user:%s:*", ownerID)
}

type cachedTodoList struct {
	Todos []models.Todo `json:"todos"`
	Total int64         `json:"total"`
}

// CachedTodoService decorates a TodoService with read-through caching on the
// owner-scoped read path. Every write drops the owner's keys, so a stale
// entry can never outlive a mutation. Admin reads bypass the cache; they are
// rare and must see the store as-is.
type CachedTodoService struct {
	TodoService
	cache cache.Cache
}

func NewCachedTodoService(inner TodoService, c cache.Cache) *CachedTodoService {
	return &CachedTodoService{TodoService: inner, cache: c}
}

func (s *CachedTodoService) Create(db *gorm.DB, ownerID uuid.UUID, req TodoRequest) (*models.Todo, error) {
	todo, err := s.TodoService.Create(db, ownerID, req)
	if err != nil {
		return nil, err
	}
	s.cache.DeletePattern(ownerCachePattern(ownerID))
	return todo, nil
}

func (s *CachedTodoService) GetOwned(db *gorm.DB, ownerID, id uuid.UUID) (*models.Todo, error) {
	key := todoItemCacheKey(ownerID, id)

	var cached models.Todo
	if err := s.cache.Get(key, &cached); err == nil {
		return &cached, nil
	}

	todo, err := s.TodoService.GetOwned(db, ownerID, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, todo, todoCacheTTL)
	return todo, nil
}

func (s *CachedTodoService) ListOwned(db *gorm.DB, ownerID uuid.UUID, sortBy, order, page, pageSize string) ([]models.Todo, int64, error) {
	key := TodoListCacheKey(ownerID, sortBy, order, page, pageSize)

	var cached cachedTodoList
	if err := s.cache.Get(key, &cached); err == nil {
		return cached.Todos, cached.Total, nil
	}

	todos, total, err := s.TodoService.ListOwned(db, ownerID, sortBy, order, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	s.cache.Set(key, cachedTodoList{Todos: todos, Total: total}, todoCacheTTL)
	return todos, total, nil
}

func (s *CachedTodoService) UpdateOwned(db *gorm.DB, ownerID, id uuid.UUID, req TodoRequest) error {
	if err := s.TodoService.UpdateOwned(db, ownerID, id, req); err != nil {
		return err
	}
	s.cache.DeletePattern(ownerCachePattern(ownerID))
	return nil
}

func (s *CachedTodoService) DeleteOwned(db *gorm.DB, ownerID, id uuid.UUID) error {
	if err := s.TodoService.DeleteOwned(db, ownerID, id); err != nil {
		return err
	}
	s.cache.DeletePattern(ownerCachePattern(ownerID))
	return nil
}

func (s *CachedTodoService) UpdateAny(db *gorm.DB, id uuid.UUID, req TodoRequest) error {
	owner, err := s.todoOwner(db, id)
	if err != nil {
		return err
	}
	if err := s.TodoService.UpdateAny(db, id, req); err != nil {
		return err
	}
	s.cache.DeletePattern(ownerCachePattern(owner))
	return nil
}

func (s *CachedTodoService) DeleteAny(db *gorm.DB, id uuid.UUID) error {
	owner, err := s.todoOwner(db, id)
	if err != nil {
		return err
	}
	if err := s.TodoService.DeleteAny(db, id); err != nil {
		return err
	}
	s.cache.DeletePattern(ownerCachePattern(owner))
	return nil
}

func (s *CachedTodoService) todoOwner(db *gorm.DB, id uuid.UUID) (uuid.UUID, error) {
	todo, err := s.TodoService.GetAny(db, id)
	if err != nil {
		return uuid.Nil, err
	}
	return todo.OwnerID, nil
}
