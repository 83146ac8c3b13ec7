package services

import (
	"errors"
	"testing"

	"github.com/sinasezza/todolist-api/internal/cache"
	"github.com/sinasezza/todolist-api/internal/models"
)

func TestCachedTodoService_ListReadThrough(t *testing.T) {
	db := setupTestDB(t)
	c := cache.NewMemoryCache()
	defer c.Close()
	svc := NewCachedTodoService(NewTodoService(), c)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	createTestTodo(t, db, alice.ID, "cached todo")

	todos, total, err := svc.ListOwned(db, alice.ID, "created_at", "desc", "1", "10")
	if err != nil {
		t.Fatalf("ListOwned failed: %v", err)
	}
	if total != 1 || len(todos) != 1 {
		t.Fatalf("Expected 1 todo, got %d of %d", len(todos), total)
	}

	key := TodoListCacheKey(alice.ID, "created_at", "desc", "1", "10")
	exists, err := c.Exists(key)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("Expected list page to be cached after first read")
	}

	// A second read is served from cache even if the row disappears under it.
	if err := db.Delete(&models.Todo{}, "owner_id = ?", alice.ID).Error; err != nil {
		t.Fatalf("Failed to delete row directly: %v", err)
	}
	todos, total, err = svc.ListOwned(db, alice.ID, "created_at", "desc", "1", "10")
	if err != nil {
		t.Fatalf("ListOwned failed: %v", err)
	}
	if total != 1 || len(todos) != 1 {
		t.Errorf("Expected cached page, got %d of %d", len(todos), total)
	}
}

func TestCachedTodoService_WriteInvalidatesOwner(t *testing.T) {
	db := setupTestDB(t)
	c := cache.NewMemoryCache()
	defer c.Close()
	svc := NewCachedTodoService(NewTodoService(), c)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	bob := createTestUser(t, db, "bob", models.RoleUser)

	todo := createTestTodo(t, db, alice.ID, "to be updated")
	createTestTodo(t, db, bob.ID, "bob's todo")

	// Warm both owners' list pages.
	if _, _, err := svc.ListOwned(db, alice.ID, "created_at", "desc", "1", "10"); err != nil {
		t.Fatalf("ListOwned failed: %v", err)
	}
	if _, _, err := svc.ListOwned(db, bob.ID, "created_at", "desc", "1", "10"); err != nil {
		t.Fatalf("ListOwned failed: %v", err)
	}

	err := svc.UpdateOwned(db, alice.ID, todo.ID, TodoRequest{Title: "updated title", Priority: 1})
	if err != nil {
		t.Fatalf("UpdateOwned failed: %v", err)
	}

	aliceKey := TodoListCacheKey(alice.ID, "created_at", "desc", "1", "10")
	if exists, _ := c.Exists(aliceKey); exists {
		t.Error("Expected alice's cached pages to be dropped after her write")
	}

	bobKey := TodoListCacheKey(bob.ID, "created_at", "desc", "1", "10")
	if exists, _ := c.Exists(bobKey); !exists {
		t.Error("Expected bob's cached pages to survive alice's write")
	}

	// The next read reflects the update.
	todos, _, err := svc.ListOwned(db, alice.ID, "created_at", "desc", "1", "10")
	if err != nil {
		t.Fatalf("ListOwned failed: %v", err)
	}
	if len(todos) != 1 || todos[0].Title != "updated title" {
		t.Errorf("Expected updated title after invalidation, got %+v", todos)
	}
}

func TestCachedTodoService_GetOwnedCachesItem(t *testing.T) {
	db := setupTestDB(t)
	c := cache.NewMemoryCache()
	defer c.Close()
	svc := NewCachedTodoService(NewTodoService(), c)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	todo := createTestTodo(t, db, alice.ID, "cached item")

	if _, err := svc.GetOwned(db, alice.ID, todo.ID); err != nil {
		t.Fatalf("GetOwned failed: %v", err)
	}
	if exists, _ := c.Exists(todoItemCacheKey(alice.ID, todo.ID)); !exists {
		t.Error("Expected item to be cached after first read")
	}

	if err := svc.DeleteOwned(db, alice.ID, todo.ID); err != nil {
		t.Fatalf("DeleteOwned failed: %v", err)
	}
	if exists, _ := c.Exists(todoItemCacheKey(alice.ID, todo.ID)); exists {
		t.Error("Expected item cache to be dropped after delete")
	}

	if _, err := svc.GetOwned(db, alice.ID, todo.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Expected ErrTodoNotFound after delete, got %v", err)
	}
}

func TestCachedTodoService_AdminWriteInvalidatesOwner(t *testing.T) {
	db := setupTestDB(t)
	c := cache.NewMemoryCache()
	defer c.Close()
	svc := NewCachedTodoService(NewTodoService(), c)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	todo := createTestTodo(t, db, alice.ID, "admin target")

	if _, _, err := svc.ListOwned(db, alice.ID, "created_at", "desc", "1", "10"); err != nil {
		t.Fatalf("ListOwned failed: %v", err)
	}

	if err := svc.DeleteAny(db, todo.ID); err != nil {
		t.Fatalf("DeleteAny failed: %v", err)
	}

	key := TodoListCacheKey(alice.ID, "created_at", "desc", "1", "10")
	if exists, _ := c.Exists(key); exists {
		t.Error("Expected owner's cached pages to be dropped after admin delete")
	}
}
