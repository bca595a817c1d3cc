package repository

import (
	"context"
	"sync"

	"todo-webapp/internal/models"
)

// Memory is an in-process Repository. Rows keep insertion order and ids are
// never reused.
type Memory struct {
	mu     sync.RWMutex
	todos  []models.Todo
	nextID int
}

func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

func (m *Memory) List(ctx context.Context) ([]models.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	todos := make([]models.Todo, len(m.todos))
	copy(todos, m.todos)
	return todos, nil
}

func (m *Memory) Get(ctx context.Context, id int) (*models.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	todo := m.todos[i]
	return &todo, nil
}

func (m *Memory) Create(ctx context.Context, title string) (models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	todo := models.Todo{ID: m.nextID, Title: title}
	m.todos = append(m.todos, todo)
	m.nextID++
	return todo, nil
}

func (m *Memory) Update(ctx context.Context, id int, update models.UpdateTodo) (*models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	if update.Title != nil {
		m.todos[i].Title = *update.Title
	}
	if update.IsCompleted != nil {
		m.todos[i].IsCompleted = *update.IsCompleted
	}
	todo := m.todos[i]
	return &todo, nil
}

func (m *Memory) Delete(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return false, nil
	}
	m.todos = append(m.todos[:i], m.todos[i+1:]...)
	return true, nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) indexOf(id int) int {
	for i, todo := range m.todos {
		if todo.ID == id {
			return i
		}
	}
	return -1
}
