// Package repository holds the data-access layer for todo items.
package repository

import (
	"context"
	"fmt"

	"todo-webapp/internal/models"
)

type Repository interface {
	// List returns every todo in the storage's default order.
	List(ctx context.Context) ([]models.Todo, error)
	// Get returns nil when no todo has the given id.
	Get(ctx context.Context, id int) (*models.Todo, error)
	Create(ctx context.Context, title string) (models.Todo, error)
	// Update changes only the supplied fields and returns the resulting row,
	// or nil when no todo has the given id.
	Update(ctx context.Context, id int, update models.UpdateTodo) (*models.Todo, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id int) (bool, error)
	Ping(ctx context.Context) error
}

// StorageError wraps any failure coming from the storage layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
