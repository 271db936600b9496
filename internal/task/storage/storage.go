// Package storage defines persistence contracts for task records.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/taskdeck/internal/task"
)

// ErrNotFound indicates a requested task record is missing.
var ErrNotFound = errors.New("task not found")

// ListFilter narrows an owner-scoped listing. Zero values leave a
// dimension unfiltered; filters compose with AND.
type ListFilter struct {
	// Search matches titles containing the text, case-insensitive.
	Search string
	// Status matches exactly when non-empty.
	Status task.Status
	// Priority matches exactly when non-nil.
	Priority *task.Priority
}

// TaskStore persists task records. Authorization is the caller's job;
// every listing is scoped to one owner.
type TaskStore interface {
	CreateTask(ctx context.Context, record task.Task) error
	GetTask(ctx context.Context, taskID string) (task.Task, error)
	UpdateTask(ctx context.Context, record task.Task) error
	DeleteTask(ctx context.Context, taskID string) error
	// ListTasks returns the owner's tasks matching filter, newest first.
	ListTasks(ctx context.Context, ownerID string, filter ListFilter) ([]task.Task, error)
	// SearchTitles returns up to limit titles of the owner's tasks whose
	// title contains query, case-insensitive, in storage order.
	SearchTitles(ctx context.Context, ownerID, query string, limit int) ([]string, error)
}
