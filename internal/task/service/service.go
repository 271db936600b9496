// Package service implements task lifecycle operations behind the
// ownership guard, plus the owner-scoped listing and autocomplete
// pipeline.
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/taskdeck/internal/platform/errors"
	"github.com/louisbranch/taskdeck/internal/platform/id"
	"github.com/louisbranch/taskdeck/internal/task"
	"github.com/louisbranch/taskdeck/internal/task/storage"
)

const (
	// autocompleteMinQuery guards the store from single-character lookups.
	autocompleteMinQuery = 2
	// autocompleteLimit caps suggestion results.
	autocompleteLimit = 10
)

var (
	// ErrNotFound indicates the referenced task does not exist.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "task not found")
	// ErrPermissionDenied indicates the acting user does not own the task.
	// Callers must present it exactly like ErrNotFound to avoid leaking
	// task existence.
	ErrPermissionDenied = apperrors.New(apperrors.CodePermissionDenied, "task belongs to another user")
)

// Service coordinates task operations over a store. The zero value is not
// usable; construct with New.
type Service struct {
	store  storage.TaskStore
	now    func() time.Time
	newID  func() (string, error)
	tracer trace.Tracer
}

// New creates a task service over the given store.
func New(store storage.TaskStore) *Service {
	return &Service{
		store:  store,
		now:    time.Now,
		newID:  id.NewID,
		tracer: otel.Tracer("github.com/louisbranch/taskdeck/internal/task/service"),
	}
}

// Authorize resolves a task and asserts the acting user owns it. It runs
// at the top of every mutating operation; task identity is re-resolved per
// request rather than cached.
func (s *Service) Authorize(ctx context.Context, taskID, actingUserID string) (task.Task, error) {
	taskID = strings.TrimSpace(taskID)
	actingUserID = strings.TrimSpace(actingUserID)
	if taskID == "" {
		return task.Task{}, ErrNotFound
	}
	if actingUserID == "" {
		return task.Task{}, apperrors.New(apperrors.CodeUnauthenticated, "acting user is required")
	}

	record, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		if err == storage.ErrNotFound {
			return task.Task{}, ErrNotFound
		}
		return task.Task{}, fmt.Errorf("resolve task: %w", err)
	}
	if record.OwnerID != actingUserID {
		return task.Task{}, ErrPermissionDenied
	}
	return record, nil
}

// Create validates input and persists a new task owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, input task.Input) (task.Task, error) {
	ctx, span := s.tracer.Start(ctx, "task.create")
	defer span.End()

	record, err := task.Create(ownerID, input, s.now, s.newID)
	if err != nil {
		return task.Task{}, err
	}
	if err := s.store.CreateTask(ctx, record); err != nil {
		return task.Task{}, fmt.Errorf("persist task: %w", err)
	}
	span.SetAttributes(attribute.String("task.id", record.ID))
	return record, nil
}

// Get resolves a task for the acting user, e.g. to populate the edit or
// delete confirmation forms. Reads go through the same guard as writes.
func (s *Service) Get(ctx context.Context, taskID, actingUserID string) (task.Task, error) {
	return s.Authorize(ctx, taskID, actingUserID)
}

// Edit overwrites the mutable fields of an owned task and re-derives the
// completed flag from the new status.
func (s *Service) Edit(ctx context.Context, taskID, actingUserID string, input task.Input) (task.Task, error) {
	ctx, span := s.tracer.Start(ctx, "task.edit", trace.WithAttributes(attribute.String("task.id", taskID)))
	defer span.End()

	record, err := s.Authorize(ctx, taskID, actingUserID)
	if err != nil {
		return task.Task{}, err
	}
	edited, err := task.ApplyEdit(record, input, s.now)
	if err != nil {
		return task.Task{}, err
	}
	if err := s.store.UpdateTask(ctx, edited); err != nil {
		if err == storage.ErrNotFound {
			return task.Task{}, ErrNotFound
		}
		return task.Task{}, fmt.Errorf("persist edit: %w", err)
	}
	return edited, nil
}

// Toggle flips the completed flag of an owned task. Status is deliberately
// left alone even when it disagrees with the new flag.
func (s *Service) Toggle(ctx context.Context, taskID, actingUserID string) (task.Task, error) {
	ctx, span := s.tracer.Start(ctx, "task.toggle", trace.WithAttributes(attribute.String("task.id", taskID)))
	defer span.End()

	record, err := s.Authorize(ctx, taskID, actingUserID)
	if err != nil {
		return task.Task{}, err
	}
	toggled := task.ApplyToggle(record, s.now)
	if err := s.store.UpdateTask(ctx, toggled); err != nil {
		if err == storage.ErrNotFound {
			return task.Task{}, ErrNotFound
		}
		return task.Task{}, fmt.Errorf("persist toggle: %w", err)
	}
	return toggled, nil
}

// Delete permanently removes an owned task.
func (s *Service) Delete(ctx context.Context, taskID, actingUserID string) error {
	ctx, span := s.tracer.Start(ctx, "task.delete", trace.WithAttributes(attribute.String("task.id", taskID)))
	defer span.End()

	record, err := s.Authorize(ctx, taskID, actingUserID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTask(ctx, record.ID); err != nil {
		if err == storage.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("persist delete: %w", err)
	}
	return nil
}

// ListQuery carries the raw filter parameters of a listing request.
type ListQuery struct {
	Search   string
	Status   string
	Priority string
}

// List returns the owner's tasks matching query, newest first. A
// non-integer priority fails the whole request rather than being ignored.
func (s *Service) List(ctx context.Context, ownerID string, query ListQuery) ([]task.Task, error) {
	ctx, span := s.tracer.Start(ctx, "task.list")
	defer span.End()

	filter := storage.ListFilter{
		Search: strings.TrimSpace(query.Search),
		Status: task.Status(strings.TrimSpace(query.Status)),
	}
	if raw := strings.TrimSpace(query.Priority); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.WithMetadata(
				apperrors.CodeFilterInvalidPriority,
				"priority filter must be an integer",
				map[string]string{"priority": raw},
			)
		}
		priority := task.Priority(value)
		filter.Priority = &priority
	}

	records, err := s.store.ListTasks(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	span.SetAttributes(attribute.Int("task.count", len(records)))
	return records, nil
}

// Autocomplete returns up to ten titles of the owner's tasks containing
// query. Queries shorter than two characters return nothing without
// touching the store.
func (s *Service) Autocomplete(ctx context.Context, ownerID, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < autocompleteMinQuery {
		return []string{}, nil
	}

	ctx, span := s.tracer.Start(ctx, "task.autocomplete")
	defer span.End()

	titles, err := s.store.SearchTitles(ctx, ownerID, query, autocompleteLimit)
	if err != nil {
		return nil, fmt.Errorf("autocomplete titles: %w", err)
	}
	if titles == nil {
		titles = []string{}
	}
	return titles, nil
}
