// Package task defines the task entity and its lifecycle rules.
package task

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/taskdeck/internal/platform/errors"
	"github.com/louisbranch/taskdeck/internal/platform/id"
)

// Status enumerates the workflow states a task moves through.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses returns the valid statuses in display order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// Valid reports whether the status belongs to the enumeration.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority orders tasks by urgency.
type Priority int

const (
	PriorityLow    Priority = 0
	PriorityMedium Priority = 1
	PriorityHigh   Priority = 2
)

// Priorities returns the valid priorities in ascending order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Valid reports whether the priority belongs to the enumeration.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// Label returns the display name for a priority.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// Field limits enforced on create and edit.
const (
	TitleMaxLength       = 200
	DescriptionMaxLength = 1000
)

// Task is a single unit of work owned by exactly one user. OwnerID and
// CreatedAt are fixed at creation; every successful mutation refreshes
// UpdatedAt.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Status      Status
	Completed   bool
	Priority    Priority
	DueDate     time.Time // zero means no due date
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Input carries the mutable fields accepted on create and edit.
type Input struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueDate     time.Time
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string
	Code    apperrors.Code
	Message string
}

// ValidationError aggregates every invalid field of one input so callers
// can re-present the whole form at once.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "invalid task input: " + strings.Join(names, ", ")
}

// Is reports whether target is also a task validation error.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// ByField returns the message for one field, or empty when the field is valid.
func (e *ValidationError) ByField(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// NormalizeInput trims free-text fields and applies the status default.
func NormalizeInput(input Input) Input {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.Status == "" {
		input.Status = StatusTodo
	}
	return input
}

// ValidateInput checks every constraint and reports all violations together.
// No store write may happen when an error is returned.
func ValidateInput(input Input) error {
	var fields []FieldError
	if input.Title == "" {
		fields = append(fields, FieldError{
			Field:   "title",
			Code:    apperrors.CodeTaskTitleEmpty,
			Message: "Title is required.",
		})
	} else if len([]rune(input.Title)) > TitleMaxLength {
		fields = append(fields, FieldError{
			Field:   "title",
			Code:    apperrors.CodeTaskTitleTooLong,
			Message: fmt.Sprintf("Title must be at most %d characters.", TitleMaxLength),
		})
	}
	if len([]rune(input.Description)) > DescriptionMaxLength {
		fields = append(fields, FieldError{
			Field:   "description",
			Code:    apperrors.CodeTaskDescriptionTooLong,
			Message: fmt.Sprintf("Description must be at most %d characters.", DescriptionMaxLength),
		})
	}
	if !input.Status.Valid() {
		fields = append(fields, FieldError{
			Field:   "status",
			Code:    apperrors.CodeTaskInvalidStatus,
			Message: "Status must be todo, in_progress, or done.",
		})
	}
	if !input.Priority.Valid() {
		fields = append(fields, FieldError{
			Field:   "priority",
			Code:    apperrors.CodeTaskInvalidPriority,
			Message: "Priority must be low, medium, or high.",
		})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// DeriveCompleted computes the completed flag from a status. Toggle is the
// one write path that bypasses this rule.
func DeriveCompleted(status Status) bool {
	return status == StatusDone
}

// Create builds a new task from validated input with a generated ID and
// creation timestamps.
func Create(ownerID string, input Input, now func() time.Time, idGenerator func() (string, error)) (Task, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return Task{}, fmt.Errorf("owner id is required")
	}

	input = NormalizeInput(input)
	if err := ValidateInput(input); err != nil {
		return Task{}, err
	}

	taskID, err := idGenerator()
	if err != nil {
		return Task{}, fmt.Errorf("generate task id: %w", err)
	}

	createdAt := now().UTC()
	return Task{
		ID:          taskID,
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Completed:   DeriveCompleted(input.Status),
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

// ApplyEdit overwrites every mutable field from validated input and
// re-derives the completed flag. Omitted optional fields clear their
// previous values; this is a full overwrite, not a patch.
func ApplyEdit(current Task, input Input, now func() time.Time) (Task, error) {
	if now == nil {
		now = time.Now
	}

	input = NormalizeInput(input)
	if err := ValidateInput(input); err != nil {
		return Task{}, err
	}

	current.Title = input.Title
	current.Description = input.Description
	current.Status = input.Status
	current.Completed = DeriveCompleted(input.Status)
	current.Priority = input.Priority
	current.DueDate = input.DueDate
	current.UpdatedAt = now().UTC()
	return current, nil
}

// ApplyToggle flips the completed flag and leaves status untouched, even
// when the two end up disagreeing. A toggled done task keeps status done
// with completed false; Edit is the operation that reconciles them.
func ApplyToggle(current Task, now func() time.Time) Task {
	if now == nil {
		now = time.Now
	}
	current.Completed = !current.Completed
	current.UpdatedAt = now().UTC()
	return current
}
