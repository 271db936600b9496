package web

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/taskdeck/internal/platform/errors"
	"github.com/louisbranch/taskdeck/internal/task"
)

// dueDateLayout matches the value format of datetime-local inputs.
const dueDateLayout = "2006-01-02T15:04"

// FormValues carries the raw string fields of a submitted task form, kept
// as strings so invalid submissions re-render exactly as typed.
type FormValues struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     string
}

// formValuesFromRequest extracts task form fields from a POST body.
func formValuesFromRequest(r *http.Request) FormValues {
	return FormValues{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Status:      r.PostFormValue("status"),
		Priority:    r.PostFormValue("priority"),
		DueDate:     r.PostFormValue("due_date"),
	}
}

// formValuesFromTask pre-fills the edit form from a stored task.
func formValuesFromTask(record task.Task) FormValues {
	values := FormValues{
		Title:       record.Title,
		Description: record.Description,
		Status:      string(record.Status),
		Priority:    strconv.Itoa(int(record.Priority)),
	}
	if !record.DueDate.IsZero() {
		values.DueDate = record.DueDate.Format(dueDateLayout)
	}
	return values
}

// toInput converts raw form values into a task input. Parse failures on
// priority and due date surface as field validation errors so they join
// the domain-level violations in one response.
func (v FormValues) toInput() (task.Input, *task.ValidationError) {
	input := task.Input{
		Title:       v.Title,
		Description: v.Description,
		Status:      task.Status(strings.TrimSpace(v.Status)),
	}
	var fields []task.FieldError

	if raw := strings.TrimSpace(v.Priority); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			fields = append(fields, task.FieldError{
				Field:   "priority",
				Code:    apperrors.CodeTaskInvalidPriority,
				Message: "priority must be a number",
			})
		} else {
			input.Priority = task.Priority(value)
		}
	}

	if raw := strings.TrimSpace(v.DueDate); raw != "" {
		value, err := time.Parse(dueDateLayout, raw)
		if err != nil {
			fields = append(fields, task.FieldError{
				Field:   "due_date",
				Code:    apperrors.CodeTaskInvalidDueDate,
				Message: "due date is not a valid date",
			})
		} else {
			input.DueDate = value.UTC()
		}
	}

	if len(fields) > 0 {
		return input, &task.ValidationError{Fields: fields}
	}
	return input, nil
}
