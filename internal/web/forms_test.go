package web

import (
	"testing"
	"time"

	"github.com/louisbranch/taskdeck/internal/task"
)

func TestToInputParsesFields(t *testing.T) {
	t.Parallel()

	values := FormValues{
		Title:       "Write report",
		Description: "Quarterly numbers",
		Status:      "in_progress",
		Priority:    "2",
		DueDate:     "2026-03-14T10:30",
	}
	input, verr := values.toInput()
	if verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	if input.Status != task.StatusInProgress {
		t.Fatalf("status = %q, want %q", input.Status, task.StatusInProgress)
	}
	if input.Priority != task.PriorityHigh {
		t.Fatalf("priority = %d, want %d", input.Priority, task.PriorityHigh)
	}
	want := time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)
	if !input.DueDate.Equal(want) {
		t.Fatalf("due date = %v, want %v", input.DueDate, want)
	}
}

func TestToInputEmptyOptionalFields(t *testing.T) {
	t.Parallel()

	input, verr := FormValues{Title: "Bare minimum"}.toInput()
	if verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	if !input.DueDate.IsZero() {
		t.Fatalf("due date = %v, want zero", input.DueDate)
	}
	if input.Priority != task.PriorityLow {
		t.Fatalf("priority = %d, want %d", input.Priority, task.PriorityLow)
	}
}

func TestToInputRejectsNonNumericPriority(t *testing.T) {
	t.Parallel()

	_, verr := FormValues{Title: "x", Priority: "high"}.toInput()
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if verr.ByField("priority") == "" {
		t.Fatal("expected priority field error")
	}
}

func TestToInputRejectsMalformedDueDate(t *testing.T) {
	t.Parallel()

	_, verr := FormValues{Title: "x", DueDate: "next tuesday"}.toInput()
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if verr.ByField("due_date") == "" {
		t.Fatal("expected due_date field error")
	}
}

func TestFormValuesFromTaskFormatsDueDate(t *testing.T) {
	t.Parallel()

	record := task.Task{
		ID:       "task-1",
		Title:    "Write report",
		Status:   task.StatusDone,
		Priority: task.PriorityMedium,
		DueDate:  time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC),
	}
	values := formValuesFromTask(record)
	if values.DueDate != "2026-03-14T10:30" {
		t.Fatalf("due date = %q, want %q", values.DueDate, "2026-03-14T10:30")
	}
	if values.Status != "done" || values.Priority != "1" {
		t.Fatalf("status/priority = %q/%q, want done/1", values.Status, values.Priority)
	}
}
