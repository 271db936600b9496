package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/taskdeck/internal/task"
	"github.com/louisbranch/taskdeck/internal/task/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func storedTask(id, owner, title string, createdAt time.Time) task.Task {
	return task.Task{
		ID:        id,
		OwnerID:   owner,
		Title:     title,
		Status:    task.StatusTodo,
		Priority:  task.PriorityLow,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestCreateGetTaskRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	due := now.Add(72 * time.Hour)
	input := task.Task{
		ID:          "task-1",
		OwnerID:     "alice",
		Title:       "Write report",
		Description: "First full pass",
		Status:      task.StatusInProgress,
		Completed:   false,
		Priority:    task.PriorityMedium,
		DueDate:     due,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := store.CreateTask(context.Background(), input); err != nil {
		t.Fatalf("create task: %v", err)
	}

	got, err := store.GetTask(context.Background(), "task-1")
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Title != input.Title {
		t.Fatalf("title = %q, want %q", got.Title, input.Title)
	}
	if got.Status != task.StatusInProgress {
		t.Fatalf("status = %q, want %q", got.Status, task.StatusInProgress)
	}
	if got.Priority != task.PriorityMedium {
		t.Fatalf("priority = %d, want %d", got.Priority, task.PriorityMedium)
	}
	if !got.DueDate.Equal(due) {
		t.Fatalf("due date = %v, want %v", got.DueDate, due)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps = %v/%v, want %v", got.CreatedAt, got.UpdatedAt, now)
	}
}

func TestGetTaskMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.GetTask(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestCreateTaskPersistsNullDueDate(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	if err := store.CreateTask(context.Background(), storedTask("task-1", "alice", "No deadline", now)); err != nil {
		t.Fatalf("create task: %v", err)
	}
	got, err := store.GetTask(context.Background(), "task-1")
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if !got.DueDate.IsZero() {
		t.Fatalf("due date = %v, want zero", got.DueDate)
	}
}

func TestUpdateTaskOverwritesFields(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	record := storedTask("task-1", "alice", "Write report", now)
	if err := store.CreateTask(context.Background(), record); err != nil {
		t.Fatalf("create task: %v", err)
	}

	record.Title = "Write the report"
	record.Status = task.StatusDone
	record.Completed = true
	record.UpdatedAt = now.Add(time.Hour)
	if err := store.UpdateTask(context.Background(), record); err != nil {
		t.Fatalf("update task: %v", err)
	}

	got, err := store.GetTask(context.Background(), "task-1")
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Title != "Write the report" {
		t.Fatalf("title = %q, want %q", got.Title, "Write the report")
	}
	if !got.Completed || got.Status != task.StatusDone {
		t.Fatalf("status/completed = %q/%v, want done/true", got.Status, got.Completed)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want unchanged %v", got.CreatedAt, now)
	}
	if !got.UpdatedAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("updated_at = %v, want %v", got.UpdatedAt, now.Add(time.Hour))
	}
}

func TestUpdateTaskMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	err := store.UpdateTask(context.Background(), storedTask("ghost", "alice", "Ghost", now))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestDeleteTaskRemovesRecord(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	if err := store.CreateTask(context.Background(), storedTask("task-1", "alice", "Write report", now)); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := store.DeleteTask(context.Background(), "task-1"); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := store.GetTask(context.Background(), "task-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, storage.ErrNotFound)
	}
	if err := store.DeleteTask(context.Background(), "task-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("second delete error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestListTasksScopedToOwnerNewestFirst(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	base := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	for i, spec := range []struct {
		id, owner, title string
	}{
		{"task-1", "alice", "Buy milk"},
		{"task-2", "alice", "Write report"},
		{"task-3", "bob", "Steal nothing"},
	} {
		record := storedTask(spec.id, spec.owner, spec.title, base.Add(time.Duration(i)*time.Minute))
		if err := store.CreateTask(context.Background(), record); err != nil {
			t.Fatalf("create %s: %v", spec.id, err)
		}
	}

	got, err := store.ListTasks(context.Background(), "alice", storage.ListFilter{})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, record := range got {
		if record.OwnerID != "alice" {
			t.Fatalf("owner = %q, want alice", record.OwnerID)
		}
	}
	if got[0].ID != "task-2" || got[1].ID != "task-1" {
		t.Fatalf("order = %s, %s, want task-2, task-1", got[0].ID, got[1].ID)
	}
}

func TestListTasksComposesFilters(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	base := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	records := []task.Task{
		{ID: "task-1", OwnerID: "alice", Title: "Buy Milk", Status: task.StatusTodo, Priority: task.PriorityHigh},
		{ID: "task-2", OwnerID: "alice", Title: "buy stamps", Status: task.StatusDone, Priority: task.PriorityHigh},
		{ID: "task-3", OwnerID: "alice", Title: "Write report", Status: task.StatusTodo, Priority: task.PriorityLow},
	}
	for i := range records {
		records[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		records[i].UpdatedAt = records[i].CreatedAt
		if err := store.CreateTask(context.Background(), records[i]); err != nil {
			t.Fatalf("create %s: %v", records[i].ID, err)
		}
	}

	high := task.PriorityHigh
	got, err := store.ListTasks(context.Background(), "alice", storage.ListFilter{
		Search:   "BUY",
		Status:   task.StatusTodo,
		Priority: &high,
	})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(got) != 1 || got[0].ID != "task-1" {
		t.Fatalf("got %d records, want exactly task-1", len(got))
	}
}

func TestListTasksSearchIsCaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	if err := store.CreateTask(context.Background(), storedTask("task-1", "alice", "Buy Milk", now)); err != nil {
		t.Fatalf("create task: %v", err)
	}

	got, err := store.ListTasks(context.Background(), "alice", storage.ListFilter{Search: "milk"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}

	got, err = store.ListTasks(context.Background(), "alice", storage.ListFilter{Search: "cheese"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestListTasksSearchFoldsNonASCII(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	if err := store.CreateTask(context.Background(), storedTask("task-1", "alice", "Купить Молоко", now)); err != nil {
		t.Fatalf("create task: %v", err)
	}

	for _, search := range []string{"молоко", "МОЛОКО", "Молоко"} {
		got, err := store.ListTasks(context.Background(), "alice", storage.ListFilter{Search: search})
		if err != nil {
			t.Fatalf("list tasks %q: %v", search, err)
		}
		if len(got) != 1 {
			t.Fatalf("search %q len = %d, want 1", search, len(got))
		}
	}

	got, err := store.ListTasks(context.Background(), "alice", storage.ListFilter{Search: "хлеб"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestSearchTitlesFoldsNonASCII(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	if err := store.CreateTask(context.Background(), storedTask("task-1", "alice", "Купить Молоко", now)); err != nil {
		t.Fatalf("create task: %v", err)
	}

	titles, err := store.SearchTitles(context.Background(), "alice", "молоко", 10)
	if err != nil {
		t.Fatalf("search titles: %v", err)
	}
	if len(titles) != 1 || titles[0] != "Купить Молоко" {
		t.Fatalf("titles = %v, want the stored title", titles)
	}
}

func TestSearchTitlesBoundsAndScope(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	base := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		record := storedTask(
			"task-"+string(rune('a'+i)),
			"alice",
			"Review chapter "+string(rune('a'+i)),
			base.Add(time.Duration(i)*time.Second),
		)
		if err := store.CreateTask(context.Background(), record); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := store.CreateTask(context.Background(), storedTask("task-bob", "bob", "Review chapter z", base)); err != nil {
		t.Fatalf("create bob task: %v", err)
	}

	titles, err := store.SearchTitles(context.Background(), "alice", "REVIEW", 10)
	if err != nil {
		t.Fatalf("search titles: %v", err)
	}
	if len(titles) != 10 {
		t.Fatalf("len = %d, want capped at 10", len(titles))
	}
}
