// Package sqlite provides a SQLite-backed task storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/taskdeck/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/taskdeck/internal/task"
	"github.com/louisbranch/taskdeck/internal/task/storage"
	"github.com/louisbranch/taskdeck/internal/task/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists task records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite task store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateTask inserts one task record.
func (s *Store) CreateTask(ctx context.Context, record task.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("task id is required")
	}
	if strings.TrimSpace(record.OwnerID) == "" {
		return fmt.Errorf("owner id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO tasks (
		   id,
		   owner_id,
		   title,
		   description,
		   status,
		   completed,
		   priority,
		   due_date,
		   created_at,
		   updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.OwnerID,
		record.Title,
		record.Description,
		string(record.Status),
		boolToInt(record.Completed),
		int(record.Priority),
		nullableMillis(record.DueDate),
		toMillis(record.CreatedAt),
		toMillis(record.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// GetTask returns one task by ID.
func (s *Store) GetTask(ctx context.Context, taskID string) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	if s == nil || s.sqlDB == nil {
		return task.Task{}, fmt.Errorf("storage is not configured")
	}
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return task.Task{}, fmt.Errorf("task id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, owner_id, title, description, status, completed, priority, due_date, created_at, updated_at
		   FROM tasks
		  WHERE id = ?`,
		taskID,
	)
	record, err := scanTask(row)
	if err == sql.ErrNoRows {
		return task.Task{}, storage.ErrNotFound
	}
	if err != nil {
		return task.Task{}, fmt.Errorf("get task: %w", err)
	}
	return record, nil
}

// UpdateTask overwrites one task record by ID.
func (s *Store) UpdateTask(ctx context.Context, record task.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("task id is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE tasks
		    SET title = ?,
		        description = ?,
		        status = ?,
		        completed = ?,
		        priority = ?,
		        due_date = ?,
		        updated_at = ?
		  WHERE id = ?`,
		record.Title,
		record.Description,
		string(record.Status),
		boolToInt(record.Completed),
		int(record.Priority),
		nullableMillis(record.DueDate),
		toMillis(record.UpdatedAt),
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteTask removes one task record by ID.
func (s *Store) DeleteTask(ctx context.Context, taskID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return fmt.Errorf("task id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, taskID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListTasks returns the owner's tasks matching filter, newest first.
func (s *Store) ListTasks(ctx context.Context, ownerID string, filter storage.ListFilter) ([]task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	query := `SELECT id, owner_id, title, description, status, completed, priority, due_date, created_at, updated_at
	            FROM tasks
	           WHERE owner_id = ?`
	args := []any{ownerID}

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.Priority != nil {
		query += ` AND priority = ?`
		args = append(args, int(*filter.Priority))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	search := strings.TrimSpace(filter.Search)
	var records []task.Task
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if search != "" && !containsFold(record.Title, search) {
			continue
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return records, nil
}

// SearchTitles returns up to limit titles containing query, storage order.
func (s *Store) SearchTitles(ctx context.Context, ownerID, query string, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT title FROM tasks WHERE owner_id = ?`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("search titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		if !containsFold(title, query) {
			continue
		}
		titles = append(titles, title)
		if len(titles) == limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate titles: %w", err)
	}
	return titles, nil
}

// containsFold reports whether title contains query ignoring case. The
// fold happens in Go because SQLite's built-in lower() maps ASCII only,
// which would make non-Latin titles invisible to search.
func containsFold(title, query string) bool {
	return strings.Contains(strings.ToLower(title), strings.ToLower(query))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (task.Task, error) {
	var (
		record    task.Task
		status    string
		completed int
		priority  int
		dueDate   sql.NullInt64
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(
		&record.ID,
		&record.OwnerID,
		&record.Title,
		&record.Description,
		&status,
		&completed,
		&priority,
		&dueDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return task.Task{}, err
	}
	record.Status = task.Status(status)
	record.Completed = completed != 0
	record.Priority = task.Priority(priority)
	if dueDate.Valid {
		record.DueDate = fromMillis(dueDate.Int64)
	}
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func nullableMillis(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return toMillis(value)
}
