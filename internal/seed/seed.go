// Package seed populates a task store with demo data for local development.
package seed

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/louisbranch/taskdeck/internal/task"
	"github.com/louisbranch/taskdeck/internal/task/service"
	"github.com/louisbranch/taskdeck/internal/task/storage/sqlite"
)

// Config holds seed inputs.
type Config struct {
	DBPath  string
	OwnerID string
	Verbose bool
}

// DefaultConfig returns the seed defaults for local development.
func DefaultConfig() Config {
	return Config{
		DBPath:  "taskdeck.db",
		OwnerID: "demo-user",
	}
}

// fixture describes one demo task. A zero dueIn leaves the due date unset.
type fixture struct {
	title       string
	description string
	status      task.Status
	priority    task.Priority
	dueIn       time.Duration
}

var fixtures = []fixture{
	{
		title:       "Draft quarterly report",
		description: "Pull numbers from the dashboard and write the summary section.",
		status:      task.StatusInProgress,
		priority:    task.PriorityHigh,
		dueIn:       48 * time.Hour,
	},
	{
		title:       "Review open pull requests",
		status:      task.StatusTodo,
		priority:    task.PriorityMedium,
		dueIn:       24 * time.Hour,
	},
	{
		title:       "Book dentist appointment",
		status:      task.StatusTodo,
		priority:    task.PriorityLow,
	},
	{
		title:       "Renew domain registration",
		description: "Expires soon, use the company card.",
		status:      task.StatusDone,
		priority:    task.PriorityHigh,
	},
	{
		title:       "Water the office plants",
		status:      task.StatusTodo,
		priority:    task.PriorityLow,
		dueIn:       7 * 24 * time.Hour,
	},
	{
		title:       "Prepare onboarding checklist",
		description: "New hire starts Monday.",
		status:      task.StatusInProgress,
		priority:    task.PriorityMedium,
		dueIn:       72 * time.Hour,
	},
}

// Run creates the demo tasks through the service layer so status and
// completed derivation match production writes.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	owner := strings.TrimSpace(cfg.OwnerID)
	if owner == "" {
		return fmt.Errorf("owner id is required")
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer func() { _ = store.Close() }()

	tasks := service.New(store)
	now := time.Now().UTC()
	for _, fix := range fixtures {
		input := task.Input{
			Title:       fix.title,
			Description: fix.description,
			Status:      fix.status,
			Priority:    fix.priority,
		}
		if fix.dueIn > 0 {
			input.DueDate = now.Add(fix.dueIn)
		}
		record, err := tasks.Create(ctx, owner, input)
		if err != nil {
			return fmt.Errorf("seed %q: %w", fix.title, err)
		}
		if cfg.Verbose {
			fmt.Fprintf(out, "created %s %q\n", record.ID, record.Title)
		}
	}
	fmt.Fprintf(out, "seeded %d tasks for %s\n", len(fixtures), owner)
	return nil
}
