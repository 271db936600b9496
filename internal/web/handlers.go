package web

import (
	"context"
	"errors"
	"log"
	"net/http"

	apperrors "github.com/louisbranch/taskdeck/internal/platform/errors"
	"github.com/louisbranch/taskdeck/internal/platform/requestctx"
	"github.com/louisbranch/taskdeck/internal/task"
	"github.com/louisbranch/taskdeck/internal/task/service"
	"github.com/louisbranch/taskdeck/internal/web/httpx"
)

// TaskService covers the task operations the web surface drives.
type TaskService interface {
	Create(ctx context.Context, ownerID string, input task.Input) (task.Task, error)
	Get(ctx context.Context, taskID, actingUserID string) (task.Task, error)
	Edit(ctx context.Context, taskID, actingUserID string, input task.Input) (task.Task, error)
	Toggle(ctx context.Context, taskID, actingUserID string) (task.Task, error)
	Delete(ctx context.Context, taskID, actingUserID string) error
	List(ctx context.Context, ownerID string, query service.ListQuery) ([]task.Task, error)
	Autocomplete(ctx context.Context, ownerID, query string) ([]string, error)
}

// Handler serves the task pages and the autocomplete API.
type Handler struct {
	tasks     TaskService
	templates *Templates
}

// NewHandler builds the page handler over the given service.
func NewHandler(tasks TaskService) (*Handler, error) {
	templates, err := NewTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{tasks: tasks, templates: templates}, nil
}

type listPage struct {
	Title       string
	Flash       string
	Tasks       []task.Task
	Query       service.ListQuery
	Statuses    []task.Status
	Priorities  []task.Priority
	FilterError string
}

type formPage struct {
	Title      string
	Flash      string
	Action     string
	Submit     string
	Values     FormValues
	Errors     *task.ValidationError
	Statuses   []task.Status
	Priorities []task.Priority
}

// FieldError returns the validation message for one form field.
func (p formPage) FieldError(field string) string {
	if p.Errors == nil {
		return ""
	}
	return p.Errors.ByField(field)
}

type confirmPage struct {
	Title string
	Flash string
	Task  task.Task
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())
	query := service.ListQuery{
		Search:   r.URL.Query().Get("search"),
		Status:   r.URL.Query().Get("status"),
		Priority: r.URL.Query().Get("priority"),
	}

	page := listPage{
		Title:      "Tasks",
		Flash:      popFlash(w, r),
		Query:      query,
		Statuses:   task.Statuses(),
		Priorities: task.Priorities(),
	}

	records, err := h.tasks.List(r.Context(), userID, query)
	switch {
	case err == nil:
		page.Tasks = records
		h.render(w, http.StatusOK, "task_list.html", page)
	case apperrors.IsValidation(err):
		page.FilterError = "Priority filter must be a number."
		h.render(w, http.StatusBadRequest, "task_list.html", page)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "task_form.html", formPage{
		Title:      "New task",
		Flash:      popFlash(w, r),
		Action:     "/task/create",
		Submit:     "Create task",
		Values:     FormValues{Status: string(task.StatusTodo), Priority: "0"},
		Statuses:   task.Statuses(),
		Priorities: task.Priorities(),
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())
	values := formValuesFromRequest(r)
	page := formPage{
		Title:      "New task",
		Action:     "/task/create",
		Submit:     "Create task",
		Values:     values,
		Statuses:   task.Statuses(),
		Priorities: task.Priorities(),
	}

	input, parseErr := values.toInput()
	if parseErr != nil {
		page.Errors = parseErr
		h.render(w, http.StatusBadRequest, "task_form.html", page)
		return
	}
	if _, err := h.tasks.Create(r.Context(), userID, input); err != nil {
		var verr *task.ValidationError
		if errors.As(err, &verr) {
			page.Errors = verr
			h.render(w, http.StatusBadRequest, "task_form.html", page)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	setFlash(w, "Task created.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleEditForm(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())
	record, err := h.tasks.Get(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		h.handleTaskError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "task_form.html", formPage{
		Title:      "Edit task",
		Flash:      popFlash(w, r),
		Action:     "/task/" + record.ID + "/edit",
		Submit:     "Save changes",
		Values:     formValuesFromTask(record),
		Statuses:   task.Statuses(),
		Priorities: task.Priorities(),
	})
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())
	taskID := r.PathValue("id")
	values := formValuesFromRequest(r)
	page := formPage{
		Title:      "Edit task",
		Action:     "/task/" + taskID + "/edit",
		Submit:     "Save changes",
		Values:     values,
		Statuses:   task.Statuses(),
		Priorities: task.Priorities(),
	}

	input, parseErr := values.toInput()
	if parseErr != nil {
		page.Errors = parseErr
		h.render(w, http.StatusBadRequest, "task_form.html", page)
		return
	}
	if _, err := h.tasks.Edit(r.Context(), taskID, userID, input); err != nil {
		var verr *task.ValidationError
		if errors.As(err, &verr) {
			page.Errors = verr
			h.render(w, http.StatusBadRequest, "task_form.html", page)
			return
		}
		h.handleTaskError(w, r, err)
		return
	}
	setFlash(w, "Task updated.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())
	record, err := h.tasks.Get(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		h.handleTaskError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "task_confirm_delete.html", confirmPage{
		Title: "Delete task",
		Flash: popFlash(w, r),
		Task:  record,
	})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())
	if err := h.tasks.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		h.handleTaskError(w, r, err)
		return
	}
	setFlash(w, "Task deleted.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())
	if _, err := h.tasks.Toggle(r.Context(), r.PathValue("id"), userID); err != nil {
		h.handleTaskError(w, r, err)
		return
	}
	setFlash(w, "Task updated.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())
	titles, err := h.tasks.Autocomplete(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, map[string][]string{"suggestions": titles})
}

// handleTaskError redirects missing and foreign tasks alike with the same
// generic notice so responses never reveal whether a task exists.
func (h *Handler) handleTaskError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrPermissionDenied) {
		setFlash(w, "Task not found.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	if err := h.templates.Render(w, status, page, data); err != nil {
		log.Printf("render %s: %v", page, err)
	}
}
