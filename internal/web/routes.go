package web

import "net/http"

// Routes registers the authenticated page and API routes.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleList)
	mux.HandleFunc("GET /task/create", h.handleCreateForm)
	mux.HandleFunc("POST /task/create", h.handleCreate)
	mux.HandleFunc("GET /task/{id}/edit", h.handleEditForm)
	mux.HandleFunc("POST /task/{id}/edit", h.handleEdit)
	mux.HandleFunc("GET /task/{id}/delete", h.handleDeleteConfirm)
	mux.HandleFunc("POST /task/{id}/delete", h.handleDelete)
	mux.HandleFunc("GET /task/{id}/toggle", h.handleToggle)
	mux.HandleFunc("POST /task/{id}/toggle", h.handleToggle)
	mux.HandleFunc("GET /api/task-autocomplete", h.handleAutocomplete)
	return mux
}
