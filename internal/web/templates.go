package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/louisbranch/taskdeck/internal/task"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames lists every renderable page template.
var pageNames = []string{
	"task_list.html",
	"task_form.html",
	"task_confirm_delete.html",
}

var templateFuncs = template.FuncMap{
	"priorityLabel": func(p task.Priority) string { return p.Label() },
	"statusLabel": func(s task.Status) string {
		switch s {
		case task.StatusTodo:
			return "To do"
		case task.StatusInProgress:
			return "In progress"
		case task.StatusDone:
			return "Done"
		default:
			return string(s)
		}
	},
	"formatDate": func(value time.Time) string {
		if value.IsZero() {
			return ""
		}
		return value.Format("Jan 2, 2006 15:04")
	},
	"formatDateInput": func(value time.Time) string {
		if value.IsZero() {
			return ""
		}
		return value.Format(dueDateLayout)
	},
}

// Templates renders the embedded HTML pages. Each page shares the layout.
type Templates struct {
	pages map[string]*template.Template
}

// NewTemplates parses the embedded page templates.
func NewTemplates() (*Templates, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		parsed, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = parsed
	}
	return &Templates{pages: pages}, nil
}

// Render writes the named page with the given status code.
func (t *Templates) Render(w http.ResponseWriter, status int, page string, data any) error {
	parsed, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return parsed.ExecuteTemplate(w, "layout.html", data)
}
