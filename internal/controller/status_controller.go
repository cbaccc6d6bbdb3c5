// internal/controller/status_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wekesa/crm-maintenance/internal/tasks"
)

// StatusController exposes worker liveness and task outcomes.
type StatusController struct {
	Registry *tasks.Registry
}

func (c *StatusController) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ListTasks returns the last outcome of every task that has run.
func (c *StatusController) ListTasks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"tasks": c.Registry.LastOutcomes(),
	})
}

// GetTask returns the last outcome of one task, 404 if it has not run yet.
func (c *StatusController) GetTask(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	outcome, ok := c.Registry.Last(name)
	if !ok {
		http.Error(w, "task has not run", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(outcome)
}
