package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/wekesa/crm-maintenance/internal/controller"
	"github.com/wekesa/crm-maintenance/internal/tasks"
)

func newTestRouter(registry *tasks.Registry) *chi.Mux {
	c := &controller.StatusController{Registry: registry}
	r := chi.NewRouter()
	r.Get("/healthz", c.Healthz)
	r.Get("/tasks", c.ListTasks)
	r.Get("/tasks/{name}", c.GetTask)
	return r
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(tasks.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestListTasks(t *testing.T) {
	registry := tasks.NewRegistry()
	registry.Register("customers_cleanup", func() (int, error) { return 4, nil })
	registry.Run("customers_cleanup")

	r := newTestRouter(registry)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Tasks []tasks.Outcome `json:"tasks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body.Tasks) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(body.Tasks))
	}
	if body.Tasks[0].Task != "customers_cleanup" || body.Tasks[0].Affected != 4 {
		t.Errorf("unexpected outcome: %+v", body.Tasks[0])
	}
}

func TestGetTaskNotRun(t *testing.T) {
	r := newTestRouter(tasks.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/tasks/crm_heartbeat", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetTask(t *testing.T) {
	registry := tasks.NewRegistry()
	registry.Register("crm_heartbeat", func() (int, error) { return 0, nil })
	registry.Run("crm_heartbeat")

	r := newTestRouter(registry)

	req := httptest.NewRequest(http.MethodGet, "/tasks/crm_heartbeat", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var out tasks.Outcome
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if out.Task != "crm_heartbeat" {
		t.Errorf("unexpected outcome: %+v", out)
	}
}
