package tasks_test

import (
	"errors"
	"fmt"
	"testing"

	appErrors "github.com/wekesa/crm-maintenance/internal/errors"
	"github.com/wekesa/crm-maintenance/internal/tasks"
)

func TestRegistryRunsAndRecordsOutcome(t *testing.T) {
	registry := tasks.NewRegistry()
	registry.Register("demo", func() (int, error) { return 3, nil })

	affected, err := registry.Run("demo")
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if affected != 3 {
		t.Errorf("expected 3 affected rows, got %d", affected)
	}

	out, ok := registry.Last("demo")
	if !ok {
		t.Fatal("expected an outcome for demo")
	}
	if out.Task != "demo" || out.Affected != 3 || out.Error != "" {
		t.Errorf("unexpected outcome: %+v", out)
	}
	if out.RanAt.IsZero() {
		t.Error("outcome should carry a run timestamp")
	}
}

func TestRegistryRecordsFailures(t *testing.T) {
	registry := tasks.NewRegistry()
	registry.Register("broken", func() (int, error) {
		return 0, fmt.Errorf("delete inactive customers: connection refused")
	})

	if _, err := registry.Run("broken"); err == nil {
		t.Fatal("expected the task error to surface")
	}

	out, ok := registry.Last("broken")
	if !ok {
		t.Fatal("expected an outcome for broken")
	}
	if out.Error == "" {
		t.Error("outcome should record the error")
	}
}

func TestRegistryUnknownTask(t *testing.T) {
	registry := tasks.NewRegistry()

	_, err := registry.Run("no_such_task")
	if err == nil {
		t.Fatal("expected an error for an unknown task")
	}

	var unknown *appErrors.ErrUnknownTask
	if !errors.As(err, &unknown) {
		t.Fatalf("expected ErrUnknownTask, got %T", err)
	}
	if unknown.Task != "no_such_task" {
		t.Errorf("unexpected task name in error: %q", unknown.Task)
	}

	if _, ok := registry.Last("no_such_task"); ok {
		t.Error("unknown tasks should not record outcomes")
	}
}

func TestRegistryLastOutcomesSorted(t *testing.T) {
	registry := tasks.NewRegistry()
	registry.Register("b_task", func() (int, error) { return 0, nil })
	registry.Register("a_task", func() (int, error) { return 0, nil })

	registry.Run("b_task")
	registry.Run("a_task")

	outcomes := registry.LastOutcomes()
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Task != "a_task" || outcomes[1].Task != "b_task" {
		t.Errorf("outcomes not sorted by task name: %+v", outcomes)
	}
}
