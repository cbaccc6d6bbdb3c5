// internal/tasks/tasks.go
package tasks

import (
	"sort"
	"sync"
	"time"

	appErrors "github.com/wekesa/crm-maintenance/internal/errors"
)

// Task names accepted on the queue.
const (
	TaskCustomersCleanup = "customers_cleanup"
	TaskOrderReminders   = "order_reminders"
	TaskLowStockRestock  = "low_stock_restock"
	TaskHeartbeat        = "crm_heartbeat"
)

// Outcome records how a task's most recent run went.
type Outcome struct {
	Task     string    `json:"task"`
	RanAt    time.Time `json:"ran_at"`
	Affected int       `json:"affected"`
	Error    string    `json:"error,omitempty"`
}

// Registry dispatches queued task names to job runs and keeps the last
// outcome per task for the ops endpoints. Register everything up front;
// Run is safe for concurrent use afterwards.
type Registry struct {
	runners map[string]func() (int, error)

	mu   sync.Mutex
	last map[string]Outcome
	now  func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		runners: make(map[string]func() (int, error)),
		last:    make(map[string]Outcome),
		now:     time.Now,
	}
}

// Register binds a task name to a job run. The run reports how many rows it
// affected.
func (r *Registry) Register(name string, run func() (int, error)) {
	r.runners[name] = run
}

// Run executes the named task once and records the outcome.
func (r *Registry) Run(name string) (int, error) {
	run, ok := r.runners[name]
	if !ok {
		return 0, appErrors.NewUnknownTask(name)
	}

	affected, err := run()

	out := Outcome{Task: name, RanAt: r.now(), Affected: affected}
	if err != nil {
		out.Error = err.Error()
	}
	r.mu.Lock()
	r.last[name] = out
	r.mu.Unlock()

	return affected, err
}

// Last returns the most recent outcome for a task, if it has run.
func (r *Registry) Last(name string) (Outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out, ok := r.last[name]
	return out, ok
}

// LastOutcomes lists the most recent outcome of every task that has run,
// sorted by task name for stable output.
func (r *Registry) LastOutcomes() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	outcomes := make([]Outcome, 0, len(r.last))
	for _, out := range r.last {
		outcomes = append(outcomes, out)
	}
	sort.Slice(outcomes, func(i, k int) bool { return outcomes[i].Task < outcomes[k].Task })
	return outcomes
}
