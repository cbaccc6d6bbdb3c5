// internal/errors/errors.go
package appErrors

import "fmt"

// ErrUnknownTask is a sentinel error for task names nothing is registered
// under. Retrying a delivery that hits this cannot help.
type ErrUnknownTask struct {
	Task string
}

func (e *ErrUnknownTask) Error() string {
	return fmt.Sprintf("unknown task %q", e.Task)
}

// Helper constructor
func NewUnknownTask(name string) error {
	return &ErrUnknownTask{Task: name}
}
