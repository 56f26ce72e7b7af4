package workflow

import (
	"context"
	"time"

	"github.com/kmax12/gridstatusio/internal/domain"
)

// Task is one named unit of the build workflow.
//
// Dependencies are data: the engine derives execution order from Deps, a
// task body never invokes another task.
type Task struct {
	Name    domain.TaskName
	Summary string
	Deps    []domain.TaskName
	Retry   *RetryPolicy
	Run     func(ctx context.Context) error
}

// RetryPolicy bounds automatic re-runs of a failing task.
//
// Retries counts re-runs after the first failure, so a task may be attempted
// Retries+1 times in total. Attempts are paced Delay apart.
type RetryPolicy struct {
	Retries int
	Delay   time.Duration
}
