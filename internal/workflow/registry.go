package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kmax12/gridstatusio/internal/domain"
)

var (
	ErrUnknownTask     = errors.New("unknown task")
	ErrDuplicateTask   = errors.New("duplicate task")
	ErrSelfDependency  = errors.New("task depends on itself")
	ErrDependencyCycle = errors.New("dependency cycle")
)

// Registry holds the task set in registration order and validates the
// dependency structure before anything runs.
type Registry struct {
	order []domain.TaskName
	tasks map[domain.TaskName]*Task
}

func NewRegistry() *Registry {
	return &Registry{tasks: make(map[domain.TaskName]*Task)}
}

// Add registers t. Duplicate names and self-dependencies are rejected here;
// unknown dependencies and cycles are caught by Validate.
func (r *Registry) Add(t *Task) error {
	if _, ok := r.tasks[t.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, t.Name)
	}
	for _, dep := range t.Deps {
		if dep == t.Name {
			return fmt.Errorf("%w: %s", ErrSelfDependency, t.Name)
		}
	}
	r.order = append(r.order, t.Name)
	r.tasks[t.Name] = t
	return nil
}

// MustAdd is Add for wiring code, where a bad registration is a programming
// error.
func (r *Registry) MustAdd(t *Task) {
	if err := r.Add(t); err != nil {
		panic(err)
	}
}

// Lookup returns the task registered under name.
func (r *Registry) Lookup(name domain.TaskName) (*Task, bool) {
	t, ok := r.tasks[name]
	return t, ok
}

// Names returns every registered task name in registration order.
func (r *Registry) Names() []domain.TaskName {
	out := make([]domain.TaskName, len(r.order))
	copy(out, r.order)
	return out
}

// Validate checks that every dependency resolves and the graph is acyclic.
func (r *Registry) Validate() error {
	for _, name := range r.order {
		if _, err := r.Plan(name); err != nil {
			return err
		}
	}
	return nil
}

// Plan returns the execution order for target: its transitive dependencies
// in declaration-ordered depth-first post-order, each task once, target last.
func (r *Registry) Plan(target domain.TaskName) ([]domain.TaskName, error) {
	if _, ok := r.tasks[target]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, target)
	}

	var (
		plan   []domain.TaskName
		done   = map[domain.TaskName]bool{}
		onPath = map[domain.TaskName]bool{}
		path   []domain.TaskName
	)
	var visit func(name domain.TaskName) error
	visit = func(name domain.TaskName) error {
		if done[name] {
			return nil
		}
		if onPath[name] {
			return fmt.Errorf("%w: %s", ErrDependencyCycle, walkString(path, name))
		}
		t, ok := r.tasks[name]
		if !ok {
			return fmt.Errorf("%w: %s (required by %s)", ErrUnknownTask, name, path[len(path)-1])
		}
		onPath[name] = true
		path = append(path, name)
		for _, dep := range t.Deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		onPath[name] = false
		done[name] = true
		plan = append(plan, name)
		return nil
	}
	if err := visit(target); err != nil {
		return nil, err
	}
	return plan, nil
}

// walkString renders the offending dependency walk for an error message.
func walkString(path []domain.TaskName, repeat domain.TaskName) string {
	names := make([]string, 0, len(path)+1)
	for _, n := range path {
		names = append(names, string(n))
	}
	names = append(names, string(repeat))
	return strings.Join(names, " -> ")
}
