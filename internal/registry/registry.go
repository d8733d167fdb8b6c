// Package registry holds the task handlers compiled into the binary. A task
// definition names a handler type; the executor looks the handler up here
// when the task is dispatched.
package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/plan"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/resolve"
)

// Run carries everything a handler needs to execute one task.
type Run struct {
	Task     *plan.Task
	Project  *resolve.ProjectState
	Resolver resolve.Resolver
}

// Handler executes the work of a single task.
type Handler func(ctx context.Context, run *Run) error

// Registry maps handler type names to their Go implementations for a single
// application instance.
type Registry struct {
	handlers map[string]Handler
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register registers a handler under a type name. Registering the same name
// twice is a programmer error.
func (r *Registry) Register(name string, h Handler) {
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("task handler with name '%s' already registered", name))
	}
	slog.Debug("Registering task handler.", "name", name)
	r.handlers[name] = h
}

// Handler returns the handler registered under the given type name.
func (r *Registry) Handler(name string) (Handler, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("no task handler registered for type %q", name)
	}
	return h, nil
}
