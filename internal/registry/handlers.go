package registry

import (
	"context"
	"fmt"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/ctxlog"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/resolve"
)

// Core returns a registry populated with the built-in task handlers.
func Core() *Registry {
	r := New()
	r.Register("resolve", resolveHandler)
	r.Register("noop", noopHandler)
	r.Register("fail", failHandler)
	return r
}

// resolveHandler performs graph-only resolution of the configurations a task
// names. Resolution causes do not fail the task: the verification engine
// forces and reports them once, at the project's safe point.
func resolveHandler(ctx context.Context, run *Run) error {
	logger := ctxlog.FromContext(ctx)
	for _, name := range run.Task.Def.Resolves {
		cfg := run.Project.Configuration(name)
		if cfg == nil {
			return fmt.Errorf("task %s resolves unknown configuration %q", run.Task.Path(), name)
		}
		causes, err := cfg.Resolve(ctx, run.Resolver, run.Project, resolve.DepthGraph)
		if err != nil {
			return fmt.Errorf("task %s failed to resolve configuration %q: %w", run.Task.Path(), name, err)
		}
		logger.Debug("Task touched configuration.",
			"task", run.Task.Path(),
			"configuration", name,
			"state", cfg.State().String(),
			"causes", len(causes),
		)
	}
	return nil
}

// noopHandler does nothing. It exists so builds can schedule ordering-only
// tasks.
func noopHandler(_ context.Context, _ *Run) error {
	return nil
}

// failHandler fails unconditionally, exercising the failed-task safe point.
func failHandler(_ context.Context, run *Run) error {
	return fmt.Errorf("task %s failed", run.Task.Path())
}
