// Package executor runs the finalized execution plan. It executes tasks
// either strictly in plan order (sequential mode) or on a worker pool over
// the task DAG (parallel project execution), and notifies registered
// listeners synchronously after each task finishes. Listener callbacks for a
// single project are never reentrant with each other.
package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/ctxlog"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/plan"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/registry"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/resolve"
)

// Listener observes task completions. Callbacks run synchronously inside the
// executor; a non-nil return halts the build with that error.
type Listener interface {
	TaskComplete(ctx context.Context, t *plan.Task, failed bool) error
}

// Executor orchestrates the end-to-end execution of a plan.
type Executor struct {
	plan       *plan.Plan
	registry   *registry.Registry
	projects   map[string]*resolve.ProjectState
	resolver   resolve.Resolver
	numWorkers int

	listeners []Listener
	projectMu map[string]*sync.Mutex

	wg sync.WaitGroup

	mu           sync.Mutex
	listenerErrs []error
}

// New creates an executor for the given plan.
func New(p *plan.Plan, reg *registry.Registry, projects map[string]*resolve.ProjectState, resolver resolve.Resolver, numWorkers int) *Executor {
	if numWorkers < 1 {
		numWorkers = 1
	}
	e := &Executor{
		plan:       p,
		registry:   reg,
		projects:   projects,
		resolver:   resolver,
		numWorkers: numWorkers,
		projectMu:  make(map[string]*sync.Mutex),
	}
	for _, t := range p.Tasks() {
		if _, ok := e.projectMu[t.Project]; !ok {
			e.projectMu[t.Project] = &sync.Mutex{}
		}
	}
	return e
}

// AddListener registers a completion listener. Must be called before Run.
func (e *Executor) AddListener(l Listener) {
	e.listeners = append(e.listeners, l)
}

// Run executes the whole plan and returns an error if any task or listener
// failed. Listener errors take precedence: they carry the consolidated
// verification outcome.
func (e *Executor) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if len(e.plan.Tasks()) == 0 {
		logger.Warn("No tasks scheduled, nothing to execute.")
		return nil
	}

	var runErr error
	if e.plan.Parallel() {
		logger.Debug("Executor starting parallel run.", "workers", e.numWorkers)
		runErr = e.runParallel(ctx)
	} else {
		logger.Debug("Executor starting sequential run.")
		runErr = e.runSequential(ctx)
	}

	if err := e.listenerErr(); err != nil {
		return err
	}
	return runErr
}

// runSequential executes tasks strictly in plan order, stopping at the first
// failure.
func (e *Executor) runSequential(ctx context.Context) error {
	for _, t := range e.plan.Tasks() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		taskErr := e.runTask(ctx, t)
		if notifyErr := e.notify(ctx, t, taskErr != nil); notifyErr != nil {
			return nil // surfaced via listenerErr
		}
		if taskErr != nil {
			return fmt.Errorf("execution failed for %s: %w", t.Path(), taskErr)
		}
	}
	return nil
}

// runTask dispatches a single task to its registered handler.
func (e *Executor) runTask(ctx context.Context, t *plan.Task) error {
	logger := ctxlog.FromContext(ctx)
	handler, err := e.registry.Handler(t.Def.Type)
	if err != nil {
		return err
	}
	project, ok := e.projects[t.Project]
	if !ok {
		return fmt.Errorf("task %s belongs to unknown project %q", t.Path(), t.Project)
	}

	logger.Debug("Executing task.", "task", t.Path(), "type", t.Def.Type)
	if err := handler(ctx, &registry.Run{Task: t, Project: project, Resolver: e.resolver}); err != nil {
		logger.Error("Task execution failed.", "task", t.Path(), "error", err)
		return err
	}
	logger.Debug("Task execution succeeded.", "task", t.Path())
	return nil
}

// notify fans a completion out to every listener, serialized per project so
// a project's own callbacks are never reentrant. The first listener error is
// recorded and returned.
func (e *Executor) notify(ctx context.Context, t *plan.Task, failed bool) error {
	mu := e.projectMu[t.Project]
	mu.Lock()
	defer mu.Unlock()

	for _, l := range e.listeners {
		if err := l.TaskComplete(ctx, t, failed); err != nil {
			e.recordListenerErr(err)
			return err
		}
	}
	return nil
}

func (e *Executor) recordListenerErr(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listenerErrs = append(e.listenerErrs, err)
}

func (e *Executor) listenerErr() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return errors.Join(e.listenerErrs...)
}

// failureSummary assembles the sequential-style error for a finished
// parallel run: every failed task, with the first real failure as root cause.
func failureSummary(nodes []*execNode) error {
	var failedTasks []string
	var rootCause error
	for _, n := range nodes {
		if n.currentState() != stateFailed || n.err == nil {
			continue
		}
		if errors.Is(n.err, context.Canceled) || isSkipErr(n.err) {
			continue
		}
		failedTasks = append(failedTasks, n.task.Path())
		if rootCause == nil {
			rootCause = n.err
		}
	}
	if rootCause == nil {
		return nil
	}
	return fmt.Errorf("execution failed for %s: %w", strings.Join(failedTasks, ", "), rootCause)
}
