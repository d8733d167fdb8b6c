package executor

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/config"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/plan"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/registry"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/resolve"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type completion struct {
	path   string
	failed bool
}

// recordingListener captures completion callbacks and can inject an error
// for a specific task path.
type recordingListener struct {
	mu     sync.Mutex
	events []completion
	errFor map[string]error
}

func (r *recordingListener) TaskComplete(_ context.Context, t *plan.Task, failed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, completion{path: t.Path(), failed: failed})
	if r.errFor != nil {
		if err, ok := r.errFor[t.Path()]; ok {
			return err
		}
	}
	return nil
}

func (r *recordingListener) paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.path)
	}
	return out
}

func newExecutor(t *testing.T, parallel bool, workers int, defs ...*config.TaskDef) (*Executor, *recordingListener) {
	t.Helper()

	projectNames := map[string]bool{}
	for _, def := range defs {
		projectNames[def.Project] = true
	}
	projects := make(map[string]*resolve.ProjectState, len(projectNames))
	for name := range projectNames {
		ps, err := resolve.NewProjectState(&config.Project{Name: name}, nil)
		require.NoError(t, err)
		projects[name] = ps
	}

	resolver, err := resolve.NewInMemoryResolver(nil)
	require.NoError(t, err)

	p, err := plan.Build(context.Background(), &config.Model{Tasks: defs}, parallel)
	require.NoError(t, err)

	e := New(p, registry.Core(), projects, resolver, workers)
	listener := &recordingListener{}
	e.AddListener(listener)
	return e, listener
}

func taskDef(project, name, taskType string, dependsOn ...string) *config.TaskDef {
	return &config.TaskDef{Name: name, Project: project, Type: taskType, DependsOn: dependsOn}
}

func TestSequentialRun(t *testing.T) {
	e, listener := newExecutor(t, false, 1,
		taskDef("app", "compileJava", "noop"),
		taskDef("app", "jar", "noop", "compileJava"),
		taskDef("lib", "compileJava", "noop"),
	)

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, []string{":app:compileJava", ":lib:compileJava", ":app:jar"}, listener.paths())
}

func TestSequentialStopsAtFailure(t *testing.T) {
	e, listener := newExecutor(t, false, 1,
		taskDef("app", "broken", "fail"),
		taskDef("app", "jar", "noop"),
	)

	err := e.Run(context.Background())
	require.ErrorContains(t, err, "execution failed for :app:broken")

	require.Len(t, listener.events, 1)
	assert.Equal(t, completion{path: ":app:broken", failed: true}, listener.events[0])
}

func TestParallelRunCompletesAllTasks(t *testing.T) {
	e, listener := newExecutor(t, true, 4,
		taskDef("app", "compileJava", "noop"),
		taskDef("app", "jar", "noop", "compileJava"),
		taskDef("lib", "compileJava", "noop"),
		taskDef("lib", "jar", "noop", "compileJava"),
	)

	require.NoError(t, e.Run(context.Background()))

	got := listener.paths()
	sort.Strings(got)
	assert.Equal(t, []string{":app:compileJava", ":app:jar", ":lib:compileJava", ":lib:jar"}, got)
}

func TestParallelSkipsDependentsOfFailedTask(t *testing.T) {
	e, listener := newExecutor(t, true, 4,
		taskDef("app", "broken", "fail"),
		taskDef("app", "jar", "noop", "broken"),
	)

	err := e.Run(context.Background())
	require.ErrorContains(t, err, "execution failed for :app:broken")

	// Skipped tasks never finish, so no completion fires for :app:jar.
	for _, event := range listener.events {
		assert.NotEqual(t, ":app:jar", event.path)
	}
}

func TestListenerErrorHaltsBuild(t *testing.T) {
	haltErr := errors.New("verification says no")

	t.Run("sequential", func(t *testing.T) {
		e, listener := newExecutor(t, false, 1,
			taskDef("app", "compileJava", "noop"),
			taskDef("app", "jar", "noop", "compileJava"),
		)
		listener.errFor = map[string]error{":app:compileJava": haltErr}

		err := e.Run(context.Background())
		require.ErrorIs(t, err, haltErr)
		assert.Equal(t, []string{":app:compileJava"}, listener.paths())
	})

	t.Run("parallel", func(t *testing.T) {
		e, listener := newExecutor(t, true, 4,
			taskDef("app", "compileJava", "noop"),
			taskDef("app", "jar", "noop", "compileJava"),
		)
		listener.errFor = map[string]error{":app:compileJava": haltErr}

		err := e.Run(context.Background())
		require.ErrorIs(t, err, haltErr)
	})
}

func TestListenerErrorWinsOverTaskError(t *testing.T) {
	haltErr := errors.New("consolidated report")
	e, listener := newExecutor(t, false, 1,
		taskDef("app", "broken", "fail"),
	)
	listener.errFor = map[string]error{":app:broken": haltErr}

	err := e.Run(context.Background())
	require.ErrorIs(t, err, haltErr)
}

func TestEmptyPlan(t *testing.T) {
	e, listener := newExecutor(t, false, 1)
	require.NoError(t, e.Run(context.Background()))
	assert.Empty(t, listener.paths())
}
