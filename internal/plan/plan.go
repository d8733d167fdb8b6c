// Package plan models the build's finalized task execution plan: an ordered,
// read-only snapshot of every scheduled task, with the ownership and
// cross-project identity lookups the verification engine needs. A Plan is
// built once, after all projects are configured, and never mutated.
package plan

import (
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/config"
)

// Task is a single scheduled unit of build work. Its Name is the task
// identity, shared across projects (e.g. `compileJava`); its Path is the
// project-qualified identity. Immutable once scheduled.
type Task struct {
	Name    string
	Project string
	Def     *config.TaskDef

	// Deps and Dependents are the resolved ordering edges, fixed at plan
	// build time.
	Deps       []*Task
	Dependents []*Task
}

// Path returns the project-qualified task path, e.g. `:app:compileJava`.
func (t *Task) Path() string {
	return ":" + t.Project + ":" + t.Name
}

// Identity returns the task identity: the path with the leading project
// segment stripped.
func (t *Task) Identity() string {
	return t.Name
}

// Plan is the finalized execution plan for a build invocation.
type Plan struct {
	tasks      []*Task
	byProject  map[string][]*Task
	byIdentity map[string][]*Task
	parallel   bool
}

// Tasks returns every scheduled task in execution order.
func (p *Plan) Tasks() []*Task {
	return p.tasks
}

// Parallel reports whether parallel project execution is enabled for the
// build this plan belongs to.
func (p *Plan) Parallel() bool {
	return p.parallel
}

// ProjectTasks returns the ordered subsequence of tasks scheduled for the
// named project.
func (p *Plan) ProjectTasks(project string) []*Task {
	return p.byProject[project]
}

// OwnedTasks returns the tasks whose completion the named project must
// consider. Under parallel project execution only the project's own tasks
// qualify; under sequential execution every task does, because completion
// order is a valid global order.
func (p *Plan) OwnedTasks(project string) []*Task {
	if p.parallel {
		return p.byProject[project]
	}
	return p.tasks
}

// WithIdentity returns every scheduled task sharing the given identity,
// across all projects, in schedule order.
func (p *Plan) WithIdentity(identity string) []*Task {
	return p.byIdentity[identity]
}

// LastWithIdentity returns the last scheduled task sharing the given
// identity, or nil when none is scheduled.
func (p *Plan) LastWithIdentity(identity string) *Task {
	tasks := p.byIdentity[identity]
	if len(tasks) == 0 {
		return nil
	}
	return tasks[len(tasks)-1]
}
