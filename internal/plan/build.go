package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/config"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/ctxlog"
)

// Build constructs the finalized execution plan from the build model. Task
// order is topological and deterministic: among ready tasks, declaration
// order wins.
func Build(ctx context.Context, model *config.Model, parallel bool) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting execution plan construction.", "parallel", parallel)

	// First pass: create a task per definition.
	declared := make([]*Task, 0, len(model.Tasks))
	byPath := make(map[string]*Task, len(model.Tasks))
	for _, def := range model.Tasks {
		t := &Task{Name: def.Name, Project: def.Project, Def: def}
		if _, exists := byPath[t.Path()]; exists {
			return nil, fmt.Errorf("duplicate task definition: %s", t.Path())
		}
		declared = append(declared, t)
		byPath[t.Path()] = t
	}
	logger.Debug("Build: Task creation complete.", "task_count", len(declared))

	// Second pass: resolve ordering edges.
	for _, t := range declared {
		for _, ref := range t.Def.DependsOn {
			dep, err := resolveTaskRef(byPath, t, ref)
			if err != nil {
				return nil, err
			}
			t.Deps = append(t.Deps, dep)
			dep.Dependents = append(dep.Dependents, t)
		}
	}
	logger.Debug("Build: Task linking complete.")

	if err := detectCycles(declared); err != nil {
		return nil, fmt.Errorf("error validating task graph: %w", err)
	}

	ordered, err := topologicalOrder(declared)
	if err != nil {
		return nil, err
	}
	logger.Debug("Build: Execution plan finalized.", "task_count", len(ordered))

	p := &Plan{
		tasks:      ordered,
		byProject:  make(map[string][]*Task),
		byIdentity: make(map[string][]*Task),
		parallel:   parallel,
	}
	for _, t := range ordered {
		p.byProject[t.Project] = append(p.byProject[t.Project], t)
		p.byIdentity[t.Identity()] = append(p.byIdentity[t.Identity()], t)
	}
	return p, nil
}

// resolveTaskRef resolves a depends_on reference. A reference is either a
// full task path (`:project:name`) or a bare task name in the same project.
func resolveTaskRef(byPath map[string]*Task, from *Task, ref string) (*Task, error) {
	path := ref
	if !strings.HasPrefix(ref, ":") {
		path = ":" + from.Project + ":" + ref
	}
	dep, ok := byPath[path]
	if !ok {
		return nil, fmt.Errorf("task %s depends on unknown task %q", from.Path(), ref)
	}
	if dep == from {
		return nil, fmt.Errorf("task %s depends on itself", from.Path())
	}
	return dep, nil
}

// detectCycles checks for circular dependencies using depth-first search.
func detectCycles(tasks []*Task) error {
	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	var visit func(t *Task) error
	visit = func(t *Task) error {
		visiting[t.Path()] = true
		for _, dep := range t.Deps {
			if visiting[dep.Path()] {
				return fmt.Errorf("cycle detected involving task %s", dep.Path())
			}
			if !visited[dep.Path()] {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		delete(visiting, t.Path())
		visited[t.Path()] = true
		return nil
	}

	for _, t := range tasks {
		if !visited[t.Path()] {
			if err := visit(t); err != nil {
				return err
			}
		}
	}
	return nil
}

// topologicalOrder produces the schedule: Kahn's algorithm, breaking ties by
// declaration order so the plan is a pure function of the build definition.
func topologicalOrder(declared []*Task) ([]*Task, error) {
	remaining := make(map[string]int, len(declared))
	for _, t := range declared {
		remaining[t.Path()] = len(t.Deps)
	}

	ordered := make([]*Task, 0, len(declared))
	scheduled := make(map[string]bool, len(declared))
	for len(ordered) < len(declared) {
		progressed := false
		for _, t := range declared {
			if scheduled[t.Path()] || remaining[t.Path()] != 0 {
				continue
			}
			ordered = append(ordered, t)
			scheduled[t.Path()] = true
			for _, dependent := range t.Dependents {
				remaining[dependent.Path()]--
			}
			progressed = true
		}
		if !progressed {
			// Unreachable after detectCycles, kept as a guard.
			return nil, fmt.Errorf("task graph contains an unschedulable cycle")
		}
	}
	return ordered, nil
}
