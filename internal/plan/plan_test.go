package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/config"
)

func taskDef(project, name string, dependsOn ...string) *config.TaskDef {
	return &config.TaskDef{Name: name, Project: project, Type: "noop", DependsOn: dependsOn}
}

func buildPlan(t *testing.T, parallel bool, defs ...*config.TaskDef) *Plan {
	t.Helper()
	p, err := Build(context.Background(), &config.Model{Tasks: defs}, parallel)
	require.NoError(t, err)
	return p
}

func paths(tasks []*Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Path())
	}
	return out
}

func TestBuildOrdering(t *testing.T) {
	p := buildPlan(t, false,
		taskDef("app", "jar", "compileJava"),
		taskDef("app", "compileJava"),
		taskDef("lib", "compileJava"),
	)

	assert.Equal(t,
		[]string{":app:compileJava", ":lib:compileJava", ":app:jar"},
		paths(p.Tasks()),
	)
}

func TestBuildErrors(t *testing.T) {
	t.Run("duplicate task", func(t *testing.T) {
		_, err := Build(context.Background(), &config.Model{Tasks: []*config.TaskDef{
			taskDef("app", "compileJava"),
			taskDef("app", "compileJava"),
		}}, false)
		require.ErrorContains(t, err, "duplicate task definition")
	})

	t.Run("unknown dependency", func(t *testing.T) {
		_, err := Build(context.Background(), &config.Model{Tasks: []*config.TaskDef{
			taskDef("app", "jar", "compileKotlin"),
		}}, false)
		require.ErrorContains(t, err, "unknown task")
	})

	t.Run("cycle", func(t *testing.T) {
		_, err := Build(context.Background(), &config.Model{Tasks: []*config.TaskDef{
			taskDef("app", "a", "b"),
			taskDef("app", "b", "a"),
		}}, false)
		require.ErrorContains(t, err, "cycle detected")
	})

	t.Run("self dependency", func(t *testing.T) {
		_, err := Build(context.Background(), &config.Model{Tasks: []*config.TaskDef{
			taskDef("app", "a", "a"),
		}}, false)
		require.ErrorContains(t, err, "depends on itself")
	})
}

func TestCrossProjectDependency(t *testing.T) {
	p := buildPlan(t, false,
		taskDef("app", "compileJava", ":lib:jar"),
		taskDef("lib", "jar", "compileJava"),
		taskDef("lib", "compileJava"),
	)

	assert.Equal(t,
		[]string{":lib:compileJava", ":lib:jar", ":app:compileJava"},
		paths(p.Tasks()),
	)
}

func TestOwnedTasks(t *testing.T) {
	defs := []*config.TaskDef{
		taskDef("app", "compileJava"),
		taskDef("lib", "compileJava"),
		taskDef("app", "jar", "compileJava"),
	}

	t.Run("parallel groups by project", func(t *testing.T) {
		p := buildPlan(t, true, defs...)
		assert.Equal(t, []string{":app:compileJava", ":app:jar"}, paths(p.OwnedTasks("app")))
		assert.Equal(t, []string{":lib:compileJava"}, paths(p.OwnedTasks("lib")))
		assert.Empty(t, p.OwnedTasks("other"))
	})

	t.Run("sequential owns every task", func(t *testing.T) {
		p := buildPlan(t, false, defs...)
		assert.Len(t, p.OwnedTasks("app"), 3)
		assert.Len(t, p.OwnedTasks("lib"), 3)
		assert.Len(t, p.OwnedTasks("other"), 3)
	})
}

func TestIdentityLookups(t *testing.T) {
	p := buildPlan(t, false,
		taskDef("app", "compileJava"),
		taskDef("lib", "compileJava"),
		taskDef("app", "jar", "compileJava"),
	)

	assert.Equal(t,
		[]string{":app:compileJava", ":lib:compileJava"},
		paths(p.WithIdentity("compileJava")),
	)

	last := p.LastWithIdentity("compileJava")
	require.NotNil(t, last)
	assert.Equal(t, ":lib:compileJava", last.Path())

	assert.Nil(t, p.LastWithIdentity("compileKotlin"))
}
