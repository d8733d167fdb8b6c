package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/config"
)

func writeBuildFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func load(t *testing.T, files map[string]string) (*config.Model, error) {
	t.Helper()
	dir := writeBuildFiles(t, files)
	return NewLoader().Load(context.Background(), dir)
}

func TestLoadTranslatesFullDefinition(t *testing.T) {
	t.Parallel()

	model, err := load(t, map[string]string{
		"build.hcl": `
		project "app" {
			lock_file = "dependencies.lock"
			configuration "compileClasspath" {
				dependencies = ["test.nebula:a:1.0.0", "test.nebula:c"]
			}
			lock_options {
				fail_on_unresolved      = false
				excluded_configurations = ["zinc"]
			}
		}

		repository "maven" {
			module "test.nebula:a:1.0.0" {
				dependencies = ["test.nebula:b:1.0.0"]
			}
			module "test.nebula:b:1.0.0" {
				artifact = false
			}
		}

		task "app" "compileJava" {
			resolves = ["compileClasspath"]
		}
		`,
	})
	require.NoError(t, err)

	require.Len(t, model.Projects, 1)
	project := model.Projects[0]
	assert.Equal(t, "app", project.Name)
	assert.Equal(t, "dependencies.lock", project.LockFile)
	assert.False(t, project.LockOptions.FailOnUnresolved)
	assert.Equal(t, []string{"zinc"}, project.LockOptions.ExcludedConfigurations)
	require.Len(t, project.Configurations, 1)
	assert.Equal(t, []string{"test.nebula:a:1.0.0", "test.nebula:c"}, project.Configurations[0].Dependencies)

	require.Len(t, model.Repositories, 1)
	require.Len(t, model.Repositories[0].Modules, 2)
	assert.True(t, model.Repositories[0].Modules[0].Artifact)
	assert.False(t, model.Repositories[0].Modules[1].Artifact)

	require.Len(t, model.Tasks, 1)
	task := model.Tasks[0]
	assert.Equal(t, "compileJava", task.Name)
	assert.Equal(t, "app", task.Project)
	assert.Equal(t, "resolve", task.Type, "task type defaults to resolve")
}

func TestLoadDefaultsFailOnUnresolved(t *testing.T) {
	t.Parallel()

	model, err := load(t, map[string]string{
		"build.hcl": `
		project "app" {
			configuration "compileClasspath" {}
		}
		`,
	})
	require.NoError(t, err)
	require.Len(t, model.Projects, 1)
	assert.True(t, model.Projects[0].LockOptions.FailOnUnresolved)
}

func TestLoadMergesMultipleFiles(t *testing.T) {
	t.Parallel()

	model, err := load(t, map[string]string{
		"projects.hcl": `
		project "app" {
			configuration "compileClasspath" {}
		}
		`,
		"repos.hcl": `
		repository "maven" {
			module "test.nebula:a:1.0.0" {}
		}
		`,
	})
	require.NoError(t, err)
	assert.Len(t, model.Projects, 1)
	assert.Len(t, model.Repositories, 1)
}

func TestLoadFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		hcl         string
		errContains string
	}{
		{
			name: "duplicate project",
			hcl: `
			project "app" {}
			project "app" {}
			`,
			errContains: `duplicate project definition: "app"`,
		},
		{
			name: "duplicate configuration",
			hcl: `
			project "app" {
				configuration "compileClasspath" {}
				configuration "compileClasspath" {}
			}
			`,
			errContains: `duplicate configuration "compileClasspath"`,
		},
		{
			name: "malformed coordinate",
			hcl: `
			project "app" {
				configuration "compileClasspath" {
					dependencies = ["just-a-name"]
				}
			}
			`,
			errContains: `configuration "compileClasspath"`,
		},
		{
			name: "versionless repository module",
			hcl: `
			repository "maven" {
				module "test.nebula:a" {}
			}
			`,
			errContains: "must carry a version",
		},
		{
			name: "task references unknown project",
			hcl: `
			task "ghost" "compileJava" {}
			`,
			errContains: `references unknown project "ghost"`,
		},
		{
			name: "task resolves unknown configuration",
			hcl: `
			project "app" {}
			task "app" "compileJava" {
				resolves = ["missing"]
			}
			`,
			errContains: `resolves unknown configuration "missing"`,
		},
		{
			name: "unsupported attribute",
			hcl: `
			project "app" {
				author = "somebody"
			}
			`,
			errContains: "Unsupported argument",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := load(t, map[string]string{"build.hcl": tc.hcl})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestLoadRejectsEmptyDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .hcl build definition files found")
}
