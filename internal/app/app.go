package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/config"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/ctxlog"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/lockstate"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/registry"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/resolve"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	model    *config.Model
	projects map[string]*resolve.ProjectState
	resolver resolve.Resolver
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load the build definition into the format-agnostic model first.
	model, err := loader.Load(ctx, appConfig.BuildPath)
	if err != nil {
		// A failure to load the build definition is a fatal startup error.
		panic(fmt.Errorf("failed to load build definition: %w", err))
	}
	logger.Debug("Build definition loaded and translated into unified model.",
		"projects", len(model.Projects), "tasks", len(model.Tasks))

	projects, err := loadProjects(ctx, model, appConfig.BuildPath)
	if err != nil {
		panic(err)
	}

	resolver, err := resolve.NewInMemoryResolver(model.Repositories)
	if err != nil {
		panic(fmt.Errorf("failed to index repositories: %w", err))
	}
	logger.Debug("Repository index built.", "repositories", len(model.Repositories))

	return &App{
		outW:     outW,
		logger:   logger,
		registry: registry.Core(),
		model:    model,
		projects: projects,
		resolver: resolver,
	}
}

// loadProjects binds each declared project to its recorded lock state. Lock
// file paths are relative to the build definition's directory. A project
// without a lock file, or whose lock file does not exist yet, is unlocked.
func loadProjects(ctx context.Context, model *config.Model, buildPath string) (map[string]*resolve.ProjectState, error) {
	logger := ctxlog.FromContext(ctx)
	base, err := baseDir(buildPath)
	if err != nil {
		return nil, err
	}

	projects := make(map[string]*resolve.ProjectState, len(model.Projects))
	for _, def := range model.Projects {
		var lock *lockstate.State
		if def.LockFile != "" {
			path := def.LockFile
			if !filepath.IsAbs(path) {
				path = filepath.Join(base, path)
			}
			lock, err = lockstate.Load(path)
			switch {
			case errors.Is(err, fs.ErrNotExist):
				logger.Debug("Lock file does not exist, project is unlocked.",
					"project", def.Name, "path", path)
				lock = nil
			case err != nil:
				return nil, fmt.Errorf("project %q: %w", def.Name, err)
			}
		}

		state, err := resolve.NewProjectState(def, lock)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", def.Name, err)
		}
		projects[def.Name] = state
	}
	return projects, nil
}

func baseDir(buildPath string) (string, error) {
	info, err := os.Stat(buildPath)
	if err != nil {
		return "", fmt.Errorf("failed to stat build path %q: %w", buildPath, err)
	}
	if info.IsDir() {
		return buildPath, nil
	}
	return filepath.Dir(buildPath), nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
