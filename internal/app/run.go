package app

import (
	"context"
	"fmt"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/ctxlog"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/executor"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/plan"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/verify"
)

// Run executes the build based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.logger.Debug("Building execution plan from config model...")
	p, err := plan.Build(ctx, a.model, appConfig.Parallel)
	if err != nil {
		return fmt.Errorf("failed to build execution plan: %w", err)
	}
	a.logger.Debug("Execution plan built.", "task_count", len(p.Tasks()), "parallel", p.Parallel())

	if len(p.Tasks()) == 0 {
		a.logger.Warn("No tasks found in plan, execution not required.")
		return nil
	}

	exec := executor.New(p, a.registry, a.projects, a.resolver, appConfig.WorkerCount)
	exec.AddListener(verify.New(ctx, p, a.projects, a.resolver))

	a.logger.Info("Starting build execution.", "tasks", len(p.Tasks()))
	if err := exec.Run(ctx); err != nil {
		return err
	}
	a.logger.Info("Build finished.")

	a.logger.Debug("App.Run method finished.")
	return nil
}
