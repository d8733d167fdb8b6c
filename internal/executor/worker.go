package executor

import (
	"context"
	"fmt"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/ctxlog"
)

// runParallel executes the plan on a worker pool over the task DAG.
func (e *Executor) runParallel(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	nodes := buildNodes(e.plan)
	readyChan := make(chan *execNode, len(nodes))
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	rootCount := 0
	for _, n := range nodes {
		if n.depCount.Load() == 0 {
			readyChan <- n
			rootCount++
		}
	}
	logger.Debug("Found all root tasks.", "count", rootCount)

	e.wg.Add(len(nodes))
	for i := 0; i < e.numWorkers; i++ {
		go e.worker(runCtx, readyChan, cancel, i)
	}

	e.wg.Wait()
	close(readyChan)
	logger.Debug("All tasks completed.")

	return failureSummary(nodes)
}

// worker is the core processing loop for a single concurrent worker.
func (e *Executor) worker(ctx context.Context, readyChan chan *execNode, cancel context.CancelFunc, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for n := range readyChan {
		workerLogger := logger.With("workerID", workerID, "task", n.task.Path())

		if ctx.Err() != nil {
			n.skipOnce.Do(func() {
				workerLogger.Warn("Context canceled, skipping task execution.")
				n.state.Store(stateFailed)
				n.err = ctx.Err()
				e.wg.Done()
			})
			continue
		}

		workerLogger.Debug("Worker picked up task for execution.")
		n.state.Store(stateRunning)
		taskErr := e.runTask(ctx, n.task)
		notifyErr := e.notify(ctx, n.task, taskErr != nil)

		if taskErr != nil || notifyErr != nil {
			n.state.Store(stateFailed)
			if taskErr != nil {
				n.err = taskErr
			} else {
				n.err = fmt.Errorf("completion listener failed: %w", notifyErr)
			}
			cancel()
			e.skipDependents(ctx, n)
			e.wg.Done()
			continue
		}

		workerLogger.Debug("Task execution succeeded.")
		n.state.Store(stateDone)

		for _, dependent := range n.dependents {
			if dependent.depCount.Add(-1) == 0 {
				workerLogger.Debug("Unlocking dependent task.", "dependent", dependent.task.Path())
				readyChan <- dependent
			}
		}
		e.wg.Done()
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}

// skipDependents recursively marks all downstream tasks as failed without
// running them. Skipped tasks never finish, so listeners are not notified
// for them.
func (e *Executor) skipDependents(ctx context.Context, n *execNode) {
	logger := ctxlog.FromContext(ctx)
	for _, dependent := range n.dependents {
		dependent.skipOnce.Do(func() {
			logger.Warn("Skipping dependent task due to upstream failure.",
				"task", dependent.task.Path(),
				"dependency", n.task.Path(),
			)
			dependent.state.Store(stateFailed)
			dependent.err = skipErr(fmt.Sprintf("due to upstream failure of %s", n.task.Path()))
			e.wg.Done()
			e.skipDependents(ctx, dependent)
		})
	}
}
