// Package testutil provides the shared harness for integration tests: it
// materializes build definitions and lock files on disk, runs the full
// application against them, and captures log output for assertions.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/app"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/hcl"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
}

// RunBuildTest materializes the given files in a temporary directory and runs
// a full build against them. Keys are paths relative to the build root, so a
// test can place lock files next to the build definition that names them.
func RunBuildTest(t *testing.T, files map[string]string, opts ...Option) *HarnessResult {
	t.Helper()
	return RunBuildTestWithContext(context.Background(), t, files, opts...)
}

// Option adjusts the harness app configuration.
type Option func(*app.Config)

// WithParallel switches the run to concurrent task execution.
func WithParallel() Option {
	return func(cfg *app.Config) { cfg.Parallel = true }
}

// RunBuildTestWithContext is RunBuildTest with a caller-provided context.
func RunBuildTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts ...Option) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig := &app.Config{
		BuildPath:   tmpDir,
		LogLevel:    "debug",
		LogFormat:   "text",
		WorkerCount: 4,
	}
	for _, opt := range opts {
		opt(appConfig)
	}

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, hcl.NewLoader())
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx, appConfig)

	if os.Getenv("DEPLOCK_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
	}
}
