// Package verify implements the resolution verification engine. Armed once
// the execution plan is finalized, it listens to task completions and, at
// each project's safe point, forces resolution of every eligible
// configuration, aggregates the typed failure causes, and emits exactly one
// deterministic report per project - as a build-halting error or a warning,
// per the project's lock options.
package verify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/ctxlog"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/plan"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/resolve"
)

// incrementalAnalysisPrefix marks configurations that back incremental
// compilation analysis. They are only resolvable in narrow contexts and are
// never verified.
const incrementalAnalysisPrefix = "incrementalAnalysis"

// guardState is the per-project idempotence guard.
type guardState int

const (
	statePending guardState = iota
	stateFired
)

// projectContext is the per-project verification state: created when the
// engine is armed, mutated only from the project's own completion callbacks,
// discarded after the terminal action.
type projectContext struct {
	project  *resolve.ProjectState
	owned    map[string]struct{}
	excluded map[string]struct{}
	state    guardState

	// Failure aggregate, filled during the single safe-point evaluation.
	unresolved   map[string][]string
	lockMessages []string
}

// Verifier is the resolution verification engine for one build invocation.
// It implements executor.Listener.
type Verifier struct {
	plan     *plan.Plan
	resolver resolve.Resolver
	contexts []*projectContext
}

// New arms the engine against a finalized plan. Ownership and identity
// lookups are computed here, once, before any completion callback runs.
// Under parallel execution, a project with no scheduled tasks is never
// verified.
func New(ctx context.Context, p *plan.Plan, projects map[string]*resolve.ProjectState, resolver resolve.Resolver) *Verifier {
	logger := ctxlog.FromContext(ctx)

	names := make([]string, 0, len(projects))
	for name := range projects {
		names = append(names, name)
	}
	sort.Strings(names)

	v := &Verifier{plan: p, resolver: resolver}
	for _, name := range names {
		ownedTasks := p.OwnedTasks(name)
		if p.Parallel() && len(ownedTasks) == 0 {
			logger.Debug("No tasks scheduled for project, verification disarmed.", "project", name)
			continue
		}

		project := projects[name]
		pc := &projectContext{
			project:    project,
			owned:      make(map[string]struct{}, len(ownedTasks)),
			excluded:   make(map[string]struct{}),
			unresolved: make(map[string][]string),
		}
		for _, t := range ownedTasks {
			pc.owned[t.Path()] = struct{}{}
		}
		for _, cfgName := range project.Options().ExcludedConfigurations {
			pc.excluded[cfgName] = struct{}{}
		}
		v.contexts = append(v.contexts, pc)
		logger.Debug("Verification armed for project.", "project", name, "owned_tasks", len(ownedTasks))
	}
	return v
}

// TaskComplete asks each pending project whether the completed task is its
// safe point and, if so, runs verification for it.
func (v *Verifier) TaskComplete(ctx context.Context, t *plan.Task, failed bool) error {
	for _, pc := range v.contexts {
		if !pc.safePoint(v.plan, t, failed) {
			continue
		}
		if err := v.verifyProject(ctx, pc); err != nil {
			return err
		}
	}
	return nil
}

// safePoint decides whether verification should run now for this project.
// Ownership is checked before the idempotence guard so completions of
// foreign projects never touch this project's state under parallel
// execution.
func (pc *projectContext) safePoint(p *plan.Plan, t *plan.Task, failed bool) bool {
	if _, owned := pc.owned[t.Path()]; !owned {
		return false
	}
	if pc.state == stateFired {
		return false
	}
	// A failing build must still be checked: resolution may be the root
	// cause or a compounding one.
	if failed {
		return true
	}
	if p.Parallel() {
		return true
	}
	last := p.LastWithIdentity(t.Identity())
	return last != nil && last.Path() == t.Path()
}

// verifyProject forces every eligible configuration, classifies the causes,
// and runs the policy gate.
func (v *Verifier) verifyProject(ctx context.Context, pc *projectContext) error {
	logger := ctxlog.FromContext(ctx)
	name := pc.project.Name()

	for _, cfg := range pc.eligibleConfigurations() {
		causes, err := cfg.Resolve(ctx, v.resolver, pc.project, resolve.DepthArtifacts)
		if err != nil {
			return &FatalError{Project: name, Err: fmt.Errorf("forcing configuration %q: %w", cfg.Name(), err)}
		}
		if err := pc.classify(cfg.Name(), causes); err != nil {
			return &FatalError{Project: name, Err: err}
		}
	}

	if len(pc.unresolved) == 0 && len(pc.lockMessages) == 0 {
		logger.Debug("Dependency resolution verified.", "project", name)
		return nil
	}

	pc.state = stateFired
	report := BuildReport(name, pc.unresolved, pc.lockMessages)
	logger.Debug("Dependency resolution verification details:\n"+report.VerboseMessage(), "project", name)

	if pc.project.Options().FailOnUnresolved {
		return &VerificationError{Project: name, Report: report}
	}
	logger.Warn(report.Message(), "project", name)
	return nil
}

// eligibleConfigurations applies the selection predicate: the configuration
// was touched by something, is not an incremental-analysis configuration,
// and is not excluded by the project's lock options.
func (pc *projectContext) eligibleConfigurations() []*resolve.Configuration {
	var eligible []*resolve.Configuration
	for _, cfg := range pc.project.Configurations() {
		if cfg.State() == resolve.StateUnresolved {
			continue
		}
		if strings.HasPrefix(cfg.Name(), incrementalAnalysisPrefix) {
			continue
		}
		if _, excluded := pc.excluded[cfg.Name()]; excluded {
			continue
		}
		eligible = append(eligible, cfg)
	}
	return eligible
}

// classify folds one configuration's causes into the project aggregate.
func (pc *projectContext) classify(configuration string, causes []resolve.Cause) error {
	for _, cause := range causes {
		switch cause.Kind {
		case resolve.CauseLockOutOfDate:
			pc.lockMessages = append(pc.lockMessages, cause.Message)
		case resolve.CauseUnresolved:
			pc.unresolved[cause.Selector] = append(pc.unresolved[cause.Selector], configuration)
		default:
			return fmt.Errorf("unknown resolution failure kind %d for configuration %q", cause.Kind, configuration)
		}
	}
	return nil
}
