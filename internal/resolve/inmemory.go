package resolve

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/config"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/coordinate"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/ctxlog"
)

// moduleEntry is one resolvable module version in the repository index.
type moduleEntry struct {
	coord        coordinate.Coordinate
	version      *semver.Version // nil when the version is not semver-parsable
	dependencies []coordinate.Coordinate
	artifact     bool
}

// InMemoryResolver resolves configurations against an index built from the
// build definition's repository blocks. Declared versions match exactly
// first, then as a semver constraint against available versions; versionless
// declarations resolve through the lock state's pinned version, mirroring a
// platform (BOM) supplying it.
type InMemoryResolver struct {
	// modules maps a `group:artifact` key to its available versions,
	// newest semver first.
	modules map[string][]*moduleEntry
}

// NewInMemoryResolver builds the module index from repository definitions.
func NewInMemoryResolver(repos []*config.Repository) (*InMemoryResolver, error) {
	r := &InMemoryResolver{modules: make(map[string][]*moduleEntry)}
	for _, repo := range repos {
		for _, def := range repo.Modules {
			entry, err := newModuleEntry(repo.Name, def)
			if err != nil {
				return nil, err
			}
			key := entry.coord.Module()
			r.modules[key] = append(r.modules[key], entry)
		}
	}
	for _, entries := range r.modules {
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i].version, entries[j].version
			if a == nil || b == nil {
				return entries[i].coord.Version > entries[j].coord.Version
			}
			return a.GreaterThan(b)
		})
	}
	return r, nil
}

func newModuleEntry(repoName string, def *config.ModuleDef) (*moduleEntry, error) {
	coord, err := coordinate.Parse(def.Coordinate)
	if err != nil {
		return nil, fmt.Errorf("repository %q: %w", repoName, err)
	}
	entry := &moduleEntry{coord: coord, artifact: def.Artifact}
	if v, err := semver.NewVersion(coord.Version); err == nil {
		entry.version = v
	}
	for _, raw := range def.Dependencies {
		dep, err := coordinate.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("repository %q module %q: %w", repoName, def.Coordinate, err)
		}
		entry.dependencies = append(entry.dependencies, dep)
	}
	return entry, nil
}

// Resolve walks a configuration's declared coordinates and their transitive
// dependencies, collecting one cause per failing selector and one lock
// staleness cause per resolved coordinate missing from the lock state.
func (r *InMemoryResolver) Resolve(ctx context.Context, project *ProjectState, cfg *Configuration, depth Depth) ([]Cause, error) {
	if project == nil || cfg == nil {
		return nil, fmt.Errorf("resolver invoked without project or configuration")
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving configuration.",
		"project", project.Name(),
		"configuration", cfg.Name(),
		"depth", int(depth),
	)

	var causes []Cause
	visited := make(map[string]bool)

	for _, declared := range cfg.Declared() {
		entry := r.selectVersion(project, cfg.Name(), declared)
		if entry == nil {
			causes = append(causes, NewUnresolvedCause(declared.String()))
			continue
		}
		causes = r.walk(project, cfg.Name(), entry, depth, visited, causes)
	}
	return causes, nil
}

// walk checks one resolved module and recurses into its transitives.
func (r *InMemoryResolver) walk(project *ProjectState, cfgName string, entry *moduleEntry, depth Depth, visited map[string]bool, causes []Cause) []Cause {
	key := entry.coord.String()
	if visited[key] {
		return causes
	}
	visited[key] = true

	if depth == DepthArtifacts && !entry.artifact {
		return append(causes, NewUnresolvedCause(key))
	}

	if project.Lock().Locked(cfgName) && !project.Lock().Contains(cfgName, entry.coord) {
		causes = append(causes, NewLockOutOfDateCause(key))
	}

	for _, dep := range entry.dependencies {
		next := r.exact(dep)
		if next == nil {
			causes = append(causes, NewUnresolvedCause(dep.String()))
			continue
		}
		causes = r.walk(project, cfgName, next, depth, visited, causes)
	}
	return causes
}

// selectVersion picks the module version a declared coordinate resolves to,
// or nil when nothing satisfies it.
func (r *InMemoryResolver) selectVersion(project *ProjectState, cfgName string, declared coordinate.Coordinate) *moduleEntry {
	entries := r.modules[declared.Module()]
	if len(entries) == 0 {
		return nil
	}

	version := declared.Version
	if version == "" {
		// No declared version: only a lock-state pin can supply one.
		pinned, ok := project.Lock().LockedVersion(cfgName, declared.Module())
		if !ok {
			return nil
		}
		return r.exact(coordinate.Coordinate{Group: declared.Group, Artifact: declared.Artifact, Version: pinned})
	}

	for _, entry := range entries {
		if entry.coord.Version == version {
			return entry
		}
	}

	constraint, err := semver.NewConstraint(version)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		if entry.version != nil && constraint.Check(entry.version) {
			return entry
		}
	}
	return nil
}

// exact looks up a module by its full coordinate.
func (r *InMemoryResolver) exact(c coordinate.Coordinate) *moduleEntry {
	for _, entry := range r.modules[c.Module()] {
		if entry.coord.Version == c.Version {
			return entry
		}
	}
	return nil
}
