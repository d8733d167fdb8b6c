package resolve

import (
	"context"
	"fmt"
	"sync"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/config"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/coordinate"
)

// Depth selects how far resolution is forced.
type Depth int

const (
	// DepthGraph resolves dependency metadata only.
	DepthGraph Depth = iota

	// DepthArtifacts additionally forces artifact resolution.
	DepthArtifacts
)

// Resolver is the black-box resolution mechanism. It returns the typed
// failure causes for a configuration, or an internal error when the
// mechanism itself is broken (never for a legitimate dependency problem).
type Resolver interface {
	Resolve(ctx context.Context, project *ProjectState, cfg *Configuration, depth Depth) ([]Cause, error)
}

// Configuration is the runtime state of a named dependency configuration:
// its declared coordinates plus a resolution state that advances as tasks
// and the verifier touch it.
type Configuration struct {
	name     string
	declared []coordinate.Coordinate

	mu    sync.Mutex
	state State
}

// NewConfiguration builds the runtime configuration from its declaration.
func NewConfiguration(def *config.ConfigurationDef) (*Configuration, error) {
	c := &Configuration{name: def.Name}
	for _, raw := range def.Dependencies {
		parsed, err := coordinate.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("configuration %q: %w", def.Name, err)
		}
		c.declared = append(c.declared, parsed)
	}
	return c, nil
}

// Name returns the configuration name.
func (c *Configuration) Name() string {
	return c.name
}

// Declared returns the coordinates declared in this configuration.
func (c *Configuration) Declared() []coordinate.Coordinate {
	return c.declared
}

// State returns the current resolution state.
func (c *Configuration) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Resolve forces resolution of the configuration through the given resolver
// and advances the resolution state accordingly. The returned causes are the
// resolution failures; a non-nil error means the resolver itself misbehaved.
func (c *Configuration) Resolve(ctx context.Context, r Resolver, project *ProjectState, depth Depth) ([]Cause, error) {
	c.mu.Lock()
	c.state = StateResolving
	c.mu.Unlock()

	causes, err := r.Resolve(ctx, project, c, depth)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateResolvedFailed
		return nil, err
	}
	if len(causes) == 0 {
		c.state = StateResolvedSuccess
	} else {
		c.state = StateResolvedFailed
	}
	return causes, nil
}
