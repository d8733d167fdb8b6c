package resolve

import (
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/config"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/lockstate"
)

// ProjectState groups the runtime configurations of one project with its
// lock state snapshot and verification options.
type ProjectState struct {
	name           string
	configurations []*Configuration
	byName         map[string]*Configuration
	lock           *lockstate.State
	options        config.LockOptions
}

// NewProjectState builds the runtime state for a project. A nil lock state
// is treated as empty: resolution is verified, staleness is not.
func NewProjectState(def *config.Project, lock *lockstate.State) (*ProjectState, error) {
	if lock == nil {
		lock = lockstate.Empty()
	}
	p := &ProjectState{
		name:    def.Name,
		byName:  make(map[string]*Configuration, len(def.Configurations)),
		lock:    lock,
		options: def.LockOptions,
	}
	for _, cfgDef := range def.Configurations {
		cfg, err := NewConfiguration(cfgDef)
		if err != nil {
			return nil, err
		}
		p.configurations = append(p.configurations, cfg)
		p.byName[cfg.Name()] = cfg
	}
	return p, nil
}

// Name returns the project name.
func (p *ProjectState) Name() string {
	return p.name
}

// Configurations returns the project's configurations in declaration order.
func (p *ProjectState) Configurations() []*Configuration {
	return p.configurations
}

// Configuration returns the named configuration, or nil if undeclared.
func (p *ProjectState) Configuration(name string) *Configuration {
	return p.byName[name]
}

// Lock returns the project's recorded lock state snapshot.
func (p *ProjectState) Lock() *lockstate.State {
	return p.lock
}

// Options returns the project-scoped verification options.
func (p *ProjectState) Options() config.LockOptions {
	return p.options
}
