// Package lockstate reads previously recorded dependency lock state and
// answers whether a resolved coordinate is part of it. The engine only ever
// consumes this read side; writing lock state is out of scope.
package lockstate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/coordinate"
)

// State is an immutable snapshot of a project's recorded lock state. The
// on-disk form maps configuration names to `group:artifact` -> version pairs:
//
//	{
//	  "compileClasspath": {
//	    "test.nebula:d": {"locked": "1.0.0"}
//	  }
//	}
type State struct {
	byConfiguration map[string]map[string]lockedModule
}

type lockedModule struct {
	Locked string `json:"locked"`
}

// Empty returns a State with no locked configurations. Projects without a
// lock file verify resolution only, never staleness.
func Empty() *State {
	return &State{byConfiguration: map[string]map[string]lockedModule{}}
}

// Load reads and parses a lock file from disk.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lock file %q: %w", path, err)
	}

	var raw map[string]map[string]lockedModule
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse lock file %q: %w", path, err)
	}
	if raw == nil {
		raw = map[string]map[string]lockedModule{}
	}
	return &State{byConfiguration: raw}, nil
}

// Locked reports whether lock state was recorded for the named configuration.
// Configurations absent from the lock file are unlocked and exempt from
// staleness checks.
func (s *State) Locked(configuration string) bool {
	_, ok := s.byConfiguration[configuration]
	return ok
}

// Contains reports whether the exact resolved coordinate is part of the
// recorded lock state for the named configuration.
func (s *State) Contains(configuration string, c coordinate.Coordinate) bool {
	modules, ok := s.byConfiguration[configuration]
	if !ok {
		return false
	}
	locked, ok := modules[c.Module()]
	return ok && locked.Locked == c.Version
}

// LockedVersion returns the version the lock state pins for a module in the
// named configuration, if any. Versionless declarations resolve through this
// pin when no other source supplies a version.
func (s *State) LockedVersion(configuration, module string) (string, bool) {
	modules, ok := s.byConfiguration[configuration]
	if !ok {
		return "", false
	}
	locked, ok := modules[module]
	if !ok {
		return "", false
	}
	return locked.Locked, true
}
