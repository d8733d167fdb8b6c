// Package coordinate defines the dependency coordinate notation used
// throughout the engine: `group:artifact` or `group:artifact:version`.
package coordinate

import (
	"fmt"
	"strings"
)

// Coordinate is the structured representation of a dependency identifier.
// Version may be empty, an exact version, or a version constraint; a
// coordinate without a version typically relies on a platform (BOM) to
// supply one.
type Coordinate struct {
	Group    string
	Artifact string
	Version  string
}

// Parse creates a Coordinate from its canonical string form.
func Parse(raw string) (Coordinate, error) {
	if raw == "" {
		return Coordinate{}, fmt.Errorf("coordinate cannot be empty")
	}

	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Coordinate{}, fmt.Errorf("invalid coordinate format: %q", raw)
	}
	for _, part := range parts {
		if part == "" {
			return Coordinate{}, fmt.Errorf("coordinate contains empty segment: %q", raw)
		}
	}

	c := Coordinate{Group: parts[0], Artifact: parts[1]}
	if len(parts) == 3 {
		c.Version = parts[2]
	}
	return c, nil
}

// String serializes the Coordinate into its canonical string form. The
// version segment is omitted when absent.
func (c Coordinate) String() string {
	if c.Version == "" {
		return c.Group + ":" + c.Artifact
	}
	return c.Group + ":" + c.Artifact + ":" + c.Version
}

// Module returns the version-independent `group:artifact` key.
func (c Coordinate) Module() string {
	return c.Group + ":" + c.Artifact
}

// HasVersion reports whether the coordinate carries a version segment.
func (c Coordinate) HasVersion() bool {
	return c.Version != ""
}

// MissingVersion reports whether a raw coordinate string lacks a version
// segment, i.e. has fewer than three colon-delimited parts.
func MissingVersion(raw string) bool {
	return strings.Count(raw, ":") < 2
}
