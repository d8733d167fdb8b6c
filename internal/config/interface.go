package config

import "context"

// Loader is the interface for a format-specific build definition loader.
type Loader interface {
	// Load reads build definition files from the given paths, translates
	// them into the format-agnostic model, and validates cross-references.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
