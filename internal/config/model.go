package config

// Model is the unified, format-agnostic representation of an entire build
// definition: every project, repository, and scheduled task.
type Model struct {
	Projects     []*Project
	Repositories []*Repository
	Tasks        []*TaskDef
}

// Project is the unit of verification. It owns a set of dependency
// configurations and the lock options that govern how resolution failures
// are reported for it.
type Project struct {
	Name           string
	LockFile       string
	Configurations []*ConfigurationDef
	LockOptions    LockOptions
}

// ConfigurationDef declares a named dependency configuration and the
// coordinates declared in it. Versions may be exact, a semver constraint,
// or absent (platform-managed).
type ConfigurationDef struct {
	Name         string
	Dependencies []string
}

// LockOptions is the project-scoped verification policy surface.
type LockOptions struct {
	// FailOnUnresolved selects whether an aggregated resolution failure
	// halts the build or is logged as a warning. Defaults to true.
	FailOnUnresolved bool

	// ExcludedConfigurations names configurations exempted from forcing
	// and reporting.
	ExcludedConfigurations []string
}

// Repository describes a source of resolvable modules.
type Repository struct {
	Name    string
	Modules []*ModuleDef
}

// ModuleDef describes a single module a repository can serve.
type ModuleDef struct {
	// Coordinate is the full `group:artifact:version` identity of the module.
	Coordinate string

	// Dependencies lists the exact coordinates this module pulls in
	// transitively.
	Dependencies []string

	// Artifact reports whether the repository can serve the module's
	// artifact, not just its metadata. Graph-only resolution succeeds for a
	// module without an artifact; forcing artifact resolution does not.
	Artifact bool
}

// TaskDef is the declaration of a single unit of build work. Its name is the
// task identity, shared across projects (e.g. `compileJava`).
type TaskDef struct {
	Name      string
	Project   string
	Type      string
	Resolves  []string
	DependsOn []string
}
