// Package schema holds the HCL-facing structures a build definition file
// decodes into, before translation into the format-agnostic config model.
package schema

import "github.com/hashicorp/hcl/v2"

// Configuration represents a `configuration` block inside a project.
type Configuration struct {
	Name         string   `hcl:"name,label"`
	Dependencies []string `hcl:"dependencies,optional"`
}

// LockOptions represents the optional `lock_options` block inside a project.
// Attributes are kept as raw expressions so the translator can distinguish
// "absent" from "explicitly set" and apply defaults.
type LockOptions struct {
	FailOnUnresolved       hcl.Expression `hcl:"fail_on_unresolved,optional"`
	ExcludedConfigurations hcl.Expression `hcl:"excluded_configurations,optional"`
}

// Project represents a `project` block from a build definition file.
type Project struct {
	Name           string           `hcl:"name,label"`
	LockFile       string           `hcl:"lock_file,optional"`
	Configurations []*Configuration `hcl:"configuration,block"`
	LockOptions    *LockOptions     `hcl:"lock_options,block"`
}

// Module represents a `module` block inside a repository.
type Module struct {
	Coordinate   string   `hcl:"coordinate,label"`
	Dependencies []string `hcl:"dependencies,optional"`
	Artifact     *bool    `hcl:"artifact,optional"`
}

// Repository represents a `repository` block from a build definition file.
type Repository struct {
	Name    string    `hcl:"name,label"`
	Modules []*Module `hcl:"module,block"`
}

// Task represents a `task` block. The first label is the owning project,
// the second the task identity shared across projects.
type Task struct {
	Project   string   `hcl:"project,label"`
	Name      string   `hcl:"task_name,label"`
	Type      string   `hcl:"type,optional"`
	Resolves  []string `hcl:"resolves,optional"`
	DependsOn []string `hcl:"depends_on,optional"`
}

// BuildConfig represents the top-level structure of a build definition file.
type BuildConfig struct {
	Projects     []*Project    `hcl:"project,block"`
	Repositories []*Repository `hcl:"repository,block"`
	Tasks        []*Task       `hcl:"task,block"`
	Body         hcl.Body      `hcl:",remain"`
}
