// Package config defines the format-agnostic model of a build definition:
// projects with their dependency configurations and lock options, the
// repositories modules are resolved from, and the tasks that make up the
// build. Format-specific loaders (see the hcl package) translate their
// native schemas into this model.
package config
