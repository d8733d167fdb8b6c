package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/config"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/coordinate"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/ctxlog"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/fsutil"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/schema"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL build definition loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads all .hcl files under the given paths, decodes and merges them,
// and translates the result into the config model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to discover build files under %q: %w", path, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl build definition files found under %v", paths)
	}
	logger.Debug("Discovered build definition files.", "count", len(files))

	parser := hclparse.NewParser()
	merged := &schemaMerge{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %q: %w", file, diags)
		}
		if err := merged.decode(hclFile.Body); err != nil {
			return nil, fmt.Errorf("failed to decode %q: %w", file, err)
		}
		logger.Debug("Parsed build definition file.", "file", file)
	}

	model, err := l.translate(ctx, merged)
	if err != nil {
		return nil, err
	}
	if err := validate(model); err != nil {
		return nil, err
	}
	logger.Debug("Build definition translated into unified model.",
		"projects", len(model.Projects),
		"repositories", len(model.Repositories),
		"tasks", len(model.Tasks),
	)
	return model, nil
}

// schemaMerge accumulates decoded blocks across multiple files.
type schemaMerge struct {
	projects     []*schema.Project
	repositories []*schema.Repository
	tasks        []*schema.Task
}

func (m *schemaMerge) decode(body hcl.Body) error {
	var cfg schema.BuildConfig
	if diags := gohcl.DecodeBody(body, nil, &cfg); diags.HasErrors() {
		return diags
	}
	m.projects = append(m.projects, cfg.Projects...)
	m.repositories = append(m.repositories, cfg.Repositories...)
	m.tasks = append(m.tasks, cfg.Tasks...)
	return nil
}

// validate checks the cross-references the decoder cannot: unique project
// names, task ownership, configuration references, and coordinate syntax.
func validate(model *config.Model) error {
	projects := make(map[string]*config.Project, len(model.Projects))
	for _, p := range model.Projects {
		if _, exists := projects[p.Name]; exists {
			return fmt.Errorf("duplicate project definition: %q", p.Name)
		}
		projects[p.Name] = p

		configurations := make(map[string]bool, len(p.Configurations))
		for _, c := range p.Configurations {
			if configurations[c.Name] {
				return fmt.Errorf("duplicate configuration %q in project %q", c.Name, p.Name)
			}
			configurations[c.Name] = true
			for _, dep := range c.Dependencies {
				if _, err := coordinate.Parse(dep); err != nil {
					return fmt.Errorf("project %q configuration %q: %w", p.Name, c.Name, err)
				}
			}
		}
	}

	for _, repo := range model.Repositories {
		for _, mod := range repo.Modules {
			c, err := coordinate.Parse(mod.Coordinate)
			if err != nil {
				return fmt.Errorf("repository %q: %w", repo.Name, err)
			}
			if !c.HasVersion() {
				return fmt.Errorf("repository %q module %q must carry a version", repo.Name, mod.Coordinate)
			}
			for _, dep := range mod.Dependencies {
				if _, err := coordinate.Parse(dep); err != nil {
					return fmt.Errorf("repository %q module %q: %w", repo.Name, mod.Coordinate, err)
				}
			}
		}
	}

	for _, t := range model.Tasks {
		owner, ok := projects[t.Project]
		if !ok {
			return fmt.Errorf("task %q references unknown project %q", t.Name, t.Project)
		}
		for _, name := range t.Resolves {
			found := false
			for _, c := range owner.Configurations {
				if c.Name == name {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("task %q resolves unknown configuration %q in project %q", t.Name, name, t.Project)
			}
		}
	}

	return nil
}
