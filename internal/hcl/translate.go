package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/config"
	"github.com/LironJit/gradle-dependency-lock-plugin/internal/schema"
)

// translate converts the merged HCL schema structures into the agnostic model.
func (l *Loader) translate(ctx context.Context, merged *schemaMerge) (*config.Model, error) {
	model := &config.Model{}

	for _, p := range merged.projects {
		project, err := translateProject(p)
		if err != nil {
			return nil, err
		}
		model.Projects = append(model.Projects, project)
	}
	for _, r := range merged.repositories {
		model.Repositories = append(model.Repositories, translateRepository(r))
	}
	for _, t := range merged.tasks {
		taskType := t.Type
		if taskType == "" {
			taskType = "resolve"
		}
		model.Tasks = append(model.Tasks, &config.TaskDef{
			Name:      t.Name,
			Project:   t.Project,
			Type:      taskType,
			Resolves:  t.Resolves,
			DependsOn: t.DependsOn,
		})
	}

	return model, nil
}

func translateProject(p *schema.Project) (*config.Project, error) {
	project := &config.Project{
		Name:     p.Name,
		LockFile: p.LockFile,
		LockOptions: config.LockOptions{
			FailOnUnresolved: true,
		},
	}
	for _, c := range p.Configurations {
		project.Configurations = append(project.Configurations, &config.ConfigurationDef{
			Name:         c.Name,
			Dependencies: c.Dependencies,
		})
	}
	if p.LockOptions != nil {
		opts, err := translateLockOptions(p.LockOptions)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", p.Name, err)
		}
		project.LockOptions = opts
	}
	return project, nil
}

// translateLockOptions evaluates the raw lock_options expressions, applying
// the documented defaults for absent attributes.
func translateLockOptions(opts *schema.LockOptions) (config.LockOptions, error) {
	out := config.LockOptions{FailOnUnresolved: true}

	val, err := evalAttr(opts.FailOnUnresolved)
	if err != nil {
		return out, fmt.Errorf("fail_on_unresolved: %w", err)
	}
	if val != cty.NilVal && !val.IsNull() {
		converted, err := convert.Convert(val, cty.Bool)
		if err != nil {
			return out, fmt.Errorf("fail_on_unresolved must be a bool: %w", err)
		}
		out.FailOnUnresolved = converted.True()
	}

	val, err = evalAttr(opts.ExcludedConfigurations)
	if err != nil {
		return out, fmt.Errorf("excluded_configurations: %w", err)
	}
	if val != cty.NilVal && !val.IsNull() {
		converted, err := convert.Convert(val, cty.List(cty.String))
		if err != nil {
			return out, fmt.Errorf("excluded_configurations must be a list of strings: %w", err)
		}
		for it := converted.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			out.ExcludedConfigurations = append(out.ExcludedConfigurations, elem.AsString())
		}
	}

	return out, nil
}

// evalAttr evaluates an optional attribute expression. Absent attributes
// decode to a nil expression or a null literal; both are reported as NilVal.
func evalAttr(expr hcl.Expression) (cty.Value, error) {
	if expr == nil {
		return cty.NilVal, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	if val.IsNull() {
		return cty.NilVal, nil
	}
	return val, nil
}

func translateRepository(r *schema.Repository) *config.Repository {
	repo := &config.Repository{Name: r.Name}
	for _, m := range r.Modules {
		artifact := true
		if m.Artifact != nil {
			artifact = *m.Artifact
		}
		repo.Modules = append(repo.Modules, &config.ModuleDef{
			Coordinate:   m.Coordinate,
			Dependencies: m.Dependencies,
			Artifact:     artifact,
		})
	}
	return repo
}
