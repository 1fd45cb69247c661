package artisan

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/hay-kot/artisan/internal/core/craft"
	"github.com/hay-kot/artisan/internal/core/macro"
	"github.com/hay-kot/artisan/internal/core/recipe"
	"github.com/hay-kot/artisan/internal/core/validate"
)

// TaskSpec describes a task by name before its recipe and macro are resolved.
type TaskSpec struct {
	Item string `json:"item" yaml:"item"`
	// Job is a crafter abbreviation (CRP, BSM, ...). It narrows the recipe
	// lookup and picks the configured gearset.
	Job string `json:"job,omitempty" yaml:"job,omitempty"`
	// Macro is a macro name inside the macros directory or a file path.
	Macro       string `json:"macro" yaml:"macro"`
	Index       int    `json:"index,omitempty" yaml:"index,omitempty"`
	Count       int    `json:"count,omitempty" yaml:"count,omitempty"`
	Gearset     int    `json:"gearset,omitempty" yaml:"gearset,omitempty"`
	Collectable bool   `json:"collectable,omitempty" yaml:"collectable,omitempty"`
	// Materials skips the recipe lookup when set.
	Materials []craft.Material `json:"materials,omitempty" yaml:"materials,omitempty"`
}

// Normalize fills defaults for omitted fields.
func (s *TaskSpec) Normalize() {
	if s.Count == 0 {
		s.Count = 1
	}
	if s.Job != "" {
		if job, err := recipe.NormalizeJob(s.Job); err == nil {
			s.Job = job
		}
	}
}

// Validate checks the spec's fields.
func (s TaskSpec) Validate() error {
	return s.appendErrors(criterio.FieldErrorsBuilder{}, "").ToError()
}

func (s TaskSpec) appendErrors(errs criterio.FieldErrorsBuilder, prefix string) criterio.FieldErrorsBuilder {
	if err := validate.ItemName(s.Item); err != nil {
		errs = errs.Append(prefix+"item", err)
	}
	if s.Macro == "" {
		errs = errs.Append(prefix+"macro", errors.New("macro is required"))
	}
	if err := validate.Count(s.Count); err != nil {
		errs = errs.Append(prefix+"count", err)
	}
	if err := validate.Index(s.Index); err != nil {
		errs = errs.Append(prefix+"index", err)
	}
	if err := validate.Gearset(s.Gearset); err != nil {
		errs = errs.Append(prefix+"gearset", err)
	}
	if s.Job != "" {
		if _, err := recipe.NormalizeJob(s.Job); err != nil {
			errs = errs.Append(prefix+"job", err)
		}
	}
	if err := validate.Materials(s.Materials); err != nil {
		var fe criterio.FieldErrors
		if errors.As(err, &fe) {
			for _, e := range fe {
				errs = errs.Append(prefix+"materials"+e.Field, e.Err)
			}
		} else {
			errs = errs.Append(prefix+"materials", err)
		}
	}
	return errs
}

// BatchInput is the batch file schema.
type BatchInput struct {
	Tasks []TaskSpec `json:"tasks" yaml:"tasks"`
}

// Normalize fills defaults for every task.
func (b *BatchInput) Normalize() {
	for i := range b.Tasks {
		b.Tasks[i].Normalize()
	}
}

// Validate checks every task in the batch.
func (b BatchInput) Validate() error {
	if len(b.Tasks) == 0 {
		return criterio.NewFieldErrors("tasks", fmt.Errorf("array is empty"))
	}

	var errs criterio.FieldErrorsBuilder
	for i, spec := range b.Tasks {
		errs = spec.appendErrors(errs, fmt.Sprintf("tasks[%d].", i))
	}
	return errs.ToError()
}

// Resolver turns TaskSpecs into runnable Tasks by looking up recipes, parsing
// macros and resolving gearsets.
type Resolver struct {
	recipes   recipe.Source
	macrosDir string
	gearset   func(job string) int
	log       zerolog.Logger
}

// NewResolver creates a Resolver. gearset maps a job abbreviation to its
// configured gearset, or 0.
func NewResolver(recipes recipe.Source, macrosDir string, gearset func(job string) int, log zerolog.Logger) *Resolver {
	return &Resolver{recipes: recipes, macrosDir: macrosDir, gearset: gearset, log: log}
}

// Resolve builds the Task for spec.
func (r *Resolver) Resolve(ctx context.Context, spec TaskSpec) (craft.Task, error) {
	item := craft.Item{Name: spec.Item, Job: spec.Job, Materials: spec.Materials}
	if len(spec.Materials) == 0 {
		found, err := r.recipes.Lookup(ctx, spec.Item, spec.Job)
		if err != nil {
			return craft.Task{}, fmt.Errorf("lookup recipe: %w", err)
		}
		item = found
	}

	path, err := macro.Find(r.macrosDir, spec.Macro)
	if err != nil {
		return craft.Task{}, fmt.Errorf("find macro: %w", err)
	}
	actions, err := macro.ParseFile(path)
	if err != nil {
		return craft.Task{}, fmt.Errorf("parse macro: %w", err)
	}

	gearset := spec.Gearset
	if gearset == 0 {
		job := spec.Job
		if job == "" {
			job = item.Job
		}
		if job != "" {
			gearset = r.gearset(job)
		}
	}

	r.log.Debug().
		Str("item", item.Name).
		Str("job", item.Job).
		Str("macro", path).
		Int("actions", len(actions)).
		Int("gearset", gearset).
		Msg("resolved task")

	return craft.Task{
		Item:        item,
		Index:       spec.Index,
		Count:       spec.Count,
		Actions:     actions,
		Gearset:     gearset,
		Collectable: spec.Collectable,
	}, nil
}

// ResolveAll resolves every spec and stops at the first failure.
func (r *Resolver) ResolveAll(ctx context.Context, specs []TaskSpec) ([]craft.Task, error) {
	tasks := make([]craft.Task, 0, len(specs))
	for i, spec := range specs {
		task, err := r.Resolve(ctx, spec)
		if err != nil {
			return nil, fmt.Errorf("tasks[%d] (%s): %w", i, spec.Item, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
