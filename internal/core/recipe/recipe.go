// Package recipe resolves item names to craftable items and their material
// lists.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hay-kot/artisan/internal/core/craft"
)

// ErrRecipeNotFound is returned when no recipe matches a name.
var ErrRecipeNotFound = errors.New("artisan: recipe not found")

// ErrUnknownJob is returned for a job abbreviation outside Jobs.
var ErrUnknownJob = errors.New("artisan: unknown job")

// Source looks up recipes. job is a crafter abbreviation such as "CRP"; an
// empty job accepts any crafter.
type Source interface {
	Lookup(ctx context.Context, name, job string) (craft.Item, error)
}

// Jobs maps crafter abbreviations to their numeric job ids.
var Jobs = map[string]int{
	"CRP": 8,
	"BSM": 9,
	"ARM": 10,
	"GSM": 11,
	"LTW": 12,
	"WVR": 13,
	"ALC": 14,
	"CUL": 15,
}

// JobNames returns the sorted crafter abbreviations.
func JobNames() []string {
	names := make([]string, 0, len(Jobs))
	for n := range Jobs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NormalizeJob upper-cases and validates a job abbreviation. Empty stays empty.
func NormalizeJob(job string) (string, error) {
	job = strings.ToUpper(strings.TrimSpace(job))
	if job == "" {
		return "", nil
	}
	if _, ok := Jobs[job]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownJob, job)
	}
	return job, nil
}

func jobAbbrev(id int) string {
	for n, v := range Jobs {
		if v == id {
			return n
		}
	}
	return ""
}

// Static is a Source over a fixed set of items, matched by case-insensitive
// name.
type Static struct {
	items map[string]craft.Item
}

// NewStatic creates a Static source.
func NewStatic(items ...craft.Item) *Static {
	s := &Static{items: make(map[string]craft.Item, len(items))}
	for _, it := range items {
		s.items[strings.ToLower(it.Name)] = it
	}
	return s
}

func (s *Static) Lookup(_ context.Context, name, job string) (craft.Item, error) {
	it, ok := s.items[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return craft.Item{}, fmt.Errorf("%w: %s", ErrRecipeNotFound, name)
	}
	if job != "" && it.Job != "" && !strings.EqualFold(job, it.Job) {
		return craft.Item{}, fmt.Errorf("%w: %s for %s", ErrRecipeNotFound, name, job)
	}
	return it, nil
}
