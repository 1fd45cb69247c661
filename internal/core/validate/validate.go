// Package validate provides shared validation functions for crafting input.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/artisan/internal/core/craft"
)

// MaxGearset is the highest gearset number the game accepts.
const MaxGearset = 100

// ItemName validates an item name is non-empty after trimming whitespace.
func ItemName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("item name is required")
	}
	return nil
}

// Count validates a repetition count.
func Count(n int) error {
	if n < 1 {
		return fmt.Errorf("must be at least 1, got %d", n)
	}
	return nil
}

// Index validates a search result index.
func Index(n int) error {
	if n < 0 {
		return fmt.Errorf("cannot be negative, got %d", n)
	}
	return nil
}

// Gearset validates a gearset number. 0 means no change.
func Gearset(n int) error {
	if n < 0 || n > MaxGearset {
		return fmt.Errorf("must be between 0 and %d, got %d", MaxGearset, n)
	}
	return nil
}

// Materials validates an ingredient list.
func Materials(materials []craft.Material) error {
	var errs criterio.FieldErrorsBuilder
	for i, m := range materials {
		field := fmt.Sprintf("[%d]", i)
		if strings.TrimSpace(m.Name) == "" {
			errs = errs.Append(field+".name", errors.New("cannot be empty"))
		}
		if m.Count < 1 {
			errs = errs.Append(field+".count", fmt.Errorf("must be at least 1, got %d", m.Count))
		}
	}
	return errs.ToError()
}

// ParseMaterial parses a "name=count" pair.
func ParseMaterial(s string) (craft.Material, error) {
	name, count, ok := strings.Cut(s, "=")
	if !ok {
		return craft.Material{}, fmt.Errorf("invalid material %q, expected name=count", s)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return craft.Material{}, fmt.Errorf("invalid material %q, name is empty", s)
	}

	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil || n < 1 {
		return craft.Material{}, fmt.Errorf("invalid material %q, count must be a positive integer", s)
	}

	return craft.Material{Name: name, Count: n}, nil
}

// ItemNameField returns a criterio validator for item names.
func ItemNameField(field, name string) error {
	return criterio.Run(field, name, ItemName)
}
