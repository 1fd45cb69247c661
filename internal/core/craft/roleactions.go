package craft

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/artisan/internal/core/input"
	"github.com/rs/zerolog"
)

// ErrTooManyRoleActions is returned when a task needs more role actions than
// there are slots.
var ErrTooManyRoleActions = errors.New("artisan: too many role actions for available slots")

// DefaultRoleActionSlots is the number of role action slots the game offers.
const DefaultRoleActionSlots = 10

// DefaultRoleActions are the cross-class crafting actions that must be slotted
// before use.
var DefaultRoleActions = []string{
	"Brand of Earth",
	"Brand of Fire",
	"Brand of Ice",
	"Brand of Lightning",
	"Brand of Water",
	"Brand of Wind",
	"Byregot's Blessing",
	"Careful Synthesis",
	"Careful Synthesis II",
	"Comfort Zone",
	"Flawless Synthesis",
	"Ingenuity",
	"Ingenuity II",
	"Innovation",
	"Maker's Mark",
	"Piece by Piece",
	"Rapid Synthesis",
	"Reclaim",
	"Rumination",
	"Steady Hand II",
	"Tricks of the Trade",
	"Waste Not",
	"Waste Not II",
}

// RoleActionSet is a case-insensitive set of role action names.
type RoleActionSet map[string]struct{}

// NewRoleActionSet builds a set from names.
func NewRoleActionSet(names ...string) RoleActionSet {
	set := make(RoleActionSet, len(names))
	for _, n := range names {
		set[canonical(n)] = struct{}{}
	}
	return set
}

// Contains reports whether name is a role action.
func (s RoleActionSet) Contains(name string) bool {
	_, ok := s[canonical(name)]
	return ok
}

func canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RoleActionCache keeps the game's role action slots in line with what a task
// needs.
type RoleActionCache interface {
	// IsRoleAction reports whether name needs a slot.
	IsRoleAction(name string) bool
	// Reconcile slots every role action in required that is not already
	// slotted.
	Reconcile(required []string) error
	// Clear empties every slot.
	Clear() error
}

// SlotCache is a write-through RoleActionCache. It never reads slot state back
// from the game, so Clear must be called whenever slots may have changed
// behind its back (gearset changes, start of a run).
type SlotCache struct {
	set      RoleActionSet
	capacity int
	typist   typist
	log      zerolog.Logger

	// active holds slotted names in activation order.
	active []string
}

// NewSlotCache creates an empty cache. A capacity below 1 uses
// DefaultRoleActionSlots.
func NewSlotCache(surface input.Surface, set RoleActionSet, capacity int, timing Timing, log zerolog.Logger) *SlotCache {
	if capacity < 1 {
		capacity = DefaultRoleActionSlots
	}
	return &SlotCache{
		set:      set,
		capacity: capacity,
		typist:   typist{surface: surface, timing: timing, log: log},
		log:      log,
	}
}

func (c *SlotCache) IsRoleAction(name string) bool {
	return c.set.Contains(name)
}

// Active returns the slotted role actions in activation order.
func (c *SlotCache) Active() []string {
	out := make([]string, len(c.active))
	copy(out, c.active)
	return out
}

func (c *SlotCache) Reconcile(required []string) error {
	needed := c.roleActions(required)
	if len(needed) > c.capacity {
		return fmt.Errorf("%w: need %d, have %d", ErrTooManyRoleActions, len(needed), c.capacity)
	}

	keep := make(map[string]struct{}, len(needed))
	for _, n := range needed {
		keep[canonical(n)] = struct{}{}
	}

	for _, name := range needed {
		if c.isActive(name) {
			continue
		}

		if len(c.active) >= c.capacity {
			if err := c.evict(keep); err != nil {
				return err
			}
		}

		if err := c.toggle(name, "on"); err != nil {
			return err
		}
		c.active = append(c.active, name)
	}

	return nil
}

func (c *SlotCache) Clear() error {
	if err := c.typist.command("/aaction clear"); err != nil {
		return fmt.Errorf("clear role actions: %w", err)
	}
	c.active = nil
	return nil
}

// roleActions filters required down to unique role action names, keeping the
// first spelling seen.
func (c *SlotCache) roleActions(required []string) []string {
	seen := make(map[string]struct{}, len(required))
	var out []string
	for _, name := range required {
		if !c.IsRoleAction(name) {
			continue
		}
		key := canonical(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

func (c *SlotCache) isActive(name string) bool {
	key := canonical(name)
	for _, a := range c.active {
		if canonical(a) == key {
			return true
		}
	}
	return false
}

// evict turns off the oldest slotted action that is not in keep.
func (c *SlotCache) evict(keep map[string]struct{}) error {
	for i, a := range c.active {
		if _, ok := keep[canonical(a)]; ok {
			continue
		}
		if err := c.toggle(a, "off"); err != nil {
			return err
		}
		c.active = append(c.active[:i:i], c.active[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: every slot is in use", ErrTooManyRoleActions)
}

func (c *SlotCache) toggle(name, verb string) error {
	c.log.Debug().Str("action", name).Str("verb", verb).Msg("toggling role action")
	if err := c.typist.command(fmt.Sprintf(`/aaction "%s" %s`, name, verb)); err != nil {
		return fmt.Errorf("role action %s %s: %w", name, verb, err)
	}
	if c.typist.timing.RoleActionSettle > 0 {
		c.typist.surface.Wait(c.typist.timing.RoleActionSettle)
	}
	return nil
}
