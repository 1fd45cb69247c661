package craft

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hay-kot/artisan/internal/core/input"
	"github.com/rs/zerolog"
)

// DefaultSearchBackwardSteps is enough backward moves to reach the recipe
// search box from anywhere in the crafting log, whatever the job.
const DefaultSearchBackwardSteps = 9

// collectableAction toggles collectable synthesis mode.
const collectableAction = "collectable synthesis"

// SequencerOptions tunes a Sequencer.
type SequencerOptions struct {
	Timing              Timing
	SearchBackwardSteps int
	// DryRun runs everything up to recipe selection but skips the syntheses.
	DryRun bool
}

// DefaultSequencerOptions returns the tuned defaults.
func DefaultSequencerOptions() SequencerOptions {
	return SequencerOptions{
		Timing:              DefaultTiming(),
		SearchBackwardSteps: DefaultSearchBackwardSteps,
	}
}

// Sequencer drives the crafting UI for a batch of tasks.
type Sequencer struct {
	surface input.Surface
	cache   RoleActionCache
	opts    SequencerOptions
	typist  typist
	log     zerolog.Logger
}

// NewSequencer creates a Sequencer over surface and cache.
func NewSequencer(surface input.Surface, cache RoleActionCache, opts SequencerOptions, log zerolog.Logger) *Sequencer {
	return &Sequencer{
		surface: surface,
		cache:   cache,
		opts:    opts,
		typist:  typist{surface: surface, timing: opts.Timing, log: log},
		log:     log,
	}
}

// Run executes tasks in order and stops at the first error. Role action slots
// are cleared first so the cache and the game agree.
func (s *Sequencer) Run(tasks []Task, r *Reporter) error {
	if len(tasks) == 0 {
		return nil
	}
	if err := s.cache.Clear(); err != nil {
		return err
	}

	gearset := 0
	for i, task := range tasks {
		var err error
		gearset, err = s.runTask(i, task, gearset, r)
		if err != nil {
			return fmt.Errorf("task %d (%s): %w", i, task.Item.Name, err)
		}
	}
	return nil
}

// runTask executes one task. gearset is the gearset applied earlier in the
// run; the returned value is the gearset in effect afterwards.
func (s *Sequencer) runTask(index int, task Task, gearset int, r *Reporter) (int, error) {
	log := s.log.With().Int("task", index).Str("item", task.Item.Name).Logger()

	if err := r.SetTask(index); err != nil {
		return gearset, err
	}
	if err := r.SetState(Initializing); err != nil {
		return gearset, err
	}

	if task.Gearset > 0 && task.Gearset != gearset {
		// Changing jobs swaps the slotted role actions.
		if err := s.cache.Clear(); err != nil {
			return gearset, err
		}
		s.wait(s.opts.Timing.GearsetSettle)

		log.Info().Int("gearset", task.Gearset).Msg("changing gearset")
		if err := s.typist.command("/gearset change " + strconv.Itoa(task.Gearset)); err != nil {
			return gearset, err
		}
		gearset = task.Gearset
	}

	if err := s.clearMenus(); err != nil {
		return gearset, err
	}

	if task.Collectable {
		if err := s.sendAction(collectableAction); err != nil {
			return gearset, err
		}
	}

	if err := s.cache.Reconcile(task.ActionNames()); err != nil {
		return gearset, err
	}

	if err := s.press(input.KeyOpenCraft); err != nil {
		return gearset, err
	}
	s.wait(s.opts.Timing.CraftWindowSettle)

	if err := s.selectRecipe(task, log); err != nil {
		return gearset, err
	}

	if s.opts.DryRun {
		log.Info().Msg("dry run, skipping synthesis")
	} else {
		for craft := 1; craft <= task.Count; craft++ {
			if err := s.synthesize(task, craft, r); err != nil {
				return gearset, err
			}
		}
	}

	if err := s.clearMenus(); err != nil {
		return gearset, err
	}
	s.wait(s.opts.Timing.FinishSettle)

	if task.Collectable {
		if err := s.sendAction(collectableAction); err != nil {
			return gearset, err
		}
	}

	return gearset, r.SetState(Done)
}

// clearMenus closes whatever windows are open so the UI is in a known state.
func (s *Sequencer) clearMenus() error {
	for _, k := range []input.Key{input.KeyEscape, input.KeyEscape, input.KeyCancel, input.KeyCancel} {
		if err := s.press(k); err != nil {
			return err
		}
	}
	s.wait(s.opts.Timing.MenuSettle)
	return s.pressN(input.KeyEnter, 2)
}

// selectRecipe searches for the item and leaves the cursor on Synthesize.
func (s *Sequencer) selectRecipe(task Task, log zerolog.Logger) error {
	log.Info().Int("index", task.Index).Msg("selecting recipe")

	// The search box grabs focus once selected, so backing up past it from
	// any position is safe.
	if err := s.pressN(input.KeyBackward, s.opts.SearchBackwardSteps); err != nil {
		return err
	}
	if err := s.press(input.KeyConfirm); err != nil {
		return err
	}
	if err := s.typist.text(task.Item.Name); err != nil {
		return err
	}
	s.wait(s.opts.Timing.SearchInputSettle)
	if err := s.press(input.KeyEnter); err != nil {
		return err
	}
	s.wait(s.opts.Timing.SearchResultsSettle)

	if err := s.pressN(input.KeyDown, task.Index); err != nil {
		return err
	}
	return s.press(input.KeyConfirm)
}

// synthesize runs one repetition and returns the cursor to Synthesize.
func (s *Sequencer) synthesize(task Task, craft int, r *Reporter) error {
	if err := r.SetCraft(craft); err != nil {
		return err
	}
	if err := r.SetState(Setup); err != nil {
		return err
	}

	if err := s.selectMaterials(task.Item.Materials); err != nil {
		return err
	}
	if err := s.press(input.KeyConfirm); err != nil {
		return err
	}
	s.wait(s.opts.Timing.SynthesisSettle)

	if err := s.executeActions(task.Actions, r); err != nil {
		return err
	}

	// Collectables raise an extra prompt whose confirm also moves the cursor
	// back, so they take one wait more but the same number of confirms.
	if task.Collectable {
		s.wait(s.opts.Timing.CollectablePrompt)
		if err := s.press(input.KeyConfirm); err != nil {
			return err
		}
		s.wait(s.opts.Timing.CollectableConfirm)
		return s.press(input.KeyConfirm)
	}

	s.wait(s.opts.Timing.CompletionSettle)
	return s.press(input.KeyConfirm)
}

// selectMaterials fills in every material quantity. The cursor starts on
// Synthesize. The reverse pass runs on the bottom-right quantity column, the
// forward pass on the column to its left; the UI only commits correct amounts
// when both passes run in this order.
func (s *Sequencer) selectMaterials(materials []Material) error {
	if err := s.press(input.KeyUp); err != nil {
		return err
	}
	if err := s.pressN(input.KeyRight, 2); err != nil {
		return err
	}

	for i := len(materials) - 1; i >= 0; i-- {
		if err := s.pressN(input.KeyConfirm, materials[i].Count); err != nil {
			return err
		}
		if i != 0 {
			if err := s.press(input.KeyUp); err != nil {
				return err
			}
		}
	}

	if err := s.press(input.KeyLeft); err != nil {
		return err
	}
	for _, m := range materials {
		if err := s.pressN(input.KeyConfirm, m.Count); err != nil {
			return err
		}
		if err := s.press(input.KeyDown); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sequencer) executeActions(actions []Action, r *Reporter) error {
	for i, a := range actions {
		if err := r.SetState(Crafting(a.Name)); err != nil {
			return err
		}
		if err := r.SetStep(i); err != nil {
			return err
		}
		if err := s.sendAction(a.Name); err != nil {
			return err
		}
		s.wait(s.opts.Timing.ActionWait(a.Wait))
	}

	if err := r.SetStep(len(actions)); err != nil {
		return err
	}
	return r.SetState(Crafting(FinishingAction))
}

func (s *Sequencer) sendAction(name string) error {
	return s.typist.command(`/ac "` + name + `"`)
}

func (s *Sequencer) press(k input.Key) error {
	return s.surface.Press(k)
}

func (s *Sequencer) pressN(k input.Key, n int) error {
	for range n {
		if err := s.surface.Press(k); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sequencer) wait(d time.Duration) {
	if d > 0 {
		s.surface.Wait(d)
	}
}
