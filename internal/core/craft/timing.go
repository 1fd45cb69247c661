package craft

import "time"

// Timing holds every deliberate delay of the sequence. The defaults are tuned
// against the live client and serve as the regression baseline.
type Timing struct {
	// CharDelay follows every typed character.
	CharDelay time.Duration `yaml:"char_delay"`
	// CommandSubmit separates a typed command from its submitting enter.
	CommandSubmit time.Duration `yaml:"command_submit"`
	GearsetSettle time.Duration `yaml:"gearset_settle"`
	MenuSettle    time.Duration `yaml:"menu_settle"`
	// RoleActionSettle follows each role action toggle.
	RoleActionSettle    time.Duration `yaml:"role_action_settle"`
	CraftWindowSettle   time.Duration `yaml:"craft_window_settle"`
	SearchInputSettle   time.Duration `yaml:"search_input_settle"`
	SearchResultsSettle time.Duration `yaml:"search_results_settle"`
	// SynthesisSettle waits for the crafting dialog after starting synthesis.
	SynthesisSettle time.Duration `yaml:"synthesis_settle"`
	// ShortAction and LongAction are the 2.0s and 2.5s cooldowns minus the
	// typing latency of the action command.
	ShortAction        time.Duration `yaml:"short_action"`
	LongAction         time.Duration `yaml:"long_action"`
	CollectablePrompt  time.Duration `yaml:"collectable_prompt"`
	CollectableConfirm time.Duration `yaml:"collectable_confirm"`
	CompletionSettle   time.Duration `yaml:"completion_settle"`
	FinishSettle       time.Duration `yaml:"finish_settle"`
}

// DefaultTiming returns the tuned delays.
func DefaultTiming() Timing {
	return Timing{
		CharDelay:           20 * time.Millisecond,
		CommandSubmit:       50 * time.Millisecond,
		GearsetSettle:       200 * time.Millisecond,
		MenuSettle:          time.Second,
		RoleActionSettle:    250 * time.Millisecond,
		CraftWindowSettle:   time.Second,
		SearchInputSettle:   200 * time.Millisecond,
		SearchResultsSettle: time.Second,
		SynthesisSettle:     2 * time.Second,
		ShortAction:         1700 * time.Millisecond,
		LongAction:          2200 * time.Millisecond,
		CollectablePrompt:   time.Second,
		CollectableConfirm:  3 * time.Second,
		CompletionSettle:    4 * time.Second,
		FinishSettle:        2 * time.Second,
	}
}

// ActionWait returns the delay that follows an action of class w.
func (t Timing) ActionWait(w WaitClass) time.Duration {
	if w == WaitLong {
		return t.LongAction
	}
	return t.ShortAction
}
