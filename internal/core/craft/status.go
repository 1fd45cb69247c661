package craft

import "fmt"

// Phase is the coarse state of the engine.
type Phase int

const (
	PhaseQueued Phase = iota
	PhaseInitializing
	PhaseSetup
	PhaseCrafting
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseQueued:
		return "Queued"
	case PhaseInitializing:
		return "Initializing"
	case PhaseSetup:
		return "Setup"
	case PhaseCrafting:
		return "Crafting"
	case PhaseDone:
		return "Done"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is a Phase plus, while crafting, the name of the current action.
type State struct {
	Phase  Phase
	Action string
}

var (
	Queued       = State{Phase: PhaseQueued}
	Initializing = State{Phase: PhaseInitializing}
	Setup        = State{Phase: PhaseSetup}
	Done         = State{Phase: PhaseDone}
)

// FinishingAction is the action name reported after the last action of a
// repetition.
const FinishingAction = "Finishing"

// Crafting returns the Crafting state for the named action.
func Crafting(action string) State {
	return State{Phase: PhaseCrafting, Action: action}
}

func (s State) String() string {
	if s.Phase == PhaseCrafting {
		return fmt.Sprintf("Crafting(%s)", s.Action)
	}
	return s.Phase.String()
}

// Status is an immutable progress snapshot.
type Status struct {
	State State
	Task  int
	Craft int
	Step  int
}

func (s Status) String() string {
	return fmt.Sprintf("{%s task=%d craft=%d step=%d}", s.State, s.Task, s.Craft, s.Step)
}

// Sink receives status snapshots. Send must fail once the consumer is gone.
type Sink interface {
	Send(Status) error
}

// Reporter owns the current Status and publishes a copy on every change.
type Reporter struct {
	sink   Sink
	status Status
}

// NewReporter returns a Reporter starting at {Queued, 0, 0, 0}.
func NewReporter(sink Sink) *Reporter {
	return &Reporter{sink: sink, status: Status{State: Queued}}
}

// Status returns the current snapshot.
func (r *Reporter) Status() Status {
	return r.status
}

// SetState changes the state and publishes.
func (r *Reporter) SetState(s State) error {
	r.status.State = s
	return r.send()
}

// SetTask changes the task index, resets craft and step, and publishes.
func (r *Reporter) SetTask(task int) error {
	r.status.Task = task
	r.status.Craft = 0
	r.status.Step = 0
	return r.send()
}

// SetCraft changes the repetition index, resets step, and publishes.
func (r *Reporter) SetCraft(craft int) error {
	r.status.Craft = craft
	r.status.Step = 0
	return r.send()
}

// SetStep changes the step index and publishes.
func (r *Reporter) SetStep(step int) error {
	r.status.Step = step
	return r.send()
}

func (r *Reporter) send() error {
	if err := r.sink.Send(r.status); err != nil {
		return fmt.Errorf("send status %s: %w", r.status, err)
	}
	return nil
}
