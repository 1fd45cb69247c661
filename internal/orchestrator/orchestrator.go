// Package orchestrator runs crafting batches on a single worker goroutine and
// exposes the resulting status stream.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hay-kot/artisan/internal/core/craft"
	"github.com/hay-kot/artisan/internal/core/input"
	"github.com/hay-kot/artisan/internal/core/logging"
	"github.com/hay-kot/artisan/pkg/stream"
)

var (
	// ErrWorkerTerminated is returned once the worker has exited, and wraps
	// any unexpected failure that made it exit.
	ErrWorkerTerminated = errors.New("artisan: worker terminated")

	// ErrChannelClosed is returned when either end of the status stream is
	// gone.
	ErrChannelClosed = stream.ErrClosed

	// ErrEmptyBatch is returned by Submit for a batch with no tasks.
	ErrEmptyBatch = errors.New("artisan: empty batch")
)

type command struct {
	batchID string
	tasks   []craft.Task
	exit    bool
}

type options struct {
	sequencer   craft.SequencerOptions
	roleActions craft.RoleActionSet
	slots       int
	log         zerolog.Logger
}

// Option configures an Orchestrator.
type Option func(*options)

// WithSequencerOptions replaces the sequencer timing and behaviour.
func WithSequencerOptions(o craft.SequencerOptions) Option {
	return func(opts *options) { opts.sequencer = o }
}

// WithRoleActions replaces the default role action names.
func WithRoleActions(names ...string) Option {
	return func(opts *options) { opts.roleActions = craft.NewRoleActionSet(names...) }
}

// WithRoleActionSlots sets the number of role action slots.
func WithRoleActionSlots(n int) Option {
	return func(opts *options) { opts.slots = n }
}

// WithLogger sets the logger used by the worker.
func WithLogger(l zerolog.Logger) Option {
	return func(opts *options) { opts.log = l }
}

// Orchestrator owns the worker goroutine. Batches submitted to it run strictly
// in order; statuses are read with NextStatus.
type Orchestrator struct {
	commands *stream.Stream[command]
	statuses *stream.Stream[craft.Status]
	log      zerolog.Logger

	shutdownOnce sync.Once
	done         chan struct{}
	err          error // written by the worker before done is closed
}

// New locates the target window and starts the worker. It fails with
// input.ErrTargetNotFound when the window cannot be found. The worker stops
// once ctx is cancelled, but never in the middle of a batch.
func New(ctx context.Context, locator input.Locator, opts ...Option) (*Orchestrator, error) {
	o := options{
		sequencer:   craft.DefaultSequencerOptions(),
		roleActions: craft.NewRoleActionSet(craft.DefaultRoleActions...),
		slots:       craft.DefaultRoleActionSlots,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	surface, err := locator.Locate(ctx)
	if err != nil {
		return nil, fmt.Errorf("locate target: %w", err)
	}

	orc := &Orchestrator{
		commands: stream.New[command](),
		statuses: stream.New[craft.Status](),
		log:      o.log,
		done:     make(chan struct{}),
	}

	w := &worker{
		surface:  surface,
		cache:    craft.NewSlotCache(surface, o.roleActions, o.slots, o.sequencer.Timing, o.log),
		opts:     o.sequencer,
		commands: orc.commands,
		statuses: orc.statuses,
		log:      o.log,
	}

	go func() {
		defer close(orc.done)
		orc.err = w.run(ctx)
		// Release anyone still submitting or reading.
		orc.commands.CloseRecv()
		orc.statuses.CloseSend()
	}()

	return orc, nil
}

// Submit queues a batch and returns without waiting for it to run. Empty
// batches are rejected with ErrEmptyBatch.
func (o *Orchestrator) Submit(tasks []craft.Task) error {
	select {
	case <-o.done:
		return ErrWorkerTerminated
	default:
	}

	if len(tasks) == 0 {
		return ErrEmptyBatch
	}

	cmd := command{batchID: uuid.NewString(), tasks: tasks}
	if err := o.commands.Send(cmd); err != nil {
		return ErrWorkerTerminated
	}

	o.log.Debug().Str("batch_id", cmd.batchID).Int("tasks", len(tasks)).Msg("batch submitted")
	return nil
}

// NextStatus blocks until the next status is available. Once the worker has
// exited and every status has been read it returns ErrChannelClosed.
func (o *Orchestrator) NextStatus(ctx context.Context) (craft.Status, error) {
	return o.statuses.Recv(ctx)
}

// CloseStatus disconnects the status consumer. The batch in flight fails with
// ErrChannelClosed at its next status change.
func (o *Orchestrator) CloseStatus() {
	o.statuses.CloseRecv()
}

// Shutdown asks the worker to exit once every queued batch has run, waits for
// it, and returns the error that ended it, if any. It is safe to call more than
// once.
func (o *Orchestrator) Shutdown() error {
	o.shutdownOnce.Do(func() {
		_ = o.commands.Send(command{exit: true})
		o.commands.CloseSend()
	})
	<-o.done
	return o.err
}

// Done is closed when the worker has exited.
func (o *Orchestrator) Done() <-chan struct{} {
	return o.done
}

type worker struct {
	surface  input.Surface
	cache    craft.RoleActionCache
	opts     craft.SequencerOptions
	commands *stream.Stream[command]
	statuses *stream.Stream[craft.Status]
	log      zerolog.Logger
}

func (w *worker) run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error().Interface("panic", r).Msg("worker panicked")
			err = fmt.Errorf("%w: panic: %v", ErrWorkerTerminated, r)
		}
	}()

	for {
		cmd, err := w.commands.Recv(ctx)
		if err != nil {
			if errors.Is(err, stream.ErrClosed) {
				return nil
			}
			w.log.Info().Err(err).Msg("worker stopping")
			return nil
		}

		if cmd.exit {
			w.log.Debug().Msg("worker exiting")
			return nil
		}

		if err := w.runBatch(ctx, cmd); err != nil {
			if errors.Is(err, ErrChannelClosed) {
				return err
			}
			return fmt.Errorf("%w: %w", ErrWorkerTerminated, err)
		}
	}
}

func (w *worker) runBatch(ctx context.Context, cmd command) error {
	ctx = logging.WithBatchID(ctx, cmd.batchID)
	w.log.Info().Ctx(ctx).Int("tasks", len(cmd.tasks)).Msg("starting batch")

	// The sequencer has no context, so it gets the batch id as a field.
	seqLog := w.log.With().Str("batch_id", cmd.batchID).Logger()
	seq := craft.NewSequencer(w.surface, w.cache, w.opts, seqLog)
	if err := seq.Run(cmd.tasks, craft.NewReporter(w.statuses)); err != nil {
		w.log.Error().Ctx(ctx).Err(err).Msg("batch failed")
		return fmt.Errorf("batch %s: %w", cmd.batchID, err)
	}

	w.log.Info().Ctx(ctx).Msg("batch finished")
	return nil
}
