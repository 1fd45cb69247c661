// Package stream provides an unbounded, ordered, single-consumer queue with
// explicit close semantics on both ends.
package stream

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Send once the receiving end has been closed, and by
// Recv once the sending end has been closed and every queued value has been
// delivered.
var ErrClosed = errors.New("stream: channel closed")

// Stream is a FIFO queue between one producer and one consumer. Send never
// blocks and never drops values; Recv blocks until a value is available.
type Stream[T any] struct {
	mu         sync.Mutex
	items      []T
	notify     chan struct{}
	sendClosed bool
	recvClosed bool
}

// New creates an empty stream.
func New[T any]() *Stream[T] {
	return &Stream[T]{notify: make(chan struct{}, 1)}
}

// Send appends v to the queue. It fails with ErrClosed if either end has been
// closed.
func (s *Stream[T]) Send(v T) error {
	s.mu.Lock()
	if s.recvClosed || s.sendClosed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.items = append(s.items, v)
	s.mu.Unlock()

	s.wake()
	return nil
}

// Recv removes and returns the oldest queued value, blocking until one is
// available, the context is cancelled, or the stream is drained after
// CloseSend.
func (s *Stream[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	for {
		s.mu.Lock()
		if s.recvClosed {
			s.mu.Unlock()
			return zero, ErrClosed
		}
		if len(s.items) > 0 {
			v := s.items[0]
			s.items[0] = zero
			s.items = s.items[1:]
			s.mu.Unlock()
			return v, nil
		}
		if s.sendClosed {
			s.mu.Unlock()
			return zero, ErrClosed
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-s.notify:
		}
	}
}

// CloseSend marks the producer as finished. Values already queued are still
// delivered. Safe to call more than once.
func (s *Stream[T]) CloseSend() {
	s.mu.Lock()
	s.sendClosed = true
	s.mu.Unlock()
	s.wake()
}

// CloseRecv marks the consumer as gone. Queued values are discarded and later
// sends fail. Safe to call more than once.
func (s *Stream[T]) CloseRecv() {
	s.mu.Lock()
	s.recvClosed = true
	s.items = nil
	s.mu.Unlock()
	s.wake()
}

func (s *Stream[T]) wake() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}
