package stream

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_OrderPreserved(t *testing.T) {
	s := New[int]()
	for i := range 100 {
		require.NoError(t, s.Send(i))
	}

	for i := range 100 {
		v, err := s.Recv(context.Background())
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
}

func TestStream_RecvBlocksUntilSend(t *testing.T) {
	s := New[string]()

	got := make(chan string, 1)
	go func() {
		v, err := s.Recv(context.Background())
		if err == nil {
			got <- v
		}
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, s.Send("hello"))

	select {
	case v := <-got:
		assert.Equal(t, "hello", v)
	case <-time.After(time.Second):
		t.Fatal("Recv did not return after Send")
	}
}

func TestStream_CloseSendDrainsThenCloses(t *testing.T) {
	s := New[int]()
	require.NoError(t, s.Send(1))
	require.NoError(t, s.Send(2))
	s.CloseSend()

	v, err := s.Recv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = s.Recv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = s.Recv(context.Background())
	assert.ErrorIs(t, err, ErrClosed)

	assert.ErrorIs(t, s.Send(3), ErrClosed)
}

func TestStream_CloseSendWakesBlockedReceiver(t *testing.T) {
	s := New[int]()

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Recv(context.Background())
		errCh <- err
	}()

	time.Sleep(10 * time.Millisecond)
	s.CloseSend()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("Recv did not observe CloseSend")
	}
}

func TestStream_CloseRecvFailsSend(t *testing.T) {
	s := New[int]()
	require.NoError(t, s.Send(1))
	s.CloseRecv()
	s.CloseRecv()

	assert.ErrorIs(t, s.Send(2), ErrClosed)

	_, err := s.Recv(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestStream_RecvHonorsContext(t *testing.T) {
	s := New[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.Recv(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestStream_ConcurrentProducer(t *testing.T) {
	s := New[int]()
	const n = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range n {
			_ = s.Send(i)
		}
		s.CloseSend()
	}()

	var got []int
	for {
		v, err := s.Recv(context.Background())
		if errors.Is(err, ErrClosed) {
			break
		}
		require.NoError(t, err)
		got = append(got, v)
	}
	wg.Wait()

	require.Len(t, got, n)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}
