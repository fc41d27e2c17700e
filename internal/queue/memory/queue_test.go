package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueuePushDequeue(t *testing.T) {
	t.Parallel()

	q := NewQueue[string]()
	result := make(chan string, 1)
	errCh := make(chan error, 1)

	go func() {
		item, err := q.Dequeue(context.Background())
		if err != nil {
			errCh <- err
			return
		}
		result <- item
	}()

	time.Sleep(10 * time.Millisecond) // allow goroutine to start
	require.True(t, q.Push("/wiki/Philosophy"))
	select {
	case err := <-errCh:
		t.Fatalf("Dequeue() error = %v", err)
	case got := <-result:
		require.Equal(t, "/wiki/Philosophy", got)
	case <-time.After(time.Second):
		t.Fatal("dequeue did not return item")
	}
}

func TestQueueFIFOAndUnbounded(t *testing.T) {
	t.Parallel()

	q := NewQueue[int]()
	for i := 0; i < 10000; i++ {
		require.True(t, q.Push(i))
	}
	require.Equal(t, 10000, q.Len())
	for i := 0; i < 10000; i++ {
		got, ok := q.TryPop()
		require.True(t, ok)
		require.Equal(t, i, got)
	}
	_, ok := q.TryPop()
	require.False(t, ok)
}

func TestQueueReadySignalsPendingItems(t *testing.T) {
	t.Parallel()

	q := NewQueue[int]()
	q.Push(1)
	q.Push(2)

	<-q.Ready()
	first, ok := q.TryPop()
	require.True(t, ok)
	require.Equal(t, 1, first)

	select {
	case <-q.Ready():
	case <-time.After(time.Second):
		t.Fatal("expected ready signal while items remain")
	}
	second, ok := q.TryPop()
	require.True(t, ok)
	require.Equal(t, 2, second)
}

func TestQueueConcurrentProducers(t *testing.T) {
	t.Parallel()

	q := NewQueue[int]()
	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(i)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 800, q.Len())
}

func TestQueueCancelation(t *testing.T) {
	t.Parallel()

	q := NewQueue[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := q.Dequeue(ctx)
	require.EqualError(t, err, "dequeue canceled: context canceled")
}

func TestQueueCloseDropsPushes(t *testing.T) {
	t.Parallel()

	q := NewQueue[int]()
	q.Push(1)
	q.Close()
	require.False(t, q.Push(2))
	require.Zero(t, q.Len())
	_, err := q.Dequeue(context.Background())
	require.ErrorIs(t, err, ErrClosed)
	// Closing twice should be safe.
	q.Close()
}
