package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// mockSender is a mock implementation of the Sender interface.
type mockSender struct {
	SendFunc func(ctx context.Context, msg Message) error
}

func (m *mockSender) Send(ctx context.Context, msg Message) error {
	return m.SendFunc(ctx, msg)
}

func TestWorkerPool_Dispatch(t *testing.T) {
	wp := NewWorkerPool(1, &mockSender{})

	wp.Dispatch(Message{Title: "Blue Ocean Dome (HOH0)"})

	select {
	case msg := <-wp.jobs:
		assert.Equal(t, "Blue Ocean Dome (HOH0)", msg.Title)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_DispatchDropsWhenFull(t *testing.T) {
	wp := NewWorkerPool(1, &mockSender{})

	// Workers are not started, so the buffer fills up; the overflow
	// dispatch must return instead of blocking the polling loop.
	for i := 0; i < cap(wp.jobs)+3; i++ {
		done := make(chan struct{})
		go func() {
			wp.Dispatch(Message{Title: "overflow"})
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Dispatch blocked on a full queue")
		}
	}
	assert.Len(t, wp.jobs, cap(wp.jobs))
}

func TestWorkerPool_DeliversThroughSender(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	var delivered []string
	sender := &mockSender{
		SendFunc: func(ctx context.Context, msg Message) error {
			mu.Lock()
			delivered = append(delivered, msg.Title)
			mu.Unlock()
			wg.Done()
			return nil
		},
	}

	wp := NewWorkerPool(2, sender)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.Dispatch(Message{Title: "first"})
	wp.Dispatch(Message{Title: "second"})
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"first", "second"}, delivered)
}

func TestWorkerPool_SenderErrorsAreAbsorbed(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)

	sender := &mockSender{
		SendFunc: func(ctx context.Context, msg Message) error {
			wg.Done()
			return errors.New("webhook unavailable")
		},
	}

	wp := NewWorkerPool(1, sender)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	// Delivery failures are logged; the worker keeps consuming.
	wp.Dispatch(Message{Title: "first"})
	wp.Dispatch(Message{Title: "second"})
	wg.Wait()
}
