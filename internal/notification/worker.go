package notification

import (
	"context"
	"log"
)

// WorkerPool manages a pool of workers delivering notification messages.
// Dispatch decouples change detection from delivery: a slow or failing
// webhook never stalls the polling loops.
type WorkerPool struct {
	size   int
	jobs   chan Message
	sender Sender
}

// NewWorkerPool creates a worker pool delivering through the given sender.
func NewWorkerPool(size int, sender Sender) *WorkerPool {
	return &WorkerPool{
		size:   size,
		jobs:   make(chan Message, size*4),
		sender: sender,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case msg := <-wp.jobs:
			if err := wp.sender.Send(ctx, msg); err != nil {
				log.Printf("Error sending notification %q: %v", msg.Title, err)
			}
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a message for delivery. When the queue is full the
// message is dropped with a log line rather than blocking the caller.
func (wp *WorkerPool) Dispatch(msg Message) {
	select {
	case wp.jobs <- msg:
	default:
		log.Printf("Notification queue full, dropping %q", msg.Title)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Message {
	return wp.jobs
}
