package command

import (
	"context"
	"log"
	"sync"
)

// Task is a unit of work run by a Queue
type Task func(ctx context.Context)

// Queue runs posted tasks one at a time on a single goroutine. Posting never
// waits for the task; its outcome is only visible through whatever the task logs.
type Queue struct {
	mu     sync.Mutex
	tasks  chan Task
	done   chan struct{}
	closed bool
}

// NewQueue starts a queue that buffers up to size pending tasks
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 1
	}
	q := &Queue{
		tasks: make(chan Task, size),
		done:  make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	// Saves are never canceled once started
	ctx := context.Background()
	for task := range q.tasks {
		runTask(ctx, task)
	}
}

func runTask(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("command queue: task panicked: %v", r)
		}
	}()
	task(ctx)
}

// Post schedules a task. It returns false when the queue is closed.
func (q *Queue) Post(task Task) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.tasks <- task
	return true
}

// Flush blocks until every task posted before it has run
func (q *Queue) Flush() {
	flushed := make(chan struct{})
	if !q.Post(func(context.Context) { close(flushed) }) {
		<-q.done
		return
	}
	<-flushed
}

// Close stops accepting tasks and waits for the pending ones to finish
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.tasks)
	}
	q.mu.Unlock()
	<-q.done
}
