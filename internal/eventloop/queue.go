// Package eventloop provides the single-threaded task queue that headless
// hosts use in place of a window's event loop. Work posted from any
// goroutine runs on whichever goroutine drives the queue.
package eventloop

import (
	"context"
)

// Dispatcher accepts tasks that must run on the host event loop.
type Dispatcher interface {
	Post(fn func())
}

// Queue is a buffered FIFO of tasks.
type Queue struct {
	tasks chan func()
}

// New creates a queue that can hold size pending tasks before Post blocks.
func New(size int) *Queue {
	if size <= 0 {
		size = 64
	}
	return &Queue{tasks: make(chan func(), size)}
}

// Post enqueues fn. It is safe to call from any goroutine.
func (q *Queue) Post(fn func()) {
	if fn == nil {
		return
	}
	q.tasks <- fn
}

// Next blocks until one task is available and runs it. It returns false if
// ctx ends first.
func (q *Queue) Next(ctx context.Context) bool {
	select {
	case fn := <-q.tasks:
		fn()
		return true
	case <-ctx.Done():
		return false
	}
}

// Drain runs every task that is already queued without waiting for more and
// reports how many ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case fn := <-q.tasks:
			fn()
			n++
		default:
			return n
		}
	}
}

// RunUntil processes tasks until done reports true or ctx ends.
func (q *Queue) RunUntil(ctx context.Context, done func() bool) error {
	for !done() {
		if !q.Next(ctx) {
			return ctx.Err()
		}
	}
	return nil
}

// Run processes tasks until ctx ends.
func (q *Queue) Run(ctx context.Context) error {
	for q.Next(ctx) {
	}
	return ctx.Err()
}

// Len reports the number of queued tasks.
func (q *Queue) Len() int { return len(q.tasks) }
