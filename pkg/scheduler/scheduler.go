// Package scheduler provides bounded-concurrency task admission with
// FIFO ordering. All network calls in the harvester route through it.
package scheduler

import (
	"errors"
	"sync"
)

// ErrClosed is returned by futures of tasks enqueued after Close.
var ErrClosed = errors.New("scheduler closed")

// DefaultConcurrency is the admission limit used when none is configured.
const DefaultConcurrency = 20

// Task is a unit of side-effecting work, typically a network call.
// The scheduler does not retry or inspect failures; it only bounds
// concurrency and forwards the outcome to the caller.
type Task func() (any, error)

// Future resolves to a task's outcome once the task has run.
type Future struct {
	done  chan struct{}
	value any
	err   error
}

// Wait blocks until the task has run and returns its outcome.
func (f *Future) Wait() (any, error) {
	<-f.done
	return f.value, f.err
}

type pending struct {
	task Task
	fut  *Future
}

// Scheduler admits at most N tasks concurrently. Enqueue never blocks;
// pending tasks wait in an unbounded in-memory queue.
type Scheduler struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []pending
	closed bool
	wg     sync.WaitGroup
}

// New starts a scheduler with n worker slots. Values <= 0 fall back to
// DefaultConcurrency.
func New(n int) *Scheduler {
	if n <= 0 {
		n = DefaultConcurrency
	}
	s := &Scheduler{}
	s.cond = sync.NewCond(&s.mu)
	for i := 0; i < n; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

// Enqueue queues task for execution and returns its future immediately.
func (s *Scheduler) Enqueue(task Task) *Future {
	fut := &Future{done: make(chan struct{})}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fut.err = ErrClosed
		close(fut.done)
		return fut
	}
	s.queue = append(s.queue, pending{task: task, fut: fut})
	s.mu.Unlock()

	s.cond.Signal()
	return fut
}

// Pending reports the number of queued tasks not yet started.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func (s *Scheduler) worker() {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		p := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		p.fut.value, p.fut.err = p.task()
		close(p.fut.done)
	}
}

// Close drains already-queued tasks and stops the workers. Tasks enqueued
// afterwards resolve with ErrClosed.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cond.Broadcast()
	s.wg.Wait()
}
