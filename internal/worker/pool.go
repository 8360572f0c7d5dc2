// Package worker runs background tasks on a fixed set of goroutines.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dtroode/interview-coach/internal/logger"
)

var (
	// ErrQueueFull is returned when the task queue has no free slot.
	ErrQueueFull = errors.New("task queue is full")
	// ErrPoolClosed is returned for tasks enqueued after Shutdown.
	ErrPoolClosed = errors.New("worker pool is closed")
)

// Task is a unit of background work. ctx is cancelled after the task timeout.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pool executes tasks with bounded concurrency and a bounded queue.
type Pool struct {
	tasks   chan Task
	timeout time.Duration
	logger  *logger.Logger

	baseCtx context.Context
	cancel  context.CancelFunc

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewPool starts workers goroutines that share a queue of queueSize tasks.
func NewPool(workers, queueSize int, timeout time.Duration, logger *logger.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		tasks:   make(chan Task, queueSize),
		timeout: timeout,
		logger:  logger,
		baseCtx: ctx,
		cancel:  cancel,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work(i)
	}

	return p
}

// Enqueue schedules a task without blocking.
func (p *Pool) Enqueue(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting tasks and waits for queued ones to finish.
// When ctx expires first, running tasks are cancelled.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-done
		return fmt.Errorf("worker pool shutdown interrupted: %w", ctx.Err())
	}
}

func (p *Pool) work(id int) {
	defer p.wg.Done()

	for task := range p.tasks {
		p.execute(id, task)
	}
}

func (p *Pool) execute(id int, task Task) {
	ctx := p.baseCtx
	var cancel context.CancelFunc
	if p.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Worker pool: task panicked", "worker", id, "task", task.Name, "panic", r)
		}
	}()

	start := time.Now()
	if err := task.Run(ctx); err != nil {
		p.logger.Error("Worker pool: task failed", "worker", id, "task", task.Name, "error", err, "elapsed", time.Since(start))
		return
	}
	p.logger.Debug("Worker pool: task done", "worker", id, "task", task.Name, "elapsed", time.Since(start))
}
