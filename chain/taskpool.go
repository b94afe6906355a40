package chain

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrPoolClosed = errors.New("task pool closed")

// DispatchError reports that a task never reached a worker. It is kept
// separate from the task's own error so callers can tell a scheduling
// failure apart from an upstream failure.
type DispatchError struct {
	Cause error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch: %s", e.Cause)
}

func (e *DispatchError) Unwrap() error { return e.Cause }

type task struct {
	fn   func() error
	done chan error
}

// TaskPool runs upstream calls on a bounded set of workers. Submission
// fails once the pool is closed or the caller's context expires before a
// worker accepts the task.
type TaskPool struct {
	tasks  chan task
	closed chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

func NewTaskPool(workers, depth int) *TaskPool {
	if workers <= 0 {
		workers = 1
	}
	if depth < 0 {
		depth = 0
	}
	p := &TaskPool{
		tasks:  make(chan task, depth),
		closed: make(chan struct{}),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *TaskPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.closed:
			return
		case t := <-p.tasks:
			t.done <- t.fn()
		}
	}
}

// Submit runs fn on a worker and returns its error. A *DispatchError is
// returned instead when fn was never started.
func (p *TaskPool) Submit(ctx context.Context, fn func() error) error {
	t := task{fn: fn, done: make(chan error, 1)}
	select {
	case <-p.closed:
		return &DispatchError{Cause: ErrPoolClosed}
	default:
	}
	select {
	case p.tasks <- t:
	case <-p.closed:
		return &DispatchError{Cause: ErrPoolClosed}
	case <-ctx.Done():
		return &DispatchError{Cause: ctx.Err()}
	}
	select {
	case err := <-t.done:
		return err
	case <-p.closed:
		// The pool shut down with the task still queued. A worker may
		// have picked it up in the meantime.
		select {
		case err := <-t.done:
			return err
		default:
			return &DispatchError{Cause: ErrPoolClosed}
		}
	}
}

// Close stops the workers. Tasks still queued are dropped; their
// submitters get a *DispatchError.
func (p *TaskPool) Close() {
	p.once.Do(func() { close(p.closed) })
	p.wg.Wait()
}
