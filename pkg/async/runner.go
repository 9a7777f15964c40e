package async

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ventaro/storefront/pkg/logger"
)

// Runner executes tasks in background goroutines.
type Runner struct {
	slots   chan struct{}
	timeout time.Duration
	log     *slog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// Option configures a Runner.
type Option func(*Runner)

// WithLimit caps concurrent tasks. Go returns ErrBusy beyond it.
func WithLimit(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.slots = make(chan struct{}, n)
		}
	}
}

// WithTimeout bounds each task.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithLogger sets where task failures are reported. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRunner returns a Runner allowing 32 concurrent tasks of up to 30s each,
// logging nowhere until WithLogger is given.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		slots:   make(chan struct{}, 32),
		timeout: 30 * time.Second,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Go schedules fn. It never blocks: a full runner yields ErrBusy and a closed
// one ErrClosed. Task errors and panics are logged under name.
func (r *Runner) Go(ctx context.Context, name string, fn func(context.Context) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrClosed
	}

	select {
	case r.slots <- struct{}{}:
	default:
		return ErrBusy
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() { <-r.slots }()

		taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		start := time.Now()
		if err := r.run(taskCtx, fn); err != nil {
			r.log.ErrorContext(taskCtx, "background task failed",
				slog.String("task", name), logger.Duration(time.Since(start)), logger.Error(err))
		}
	}()
	return nil
}

func (r *Runner) run(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(ctx)
}

// Close stops accepting tasks and waits for running ones until ctx is done.
func (r *Runner) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
