// Package listener runs event sources in the background for the keyboard
// and mouse listeners.
package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	// ErrStop may be returned by a listen function to stop without
	// reporting an error.
	ErrStop = errors.New("stop listener")

	// ErrSuppressUnsupported is returned when suppression is requested
	// from a source that cannot suppress events.
	ErrSuppressUnsupported = errors.New("event suppression not supported by source")

	// ErrRunning is returned when starting a runner twice.
	ErrRunning = errors.New("listener already running")
)

// Suppressor is implemented by sources able to prevent observed events from
// reaching other applications.
type Suppressor interface {
	SuppressStart() error
	SuppressStop() error
}

// Runner owns the goroutine of one listener. It may be restarted once
// stopped.
type Runner struct {
	kind   string
	logger *slog.Logger

	// AfterStop runs once the listen function has returned, before Wait
	// unblocks.
	AfterStop func()

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
	running bool
}

// New returns a stopped runner. kind names the listener in log messages;
// a nil logger discards them.
func New(kind string, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{kind: kind, logger: logger}
}

// Start calls listen in a new goroutine. A non-nil sup suppresses events
// for as long as listen runs.
func (r *Runner) Start(ctx context.Context, sup Suppressor, listen func(context.Context) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.err = nil
	r.running = true

	go r.loop(ctx, cancel, sup, listen, r.done)
	return nil
}

func (r *Runner) loop(ctx context.Context, cancel context.CancelFunc, sup Suppressor, listen func(context.Context) error, done chan struct{}) {
	defer close(done)
	defer cancel()

	err := r.suppressed(ctx, sup, listen)
	if errors.Is(err, ErrStop) || errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		r.logger.Error(r.kind+" listener stopped", "error", err)
	} else {
		r.logger.Debug(r.kind + " listener stopped")
	}

	r.mu.Lock()
	r.err = err
	r.running = false
	r.mu.Unlock()

	if r.AfterStop != nil {
		r.AfterStop()
	}
}

func (r *Runner) suppressed(ctx context.Context, sup Suppressor, listen func(context.Context) error) (err error) {
	if sup != nil {
		if err := sup.SuppressStart(); err != nil {
			return fmt.Errorf("start suppression: %w", err)
		}
		defer func() {
			if serr := sup.SuppressStop(); serr != nil {
				err = errors.Join(err, fmt.Errorf("stop suppression: %w", serr))
			}
		}()
	}
	r.logger.Debug(r.kind+" listener started", "suppress", sup != nil)
	return listen(ctx)
}

// Stop asks the runner to stop. It does not wait; use Wait for that.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}

// Wait blocks until the runner has stopped and returns the error that
// stopped it, if any.
func (r *Runner) Wait() error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done == nil {
		return nil
	}
	<-done
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Running reports whether the listen function is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
