package keyboard

import (
	"context"
	"log/slog"

	"github.com/Alia5/pinput/internal/listener"
)

// Meta carries the metadata every listener event has.
type Meta struct {
	// Timestamp in platform native units; monotonic per source.
	Timestamp int64
	// Injected is true when the event was synthesized by software.
	Injected bool
}

// Handler receives canonical key events from a Source.
type Handler interface {
	Press(key Input, m Meta) error
	Release(key Input, m Meta) error
}

// Source is implemented by backends able to observe key events.
type Source interface {
	// Layout returns the backend key table.
	Layout() *Layout
	// Listen delivers events to h until ctx is done or h returns an error.
	// It returns nil when stopped by ctx.
	Listen(ctx context.Context, h Handler) error
}

// Suppressor is implemented by sources able to prevent observed events from
// reaching other applications.
type Suppressor = listener.Suppressor

// Callbacks are invoked by a Listener for each event. Nil callbacks are
// skipped. Returning ErrStopListener stops the listener; any other error
// stops it and is reported by Wait.
type Callbacks struct {
	OnPress   func(key Input, m Meta) error
	OnRelease func(key Input, m Meta) error
}

// Options configure a Listener.
type Options struct {
	// Suppress prevents events from reaching other applications while
	// listening. The source must implement Suppressor.
	Suppress bool
	Logger   *slog.Logger
}

// Listener runs a source in the background and forwards its events to
// callbacks.
type Listener struct {
	src  Source
	cb   Callbacks
	opts Options
	run  *listener.Runner
}

// NewListener returns a listener for src. It does not start listening.
func NewListener(src Source, cb Callbacks, opts Options) *Listener {
	return &Listener{src: src, cb: cb, opts: opts, run: listener.New("keyboard", opts.Logger)}
}

// Canonical normalises key using the source layout. See Layout.Canonical.
func (l *Listener) Canonical(key Input) Input {
	return l.src.Layout().Canonical(key)
}

// Run listens until ctx is done, Stop is called or a callback stops the
// listener.
func (l *Listener) Run(ctx context.Context) error {
	if err := l.Start(ctx); err != nil {
		return err
	}
	return l.Wait()
}

// Start begins listening in a new goroutine. A stopped listener may be
// started again.
func (l *Listener) Start(ctx context.Context) error {
	var sup Suppressor
	if l.opts.Suppress {
		s, ok := l.src.(Suppressor)
		if !ok {
			return ErrSuppressUnsupported
		}
		sup = s
	}
	return l.run.Start(ctx, sup, func(ctx context.Context) error {
		return l.src.Listen(ctx, l)
	})
}

// Press implements Handler.
func (l *Listener) Press(key Input, m Meta) error {
	if l.cb.OnPress == nil {
		return nil
	}
	return l.cb.OnPress(key, m)
}

// Release implements Handler.
func (l *Listener) Release(key Input, m Meta) error {
	if l.cb.OnRelease == nil {
		return nil
	}
	return l.cb.OnRelease(key, m)
}

// Stop asks the listener to stop. It does not wait; use Wait for that.
func (l *Listener) Stop() { l.run.Stop() }

// Wait blocks until the listener has stopped and returns the error that
// stopped it, if any.
func (l *Listener) Wait() error { return l.run.Wait() }

// Running reports whether the listener is active.
func (l *Listener) Running() bool { return l.run.Running() }
